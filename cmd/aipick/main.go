package main

import (
	"os"

	"github.com/daito-dot/AI-Pick-Daily-sub001/cmd/aipick/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
