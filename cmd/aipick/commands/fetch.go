package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/daito-dot/AI-Pick-Daily-sub001/internal/contracts"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch [symbols...]",
	Short: "Fetch and print raw records without scoring",
	Long: `Runs only the acquisition engine over the given symbols and prints
what came back, including per-batch speedup. Useful for checking provider
health and rate limits.

Example:
  go run ./cmd/aipick fetch AAPL MSFT`,
	Args: cobra.MinimumNArgs(1),
	RunE: runFetch,
}

var fetchTimeout time.Duration

func init() {
	rootCmd.AddCommand(fetchCmd)

	fetchCmd.Flags().DurationVar(&fetchTimeout, "timeout", 5*time.Minute, "overall fetch timeout")
}

func runFetch(cmd *cobra.Command, args []string) error {
	application, err := bootstrap()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
	defer cancel()

	market := contracts.MarketSnapshot{Regime: "unknown", AsOf: time.Now()}

	outcome := application.batch.FetchAll(ctx, args, market, func(symbol string, completed, total int) {
		fmt.Printf("  [%d/%d] %s\n", completed, total, symbol)
	})

	fmt.Printf("\nFetched %d/%d symbols in %s (speedup %.1fx)\n",
		len(outcome.Successes), len(args), outcome.Duration.Round(time.Millisecond), outcome.Speedup)

	for _, stock := range outcome.Successes {
		fmt.Printf("  %-6s %3d closes, last %.2f, PER %.1f, news %d (sentiment %+.2f)\n",
			stock.Symbol, len(stock.Base.Prices), stock.Base.LastPrice(),
			stock.Base.PER, stock.Base.NewsCount7D, stock.Base.NewsSentiment)
	}
	for _, failure := range outcome.Failures {
		fmt.Printf("  %-6s FAILED: %v\n", failure.Symbol, failure.Err)
	}

	return nil
}
