package judgment

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/daito-dot/AI-Pick-Daily-sub001/internal/contracts"
	"github.com/daito-dot/AI-Pick-Daily-sub001/pkg/logger"
)

// Source supplies externally produced judgments for a scoring run. A run
// without a source (or an empty result) simply skips judgment selection.
type Source interface {
	Judgments(ctx context.Context) (map[string]contracts.Judgment, error)
}

// FileSource reads judgments from a JSON document: an array of
// {symbol, decision, confidence} objects. Later entries for the same
// symbol win.
type FileSource struct {
	path   string
	logger *logger.Logger
}

func NewFileSource(path string, log *logger.Logger) *FileSource {
	return &FileSource{
		path:   path,
		logger: log.WithField("module", "judgment"),
	}
}

func (s *FileSource) Judgments(_ context.Context) (map[string]contracts.Judgment, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read judgments: %w", err)
	}

	var entries []contracts.Judgment
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("decode judgments: %w", err)
	}

	judgments := make(map[string]contracts.Judgment, len(entries))
	for _, j := range entries {
		if j.Symbol == "" {
			return nil, contracts.ValidationError{Field: "symbol", Message: "required"}
		}
		if err := j.Validate(); err != nil {
			return nil, err
		}
		judgments[j.Symbol] = j
	}

	s.logger.WithFields(map[string]interface{}{
		"path":  s.path,
		"count": len(judgments),
	}).Info("Judgments loaded")

	return judgments, nil
}
