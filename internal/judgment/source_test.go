package judgment

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daito-dot/AI-Pick-Daily-sub001/internal/contracts"
	"github.com/daito-dot/AI-Pick-Daily-sub001/pkg/logger"
)

func writeJudgments(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "judgments.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestFileSource_LoadsJudgments(t *testing.T) {
	path := writeJudgments(t, `[
		{"symbol": "AAPL", "decision": "buy", "confidence": 0.9},
		{"symbol": "MSFT", "decision": "hold", "confidence": 0.7},
		{"symbol": "TSLA", "decision": "avoid", "confidence": 0.8}
	]`)

	source := NewFileSource(path, logger.NewNop())
	judgments, err := source.Judgments(context.Background())
	require.NoError(t, err)

	require.Len(t, judgments, 3)
	assert.Equal(t, contracts.DecisionBuy, judgments["AAPL"].Decision)
	assert.Equal(t, 0.9, judgments["AAPL"].Confidence)
}

func TestFileSource_LaterEntryWins(t *testing.T) {
	path := writeJudgments(t, `[
		{"symbol": "AAPL", "decision": "hold", "confidence": 0.4},
		{"symbol": "AAPL", "decision": "buy", "confidence": 0.9}
	]`)

	source := NewFileSource(path, logger.NewNop())
	judgments, err := source.Judgments(context.Background())
	require.NoError(t, err)

	assert.Equal(t, contracts.DecisionBuy, judgments["AAPL"].Decision)
}

func TestFileSource_RejectsUnknownDecision(t *testing.T) {
	path := writeJudgments(t, `[{"symbol": "AAPL", "decision": "strong_buy", "confidence": 0.9}]`)

	source := NewFileSource(path, logger.NewNop())
	_, err := source.Judgments(context.Background())

	var verr contracts.ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestFileSource_RejectsMissingSymbol(t *testing.T) {
	path := writeJudgments(t, `[{"decision": "buy", "confidence": 0.9}]`)

	source := NewFileSource(path, logger.NewNop())
	_, err := source.Judgments(context.Background())
	assert.Error(t, err)
}

func TestFileSource_MissingFile(t *testing.T) {
	source := NewFileSource("/nonexistent/judgments.json", logger.NewNop())
	_, err := source.Judgments(context.Background())
	assert.Error(t, err)
}
