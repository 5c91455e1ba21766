package handlers

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/daito-dot/AI-Pick-Daily-sub001/internal/contracts"
	"github.com/daito-dot/AI-Pick-Daily-sub001/pkg/logger"
)

func TestParseStrategy(t *testing.T) {
	s, ok := parseStrategy("momentum")
	assert.True(t, ok)
	assert.Equal(t, contracts.StrategyMomentum, s)

	s, ok = parseStrategy("conservative")
	assert.True(t, ok)
	assert.Equal(t, contracts.StrategyConservative, s)

	_, ok = parseStrategy("")
	assert.False(t, ok)
	_, ok = parseStrategy("aggressive")
	assert.False(t, ok)
}

func TestGetLatest_NoDatabaseConfigured(t *testing.T) {
	handler := NewPicksHandler(nil, nil, nil, nil, logger.NewNop())

	rec := httptest.NewRecorder()
	handler.GetLatest(rec, httptest.NewRequest("GET", "/api/v1/picks/latest", nil))

	assert.Equal(t, 503, rec.Code)
	assert.Contains(t, rec.Body.String(), "persistence disabled")
}

func TestGetHistory_RejectsBadParams(t *testing.T) {
	handler := NewPicksHandler(nil, nil, nil, nil, logger.NewNop())

	rec := httptest.NewRecorder()
	handler.GetHistory(rec, httptest.NewRequest("GET", "/api/v1/picks/history?strategy=momentum", nil))
	assert.Equal(t, 503, rec.Code, "repo check comes first")
}

func TestTriggerRun_NoSymbols(t *testing.T) {
	handler := NewPicksHandler(nil, nil, nil, nil, logger.NewNop())

	rec := httptest.NewRecorder()
	handler.TriggerRun(rec, httptest.NewRequest("POST", "/api/v1/run", nil))

	assert.Equal(t, 400, rec.Code)
	assert.Contains(t, rec.Body.String(), "no symbols")
}
