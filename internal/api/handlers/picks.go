package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/gorilla/mux"

	"github.com/daito-dot/AI-Pick-Daily-sub001/internal/contracts"
	"github.com/daito-dot/AI-Pick-Daily-sub001/internal/picks"
	"github.com/daito-dot/AI-Pick-Daily-sub001/internal/pipeline"
	"github.com/daito-dot/AI-Pick-Daily-sub001/pkg/logger"
)

// runTimeout bounds one API-triggered pipeline run.
const runTimeout = 10 * time.Minute

// PicksHandler serves persisted scoring runs and triggers new ones.
type PicksHandler struct {
	repo         *picks.Repository
	orchestrator *pipeline.Orchestrator
	hub          *ProgressHub
	symbols      []string
	logger       *logger.Logger

	running atomic.Bool
}

// NewPicksHandler creates a picks handler. repo may be nil when the service
// runs without a database; read endpoints then return 503.
func NewPicksHandler(repo *picks.Repository, orchestrator *pipeline.Orchestrator, hub *ProgressHub, symbols []string, log *logger.Logger) *PicksHandler {
	return &PicksHandler{
		repo:         repo,
		orchestrator: orchestrator,
		hub:          hub,
		symbols:      symbols,
		logger:       log,
	}
}

// GetLatest returns the most recent persisted run.
// GET /api/v1/picks/latest
func (h *PicksHandler) GetLatest(w http.ResponseWriter, r *http.Request) {
	if h.repo == nil {
		respondError(w, http.StatusServiceUnavailable, "persistence disabled")
		return
	}

	result, err := h.repo.LatestRun(r.Context())
	if errors.Is(err, picks.ErrNotFound) {
		respondError(w, http.StatusNotFound, "no runs recorded")
		return
	}
	if err != nil {
		h.logger.WithError(err).Error("Failed to load latest run")
		respondError(w, http.StatusInternalServerError, "failed to load latest run")
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// GetHistory returns trailing pick lists for one strategy.
// GET /api/v1/picks/history?strategy=momentum&days=30
func (h *PicksHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	if h.repo == nil {
		respondError(w, http.StatusServiceUnavailable, "persistence disabled")
		return
	}

	strategy, ok := parseStrategy(r.URL.Query().Get("strategy"))
	if !ok {
		respondError(w, http.StatusBadRequest, "strategy must be momentum or conservative")
		return
	}

	days := 30
	if raw := r.URL.Query().Get("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 || parsed > 365 {
			respondError(w, http.StatusBadRequest, "days must be in [1, 365]")
			return
		}
		days = parsed
	}

	history, err := h.repo.PickHistory(r.Context(), strategy, days)
	if err != nil {
		h.logger.WithError(err).Error("Failed to load pick history")
		respondError(w, http.StatusInternalServerError, "failed to load pick history")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"strategy": strategy,
		"history":  history,
	})
}

// GetScores returns one strategy's scored cohort from the latest run.
// GET /api/v1/scores/{strategy}
func (h *PicksHandler) GetScores(w http.ResponseWriter, r *http.Request) {
	if h.repo == nil {
		respondError(w, http.StatusServiceUnavailable, "persistence disabled")
		return
	}

	strategy, ok := parseStrategy(mux.Vars(r)["strategy"])
	if !ok {
		respondError(w, http.StatusBadRequest, "strategy must be momentum or conservative")
		return
	}

	result, err := h.repo.LatestRun(r.Context())
	if errors.Is(err, picks.ErrNotFound) {
		respondError(w, http.StatusNotFound, "no runs recorded")
		return
	}
	if err != nil {
		h.logger.WithError(err).Error("Failed to load latest run")
		respondError(w, http.StatusInternalServerError, "failed to load latest run")
		return
	}

	scores := result.MomentumScores
	if strategy == contracts.StrategyConservative {
		scores = result.ConservativeScores
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"strategy": strategy,
		"market":   result.Market,
		"scores":   scores,
	})
}

// TriggerRun starts a pipeline run in the background, streaming progress to
// the websocket hub. One run at a time.
// POST /api/v1/run
func (h *PicksHandler) TriggerRun(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Symbols []string `json:"symbols"`
	}
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&body)
	}

	symbols := body.Symbols
	if len(symbols) == 0 {
		symbols = h.symbols
	}
	if len(symbols) == 0 {
		respondError(w, http.StatusBadRequest, "no symbols configured")
		return
	}

	if !h.running.CompareAndSwap(false, true) {
		respondError(w, http.StatusConflict, "a run is already in progress")
		return
	}

	go h.runPipeline(symbols)

	respondJSON(w, http.StatusAccepted, map[string]interface{}{
		"status":  "started",
		"symbols": len(symbols),
	})
}

// runPipeline executes one detached run and persists the outcome.
func (h *PicksHandler) runPipeline(symbols []string) {
	defer h.running.Store(false)

	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()

	result, err := h.orchestrator.Run(ctx, symbols, pipeline.RunOptions{
		Progress: func(symbol string, completed, total int) {
			h.hub.Broadcast(ProgressEvent{
				Symbol:    symbol,
				Completed: completed,
				Total:     total,
				At:        time.Now(),
			})
		},
	})
	if err != nil {
		h.logger.WithError(err).Error("Triggered run failed")
		return
	}

	if h.repo != nil {
		if err := h.repo.SaveRun(ctx, result); err != nil {
			h.logger.WithError(err).Error("Failed to persist run")
		}
	}
}

func parseStrategy(raw string) (contracts.Strategy, bool) {
	switch contracts.Strategy(raw) {
	case contracts.StrategyMomentum:
		return contracts.StrategyMomentum, true
	case contracts.StrategyConservative:
		return contracts.StrategyConservative, true
	default:
		return "", false
	}
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
