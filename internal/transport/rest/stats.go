package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/deutsch-vocab/internal/domain"
	"github.com/heartmarshall/deutsch-vocab/internal/service/stats"
)

type statsService interface {
	LevelStats(ctx context.Context, level string) (domain.LevelStats, error)
	Overview(ctx context.Context, levels []string) (*stats.Overview, error)
	TopDifficultWords(ctx context.Context, level string, limit int) ([]domain.WordRecord, error)
	ListLevels(ctx context.Context) ([]stats.LevelSummary, error)
}

// StatsHandler serves read-only progress statistics.
type StatsHandler struct {
	svc statsService
	log *slog.Logger
}

// NewStatsHandler creates a new StatsHandler.
func NewStatsHandler(svc statsService, logger *slog.Logger) *StatsHandler {
	return &StatsHandler{
		svc: svc,
		log: logger.With("handler", "stats"),
	}
}

type overviewResponse struct {
	Levels    []statsResponse `json:"levels"`
	Aggregate statsResponse   `json:"aggregate"`
}

// Overview handles GET /api/stats. Without level parameters every level
// is included.
func (h *StatsHandler) Overview(w http.ResponseWriter, r *http.Request) {
	ov, err := h.svc.Overview(r.Context(), queryLevels(r))
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	resp := overviewResponse{
		Levels:    make([]statsResponse, 0, len(ov.Levels)),
		Aggregate: toStatsResponse(ov.Aggregate),
	}
	for _, st := range ov.Levels {
		resp.Levels = append(resp.Levels, toStatsResponse(st))
	}
	writeJSON(w, http.StatusOK, resp)
}

type levelSummaryResponse struct {
	Level string        `json:"level"`
	Words int           `json:"words"`
	Stats statsResponse `json:"stats"`
}

// Levels handles GET /api/levels.
func (h *StatsHandler) Levels(w http.ResponseWriter, r *http.Request) {
	levels, err := h.svc.ListLevels(r.Context())
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	resp := make([]levelSummaryResponse, 0, len(levels))
	for _, l := range levels {
		resp = append(resp, levelSummaryResponse{Level: l.Level, Words: l.Words, Stats: toStatsResponse(l.Stats)})
	}
	writeJSON(w, http.StatusOK, map[string]any{"levels": resp})
}

// LevelStats handles GET /api/levels/{level}/stats.
func (h *StatsHandler) LevelStats(w http.ResponseWriter, r *http.Request) {
	st, err := h.svc.LevelStats(r.Context(), r.PathValue("level"))
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toStatsResponse(st))
}

// Difficult handles GET /api/levels/{level}/difficult.
func (h *StatsHandler) Difficult(w http.ResponseWriter, r *http.Request) {
	level := r.PathValue("level")
	words, err := h.svc.TopDifficultWords(r.Context(), level, queryInt(r, "limit", 0))
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	resp := make([]wordResponse, 0, len(words))
	for _, wr := range words {
		resp = append(resp, toWordResponse(level, wr))
	}
	writeJSON(w, http.StatusOK, map[string]any{"level": level, "words": resp})
}
