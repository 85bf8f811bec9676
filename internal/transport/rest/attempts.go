package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/deutsch-vocab/internal/domain"
)

type attemptLister interface {
	ListRecent(ctx context.Context, level string, limit int) ([]domain.Attempt, error)
}

// AttemptsHandler exposes the attempt journal. It reports the journal as
// disabled when no database is configured.
type AttemptsHandler struct {
	journal attemptLister
	log     *slog.Logger
}

// NewAttemptsHandler creates a new AttemptsHandler. journal may be nil.
func NewAttemptsHandler(journal attemptLister, logger *slog.Logger) *AttemptsHandler {
	return &AttemptsHandler{
		journal: journal,
		log:     logger.With("handler", "attempts"),
	}
}

type attemptsResponse struct {
	Enabled  bool              `json:"enabled"`
	Attempts []attemptResponse `json:"attempts"`
}

// List handles GET /api/attempts.
func (h *AttemptsHandler) List(w http.ResponseWriter, r *http.Request) {
	if h.journal == nil {
		writeJSON(w, http.StatusOK, attemptsResponse{Attempts: []attemptResponse{}})
		return
	}

	attempts, err := h.journal.ListRecent(r.Context(), r.URL.Query().Get("level"), queryInt(r, "limit", 0))
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	resp := attemptsResponse{Enabled: true, Attempts: make([]attemptResponse, 0, len(attempts))}
	for _, a := range attempts {
		resp.Attempts = append(resp.Attempts, toAttemptResponse(a))
	}
	writeJSON(w, http.StatusOK, resp)
}
