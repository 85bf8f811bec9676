package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/heartmarshall/deutsch-vocab/internal/domain"
)

const maxBodyBytes = 1 << 20

// unsavedWarning accompanies responses whose change is only in memory.
const unsavedWarning = "progress could not be saved to disk; the change is kept in memory"

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

type fieldErrorResponse struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func writeValidationError(w http.ResponseWriter, err error) {
	resp := struct {
		Error  string               `json:"error"`
		Fields []fieldErrorResponse `json:"fields,omitempty"`
	}{Error: err.Error()}

	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		for _, fe := range ve.Errors {
			resp.Fields = append(resp.Fields, fieldErrorResponse{Field: fe.Field, Message: fe.Message})
		}
	}
	writeJSON(w, http.StatusBadRequest, resp)
}

// handleError maps domain errors to HTTP status codes. Unexpected errors
// are logged and hidden behind a generic message.
func handleError(w http.ResponseWriter, r *http.Request, log *slog.Logger, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		writeValidationError(w, err)
	case errors.Is(err, domain.ErrLevelNotFound):
		writeError(w, http.StatusNotFound, "level not found")
	case errors.Is(err, domain.ErrWordNotFound):
		writeError(w, http.StatusNotFound, "word not found")
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, domain.ErrAlreadyExists):
		writeError(w, http.StatusConflict, "a word with this identity already exists in the level")
	default:
		log.ErrorContext(r.Context(), "internal error", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

// decodeJSON reads a JSON body into v. Any decoding problem is reported as
// a validation error.
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		return domain.NewValidationError("body", fmt.Sprintf("invalid JSON: %v", err))
	}
	return nil
}

// queryLevels collects repeated and comma-separated level parameters.
func queryLevels(r *http.Request) []string {
	var levels []string
	for _, v := range r.URL.Query()["level"] {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				levels = append(levels, part)
			}
		}
	}
	return levels
}

// queryBool parses a boolean query parameter; missing or malformed values
// yield false.
func queryBool(r *http.Request, name string) bool {
	b, _ := strconv.ParseBool(r.URL.Query().Get(name))
	return b
}

// queryInt parses an integer query parameter; missing or malformed values
// yield def.
func queryInt(r *http.Request, name string, def int) int {
	v := r.URL.Query().Get(name)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return def
	}
	return n
}

func warningFor(saved bool) string {
	if saved {
		return ""
	}
	return unsavedWarning
}
