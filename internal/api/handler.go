// internal/api/handler.go
package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sync"

	"github.com/kafaahbd/backend/internal/domain/examsession"
	"github.com/kafaahbd/backend/internal/loader"
	"github.com/kafaahbd/backend/internal/service"
	"github.com/kafaahbd/backend/internal/store"
)

// Handler holds all dependencies needed by HTTP handlers.
// Instead of relying on package-level globals, every handler method
// receives its dependencies through this struct.
type Handler struct {
	store   *store.SQLiteStore
	loader  *loader.Loader
	results *service.ResultService
	logger  *slog.Logger

	mu       sync.RWMutex
	sessions map[string]*sessionEntry
}

// sessionEntry ties a running session to the chapter it was loaded for and
// the (possibly absent) identified user.
type sessionEntry struct {
	session *examsession.Session
	examCtx service.ExamContext
	userID  string
}

// NewHandler creates a Handler with the given dependencies.
func NewHandler(s *store.SQLiteStore, l *loader.Loader, results *service.ResultService, logger *slog.Logger) *Handler {
	return &Handler{
		store:    s,
		loader:   l,
		results:  results,
		logger:   logger,
		sessions: make(map[string]*sessionEntry),
	}
}

func (h *Handler) sessionByID(id string) (*sessionEntry, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	entry, ok := h.sessions[id]
	return entry, ok
}

// respondJSON writes a JSON response with the given status code.
func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// respondError writes a JSON error body with the given status code.
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// decodeJSON decodes the request body into v. Returns false (with a 400
// already written) when the body is not valid JSON.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		respondError(w, http.StatusBadRequest, "invalid json")
		return false
	}
	return true
}

// handleStoreError checks for common store errors and writes the appropriate
// HTTP response. Returns true if an error was handled (caller should return).
func (h *Handler) handleStoreError(w http.ResponseWriter, err error, entity string) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, store.ErrNotFound) {
		respondError(w, http.StatusNotFound, entity+" not found")
		return true
	}
	h.logger.Error("store error", "error", err, "entity", entity)
	respondError(w, http.StatusInternalServerError, "internal error")
	return true
}

// handleLoadError maps loader failures onto responses. Every branch is a
// recoverable condition the caller may retry with a different chapter.
func (h *Handler) handleLoadError(w http.ResponseWriter, err error) {
	var fetchErr *loader.FetchError
	switch {
	case errors.Is(err, loader.ErrSourceUnavailable):
		respondError(w, http.StatusConflict, "questions for this chapter are coming soon")
	case errors.Is(err, loader.ErrEmptyResult):
		respondError(w, http.StatusNotFound, "no questions found for this chapter")
	case errors.As(err, &fetchErr):
		h.logger.Error("question fetch failed", "url", fetchErr.URL, "error", err)
		respondError(w, http.StatusBadGateway, "failed to fetch questions")
	default:
		h.logger.Error("question load failed", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to load questions")
	}
}

// watchSession submits persistence once a session finishes, whether by manual
// finish or the countdown. The finish response itself never waits on this.
func (h *Handler) watchSession(entry *sessionEntry) {
	<-entry.session.Done()
	result, ok := entry.session.Result()
	if !ok {
		return
	}
	h.results.SubmitResult(entry.session.ID, result, entry.session.Review(), entry.examCtx, entry.userID)
}
