// internal/api/router.go
package api

import "net/http"

// RegisterRoutes wires every handler onto the mux.
func RegisterRoutes(mux *http.ServeMux, h *Handler) {
	// Catalog
	mux.HandleFunc("GET /catalog/groups", h.listGroups)
	mux.HandleFunc("GET /catalog/{group}/subjects", h.listSubjects)
	mux.HandleFunc("GET /catalog/{group}/{subjectID}/chapters", h.listChapters)

	// Sessions
	mux.HandleFunc("POST /sessions", h.createSession)
	mux.HandleFunc("GET /sessions/{sessionID}", h.getSession)
	mux.HandleFunc("POST /sessions/{sessionID}/start", h.startSession)
	mux.HandleFunc("POST /sessions/{sessionID}/answers", h.recordAnswer)
	mux.HandleFunc("POST /sessions/{sessionID}/finish", h.finishSession)
	mux.HandleFunc("GET /sessions/{sessionID}/result", h.getResult)
	mux.HandleFunc("GET /sessions/{sessionID}/export", h.exportResult)

	// Users
	mux.HandleFunc("GET /users/{userID}/history", h.listHistory)
	mux.HandleFunc("GET /users/{userID}/mistakes", h.listMistakes)
	mux.HandleFunc("GET /users/{userID}/profile", h.getProfile)
}
