package api

import (
	"net/http"

	"github.com/kafaahbd/backend/internal/domain/catalog"
)

// ── Request / Response types ────────────────────────────────────────────────

type ChapterResponse struct {
	Name       string `json:"name"`
	ComingSoon bool   `json:"coming_soon"`
}

// ── Handlers ────────────────────────────────────────────────────────────────

// listGroups godoc
// @Summary  List academic groups
// @Tags     catalog
// @Produce  json
// @Success  200 {array} string
// @Router   /catalog/groups [get]
func (h *Handler) listGroups(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, catalog.Groups())
}

// GET /catalog/{group}/subjects
func (h *Handler) listSubjects(w http.ResponseWriter, r *http.Request) {
	subjects, ok := catalog.Subjects(r.PathValue("group"))
	if !ok {
		respondError(w, http.StatusNotFound, "group not found")
		return
	}
	respondJSON(w, http.StatusOK, subjects)
}

// GET /catalog/{group}/{subjectID}/chapters
func (h *Handler) listChapters(w http.ResponseWriter, r *http.Request) {
	chapters, ok := catalog.Chapters(r.PathValue("group"), r.PathValue("subjectID"))
	if !ok {
		respondError(w, http.StatusNotFound, "subject not found")
		return
	}

	out := make([]ChapterResponse, 0, len(chapters))
	for _, ch := range chapters {
		out = append(out, ChapterResponse{
			Name:       ch.Name,
			ComingSoon: ch.Source == catalog.SourceComingSoon,
		})
	}
	respondJSON(w, http.StatusOK, out)
}
