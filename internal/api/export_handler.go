package api

import (
	"fmt"
	"net/http"
	"strings"
)

// ── Handlers ────────────────────────────────────────────────────────────────

// GET /sessions/{sessionID}/export
//
// Plain-text result download, the same summary the exam page offers after a
// finished attempt.
func (h *Handler) exportResult(w http.ResponseWriter, r *http.Request) {
	entry, ok := h.sessionByID(r.PathValue("sessionID"))
	if !ok {
		respondError(w, http.StatusNotFound, "session not found")
		return
	}

	result, ok := entry.session.Result()
	if !ok {
		respondError(w, http.StatusConflict, "session has not finished")
		return
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Kafa'ah Exam Result\n")
	fmt.Fprintf(&b, "Subject: %s\n", entry.examCtx.SubjectID)
	fmt.Fprintf(&b, "Chapter: %s\n", entry.examCtx.ChapterName)
	fmt.Fprintf(&b, "Score: %d / %d\n", result.CorrectCount, result.TotalCount)
	fmt.Fprintf(&b, "Percentage: %.2f%%\n", result.ScorePercent())
	fmt.Fprintf(&b, "Time Taken: %ds\n", result.ElapsedSeconds)

	filename := fmt.Sprintf("result_%s.txt", entry.examCtx.SubjectID)
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(b.String()))
}
