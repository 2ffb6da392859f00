package api

import (
	"net/http"
	"time"
)

// ── Request / Response types ────────────────────────────────────────────────

type HistoryEntryResponse struct {
	ID               string    `json:"id"`
	CategoryGroup    string    `json:"category_group"`
	SubjectID        string    `json:"subject_id"`
	ChapterName      string    `json:"chapter_name"`
	TotalQuestions   int       `json:"total_questions"`
	CorrectAnswers   int       `json:"correct_answers"`
	WrongAnswers     int       `json:"wrong_answers"`
	TimeTakenSeconds int       `json:"time_taken_seconds"`
	ScorePercent     float64   `json:"score_percent"`
	CreatedAt        time.Time `json:"created_at"`
}

type MistakeResponse struct {
	QuestionText  string   `json:"question_text"`
	Options       []string `json:"options"`
	CorrectOption int      `json:"correct_option"`
	Explanation   string   `json:"explanation,omitempty"`
}

type ProfileResponse struct {
	ID       string `json:"id"`
	FullName string `json:"full_name"`
	Points   int    `json:"points"`
}

// ── Handlers ────────────────────────────────────────────────────────────────

// GET /users/{userID}/history
func (h *Handler) listHistory(w http.ResponseWriter, r *http.Request) {
	entries, err := h.store.ListExamHistory(r.Context(), r.PathValue("userID"))
	if h.handleStoreError(w, err, "history") {
		return
	}

	out := make([]HistoryEntryResponse, 0, len(entries))
	for _, entry := range entries {
		out = append(out, HistoryEntryResponse{
			ID:               entry.ID,
			CategoryGroup:    entry.CategoryGroup,
			SubjectID:        entry.SubjectID,
			ChapterName:      entry.ChapterName,
			TotalQuestions:   entry.TotalQuestions,
			CorrectAnswers:   entry.CorrectAnswers,
			WrongAnswers:     entry.WrongAnswers,
			TimeTakenSeconds: entry.TimeTakenSeconds,
			ScorePercent:     entry.ScorePercent,
			CreatedAt:        entry.CreatedAt,
		})
	}
	respondJSON(w, http.StatusOK, out)
}

// GET /users/{userID}/mistakes
func (h *Handler) listMistakes(w http.ResponseWriter, r *http.Request) {
	entries, err := h.store.ListMistakes(r.Context(), r.PathValue("userID"))
	if h.handleStoreError(w, err, "mistakes") {
		return
	}

	out := make([]MistakeResponse, 0, len(entries))
	for _, entry := range entries {
		out = append(out, MistakeResponse{
			QuestionText:  entry.QuestionText,
			Options:       entry.Options,
			CorrectOption: entry.CorrectOption,
			Explanation:   entry.Explanation,
		})
	}
	respondJSON(w, http.StatusOK, out)
}

// GET /users/{userID}/profile
func (h *Handler) getProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := h.store.GetProfile(r.Context(), r.PathValue("userID"))
	if h.handleStoreError(w, err, "profile") {
		return
	}

	respondJSON(w, http.StatusOK, ProfileResponse{
		ID:       profile.ID,
		FullName: profile.FullName,
		Points:   profile.Points,
	})
}
