package api

import (
	"net/http"

	"github.com/kafaahbd/backend/internal/domain/catalog"
	"github.com/kafaahbd/backend/internal/domain/examsession"
	"github.com/kafaahbd/backend/internal/service"
)

// ── Request / Response types ────────────────────────────────────────────────

type CreateSessionRequest struct {
	Group     string `json:"group"`
	SubjectID string `json:"subject_id"`
	Chapter   string `json:"chapter"`
	UserID    string `json:"user_id,omitempty"`
}

type CreateSessionResponse struct {
	ID       string `json:"id"`
	State    string `json:"state"`
	PoolSize int    `json:"pool_size"`
}

type StartSessionRequest struct {
	QuestionCount   int `json:"question_count"`
	DurationSeconds int `json:"duration_seconds"`
}

// SessionQuestion is a selected question as shown to the candidate: the
// correct option never leaves the server while the session runs.
type SessionQuestion struct {
	Position int      `json:"position"`
	Question string   `json:"question"`
	Options  []string `json:"options"`
}

type StartSessionResponse struct {
	ID               string            `json:"id"`
	State            string            `json:"state"`
	Questions        []SessionQuestion `json:"questions"`
	RemainingSeconds int               `json:"remaining_seconds"`
}

type RecordAnswerRequest struct {
	Position    int `json:"position"`
	OptionIndex int `json:"option_index"`
}

type SessionStatusResponse struct {
	ID               string `json:"id"`
	State            string `json:"state"`
	RemainingSeconds int    `json:"remaining_seconds"`
	TotalQuestions   int    `json:"total_questions"`
}

type ReviewEntry struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectOption int      `json:"correct_option"`
	Answer        *int     `json:"answer,omitempty"`
	Correct       bool     `json:"correct"`
	Explanation   string   `json:"explanation,omitempty"`
}

type ResultResponse struct {
	SessionID      string        `json:"session_id"`
	CorrectCount   int           `json:"correct_count"`
	WrongCount     int           `json:"wrong_count"`
	TotalCount     int           `json:"total_count"`
	ElapsedSeconds int           `json:"elapsed_seconds"`
	ScorePercent   float64       `json:"score_percent"`
	Review         []ReviewEntry `json:"review"`
}

// ── Handlers ────────────────────────────────────────────────────────────────

// createSession godoc
// @Summary  Load a chapter's question pool and open an exam session
// @Tags     sessions
// @Accept   json
// @Produce  json
// @Param    request body CreateSessionRequest true "chapter selection"
// @Success  201 {object} CreateSessionResponse
// @Failure  404 {object} map[string]string
// @Failure  409 {object} map[string]string "chapter not yet published"
// @Router   /sessions [post]
func (h *Handler) createSession(w http.ResponseWriter, r *http.Request) {
	var req CreateSessionRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	chapter, ok := catalog.Find(req.Group, req.SubjectID, req.Chapter)
	if !ok {
		respondError(w, http.StatusNotFound, "chapter not found")
		return
	}

	pool, err := h.loader.Load(r.Context(), chapter, req.Group, req.SubjectID)
	if err != nil {
		h.handleLoadError(w, err)
		return
	}

	sess := examsession.New(pool)
	entry := &sessionEntry{
		session: sess,
		examCtx: service.ExamContext{
			CategoryGroup: req.Group,
			SubjectID:     req.SubjectID,
			ChapterName:   chapter.Name,
		},
		userID: req.UserID,
	}

	h.mu.Lock()
	h.sessions[sess.ID] = entry
	h.mu.Unlock()

	h.results.TrackSession(sess.ID)
	go h.watchSession(entry)

	respondJSON(w, http.StatusCreated, CreateSessionResponse{
		ID:       sess.ID,
		State:    sess.State().String(),
		PoolSize: len(pool),
	})
}

// POST /sessions/{sessionID}/start
func (h *Handler) startSession(w http.ResponseWriter, r *http.Request) {
	entry, ok := h.sessionByID(r.PathValue("sessionID"))
	if !ok {
		respondError(w, http.StatusNotFound, "session not found")
		return
	}

	var req StartSessionRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	cfg := examsession.Config{
		QuestionCount:   req.QuestionCount,
		DurationSeconds: req.DurationSeconds,
	}
	if err := entry.session.Start(cfg); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	selected := entry.session.Questions()
	questions := make([]SessionQuestion, 0, len(selected))
	for i, q := range selected {
		questions = append(questions, SessionQuestion{
			Position: i,
			Question: q.Text,
			Options:  q.Options,
		})
	}

	respondJSON(w, http.StatusOK, StartSessionResponse{
		ID:               entry.session.ID,
		State:            entry.session.State().String(),
		Questions:        questions,
		RemainingSeconds: entry.session.Remaining(),
	})
}

// POST /sessions/{sessionID}/answers
func (h *Handler) recordAnswer(w http.ResponseWriter, r *http.Request) {
	entry, ok := h.sessionByID(r.PathValue("sessionID"))
	if !ok {
		respondError(w, http.StatusNotFound, "session not found")
		return
	}

	var req RecordAnswerRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	switch err := entry.session.RecordAnswer(req.Position, req.OptionIndex); err {
	case nil:
		respondJSON(w, http.StatusOK, map[string]string{"status": "recorded"})
	case examsession.ErrNotRunning:
		respondError(w, http.StatusConflict, "session is not running")
	case examsession.ErrOutOfRange:
		respondError(w, http.StatusBadRequest, "position or option index out of range")
	default:
		respondError(w, http.StatusInternalServerError, "failed to record answer")
	}
}

// finishSession godoc
// @Summary  Finish a running session and return its scored result
// @Tags     sessions
// @Produce  json
// @Param    sessionID path string true "session ID"
// @Success  200 {object} ResultResponse
// @Failure  409 {object} map[string]string "session never started"
// @Router   /sessions/{sessionID}/finish [post]
func (h *Handler) finishSession(w http.ResponseWriter, r *http.Request) {
	entry, ok := h.sessionByID(r.PathValue("sessionID"))
	if !ok {
		respondError(w, http.StatusNotFound, "session not found")
		return
	}
	if entry.session.State() == examsession.StateConfiguring {
		respondError(w, http.StatusConflict, "session has not been started")
		return
	}

	// Finish stops the countdown synchronously; persistence runs behind the
	// session watcher and never delays this response.
	result := entry.session.Finish()
	respondJSON(w, http.StatusOK, h.resultResponse(entry, result))
}

// GET /sessions/{sessionID}
func (h *Handler) getSession(w http.ResponseWriter, r *http.Request) {
	entry, ok := h.sessionByID(r.PathValue("sessionID"))
	if !ok {
		respondError(w, http.StatusNotFound, "session not found")
		return
	}

	respondJSON(w, http.StatusOK, SessionStatusResponse{
		ID:               entry.session.ID,
		State:            entry.session.State().String(),
		RemainingSeconds: entry.session.Remaining(),
		TotalQuestions:   len(entry.session.Questions()),
	})
}

// GET /sessions/{sessionID}/result
func (h *Handler) getResult(w http.ResponseWriter, r *http.Request) {
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
	respondJSON(w, http.StatusOK, h.resultResponse(entry, result))
}

func (h *Handler) resultResponse(entry *sessionEntry, result examsession.Result) ResultResponse {
	review := entry.session.Review()
	entries := make([]ReviewEntry, 0, len(review))
	for _, item := range review {
		e := ReviewEntry{
			Question:      item.Question.Text,
			Options:       item.Question.Options,
			CorrectOption: item.Question.CorrectIndex,
			Correct:       item.Correct,
			Explanation:   item.Question.Explanation,
		}
		if item.Answered {
			answer := item.Answer
			e.Answer = &answer
		}
		entries = append(entries, e)
	}

	return ResultResponse{
		SessionID:      entry.session.ID,
		CorrectCount:   result.CorrectCount,
		WrongCount:     result.WrongCount(),
		TotalCount:     result.TotalCount,
		ElapsedSeconds: result.ElapsedSeconds,
		ScorePercent:   result.ScorePercent(),
		Review:         entries,
	}
}
