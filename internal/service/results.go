// internal/service/results.go
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/kafaahbd/backend/internal/domain/examsession"
	"github.com/kafaahbd/backend/internal/store"
	"github.com/kafaahbd/backend/internal/worker"
)

// ErrPersistenceFailed aggregates whichever of the persistence writes failed.
// The exam result itself stays valid and already displayed.
var ErrPersistenceFailed = errors.New("saving exam results failed")

const pointsPerCorrect = 10

// ExamContext says which chapter a finished session belonged to.
type ExamContext struct {
	CategoryGroup string
	SubjectID     string
	ChapterName   string
}

// ResultService records finished sessions: one exam_history row, a mistake
// upsert per wrongly answered question, and a points-ledger update. The three
// steps are independent and best-effort; persistence runs asynchronously so
// the user sees their result before any store I/O. It owns the per-session
// WaitGroups so the store stays a pure persistence layer.
type ResultService struct {
	store  store.ResultStore
	logger *slog.Logger

	mu      sync.RWMutex
	pending map[string]*sync.WaitGroup // sessionID → WaitGroup
}

// NewResultService creates a ResultService.
func NewResultService(s store.ResultStore, logger *slog.Logger) *ResultService {
	return &ResultService{
		store:   s,
		logger:  logger,
		pending: make(map[string]*sync.WaitGroup),
	}
}

// TrackSession registers a session for WaitGroup tracking.
// Call this after creating a new session.
func (rs *ResultService) TrackSession(sessionID string) {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	rs.pending[sessionID] = &sync.WaitGroup{}
}

// SubmitResult persists a finished session in the background. Failures are
// logged, never surfaced to the user flow.
func (rs *ResultService) SubmitResult(sessionID string, result examsession.Result, review []examsession.Review, examCtx ExamContext, userID string) {
	rs.mu.RLock()
	wg, ok := rs.pending[sessionID]
	rs.mu.RUnlock()

	if ok {
		wg.Add(1)
	}

	go func() {
		if ok {
			defer wg.Done()
		}
		// context.Background: persistence runs after the originating request
		// has already returned the result and must not be cancelled with it.
		if err := rs.Persist(context.Background(), result, review, examCtx, userID); err != nil {
			rs.logger.Error("failed to save exam results",
				"session_id", sessionID,
				"user_id", userID,
				"error", err,
			)
		}
	}()
}

// WaitForSession blocks until background persistence for a session has finished.
func (rs *ResultService) WaitForSession(sessionID string) {
	rs.mu.RLock()
	wg, ok := rs.pending[sessionID]
	rs.mu.RUnlock()

	if ok {
		wg.Wait()
	}
}

// Persist performs the three writes. With no identified user it is a silent
// no-op: the session result is still valid, just never stored. Each step is
// attempted regardless of the others; history goes first so it exists even
// when a later step fails. All failures come back joined under
// ErrPersistenceFailed.
func (rs *ResultService) Persist(ctx context.Context, result examsession.Result, review []examsession.Review, examCtx ExamContext, userID string) error {
	if userID == "" {
		return nil
	}

	var failures []error

	entry := store.ExamHistoryEntry{
		UserID:           userID,
		CategoryGroup:    examCtx.CategoryGroup,
		SubjectID:        examCtx.SubjectID,
		ChapterName:      examCtx.ChapterName,
		TotalQuestions:   result.TotalCount,
		CorrectAnswers:   result.CorrectCount,
		WrongAnswers:     result.WrongCount(),
		TimeTakenSeconds: result.ElapsedSeconds,
		ScorePercent:     result.ScorePercent(),
	}
	if err := rs.store.SaveExamHistory(ctx, entry); err != nil {
		failures = append(failures, fmt.Errorf("exam history: %w", err))
	}

	if err := rs.saveMistakes(ctx, review, userID); err != nil {
		failures = append(failures, err)
	}

	if err := rs.updatePoints(ctx, userID, result.CorrectCount); err != nil {
		failures = append(failures, fmt.Errorf("points: %w", err))
	}

	if len(failures) > 0 {
		return fmt.Errorf("%w: %w", ErrPersistenceFailed, errors.Join(failures...))
	}
	return nil
}

// saveMistakes upserts one record per question the user answered and got
// wrong. Unanswered questions score as incorrect but are not mistakes. The
// upserts are independent of each other, so they fan out over a small pool.
func (rs *ResultService) saveMistakes(ctx context.Context, review []examsession.Review, userID string) error {
	var entries []store.MistakeEntry
	for _, item := range review {
		if !item.Answered || item.Correct {
			continue
		}
		entries = append(entries, store.MistakeEntry{
			UserID:        userID,
			QuestionText:  item.Question.Text,
			Options:       item.Question.Options,
			CorrectOption: item.Question.CorrectIndex,
			Explanation:   item.Question.Explanation,
		})
	}
	if len(entries) == 0 {
		return nil
	}

	pool := worker.NewPool[error](3, len(entries))
	for _, entry := range entries {
		entry := entry
		pool.Submit(entry.QuestionText, func() error {
			return rs.store.UpsertMistake(ctx, entry)
		})
	}
	pool.Close()

	var errs []error
	for res := range pool.Results() {
		if res.Output != nil {
			errs = append(errs, fmt.Errorf("mistake %q: %w", res.JobID, res.Output))
		}
	}
	return errors.Join(errs...)
}

// updatePoints adds 10 points per correct answer to the user's ledger,
// creating the profile row lazily on the first finished session.
func (rs *ResultService) updatePoints(ctx context.Context, userID string, correctCount int) error {
	delta := correctCount * pointsPerCorrect

	_, err := rs.store.GetProfile(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return rs.store.CreateProfile(ctx, store.Profile{ID: userID, Points: delta})
	}
	if err != nil {
		return err
	}
	return rs.store.AddPoints(ctx, userID, delta)
}
