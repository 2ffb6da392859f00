package store

import (
	"context"
	"errors"
	"time"

	"github.com/kafaahbd/backend/internal/domain/question"
)

var (
	ErrNotFound = errors.New("not found")
)

// StoredQuestion is one pre-normalized row of the questions table. The
// one-time import tool writes these; the engine only reads them.
type StoredQuestion struct {
	ID            string
	CategoryGroup string
	SubjectID     string
	ChapterName   string
	QuestionText  string
	Options       []string
	CorrectOption int
	Explanation   string
}

// ExamHistoryEntry is one finished exam attempt, append-only.
type ExamHistoryEntry struct {
	ID               string
	UserID           string
	CategoryGroup    string
	SubjectID        string
	ChapterName      string
	TotalQuestions   int
	CorrectAnswers   int
	WrongAnswers     int
	TimeTakenSeconds int
	ScorePercent     float64
	CreatedAt        time.Time
}

// MistakeEntry is one incorrectly answered question per user, keyed by
// (user_id, question_text). A later mistake on the same text replaces the
// earlier record.
type MistakeEntry struct {
	UserID        string
	QuestionText  string
	Options       []string
	CorrectOption int
	Explanation   string
}

// Profile carries the per-user points ledger.
type Profile struct {
	ID       string
	FullName string
	Points   int
}

// QuestionStore is the loader's view of the records store.
type QuestionStore interface {
	QuestionsByChapter(ctx context.Context, group, subjectID, chapterName string) ([]question.Question, error)
}

// ResultStore is the persister's view: the three independent write paths of a
// finished session, plus the profile read the points update needs.
type ResultStore interface {
	SaveExamHistory(ctx context.Context, entry ExamHistoryEntry) error
	UpsertMistake(ctx context.Context, entry MistakeEntry) error
	GetProfile(ctx context.Context, userID string) (Profile, error)
	CreateProfile(ctx context.Context, profile Profile) error
	AddPoints(ctx context.Context, userID string, delta int) error
}
