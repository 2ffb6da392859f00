package examsession_test

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/kafaahbd/backend/internal/domain/examsession"
	"github.com/kafaahbd/backend/internal/domain/question"
)

func makePool(n int) []question.Question {
	pool := make([]question.Question, 0, n)
	for i := 0; i < n; i++ {
		pool = append(pool, question.Question{
			Text:         fmt.Sprintf("Question %d", i),
			Options:      []string{"opt 0", "opt 1", "opt 2", "opt 3"},
			CorrectIndex: i % 4,
		})
	}
	return pool
}

func mustStart(t *testing.T, sess *examsession.Session, cfg examsession.Config) {
	t.Helper()
	if err := sess.Start(cfg); err != nil {
		t.Fatalf("unexpected start error: %v", err)
	}
}

func TestStart_EmptyPool(t *testing.T) {
	sess := examsession.New(nil)

	err := sess.Start(examsession.Config{QuestionCount: 10, DurationSeconds: 600})
	if !errors.Is(err, examsession.ErrEmptyPool) {
		t.Fatalf("expected ErrEmptyPool, got %v", err)
	}
	if sess.State() != examsession.StateConfiguring {
		t.Errorf("expected session to stay in configuring, got %v", sess.State())
	}
}

func TestStart_InvalidConfig(t *testing.T) {
	sess := examsession.New(makePool(5))

	if err := sess.Start(examsession.Config{QuestionCount: 0, DurationSeconds: 600}); !errors.Is(err, examsession.ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestStart_TruncatesToPoolSize(t *testing.T) {
	sess := examsession.New(makePool(7))
	mustStart(t, sess, examsession.Config{QuestionCount: 20, DurationSeconds: 600})

	selected := sess.Questions()
	if len(selected) != 7 {
		t.Fatalf("expected 7 questions, got %d", len(selected))
	}

	seen := make(map[string]bool)
	for _, q := range selected {
		if seen[q.Text] {
			t.Errorf("duplicate question selected: %q", q.Text)
		}
		seen[q.Text] = true
	}
}

func TestStart_RandomizesSelection(t *testing.T) {
	pool := makePool(20)

	first := examsession.New(pool)
	mustStart(t, first, examsession.Config{QuestionCount: 20, DurationSeconds: 600})
	firstOrder := first.Questions()

	// Statistically near-certain to differ at least once across 10 draws.
	foundDifferentOrder := false
	for i := 0; i < 10; i++ {
		sess := examsession.New(pool)
		mustStart(t, sess, examsession.Config{QuestionCount: 20, DurationSeconds: 600})
		if !sameOrder(firstOrder, sess.Questions()) {
			foundDifferentOrder = true
			break
		}
	}
	if !foundDifferentOrder {
		t.Error("expected question order to vary across sessions")
	}
}

func TestStart_WhileRunningIsIgnored(t *testing.T) {
	sess := examsession.New(makePool(10))
	mustStart(t, sess, examsession.Config{QuestionCount: 5, DurationSeconds: 600})
	selected := sess.Questions()

	if err := sess.Start(examsession.Config{QuestionCount: 3, DurationSeconds: 60}); err != nil {
		t.Fatalf("unexpected error from second start: %v", err)
	}
	if len(sess.Questions()) != len(selected) {
		t.Error("expected second start to leave the running session untouched")
	}
}

func TestRecordAnswer_Bounds(t *testing.T) {
	sess := examsession.New(makePool(5))
	mustStart(t, sess, examsession.Config{QuestionCount: 5, DurationSeconds: 600})

	if err := sess.RecordAnswer(5, 0); !errors.Is(err, examsession.ErrOutOfRange) {
		t.Errorf("expected ErrOutOfRange for position, got %v", err)
	}
	if err := sess.RecordAnswer(0, 4); !errors.Is(err, examsession.ErrOutOfRange) {
		t.Errorf("expected ErrOutOfRange for option, got %v", err)
	}
	if err := sess.RecordAnswer(0, 3); err != nil {
		t.Errorf("unexpected error for valid answer: %v", err)
	}
}

func TestRecordAnswer_OverwriteScoresLastValue(t *testing.T) {
	pool := []question.Question{{
		Text:         "only",
		Options:      []string{"wrong", "right"},
		CorrectIndex: 1,
	}}
	sess := examsession.New(pool)
	mustStart(t, sess, examsession.Config{QuestionCount: 1, DurationSeconds: 600})

	if err := sess.RecordAnswer(0, 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := sess.RecordAnswer(0, 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	result := sess.Finish()
	if result.CorrectCount != 1 {
		t.Errorf("expected the second answer to be scored, got %d correct", result.CorrectCount)
	}
}

func TestFinish_ScoresUnansweredAsIncorrect(t *testing.T) {
	sess := examsession.New(makePool(10))
	mustStart(t, sess, examsession.Config{QuestionCount: 5, DurationSeconds: 600})

	selected := sess.Questions()
	// Answer three correctly, one incorrectly, leave the last unset.
	for i := 0; i < 3; i++ {
		if err := sess.RecordAnswer(i, selected[i].CorrectIndex); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	wrong := (selected[3].CorrectIndex + 1) % len(selected[3].Options)
	if err := sess.RecordAnswer(3, wrong); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	result := sess.Finish()
	if result.CorrectCount != 3 || result.TotalCount != 5 {
		t.Errorf("expected 3/5, got %d/%d", result.CorrectCount, result.TotalCount)
	}
	if result.PerQuestion[4] {
		t.Error("expected unanswered question scored incorrect")
	}
}

func TestFinish_Idempotent(t *testing.T) {
	sess := examsession.New(makePool(5))
	mustStart(t, sess, examsession.Config{QuestionCount: 5, DurationSeconds: 600})

	selected := sess.Questions()
	if err := sess.RecordAnswer(0, selected[0].CorrectIndex); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	first := sess.Finish()
	second := sess.Finish()

	if first.CorrectCount != second.CorrectCount || first.TotalCount != second.TotalCount {
		t.Errorf("expected identical results, got %+v then %+v", first, second)
	}
	if sess.State() != examsession.StateFinished {
		t.Errorf("expected finished state, got %v", sess.State())
	}
}

func TestFinish_RejectsLateAnswers(t *testing.T) {
	sess := examsession.New(makePool(5))
	mustStart(t, sess, examsession.Config{QuestionCount: 5, DurationSeconds: 600})
	sess.Finish()

	if err := sess.RecordAnswer(0, 0); !errors.Is(err, examsession.ErrNotRunning) {
		t.Errorf("expected ErrNotRunning after finish, got %v", err)
	}
}

func TestCountdown_AutoFinishes(t *testing.T) {
	sess := examsession.New(makePool(3))
	mustStart(t, sess, examsession.Config{QuestionCount: 3, DurationSeconds: 1})

	select {
	case <-sess.Done():
	case <-time.After(3 * time.Second):
		t.Fatal("expected countdown to auto-finish within the deadline")
	}

	if sess.State() != examsession.StateFinished {
		t.Fatalf("expected finished state, got %v", sess.State())
	}
	if sess.Remaining() != 0 {
		t.Errorf("expected 0 seconds remaining, got %d", sess.Remaining())
	}
	result, ok := sess.Result()
	if !ok {
		t.Fatal("expected result after auto-finish")
	}
	if result.ElapsedSeconds != 1 {
		t.Errorf("expected elapsed of 1 second, got %d", result.ElapsedSeconds)
	}
}

func TestReview_MatchesAnswers(t *testing.T) {
	pool := []question.Question{{
		Text:         "q",
		Options:      []string{"a", "b"},
		CorrectIndex: 0,
	}}
	sess := examsession.New(pool)
	mustStart(t, sess, examsession.Config{QuestionCount: 1, DurationSeconds: 600})

	if sess.Review() != nil {
		t.Error("expected no review before finish")
	}
	if err := sess.RecordAnswer(0, 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	sess.Finish()

	review := sess.Review()
	if len(review) != 1 {
		t.Fatalf("expected 1 review entry, got %d", len(review))
	}
	entry := review[0]
	if !entry.Answered || entry.Correct || entry.Answer != 1 {
		t.Errorf("unexpected review entry: %+v", entry)
	}
}

func sameOrder(a, b []question.Question) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Text != b[i].Text {
			return false
		}
	}
	return true
}
