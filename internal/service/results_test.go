package service_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kafaahbd/backend/internal/domain/examsession"
	"github.com/kafaahbd/backend/internal/domain/question"
	"github.com/kafaahbd/backend/internal/service"
	"github.com/kafaahbd/backend/internal/store"
)

// fakeResultStore records writes in memory. Individual steps can be forced
// to fail to exercise the best-effort contract.
type fakeResultStore struct {
	mu       sync.Mutex
	history  []store.ExamHistoryEntry
	mistakes map[string]store.MistakeEntry // keyed by question text
	profiles map[string]store.Profile

	failHistory  error
	failMistakes error
	failPoints   error
}

func newFakeResultStore() *fakeResultStore {
	return &fakeResultStore{
		mistakes: make(map[string]store.MistakeEntry),
		profiles: make(map[string]store.Profile),
	}
}

func (f *fakeResultStore) SaveExamHistory(_ context.Context, entry store.ExamHistoryEntry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failHistory != nil {
		return f.failHistory
	}
	f.history = append(f.history, entry)
	return nil
}

func (f *fakeResultStore) UpsertMistake(_ context.Context, entry store.MistakeEntry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failMistakes != nil {
		return f.failMistakes
	}
	f.mistakes[entry.QuestionText] = entry
	return nil
}

func (f *fakeResultStore) GetProfile(_ context.Context, userID string) (store.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	profile, ok := f.profiles[userID]
	if !ok {
		return store.Profile{}, store.ErrNotFound
	}
	return profile, nil
}

func (f *fakeResultStore) CreateProfile(_ context.Context, profile store.Profile) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failPoints != nil {
		return f.failPoints
	}
	f.profiles[profile.ID] = profile
	return nil
}

func (f *fakeResultStore) AddPoints(_ context.Context, userID string, delta int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failPoints != nil {
		return f.failPoints
	}
	profile, ok := f.profiles[userID]
	if !ok {
		return store.ErrNotFound
	}
	profile.Points += delta
	f.profiles[userID] = profile
	return nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func sampleReview() []examsession.Review {
	q := func(text string) question.Question {
		return question.Question{Text: text, Options: []string{"r", "w"}, CorrectIndex: 0}
	}
	return []examsession.Review{
		{Question: q("correct one"), Answer: 0, Answered: true, Correct: true},
		{Question: q("wrong one"), Answer: 1, Answered: true, Correct: false},
		{Question: q("skipped one"), Answer: -1, Answered: false, Correct: false},
	}
}

func sampleResult() examsession.Result {
	return examsession.Result{
		CorrectCount:   1,
		TotalCount:     3,
		ElapsedSeconds: 120,
		PerQuestion:    []bool{true, false, false},
	}
}

var sampleCtx = service.ExamContext{CategoryGroup: "hsc", SubjectID: "physics", ChapterName: "ch3"}

func TestPersist_NoUserSkipsAllWrites(t *testing.T) {
	fake := newFakeResultStore()
	rs := service.NewResultService(fake, testLogger())

	err := rs.Persist(context.Background(), sampleResult(), sampleReview(), sampleCtx, "")
	require.NoError(t, err)

	assert.Empty(t, fake.history)
	assert.Empty(t, fake.mistakes)
	assert.Empty(t, fake.profiles)
}

func TestPersist_WritesHistoryMistakesAndPoints(t *testing.T) {
	fake := newFakeResultStore()
	rs := service.NewResultService(fake, testLogger())

	err := rs.Persist(context.Background(), sampleResult(), sampleReview(), sampleCtx, "u1")
	require.NoError(t, err)

	require.Len(t, fake.history, 1)
	entry := fake.history[0]
	assert.Equal(t, "u1", entry.UserID)
	assert.Equal(t, 3, entry.TotalQuestions)
	assert.Equal(t, 1, entry.CorrectAnswers)
	assert.Equal(t, 2, entry.WrongAnswers)
	assert.Equal(t, 120, entry.TimeTakenSeconds)
	assert.InDelta(t, 33.33, entry.ScorePercent, 0.01)

	// Only answered-and-wrong questions become mistakes; skipped ones do not.
	require.Len(t, fake.mistakes, 1)
	_, ok := fake.mistakes["wrong one"]
	assert.True(t, ok)

	assert.Equal(t, 10, fake.profiles["u1"].Points)
}

func TestPersist_PointsAccumulateAcrossSessions(t *testing.T) {
	fake := newFakeResultStore()
	rs := service.NewResultService(fake, testLogger())

	result := sampleResult()
	result.CorrectCount = 3

	require.NoError(t, rs.Persist(context.Background(), result, nil, sampleCtx, "u1"))
	assert.Equal(t, 30, fake.profiles["u1"].Points, "lazy profile creation with 10 × correct")

	require.NoError(t, rs.Persist(context.Background(), result, nil, sampleCtx, "u1"))
	assert.Equal(t, 60, fake.profiles["u1"].Points, "second session adds to the ledger")
}

func TestPersist_FailuresAreIndependentAndAggregated(t *testing.T) {
	fake := newFakeResultStore()
	fake.failHistory = errors.New("history write refused")
	rs := service.NewResultService(fake, testLogger())

	err := rs.Persist(context.Background(), sampleResult(), sampleReview(), sampleCtx, "u1")
	require.ErrorIs(t, err, service.ErrPersistenceFailed)

	// The history failure must not have blocked the other two steps.
	assert.Len(t, fake.mistakes, 1)
	assert.Equal(t, 10, fake.profiles["u1"].Points)
}

func TestPersist_PointsFailureLeavesHistoryWritten(t *testing.T) {
	fake := newFakeResultStore()
	fake.failPoints = errors.New("profiles table locked")
	rs := service.NewResultService(fake, testLogger())

	err := rs.Persist(context.Background(), sampleResult(), sampleReview(), sampleCtx, "u1")
	require.ErrorIs(t, err, service.ErrPersistenceFailed)

	assert.Len(t, fake.history, 1, "history is written first and must survive")
}

func TestSubmitResult_RunsInBackground(t *testing.T) {
	fake := newFakeResultStore()
	rs := service.NewResultService(fake, testLogger())

	rs.TrackSession("s1")
	rs.SubmitResult("s1", sampleResult(), sampleReview(), sampleCtx, "u1")
	rs.WaitForSession("s1")

	fake.mu.Lock()
	defer fake.mu.Unlock()
	assert.Len(t, fake.history, 1)
	assert.Equal(t, 10, fake.profiles["u1"].Points)
}
