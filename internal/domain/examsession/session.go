// Package examsession runs one timed exam attempt: random question selection,
// answer capture, a one-second countdown, and scoring on finish.
package examsession

import (
	"errors"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/kafaahbd/backend/internal/domain/question"
)

// State is the session lifecycle. A session is created in Configuring once a
// chapter pool has loaded, moves to Running on Start, and ends in Finished.
type State int

const (
	StateConfiguring State = iota
	StateRunning
	StateFinished
)

func (s State) String() string {
	switch s {
	case StateConfiguring:
		return "configuring"
	case StateRunning:
		return "running"
	case StateFinished:
		return "finished"
	}
	return "unknown"
}

var (
	ErrEmptyPool  = errors.New("question pool is empty")
	ErrNotRunning = errors.New("session is not running")
	ErrOutOfRange = errors.New("position or option index out of range")
)

// unanswered marks a question position with no recorded answer.
const unanswered = -1

// Result is the immutable outcome of a finished session. Unanswered questions
// count as incorrect.
type Result struct {
	CorrectCount   int
	TotalCount     int
	ElapsedSeconds int
	PerQuestion    []bool
}

func (r Result) WrongCount() int {
	return r.TotalCount - r.CorrectCount
}

func (r Result) ScorePercent() float64 {
	if r.TotalCount == 0 {
		return 0
	}
	return float64(r.CorrectCount) / float64(r.TotalCount) * 100
}

// Review pairs one selected question with what the user did with it.
// Answer is the recorded option index, or -1 when unanswered.
type Review struct {
	Question question.Question
	Answer   int
	Answered bool
	Correct  bool
}

// Session is a single exam attempt. All state behind the mutex is owned by
// the session; the countdown goroutine and callers only touch it through the
// exported transitions.
type Session struct {
	ID string

	mu        sync.Mutex
	state     State
	pool      []question.Question
	config    Config
	selected  []question.Question
	answers   []int
	remaining int
	result    *Result
	stopTick  chan struct{}
	done      chan struct{}
}

// New creates a session in Configuring over a loaded chapter pool. An empty
// pool is allowed here; Start rejects it.
func New(pool []question.Question) *Session {
	return &Session{
		ID:    uuid.NewString(),
		state: StateConfiguring,
		pool:  pool,
		done:  make(chan struct{}),
	}
}

// Start draws a random subset of the pool, resets answers, and begins the
// countdown. Calling Start while the session is already running (or finished)
// is ignored. With an empty pool it fails with ErrEmptyPool and the session
// stays in Configuring.
func (s *Session) Start(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateConfiguring {
		return nil
	}
	if len(s.pool) == 0 {
		return ErrEmptyPool
	}

	s.config = cfg
	s.selected = selectRandom(s.pool, cfg.QuestionCount)
	s.answers = make([]int, len(s.selected))
	for i := range s.answers {
		s.answers[i] = unanswered
	}
	s.remaining = cfg.DurationSeconds
	s.stopTick = make(chan struct{})
	s.state = StateRunning

	go s.countdown()
	return nil
}

// selectRandom returns a uniformly shuffled copy of the pool truncated to at
// most count questions. When the pool is smaller than count the whole pool is
// used, never padded or repeated.
func selectRandom(pool []question.Question, count int) []question.Question {
	shuffled := make([]question.Question, len(pool))
	copy(shuffled, pool)

	rand.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	if count < len(shuffled) {
		shuffled = shuffled[:count]
	}
	return shuffled
}

// countdown ticks once per second until the session finishes or time runs
// out, in which case it finishes the session itself.
func (s *Session) countdown() {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.mu.Lock()
			if s.state != StateRunning {
				s.mu.Unlock()
				return
			}
			s.remaining--
			if s.remaining <= 0 {
				s.remaining = 0
				s.finishLocked()
				s.mu.Unlock()
				return
			}
			s.mu.Unlock()
		case <-s.stopTick:
			return
		}
	}
}

// RecordAnswer stores the chosen option for a question position, overwriting
// any earlier choice. It is only accepted while the session is running.
func (s *Session) RecordAnswer(position, optionIndex int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateRunning {
		return ErrNotRunning
	}
	if position < 0 || position >= len(s.selected) {
		return ErrOutOfRange
	}
	if optionIndex < 0 || optionIndex >= len(s.selected[position].Options) {
		return ErrOutOfRange
	}
	s.answers[position] = optionIndex
	return nil
}

// Finish ends the session and returns its result. The countdown is stopped
// before Finish returns, so no answer can land afterwards. Finish is
// idempotent: repeated calls return the already-computed result. Calling it
// before Start returns a zero Result and changes nothing.
func (s *Session) Finish() Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.state {
	case StateFinished:
		return *s.result
	case StateConfiguring:
		return Result{}
	}
	s.finishLocked()
	return *s.result
}

// finishLocked scores the session and transitions to Finished. Callers hold
// the mutex and have checked state == StateRunning.
func (s *Session) finishLocked() {
	correct := 0
	perQuestion := make([]bool, len(s.selected))
	for i, q := range s.selected {
		ok := s.answers[i] != unanswered && s.answers[i] == q.CorrectIndex
		perQuestion[i] = ok
		if ok {
			correct++
		}
	}

	elapsed := s.config.DurationSeconds - s.remaining
	if elapsed < 0 {
		elapsed = 0
	}

	s.result = &Result{
		CorrectCount:   correct,
		TotalCount:     len(s.selected),
		ElapsedSeconds: elapsed,
		PerQuestion:    perQuestion,
	}
	s.state = StateFinished
	close(s.stopTick)
	close(s.done)
}

// State reports the current lifecycle state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Remaining reports the seconds left on the countdown.
func (s *Session) Remaining() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.remaining
}

// Config returns the exam settings accepted by Start.
func (s *Session) Config() Config {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.config
}

// Questions returns the selected questions in presentation order.
func (s *Session) Questions() []question.Question {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]question.Question, len(s.selected))
	copy(out, s.selected)
	return out
}

// Result returns the computed result once the session has finished.
func (s *Session) Result() (Result, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.result == nil {
		return Result{}, false
	}
	return *s.result, true
}

// Review returns the per-question breakdown of a finished session, nil before
// that.
func (s *Session) Review() []Review {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateFinished {
		return nil
	}
	reviews := make([]Review, len(s.selected))
	for i, q := range s.selected {
		reviews[i] = Review{
			Question: q,
			Answer:   s.answers[i],
			Answered: s.answers[i] != unanswered,
			Correct:  s.result.PerQuestion[i],
		}
	}
	return reviews
}

// Done is closed when the session finishes, whether by manual Finish or by
// the countdown reaching zero. Watchers use it to run post-exam work such as
// result persistence without the timer reaching into them.
func (s *Session) Done() <-chan struct{} {
	return s.done
}
