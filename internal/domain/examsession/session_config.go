package examsession

import "errors"

var ErrInvalidConfig = errors.New("question count and duration must be positive")

// Config holds the user-chosen exam settings. It is fixed once Start accepts it.
type Config struct {
	QuestionCount   int
	DurationSeconds int
}

// DefaultConfig mirrors the exam center's default picks: 10 questions in 10 minutes.
func DefaultConfig() Config {
	return Config{
		QuestionCount:   10,
		DurationSeconds: 600,
	}
}

func (c Config) Validate() error {
	if c.QuestionCount <= 0 || c.DurationSeconds <= 0 {
		return ErrInvalidConfig
	}
	return nil
}
