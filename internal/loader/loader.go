// Package loader fetches a chapter's question pool from wherever its catalog
// locator points: a remote JSON file or the records store.
package loader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/kafaahbd/backend/internal/domain/catalog"
	"github.com/kafaahbd/backend/internal/domain/question"
	"github.com/kafaahbd/backend/internal/store"
)

var (
	// ErrSourceUnavailable marks a chapter that is announced but not yet
	// published. Callers surface it as "coming soon", not as a failure.
	ErrSourceUnavailable = errors.New("chapter questions are not published yet")

	// ErrEmptyResult means the source answered but held no usable questions.
	ErrEmptyResult = errors.New("no questions found for this chapter")
)

// FetchError is returned when the remote branch fails, so the caller can
// distinguish "the network broke" from "the chapter has nothing in it".
type FetchError struct {
	URL        string
	StatusCode int
	Wrapped    error
}

func (e *FetchError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("fetching %s failed: %v", e.URL, e.Wrapped)
	}
	return fmt.Sprintf("fetching %s failed: status %d", e.URL, e.StatusCode)
}

func (e *FetchError) Unwrap() error {
	return e.Wrapped
}

// Loader resolves chapter locators into normalized question pools.
type Loader struct {
	store  store.QuestionStore
	client *http.Client // reused across fetches
}

func New(questions store.QuestionStore, fetchTimeout time.Duration) *Loader {
	return &Loader{
		store: questions,
		client: &http.Client{
			Timeout: fetchTimeout,
		},
	}
}

// Load returns a chapter's full question pool. Order is irrelevant to
// callers; sessions shuffle before selecting.
func (l *Loader) Load(ctx context.Context, ch catalog.Chapter, group, subjectID string) ([]question.Question, error) {
	switch ch.Source {
	case catalog.SourceComingSoon:
		return nil, ErrSourceUnavailable
	case catalog.SourceRecordsStore:
		return l.loadStored(ctx, ch, group, subjectID)
	case catalog.SourceRemoteJSON:
		return l.loadRemote(ctx, ch.URL)
	}
	return nil, fmt.Errorf("unknown chapter source %d", ch.Source)
}

// loadRemote performs one GET of the chapter's JSON file and normalizes every
// record. No automatic retry; the caller decides whether to offer one.
func (l *Loader) loadRemote(ctx context.Context, url string) ([]question.Question, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &FetchError{URL: url, Wrapped: err}
	}

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, &FetchError{URL: url, Wrapped: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &FetchError{URL: url, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &FetchError{URL: url, Wrapped: err}
	}

	questions, err := question.ParseChapter(body)
	if err != nil {
		return nil, &FetchError{URL: url, Wrapped: err}
	}
	if len(questions) == 0 {
		return nil, ErrEmptyResult
	}
	return questions, nil
}

// loadStored queries the records store. Rows there are already canonical, so
// no letter or index remapping happens on this branch.
func (l *Loader) loadStored(ctx context.Context, ch catalog.Chapter, group, subjectID string) ([]question.Question, error) {
	questions, err := l.store.QuestionsByChapter(ctx, group, subjectID, ch.Name)
	if err != nil {
		return nil, err
	}
	if len(questions) == 0 {
		return nil, ErrEmptyResult
	}
	return questions, nil
}
