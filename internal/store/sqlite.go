// internal/store/sqlite.go
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/kafaahbd/backend/internal/domain/question"
)

const schema = `
CREATE TABLE IF NOT EXISTS questions (
    id TEXT PRIMARY KEY,
    category_group TEXT NOT NULL,
    subject_id TEXT NOT NULL,
    chapter_name TEXT NOT NULL,
    question_text TEXT NOT NULL,
    options TEXT NOT NULL,
    correct_option INTEGER NOT NULL,
    explanation TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_questions_chapter
    ON questions(category_group, subject_id, chapter_name);

CREATE TABLE IF NOT EXISTS exam_history (
    id TEXT PRIMARY KEY,
    user_id TEXT NOT NULL,
    category_group TEXT NOT NULL,
    subject_id TEXT NOT NULL,
    chapter_name TEXT NOT NULL,
    total_questions INTEGER NOT NULL,
    correct_answers INTEGER NOT NULL,
    wrong_answers INTEGER NOT NULL,
    time_taken INTEGER NOT NULL,
    score REAL NOT NULL,
    created_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_exam_history_user
    ON exam_history(user_id, created_at DESC);

CREATE TABLE IF NOT EXISTS mistakes (
    user_id TEXT NOT NULL,
    question_text TEXT NOT NULL,
    options TEXT NOT NULL,
    correct_option INTEGER NOT NULL,
    explanation TEXT NOT NULL DEFAULT '',
    PRIMARY KEY (user_id, question_text)
);

CREATE TABLE IF NOT EXISTS profiles (
    id TEXT PRIMARY KEY,
    full_name TEXT NOT NULL DEFAULT 'Student',
    points INTEGER NOT NULL DEFAULT 0
);
`

type SQLiteStore struct {
	db *sql.DB
}

func NewSQLite(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(schema); err != nil {
		return nil, err
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// ============================================================================
// Questions
// ============================================================================

// SaveQuestion inserts one pre-normalized question row. An empty ID gets one
// assigned. The runtime engine never writes questions; this exists for the
// external import flow and for tests.
func (s *SQLiteStore) SaveQuestion(ctx context.Context, q StoredQuestion) error {
	if q.ID == "" {
		q.ID = uuid.NewString()
	}
	optionsJSON, _ := json.Marshal(q.Options)

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO questions (id, category_group, subject_id, chapter_name, question_text, options, correct_option, explanation)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		q.ID, q.CategoryGroup, q.SubjectID, q.ChapterName, q.QuestionText,
		string(optionsJSON), q.CorrectOption, q.Explanation,
	)
	return err
}

// QuestionsByChapter returns the canonical questions of one chapter. Zero
// matching rows is not an error here; the loader decides what emptiness means.
func (s *SQLiteStore) QuestionsByChapter(ctx context.Context, group, subjectID, chapterName string) ([]question.Question, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT question_text, options, correct_option, explanation
		FROM questions
		WHERE category_group = ? AND subject_id = ? AND chapter_name = ?`,
		group, subjectID, chapterName,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var questions []question.Question
	for rows.Next() {
		var q question.Question
		var optionsJSON string
		if err := rows.Scan(&q.Text, &optionsJSON, &q.CorrectIndex, &q.Explanation); err != nil {
			return nil, err
		}
		json.Unmarshal([]byte(optionsJSON), &q.Options)
		questions = append(questions, q)
	}
	return questions, rows.Err()
}

// ============================================================================
// Exam history
// ============================================================================

func (s *SQLiteStore) SaveExamHistory(ctx context.Context, entry ExamHistoryEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO exam_history (id, user_id, category_group, subject_id, chapter_name, total_questions, correct_answers, wrong_answers, time_taken, score, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.ID, entry.UserID, entry.CategoryGroup, entry.SubjectID, entry.ChapterName,
		entry.TotalQuestions, entry.CorrectAnswers, entry.WrongAnswers,
		entry.TimeTakenSeconds, entry.ScorePercent, entry.CreatedAt.Format(time.RFC3339),
	)
	return err
}

// ListExamHistory returns a user's attempts, newest first.
func (s *SQLiteStore) ListExamHistory(ctx context.Context, userID string) ([]ExamHistoryEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, category_group, subject_id, chapter_name, total_questions, correct_answers, wrong_answers, time_taken, score, created_at
		FROM exam_history
		WHERE user_id = ?
		ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []ExamHistoryEntry
	for rows.Next() {
		var entry ExamHistoryEntry
		var createdAt string
		if err := rows.Scan(
			&entry.ID, &entry.UserID, &entry.CategoryGroup, &entry.SubjectID, &entry.ChapterName,
			&entry.TotalQuestions, &entry.CorrectAnswers, &entry.WrongAnswers,
			&entry.TimeTakenSeconds, &entry.ScorePercent, &createdAt,
		); err != nil {
			return nil, err
		}
		entry.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// ============================================================================
// Mistakes
// ============================================================================

// UpsertMistake writes one mistake record. A later mistake on the same
// (user_id, question_text) replaces the earlier one: most recent explanation
// wins.
func (s *SQLiteStore) UpsertMistake(ctx context.Context, entry MistakeEntry) error {
	optionsJSON, _ := json.Marshal(entry.Options)

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO mistakes (user_id, question_text, options, correct_option, explanation)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(user_id, question_text) DO UPDATE SET
			options = excluded.options,
			correct_option = excluded.correct_option,
			explanation = excluded.explanation`,
		entry.UserID, entry.QuestionText, string(optionsJSON), entry.CorrectOption, entry.Explanation,
	)
	return err
}

// ListMistakes returns a user's mistake book.
func (s *SQLiteStore) ListMistakes(ctx context.Context, userID string) ([]MistakeEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT user_id, question_text, options, correct_option, explanation
		FROM mistakes
		WHERE user_id = ?
		ORDER BY question_text`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []MistakeEntry
	for rows.Next() {
		var entry MistakeEntry
		var optionsJSON string
		if err := rows.Scan(&entry.UserID, &entry.QuestionText, &optionsJSON, &entry.CorrectOption, &entry.Explanation); err != nil {
			return nil, err
		}
		json.Unmarshal([]byte(optionsJSON), &entry.Options)
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// ============================================================================
// Profiles
// ============================================================================

func (s *SQLiteStore) GetProfile(ctx context.Context, userID string) (Profile, error) {
	var profile Profile
	err := s.db.QueryRowContext(ctx,
		"SELECT id, full_name, points FROM profiles WHERE id = ?", userID,
	).Scan(&profile.ID, &profile.FullName, &profile.Points)
	if err == sql.ErrNoRows {
		return Profile{}, ErrNotFound
	}
	if err != nil {
		return Profile{}, err
	}
	return profile, nil
}

func (s *SQLiteStore) CreateProfile(ctx context.Context, profile Profile) error {
	if profile.FullName == "" {
		profile.FullName = "Student"
	}
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO profiles (id, full_name, points) VALUES (?, ?, ?)",
		profile.ID, profile.FullName, profile.Points,
	)
	return err
}

func (s *SQLiteStore) AddPoints(ctx context.Context, userID string, delta int) error {
	result, err := s.db.ExecContext(ctx,
		"UPDATE profiles SET points = points + ? WHERE id = ?", delta, userID,
	)
	if err != nil {
		return err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
