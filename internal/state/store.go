// Package state is the client's durable local store: the auth token and a
// history of answer submissions, kept in a single sqlite file so they
// survive across invocations the way browser localStorage would.
package state

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

var ErrNoSubmissions = errors.New("no recorded submissions")

type Store struct {
	db *sql.DB
}

func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		path = "quiz-client.db"
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(1)

	if _, err := db.Exec(`PRAGMA busy_timeout = 5000;`); err != nil {
		_ = db.Close()
		return nil, err
	}

	store := &Store{db: db}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) initSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS kv (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL,
			updated_at_unix INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS submissions (
			id TEXT PRIMARY KEY,
			quiz_id TEXT NOT NULL,
			quiz_title TEXT NOT NULL,
			submission_id TEXT NOT NULL,
			score REAL NOT NULL,
			submitted_at_unix INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_submissions_quiz ON submissions(quiz_id, submitted_at_unix DESC);`,
		`CREATE INDEX IF NOT EXISTS idx_submissions_submitted_at ON submissions(submitted_at_unix DESC);`,
	}

	for _, stmt := range statements {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

// Get reads one kv entry; ok reports whether the key exists.
func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

// Set upserts one kv entry.
func (s *Store) Set(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO kv (key, value, updated_at_unix) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at_unix = excluded.updated_at_unix`,
		key, value, time.Now().Unix())
	return err
}

// Delete removes one kv entry; deleting a missing key is not an error.
func (s *Store) Delete(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, key)
	return err
}

// SubmissionRecord is one locally remembered answer submission, enough to
// re-fetch its results later.
type SubmissionRecord struct {
	ID           string
	QuizID       string
	QuizTitle    string
	SubmissionID string
	Score        float64
	SubmittedAt  time.Time
}

// RecordSubmission stores a submission in the local history.
func (s *Store) RecordSubmission(ctx context.Context, record SubmissionRecord) error {
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	if record.SubmittedAt.IsZero() {
		record.SubmittedAt = time.Now()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO submissions (id, quiz_id, quiz_title, submission_id, score, submitted_at_unix)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		record.ID, record.QuizID, record.QuizTitle, record.SubmissionID, record.Score, record.SubmittedAt.Unix())
	return err
}

// ListSubmissions returns the most recent submissions, newest first.
func (s *Store) ListSubmissions(ctx context.Context, limit int) ([]SubmissionRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, quiz_id, quiz_title, submission_id, score, submitted_at_unix
		 FROM submissions ORDER BY submitted_at_unix DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]SubmissionRecord, 0, limit)
	for rows.Next() {
		record, err := scanSubmission(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

// LastSubmission returns the newest recorded submission for a quiz.
func (s *Store) LastSubmission(ctx context.Context, quizID string) (SubmissionRecord, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, quiz_id, quiz_title, submission_id, score, submitted_at_unix
		 FROM submissions WHERE quiz_id = ? ORDER BY submitted_at_unix DESC, id LIMIT 1`, quizID)

	record, err := scanSubmission(row)
	if errors.Is(err, sql.ErrNoRows) {
		return SubmissionRecord{}, ErrNoSubmissions
	}
	if err != nil {
		return SubmissionRecord{}, err
	}
	return record, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSubmission(row rowScanner) (SubmissionRecord, error) {
	var record SubmissionRecord
	var submittedAt int64
	err := row.Scan(&record.ID, &record.QuizID, &record.QuizTitle, &record.SubmissionID, &record.Score, &submittedAt)
	if err != nil {
		return SubmissionRecord{}, err
	}
	record.SubmittedAt = time.Unix(submittedAt, 0)
	return record, nil
}
