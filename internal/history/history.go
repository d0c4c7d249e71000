package history

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "github.com/duckdb/duckdb-go/v2"
	"github.com/google/uuid"

	"primer/internal/quiz"
)

// schemaDDL holds the attempt journal schema.
//
//go:embed schema.sql
var schemaDDL string

// Attempt is one completed quiz session.
type Attempt struct {
	ID         string         `json:"id"`
	ModuleID   string         `json:"module_id"`
	QuizTitle  string         `json:"quiz_title"`
	Score      int            `json:"score"`
	Passed     bool           `json:"passed"`
	Correct    int            `json:"correct"`
	Total      int            `json:"total"`
	Answers    []AnswerRecord `json:"answers"`
	StartedAt  time.Time      `json:"started_at"`
	FinishedAt time.Time      `json:"finished_at"`
}

// AnswerRecord is the stored answer for one question.
type AnswerRecord struct {
	QuestionID string `json:"question_id"`
	Chosen     int    `json:"chosen"`
	Correct    bool   `json:"correct"`
}

// ModuleSummary aggregates attempts for one module.
type ModuleSummary struct {
	ModuleID     string    `json:"module_id"`
	Attempts     int       `json:"attempts"`
	Passes       int       `json:"passes"`
	BestScore    int       `json:"best_score"`
	AverageScore float64   `json:"average_score"`
	LastAttempt  time.Time `json:"last_attempt"`
}

// Journal is an append-only attempt log in DuckDB.
type Journal struct {
	db *sql.DB
}

// Open opens the DuckDB database at path and applies the schema.
func Open(ctx context.Context, path string) (*Journal, error) {
	if ctx == nil {
		return nil, errors.New("history: context is nil")
	}
	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, fmt.Errorf("open duckdb: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping duckdb: %w", err)
	}
	journal := &Journal{db: db}
	if err := journal.EnsureSchema(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return journal, nil
}

// EnsureSchema applies the schema DDL.
func (j *Journal) EnsureSchema(ctx context.Context) error {
	if _, err := j.db.ExecContext(ctx, schemaDDL); err != nil {
		return fmt.Errorf("apply history schema: %w", err)
	}
	return nil
}

// Close releases the database handle.
func (j *Journal) Close() error {
	return j.db.Close()
}

// FromEngine builds an attempt from a completed engine.
func FromEngine(moduleID string, engine *quiz.Engine, startedAt, finishedAt time.Time) (Attempt, error) {
	result, ok := engine.Result()
	if !ok {
		return Attempt{}, errors.New("history: quiz is not complete")
	}
	review := engine.Review()
	answers := make([]AnswerRecord, 0, len(review))
	for _, item := range review {
		answers = append(answers, AnswerRecord{
			QuestionID: item.Question.ID,
			Chosen:     item.Chosen,
			Correct:    item.Correct,
		})
	}
	return Attempt{
		ModuleID:   moduleID,
		QuizTitle:  engine.Title(),
		Score:      result.Score,
		Passed:     result.Passed,
		Correct:    result.Correct,
		Total:      result.Total,
		Answers:    answers,
		StartedAt:  startedAt,
		FinishedAt: finishedAt,
	}, nil
}

// Record appends an attempt and returns its id.
func (j *Journal) Record(ctx context.Context, attempt Attempt) (string, error) {
	if attempt.ModuleID == "" {
		return "", errors.New("history: module id is required")
	}
	if attempt.ID == "" {
		attempt.ID = uuid.NewString()
	}
	if attempt.FinishedAt.IsZero() {
		attempt.FinishedAt = time.Now().UTC()
	}
	answers, err := json.Marshal(attempt.Answers)
	if err != nil {
		return "", fmt.Errorf("encode answers: %w", err)
	}
	var startedAt interface{}
	if !attempt.StartedAt.IsZero() {
		startedAt = attempt.StartedAt.UTC()
	}
	if _, err := j.db.ExecContext(
		ctx,
		`INSERT INTO attempts (attempt_id, module_id, quiz_title, score, passed, correct, total, answers, started_at, finished_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		attempt.ID,
		attempt.ModuleID,
		attempt.QuizTitle,
		attempt.Score,
		attempt.Passed,
		attempt.Correct,
		attempt.Total,
		string(answers),
		startedAt,
		attempt.FinishedAt.UTC(),
	); err != nil {
		return "", fmt.Errorf("insert attempt: %w", err)
	}
	return attempt.ID, nil
}

// List returns the newest attempts for a module; limit <= 0 means all.
func (j *Journal) List(ctx context.Context, moduleID string, limit int) ([]Attempt, error) {
	query := `SELECT attempt_id, module_id, quiz_title, score, passed, correct, total,
		answers, started_at, finished_at
		FROM attempts WHERE module_id = ? ORDER BY finished_at DESC`
	args := []interface{}{moduleID}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := j.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list attempts: %w", err)
	}
	defer rows.Close()

	var attempts []Attempt
	for rows.Next() {
		var (
			attempt   Attempt
			answers   string
			startedAt sql.NullTime
		)
		if err := rows.Scan(
			&attempt.ID,
			&attempt.ModuleID,
			&attempt.QuizTitle,
			&attempt.Score,
			&attempt.Passed,
			&attempt.Correct,
			&attempt.Total,
			&answers,
			&startedAt,
			&attempt.FinishedAt,
		); err != nil {
			return nil, fmt.Errorf("scan attempt: %w", err)
		}
		if startedAt.Valid {
			attempt.StartedAt = startedAt.Time
		}
		if err := json.Unmarshal([]byte(answers), &attempt.Answers); err != nil {
			return nil, fmt.Errorf("decode answers: %w", err)
		}
		attempts = append(attempts, attempt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list attempts: %w", err)
	}
	return attempts, nil
}

// Latest returns the most recent attempt for a module.
func (j *Journal) Latest(ctx context.Context, moduleID string) (Attempt, bool, error) {
	attempts, err := j.List(ctx, moduleID, 1)
	if err != nil || len(attempts) == 0 {
		return Attempt{}, false, err
	}
	return attempts[0], true, nil
}

// Summary aggregates attempts per module, ordered by module id.
func (j *Journal) Summary(ctx context.Context) ([]ModuleSummary, error) {
	rows, err := j.db.QueryContext(ctx, `SELECT module_id,
		COUNT(*) AS attempts,
		CAST(COUNT(*) FILTER (WHERE passed) AS BIGINT) AS passes,
		MAX(score) AS best,
		AVG(score) AS average,
		MAX(finished_at) AS last_attempt
		FROM attempts GROUP BY module_id ORDER BY module_id`)
	if err != nil {
		return nil, fmt.Errorf("summarize attempts: %w", err)
	}
	defer rows.Close()

	var summaries []ModuleSummary
	for rows.Next() {
		var summary ModuleSummary
		if err := rows.Scan(
			&summary.ModuleID,
			&summary.Attempts,
			&summary.Passes,
			&summary.BestScore,
			&summary.AverageScore,
			&summary.LastAttempt,
		); err != nil {
			return nil, fmt.Errorf("scan summary: %w", err)
		}
		summaries = append(summaries, summary)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("summarize attempts: %w", err)
	}
	return summaries, nil
}
