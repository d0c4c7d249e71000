//go:build duckdb

package history

import (
	"path/filepath"
	"testing"
	"time"

	"primer/internal/quiz"
	"primer/internal/testutil"
)

func openJournal(t *testing.T) *Journal {
	t.Helper()
	ctx := testutil.Context(t, 5*time.Second)
	journal, err := Open(ctx, filepath.Join(t.TempDir(), "history.duckdb"))
	if err != nil {
		t.Fatalf("open journal: %v", err)
	}
	t.Cleanup(func() {
		_ = journal.Close()
	})
	return journal
}

func completedEngine(t *testing.T, answers []int) *quiz.Engine {
	t.Helper()
	questions := []quiz.Question{
		{ID: "q1", Prompt: "One", Options: []string{"a", "b"}, CorrectOption: 1},
		{ID: "q2", Prompt: "Two", Options: []string{"a", "b"}, CorrectOption: 0},
	}
	engine, err := quiz.New("Test", questions)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	for _, option := range answers {
		if err := engine.SelectAnswer(option); err != nil {
			t.Fatalf("select: %v", err)
		}
		if err := engine.GoNext(); err != nil {
			t.Fatalf("next: %v", err)
		}
	}
	return engine
}

// TestJournalRecordAndList verifies attempts round-trip newest first.
func TestJournalRecordAndList(t *testing.T) {
	ctx := testutil.Context(t, 5*time.Second)
	journal := openJournal(t)
	base := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	first, err := FromEngine("basics", completedEngine(t, []int{0, 1}), base, base.Add(time.Minute))
	if err != nil {
		t.Fatalf("from engine: %v", err)
	}
	if _, err := journal.Record(ctx, first); err != nil {
		t.Fatalf("record first: %v", err)
	}
	second, err := FromEngine("basics", completedEngine(t, []int{1, 0}), base, base.Add(2*time.Minute))
	if err != nil {
		t.Fatalf("from engine: %v", err)
	}
	id, err := journal.Record(ctx, second)
	if err != nil {
		t.Fatalf("record second: %v", err)
	}

	attempts, err := journal.List(ctx, "basics", 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(attempts) != 2 {
		t.Fatalf("expected 2 attempts, got %d", len(attempts))
	}
	latest := attempts[0]
	if latest.ID != id || latest.Score != 100 || !latest.Passed {
		t.Fatalf("unexpected latest attempt: %+v", latest)
	}
	if len(latest.Answers) != 2 || latest.Answers[0].QuestionID != "q1" || !latest.Answers[0].Correct {
		t.Fatalf("unexpected answers: %+v", latest.Answers)
	}
	if attempts[1].Score != 0 || attempts[1].Passed {
		t.Fatalf("unexpected older attempt: %+v", attempts[1])
	}
}

// TestJournalSummary verifies per-module aggregates.
func TestJournalSummary(t *testing.T) {
	ctx := testutil.Context(t, 5*time.Second)
	journal := openJournal(t)
	for _, attempt := range []Attempt{
		{ModuleID: "basics", QuizTitle: "B", Score: 50, Correct: 1, Total: 2},
		{ModuleID: "basics", QuizTitle: "B", Score: 100, Passed: true, Correct: 2, Total: 2},
		{ModuleID: "wallets", QuizTitle: "W", Score: 80, Passed: true, Correct: 4, Total: 5},
	} {
		if _, err := journal.Record(ctx, attempt); err != nil {
			t.Fatalf("record: %v", err)
		}
	}
	summaries, err := journal.Summary(ctx)
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if len(summaries) != 2 {
		t.Fatalf("expected 2 summaries, got %d", len(summaries))
	}
	basics := summaries[0]
	if basics.ModuleID != "basics" || basics.Attempts != 2 || basics.Passes != 1 || basics.BestScore != 100 || basics.AverageScore != 75 {
		t.Fatalf("unexpected basics summary: %+v", basics)
	}
}

// TestFromEngineRequiresCompletion verifies incomplete sessions are rejected.
func TestFromEngineRequiresCompletion(t *testing.T) {
	engine := completedEngine(t, []int{1})
	if _, err := FromEngine("basics", engine, time.Time{}, time.Now()); err == nil {
		t.Fatalf("expected incomplete engine error")
	}
}
