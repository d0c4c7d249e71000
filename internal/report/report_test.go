package report

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"primer/internal/history"
	"primer/internal/lesson"
	"primer/internal/logging"
	"primer/internal/progress"
	"primer/internal/testutil"
)

func reportModules() []lesson.Module {
	return []lesson.Module{
		{
			ID:       "basics",
			Title:    "Blockchain <Basics>",
			Level:    lesson.LevelBeginner,
			Sections: []lesson.Section{{ID: "ledger", Title: "Ledger"}, {ID: "blocks", Title: "Blocks"}},
			Quiz: lesson.Quiz{Title: "Basics quiz", Questions: []lesson.Question{
				{ID: "q1", Prompt: "What is a block?", Options: []string{"A batch of transactions", "A coin"}, Correct: 0, Explanation: "Blocks batch transactions."},
				{ID: "q2", Prompt: "Who keeps the ledger?", Options: []string{"A bank", "Every node"}, Correct: 1},
			}},
		},
		{
			ID:            "wallets",
			Title:         "Wallets",
			Level:         lesson.LevelIntermediate,
			Prerequisites: []string{"basics"},
		},
	}
}

// TestRenderAttemptHTML verifies the attempt report lists verdict and answers.
func TestRenderAttemptHTML(t *testing.T) {
	ctx := testutil.Context(t, time.Second)
	module := reportModules()[0]
	attempt := history.Attempt{
		ModuleID:   "basics",
		QuizTitle:  "Basics quiz",
		Score:      50,
		Passed:     false,
		Correct:    1,
		Total:      2,
		FinishedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		Answers: []history.AnswerRecord{
			{QuestionID: "q1", Chosen: 0, Correct: true},
			{QuestionID: "q2", Chosen: 0, Correct: false},
		},
	}
	html, err := RenderAttemptHTML(ctx, module, attempt)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	for _, token := range []string{"Blockchain &lt;Basics&gt;", "50% · Not passed", "Your answer: A bank", "Correct answer: Every node", "Blocks batch transactions."} {
		if !strings.Contains(html, token) {
			t.Fatalf("expected %q in report:\n%s", token, html)
		}
	}
	if strings.Contains(html, "<Basics>") {
		t.Fatalf("expected title to be escaped")
	}
}

// TestBuildOverview verifies lock state, completion and best scores.
func TestBuildOverview(t *testing.T) {
	ctx := testutil.Context(t, time.Second)
	tracker := progress.NewTracker(progress.NewMemoryStore(), logging.Discard())
	modules := reportModules()

	overview, err := BuildOverview(ctx, modules, tracker)
	if err != nil {
		t.Fatalf("overview: %v", err)
	}
	if overview.Modules[1].Unlocked {
		t.Fatalf("expected wallets to be locked")
	}
	if overview.Modules[0].BestScore != nil {
		t.Fatalf("expected no best score yet")
	}

	if _, err := tracker.RecordResult(ctx, "basics", 100, true); err != nil {
		t.Fatalf("record: %v", err)
	}
	if _, err := tracker.ToggleSection(ctx, modules[0], "ledger"); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	overview, err = BuildOverview(ctx, modules, tracker)
	if err != nil {
		t.Fatalf("overview: %v", err)
	}
	basics := overview.Modules[0]
	if !basics.Completed || basics.BestScore == nil || *basics.BestScore != 100 {
		t.Fatalf("unexpected basics status: %+v", basics)
	}
	if basics.Mastery != progress.MasteryExcellent {
		t.Fatalf("expected excellent mastery, got %q", basics.Mastery)
	}
	if basics.Sections.Percent != 50 {
		t.Fatalf("expected 50%% sections read, got %d", basics.Sections.Percent)
	}
	if !overview.Modules[1].Unlocked {
		t.Fatalf("expected wallets to unlock")
	}
	if overview.Percent() != 50 {
		t.Fatalf("expected 50%% completion, got %d", overview.Percent())
	}

	html, err := RenderOverviewHTML(ctx, overview)
	if err != nil {
		t.Fatalf("render overview: %v", err)
	}
	if !strings.Contains(html, "1 of 2 modules completed (50%)") || !strings.Contains(html, "<table") {
		t.Fatalf("unexpected overview html:\n%s", html)
	}
}

// TestRenderAttemptHTMLEscapesLessonText verifies lesson content is escaped
// and answers to removed questions are still listed.
func TestRenderAttemptHTMLEscapesLessonText(t *testing.T) {
	ctx := testutil.Context(t, time.Second)
	module := reportModules()[0]
	module.Quiz.Questions[0].Options[0] = `<script>alert("x")</script>`
	attempt := history.Attempt{
		ModuleID: "basics",
		Score:    100,
		Passed:   true,
		Correct:  1,
		Total:    1,
		Answers: []history.AnswerRecord{
			{QuestionID: "q1", Chosen: 0, Correct: true},
			{QuestionID: "gone", Chosen: 1, Correct: true},
		},
	}
	html, err := RenderAttemptHTML(ctx, module, attempt)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Contains(html, "<script>") {
		t.Fatalf("expected option text to be escaped:\n%s", html)
	}
	for _, token := range []string{"&lt;script&gt;", "100% · Passed", "Mastery: <strong>excellent</strong>", "gone (question no longer in module)"} {
		if !strings.Contains(html, token) {
			t.Fatalf("expected %q in report:\n%s", token, html)
		}
	}
}

// TestRenderOverviewHTMLRows verifies status cells and escaped titles.
func TestRenderOverviewHTMLRows(t *testing.T) {
	ctx := testutil.Context(t, time.Second)
	best := 85
	overview := Overview{
		Completed: 1,
		Total:     3,
		Modules: []ModuleStatus{
			{ID: "a", Title: "Fees & <Gas>", Completed: true, Unlocked: true, BestScore: &best, Mastery: progress.MasteryGood},
			{ID: "b", Title: "Wallets", Unlocked: true},
			{ID: "c", Title: "Stablecoins"},
		},
	}
	html, err := RenderOverviewHTML(ctx, overview)
	if err != nil {
		t.Fatalf("render overview: %v", err)
	}
	for _, token := range []string{"Fees &amp; &lt;Gas&gt;", `<td class="pass">completed</td>`, "<td>open</td>", `<td class="locked">locked</td>`, "<td>85%</td>", "<td>good</td>", "1 of 3 modules completed (33%)"} {
		if !strings.Contains(html, token) {
			t.Fatalf("expected %q in overview:\n%s", token, html)
		}
	}
}

// TestRenderHonorsCancelledContext verifies rendering stops on a done context.
func TestRenderHonorsCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := RenderOverviewHTML(ctx, Overview{}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
