package quiz

import (
	"errors"
	"reflect"
	"testing"
)

func fiveQuestions() []Question {
	questions := make([]Question, 5)
	for i := range questions {
		questions[i] = Question{
			ID:            "q" + string(rune('1'+i)),
			Prompt:        "Prompt",
			Options:       []string{"a", "b", "c"},
			CorrectOption: 1,
			Explanation:   "because",
		}
	}
	return questions
}

type completion struct {
	calls  int
	score  int
	passed bool
}

func (c *completion) record(score int, passed bool) {
	c.calls++
	c.score = score
	c.passed = passed
}

func newEngine(t *testing.T, questions []Question, opts ...Option) *Engine {
	t.Helper()
	engine, err := New("Test quiz", questions, opts...)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return engine
}

func answerAll(t *testing.T, engine *Engine, answers []int) {
	t.Helper()
	for i, option := range answers {
		if err := engine.SelectAnswer(option); err != nil {
			t.Fatalf("select answer %d: %v", i, err)
		}
		if err := engine.GoNext(); err != nil {
			t.Fatalf("go next %d: %v", i, err)
		}
	}
}

// TestEngineScoresFourOfFive verifies the 80 percent pass scenario.
func TestEngineScoresFourOfFive(t *testing.T) {
	done := &completion{}
	engine := newEngine(t, fiveQuestions(), WithOnComplete(done.record))
	answerAll(t, engine, []int{1, 1, 1, 0, 1})

	if !engine.IsComplete() {
		t.Fatalf("expected session to complete")
	}
	if done.calls != 1 {
		t.Fatalf("expected one completion call, got %d", done.calls)
	}
	if done.score != 80 || !done.passed {
		t.Fatalf("expected (80, true), got (%d, %v)", done.score, done.passed)
	}
	result, ok := engine.Result()
	if !ok {
		t.Fatalf("expected result to be available")
	}
	if result != (Result{Score: 80, Passed: true, Correct: 4, Total: 5}) {
		t.Fatalf("unexpected result: %+v", result)
	}
}

// TestEngineScoresZero verifies an all-wrong session fails.
func TestEngineScoresZero(t *testing.T) {
	done := &completion{}
	engine := newEngine(t, fiveQuestions(), WithOnComplete(done.record))
	answerAll(t, engine, []int{0, 0, 0, 0, 0})
	if done.calls != 1 || done.score != 0 || done.passed {
		t.Fatalf("expected one call with (0, false), got %+v", *done)
	}
}

// TestEngineSingleQuestion verifies a one-question quiz completes on first next.
func TestEngineSingleQuestion(t *testing.T) {
	done := &completion{}
	engine := newEngine(t, []Question{{
		ID:            "only",
		Prompt:        "Pick c",
		Options:       []string{"a", "b", "c"},
		CorrectOption: 2,
	}}, WithOnComplete(done.record))
	if engine.Progress() != 1 {
		t.Fatalf("expected full progress, got %v", engine.Progress())
	}
	answerAll(t, engine, []int{2})
	if done.calls != 1 || done.score != 100 || !done.passed {
		t.Fatalf("expected one call with (100, true), got %+v", *done)
	}
}

// TestEngineRefusesToSkip verifies next is inert on unanswered questions.
func TestEngineRefusesToSkip(t *testing.T) {
	done := &completion{}
	engine := newEngine(t, fiveQuestions(), WithOnComplete(done.record))
	err := engine.GoNext()
	if !errors.Is(err, ErrUnanswered) {
		t.Fatalf("expected ErrUnanswered, got %v", err)
	}
	index, _ := engine.Current()
	if index != 0 {
		t.Fatalf("expected index 0, got %d", index)
	}
	if engine.IsComplete() || done.calls != 0 {
		t.Fatalf("expected no completion")
	}

	answerAll(t, engine, []int{1, 1, 1, 1})
	if err := engine.GoNext(); !errors.Is(err, ErrUnanswered) {
		t.Fatalf("expected ErrUnanswered on last question, got %v", err)
	}
	if engine.IsComplete() || done.calls != 0 {
		t.Fatalf("expected last unanswered question to block completion")
	}
}

// TestEngineAnswersAreImmutable verifies the first answer wins.
func TestEngineAnswersAreImmutable(t *testing.T) {
	engine := newEngine(t, fiveQuestions())
	if err := engine.SelectAnswer(0); err != nil {
		t.Fatalf("select answer: %v", err)
	}
	if err := engine.SelectAnswer(1); !errors.Is(err, ErrAnswered) {
		t.Fatalf("expected ErrAnswered, got %v", err)
	}
	if option, ok := engine.Answer(0); !ok || option != 0 {
		t.Fatalf("expected recorded answer 0, got %d (%v)", option, ok)
	}

	if err := engine.GoNext(); err != nil {
		t.Fatalf("go next: %v", err)
	}
	if err := engine.GoPrevious(); err != nil {
		t.Fatalf("go previous: %v", err)
	}
	if err := engine.SelectAnswer(1); !errors.Is(err, ErrAnswered) {
		t.Fatalf("expected revisited answer to stay read-only, got %v", err)
	}
	if option, _ := engine.Answer(0); option != 0 {
		t.Fatalf("expected answer 0 to survive revisit, got %d", option)
	}
}

// TestEngineRejectsOutOfRangeOption verifies invalid options are inert.
func TestEngineRejectsOutOfRangeOption(t *testing.T) {
	engine := newEngine(t, fiveQuestions())
	for _, option := range []int{-1, 3, 99} {
		if err := engine.SelectAnswer(option); !errors.Is(err, ErrOptionRange) {
			t.Fatalf("option %d: expected ErrOptionRange, got %v", option, err)
		}
	}
	if engine.Answered() {
		t.Fatalf("expected no answer to be recorded")
	}
}

// TestEngineGoPreviousAtStart verifies previous is inert on the first question.
func TestEngineGoPreviousAtStart(t *testing.T) {
	engine := newEngine(t, fiveQuestions())
	if err := engine.GoPrevious(); !errors.Is(err, ErrAtStart) {
		t.Fatalf("expected ErrAtStart, got %v", err)
	}
	if index, _ := engine.Current(); index != 0 {
		t.Fatalf("expected index 0, got %d", index)
	}
}

// TestEngineIdempotentRedisplay verifies navigation never changes recorded answers.
func TestEngineIdempotentRedisplay(t *testing.T) {
	engine := newEngine(t, fiveQuestions())
	answerAll(t, engine, []int{0, 1})
	if err := engine.SelectAnswer(2); err != nil {
		t.Fatalf("select answer: %v", err)
	}
	before := engine.Answers()
	if err := engine.GoPrevious(); err != nil {
		t.Fatalf("go previous: %v", err)
	}
	if err := engine.GoPrevious(); err != nil {
		t.Fatalf("go previous: %v", err)
	}
	firstView := engine.View()
	if firstView.Chosen != 0 || !firstView.ShowExplanation || firstView.CanSelect {
		t.Fatalf("expected read-only reveal of answer 0, got %+v", firstView)
	}
	if err := engine.GoNext(); err != nil {
		t.Fatalf("go next: %v", err)
	}
	if err := engine.GoNext(); err != nil {
		t.Fatalf("go next: %v", err)
	}

	for round := 0; round < 3; round++ {
		for i := 0; i < 2; i++ {
			if err := engine.GoPrevious(); err != nil {
				t.Fatalf("go previous: %v", err)
			}
		}
		view := engine.View()
		if !reflect.DeepEqual(view, firstView) {
			t.Fatalf("round %d: view changed: %+v vs %+v", round, view, firstView)
		}
		for i := 0; i < 2; i++ {
			if err := engine.GoNext(); err != nil {
				t.Fatalf("go next: %v", err)
			}
		}
	}
	if !reflect.DeepEqual(engine.Answers(), before) {
		t.Fatalf("answers changed: %v vs %v", engine.Answers(), before)
	}
}

// TestEngineCompleteIsTerminal verifies only Reset leaves the complete state.
func TestEngineCompleteIsTerminal(t *testing.T) {
	done := &completion{}
	engine := newEngine(t, fiveQuestions(), WithOnComplete(done.record))
	answerAll(t, engine, []int{1, 1, 1, 1, 1})

	if err := engine.SelectAnswer(0); !errors.Is(err, ErrComplete) {
		t.Fatalf("expected ErrComplete from select, got %v", err)
	}
	if err := engine.GoNext(); !errors.Is(err, ErrComplete) {
		t.Fatalf("expected ErrComplete from next, got %v", err)
	}
	if err := engine.GoPrevious(); !errors.Is(err, ErrComplete) {
		t.Fatalf("expected ErrComplete from previous, got %v", err)
	}
	if done.calls != 1 {
		t.Fatalf("expected exactly one completion call, got %d", done.calls)
	}
	if engine.State() != StateComplete {
		t.Fatalf("expected complete state, got %s", engine.State())
	}
}

// TestEngineResetFidelity verifies reset matches a fresh engine.
func TestEngineResetFidelity(t *testing.T) {
	done := &completion{}
	engine := newEngine(t, fiveQuestions(), WithOnComplete(done.record))
	answerAll(t, engine, []int{1, 0, 1, 0, 1})
	engine.Reset()

	fresh := newEngine(t, fiveQuestions())
	if engine.State() != fresh.State() {
		t.Fatalf("expected state %s, got %s", fresh.State(), engine.State())
	}
	if !reflect.DeepEqual(engine.View(), fresh.View()) {
		t.Fatalf("view differs from fresh engine")
	}
	if len(engine.Answers()) != 0 {
		t.Fatalf("expected answers to be cleared, got %v", engine.Answers())
	}
	if _, ok := engine.Result(); ok {
		t.Fatalf("expected no result after reset")
	}
	if done.calls != 1 {
		t.Fatalf("expected reset not to call back, got %d calls", done.calls)
	}

	answerAll(t, engine, []int{1, 1, 1, 1, 1})
	if done.calls != 2 || done.score != 100 {
		t.Fatalf("expected second session to report 100, got %+v", *done)
	}
}

// TestEngineProgress verifies the progress fraction tracks the current index.
func TestEngineProgress(t *testing.T) {
	engine := newEngine(t, fiveQuestions())
	want := []float64{0.2, 0.4, 0.6, 0.8, 1}
	for i, expected := range want {
		if got := engine.Progress(); got != expected {
			t.Fatalf("question %d: expected progress %v, got %v", i, expected, got)
		}
		if i == len(want)-1 {
			break
		}
		answerAll(t, engine, []int{1})
	}
}

// TestEngineCustomThreshold verifies the pass threshold option.
func TestEngineCustomThreshold(t *testing.T) {
	done := &completion{}
	engine := newEngine(t, fiveQuestions(), WithPassThreshold(90), WithOnComplete(done.record))
	answerAll(t, engine, []int{1, 1, 1, 0, 1})
	if done.score != 80 || done.passed {
		t.Fatalf("expected (80, false) at threshold 90, got (%d, %v)", done.score, done.passed)
	}
	if clamped := newEngine(t, fiveQuestions(), WithPassThreshold(150)); clamped.PassThreshold() != 100 {
		t.Fatalf("expected threshold clamp to 100, got %d", clamped.PassThreshold())
	}
}

// TestEngineDoesNotAliasInput verifies caller mutations do not leak into the session.
func TestEngineDoesNotAliasInput(t *testing.T) {
	questions := fiveQuestions()
	engine := newEngine(t, questions)
	questions[0].Options[1] = "mutated"
	_, current := engine.Current()
	if current.Options[1] != "b" {
		t.Fatalf("expected engine copy to be unaffected, got %q", current.Options[1])
	}
}

// TestReviewMarksCorrectness verifies the review list reflects recorded answers.
func TestReviewMarksCorrectness(t *testing.T) {
	engine := newEngine(t, fiveQuestions())
	answerAll(t, engine, []int{1, 0, 1, 2, 1})
	review := engine.Review()
	if len(review) != 5 {
		t.Fatalf("expected 5 review items, got %d", len(review))
	}
	wantCorrect := []bool{true, false, true, false, true}
	for i, item := range review {
		if !item.Answered {
			t.Fatalf("item %d: expected answered", i)
		}
		if item.Correct != wantCorrect[i] {
			t.Fatalf("item %d: expected correct=%v, got %v", i, wantCorrect[i], item.Correct)
		}
	}
}
