package quiz

import (
	"strconv"
	"testing"
)

// TestScorePercent verifies rounding over representative ratios.
func TestScorePercent(t *testing.T) {
	cases := []struct {
		correct int
		total   int
		want    int
	}{
		{0, 5, 0},
		{4, 5, 80},
		{5, 5, 100},
		{1, 3, 33},
		{2, 3, 67},
		{1, 8, 13},
		{7, 10, 70},
		{0, 0, 0},
	}
	for _, tc := range cases {
		if got := ScorePercent(tc.correct, tc.total); got != tc.want {
			t.Fatalf("ScorePercent(%d, %d): expected %d, got %d", tc.correct, tc.total, tc.want, got)
		}
	}
}

// TestScoreMatchesRoundedRatio checks every assignment of a small quiz.
func TestScoreMatchesRoundedRatio(t *testing.T) {
	for total := 1; total <= 12; total++ {
		for correct := 0; correct <= total; correct++ {
			ratio := 100 * float64(correct) / float64(total)
			want := int(ratio + 0.5)
			if got := ScorePercent(correct, total); got != want {
				t.Fatalf("ScorePercent(%d, %d): expected %d, got %d", correct, total, want, got)
			}
		}
	}
}

// TestPassThresholdBoundary verifies 70 passes and 69 fails.
func TestPassThresholdBoundary(t *testing.T) {
	// 100 questions make every integer score reachable.
	questions := make([]Question, 100)
	for i := range questions {
		questions[i] = Question{
			ID:            "q" + strconv.Itoa(i),
			Prompt:        "Prompt",
			Options:       []string{"wrong", "right"},
			CorrectOption: 1,
		}
	}
	for _, tc := range []struct {
		correct int
		passed  bool
	}{
		{70, true},
		{69, false},
	} {
		done := &completion{}
		engine := newEngine(t, questions, WithOnComplete(done.record))
		answers := make([]int, len(questions))
		for i := 0; i < tc.correct; i++ {
			answers[i] = 1
		}
		answerAll(t, engine, answers)
		if done.score != tc.correct || done.passed != tc.passed {
			t.Fatalf("correct=%d: expected (%d, %v), got (%d, %v)", tc.correct, tc.correct, tc.passed, done.score, done.passed)
		}
	}
}
