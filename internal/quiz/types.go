package quiz

// DefaultPassThreshold is the minimum percentage score that passes a quiz.
const DefaultPassThreshold = 70

// Question is a single multiple-choice question.
type Question struct {
	ID            string
	Prompt        string
	Options       []string
	CorrectOption int
	Explanation   string
}

// State identifies the engine lifecycle state.
type State int

const (
	// StateActive means a question is being shown.
	StateActive State = iota
	// StateComplete means the user advanced past the last question.
	StateComplete
)

// String returns a readable state name.
func (s State) String() string {
	switch s {
	case StateActive:
		return "active"
	case StateComplete:
		return "complete"
	default:
		return "unknown"
	}
}

// Result is the final outcome of a completed session.
type Result struct {
	Score   int
	Passed  bool
	Correct int
	Total   int
}

// ReviewItem describes one question in the post-completion review list.
type ReviewItem struct {
	Index    int
	Question Question
	Chosen   int
	Answered bool
	Correct  bool
}

// CompleteFunc receives the final score and verdict of a session.
type CompleteFunc func(score int, passed bool)
