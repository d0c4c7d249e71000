package quiz

// Engine drives one quiz session. It is owned by a single caller and is not
// safe for concurrent use.
type Engine struct {
	title      string
	questions  []Question
	threshold  int
	onComplete CompleteFunc

	current  int
	answers  map[int]int
	complete bool
	result   Result
}

// Option configures an Engine.
type Option func(*Engine)

// WithOnComplete registers a callback invoked once when a session completes.
func WithOnComplete(fn CompleteFunc) Option {
	return func(e *Engine) {
		e.onComplete = fn
	}
}

// WithPassThreshold overrides the passing score, clamped to 0..100.
func WithPassThreshold(threshold int) Option {
	return func(e *Engine) {
		e.threshold = min(max(threshold, 0), 100)
	}
}

// New validates questions and returns an engine positioned on the first one.
func New(title string, questions []Question, opts ...Option) (*Engine, error) {
	if err := Validate(questions); err != nil {
		return nil, err
	}
	e := &Engine{
		title:     title,
		questions: cloneQuestions(questions),
		threshold: DefaultPassThreshold,
		answers:   map[int]int{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(e)
		}
	}
	return e, nil
}

// SelectAnswer records the first answer for the current question.
func (e *Engine) SelectAnswer(option int) error {
	if e.complete {
		return ErrComplete
	}
	if _, ok := e.answers[e.current]; ok {
		return ErrAnswered
	}
	if option < 0 || option >= len(e.questions[e.current].Options) {
		return ErrOptionRange
	}
	e.answers[e.current] = option
	return nil
}

// GoNext advances to the next question, completing the session on the last.
func (e *Engine) GoNext() error {
	if e.complete {
		return ErrComplete
	}
	if _, ok := e.answers[e.current]; !ok {
		return ErrUnanswered
	}
	if e.current < len(e.questions)-1 {
		e.current++
		return nil
	}
	e.complete = true
	e.result = e.computeResult()
	if e.onComplete != nil {
		e.onComplete(e.result.Score, e.result.Passed)
	}
	return nil
}

// GoPrevious moves back one question. Recorded answers stay read-only.
func (e *Engine) GoPrevious() error {
	if e.complete {
		return ErrComplete
	}
	if e.current == 0 {
		return ErrAtStart
	}
	e.current--
	return nil
}

// Reset starts a fresh session over the same questions.
func (e *Engine) Reset() {
	e.current = 0
	e.answers = map[int]int{}
	e.complete = false
	e.result = Result{}
}

// Title returns the display label.
func (e *Engine) Title() string {
	return e.title
}

// Len returns the number of questions.
func (e *Engine) Len() int {
	return len(e.questions)
}

// PassThreshold returns the passing score in effect.
func (e *Engine) PassThreshold() int {
	return e.threshold
}

// Questions returns a copy of the question list.
func (e *Engine) Questions() []Question {
	return cloneQuestions(e.questions)
}

// Current returns the index and question currently displayed.
func (e *Engine) Current() (int, Question) {
	return e.current, cloneQuestion(e.questions[e.current])
}

// Answer returns the recorded option for a question index.
func (e *Engine) Answer(index int) (int, bool) {
	option, ok := e.answers[index]
	return option, ok
}

// Answers returns a copy of all recorded answers keyed by question index.
func (e *Engine) Answers() map[int]int {
	out := make(map[int]int, len(e.answers))
	for index, option := range e.answers {
		out[index] = option
	}
	return out
}

// Answered reports whether the current question has a recorded answer.
func (e *Engine) Answered() bool {
	_, ok := e.answers[e.current]
	return ok
}

// IsComplete reports whether the session reached its terminal state.
func (e *Engine) IsComplete() bool {
	return e.complete
}

// State returns the lifecycle state.
func (e *Engine) State() State {
	if e.complete {
		return StateComplete
	}
	return StateActive
}

// Progress returns (current+1)/len for a progress indicator.
func (e *Engine) Progress() float64 {
	return float64(e.current+1) / float64(len(e.questions))
}

// CorrectCount returns how many recorded answers match the correct option.
func (e *Engine) CorrectCount() int {
	correct := 0
	for index, option := range e.answers {
		if option == e.questions[index].CorrectOption {
			correct++
		}
	}
	return correct
}

// Score returns the percentage score over all questions so far.
func (e *Engine) Score() int {
	return ScorePercent(e.CorrectCount(), len(e.questions))
}

// Passed reports whether the current score meets the threshold.
func (e *Engine) Passed() bool {
	return e.Score() >= e.threshold
}

// Result returns the final outcome; ok is false until the session completes.
func (e *Engine) Result() (Result, bool) {
	return e.result, e.complete
}

// Review lists every question with the recorded answer and its correctness.
func (e *Engine) Review() []ReviewItem {
	items := make([]ReviewItem, 0, len(e.questions))
	for index, question := range e.questions {
		chosen, answered := e.answers[index]
		if !answered {
			chosen = -1
		}
		items = append(items, ReviewItem{
			Index:    index,
			Question: cloneQuestion(question),
			Chosen:   chosen,
			Answered: answered,
			Correct:  answered && chosen == question.CorrectOption,
		})
	}
	return items
}

func (e *Engine) computeResult() Result {
	correct := e.CorrectCount()
	score := ScorePercent(correct, len(e.questions))
	return Result{
		Score:   score,
		Passed:  score >= e.threshold,
		Correct: correct,
		Total:   len(e.questions),
	}
}

// ScorePercent returns round(100*correct/total), rounding halves up.
func ScorePercent(correct, total int) int {
	if total <= 0 || correct <= 0 {
		return 0
	}
	return (200*correct + total) / (2 * total)
}

func cloneQuestions(questions []Question) []Question {
	out := make([]Question, len(questions))
	for i, question := range questions {
		out[i] = cloneQuestion(question)
	}
	return out
}

func cloneQuestion(question Question) Question {
	question.Options = append([]string(nil), question.Options...)
	return question
}
