package quiz

// OptionMark describes how an option is displayed.
type OptionMark int

const (
	// MarkNone is an option shown without reveal styling.
	MarkNone OptionMark = iota
	// MarkCorrect highlights the correct option once answered.
	MarkCorrect
	// MarkWrong highlights the chosen option when it was wrong.
	MarkWrong
)

// OptionView is the display projection of one answer option.
type OptionView struct {
	Text     string
	Mark     OptionMark
	Selected bool
}

// QuestionView is the display projection of the current question.
type QuestionView struct {
	Index           int
	Total           int
	ID              string
	Prompt          string
	Options         []OptionView
	Answered        bool
	Chosen          int
	Explanation     string
	ShowExplanation bool
	CanSelect       bool
	CanNext         bool
	CanPrevious     bool
	IsLast          bool
}

// View projects the current question into display state.
func (e *Engine) View() QuestionView {
	question := e.questions[e.current]
	chosen, answered := e.answers[e.current]
	if !answered {
		chosen = -1
	}
	options := make([]OptionView, len(question.Options))
	for i, text := range question.Options {
		mark := MarkNone
		if answered {
			switch {
			case i == question.CorrectOption:
				mark = MarkCorrect
			case i == chosen:
				mark = MarkWrong
			}
		}
		options[i] = OptionView{Text: text, Mark: mark, Selected: i == chosen}
	}
	return QuestionView{
		Index:           e.current,
		Total:           len(e.questions),
		ID:              question.ID,
		Prompt:          question.Prompt,
		Options:         options,
		Answered:        answered,
		Chosen:          chosen,
		Explanation:     question.Explanation,
		ShowExplanation: answered,
		CanSelect:       !e.complete && !answered,
		CanNext:         !e.complete && answered,
		CanPrevious:     !e.complete && e.current > 0,
		IsLast:          e.current == len(e.questions)-1,
	}
}
