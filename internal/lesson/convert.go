package lesson

import (
	"fmt"

	"primer/internal/quiz"
)

// Questions converts the module quiz into engine questions.
func (m Module) Questions() []quiz.Question {
	questions := make([]quiz.Question, 0, len(m.Quiz.Questions))
	for _, question := range m.Quiz.Questions {
		questions = append(questions, quiz.Question{
			ID:            question.ID,
			Prompt:        question.Prompt,
			Options:       append([]string(nil), question.Options...),
			CorrectOption: question.Correct,
			Explanation:   question.Explanation,
		})
	}
	return questions
}

// NewEngine builds a quiz engine for the module. Questions with more than
// MaxOptions options are rejected.
func (m Module) NewEngine(opts ...quiz.Option) (*quiz.Engine, error) {
	collector := &issueCollector{}
	for i, question := range m.Quiz.Questions {
		if len(question.Options) > MaxOptions {
			collector.add(fmt.Sprintf("quiz.questions[%d].options", i), fmt.Sprintf("at most %d entries", MaxOptions))
		}
	}
	if err := collector.result(); err != nil {
		return nil, err
	}
	return quiz.New(m.Quiz.Title, m.Questions(), opts...)
}
