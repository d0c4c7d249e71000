package report

import (
	"strconv"

	"primer/internal/history"
	"primer/internal/lesson"
	"primer/internal/progress"
)

// answerItem is one reviewed answer resolved against the current module.
type answerItem struct {
	QuestionID  string
	Known       bool
	Prompt      string
	Chosen      string
	Answer      string
	Correct     bool
	Explanation string
}

// answerItems pairs recorded answers with their questions. Answers whose
// question was removed from the module are kept with Known unset.
func answerItems(module lesson.Module, attempt history.Attempt) []answerItem {
	questions := make(map[string]lesson.Question, len(module.Quiz.Questions))
	for _, question := range module.Quiz.Questions {
		questions[question.ID] = question
	}
	items := make([]answerItem, 0, len(attempt.Answers))
	for _, answer := range attempt.Answers {
		question, ok := questions[answer.QuestionID]
		if !ok {
			items = append(items, answerItem{QuestionID: answer.QuestionID})
			continue
		}
		items = append(items, answerItem{
			QuestionID:  answer.QuestionID,
			Known:       true,
			Prompt:      question.Prompt,
			Chosen:      optionText(question, answer.Chosen),
			Answer:      optionText(question, question.Correct),
			Correct:     answer.Correct,
			Explanation: question.Explanation,
		})
	}
	return items
}

func attemptMastery(attempt history.Attempt) string {
	return string(progress.MasteryFor(attempt.Score))
}

// optionText returns the option label or a placeholder when out of range.
func optionText(question lesson.Question, index int) string {
	if index < 0 || index >= len(question.Options) {
		return "(unknown option)"
	}
	return question.Options[index]
}

func bestLabel(module ModuleStatus) string {
	if module.BestScore == nil {
		return "-"
	}
	return strconv.Itoa(*module.BestScore) + "%"
}

func masteryLabel(module ModuleStatus) string {
	if module.Mastery == "" {
		return "-"
	}
	return string(module.Mastery)
}
