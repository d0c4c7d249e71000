package server

import "primer/internal/lesson"

// publicModule is a module as served to clients, without quiz answers.
type publicModule struct {
	ID            string            `json:"id"`
	Title         string            `json:"title"`
	Summary       string            `json:"summary,omitempty"`
	Level         lesson.Level      `json:"level"`
	Minutes       int               `json:"minutes"`
	Tags          []string          `json:"tags,omitempty"`
	Prerequisites []string          `json:"prerequisites,omitempty"`
	Sections      []lesson.Section  `json:"sections"`
	Glossary      map[string]string `json:"glossary,omitempty"`
	Quiz          publicQuiz        `json:"quiz"`
}

type publicQuiz struct {
	Title     string           `json:"title"`
	Questions []publicQuestion `json:"questions"`
}

type publicQuestion struct {
	ID      string   `json:"id"`
	Prompt  string   `json:"question"`
	Options []string `json:"options"`
}

func publicModuleFrom(module lesson.Module) publicModule {
	questions := make([]publicQuestion, 0, len(module.Quiz.Questions))
	for _, question := range module.Quiz.Questions {
		questions = append(questions, publicQuestion{
			ID:      question.ID,
			Prompt:  question.Prompt,
			Options: question.Options,
		})
	}
	return publicModule{
		ID:            module.ID,
		Title:         module.Title,
		Summary:       module.Summary,
		Level:         module.Level,
		Minutes:       module.Minutes,
		Tags:          module.Tags,
		Prerequisites: module.Prerequisites,
		Sections:      module.Sections,
		Glossary:      module.Glossary,
		Quiz:          publicQuiz{Title: module.Quiz.Title, Questions: questions},
	}
}
