package lesson

import (
	"fmt"
	"strings"
)

// Issue captures a validation problem in a lesson module.
type Issue struct {
	Field   string
	Message string
}

// ValidationError reports one or more validation issues.
type ValidationError struct {
	Issues []Issue
}

// Error returns a readable message for validation failures.
func (err *ValidationError) Error() string {
	if err == nil || len(err.Issues) == 0 {
		return ""
	}
	parts := make([]string, 0, len(err.Issues))
	for _, issue := range err.Issues {
		parts = append(parts, fmt.Sprintf("%s: %s", issue.Field, issue.Message))
	}
	return fmt.Sprintf("module validation failed: %s", strings.Join(parts, "; "))
}

type issueCollector struct {
	issues []Issue
}

func (collector *issueCollector) add(field, message string) {
	collector.issues = append(collector.issues, Issue{Field: field, Message: message})
}

func (collector *issueCollector) result() error {
	if len(collector.issues) == 0 {
		return nil
	}
	return &ValidationError{Issues: collector.issues}
}

// NormalizeModule trims whitespace, applies defaults, and validates a module.
func NormalizeModule(module Module) (Module, error) {
	collector := &issueCollector{}
	if module.Version == 0 {
		collector.add("version", "is required")
	} else if module.Version != 1 {
		collector.add("version", fmt.Sprintf("unsupported version %d", module.Version))
	}

	module.ID = strings.TrimSpace(module.ID)
	if module.ID == "" {
		collector.add("id", "is required")
	}
	module.Title = strings.TrimSpace(module.Title)
	if module.Title == "" {
		collector.add("title", "is required")
	}
	module.Summary = strings.TrimSpace(module.Summary)

	module.Level = Level(strings.ToLower(strings.TrimSpace(string(module.Level))))
	switch module.Level {
	case "":
		module.Level = LevelBeginner
	case LevelBeginner, LevelIntermediate, LevelAdvanced:
	default:
		collector.add("level", fmt.Sprintf("unknown level %q (expected beginner|intermediate|advanced)", module.Level))
	}
	if module.Minutes < 0 {
		collector.add("minutes", "must not be negative")
	}

	module.Tags = normalizeTags(module.Tags)
	module.Prerequisites = normalizeStringSlice(module.Prerequisites)
	for i, prereq := range module.Prerequisites {
		if prereq == "" {
			collector.add(fmt.Sprintf("prerequisites[%d]", i), "is required")
		} else if prereq == module.ID {
			collector.add(fmt.Sprintf("prerequisites[%d]", i), "module cannot require itself")
		}
	}

	seenSections := map[string]struct{}{}
	for i, section := range module.Sections {
		prefix := fmt.Sprintf("sections[%d]", i)
		section.ID = strings.TrimSpace(section.ID)
		section.Title = strings.TrimSpace(section.Title)
		section.Body = strings.TrimSpace(section.Body)
		if section.ID == "" {
			collector.add(prefix+".id", "is required")
		} else if _, exists := seenSections[section.ID]; exists {
			collector.add(prefix+".id", fmt.Sprintf("duplicate id %q", section.ID))
		} else {
			seenSections[section.ID] = struct{}{}
		}
		if section.Title == "" {
			collector.add(prefix+".title", "is required")
		}
		module.Sections[i] = section
	}

	glossary := make(map[string]string, len(module.Glossary))
	for term, definition := range module.Glossary {
		term = strings.TrimSpace(term)
		definition = strings.TrimSpace(definition)
		if term == "" {
			collector.add("glossary", "terms must not be empty")
			continue
		}
		if definition == "" {
			collector.add(fmt.Sprintf("glossary[%q]", term), "definition is required")
		}
		glossary[term] = definition
	}
	module.Glossary = glossary

	module.Quiz.Title = strings.TrimSpace(module.Quiz.Title)
	if module.Quiz.Title == "" {
		module.Quiz.Title = module.Title
	}
	normalizeQuiz(collector, &module.Quiz)

	if err := collector.result(); err != nil {
		return Module{}, err
	}
	return module, nil
}

func normalizeQuiz(collector *issueCollector, quiz *Quiz) {
	if len(quiz.Questions) == 0 {
		collector.add("quiz.questions", "must include at least one entry")
	}
	seenIDs := map[string]struct{}{}
	for i, question := range quiz.Questions {
		prefix := fmt.Sprintf("quiz.questions[%d]", i)
		question.ID = strings.TrimSpace(question.ID)
		if question.ID == "" {
			question.ID = fmt.Sprintf("q%d", i+1)
		}
		if _, exists := seenIDs[question.ID]; exists {
			collector.add(prefix+".id", fmt.Sprintf("duplicate id %q", question.ID))
		} else {
			seenIDs[question.ID] = struct{}{}
		}

		question.Prompt = strings.TrimSpace(question.Prompt)
		if question.Prompt == "" {
			collector.add(prefix+".question", "is required")
		}

		question.Options = normalizeStringSlice(question.Options)
		switch {
		case len(question.Options) < 2:
			collector.add(prefix+".options", "must include at least two entries")
		case len(question.Options) > MaxOptions:
			collector.add(prefix+".options", fmt.Sprintf("at most %d entries", MaxOptions))
		}
		for optionIndex, option := range question.Options {
			if option == "" {
				collector.add(fmt.Sprintf("%s.options[%d]", prefix, optionIndex), "is required")
			}
		}
		if question.Correct < 0 || question.Correct >= len(question.Options) {
			collector.add(prefix+".correct", fmt.Sprintf("index %d out of range", question.Correct))
		}
		question.Explanation = strings.TrimSpace(question.Explanation)
		quiz.Questions[i] = question
	}
}

func normalizeStringSlice(values []string) []string {
	normalized := make([]string, 0, len(values))
	for _, value := range values {
		normalized = append(normalized, strings.TrimSpace(value))
	}
	return normalized
}

func normalizeTags(values []string) []string {
	seen := map[string]struct{}{}
	tags := make([]string, 0, len(values))
	for _, value := range values {
		tag := strings.ToLower(strings.TrimSpace(value))
		if tag == "" {
			continue
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		tags = append(tags, tag)
	}
	return tags
}
