package quiz

import (
	"fmt"
	"strings"
)

// Issue captures a validation problem in a question list.
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
	return fmt.Sprintf("quiz validation failed: %s", strings.Join(parts, "; "))
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

// Validate checks a question list against the engine invariants.
func Validate(questions []Question) error {
	collector := &issueCollector{}
	if len(questions) == 0 {
		collector.add("questions", "must include at least one entry")
	}
	seenIDs := map[string]struct{}{}
	for i, question := range questions {
		prefix := fmt.Sprintf("questions[%d]", i)
		if strings.TrimSpace(question.ID) == "" {
			collector.add(prefix+".id", "is required")
		} else if _, exists := seenIDs[question.ID]; exists {
			collector.add(prefix+".id", fmt.Sprintf("duplicate id %q", question.ID))
		} else {
			seenIDs[question.ID] = struct{}{}
		}
		if strings.TrimSpace(question.Prompt) == "" {
			collector.add(prefix+".prompt", "is required")
		}
		if len(question.Options) < 2 {
			collector.add(prefix+".options", "must include at least two entries")
		}
		if question.CorrectOption < 0 || question.CorrectOption >= len(question.Options) {
			collector.add(prefix+".correct", fmt.Sprintf("index %d out of range", question.CorrectOption))
		}
	}
	return collector.result()
}
