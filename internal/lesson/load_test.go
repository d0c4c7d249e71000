package lesson

import (
	"errors"
	"fmt"
	"testing"
)

// TestLoadModuleYAML verifies YAML modules load and normalize properly.
func TestLoadModuleYAML(t *testing.T) {
	path := writeFile(t, t.TempDir(), "wallets.yml", walletModuleYAML)
	module, err := LoadModule(path)
	if err != nil {
		t.Fatalf("load module: %v", err)
	}
	if module.Title != "Crypto Wallets" {
		t.Fatalf("expected trimmed title, got %q", module.Title)
	}
	if module.Level != LevelBeginner {
		t.Fatalf("expected beginner level, got %q", module.Level)
	}
	if len(module.Tags) != 2 || module.Tags[0] != "custody" || module.Tags[1] != "wallets" {
		t.Fatalf("unexpected tags: %v", module.Tags)
	}
	if module.Quiz.Title != "Crypto Wallets" {
		t.Fatalf("expected quiz title to default to module title, got %q", module.Quiz.Title)
	}
	if module.Quiz.Questions[0].ID != "q1" {
		t.Fatalf("expected generated question id q1, got %q", module.Quiz.Questions[0].ID)
	}
	if definition, ok := module.GlossaryIndex().Lookup("seed phrase"); !ok || definition != "Words that encode a master key." {
		t.Fatalf("unexpected glossary lookup: %q (%v)", definition, ok)
	}
}

// TestLoadModuleJSON verifies JSON modules are parsed and validated.
func TestLoadModuleJSON(t *testing.T) {
	payload := `{
  "version": 1,
  "id": "fees",
  "title": "Fees",
  "quiz": {"questions": [{"id": "f1", "question": "Who gets fees?", "options": ["Miners", "Nobody"], "correct": 0}]}
}`
	path := writeFile(t, t.TempDir(), "fees.json", payload)
	module, err := LoadModule(path)
	if err != nil {
		t.Fatalf("load module: %v", err)
	}
	if module.ID != "fees" || len(module.Quiz.Questions) != 1 {
		t.Fatalf("unexpected module: %+v", module)
	}
}

// TestLoadModuleRejectsUnknownFields verifies strict decoding.
func TestLoadModuleRejectsUnknownFields(t *testing.T) {
	path := writeFile(t, t.TempDir(), "bad.yml", basicsModuleYAML+"extra: true\n")
	if _, err := LoadModule(path); err == nil {
		t.Fatalf("expected unknown field error")
	}
}

// TestLoadModuleValidationErrors verifies invalid modules return every issue.
func TestLoadModuleValidationErrors(t *testing.T) {
	payload := `version: 2
id: broken
title: ""
level: expert
prerequisites: [broken]
quiz:
  questions:
    - id: dup
      question: "Q1"
      options: ["yes"]
      correct: 4
    - id: dup
      question: ""
      options: ["a", ""]
      correct: 0
`
	path := writeFile(t, t.TempDir(), "broken.yml", payload)
	_, err := LoadModule(path)
	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	fields := map[string]bool{}
	for _, issue := range validationErr.Issues {
		fields[issue.Field] = true
	}
	expected := []string{
		"version",
		"title",
		"level",
		"prerequisites[0]",
		"quiz.questions[0].options",
		"quiz.questions[0].correct",
		"quiz.questions[1].id",
		"quiz.questions[1].question",
		"quiz.questions[1].options[1]",
	}
	for _, field := range expected {
		if !fields[field] {
			t.Fatalf("expected issue for %s, got %+v", field, validationErr.Issues)
		}
	}
}

// TestModuleNewEngine verifies the module quiz converts into a playable engine.
func TestModuleNewEngine(t *testing.T) {
	path := writeFile(t, t.TempDir(), "basics.yml", basicsModuleYAML)
	module, err := LoadModule(path)
	if err != nil {
		t.Fatalf("load module: %v", err)
	}
	engine, err := module.NewEngine()
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	if engine.Title() != "Basics quiz" || engine.Len() != 1 {
		t.Fatalf("unexpected engine: %s (%d)", engine.Title(), engine.Len())
	}
	_, question := engine.Current()
	if question.CorrectOption != 0 || len(question.Options) != 3 {
		t.Fatalf("unexpected question: %+v", question)
	}
}

// TestLoadModuleRejectsTooManyOptions verifies questions stay within the
// options that have a key binding.
func TestLoadModuleRejectsTooManyOptions(t *testing.T) {
	payload := `version: 1
id: wide
title: Wide
quiz:
  questions:
    - id: q1
      question: Pick one
      options: [o1, o2, o3, o4, o5, o6, o7, o8, o9, o10]
      correct: 9
`
	path := writeFile(t, t.TempDir(), "wide.yml", payload)
	_, err := LoadModule(path)
	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	found := false
	for _, issue := range validationErr.Issues {
		if issue.Field == "quiz.questions[0].options" && issue.Message == "at most 9 entries" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected option limit issue, got %+v", validationErr.Issues)
	}
}

// TestModuleNewEngineRejectsTooManyOptions verifies modules built in code
// cannot bypass the option limit.
func TestModuleNewEngineRejectsTooManyOptions(t *testing.T) {
	options := make([]string, MaxOptions+1)
	for i := range options {
		options[i] = fmt.Sprintf("o%d", i+1)
	}
	module := Module{ID: "wide", Quiz: Quiz{Questions: []Question{{ID: "q1", Prompt: "Pick one", Options: options, Correct: MaxOptions}}}}
	_, err := module.NewEngine()
	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected validation error, got %v", err)
	}

	module.Quiz.Questions[0].Options = options[:MaxOptions]
	module.Quiz.Questions[0].Correct = MaxOptions - 1
	if _, err := module.NewEngine(); err != nil {
		t.Fatalf("expected %d options to be accepted: %v", MaxOptions, err)
	}
}
