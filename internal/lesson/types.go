package lesson

// Level is the difficulty tier of a module.
type Level string

const (
	LevelBeginner     Level = "beginner"
	LevelIntermediate Level = "intermediate"
	LevelAdvanced     Level = "advanced"
)

// Module is one lesson page: prose sections, a glossary and a quiz.
type Module struct {
	Version       int               `json:"version" yaml:"version"`
	ID            string            `json:"id" yaml:"id"`
	Title         string            `json:"title" yaml:"title"`
	Summary       string            `json:"summary" yaml:"summary"`
	Level         Level             `json:"level" yaml:"level"`
	Minutes       int               `json:"minutes" yaml:"minutes"`
	Tags          []string          `json:"tags" yaml:"tags"`
	Prerequisites []string          `json:"prerequisites" yaml:"prerequisites"`
	Sections      []Section         `json:"sections" yaml:"sections"`
	Glossary      map[string]string `json:"glossary" yaml:"glossary"`
	Quiz          Quiz              `json:"quiz" yaml:"quiz"`
}

// Section is a block of lesson prose that can be marked as read.
type Section struct {
	ID    string `json:"id" yaml:"id"`
	Title string `json:"title" yaml:"title"`
	Body  string `json:"body" yaml:"body"`
}

// Quiz is the module's multiple-choice quiz.
type Quiz struct {
	Title     string     `json:"title" yaml:"title"`
	Questions []Question `json:"questions" yaml:"questions"`
}

// MaxOptions is the most options a question may offer. Players bind one
// key per option (1-9 or a-i).
const MaxOptions = 9

// Question is the authored form of a quiz question.
type Question struct {
	ID          string   `json:"id" yaml:"id"`
	Prompt      string   `json:"question" yaml:"question"`
	Options     []string `json:"options" yaml:"options"`
	Correct     int      `json:"correct" yaml:"correct"`
	Explanation string   `json:"explanation" yaml:"explanation"`
}

// levelRank orders levels for sorting.
func levelRank(level Level) int {
	switch level {
	case LevelBeginner:
		return 0
	case LevelIntermediate:
		return 1
	case LevelAdvanced:
		return 2
	default:
		return 3
	}
}
