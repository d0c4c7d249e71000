package quiz

import "errors"

// ErrComplete indicates the session already finished; only Reset applies.
var ErrComplete = errors.New("quiz is complete")

// ErrAnswered indicates the current question already has a recorded answer.
var ErrAnswered = errors.New("question already answered")

// ErrOptionRange indicates the selected option does not exist.
var ErrOptionRange = errors.New("option index out of range")

// ErrUnanswered indicates an attempt to advance past an unanswered question.
var ErrUnanswered = errors.New("current question is unanswered")

// ErrAtStart indicates an attempt to move before the first question.
var ErrAtStart = errors.New("already at the first question")
