package play

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"primer/internal/quiz"
	"primer/internal/session"
)

// PlainPlayer plays a session with line-oriented input and output.
type PlainPlayer struct {
	in  io.Reader
	out io.Writer
}

// NewPlainPlayer returns a player reading commands from in.
func NewPlainPlayer(in io.Reader, out io.Writer) *PlainPlayer {
	return &PlainPlayer{in: in, out: out}
}

// Play runs the session until quit, end of input, or ctx is done.
func (p *PlainPlayer) Play(ctx context.Context, s *session.Session) error {
	scanner := bufio.NewScanner(p.in)
	p.render(s)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		fmt.Fprint(p.out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(p.out)
			return scanner.Err()
		}
		command := strings.ToLower(strings.TrimSpace(scanner.Text()))
		quit, status := p.apply(s, command)
		if quit {
			return nil
		}
		if status != "" {
			fmt.Fprintln(p.out, status)
			continue
		}
		p.render(s)
	}
}

// apply runs one command and returns a status line for inert operations.
func (p *PlainPlayer) apply(s *session.Session, command string) (bool, string) {
	engine := s.Engine()
	switch command {
	case "q", "quit":
		return true, ""
	case "r", "retake":
		if !engine.IsComplete() {
			return false, "Finish the quiz before retaking it."
		}
		s.Retake()
		return false, ""
	case "", "n", "next":
		return false, statusFor(engine.GoNext())
	case "p", "prev", "previous":
		return false, statusFor(engine.GoPrevious())
	case "?", "help":
		return false, "Commands: 1-9 or a-i answer, n next, p previous, r retake, q quit."
	}
	option, ok := optionForKey(command)
	if !ok {
		return false, fmt.Sprintf("Unknown command %q. Type ? for help.", command)
	}
	return false, statusFor(engine.SelectAnswer(option))
}

// render prints the current question or the results.
func (p *PlainPlayer) render(s *session.Session) {
	engine := s.Engine()
	if engine.IsComplete() {
		p.renderResults(s)
		return
	}
	view := engine.View()
	fmt.Fprintf(p.out, "\n%s  question %d of %d %s\n", engine.Title(), view.Index+1, view.Total, plainBar(engine.Progress(), 20))
	fmt.Fprintln(p.out, view.Prompt)
	for i, option := range view.Options {
		marker := " "
		switch option.Mark {
		case quiz.MarkCorrect:
			marker = "+"
		case quiz.MarkWrong:
			marker = "x"
		}
		fmt.Fprintf(p.out, " %s %d) %s\n", marker, i+1, option.Text)
	}
	if view.ShowExplanation && view.Explanation != "" {
		fmt.Fprintln(p.out, view.Explanation)
	}
}

// renderResults prints the verdict and per-question review.
func (p *PlainPlayer) renderResults(s *session.Session) {
	engine := s.Engine()
	result, _ := engine.Result()
	verdict := "PASSED"
	if !result.Passed {
		verdict = "NOT PASSED"
	}
	fmt.Fprintf(p.out, "\nScore: %d%% (%d/%d) %s\n", result.Score, result.Correct, result.Total, verdict)
	if completion, ok := s.Last(); ok {
		if completion.Outcome.Mastery != "" {
			fmt.Fprintf(p.out, "Mastery: %s\n", completion.Outcome.Mastery)
		}
		if completion.Err != nil {
			fmt.Fprintf(p.out, "Progress not saved: %v\n", completion.Err)
		}
	}
	for _, item := range engine.Review() {
		mark := "x"
		if item.Correct {
			mark = "+"
		}
		fmt.Fprintf(p.out, " %s %d. %s\n", mark, item.Index+1, truncate(item.Question.Prompt, 72))
	}
	fmt.Fprintln(p.out, "Type r to retake or q to quit.")
}
