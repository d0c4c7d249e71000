package play

import (
	"context"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"primer/internal/session"
)

// Run plays a session in the terminal until the user quits.
func Run(ctx context.Context, s *session.Session, stdin io.Reader, stdout io.Writer, opts Options) error {
	if stdin == nil {
		stdin = os.Stdin
	}
	if stdout == nil {
		stdout = os.Stdout
	}
	program := tea.NewProgram(
		NewModel(s, opts),
		tea.WithContext(ctx),
		tea.WithInput(stdin),
		tea.WithOutput(stdout),
		tea.WithAltScreen(),
	)
	_, err := program.Run()
	return err
}
