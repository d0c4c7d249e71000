package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// runHistory builds the handler for the history command.
func runHistory(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		flags, configPath := newFlagSet(cmd, stderr)
		limit := flags.Int("limit", 10, "Maximum attempts to show")
		positional, code, ok := parseArgs(cmd, flags, args, stdout, stderr)
		if !ok {
			return code
		}
		if !checkArgCount(cmd, positional, 0, 1, stderr) {
			return ExitUsage
		}
		if *limit <= 0 {
			fmt.Fprintln(stderr, "--limit must be positive")
			return ExitUsage
		}

		ctx := context.Background()
		env, err := openEnvironment(ctx, envOptions{configPath: *configPath, stderr: stderr, history: true})
		if err != nil {
			fmt.Fprintf(stderr, "Failed to load: %v\n", err)
			return ExitError
		}
		defer env.Close()
		journal, err := env.requireJournal()
		if err != nil {
			fmt.Fprintf(stderr, "Failed to load history: %v\n", err)
			return ExitError
		}

		if len(positional) == 0 {
			summaries, err := journal.Summary(ctx)
			if err != nil {
				fmt.Fprintf(stderr, "Failed to load history: %v\n", err)
				return ExitError
			}
			if len(summaries) == 0 {
				fmt.Fprintln(stdout, "No attempts recorded.")
				return ExitOK
			}
			rows := make([][]string, 0, len(summaries))
			for _, summary := range summaries {
				rows = append(rows, []string{
					summary.ModuleID,
					strconv.Itoa(summary.Attempts),
					strconv.Itoa(summary.Passes),
					strconv.Itoa(summary.BestScore) + "%",
					fmt.Sprintf("%.1f%%", summary.AverageScore),
					summary.LastAttempt.Local().Format(time.DateTime),
				})
			}
			fmt.Fprintln(stdout, table.New().Border(lipgloss.HiddenBorder()).
				Headers("MODULE", "ATTEMPTS", "PASSES", "BEST", "AVERAGE", "LAST").
				Rows(rows...).String())
			return ExitOK
		}

		module, err := env.catalog.Get(positional[0])
		if err != nil {
			fmt.Fprintf(stderr, "Failed to load history: %v\n", err)
			return ExitError
		}
		attempts, err := journal.List(ctx, module.ID, *limit)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to load history: %v\n", err)
			return ExitError
		}
		if len(attempts) == 0 {
			fmt.Fprintf(stdout, "No attempts recorded for %s.\n", module.ID)
			return ExitOK
		}
		rows := make([][]string, 0, len(attempts))
		for _, attempt := range attempts {
			verdict := "fail"
			if attempt.Passed {
				verdict = "pass"
			}
			rows = append(rows, []string{
				attempt.FinishedAt.Local().Format(time.DateTime),
				strconv.Itoa(attempt.Score) + "%",
				fmt.Sprintf("%d/%d", attempt.Correct, attempt.Total),
				verdict,
				attempt.FinishedAt.Sub(attempt.StartedAt).Round(time.Second).String(),
			})
		}
		fmt.Fprintln(stdout, table.New().Border(lipgloss.HiddenBorder()).
			Headers("FINISHED", "SCORE", "CORRECT", "RESULT", "TIME").
			Rows(rows...).String())
		return ExitOK
	}
}
