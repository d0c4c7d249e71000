package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"primer/internal/report"
)

// runReport builds the handler for the report command.
func runReport(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		flags, configPath := newFlagSet(cmd, stderr)
		outPath := flags.String("out", "", "Output HTML path (default: <data-dir>/reports/<name>.html)")
		overview := flags.Bool("overview", false, "Render the progress overview instead of an attempt")
		positional, code, ok := parseArgs(cmd, flags, args, stdout, stderr)
		if !ok {
			return code
		}
		wantArgs := 1
		if *overview {
			wantArgs = 0
		}
		if !checkArgCount(cmd, positional, wantArgs, wantArgs, stderr) {
			return ExitUsage
		}

		ctx := context.Background()
		env, err := openEnvironment(ctx, envOptions{configPath: *configPath, stderr: stderr, history: !*overview})
		if err != nil {
			fmt.Fprintf(stderr, "Failed to load: %v\n", err)
			return ExitError
		}
		defer env.Close()

		var html, name string
		if *overview {
			data, err := report.BuildOverview(ctx, env.catalog.Modules(), env.tracker)
			if err != nil {
				fmt.Fprintf(stderr, "Failed to load progress: %v\n", err)
				return ExitError
			}
			html, err = report.RenderOverviewHTML(ctx, data)
			if err != nil {
				fmt.Fprintf(stderr, "Failed to render report: %v\n", err)
				return ExitError
			}
			name = "overview"
		} else {
			html, name, err = attemptReport(ctx, env, positional[0])
			if err != nil {
				fmt.Fprintf(stderr, "Failed to build report: %v\n", err)
				return ExitError
			}
		}

		target := strings.TrimSpace(*outPath)
		if target == "" {
			target = filepath.Join(env.cfg.DataDir, "reports", name+".html")
		}
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			fmt.Fprintf(stderr, "Failed to write report: %v\n", err)
			return ExitError
		}
		if err := os.WriteFile(target, []byte(html), 0o644); err != nil {
			fmt.Fprintf(stderr, "Failed to write report: %v\n", err)
			return ExitError
		}
		fmt.Fprintf(stdout, "Wrote %s\n", target)
		return ExitOK
	}
}

// attemptReport renders the latest attempt of a module.
func attemptReport(ctx context.Context, env *environment, moduleID string) (string, string, error) {
	module, err := env.catalog.Get(moduleID)
	if err != nil {
		return "", "", err
	}
	journal, err := env.requireJournal()
	if err != nil {
		return "", "", err
	}
	attempt, ok, err := journal.Latest(ctx, module.ID)
	if err != nil {
		return "", "", err
	}
	if !ok {
		return "", "", fmt.Errorf("no attempts recorded for %s", module.ID)
	}
	html, err := report.RenderAttemptHTML(ctx, module, attempt)
	if err != nil {
		return "", "", err
	}
	return html, module.ID, nil
}
