package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"primer/internal/report"
)

// runProgress builds the handler for the progress command.
func runProgress(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		flags, configPath := newFlagSet(cmd, stderr)
		asJSON := flags.Bool("json", false, "Print progress as JSON")
		positional, code, ok := parseArgs(cmd, flags, args, stdout, stderr)
		if !ok {
			return code
		}
		if !checkArgCount(cmd, positional, 0, 0, stderr) {
			return ExitUsage
		}

		ctx := context.Background()
		env, err := openEnvironment(ctx, envOptions{configPath: *configPath, stderr: stderr})
		if err != nil {
			fmt.Fprintf(stderr, "Failed to load: %v\n", err)
			return ExitError
		}
		defer env.Close()

		overview, err := report.BuildOverview(ctx, env.catalog.Modules(), env.tracker)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to load progress: %v\n", err)
			return ExitError
		}
		if *asJSON {
			encoder := json.NewEncoder(stdout)
			encoder.SetIndent("", "  ")
			if err := encoder.Encode(overview); err != nil {
				fmt.Fprintf(stderr, "Failed to write progress: %v\n", err)
				return ExitError
			}
			return ExitOK
		}
		fmt.Fprintf(stdout, "%d of %d modules completed (%d%%)\n", overview.Completed, overview.Total, overview.Percent())
		if overview.Total > 0 {
			fmt.Fprintln(stdout, moduleTable(overview.Modules))
		}
		return ExitOK
	}
}
