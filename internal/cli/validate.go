package cli

import (
	"fmt"
	"io"

	"primer/internal/lesson"
)

// runValidate builds the handler for the validate command.
func runValidate(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		flags, configPath := newFlagSet(cmd, stderr)
		positional, code, ok := parseArgs(cmd, flags, args, stdout, stderr)
		if !ok {
			return code
		}
		if !checkArgCount(cmd, positional, 0, 0, stderr) {
			return ExitUsage
		}

		cfg, err := loadConfig(*configPath)
		if err != nil {
			fmt.Fprintf(stderr, "Validation failed:\n%v\n", err)
			return ExitError
		}
		fmt.Fprintln(stdout, "Config OK")

		catalog, err := lesson.LoadCatalog(cfg.LessonsDir)
		if err != nil {
			fmt.Fprintf(stderr, "Validation failed:\n%v\n", err)
			return ExitError
		}
		fmt.Fprintf(stdout, "Lessons OK (%d modules in %s)\n", catalog.Len(), cfg.LessonsDir)
		return ExitOK
	}
}
