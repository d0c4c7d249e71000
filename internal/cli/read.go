package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"primer/internal/lesson"
)

// runRead builds the handler for the read command.
func runRead(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		flags, configPath := newFlagSet(cmd, stderr)
		done := flags.String("done", "", "Toggle the read state of a section")
		positional, code, ok := parseArgs(cmd, flags, args, stdout, stderr)
		if !ok {
			return code
		}
		if !checkArgCount(cmd, positional, 1, 1, stderr) {
			return ExitUsage
		}

		ctx := context.Background()
		env, err := openEnvironment(ctx, envOptions{configPath: *configPath, stderr: stderr})
		if err != nil {
			fmt.Fprintf(stderr, "Failed to load: %v\n", err)
			return ExitError
		}
		defer env.Close()

		module, err := env.catalog.Get(positional[0])
		if err != nil {
			fmt.Fprintf(stderr, "Failed to read: %v\n", err)
			return ExitError
		}
		if section := strings.TrimSpace(*done); section != "" {
			read, err := env.tracker.ToggleSection(ctx, module, section)
			if err != nil {
				fmt.Fprintf(stderr, "Failed to update section: %v\n", err)
				return ExitError
			}
			state := "unread"
			if read {
				state = "read"
			}
			fmt.Fprintf(stdout, "Marked %s as %s\n", section, state)
			return ExitOK
		}

		sections, err := env.tracker.Sections(ctx, module)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to load progress: %v\n", err)
			return ExitError
		}
		read := make(map[string]bool, len(sections.Done))
		for _, id := range sections.Done {
			read[id] = true
		}
		fmt.Fprintf(stdout, "%s (%s, %d min)\n", module.Title, module.Level, module.Minutes)
		if module.Summary != "" {
			fmt.Fprintln(stdout, module.Summary)
		}
		for _, section := range module.Sections {
			mark := " "
			if read[section.ID] {
				mark = "x"
			}
			fmt.Fprintf(stdout, "\n[%s] %s (%s)\n%s\n", mark, section.Title, section.ID, strings.TrimSpace(section.Body))
		}
		fmt.Fprintf(stdout, "\nRead %d of %d sections (%d%%).\n", len(sections.Done), sections.Total, sections.Percent)
		if missing := lesson.MissingPrerequisites(module, mustCompleted(ctx, env)); len(missing) > 0 {
			fmt.Fprintf(stdout, "Quiz locked until you complete: %s\n", strings.Join(missing, ", "))
		}
		return ExitOK
	}
}

// mustCompleted returns completed modules, treating a read error as none.
func mustCompleted(ctx context.Context, env *environment) []string {
	completed, err := env.tracker.Completed(ctx)
	if err != nil {
		env.log.WithError(err).Warn("load completed modules failed")
		return nil
	}
	return completed
}

// runGlossary builds the handler for the glossary command.
func runGlossary(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
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
		if !checkArgCount(cmd, positional, 1, 2, stderr) {
			return ExitUsage
		}

		env, err := openEnvironment(context.Background(), envOptions{configPath: *configPath, stderr: stderr})
		if err != nil {
			fmt.Fprintf(stderr, "Failed to load: %v\n", err)
			return ExitError
		}
		defer env.Close()

		module, err := env.catalog.Get(positional[0])
		if err != nil {
			fmt.Fprintf(stderr, "Failed to look up: %v\n", err)
			return ExitError
		}
		glossary := module.GlossaryIndex()
		if len(positional) == 2 {
			definition, ok := glossary.Lookup(positional[1])
			if !ok {
				fmt.Fprintf(stderr, "Failed to look up: %v\n", fmt.Errorf("%w: term %q", lesson.ErrNotFound, positional[1]))
				return ExitError
			}
			fmt.Fprintln(stdout, definition)
			return ExitOK
		}
		terms := glossary.Terms()
		if len(terms) == 0 {
			fmt.Fprintln(stdout, "No glossary terms.")
			return ExitOK
		}
		for _, term := range terms {
			definition, _ := glossary.Lookup(term)
			fmt.Fprintf(stdout, "%s: %s\n", term, definition)
		}
		return ExitOK
	}
}

