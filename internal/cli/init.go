package cli

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"primer/internal/config"
)

// runInit builds the handler for the init command.
func runInit(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		flags := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		flags.SetOutput(stderr)
		dir := flags.String("dir", "", "Project directory (default: git root or working directory)")
		yes := flags.Bool("yes", false, "Accept all defaults without prompting")
		positional, code, ok := parseArgs(cmd, flags, args, stdout, stderr)
		if !ok {
			return code
		}
		if !checkArgCount(cmd, positional, 0, 0, stderr) {
			return ExitUsage
		}

		root, err := initRoot(*dir)
		if err != nil {
			fmt.Fprintf(stderr, "Init failed: %v\n", err)
			return ExitError
		}
		if _, err := os.Stat(config.ConfigPath(root)); err == nil {
			fmt.Fprintf(stderr, "Init failed: config already exists at %q\n", config.ConfigPath(root))
			return ExitError
		}

		in := initInput
		if in == nil {
			in = os.Stdin
		}
		reader := bufio.NewReader(in)

		if !*yes {
			confirm, err := promptYesNo(reader, stdout, fmt.Sprintf("Initialize primer in %s?", root), true)
			if err != nil {
				fmt.Fprintf(stderr, "Init failed: %v\n", err)
				return ExitError
			}
			if !confirm {
				fmt.Fprintln(stderr, "Init cancelled.")
				return ExitError
			}
		}

		written, err := config.Scaffold(root)
		for _, path := range written {
			fmt.Fprintf(stdout, "Wrote %s\n", path)
		}
		if err != nil {
			fmt.Fprintf(stderr, "Init failed: %v\n", err)
			return ExitError
		}

		gitRoot := discoverGitRoot(root)
		if gitRoot == "" {
			return ExitOK
		}
		addIgnore := true
		if !*yes {
			addIgnore, err = promptYesNo(reader, stdout, "Add progress data folder to .gitignore?", true)
			if err != nil {
				fmt.Fprintf(stderr, "Init failed: %v\n", err)
				return ExitError
			}
		}
		if !addIgnore {
			return ExitOK
		}
		updated, err := addGitignoreEntry(gitRoot, filepath.Join(root, config.DefaultDataDir))
		if err != nil {
			fmt.Fprintf(stderr, "Init failed: update .gitignore: %v\n", err)
			return ExitError
		}
		if updated {
			fmt.Fprintf(stdout, "Updated %s\n", filepath.Join(gitRoot, ".gitignore"))
		}
		return ExitOK
	}
}

// initInput allows tests to override stdin for init prompts.
var initInput io.Reader = os.Stdin

// initRoot picks the directory to scaffold into.
func initRoot(dir string) (string, error) {
	if value := strings.TrimSpace(dir); value != "" {
		return filepath.Abs(value)
	}
	wd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	if root := discoverGitRoot(wd); root != "" {
		return root, nil
	}
	return wd, nil
}

// discoverGitRoot walks upward for a .git entry and returns "" when none exists.
func discoverGitRoot(startDir string) string {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return ""
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, ".git")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}
