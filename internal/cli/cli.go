package cli

import (
	"fmt"
	"io"
)

const (
	ExitOK    = 0
	ExitError = 1
	ExitUsage = 2
)

type Command struct {
	Name    string
	Summary string
	Usage   []string
	Run     func(args []string, stdout, stderr io.Writer) int
}

func Run(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		printUsage(stdout)
		return ExitUsage
	}
	if isHelpArg(args[0]) {
		printUsage(stdout)
		return ExitOK
	}

	cmd := findCommand(args[0])
	if cmd == nil {
		fmt.Fprintf(stderr, "Unknown command: %s\n\n", args[0])
		printUsage(stderr)
		return ExitUsage
	}

	return cmd.Run(args[1:], stdout, stderr)
}

func findCommand(name string) *Command {
	for _, cmd := range commands {
		if cmd.Name == name {
			return cmd
		}
	}
	return nil
}

func isHelpArg(arg string) bool {
	switch arg {
	case "-h", "--help", "help":
		return true
	default:
		return false
	}
}

func wantsHelp(args []string) bool {
	for _, arg := range args {
		switch arg {
		case "-h", "--help":
			return true
		}
	}
	return false
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  primer <command> [options]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	for _, cmd := range commands {
		fmt.Fprintf(w, "  %-9s %s\n", cmd.Name, cmd.Summary)
	}
	fmt.Fprintln(w, "\nUse \"primer <command> --help\" for more information.")
}

func printCommandUsage(cmd *Command, w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	for _, line := range cmd.Usage {
		fmt.Fprintf(w, "  %s\n", line)
	}
	if cmd.Summary != "" {
		fmt.Fprintf(w, "\n%s\n", cmd.Summary)
	}
}

func command(name, summary string, usage []string, runner func(cmd *Command) func(args []string, stdout, stderr io.Writer) int) *Command {
	cmd := &Command{
		Name:    name,
		Summary: summary,
		Usage:   usage,
	}
	cmd.Run = runner(cmd)
	return cmd
}

var commands = []*Command{
	command("init", "Scaffold .primer/config.yml and a sample lesson", []string{
		"primer init [--dir <path>] [--yes]",
	}, runInit),
	command("validate", "Validate the config and lesson files", []string{
		"primer validate [--config <path>]",
	}, runValidate),
	command("list", "List lesson modules", []string{
		"primer list [--search <text>] [--level <level>] [--tag <tag>] [--sort title|level|minutes]",
	}, runList),
	command("read", "Show a module's sections and glossary", []string{
		"primer read <module-id> [--done <section-id>]",
	}, runRead),
	command("glossary", "Look up glossary terms", []string{
		"primer glossary <module-id> [term]",
	}, runGlossary),
	command("play", "Take a module quiz", []string{
		"primer play <module-id> [--ui auto|live|plain] [--force]",
	}, runPlay),
	command("progress", "Show progress across modules", []string{
		"primer progress [--json]",
	}, runProgress),
	command("history", "Show recorded quiz attempts", []string{
		"primer history [module-id] [--limit <n>]",
	}, runHistory),
	command("report", "Generate HTML reports", []string{
		"primer report <module-id> [--out <path>]",
		"primer report --overview [--out <path>]",
	}, runReport),
	command("serve", "Serve progress pages and the JSON API", []string{
		"primer serve [--addr <host:port>]",
	}, runServe),
}
