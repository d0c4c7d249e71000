package cli

import (
	"flag"
	"fmt"
	"io"
	"strings"
)

// newFlagSet returns a flag set with the shared --config flag.
func newFlagSet(cmd *Command, stderr io.Writer) (*flag.FlagSet, *string) {
	flags := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
	flags.SetOutput(stderr)
	configPath := flags.String("config", "", "Path to config file (default: search for .primer/config.yml)")
	return flags, configPath
}

// parseArgs parses flags that may follow positional arguments and returns the
// positionals. When ok is false the command should exit with code.
func parseArgs(cmd *Command, flags *flag.FlagSet, args []string, stdout, stderr io.Writer) (positional []string, code int, ok bool) {
	for {
		if err := flags.Parse(args); err != nil {
			if err == flag.ErrHelp {
				printCommandUsage(cmd, stdout)
				return nil, ExitOK, false
			}
			fmt.Fprintf(stderr, "invalid arguments: %v\n", err)
			printCommandUsage(cmd, stderr)
			return nil, ExitUsage, false
		}
		rest := flags.Args()
		if len(rest) == 0 {
			return positional, ExitOK, true
		}
		positional = append(positional, rest[0])
		args = rest[1:]
	}
}

// checkArgCount enforces a positional argument range.
func checkArgCount(cmd *Command, positional []string, minArgs, maxArgs int, stderr io.Writer) bool {
	switch {
	case len(positional) < minArgs:
		fmt.Fprintln(stderr, "missing arguments")
	case len(positional) > maxArgs:
		fmt.Fprintf(stderr, "unexpected arguments: %s\n", strings.Join(positional[maxArgs:], " "))
	default:
		return true
	}
	printCommandUsage(cmd, stderr)
	return false
}
