package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"primer/internal/server"
)

// serveProgress is a test seam for running the progress server.
var serveProgress = server.Serve

// runServe builds the handler for the serve command.
func runServe(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		flags, configPath := newFlagSet(cmd, stderr)
		addr := flags.String("addr", "", "Address to listen on (default: config server.addr)")
		positional, code, ok := parseArgs(cmd, flags, args, stdout, stderr)
		if !ok {
			return code
		}
		if !checkArgCount(cmd, positional, 0, 0, stderr) {
			return ExitUsage
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		env, err := openEnvironment(ctx, envOptions{configPath: *configPath, stderr: stderr, history: true})
		if err != nil {
			fmt.Fprintf(stderr, "Failed to load: %v\n", err)
			return ExitError
		}
		defer env.Close()

		listen := strings.TrimSpace(*addr)
		if listen == "" {
			listen = env.cfg.Server.Addr
		}
		deps := server.Dependencies{
			Catalog: env.catalog,
			Tracker: env.tracker,
			Logger:  env.log,
		}
		if env.journal != nil {
			deps.History = env.journal
		}
		cfg := server.Config{
			Addr:    listen,
			Handler: deps,
			Logger:  env.log,
			Ready: func(bound string) {
				fmt.Fprintf(stdout, "Serving progress at http://%s\n", bound)
			},
		}
		if err := serveProgress(ctx, cfg); err != nil {
			fmt.Fprintf(stderr, "Server error: %v\n", err)
			return ExitError
		}
		return ExitOK
	}
}
