package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"primer/internal/lesson"
	"primer/internal/session"
	"primer/internal/ui/play"
)

// playInput allows tests to override stdin for the quiz player.
var playInput io.Reader = os.Stdin

// runLivePlayer is a test seam for the Bubble Tea player.
var runLivePlayer = play.Run

// runPlay builds the handler for the play command.
func runPlay(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		flags, configPath := newFlagSet(cmd, stderr)
		uiMode := flags.String("ui", "", "UI mode: auto|live|plain (default: config ui)")
		verbose := flags.Bool("verbose", false, "Log debug output to stderr")
		force := flags.Bool("force", false, "Play even when prerequisites are incomplete")
		positional, code, ok := parseArgs(cmd, flags, args, stdout, stderr)
		if !ok {
			return code
		}
		if !checkArgCount(cmd, positional, 1, 1, stderr) {
			return ExitUsage
		}

		cfg, err := loadConfig(*configPath)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to load config: %v\n", err)
			return ExitError
		}
		mode := *uiMode
		if strings.TrimSpace(mode) == "" {
			mode = cfg.UI
		}
		decision, err := resolveUIMode(mode, *verbose, playInput, stdout)
		if err != nil {
			fmt.Fprintln(stderr, err)
			return ExitUsage
		}
		if decision.warning != "" {
			fmt.Fprintln(stderr, decision.warning)
		}
		if *verbose {
			cfg.LogLevel = "debug"
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		env, err := openEnvironment(ctx, envOptions{
			cfg:       &cfg,
			logToFile: decision.useLive,
			stderr:    stderr,
			history:   true,
		})
		if err != nil {
			fmt.Fprintf(stderr, "Failed to load: %v\n", err)
			return ExitError
		}
		defer env.Close()

		module, err := env.catalog.Get(positional[0])
		if err != nil {
			fmt.Fprintf(stderr, "Failed to play: %v\n", err)
			return ExitError
		}
		completed, err := env.tracker.Completed(ctx)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to load progress: %v\n", err)
			return ExitError
		}
		if missing := lesson.MissingPrerequisites(module, completed); len(missing) > 0 && !*force {
			fmt.Fprintf(stderr, "Module %s is locked; complete first: %s\n", module.ID, strings.Join(missing, ", "))
			return ExitError
		}

		sessionCfg := session.Config{
			Tracker:       env.tracker,
			PassThreshold: cfg.PassThreshold,
			Logger:        env.log,
		}
		if env.journal != nil {
			sessionCfg.Journal = env.journal
		}
		quizSession, err := session.New(ctx, module, sessionCfg)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to start quiz: %v\n", err)
			return ExitError
		}

		if decision.useLive {
			err = runLivePlayer(ctx, quizSession, playInput, stdout, play.Options{NoColor: decision.noColor})
		} else {
			err = play.NewPlainPlayer(playInput, stdout).Play(ctx, quizSession)
		}
		if err != nil && ctx.Err() == nil {
			fmt.Fprintf(stderr, "Player error: %v\n", err)
			return ExitError
		}
		printPlaySummary(stdout, env, quizSession)
		return ExitOK
	}
}

// printPlaySummary prints the last result and the next module to try.
func printPlaySummary(stdout io.Writer, env *environment, s *session.Session) {
	completion, ok := s.Last()
	if !ok {
		return
	}
	fmt.Fprintf(stdout, "%s: %d%% (%d/%d)", s.Module().Title, completion.Result.Score, completion.Result.Correct, completion.Result.Total)
	if completion.Result.Passed {
		fmt.Fprintf(stdout, " passed, mastery %s\n", completion.Outcome.Mastery)
	} else {
		fmt.Fprintln(stdout, " not passed")
	}
	if completion.Err != nil {
		fmt.Fprintf(stdout, "Warning: progress not fully saved: %v\n", completion.Err)
	}
	if completion.Result.Passed {
		if next, ok := env.catalog.Next(s.Module().ID); ok {
			fmt.Fprintf(stdout, "Next up: %s (primer play %s)\n", next.Title, next.ID)
		}
	}
}
