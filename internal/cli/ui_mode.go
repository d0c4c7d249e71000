package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// uiModeDecision captures how a quiz is presented.
type uiModeDecision struct {
	useLive bool
	noColor bool
	warning string
}

// isTerminal reports whether a stream is a TTY.
var isTerminal = defaultIsTerminal

// lookupEnv reads environment variables; tests replace it.
var lookupEnv = os.LookupEnv

// resolveUIMode decides between the Bubble Tea player and the line player.
// The live player needs both stdin and stdout attached to a terminal.
func resolveUIMode(mode string, verbose bool, stdin io.Reader, stdout io.Writer) (uiModeDecision, error) {
	_, noColor := lookupEnv("NO_COLOR")
	normalized := strings.ToLower(strings.TrimSpace(mode))
	if normalized == "" {
		normalized = "auto"
	}
	interactive := isTerminal(stdout) && isTerminal(stdin)
	switch normalized {
	case "auto":
		return uiModeDecision{useLive: interactive && !verbose, noColor: noColor}, nil
	case "live":
		if verbose {
			return uiModeDecision{
				noColor: noColor,
				warning: "Live UI disabled by --verbose; using plain output.",
			}, nil
		}
		if interactive {
			return uiModeDecision{useLive: true, noColor: noColor}, nil
		}
		return uiModeDecision{
			noColor: noColor,
			warning: "Live UI requested but the terminal is not interactive; falling back to plain output.",
		}, nil
	case "plain":
		return uiModeDecision{noColor: noColor}, nil
	default:
		return uiModeDecision{}, fmt.Errorf("invalid ui mode %q (expected auto|live|plain)", mode)
	}
}

// defaultIsTerminal inspects a stream for TTY support.
func defaultIsTerminal(stream any) bool {
	if stream == nil {
		return false
	}
	if file, ok := stream.(*os.File); ok {
		return term.IsTerminal(int(file.Fd()))
	}
	if fder, ok := stream.(interface{ Fd() uintptr }); ok {
		return term.IsTerminal(int(fder.Fd()))
	}
	return false
}
