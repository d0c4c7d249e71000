package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// promptYesNo asks a yes/no question until it gets a usable answer.
// An empty answer, or end of input, selects the default.
func promptYesNo(reader *bufio.Reader, out io.Writer, label string, defaultYes bool) (bool, error) {
	hint := "y/N"
	if defaultYes {
		hint = "Y/n"
	}
	for {
		fmt.Fprintf(out, "%s [%s]: ", label, hint)
		line, err := reader.ReadString('\n')
		eof := errors.Is(err, io.EOF)
		if err != nil && !eof {
			return false, err
		}
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "":
			return defaultYes, nil
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		default:
			if eof {
				return false, fmt.Errorf("invalid response %q", strings.TrimSpace(line))
			}
			fmt.Fprintln(out, "Please answer yes or no.")
		}
	}
}
