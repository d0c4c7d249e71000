package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"primer/internal/lesson"
	"primer/internal/report"
)

// runList builds the handler for the list command.
func runList(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		flags, configPath := newFlagSet(cmd, stderr)
		search := flags.String("search", "", "Filter by text in title, summary or tags")
		level := flags.String("level", "", "Filter by level (beginner|intermediate|advanced)")
		tag := flags.String("tag", "", "Filter by tag")
		sortBy := flags.String("sort", "", "Sort by title|level|minutes (default: catalog order)")
		positional, code, ok := parseArgs(cmd, flags, args, stdout, stderr)
		if !ok {
			return code
		}
		if !checkArgCount(cmd, positional, 0, 0, stderr) {
			return ExitUsage
		}
		sortKey, err := lesson.ParseSortKey(*sortBy)
		if err != nil {
			fmt.Fprintln(stderr, err)
			return ExitUsage
		}

		ctx := context.Background()
		env, err := openEnvironment(ctx, envOptions{configPath: *configPath, stderr: stderr})
		if err != nil {
			fmt.Fprintf(stderr, "Failed to load: %v\n", err)
			return ExitError
		}
		defer env.Close()

		modules := env.catalog.Filter(lesson.Query{
			Text:  *search,
			Level: lesson.Level(strings.ToLower(strings.TrimSpace(*level))),
			Tag:   *tag,
			Sort:  sortKey,
		})
		if len(modules) == 0 {
			fmt.Fprintln(stdout, "No modules match.")
			return ExitOK
		}
		overview, err := report.BuildOverview(ctx, modules, env.tracker)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to load progress: %v\n", err)
			return ExitError
		}
		fmt.Fprintln(stdout, moduleTable(overview.Modules))
		return ExitOK
	}
}

// moduleTable renders module statuses as a borderless table.
func moduleTable(modules []report.ModuleStatus) string {
	rows := make([][]string, 0, len(modules))
	for _, module := range modules {
		rows = append(rows, []string{
			module.ID,
			module.Title,
			string(module.Level),
			strconv.Itoa(module.Minutes),
			statusLabel(module),
			bestLabel(module),
			masteryLabel(module),
		})
	}
	return table.New().
		Border(lipgloss.HiddenBorder()).
		Headers("ID", "TITLE", "LEVEL", "MIN", "STATUS", "BEST", "MASTERY").
		Rows(rows...).
		String()
}

func statusLabel(module report.ModuleStatus) string {
	switch {
	case module.Completed:
		return "completed"
	case !module.Unlocked:
		return "locked (needs " + strings.Join(module.Missing, ", ") + ")"
	default:
		return "open"
	}
}

func bestLabel(module report.ModuleStatus) string {
	if module.BestScore == nil {
		return "-"
	}
	return strconv.Itoa(*module.BestScore) + "%"
}

func masteryLabel(module report.ModuleStatus) string {
	if module.Mastery == "" {
		return "-"
	}
	return string(module.Mastery)
}
