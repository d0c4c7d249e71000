package play

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"primer/internal/quiz"
)

// renderHeader renders the title and progress line.
func (m Model) renderHeader() string {
	engine := m.session.Engine()
	title := stylize(engine.Title(), m.noColor, lipgloss.Color("33"))
	if engine.IsComplete() {
		return title + "\n"
	}
	view := engine.View()
	counter := fmt.Sprintf("Question %d of %d", view.Index+1, view.Total)
	return title + "\n" + counter + "  " + m.renderBar(engine.Progress()) + "\n"
}

// renderBar renders the progress indicator.
func (m Model) renderBar(fraction float64) string {
	if m.noColor {
		return plainBar(fraction, 20)
	}
	return m.bar.ViewAs(fraction)
}

// plainBar renders an ASCII progress bar.
func plainBar(fraction float64, width int) string {
	filled := int(fraction*float64(width) + 0.5)
	filled = min(max(filled, 0), width)
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", width-filled) + "] " +
		strconv.Itoa(int(fraction*100+0.5)) + "%"
}

// renderQuestion renders the prompt, options and reveal.
func (m Model) renderQuestion() string {
	view := m.session.Engine().View()
	lines := []string{lipgloss.NewStyle().Bold(!m.noColor).Render(view.Prompt), ""}
	for i, option := range view.Options {
		lines = append(lines, m.renderOption(i, option))
	}
	if view.ShowExplanation {
		verdict := "Correct!"
		color := lipgloss.Color("42")
		if view.Options[view.Chosen].Mark == quiz.MarkWrong {
			verdict = "Not quite."
			color = lipgloss.Color("196")
		}
		lines = append(lines, "", stylize(verdict, m.noColor, color))
		if view.Explanation != "" {
			lines = append(lines, stylize(view.Explanation, m.noColor, lipgloss.Color("244")))
		}
	}
	return strings.Join(lines, "\n") + "\n"
}

// renderOption renders one option line with its reveal marker.
func (m Model) renderOption(index int, option quiz.OptionView) string {
	marker := "  "
	switch option.Mark {
	case quiz.MarkCorrect:
		marker = "✓ "
	case quiz.MarkWrong:
		marker = "✗ "
	}
	line := fmt.Sprintf("%s%d) %s", marker, index+1, option.Text)
	switch option.Mark {
	case quiz.MarkCorrect:
		return stylize(line, m.noColor, lipgloss.Color("42"))
	case quiz.MarkWrong:
		return stylize(line, m.noColor, lipgloss.Color("196"))
	default:
		return line
	}
}

// renderResults renders the verdict and the review table.
func (m Model) renderResults() string {
	engine := m.session.Engine()
	result, _ := engine.Result()
	verdict := "Passed"
	color := lipgloss.Color("42")
	if !result.Passed {
		verdict = fmt.Sprintf("Not passed (need %d%%)", engine.PassThreshold())
		color = lipgloss.Color("196")
	}
	lines := []string{
		fmt.Sprintf("Score: %d%% (%d/%d correct)", result.Score, result.Correct, result.Total),
		stylize(verdict, m.noColor, color),
	}
	if completion, ok := m.session.Last(); ok {
		if completion.Outcome.Mastery != "" {
			lines = append(lines, "Mastery: "+string(completion.Outcome.Mastery))
		}
		if completion.Outcome.FirstCompletion {
			lines = append(lines, stylize("Module completed for the first time.", m.noColor, lipgloss.Color("39")))
		}
		if completion.Err != nil {
			lines = append(lines, stylize("Progress not saved: "+completion.Err.Error(), m.noColor, lipgloss.Color("196")))
		}
	}
	lines = append(lines, "", m.review.View())
	return strings.Join(lines, "\n") + "\n"
}

// reviewColumns sizes the review table for a terminal width.
func reviewColumns(width int) []table.Column {
	questionWidth := max(width-34, 20)
	return []table.Column{
		{Title: "#", Width: 3},
		{Title: "Question", Width: questionWidth},
		{Title: "Your answer", Width: 16},
		{Title: "", Width: 7},
	}
}

// reviewRows converts review items into table rows.
func reviewRows(items []quiz.ReviewItem, noColor bool) []table.Row {
	rows := make([]table.Row, 0, len(items))
	for _, item := range items {
		answer := "-"
		if item.Answered {
			answer = item.Question.Options[item.Chosen]
		}
		mark := "wrong"
		if item.Correct {
			mark = "correct"
		}
		rows = append(rows, table.Row{
			strconv.Itoa(item.Index + 1),
			truncate(item.Question.Prompt, 80),
			truncate(answer, 16),
			mark,
		})
	}
	return rows
}

// truncate shortens text for a table cell.
func truncate(text string, limit int) string {
	normalized := strings.Join(strings.Fields(text), " ")
	if len(normalized) <= limit {
		return normalized
	}
	return normalized[:limit-3] + "..."
}

// tableStyles returns review table styles.
func tableStyles(noColor bool) table.Styles {
	styles := table.DefaultStyles()
	if noColor {
		return styles
	}
	styles.Header = styles.Header.Foreground(lipgloss.Color("252"))
	return styles
}

// stylize applies a foreground color when enabled.
func stylize(text string, noColor bool, color lipgloss.Color) string {
	if noColor {
		return text
	}
	return lipgloss.NewStyle().Foreground(color).Render(text)
}
