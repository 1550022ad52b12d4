package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// PrettyTheme is the color scheme used by PrettyTable.
type PrettyTheme struct {
	Header lipgloss.Color
	Border lipgloss.Color
	Dim    lipgloss.Color
}

// DefaultPrettyTheme is the default bright-green accent theme, matching the
// rest of this module's terminal output.
var DefaultPrettyTheme = PrettyTheme{
	Header: lipgloss.Color("#00ff9f"),
	Border: lipgloss.Color("#6e7681"),
	Dim:    lipgloss.Color("#6e7681"),
}

// PrettyTable renders a simple bordered table: a header row followed by
// data rows, all columns padded to the widest cell. Used by --pretty
// output modes where raw columnar text isn't legible enough on its own.
func PrettyTable(headers []string, rows [][]string, theme PrettyTheme) string {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && lipgloss.Width(cell) > widths[i] {
				widths[i] = lipgloss.Width(cell)
			}
		}
	}

	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(theme.Header)
	borderStyle := lipgloss.NewStyle().Foreground(theme.Border)
	dimStyle := lipgloss.NewStyle().Foreground(theme.Dim)

	var b strings.Builder
	writeRow := func(cells []string, style lipgloss.Style) {
		b.WriteString(borderStyle.Render("│"))
		for i, cell := range cells {
			pad := widths[i] - lipgloss.Width(cell)
			b.WriteString(" ")
			b.WriteString(style.Render(cell))
			if pad > 0 {
				b.WriteString(strings.Repeat(" ", pad))
			}
			b.WriteString(" ")
			b.WriteString(borderStyle.Render("│"))
		}
		b.WriteString("\n")
	}
	writeRule := func(left, mid, right string) {
		b.WriteString(borderStyle.Render(left))
		for i, w := range widths {
			b.WriteString(borderStyle.Render(strings.Repeat("─", w+2)))
			if i < len(widths)-1 {
				b.WriteString(borderStyle.Render(mid))
			}
		}
		b.WriteString(borderStyle.Render(right))
		b.WriteString("\n")
	}

	writeRule("╭", "┬", "╮")
	writeRow(headers, headerStyle)
	writeRule("├", "┼", "┤")
	for _, row := range rows {
		writeRow(row, dimStyle)
	}
	writeRule("╰", "┴", "╯")

	return b.String()
}

// FormatPitchRow renders one pitch-track output row the way PrettyTable
// expects: time to 7 decimals, pitch to 4, or "unvoiced" when the frame
// didn't clear the strength threshold.
func FormatPitchRow(timeSec, hz float64, voiced bool) []string {
	pitchCol := "unvoiced"
	if voiced {
		pitchCol = fmt.Sprintf("%.4f", hz)
	}
	return []string{fmt.Sprintf("%.7f", timeSec), pitchCol}
}
