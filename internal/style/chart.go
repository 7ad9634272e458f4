package style

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss/v2"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var (
	BarStyle = lipgloss.NewStyle().Foreground(AccentColor)

	BarLabelStyle = lipgloss.NewStyle().
			Foreground(PrimaryTextColor).
			Align(lipgloss.Left)

	BarValueStyle = lipgloss.NewStyle().
			Foreground(MutedColor)
)

var printer = message.NewPrinter(language.English)

// FormatCount renders n with thousands separators, e.g. 12,345.
func FormatCount(n int64) string {
	return printer.Sprintf("%d", n)
}

// Bar is one labelled value of a horizontal bar chart.
type Bar struct {
	Label string
	Value int64
}

// BarWidth returns the number of cells a value occupies when max fills width.
// Non-zero values always get at least one cell.
func BarWidth(value, max int64, width int) int {
	if value <= 0 || max <= 0 || width <= 0 {
		return 0
	}
	cells := int(float64(value) / float64(max) * float64(width))
	if cells < 1 {
		cells = 1
	}
	if cells > width {
		cells = width
	}
	return cells
}

// BarChart renders bars scaled against the largest value.
func BarChart(bars []Bar, width int) string {
	var max int64
	labelWidth := 0
	for _, b := range bars {
		if b.Value > max {
			max = b.Value
		}
		if len(b.Label) > labelWidth {
			labelWidth = len(b.Label)
		}
	}

	var out strings.Builder
	for _, b := range bars {
		label := BarLabelStyle.Width(labelWidth).Render(b.Label)
		bar := BarStyle.Render(strings.Repeat("█", BarWidth(b.Value, max, width)))
		fmt.Fprintf(&out, "%s │ %s %s\n", label, bar, BarValueStyle.Render(FormatCount(b.Value)))
	}
	return out.String()
}
