package styles

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const sliderWidth = 24

// Slider renders a labelled horizontal gauge of value within [lo, hi].
func (t *Theme) Slider(label string, value, lo, hi float64, unit string, focused bool) string {
	filled := 0
	if hi > lo {
		filled = int((value - lo) / (hi - lo) * sliderWidth)
	}
	filled = max(0, min(sliderWidth, filled))

	bar := lipgloss.NewStyle().Foreground(t.Accent).Render(strings.Repeat("━", filled)) +
		lipgloss.NewStyle().Foreground(t.Border).Render(strings.Repeat("─", sliderWidth-filled))

	row := fmt.Sprintf("%-12s %s %s", label, bar, FormatFloat(value)+unit)
	if focused {
		return t.Focused.Render(IconCursor + " " + row)
	}
	return t.Unfocused.Render("  " + row)
}

// Checkbox renders a labelled boolean row.
func (t *Theme) Checkbox(label string, checked, focused bool) string {
	box := IconCheckboxEmpty
	if checked {
		box = IconCheckboxChecked
	}
	row := fmt.Sprintf("%s %s", box, label)
	if focused {
		return t.Focused.Render(IconCursor + " " + row)
	}
	return t.Unfocused.Render("  " + row)
}
