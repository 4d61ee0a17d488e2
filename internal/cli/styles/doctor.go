package styles

import (
	"fmt"
	"strings"
)

// DoctorStatus is the outcome of one doctor check.
type DoctorStatus int

const (
	DoctorOK DoctorStatus = iota
	DoctorWarn
	DoctorFail
)

// DoctorCheck is one line of the doctor report.
type DoctorCheck struct {
	Name   string
	Status DoctorStatus
	Detail string
}

// DoctorRenderer renders doctor output.
type DoctorRenderer struct {
	theme *Theme
}

// NewDoctorRenderer creates a renderer with the given theme.
func NewDoctorRenderer(theme *Theme) *DoctorRenderer {
	return &DoctorRenderer{theme: theme}
}

// Render renders every check and a summary line.
func (r *DoctorRenderer) Render(checks []DoctorCheck) string {
	t := r.theme
	var sb strings.Builder

	sb.WriteString("\n  " + t.Title.Render("legible doctor") + "\n\n")

	failed := 0
	for _, c := range checks {
		var icon string
		switch c.Status {
		case DoctorOK:
			icon = t.SuccessStyle.Render(IconCheck)
		case DoctorWarn:
			icon = t.WarningStyle.Render(IconWarning)
		default:
			icon = t.ErrorStyle.Render(IconX)
			failed++
		}
		fmt.Fprintf(&sb, "  %s %s %s\n", icon, t.Subtitle.Render(fmt.Sprintf("%-10s", c.Name)), t.Subtle.Render(c.Detail))
	}

	sb.WriteString("\n")
	if failed == 0 {
		sb.WriteString("  " + t.SuccessStyle.Render("all checks passed"))
	} else {
		sb.WriteString("  " + t.ErrorStyle.Render(fmt.Sprintf("%d check(s) failed", failed)))
	}
	return sb.String()
}
