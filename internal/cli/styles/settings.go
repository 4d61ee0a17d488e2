package styles

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/legible/internal/domain/entity"
)

// SettingsRenderer renders settings command output.
type SettingsRenderer struct {
	theme *Theme
}

// NewSettingsRenderer creates a renderer with the given theme.
func NewSettingsRenderer(theme *Theme) *SettingsRenderer {
	return &SettingsRenderer{theme: theme}
}

// RenderSiteView renders the resolved settings of one site.
func (r *SettingsRenderer) RenderSiteView(site string, v entity.SiteView) string {
	t := r.theme
	state := t.BadgeMuted.Render("off")
	if v.Enabled {
		state = t.Badge.Render("on")
	}
	if v.IsExcluded {
		state = t.BadgeError.Render("excluded")
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "\n  %s %s %s\n",
		lipgloss.NewStyle().Foreground(t.Accent).Render(IconGlobe),
		t.Title.Render(site),
		state,
	)
	r.writeField(&sb, "force", yesNo(v.Force))
	r.writeField(&sb, "font size", FormatFloat(v.FontSize)+"em")
	r.writeField(&sb, "spacing", FormatFloat(v.Spacing)+"px")
	r.writeField(&sb, "line height", FormatFloat(v.LineHeight))
	return sb.String()
}

// RenderDefaults renders the global flag and default values.
func (r *SettingsRenderer) RenderDefaults(s *entity.Settings) string {
	t := r.theme
	var sb strings.Builder
	fmt.Fprintf(&sb, "\n  %s %s\n",
		lipgloss.NewStyle().Foreground(t.Accent).Render(IconFont),
		t.Title.Render("Defaults"),
	)
	r.writeField(&sb, "enabled", yesNo(s.GlobalEnabled))
	r.writeField(&sb, "font size", FormatFloat(s.DefaultFontSize)+"em")
	r.writeField(&sb, "spacing", FormatFloat(s.DefaultLetterSpacing)+"px")
	r.writeField(&sb, "line height", FormatFloat(s.DefaultLineHeight))
	r.writeField(&sb, "overrides", fmt.Sprintf("%d", len(s.SiteSettings)))
	r.writeField(&sb, "excluded", fmt.Sprintf("%d", len(s.ExcludeSites)))
	return sb.String()
}

func (r *SettingsRenderer) writeField(sb *strings.Builder, name, value string) {
	fmt.Fprintf(sb, "    %s %s\n", r.theme.Subtle.Render(fmt.Sprintf("%-12s", name)), r.theme.Normal.Render(value))
}

// RenderSites renders the override table or a hint when there is none.
func (r *SettingsRenderer) RenderSites(s *entity.Settings) string {
	tbl := SitesTable(s)
	if tbl == "" {
		return r.RenderInfo("no per-site settings")
	}
	return tbl
}

// RenderSuccess renders a confirmation line.
func (r *SettingsRenderer) RenderSuccess(msg string) string {
	return fmt.Sprintf("  %s %s", r.theme.SuccessStyle.Render(IconCheck), msg)
}

// RenderInfo renders a neutral line.
func (r *SettingsRenderer) RenderInfo(msg string) string {
	return fmt.Sprintf("  %s %s", lipgloss.NewStyle().Foreground(r.theme.Accent).Render(IconInfo), r.theme.Subtle.Render(msg))
}

// RenderWarning renders a warning line.
func (r *SettingsRenderer) RenderWarning(msg string) string {
	return fmt.Sprintf("  %s %s", r.theme.WarningStyle.Render(IconWarning), msg)
}

// RenderError renders an error line.
func (r *SettingsRenderer) RenderError(err error) string {
	return fmt.Sprintf("  %s %s", r.theme.ErrorStyle.Render(IconX), r.theme.ErrorStyle.Render(err.Error()))
}

// RenderToggle renders the outcome of a toggle.
func (r *SettingsRenderer) RenderToggle(site string, enabled bool) string {
	state := r.theme.BadgeMuted.Render("off")
	if enabled {
		state = r.theme.Badge.Render("on")
	}
	return r.RenderSuccess(fmt.Sprintf("%s %s", r.theme.Title.Render(site), state))
}

// RenderStatus renders daemon reachability.
func (r *SettingsRenderer) RenderStatus(addr string, pages, listeners int) string {
	t := r.theme
	return fmt.Sprintf("\n  %s daemon %s %s\n    %s\n",
		t.SuccessStyle.Render(IconPlug),
		t.Highlight.Render(addr),
		t.Badge.Render("running"),
		t.Subtle.Render(fmt.Sprintf("%d pages, %d listeners", pages, listeners)),
	)
}

// RenderDaemonDown renders an unreachable daemon.
func (r *SettingsRenderer) RenderDaemonDown(addr string, err error) string {
	t := r.theme
	return fmt.Sprintf("\n  %s daemon %s %s\n    %s\n",
		t.ErrorStyle.Render(IconPlug),
		t.Highlight.Render(addr),
		t.BadgeError.Render("down"),
		t.Subtle.Render(err.Error()),
	)
}
