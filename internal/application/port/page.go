// Package port defines application-layer interfaces for external capabilities.
// Ports abstract the host environment (tabs, page scripts, UI listeners) so
// the use cases stay testable without one.
package port

import (
	"context"

	"github.com/bnema/legible/internal/domain/entity"
)

// PageID uniquely identifies an open page context.
type PageID string

// PageInfo describes an open page as reported by the host.
type PageInfo struct {
	ID  PageID `json:"id"`
	URL string `json:"url"`
}

// StyleAction names a core→page message.
type StyleAction string

const (
	// ActionSetFont applies (enabled) or removes (disabled) the style.
	ActionSetFont StyleAction = "SET_FONT"
	// ActionUpdateStyle updates the parameters, applying first when inactive.
	ActionUpdateStyle StyleAction = "UPDATE_STYLE"
)

// StyleCommand is a core→page message.
type StyleCommand struct {
	Action     StyleAction `json:"action"`
	Enabled    bool        `json:"enabled"`
	Force      bool        `json:"force"`
	FontSize   float64     `json:"fontSize"`
	Spacing    float64     `json:"spacing"`
	LineHeight float64     `json:"lineHeight"`
}

// CommandFor builds the message that brings a page in line with eff.
func CommandFor(eff entity.EffectiveStyle) StyleCommand {
	if !eff.Enabled {
		return StyleCommand{Action: ActionSetFont, Enabled: false}
	}
	return StyleCommand{
		Action:     ActionUpdateStyle,
		Enabled:    true,
		Force:      eff.Force,
		FontSize:   eff.FontSize,
		Spacing:    eff.Spacing,
		LineHeight: eff.LineHeight,
	}
}

// PageRegistry enumerates the pages currently open in the host.
type PageRegistry interface {
	ListPages(ctx context.Context) ([]PageInfo, error)
	Page(ctx context.Context, id PageID) (PageInfo, error)
}

// PageMessenger delivers style commands to a page's receiver.
// It fails when the page has no receiver loaded yet.
type PageMessenger interface {
	SendToPage(ctx context.Context, id PageID, cmd StyleCommand) error
}

// StyleReceiver is the page-side end of PageMessenger.
type StyleReceiver interface {
	HandleStyleCommand(ctx context.Context, cmd StyleCommand) error
}
