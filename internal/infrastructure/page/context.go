package page

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/bnema/legible/internal/application/port"
	"github.com/bnema/legible/internal/domain/entity"
	"github.com/bnema/legible/internal/domain/url"
	"github.com/bnema/legible/internal/logging"
)

// ErrUnknownCommand is returned for a style command with an unrecognized action.
var ErrUnknownCommand = errors.New("unknown style command")

// SettingsSource answers the page-side GET_SETTINGS request.
type SettingsSource interface {
	GetSiteSettings(ctx context.Context, site string) (entity.SiteView, error)
}

// Context is the page-side receiver for one loaded document.
type Context struct {
	rawURL     string
	site       string
	doc        *Document
	feed       *Feed
	applicator *Applicator
}

var _ port.StyleReceiver = (*Context)(nil)

// NewContext attaches a receiver to doc loaded from rawURL.
func NewContext(rawURL string, doc *Document, opts Options) *Context {
	feed := NewFeed()
	return &Context{
		rawURL:     rawURL,
		site:       url.NormalizeSite(rawURL),
		doc:        doc,
		feed:       feed,
		applicator: NewApplicator(doc, feed, opts),
	}
}

// URL returns the address the document was loaded from.
func (c *Context) URL() string { return c.rawURL }

// Site returns the normalized site identifier of the page.
func (c *Context) Site() string { return c.site }

// Applicator returns the page's style applicator.
func (c *Context) Applicator() *Applicator { return c.applicator }

// HandleStyleCommand implements port.StyleReceiver.
func (c *Context) HandleStyleCommand(ctx context.Context, cmd port.StyleCommand) error {
	log := logging.FromContext(ctx)
	log.Debug().Str("site", c.site).Str("action", string(cmd.Action)).Bool("enabled", cmd.Enabled).Msg("style command received")

	p := ParamsFromCommand(cmd)
	switch cmd.Action {
	case port.ActionSetFont:
		if cmd.Enabled {
			c.applicator.Apply(p)
		} else {
			c.applicator.Remove()
		}
	case port.ActionUpdateStyle:
		// An inactive page gets the style applied rather than ignoring the update.
		c.applicator.Apply(p)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownCommand, cmd.Action)
	}
	return nil
}

// Bootstrap asks src for the page's settings and applies them when enabled.
func (c *Context) Bootstrap(ctx context.Context, src SettingsSource) error {
	log := logging.FromContext(ctx)

	if c.site == "" {
		return nil
	}
	view, err := src.GetSiteSettings(ctx, c.site)
	if err != nil {
		return fmt.Errorf("failed to get settings for %s: %w", c.site, err)
	}
	if !view.Enabled {
		log.Debug().Str("site", c.site).Bool("excluded", view.IsExcluded).Msg("typography disabled for page")
		return nil
	}
	c.applicator.Apply(Params{
		FontSize:   view.FontSize,
		Spacing:    view.Spacing,
		LineHeight: view.LineHeight,
		Force:      view.Force,
	})
	return nil
}

// InsertHTML appends fragment to the body and notifies the change feed.
func (c *Context) InsertHTML(fragment string) error {
	if err := c.doc.AppendHTML(fragment); err != nil {
		return err
	}
	c.feed.Notify()
	return nil
}

// Render settles pending restyles and writes the document.
func (c *Context) Render(w io.Writer) error {
	c.applicator.Settle()
	return c.doc.Render(w)
}

// Detach stops observing the document without touching it.
func (c *Context) Detach() {
	c.applicator.detach()
}

// ParamsFromCommand extracts style parameters from a command.
func ParamsFromCommand(cmd port.StyleCommand) Params {
	return Params{
		FontSize:   cmd.FontSize,
		Spacing:    cmd.Spacing,
		LineHeight: cmd.LineHeight,
		Force:      cmd.Force,
	}
}
