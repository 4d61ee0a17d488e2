package usecase

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/bnema/legible/internal/application/port"
	"github.com/bnema/legible/internal/domain/entity"
	"github.com/bnema/legible/internal/domain/repository"
	"github.com/bnema/legible/internal/domain/resolve"
	"github.com/bnema/legible/internal/domain/url"
	"github.com/bnema/legible/internal/logging"
)

const (
	defaultPropagationConcurrency = 8
	defaultPushTimeout            = 2 * time.Second
)

// PropagateOptions tunes the fan-out.
type PropagateOptions struct {
	// InternalSchemes lists URL schemes never styled. Nil uses url.DefaultInternalSchemes.
	InternalSchemes []string
	Concurrency     int
	PushTimeout     time.Duration
}

// PageOutcome is what happened to a single page during propagation.
type PageOutcome struct {
	PageID  port.PageID        `json:"pageId"`
	URL     string             `json:"url"`
	Site    string             `json:"site,omitempty"`
	Skipped bool               `json:"skipped,omitempty"`
	Command *port.StyleCommand `json:"command,omitempty"`
	Err     error              `json:"-"`
}

// PropagationReport collects per-target outcomes of one propagation.
type PropagationReport struct {
	Pages     []PageOutcome   `json:"pages"`
	Broadcast []port.Delivery `json:"broadcast"`
	// ListErr is set when the page registry could not be enumerated.
	ListErr error `json:"-"`
}

// Failed returns the page outcomes that carry an error.
func (r *PropagationReport) Failed() []PageOutcome {
	var failed []PageOutcome
	for _, p := range r.Pages {
		if p.Err != nil {
			failed = append(failed, p)
		}
	}
	return failed
}

// Sent counts the pages a command was delivered to.
func (r *PropagationReport) Sent() int {
	n := 0
	for _, p := range r.Pages {
		if p.Command != nil && p.Err == nil {
			n++
		}
	}
	return n
}

// PropagateSettingsUseCase pushes the current settings to every open page and
// every listening configuration UI.
type PropagateSettingsUseCase struct {
	settingsRepo repository.SettingsRepository
	pages        port.PageRegistry
	messenger    port.PageMessenger
	broadcaster  port.SettingsBroadcaster
	opts         PropagateOptions
}

// NewPropagateSettingsUseCase creates a new propagation use case.
func NewPropagateSettingsUseCase(
	settingsRepo repository.SettingsRepository,
	pages port.PageRegistry,
	messenger port.PageMessenger,
	broadcaster port.SettingsBroadcaster,
	opts PropagateOptions,
) *PropagateSettingsUseCase {
	if opts.Concurrency <= 0 {
		opts.Concurrency = defaultPropagationConcurrency
	}
	if opts.PushTimeout <= 0 {
		opts.PushTimeout = defaultPushTimeout
	}
	return &PropagateSettingsUseCase{
		settingsRepo: settingsRepo,
		pages:        pages,
		messenger:    messenger,
		broadcaster:  broadcaster,
		opts:         opts,
	}
}

// Propagate reads the settings and brings every open page and UI in line
// with them. Only a storage read failure is returned; delivery failures are
// recorded in the report.
func (uc *PropagateSettingsUseCase) Propagate(ctx context.Context) (*PropagationReport, error) {
	log := logging.FromContext(ctx)
	log.Debug().Msg("propagating settings")

	settings, err := uc.settingsRepo.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read settings: %w", err)
	}

	report := &PropagationReport{}

	pages, err := uc.pages.ListPages(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("failed to list pages, broadcasting only")
		report.ListErr = err
	} else {
		report.Pages = uc.pushAll(ctx, settings, pages)
	}

	if uc.broadcaster != nil {
		report.Broadcast = uc.broadcaster.Publish(ctx, settings)
		for _, d := range report.Broadcast {
			if d.Err != nil {
				log.Debug().Str("target", d.Target).Err(d.Err).Msg("settings broadcast not delivered")
			}
		}
	}

	log.Debug().
		Int("pages", len(report.Pages)).
		Int("sent", report.Sent()).
		Int("failed", len(report.Failed())).
		Int("listeners", len(report.Broadcast)).
		Msg("settings propagated")

	return report, nil
}

func (uc *PropagateSettingsUseCase) pushAll(ctx context.Context, settings *entity.Settings, pages []port.PageInfo) []PageOutcome {
	outcomes := make([]PageOutcome, len(pages))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(uc.opts.Concurrency)

	for i, p := range pages {
		outcomes[i] = PageOutcome{PageID: p.ID, URL: p.URL}
		if p.URL == "" || url.IsInternalPage(p.URL, uc.opts.InternalSchemes) {
			outcomes[i].Skipped = true
			continue
		}

		site := url.NormalizeSite(p.URL)
		cmd := port.CommandFor(resolve.EffectiveFor(settings, site))
		outcomes[i].Site = site
		outcomes[i].Command = &cmd

		g.Go(func() error {
			// Never return the error: one page must not cancel the others.
			outcomes[i].Err = uc.send(gctx, p.ID, cmd)
			return nil
		})
	}
	_ = g.Wait()

	return outcomes
}

func (uc *PropagateSettingsUseCase) send(ctx context.Context, id port.PageID, cmd port.StyleCommand) error {
	ctx = logging.WithPageID(ctx, string(id))
	log := logging.FromContext(ctx)

	pushCtx, cancel := context.WithTimeout(ctx, uc.opts.PushTimeout)
	defer cancel()

	if err := uc.messenger.SendToPage(pushCtx, id, cmd); err != nil {
		log.Debug().Str("action", string(cmd.Action)).Err(err).Msg("page did not accept style command")
		return err
	}
	return nil
}

// PushToPage sends the effective style to a single page that just finished
// loading. Nothing is sent when the page is internal or its site is disabled.
func (uc *PropagateSettingsUseCase) PushToPage(ctx context.Context, id port.PageID) (*PageOutcome, error) {
	log := logging.FromContext(ctx)
	log.Debug().Str("page_id", string(id)).Msg("pushing style to loaded page")

	info, err := uc.pages.Page(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get page: %w", err)
	}

	outcome := &PageOutcome{PageID: id, URL: info.URL}
	if info.URL == "" || url.IsInternalPage(info.URL, uc.opts.InternalSchemes) {
		outcome.Skipped = true
		return outcome, nil
	}

	settings, err := uc.settingsRepo.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read settings: %w", err)
	}

	outcome.Site = url.NormalizeSite(info.URL)
	eff := resolve.EffectiveFor(settings, outcome.Site)
	if !eff.Enabled {
		outcome.Skipped = true
		return outcome, nil
	}

	cmd := port.StyleCommand{
		Action:     port.ActionSetFont,
		Enabled:    true,
		Force:      eff.Force,
		FontSize:   eff.FontSize,
		Spacing:    eff.Spacing,
		LineHeight: eff.LineHeight,
	}
	outcome.Command = &cmd
	outcome.Err = uc.send(ctx, id, cmd)

	return outcome, nil
}
