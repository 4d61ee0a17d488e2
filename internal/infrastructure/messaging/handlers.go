package messaging

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/bnema/legible/internal/application/port"
	"github.com/bnema/legible/internal/application/usecase"
	"github.com/bnema/legible/internal/domain/entity"
	"github.com/bnema/legible/internal/domain/url"
)

// SettingsService is the settings API the handlers drive.
type SettingsService interface {
	GetSiteSettings(ctx context.Context, site string) (entity.SiteView, error)
	GetAllSettings(ctx context.Context) (*entity.Settings, error)
	UpdateSiteSettings(ctx context.Context, site string, upd usecase.SiteUpdate) error
	SetDefaults(ctx context.Context, upd usecase.DefaultsUpdate) error
	SetSiteEnabled(ctx context.Context, site string, enabled bool) error
	ExcludeSite(ctx context.Context, site string) error
	IncludeSite(ctx context.Context, site string) error
	RemoveSite(ctx context.Context, site string) error
	ResetAll(ctx context.Context) error
	ToggleSite(ctx context.Context, site string) (bool, error)
	ImportSettings(ctx context.Context, s *entity.Settings) error
}

var _ SettingsService = (*usecase.ManageSettingsUseCase)(nil)

// RegisterSettingsHandlers wires every UI-facing action into r. pages
// resolves the page a TOGGLE_FONT shortcut was pressed on.
func RegisterSettingsHandlers(r *Router, svc SettingsService, pages port.PageRegistry) error {
	handlers := map[string]MessageHandlerFunc{
		ActionGetSettings: func(ctx context.Context, raw json.RawMessage) (any, error) {
			req, err := decode[SiteRequest](raw)
			if err != nil {
				return nil, err
			}
			return svc.GetSiteSettings(ctx, req.Site)
		},
		ActionGetAllSettings: func(ctx context.Context, _ json.RawMessage) (any, error) {
			return svc.GetAllSettings(ctx)
		},
		ActionUpdateSettings: func(ctx context.Context, raw json.RawMessage) (any, error) {
			req, err := decode[UpdateSettingsRequest](raw)
			if err != nil {
				return nil, err
			}
			return ackOr(svc.UpdateSiteSettings(ctx, req.Site, usecase.SiteUpdate{
				FontSize:   req.FontSize,
				Spacing:    req.Spacing,
				LineHeight: req.LineHeight,
				Force:      req.Force,
			}))
		},
		ActionSetDefaults: func(ctx context.Context, raw json.RawMessage) (any, error) {
			req, err := decode[SetDefaultsRequest](raw)
			if err != nil {
				return nil, err
			}
			return ackOr(svc.SetDefaults(ctx, usecase.DefaultsUpdate{
				GlobalEnabled:        req.GlobalEnabled,
				DefaultFontSize:      req.DefaultFontSize,
				DefaultLetterSpacing: req.DefaultLetterSpacing,
				DefaultLineHeight:    req.DefaultLineHeight,
			}))
		},
		ActionSetSiteEnabled: func(ctx context.Context, raw json.RawMessage) (any, error) {
			req, err := decode[SetSiteEnabledRequest](raw)
			if err != nil {
				return nil, err
			}
			if req.Enabled == nil {
				return nil, fmt.Errorf("%w: enabled is required", ErrMalformedMessage)
			}
			return ackOr(svc.SetSiteEnabled(ctx, req.Site, *req.Enabled))
		},
		ActionExcludeSite:        siteAction(svc.ExcludeSite),
		ActionRemoveExcludedSite: siteAction(svc.IncludeSite),
		ActionRemoveSite:         siteAction(svc.RemoveSite),
		ActionResetAll: func(ctx context.Context, _ json.RawMessage) (any, error) {
			return ackOr(svc.ResetAll(ctx))
		},
		ActionImportSettings: func(ctx context.Context, raw json.RawMessage) (any, error) {
			req, err := decode[ImportSettingsRequest](raw)
			if err != nil {
				return nil, err
			}
			return ackOr(svc.ImportSettings(ctx, req.Settings))
		},
		ActionToggleFont: func(ctx context.Context, raw json.RawMessage) (any, error) {
			req, err := decode[ToggleFontRequest](raw)
			if err != nil {
				return nil, err
			}
			if req.PageID == "" {
				return nil, fmt.Errorf("%w: pageId is required", ErrMalformedMessage)
			}
			info, err := pages.Page(ctx, req.PageID)
			if err != nil {
				return nil, err
			}
			if info.URL == "" || url.IsInternalPage(info.URL, nil) {
				return nil, fmt.Errorf("%w: %q", ErrInternalPage, info.URL)
			}
			site := url.NormalizeSite(info.URL)
			enabled, err := svc.ToggleSite(ctx, site)
			if err != nil {
				return nil, err
			}
			return ToggleResponse{Status: StatusOK, Site: site, Enabled: enabled}, nil
		},
	}

	for action, h := range handlers {
		if err := r.RegisterHandler(action, h); err != nil {
			return fmt.Errorf("failed to register %s: %w", action, err)
		}
	}
	return nil
}

func siteAction(fn func(ctx context.Context, site string) error) MessageHandlerFunc {
	return func(ctx context.Context, raw json.RawMessage) (any, error) {
		req, err := decode[SiteRequest](raw)
		if err != nil {
			return nil, err
		}
		return ackOr(fn(ctx, req.Site))
	}
}

func ackOr(err error) (any, error) {
	if err != nil {
		return nil, err
	}
	return ack(), nil
}
