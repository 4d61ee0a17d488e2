package usecase

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/bnema/legible/internal/domain/entity"
	"github.com/bnema/legible/internal/domain/repository"
	"github.com/bnema/legible/internal/domain/resolve"
	"github.com/bnema/legible/internal/domain/url"
	"github.com/bnema/legible/internal/domain/validation"
	"github.com/bnema/legible/internal/logging"
)

// SettingsPropagator pushes the stored settings to pages and UIs.
type SettingsPropagator interface {
	Propagate(ctx context.Context) (*PropagationReport, error)
}

// SiteUpdate carries the per-site fields an UPDATE_SETTINGS message may set.
// Nil fields keep the stored value.
type SiteUpdate struct {
	FontSize   *float64 `json:"fontSize,omitempty"`
	Spacing    *float64 `json:"spacing,omitempty"`
	LineHeight *float64 `json:"lineHeight,omitempty"`
	Force      *bool    `json:"force,omitempty"`
}

// DefaultsUpdate carries the global fields a SET_DEFAULTS message may set.
type DefaultsUpdate struct {
	GlobalEnabled        *bool    `json:"globalEnabled,omitempty"`
	DefaultFontSize      *float64 `json:"defaultFontSize,omitempty"`
	DefaultLetterSpacing *float64 `json:"defaultLetterSpacing,omitempty"`
	DefaultLineHeight    *float64 `json:"defaultLineHeight,omitempty"`
}

// ManageSettingsUseCase implements every settings mutation and query.
// Each mutator validates, does a read-modify-write of the touched top-level
// keys, then propagates. Propagation failures are logged, not returned.
type ManageSettingsUseCase struct {
	settingsRepo repository.SettingsRepository
	propagator   SettingsPropagator
}

// NewManageSettingsUseCase creates a new settings management use case.
func NewManageSettingsUseCase(settingsRepo repository.SettingsRepository, propagator SettingsPropagator) *ManageSettingsUseCase {
	return &ManageSettingsUseCase{
		settingsRepo: settingsRepo,
		propagator:   propagator,
	}
}

// Init persists defaults for any key missing from storage.
func (uc *ManageSettingsUseCase) Init(ctx context.Context) error {
	log := logging.FromContext(ctx)
	log.Debug().Msg("initializing settings")

	if err := uc.settingsRepo.Init(ctx); err != nil {
		return fmt.Errorf("failed to initialize settings: %w", err)
	}
	return nil
}

// GetSiteSettings returns the effective style for site plus its exclusion flag.
func (uc *ManageSettingsUseCase) GetSiteSettings(ctx context.Context, site string) (entity.SiteView, error) {
	log := logging.FromContext(ctx)

	site, err := normalizeSite(site)
	if err != nil {
		return entity.SiteView{}, err
	}
	log.Debug().Str("site", site).Msg("getting site settings")

	settings, err := uc.settingsRepo.Read(ctx)
	if err != nil {
		return entity.SiteView{}, fmt.Errorf("failed to read settings: %w", err)
	}
	return resolve.ViewFor(settings, site), nil
}

// GetAllSettings returns the full settings record.
func (uc *ManageSettingsUseCase) GetAllSettings(ctx context.Context) (*entity.Settings, error) {
	log := logging.FromContext(ctx)
	log.Debug().Msg("getting all settings")

	settings, err := uc.settingsRepo.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read settings: %w", err)
	}
	return settings, nil
}

// UpdateSiteSettings merges the given fields into the site's override.
func (uc *ManageSettingsUseCase) UpdateSiteSettings(ctx context.Context, site string, upd SiteUpdate) error {
	site, err := normalizeSite(site)
	if err != nil {
		return err
	}
	if errs := validation.ValidateTypography("", upd.FontSize, upd.Spacing, upd.LineHeight); len(errs) > 0 {
		return invalid(errs)
	}

	log := logging.FromContext(ctx)
	log.Debug().Str("site", site).Msg("updating site settings")

	return uc.mutateSite(ctx, site, func(o *entity.SiteOverride) {
		if upd.FontSize != nil {
			o.FontSize = entity.Ptr(*upd.FontSize)
		}
		if upd.Spacing != nil {
			o.Spacing = entity.Ptr(*upd.Spacing)
		}
		if upd.LineHeight != nil {
			o.LineHeight = entity.Ptr(*upd.LineHeight)
		}
		if upd.Force != nil {
			o.Force = entity.Ptr(*upd.Force)
		}
	})
}

// SetDefaults writes the given global fields.
func (uc *ManageSettingsUseCase) SetDefaults(ctx context.Context, upd DefaultsUpdate) error {
	if errs := validation.ValidateTypography("default.", upd.DefaultFontSize, upd.DefaultLetterSpacing, upd.DefaultLineHeight); len(errs) > 0 {
		return invalid(errs)
	}

	patch := entity.SettingsPatch{
		GlobalEnabled:        upd.GlobalEnabled,
		DefaultFontSize:      upd.DefaultFontSize,
		DefaultLetterSpacing: upd.DefaultLetterSpacing,
		DefaultLineHeight:    upd.DefaultLineHeight,
	}
	if patch.IsEmpty() {
		return nil
	}

	log := logging.FromContext(ctx)
	log.Debug().Int("keys", len(patch.Keys())).Msg("setting defaults")

	return uc.write(ctx, patch)
}

// SetSiteEnabled sets the site's enabled override.
func (uc *ManageSettingsUseCase) SetSiteEnabled(ctx context.Context, site string, enabled bool) error {
	site, err := normalizeSite(site)
	if err != nil {
		return err
	}

	log := logging.FromContext(ctx)
	log.Debug().Str("site", site).Bool("enabled", enabled).Msg("setting site enabled")

	return uc.mutateSite(ctx, site, func(o *entity.SiteOverride) {
		o.Enabled = entity.Ptr(enabled)
	})
}

// ExcludeSite adds site to the exclusion list and disables its override in
// the same write.
func (uc *ManageSettingsUseCase) ExcludeSite(ctx context.Context, site string) error {
	site, err := normalizeSite(site)
	if err != nil {
		return err
	}

	log := logging.FromContext(ctx)
	log.Debug().Str("site", site).Msg("excluding site")

	settings, err := uc.settingsRepo.Read(ctx)
	if err != nil {
		return fmt.Errorf("failed to read settings: %w", err)
	}

	excluded := slices.Clone(settings.ExcludeSites)
	if !slices.Contains(excluded, site) {
		excluded = append(excluded, site)
	}

	sites := cloneSites(settings.SiteSettings)
	o := sites[site]
	o.Enabled = entity.Ptr(false)
	sites[site] = o

	return uc.write(ctx, entity.SettingsPatch{SiteSettings: sites, ExcludeSites: excluded})
}

// IncludeSite removes site from the exclusion list. Its override is kept.
func (uc *ManageSettingsUseCase) IncludeSite(ctx context.Context, site string) error {
	site, err := normalizeSite(site)
	if err != nil {
		return err
	}

	log := logging.FromContext(ctx)
	log.Debug().Str("site", site).Msg("removing site from exclusions")

	settings, err := uc.settingsRepo.Read(ctx)
	if err != nil {
		return fmt.Errorf("failed to read settings: %w", err)
	}

	excluded := slices.DeleteFunc(slices.Clone(settings.ExcludeSites), func(s string) bool { return s == site })
	if excluded == nil {
		excluded = []string{}
	}
	return uc.write(ctx, entity.SettingsPatch{ExcludeSites: excluded})
}

// RemoveSite deletes the site's override so it inherits the defaults again.
func (uc *ManageSettingsUseCase) RemoveSite(ctx context.Context, site string) error {
	site, err := normalizeSite(site)
	if err != nil {
		return err
	}

	log := logging.FromContext(ctx)
	log.Debug().Str("site", site).Msg("removing site override")

	settings, err := uc.settingsRepo.Read(ctx)
	if err != nil {
		return fmt.Errorf("failed to read settings: %w", err)
	}

	sites := cloneSites(settings.SiteSettings)
	delete(sites, site)
	return uc.write(ctx, entity.SettingsPatch{SiteSettings: sites})
}

// ResetAll overwrites every key with the factory defaults.
func (uc *ManageSettingsUseCase) ResetAll(ctx context.Context) error {
	log := logging.FromContext(ctx)
	log.Info().Msg("resetting all settings")

	if err := uc.settingsRepo.Reset(ctx); err != nil {
		return fmt.Errorf("failed to reset settings: %w", err)
	}
	uc.propagate(ctx)
	return nil
}

// ToggleSite flips the site's enabled value and returns the new value.
// A site with no override gets a full record built from the defaults.
func (uc *ManageSettingsUseCase) ToggleSite(ctx context.Context, site string) (bool, error) {
	site, err := normalizeSite(site)
	if err != nil {
		return false, err
	}

	log := logging.FromContext(ctx)

	settings, err := uc.settingsRepo.Read(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to read settings: %w", err)
	}

	enabled := !resolve.ToggleBaseline(settings, site)
	sites := cloneSites(settings.SiteSettings)
	o, ok := sites[site]
	if !ok {
		o = entity.SiteOverride{
			Force:      entity.Ptr(false),
			FontSize:   entity.Ptr(settings.DefaultFontSize),
			Spacing:    entity.Ptr(settings.DefaultLetterSpacing),
			LineHeight: entity.Ptr(settings.DefaultLineHeight),
		}
	}
	o.Enabled = entity.Ptr(enabled)
	sites[site] = o

	log.Debug().Str("site", site).Bool("enabled", enabled).Bool("created", !ok).Msg("toggling site")

	if err := uc.write(ctx, entity.SettingsPatch{SiteSettings: sites}); err != nil {
		return false, err
	}
	return enabled, nil
}

// ImportSettings replaces the whole record with s.
func (uc *ManageSettingsUseCase) ImportSettings(ctx context.Context, s *entity.Settings) error {
	if s == nil {
		return fmt.Errorf("%w: nothing to import", entity.ErrInvalidSettings)
	}

	imported := entity.DefaultSettings()
	entity.FullPatch(s).ApplyTo(imported)

	// Normalize identifiers so imported records match what pages resolve to.
	sites := make(map[string]entity.SiteOverride, len(imported.SiteSettings))
	for site, o := range imported.SiteSettings {
		sites[url.NormalizeSite(site)] = o
	}
	imported.SiteSettings = sites
	excluded := make([]string, 0, len(imported.ExcludeSites))
	for _, site := range imported.ExcludeSites {
		if n := url.NormalizeSite(site); !slices.Contains(excluded, n) {
			excluded = append(excluded, n)
		}
	}
	imported.ExcludeSites = excluded

	if errs := validation.ValidateSettings(imported); len(errs) > 0 {
		return invalid(errs)
	}

	log := logging.FromContext(ctx)
	log.Info().Int("sites", len(imported.SiteSettings)).Int("excluded", len(imported.ExcludeSites)).Msg("importing settings")

	return uc.write(ctx, entity.FullPatch(imported))
}

func (uc *ManageSettingsUseCase) mutateSite(ctx context.Context, site string, fn func(*entity.SiteOverride)) error {
	settings, err := uc.settingsRepo.Read(ctx)
	if err != nil {
		return fmt.Errorf("failed to read settings: %w", err)
	}

	sites := cloneSites(settings.SiteSettings)
	o := sites[site]
	fn(&o)
	sites[site] = o

	return uc.write(ctx, entity.SettingsPatch{SiteSettings: sites})
}

func (uc *ManageSettingsUseCase) write(ctx context.Context, patch entity.SettingsPatch) error {
	if err := uc.settingsRepo.Write(ctx, patch); err != nil {
		return fmt.Errorf("failed to write settings: %w", err)
	}
	uc.propagate(ctx)
	return nil
}

func (uc *ManageSettingsUseCase) propagate(ctx context.Context) {
	if uc.propagator == nil {
		return
	}
	if _, err := uc.propagator.Propagate(ctx); err != nil {
		logging.FromContext(ctx).Warn().Err(err).Msg("failed to propagate settings")
	}
}

func normalizeSite(site string) (string, error) {
	n := url.NormalizeSite(site)
	if n == "" {
		return "", fmt.Errorf("%w: site is required", entity.ErrInvalidSettings)
	}
	return n, nil
}

func cloneSites(sites map[string]entity.SiteOverride) map[string]entity.SiteOverride {
	out := make(map[string]entity.SiteOverride, len(sites))
	for site, o := range sites {
		out[site] = o.Clone()
	}
	return out
}

func invalid(errs []string) error {
	return fmt.Errorf("%w: %s", entity.ErrInvalidSettings, strings.Join(errs, "; "))
}

