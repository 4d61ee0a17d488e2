// Package resolve computes the effective typography for a site from the
// settings record. Everything here is pure.
package resolve

import "github.com/bnema/legible/internal/domain/entity"

// EffectiveFor applies override precedence for site:
// exclusion, then the per-site value, then the global default.
func EffectiveFor(s *entity.Settings, site string) entity.EffectiveStyle {
	if s == nil {
		s = entity.DefaultSettings()
	}
	o := s.SiteSettings[site]

	eff := entity.EffectiveStyle{
		Enabled:    valueOr(o.Enabled, s.GlobalEnabled),
		Force:      valueOr(o.Force, false),
		FontSize:   valueOr(o.FontSize, s.DefaultFontSize),
		Spacing:    valueOr(o.Spacing, s.DefaultLetterSpacing),
		LineHeight: valueOr(o.LineHeight, s.DefaultLineHeight),
	}
	if s.IsExcluded(site) {
		eff.Enabled = false
	}
	return eff
}

// ViewFor is EffectiveFor plus the exclusion flag, as shown to a UI.
func ViewFor(s *entity.Settings, site string) entity.SiteView {
	return entity.SiteView{
		EffectiveStyle: EffectiveFor(s, site),
		IsExcluded:     s != nil && s.IsExcluded(site),
	}
}

// ToggleBaseline is the enabled value a toggle flips: the stored per-site
// value when present, otherwise the global flag.
func ToggleBaseline(s *entity.Settings, site string) bool {
	if s == nil {
		s = entity.DefaultSettings()
	}
	return valueOr(s.SiteSettings[site].Enabled, s.GlobalEnabled)
}

func valueOr[T any](p *T, fallback T) T {
	if p == nil {
		return fallback
	}
	return *p
}
