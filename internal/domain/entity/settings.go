package entity

import (
	"errors"
	"maps"
	"slices"
)

// ErrInvalidSettings is returned when an edit carries out-of-range values.
var ErrInvalidSettings = errors.New("invalid settings")

// SettingsKey names a top-level key of the persisted settings record.
type SettingsKey string

// Persisted top-level keys. Their names are part of the storage format.
const (
	KeyGlobalEnabled        SettingsKey = "globalEnabled"
	KeySiteSettings         SettingsKey = "siteSettings"
	KeyDefaultFontSize      SettingsKey = "defaultFontSize"
	KeyDefaultLetterSpacing SettingsKey = "defaultLetterSpacing"
	KeyDefaultLineHeight    SettingsKey = "defaultLineHeight"
	KeyExcludeSites         SettingsKey = "excludeSites"
)

// AllSettingsKeys lists every top-level key in storage order.
func AllSettingsKeys() []SettingsKey {
	return []SettingsKey{
		KeyGlobalEnabled,
		KeySiteSettings,
		KeyDefaultFontSize,
		KeyDefaultLetterSpacing,
		KeyDefaultLineHeight,
		KeyExcludeSites,
	}
}

// Default values for a fresh install.
const (
	DefaultGlobalEnabled = false
	DefaultFontSize      = 1.0
	DefaultLetterSpacing = 0.0
	DefaultLineHeight    = 1.6
)

// Ranges accepted at the edit boundary.
const (
	FontSizeMin   = 0.5
	FontSizeMax   = 2.0
	SpacingMin    = 0.0
	SpacingMax    = 5.0
	LineHeightMin = 1.0
	LineHeightMax = 2.0
)

// SiteOverride holds per-site settings. A nil field inherits the global value.
type SiteOverride struct {
	Enabled    *bool    `json:"enabled,omitempty" toml:"enabled,omitempty"`
	Force      *bool    `json:"force,omitempty" toml:"force,omitempty"`
	FontSize   *float64 `json:"fontSize,omitempty" toml:"fontSize,omitempty"`
	Spacing    *float64 `json:"spacing,omitempty" toml:"spacing,omitempty"`
	LineHeight *float64 `json:"lineHeight,omitempty" toml:"lineHeight,omitempty"`
}

// Clone returns a deep copy of the override.
func (o SiteOverride) Clone() SiteOverride {
	return SiteOverride{
		Enabled:    clonePtr(o.Enabled),
		Force:      clonePtr(o.Force),
		FontSize:   clonePtr(o.FontSize),
		Spacing:    clonePtr(o.Spacing),
		LineHeight: clonePtr(o.LineHeight),
	}
}

// IsEmpty reports whether the override sets nothing.
func (o SiteOverride) IsEmpty() bool {
	return o.Enabled == nil && o.Force == nil && o.FontSize == nil && o.Spacing == nil && o.LineHeight == nil
}

// Settings is the process-wide settings record.
type Settings struct {
	GlobalEnabled        bool                    `json:"globalEnabled" toml:"globalEnabled"`
	SiteSettings         map[string]SiteOverride `json:"siteSettings" toml:"siteSettings"`
	DefaultFontSize      float64                 `json:"defaultFontSize" toml:"defaultFontSize"`
	DefaultLetterSpacing float64                 `json:"defaultLetterSpacing" toml:"defaultLetterSpacing"`
	DefaultLineHeight    float64                 `json:"defaultLineHeight" toml:"defaultLineHeight"`
	ExcludeSites         []string                `json:"excludeSites" toml:"excludeSites"`
}

// DefaultSettings returns the factory record.
func DefaultSettings() *Settings {
	return &Settings{
		GlobalEnabled:        DefaultGlobalEnabled,
		SiteSettings:         map[string]SiteOverride{},
		DefaultFontSize:      DefaultFontSize,
		DefaultLetterSpacing: DefaultLetterSpacing,
		DefaultLineHeight:    DefaultLineHeight,
		ExcludeSites:         []string{},
	}
}

// Clone returns a deep copy of the settings.
func (s *Settings) Clone() *Settings {
	if s == nil {
		return nil
	}
	out := *s
	out.SiteSettings = make(map[string]SiteOverride, len(s.SiteSettings))
	for site, o := range s.SiteSettings {
		out.SiteSettings[site] = o.Clone()
	}
	out.ExcludeSites = slices.Clone(s.ExcludeSites)
	if out.ExcludeSites == nil {
		out.ExcludeSites = []string{}
	}
	return &out
}

// IsExcluded reports whether site is in the exclusion list.
func (s *Settings) IsExcluded(site string) bool {
	return slices.Contains(s.ExcludeSites, site)
}

// Override returns the stored override for site, if any.
func (s *Settings) Override(site string) (SiteOverride, bool) {
	o, ok := s.SiteSettings[site]
	return o, ok
}

// Sites returns the sites with a stored override, sorted.
func (s *Settings) Sites() []string {
	return slices.Sorted(maps.Keys(s.SiteSettings))
}

// SettingsPatch is a top-level partial record. A nil field leaves the stored
// key untouched; a non-nil map or slice, even empty, replaces it.
type SettingsPatch struct {
	GlobalEnabled        *bool
	SiteSettings         map[string]SiteOverride
	DefaultFontSize      *float64
	DefaultLetterSpacing *float64
	DefaultLineHeight    *float64
	ExcludeSites         []string
}

// FullPatch returns a patch that replaces every key with the values of s.
func FullPatch(s *Settings) SettingsPatch {
	c := s.Clone()
	return SettingsPatch{
		GlobalEnabled:        &c.GlobalEnabled,
		SiteSettings:         c.SiteSettings,
		DefaultFontSize:      &c.DefaultFontSize,
		DefaultLetterSpacing: &c.DefaultLetterSpacing,
		DefaultLineHeight:    &c.DefaultLineHeight,
		ExcludeSites:         c.ExcludeSites,
	}
}

// Keys lists the keys present in the patch.
func (p SettingsPatch) Keys() []SettingsKey {
	var keys []SettingsKey
	if p.GlobalEnabled != nil {
		keys = append(keys, KeyGlobalEnabled)
	}
	if p.SiteSettings != nil {
		keys = append(keys, KeySiteSettings)
	}
	if p.DefaultFontSize != nil {
		keys = append(keys, KeyDefaultFontSize)
	}
	if p.DefaultLetterSpacing != nil {
		keys = append(keys, KeyDefaultLetterSpacing)
	}
	if p.DefaultLineHeight != nil {
		keys = append(keys, KeyDefaultLineHeight)
	}
	if p.ExcludeSites != nil {
		keys = append(keys, KeyExcludeSites)
	}
	return keys
}

// IsEmpty reports whether the patch carries no keys.
func (p SettingsPatch) IsEmpty() bool {
	return len(p.Keys()) == 0
}

// Value returns the patch value for key, or nil when absent.
func (p SettingsPatch) Value(key SettingsKey) any {
	switch key {
	case KeyGlobalEnabled:
		if p.GlobalEnabled != nil {
			return *p.GlobalEnabled
		}
	case KeySiteSettings:
		if p.SiteSettings != nil {
			return p.SiteSettings
		}
	case KeyDefaultFontSize:
		if p.DefaultFontSize != nil {
			return *p.DefaultFontSize
		}
	case KeyDefaultLetterSpacing:
		if p.DefaultLetterSpacing != nil {
			return *p.DefaultLetterSpacing
		}
	case KeyDefaultLineHeight:
		if p.DefaultLineHeight != nil {
			return *p.DefaultLineHeight
		}
	case KeyExcludeSites:
		if p.ExcludeSites != nil {
			return p.ExcludeSites
		}
	}
	return nil
}

// ApplyTo merges the patch into s at the top level.
func (p SettingsPatch) ApplyTo(s *Settings) {
	if p.GlobalEnabled != nil {
		s.GlobalEnabled = *p.GlobalEnabled
	}
	if p.SiteSettings != nil {
		s.SiteSettings = make(map[string]SiteOverride, len(p.SiteSettings))
		for site, o := range p.SiteSettings {
			s.SiteSettings[site] = o.Clone()
		}
	}
	if p.DefaultFontSize != nil {
		s.DefaultFontSize = *p.DefaultFontSize
	}
	if p.DefaultLetterSpacing != nil {
		s.DefaultLetterSpacing = *p.DefaultLetterSpacing
	}
	if p.DefaultLineHeight != nil {
		s.DefaultLineHeight = *p.DefaultLineHeight
	}
	if p.ExcludeSites != nil {
		s.ExcludeSites = slices.Clone(p.ExcludeSites)
	}
}

// Ptr returns a pointer to v.
func Ptr[T any](v T) *T {
	return &v
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
