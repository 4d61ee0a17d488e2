package resolve_test

import (
	"fmt"
	"testing"

	"github.com/bnema/legible/internal/domain/entity"
	"github.com/bnema/legible/internal/domain/resolve"
	"github.com/stretchr/testify/assert"
)

func TestEffectiveFor_DefaultsScenario(t *testing.T) {
	got := resolve.EffectiveFor(entity.DefaultSettings(), "example.com")

	assert.Equal(t, entity.EffectiveStyle{
		Enabled:    false,
		Force:      false,
		FontSize:   1.0,
		Spacing:    0,
		LineHeight: 1.6,
	}, got)
}

func TestEffectiveFor_OverrideScenario(t *testing.T) {
	s := entity.DefaultSettings()
	s.SiteSettings["example.com"] = entity.SiteOverride{
		Enabled:  entity.Ptr(true),
		FontSize: entity.Ptr(1.3),
	}

	got := resolve.EffectiveFor(s, "example.com")

	assert.True(t, got.Enabled)
	assert.Equal(t, 1.3, got.FontSize)
	assert.Equal(t, s.DefaultLetterSpacing, got.Spacing)
	assert.Equal(t, s.DefaultLineHeight, got.LineHeight)
	assert.False(t, got.Force)
}

func TestEffectiveFor_ExclusionWins(t *testing.T) {
	s := entity.DefaultSettings()
	s.GlobalEnabled = true
	s.SiteSettings["example.com"] = entity.SiteOverride{Enabled: entity.Ptr(true), Force: entity.Ptr(true), FontSize: entity.Ptr(1.8)}
	s.ExcludeSites = []string{"example.com"}

	got := resolve.EffectiveFor(s, "example.com")

	assert.False(t, got.Enabled)
	// other fields still resolve normally
	assert.True(t, got.Force)
	assert.Equal(t, 1.8, got.FontSize)
	_, kept := s.SiteSettings["example.com"]
	assert.True(t, kept)
}

func TestEffectiveFor_InheritsWhenNoOverride(t *testing.T) {
	for _, global := range []bool{true, false} {
		s := entity.DefaultSettings()
		s.GlobalEnabled = global
		s.DefaultFontSize = 1.2
		s.DefaultLetterSpacing = 2
		s.DefaultLineHeight = 1.1
		s.SiteSettings["other.com"] = entity.SiteOverride{Enabled: entity.Ptr(!global)}

		got := resolve.EffectiveFor(s, "example.com")
		assert.Equal(t, global, got.Enabled)
		assert.Equal(t, 1.2, got.FontSize)
		assert.Equal(t, 2.0, got.Spacing)
		assert.Equal(t, 1.1, got.LineHeight)
	}
}

func TestEffectiveFor_ExplicitDisableBeatsGlobal(t *testing.T) {
	s := entity.DefaultSettings()
	s.GlobalEnabled = true
	s.SiteSettings["example.com"] = entity.SiteOverride{Enabled: entity.Ptr(false)}

	assert.False(t, resolve.EffectiveFor(s, "example.com").Enabled)
	assert.True(t, resolve.EffectiveFor(s, "elsewhere.com").Enabled)
}

func TestEffectiveFor_IsPure(t *testing.T) {
	s := entity.DefaultSettings()
	s.GlobalEnabled = true
	s.SiteSettings["a.com"] = entity.SiteOverride{Spacing: entity.Ptr(3.0)}
	s.ExcludeSites = []string{"b.com"}
	before := s.Clone()

	for _, site := range []string{"a.com", "b.com", "c.com", ""} {
		first := resolve.EffectiveFor(s, site)
		second := resolve.EffectiveFor(s, site)
		assert.Equal(t, first, second, fmt.Sprintf("site %q", site))
	}
	assert.Equal(t, before, s)
}

func TestViewFor_ReportsExclusion(t *testing.T) {
	s := entity.DefaultSettings()
	s.ExcludeSites = []string{"bank.com"}

	assert.True(t, resolve.ViewFor(s, "bank.com").IsExcluded)
	assert.False(t, resolve.ViewFor(s, "example.com").IsExcluded)
}

func TestToggleBaseline(t *testing.T) {
	s := entity.DefaultSettings()
	s.GlobalEnabled = true
	assert.True(t, resolve.ToggleBaseline(s, "new.com"))

	s.SiteSettings["set.com"] = entity.SiteOverride{Enabled: entity.Ptr(false)}
	assert.False(t, resolve.ToggleBaseline(s, "set.com"))

	s.SiteSettings["partial.com"] = entity.SiteOverride{FontSize: entity.Ptr(1.2)}
	assert.True(t, resolve.ToggleBaseline(s, "partial.com"))
}

func TestToggleBaseline_NilSettingsUsesDefaults(t *testing.T) {
	assert.Equal(t, entity.DefaultGlobalEnabled, resolve.ToggleBaseline(nil, "example.com"))
}
