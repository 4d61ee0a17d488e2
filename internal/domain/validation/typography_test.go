package validation

import (
	"math"
	"testing"

	"github.com/bnema/legible/internal/domain/entity"
	"github.com/stretchr/testify/assert"
)

func TestValidateRange(t *testing.T) {
	assert.Empty(t, ValidateRange("x", 0.5, 0.5, 2.0))
	assert.Empty(t, ValidateRange("x", 2.0, 0.5, 2.0))
	assert.Len(t, ValidateRange("x", 2.01, 0.5, 2.0), 1)
	assert.Len(t, ValidateRange("x", math.NaN(), 0.5, 2.0), 1)
	assert.Len(t, ValidateRange("x", math.Inf(1), 0.5, 2.0), 1)
}

func TestValidateTypography(t *testing.T) {
	errs := ValidateTypography("", entity.Ptr(0.4), entity.Ptr(5.0), entity.Ptr(2.5))
	assert.Len(t, errs, 2)
	assert.Contains(t, errs[0], "fontSize")
	assert.Contains(t, errs[1], "lineHeight")

	assert.Empty(t, ValidateTypography("", nil, nil, nil))
}

func TestValidateSettings(t *testing.T) {
	s := entity.DefaultSettings()
	assert.Empty(t, ValidateSettings(s))

	s.SiteSettings["example.com"] = entity.SiteOverride{Spacing: entity.Ptr(-1.0)}
	s.ExcludeSites = []string{""}
	errs := ValidateSettings(s)
	assert.Len(t, errs, 2)
	assert.Contains(t, errs[0], "example.com.spacing")
}

func TestValidateFontFamily(t *testing.T) {
	assert.Empty(t, ValidateFontFamily("style.font_family", "OpenDyslexic"))
	assert.NotEmpty(t, ValidateFontFamily("style.font_family", "  "))
	assert.NotEmpty(t, ValidateFontFamily("style.font_family", "Evil; } body { color: red"))
}
