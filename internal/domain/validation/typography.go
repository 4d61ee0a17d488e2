package validation

import (
	"fmt"
	"math"

	"github.com/bnema/legible/internal/domain/entity"
)

// ValidateRange reports a message when value is outside [lo, hi] or not a number.
func ValidateRange(field string, value, lo, hi float64) []string {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return []string{field + " must be a finite number"}
	}
	if value < lo || value > hi {
		return []string{fmt.Sprintf("%s must be between %g and %g (got %g)", field, lo, hi, value)}
	}
	return nil
}

// ValidateTypography checks optional font size, spacing and line height values.
func ValidateTypography(prefix string, fontSize, spacing, lineHeight *float64) []string {
	var errs []string
	if fontSize != nil {
		errs = append(errs, ValidateRange(prefix+"fontSize", *fontSize, entity.FontSizeMin, entity.FontSizeMax)...)
	}
	if spacing != nil {
		errs = append(errs, ValidateRange(prefix+"spacing", *spacing, entity.SpacingMin, entity.SpacingMax)...)
	}
	if lineHeight != nil {
		errs = append(errs, ValidateRange(prefix+"lineHeight", *lineHeight, entity.LineHeightMin, entity.LineHeightMax)...)
	}
	return errs
}

// ValidateSiteOverride checks the numeric fields of an override.
func ValidateSiteOverride(site string, o entity.SiteOverride) []string {
	return ValidateTypography(site+".", o.FontSize, o.Spacing, o.LineHeight)
}

// ValidateSettings checks a whole record, e.g. before an import.
func ValidateSettings(s *entity.Settings) []string {
	var errs []string
	errs = append(errs, ValidateTypography("default.", &s.DefaultFontSize, &s.DefaultLetterSpacing, &s.DefaultLineHeight)...)
	for _, site := range s.Sites() {
		if site == "" {
			errs = append(errs, "siteSettings contains an empty site identifier")
			continue
		}
		errs = append(errs, ValidateSiteOverride(site, s.SiteSettings[site])...)
	}
	for _, site := range s.ExcludeSites {
		if site == "" {
			errs = append(errs, "excludeSites contains an empty site identifier")
		}
	}
	return errs
}
