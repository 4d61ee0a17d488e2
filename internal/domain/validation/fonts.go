// Package validation holds boundary checks shared by config and use cases.
package validation

import "strings"

// ValidateFontFamily checks a font family name that ends up inside generated CSS.
func ValidateFontFamily(field string, value string) []string {
	value = strings.TrimSpace(value)
	var errs []string

	if value == "" {
		errs = append(errs, field+" cannot be empty")
		return errs
	}

	if strings.ContainsAny(value, "\r\n") {
		errs = append(errs, field+" must not contain newlines")
	}

	if strings.ContainsAny(value, ";{}<>\\") {
		errs = append(errs, field+" must not contain CSS delimiters")
	}

	if len(value) > 200 {
		errs = append(errs, field+" is too long")
	}

	return errs
}
