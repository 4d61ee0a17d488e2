package page_test

import (
	"strings"
	"testing"

	"github.com/bnema/legible/internal/infrastructure/page"
	"github.com/stretchr/testify/assert"
)

func TestBuildCSS_ContainsFontFacesAndTypographyRule(t *testing.T) {
	cssText := page.BuildCSS("OpenDyslexic", "https://cdn.example/fonts", page.Params{
		FontSize: 1.2, Spacing: 0.5, LineHeight: 1.8,
	})

	assert.Equal(t, 3, strings.Count(cssText, "@font-face"))
	assert.Contains(t, cssText, "url('https://cdn.example/fonts/OpenDyslexic-Regular.woff2') format('woff2')")
	assert.Contains(t, cssText, "url('https://cdn.example/fonts/OpenDyslexic-Bold.woff2')")
	assert.Contains(t, cssText, "font-weight: 700;")
	assert.Contains(t, cssText, "font-style: italic;")
	assert.Contains(t, cssText, "font-display: swap;")

	assert.Contains(t, cssText, "body *:not(svg):not(canvas):not(code):not(pre)")
	assert.Contains(t, cssText, `:not([class*="fa-"])`)
	assert.Contains(t, cssText, "font-family: 'OpenDyslexic', system-ui, -apple-system, Arial, sans-serif !important;")
	assert.Contains(t, cssText, "font-size: 1.2em !important;")
	assert.Contains(t, cssText, "line-height: 1.8em !important;")
	assert.Contains(t, cssText, "letter-spacing: 0.5px !important;")
}

func TestBuildCSS_Defaults(t *testing.T) {
	cssText := page.BuildCSS("", "", page.Params{FontSize: 1, LineHeight: 1.6})

	assert.Contains(t, cssText, "url('OpenDyslexic-Regular.woff2')")
	assert.Contains(t, cssText, "font-size: 1em !important;")
	assert.Contains(t, cssText, "letter-spacing: 0px !important;")
}

func TestFontStack(t *testing.T) {
	assert.Equal(t, "'Atkinson', system-ui, -apple-system, Arial, sans-serif", page.FontStack("Atkinson"))
	assert.True(t, strings.HasPrefix(page.FontStack(""), "'OpenDyslexic'"))
}
