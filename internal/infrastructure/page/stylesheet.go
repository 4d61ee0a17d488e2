// Package page models a single page context: its document, the typography
// style applied to it, and the change feed that triggers restyling.
package page

import (
	"strconv"
	"strings"

	"github.com/aymerick/douceur/css"
)

// Default font settings.
const (
	DefaultFontFamily  = "OpenDyslexic"
	DefaultFontBaseURL = "fonts/"
	DefaultStyleID     = "legible-typography"
)

// fallbackFonts follow the bundled family in every font-family declaration.
var fallbackFonts = []string{"system-ui", "-apple-system", "Arial", "sans-serif"}

// typographySelector mirrors the element exclusion policy in CSS.
const typographySelector = `html, body, body *:not(svg):not(canvas):not(code):not(pre)` +
	`:not(.MathJax):not(.katex):not(.material-icons)` +
	`:not([class*="fa-"]):not(.fa):not(.fas):not(.far):not(.fab)`

// Params are the typography values a style is built from.
type Params struct {
	FontSize   float64 `json:"fontSize"`
	Spacing    float64 `json:"spacing"`
	LineHeight float64 `json:"lineHeight"`
	Force      bool    `json:"force"`
}

// FontFace describes one @font-face source of the bundled family.
type FontFace struct {
	File   string
	Weight string
	Style  string
}

var fontFaces = []FontFace{
	{File: "Regular.woff2", Weight: "400", Style: "normal"},
	{File: "Bold.woff2", Weight: "700", Style: "normal"},
	{File: "Italic.woff2", Weight: "400", Style: "italic"},
}

// FontStack returns the quoted family followed by the fallbacks.
func FontStack(family string) string {
	if family == "" {
		family = DefaultFontFamily
	}
	return "'" + family + "', " + strings.Join(fallbackFonts, ", ")
}

// BuildStylesheet returns the @font-face rules and the typography rule.
func BuildStylesheet(family, baseURL string, p Params) *css.Stylesheet {
	if family == "" {
		family = DefaultFontFamily
	}
	if baseURL != "" && !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}

	sheet := css.NewStylesheet()
	for _, face := range fontFaces {
		rule := css.NewRule(css.AtRule)
		rule.Name = "@font-face"
		rule.Declarations = []*css.Declaration{
			decl("font-family", "'"+family+"'", false),
			decl("src", "url('"+baseURL+family+"-"+face.File+"') format('woff2')", false),
			decl("font-weight", face.Weight, false),
			decl("font-style", face.Style, false),
			decl("font-display", "swap", false),
		}
		sheet.Rules = append(sheet.Rules, rule)
	}

	rule := css.NewRule(css.QualifiedRule)
	rule.Prelude = typographySelector
	rule.Selectors = []string{typographySelector}
	rule.Declarations = []*css.Declaration{
		decl("font-family", FontStack(family), true),
		decl("font-size", formatEm(p.FontSize), true),
		decl("line-height", formatEm(p.LineHeight), true),
		decl("letter-spacing", formatPx(p.Spacing), true),
	}
	sheet.Rules = append(sheet.Rules, rule)

	return sheet
}

// BuildCSS renders BuildStylesheet as text.
func BuildCSS(family, baseURL string, p Params) string {
	return BuildStylesheet(family, baseURL, p).String()
}

func decl(property, value string, important bool) *css.Declaration {
	d := css.NewDeclaration()
	d.Property = property
	d.Value = value
	d.Important = important
	return d
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatEm(v float64) string {
	return formatNumber(v) + "em"
}

func formatPx(v float64) string {
	return formatNumber(v) + "px"
}
