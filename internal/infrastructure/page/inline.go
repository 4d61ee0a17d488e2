package page

import (
	"strings"

	"github.com/andybalholm/cascadia"
	"github.com/aymerick/douceur/css"
	"github.com/aymerick/douceur/parser"
	"golang.org/x/net/html"
)

// textSelector picks the text-bearing elements the inline sweep visits.
var textSelector = cascadia.MustCompile(
	"p, div, span, a, li, h1, h2, h3, h4, h5, h6, td, th, label, input, textarea, button",
)

// parseInlineStyle parses a style attribute. The parser drops the value of a
// last declaration without a terminating semicolon, so one is added.
func parseInlineStyle(style string) []*css.Declaration {
	style = strings.TrimSpace(style)
	if style == "" {
		return nil
	}
	if !strings.HasSuffix(style, ";") {
		style += ";"
	}
	decls, err := parser.ParseDeclarations(style)
	if err != nil {
		return nil
	}
	return decls
}

func renderInlineStyle(decls []*css.Declaration) string {
	parts := make([]string, 0, len(decls))
	for _, d := range decls {
		parts = append(parts, strings.TrimSuffix(d.String(), ";"))
	}
	if len(parts) == 0 {
		return ""
	}
	return strings.Join(parts, "; ") + ";"
}

// rewriteInline returns the new style attribute for an element, and whether
// it changed. Inline font-family always takes the bundled stack. With force,
// font-family is inserted when missing and inline sizing is overwritten too.
func rewriteInline(style, stack string, p Params) (string, bool) {
	decls := parseInlineStyle(style)

	forced := map[string]string{"font-family": stack}
	if p.Force {
		forced["font-size"] = formatEm(p.FontSize)
		forced["line-height"] = formatEm(p.LineHeight)
		forced["letter-spacing"] = formatPx(p.Spacing)
	}

	changed := false
	seenFamily := false
	for _, d := range decls {
		prop := strings.ToLower(d.Property)
		want, ok := forced[prop]
		if !ok {
			continue
		}
		if prop == "font-family" {
			seenFamily = true
		}
		if d.Value != want || !d.Important {
			d.Value = want
			d.Important = true
			changed = true
		}
	}
	if p.Force && !seenFamily {
		decls = append(decls, decl("font-family", stack, true))
		changed = true
	}
	if !changed {
		return style, false
	}
	return renderInlineStyle(decls), true
}

// sweepTargets returns the elements under root the inline sweep may rewrite.
func sweepTargets(root *html.Node) []*html.Node {
	var out []*html.Node
	for _, n := range textSelector.MatchAll(root) {
		if InExcludedRegion(n) || IsHidden(n) {
			continue
		}
		out = append(out, n)
	}
	return out
}
