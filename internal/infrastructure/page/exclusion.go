package page

import (
	"slices"
	"strings"

	"golang.org/x/net/html"
)

var excludedTags = []string{"svg", "canvas", "code", "pre", "script", "style", "meta", "link"}

var excludedClasses = []string{"MathJax", "katex", "material-icons", "fa", "fas", "far", "fab"}

// IsExcluded reports whether the element itself must keep its own typography.
func IsExcluded(n *html.Node) bool {
	if n == nil || n.Type != html.ElementNode {
		return false
	}
	if slices.Contains(excludedTags, strings.ToLower(n.Data)) {
		return true
	}
	for _, class := range strings.Fields(attr(n, "class")) {
		if slices.Contains(excludedClasses, class) || strings.HasPrefix(class, "fa-") {
			return true
		}
	}
	return false
}

// InExcludedRegion reports whether n or any ancestor is excluded.
func InExcludedRegion(n *html.Node) bool {
	for p := n; p != nil; p = p.Parent {
		if IsExcluded(p) {
			return true
		}
	}
	return false
}

// IsHidden reports whether n or an ancestor is hidden by attribute or
// inline display/visibility.
func IsHidden(n *html.Node) bool {
	for p := n; p != nil; p = p.Parent {
		if p.Type != html.ElementNode {
			continue
		}
		if hasAttr(p, "hidden") {
			return true
		}
		decls := parseInlineStyle(attr(p, "style"))
		for _, d := range decls {
			v := strings.ToLower(strings.TrimSpace(d.Value))
			switch strings.ToLower(d.Property) {
			case "display":
				if v == "none" {
					return true
				}
			case "visibility":
				if v == "hidden" {
					return true
				}
			}
		}
	}
	return false
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val
		}
	}
	return ""
}

func hasAttr(n *html.Node, key string) bool {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return true
		}
	}
	return false
}

func setAttr(n *html.Node, key, val string) {
	for i, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

func removeAttr(n *html.Node, key string) {
	n.Attr = slices.DeleteFunc(n.Attr, func(a html.Attribute) bool {
		return a.Namespace == "" && a.Key == key
	})
}
