package page_test

import (
	"strings"
	"testing"

	"github.com/bnema/legible/internal/infrastructure/page"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

func firstByID(t *testing.T, doc string, id string) *html.Node {
	t.Helper()
	root, err := html.Parse(strings.NewReader(doc))
	require.NoError(t, err)

	var found *html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if found != nil {
			return
		}
		if n.Type == html.ElementNode {
			for _, a := range n.Attr {
				if a.Key == "id" && a.Val == id {
					found = n
					return
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	require.NotNil(t, found, id)
	return found
}

func TestIsExcluded(t *testing.T) {
	tests := []struct {
		name string
		html string
		want bool
	}{
		{"plain paragraph", `<p id="x">hi</p>`, false},
		{"code", `<code id="x">x</code>`, true},
		{"pre", `<pre id="x">x</pre>`, true},
		{"canvas", `<canvas id="x"></canvas>`, true},
		{"mathjax class", `<span id="x" class="MathJax">x</span>`, true},
		{"katex class", `<span id="x" class="a katex">x</span>`, true},
		{"material icons", `<i id="x" class="material-icons">home</i>`, true},
		{"font awesome prefix", `<i id="x" class="fa-solid fa-user"></i>`, true},
		{"fas", `<i id="x" class="fas"></i>`, true},
		{"class merely containing fa", `<span id="x" class="sofa">x</span>`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := firstByID(t, "<html><body>"+tt.html+"</body></html>", "x")
			assert.Equal(t, tt.want, page.IsExcluded(n))
		})
	}
}

func TestInExcludedRegion_ChecksAncestors(t *testing.T) {
	n := firstByID(t, `<body><pre><span id="x">code</span></pre></body>`, "x")
	assert.False(t, page.IsExcluded(n))
	assert.True(t, page.InExcludedRegion(n))
}

func TestIsHidden(t *testing.T) {
	assert.True(t, page.IsHidden(firstByID(t, `<body><div hidden><p id="x">a</p></div></body>`, "x")))
	assert.True(t, page.IsHidden(firstByID(t, `<body><p id="x" style="display: none">a</p></body>`, "x")))
	assert.True(t, page.IsHidden(firstByID(t, `<body><p id="x" style="visibility:hidden">a</p></body>`, "x")))
	assert.False(t, page.IsHidden(firstByID(t, `<body><p id="x" style="color: red">a</p></body>`, "x")))
}
