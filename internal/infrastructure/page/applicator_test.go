package page_test

import (
	"strings"
	"testing"
	"time"

	"github.com/bnema/legible/internal/infrastructure/page"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const samplePage = `<html><head><title>t</title></head><body>
<p id="plain">Hello</p>
<div id="inline" style="font-family: Georgia; color: red">Styled</div>
<span id="sized" style="font-size: 12px">Sized</span>
<pre><span id="inpre" style="font-family: monospace">code</span></pre>
<div hidden><p id="hidden" style="font-family: Georgia">hidden</p></div>
</body></html>`

var params = page.Params{FontSize: 1.2, Spacing: 1, LineHeight: 1.8}

func newTestApplicator(t *testing.T) (*page.Applicator, *page.Document, *page.Feed) {
	t.Helper()
	doc, err := page.ParseDocumentString(samplePage)
	require.NoError(t, err)
	feed := page.NewFeed()
	a := page.NewApplicator(doc, feed, page.Options{
		ObserverDebounce: 20 * time.Millisecond,
		SweepDelay:       time.Hour,
	})
	return a, doc, feed
}

func styleCount(doc *page.Document) int {
	return strings.Count(doc.String(), `id="legible-typography"`)
}

func TestApplicator_ApplyInsertsSingleStyleElement(t *testing.T) {
	a, doc, feed := newTestApplicator(t)

	assert.Equal(t, page.Inactive, a.State())
	a.Apply(params)
	a.Apply(params)
	a.Apply(page.Params{FontSize: 1.5, Spacing: 1, LineHeight: 1.8})

	assert.Equal(t, page.Active, a.State())
	assert.Equal(t, 1, styleCount(doc))
	assert.Equal(t, 1, feed.Subscribers())

	out := doc.String()
	assert.Contains(t, out, "font-size: 1.5em !important;")
	assert.NotContains(t, out, "font-size: 1.2em !important;")
	assert.Regexp(t, `<head>.*<style id="legible-typography">`, strings.ReplaceAll(out, "\n", " "))
}

func TestApplicator_UpdateWhileInactiveIsNoop(t *testing.T) {
	a, doc, _ := newTestApplicator(t)

	a.Update(params)
	assert.Equal(t, page.Inactive, a.State())
	assert.Equal(t, 0, styleCount(doc))
}

func TestApplicator_RemoveDeletesStyleAndRestoresInline(t *testing.T) {
	a, doc, feed := newTestApplicator(t)
	before := doc.String()

	a.Apply(params)
	a.Settle()
	require.NotEqual(t, before, doc.String())

	a.Remove()
	assert.Equal(t, page.Inactive, a.State())
	assert.Equal(t, 0, styleCount(doc))
	assert.Equal(t, 0, feed.Subscribers())
	assert.Equal(t, before, doc.String())

	a.Remove()
	assert.Equal(t, before, doc.String())
}

func TestApplicator_SweepRewritesInlineFontFamilyOnly(t *testing.T) {
	a, doc, _ := newTestApplicator(t)

	a.Apply(params)
	a.Settle()

	out := doc.String()
	assert.Contains(t, out, `<div id="inline" style="font-family: &#39;OpenDyslexic&#39;, system-ui, -apple-system, Arial, sans-serif !important; color: red;">`)
	assert.Contains(t, out, `<span id="sized" style="font-size: 12px">`)
	assert.Contains(t, out, `<p id="plain">Hello</p>`)
	assert.Contains(t, out, `<span id="inpre" style="font-family: monospace">`)
	assert.Contains(t, out, `<p id="hidden" style="font-family: Georgia">`)
}

func TestApplicator_ForceSweepInsertsAndOverwrites(t *testing.T) {
	a, doc, _ := newTestApplicator(t)

	forced := params
	forced.Force = true
	a.Apply(forced)
	a.Settle()

	out := doc.String()
	assert.Contains(t, out, `<p id="plain" style="font-family: &#39;OpenDyslexic&#39;, system-ui, -apple-system, Arial, sans-serif !important;">`)
	assert.Contains(t, out, `<span id="sized" style="font-size: 1.2em !important; font-family:`)
	assert.Contains(t, out, `<span id="inpre" style="font-family: monospace">`)
}

func TestApplicator_StructuralChangesAreDebounced(t *testing.T) {
	a, doc, feed := newTestApplicator(t)
	a.Apply(params)
	a.Settle()

	require.NoError(t, doc.AppendHTML(`<p id="late" style="font-family: Comic Sans">late</p>`))
	for range 5 {
		feed.Notify()
	}
	// The restyle schedules a sweep; flush it once the observer has fired.
	require.Eventually(t, func() bool {
		a.Settle()
		return strings.Contains(doc.String(), `<p id="late" style="font-family: &#39;OpenDyslexic&#39;`)
	}, time.Second, 10*time.Millisecond)
	assert.Equal(t, 1, styleCount(doc))
}

func TestApplicator_NoRestyleAfterRemove(t *testing.T) {
	a, doc, feed := newTestApplicator(t)
	a.Apply(params)
	a.Remove()

	require.NoError(t, doc.AppendHTML(`<p id="late" style="font-family: Comic Sans">late</p>`))
	feed.Notify()
	time.Sleep(50 * time.Millisecond)
	a.Settle()

	assert.Equal(t, 0, styleCount(doc))
	assert.Contains(t, doc.String(), `style="font-family: Comic Sans"`)
}

func TestApplicator_ParamsTracksLastApplied(t *testing.T) {
	a, _, _ := newTestApplicator(t)

	_, active := a.Params()
	assert.False(t, active)

	a.Apply(params)
	p, active := a.Params()
	assert.True(t, active)
	assert.Equal(t, params, p)
}
