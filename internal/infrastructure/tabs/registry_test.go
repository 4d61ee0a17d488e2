package tabs_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/bnema/legible/internal/application/port"
	"github.com/bnema/legible/internal/infrastructure/page"
	"github.com/bnema/legible/internal/infrastructure/tabs"
	"github.com/bnema/legible/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCtx() context.Context {
	logger := logging.NewFromConfigValues("debug", "console")
	return logging.WithContext(context.Background(), logger)
}

const markup = `<html><head></head><body><p>hello</p></body></html>`

var enable = port.StyleCommand{Action: port.ActionSetFont, Enabled: true, FontSize: 1.2, LineHeight: 1.6}

func newRegistry() *tabs.Registry {
	return tabs.NewRegistry(page.Options{SweepDelay: time.Hour})
}

func TestRegistry_OpenAndList(t *testing.T) {
	ctx := testCtx()
	r := newRegistry()

	a := r.Open(ctx, "https://a.com", markup)
	b := r.Open(ctx, "https://b.com", markup)

	pages, err := r.ListPages(ctx)
	require.NoError(t, err)
	assert.Equal(t, []port.PageInfo{a, b}, pages)
	assert.Equal(t, 2, r.Len())

	info, err := r.Page(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "https://b.com", info.URL)
}

func TestRegistry_SendWithoutReceiverFails(t *testing.T) {
	ctx := testCtx()
	r := newRegistry()
	p := r.Open(ctx, "https://a.com", markup)

	err := r.SendToPage(ctx, p.ID, enable)
	assert.ErrorIs(t, err, tabs.ErrNoReceiver)

	err = r.SendToPage(ctx, "missing", enable)
	assert.ErrorIs(t, err, tabs.ErrPageNotFound)
}

func TestRegistry_AttachThenSendStylesDocument(t *testing.T) {
	ctx := testCtx()
	r := newRegistry()
	p := r.Open(ctx, "https://a.com", markup)

	rc, attached, err := r.Attach(ctx, p.ID)
	require.NoError(t, err)
	assert.True(t, attached)
	assert.Equal(t, "a.com", rc.Site())

	_, attached, err = r.Attach(ctx, p.ID)
	require.NoError(t, err)
	assert.False(t, attached)

	require.NoError(t, r.SendToPage(ctx, p.ID, enable))

	var buf bytes.Buffer
	require.NoError(t, r.Render(p.ID, &buf))
	assert.Contains(t, buf.String(), `<style id="legible-typography">`)
}

func TestRegistry_NavigateDropsReceiver(t *testing.T) {
	ctx := testCtx()
	r := newRegistry()
	p := r.Open(ctx, "https://a.com", markup)
	_, _, err := r.Attach(ctx, p.ID)
	require.NoError(t, err)
	require.NoError(t, r.SendToPage(ctx, p.ID, enable))

	info, err := r.Navigate(ctx, p.ID, "https://b.com/next", `<html><body><p>next</p></body></html>`)
	require.NoError(t, err)
	assert.Equal(t, "https://b.com/next", info.URL)

	assert.ErrorIs(t, r.SendToPage(ctx, p.ID, enable), tabs.ErrNoReceiver)

	var buf bytes.Buffer
	require.NoError(t, r.Render(p.ID, &buf))
	assert.NotContains(t, buf.String(), "legible-typography")
}

func TestRegistry_MutateRequiresReceiver(t *testing.T) {
	ctx := testCtx()
	r := newRegistry()
	p := r.Open(ctx, "https://a.com", markup)

	assert.ErrorIs(t, r.Mutate(p.ID, "<p>x</p>"), tabs.ErrNoReceiver)

	_, _, err := r.Attach(ctx, p.ID)
	require.NoError(t, err)
	require.NoError(t, r.Mutate(p.ID, "<p>x</p>"))
}

func TestRegistry_Close(t *testing.T) {
	ctx := testCtx()
	r := newRegistry()
	p := r.Open(ctx, "https://a.com", markup)

	require.NoError(t, r.Close(ctx, p.ID))
	assert.ErrorIs(t, r.Close(ctx, p.ID), tabs.ErrPageNotFound)
	_, err := r.Page(ctx, p.ID)
	assert.ErrorIs(t, err, tabs.ErrPageNotFound)
}

func TestRegistry_SendHonoursCancelledContext(t *testing.T) {
	r := newRegistry()
	ctx, cancel := context.WithCancel(testCtx())
	p := r.Open(ctx, "https://a.com", markup)
	cancel()

	assert.ErrorIs(t, r.SendToPage(ctx, p.ID, enable), context.Canceled)
}

func TestParseID(t *testing.T) {
	_, err := tabs.ParseID("not-a-uuid")
	assert.ErrorIs(t, err, tabs.ErrPageNotFound)

	id, err := tabs.ParseID(" 3f2504e0-4f89-41d3-9a0c-0305e82c3301 ")
	require.NoError(t, err)
	assert.Equal(t, port.PageID("3f2504e0-4f89-41d3-9a0c-0305e82c3301"), id)
}
