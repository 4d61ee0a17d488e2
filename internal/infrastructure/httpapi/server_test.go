package httpapi_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/bnema/legible/internal/application/usecase"
	"github.com/bnema/legible/internal/domain/entity"
	"github.com/bnema/legible/internal/infrastructure/httpapi"
	"github.com/bnema/legible/internal/infrastructure/messaging"
	"github.com/bnema/legible/internal/infrastructure/page"
	"github.com/bnema/legible/internal/infrastructure/persistence/sqlite"
	"github.com/bnema/legible/internal/infrastructure/tabs"
	"github.com/bnema/legible/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const articleHTML = `<html><head><title>a</title></head><body><p style="font-family: Georgia">text</p></body></html>`

func testCtx() context.Context {
	logger := logging.NewFromConfigValues("debug", "console")
	return logging.WithContext(context.Background(), logger)
}

type fixture struct {
	client *httpapi.Client
	hub    *messaging.Hub
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := testCtx()

	db, err := sqlite.NewConnection(ctx, filepath.Join(t.TempDir(), "legible.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	repo := sqlite.NewSettingsRepository(db)
	registry := tabs.NewRegistry(page.Options{SweepDelay: time.Hour})
	hub := messaging.NewHub(16)
	propagate := usecase.NewPropagateSettingsUseCase(repo, registry, registry, hub, usecase.PropagateOptions{})
	settings := usecase.NewManageSettingsUseCase(repo, propagate)
	require.NoError(t, settings.Init(ctx))

	router := messaging.NewRouter()
	require.NoError(t, messaging.RegisterSettingsHandlers(router, settings, registry))

	srv := httptest.NewServer(httpapi.NewHandler(ctx, httpapi.Dependencies{
		Router:   router,
		Hub:      hub,
		Registry: registry,
		Settings: settings,
		Pusher:   propagate,
	}))
	t.Cleanup(srv.Close)

	return &fixture{client: httpapi.NewClient(srv.URL), hub: hub}
}

func (f *fixture) enableGlobally(t *testing.T) {
	t.Helper()
	var ack messaging.Ack
	require.NoError(t, f.client.Send(testCtx(), messaging.SetDefaultsRequest{
		Action:        messaging.ActionSetDefaults,
		GlobalEnabled: entity.Ptr(true),
	}, &ack))
	require.Equal(t, messaging.StatusOK, ack.Status)
}

func TestServer_Health(t *testing.T) {
	f := newFixture(t)

	h, err := f.client.Health(testCtx())
	require.NoError(t, err)
	assert.Equal(t, "ok", h.Status)
	assert.Equal(t, 0, h.Pages)
}

func TestServer_GetSettingsDefaults(t *testing.T) {
	f := newFixture(t)

	view, err := f.client.GetSettings(testCtx(), "https://example.com/a")
	require.NoError(t, err)
	assert.False(t, view.Enabled)
	assert.Equal(t, entity.DefaultFontSize, view.FontSize)
	assert.Equal(t, entity.DefaultLineHeight, view.LineHeight)
}

func TestServer_RejectsInvalidValues(t *testing.T) {
	f := newFixture(t)

	err := f.client.Send(testCtx(), messaging.UpdateSettingsRequest{
		Action:   messaging.ActionUpdateSettings,
		Site:     "example.com",
		FontSize: entity.Ptr(9.0),
	}, nil)

	var apiErr *httpapi.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)

	all, err := f.client.GetAllSettings(testCtx())
	require.NoError(t, err)
	assert.Empty(t, all.SiteSettings)
}

func TestServer_UnknownAction(t *testing.T) {
	f := newFixture(t)

	err := f.client.Send(testCtx(), map[string]string{"action": "NOPE"}, nil)

	var apiErr *httpapi.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
}

func TestServer_UnknownPage(t *testing.T) {
	f := newFixture(t)

	err := f.client.ClosePage(testCtx(), "missing")

	var apiErr *httpapi.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
}

func TestServer_LoadAppliesEnabledStyle(t *testing.T) {
	f := newFixture(t)
	ctx := testCtx()
	f.enableGlobally(t)

	info, err := f.client.OpenPage(ctx, "https://example.com/article", articleHTML)
	require.NoError(t, err)

	before, err := f.client.Document(ctx, info.ID)
	require.NoError(t, err)
	assert.NotContains(t, before, page.DefaultStyleID)

	resp, err := f.client.LoadPage(ctx, info.ID)
	require.NoError(t, err)
	assert.True(t, resp.Attached)
	assert.Equal(t, "active", resp.State)
	require.NotNil(t, resp.Push)
	assert.Equal(t, "example.com", resp.Push.Site)
	assert.Empty(t, resp.PushError)

	doc, err := f.client.Document(ctx, info.ID)
	require.NoError(t, err)
	assert.Contains(t, doc, page.DefaultStyleID)
	assert.Contains(t, doc, page.DefaultFontFamily)
}

func TestServer_LoadLeavesDisabledPageAlone(t *testing.T) {
	f := newFixture(t)
	ctx := testCtx()

	info, err := f.client.OpenPage(ctx, "https://example.com/", articleHTML)
	require.NoError(t, err)

	resp, err := f.client.LoadPage(ctx, info.ID)
	require.NoError(t, err)
	assert.Equal(t, "inactive", resp.State)
	require.NotNil(t, resp.Push)
	assert.True(t, resp.Push.Skipped)

	doc, err := f.client.Document(ctx, info.ID)
	require.NoError(t, err)
	assert.NotContains(t, doc, page.DefaultStyleID)
}

func TestServer_ToggleFont(t *testing.T) {
	f := newFixture(t)
	ctx := testCtx()
	f.enableGlobally(t)

	info, err := f.client.OpenPage(ctx, "https://news.example.org/today", articleHTML)
	require.NoError(t, err)
	_, err = f.client.LoadPage(ctx, info.ID)
	require.NoError(t, err)

	resp, err := f.client.ToggleFont(ctx, info.ID)
	require.NoError(t, err)
	assert.Equal(t, "news.example.org", resp.Site)
	assert.False(t, resp.Enabled)

	doc, err := f.client.Document(ctx, info.ID)
	require.NoError(t, err)
	assert.NotContains(t, doc, page.DefaultStyleID)

	resp, err = f.client.ToggleFont(ctx, info.ID)
	require.NoError(t, err)
	assert.True(t, resp.Enabled)
}

func TestServer_StreamsSettingsUpdated(t *testing.T) {
	f := newFixture(t)

	ctx, cancel := context.WithCancel(testCtx())
	events := make(chan messaging.SettingsUpdated, 4)
	done := make(chan error, 1)
	go func() {
		done <- f.client.Subscribe(ctx, "test", func(ev messaging.SettingsUpdated) {
			events <- ev
		})
	}()
	defer func() {
		cancel()
		<-done
	}()

	require.Eventually(t, func() bool { return f.hub.Len() == 1 }, 2*time.Second, 10*time.Millisecond)

	f.enableGlobally(t)

	select {
	case ev := <-events:
		assert.Equal(t, messaging.ActionSettingsUpdated, ev.Action)
		require.NotNil(t, ev.NewSettings)
		assert.True(t, ev.NewSettings.GlobalEnabled)
	case <-time.After(2 * time.Second):
		t.Fatal("no SETTINGS_UPDATED event received")
	}
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("wrap: %w", entity.ErrInvalidSettings), http.StatusBadRequest},
		{messaging.ErrMalformedMessage, http.StatusBadRequest},
		{messaging.ErrUnknownAction, http.StatusBadRequest},
		{tabs.ErrPageNotFound, http.StatusNotFound},
		{tabs.ErrNoReceiver, http.StatusConflict},
		{errors.New("disk on fire"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, httpapi.StatusFor(tt.err), tt.err.Error())
	}
}
