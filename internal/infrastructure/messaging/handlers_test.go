package messaging_test

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/bnema/legible/internal/application/usecase"
	"github.com/bnema/legible/internal/domain/entity"
	"github.com/bnema/legible/internal/infrastructure/messaging"
	"github.com/bnema/legible/internal/infrastructure/page"
	"github.com/bnema/legible/internal/infrastructure/persistence/sqlite"
	"github.com/bnema/legible/internal/infrastructure/tabs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stack struct {
	router   *messaging.Router
	registry *tabs.Registry
	hub      *messaging.Hub
	settings *usecase.ManageSettingsUseCase
}

func newStack(t *testing.T) *stack {
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

	return &stack{router: router, registry: registry, hub: hub, settings: settings}
}

func (s *stack) send(t *testing.T, msg string) any {
	t.Helper()
	resp, err := s.router.Dispatch(testCtx(), []byte(msg))
	require.NoError(t, err, msg)
	return resp
}

func asJSON(t *testing.T, v any) string {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return string(b)
}

func TestHandlers_DefaultScenario(t *testing.T) {
	s := newStack(t)

	resp := s.send(t, `{"action":"GET_SETTINGS","site":"example.com"}`)
	assert.JSONEq(t, `{"enabled":false,"force":false,"fontSize":1,"spacing":0,"lineHeight":1.6,"isExcluded":false}`, asJSON(t, resp))
}

func TestHandlers_OverrideScenario(t *testing.T) {
	s := newStack(t)

	s.send(t, `{"action":"SET_DEFAULTS","globalEnabled":true}`)
	resp := s.send(t, `{"action":"UPDATE_SETTINGS","site":"example.com","fontSize":1.4,"force":true}`)
	assert.JSONEq(t, `{"status":"ok"}`, asJSON(t, resp))

	resp = s.send(t, `{"action":"GET_SETTINGS","site":"https://example.com/path"}`)
	assert.JSONEq(t, `{"enabled":true,"force":true,"fontSize":1.4,"spacing":0,"lineHeight":1.6,"isExcluded":false}`, asJSON(t, resp))
}

func TestHandlers_ExclusionScenario(t *testing.T) {
	s := newStack(t)

	s.send(t, `{"action":"SET_DEFAULTS","globalEnabled":true}`)
	s.send(t, `{"action":"SET_SITE_ENABLED","site":"bank.com","enabled":true}`)
	s.send(t, `{"action":"EXCLUDE_SITE","site":"bank.com"}`)

	view := s.send(t, `{"action":"GET_SETTINGS","site":"bank.com"}`).(entity.SiteView)
	assert.False(t, view.Enabled)
	assert.True(t, view.IsExcluded)

	s.send(t, `{"action":"REMOVE_EXCLUDED_SITE","site":"bank.com"}`)
	view = s.send(t, `{"action":"GET_SETTINGS","site":"bank.com"}`).(entity.SiteView)
	assert.False(t, view.IsExcluded)
	// Excluding also stored enabled=false for the site.
	assert.False(t, view.Enabled)
}

func TestHandlers_ResetAllRestoresDefaults(t *testing.T) {
	s := newStack(t)

	s.send(t, `{"action":"SET_DEFAULTS","globalEnabled":true,"defaultFontSize":1.8}`)
	s.send(t, `{"action":"UPDATE_SETTINGS","site":"a.com","spacing":2}`)
	s.send(t, `{"action":"EXCLUDE_SITE","site":"b.com"}`)
	s.send(t, `{"action":"RESET_ALL"}`)

	all := s.send(t, `{"action":"GET_ALL_SETTINGS"}`)
	assert.Equal(t, entity.DefaultSettings(), all)
}

func TestHandlers_SiteUpdatesAreIsolated(t *testing.T) {
	s := newStack(t)

	s.send(t, `{"action":"UPDATE_SETTINGS","site":"a.com","fontSize":1.2,"lineHeight":1.9}`)
	before := asJSON(t, s.send(t, `{"action":"GET_ALL_SETTINGS"}`).(*entity.Settings).SiteSettings["a.com"])

	s.send(t, `{"action":"UPDATE_SETTINGS","site":"b.com","fontSize":0.7}`)
	after := asJSON(t, s.send(t, `{"action":"GET_ALL_SETTINGS"}`).(*entity.Settings).SiteSettings["a.com"])

	assert.Equal(t, before, after)
}

func TestHandlers_RemoveSite(t *testing.T) {
	s := newStack(t)

	s.send(t, `{"action":"UPDATE_SETTINGS","site":"a.com","fontSize":1.2}`)
	s.send(t, `{"action":"REMOVE_SITE","site":"a.com"}`)

	all := s.send(t, `{"action":"GET_ALL_SETTINGS"}`).(*entity.Settings)
	assert.NotContains(t, all.SiteSettings, "a.com")
}

func TestHandlers_ValidationErrors(t *testing.T) {
	s := newStack(t)

	_, err := s.router.Dispatch(testCtx(), []byte(`{"action":"UPDATE_SETTINGS","site":"a.com","fontSize":9}`))
	assert.ErrorIs(t, err, entity.ErrInvalidSettings)

	_, err = s.router.Dispatch(testCtx(), []byte(`{"action":"SET_SITE_ENABLED","site":"a.com"}`))
	assert.ErrorIs(t, err, messaging.ErrMalformedMessage)

	_, err = s.router.Dispatch(testCtx(), []byte(`{"action":"UPDATE_SETTINGS","site":"a.com","fontSize":"big"}`))
	assert.ErrorIs(t, err, messaging.ErrMalformedMessage)

	_, err = s.router.Dispatch(testCtx(), []byte(`{"action":"EXCLUDE_SITE","site":""}`))
	assert.ErrorIs(t, err, entity.ErrInvalidSettings)
}

func TestHandlers_ChangesReachOpenPagesAndListeners(t *testing.T) {
	s := newStack(t)
	ctx := testCtx()

	_, events, cancel := s.hub.Subscribe("popup")
	defer cancel()

	p := s.registry.Open(ctx, "https://example.com/", `<html><head></head><body><p>x</p></body></html>`)
	_, _, err := s.registry.Attach(ctx, p.ID)
	require.NoError(t, err)

	s.send(t, `{"action":"SET_DEFAULTS","globalEnabled":true,"defaultFontSize":1.25}`)

	ev := <-events
	assert.Equal(t, messaging.ActionSettingsUpdated, ev.Action)
	assert.True(t, ev.NewSettings.GlobalEnabled)

	var buf bytes.Buffer
	require.NoError(t, s.registry.Render(p.ID, &buf))
	assert.Contains(t, buf.String(), "font-size: 1.25em !important;")

	s.send(t, `{"action":"EXCLUDE_SITE","site":"example.com"}`)
	<-events
	buf.Reset()
	require.NoError(t, s.registry.Render(p.ID, &buf))
	assert.NotContains(t, buf.String(), "legible-typography")
}

func TestHandlers_ToggleFont(t *testing.T) {
	s := newStack(t)
	ctx := testCtx()

	p := s.registry.Open(ctx, "https://Docs.example.org/a", `<html><body></body></html>`)

	resp := s.send(t, `{"action":"TOGGLE_FONT","pageId":"`+string(p.ID)+`"}`)
	assert.Equal(t, messaging.ToggleResponse{Status: "ok", Site: "docs.example.org", Enabled: true}, resp)

	all := s.send(t, `{"action":"GET_ALL_SETTINGS"}`).(*entity.Settings)
	assert.Equal(t, entity.SiteOverride{
		Enabled:    entity.Ptr(true),
		Force:      entity.Ptr(false),
		FontSize:   entity.Ptr(1.0),
		Spacing:    entity.Ptr(0.0),
		LineHeight: entity.Ptr(1.6),
	}, all.SiteSettings["docs.example.org"])

	resp = s.send(t, `{"action":"TOGGLE_FONT","pageId":"`+string(p.ID)+`"}`)
	assert.False(t, resp.(messaging.ToggleResponse).Enabled)

	_, err := s.router.Dispatch(ctx, []byte(`{"action":"TOGGLE_FONT","pageId":"missing"}`))
	assert.ErrorIs(t, err, tabs.ErrPageNotFound)
}

func TestHandlers_ToggleFontRejectsInternalPage(t *testing.T) {
	s := newStack(t)
	ctx := testCtx()

	p := s.registry.Open(ctx, "about:blank", `<html><body></body></html>`)

	_, err := s.router.Dispatch(ctx, []byte(`{"action":"TOGGLE_FONT","pageId":"`+string(p.ID)+`"}`))
	assert.ErrorIs(t, err, messaging.ErrInternalPage)

	all := s.send(t, `{"action":"GET_ALL_SETTINGS"}`).(*entity.Settings)
	assert.Empty(t, all.SiteSettings)
}

func TestHandlers_ImportSettingsNormalizesSites(t *testing.T) {
	s := newStack(t)

	s.send(t, `{"action":"IMPORT_SETTINGS","settings":{"globalEnabled":true,"siteSettings":{"https://Docs.Example.com/a":{"fontSize":1.2}},"defaultFontSize":1,"defaultLetterSpacing":0,"defaultLineHeight":1.6,"excludeSites":["Ads.Test."]}}`)

	all, err := s.settings.GetAllSettings(testCtx())
	require.NoError(t, err)
	assert.True(t, all.GlobalEnabled)
	assert.Contains(t, all.SiteSettings, "docs.example.com")
	assert.Equal(t, []string{"ads.test"}, all.ExcludeSites)
}

func TestHandlers_ImportSettingsRejectsInvalidRecord(t *testing.T) {
	s := newStack(t)

	_, err := s.router.Dispatch(testCtx(), []byte(`{"action":"IMPORT_SETTINGS","settings":{"defaultFontSize":9,"defaultLineHeight":1.6}}`))
	require.ErrorIs(t, err, entity.ErrInvalidSettings)

	_, err = s.router.Dispatch(testCtx(), []byte(`{"action":"IMPORT_SETTINGS"}`))
	require.ErrorIs(t, err, entity.ErrInvalidSettings)
}
