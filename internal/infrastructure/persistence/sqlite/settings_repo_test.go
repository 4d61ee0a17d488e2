package sqlite_test

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/bnema/legible/internal/domain/entity"
	"github.com/bnema/legible/internal/infrastructure/persistence/sqlite"
	"github.com/bnema/legible/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCtx() context.Context {
	logger := logging.NewFromConfigValues("debug", "console")
	return logging.WithContext(context.Background(), logger)
}

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sqlite.NewConnection(testCtx(), filepath.Join(t.TempDir(), "legible.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func countRows(t *testing.T, db *sql.DB) int {
	t.Helper()
	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM settings`).Scan(&n))
	return n
}

func rawValue(t *testing.T, db *sql.DB, key entity.SettingsKey) string {
	t.Helper()
	var v string
	require.NoError(t, db.QueryRow(`SELECT value FROM settings WHERE key = ?`, string(key)).Scan(&v))
	return v
}

func TestNewConnection_RejectsEmptyPath(t *testing.T) {
	_, err := sqlite.NewConnection(testCtx(), "")
	require.Error(t, err)
}

func TestNewConnection_AppliesMigrations(t *testing.T) {
	ctx := testCtx()
	db := openTestDB(t)

	version, err := sqlite.SchemaVersion(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, int64(1), version)
}

func TestSettingsRepository_ReadFillsDefaultsWithoutPersisting(t *testing.T) {
	ctx := testCtx()
	db := openTestDB(t)
	repo := sqlite.NewSettingsRepository(db)

	s, err := repo.Read(ctx)
	require.NoError(t, err)
	assert.Equal(t, entity.DefaultSettings(), s)
	assert.Equal(t, 0, countRows(t, db))
}

func TestSettingsRepository_WriteRoundTrip(t *testing.T) {
	ctx := testCtx()
	db := openTestDB(t)
	repo := sqlite.NewSettingsRepository(db)

	patch := entity.SettingsPatch{
		GlobalEnabled: entity.Ptr(true),
		SiteSettings: map[string]entity.SiteOverride{
			"example.com": {Enabled: entity.Ptr(true), FontSize: entity.Ptr(1.25), Force: entity.Ptr(false)},
		},
		ExcludeSites: []string{"bank.com", "bank.com", "mail.com"},
	}
	require.NoError(t, repo.Write(ctx, patch))

	got, err := repo.Read(ctx)
	require.NoError(t, err)
	assert.True(t, got.GlobalEnabled)
	assert.Equal(t, patch.SiteSettings, got.SiteSettings)
	assert.Equal(t, []string{"bank.com", "mail.com"}, got.ExcludeSites)
	assert.InDelta(t, entity.DefaultLineHeight, got.DefaultLineHeight, 1e-9)
	assert.Equal(t, 3, countRows(t, db))
}

func TestSettingsRepository_WriteLeavesAbsentKeysUntouched(t *testing.T) {
	ctx := testCtx()
	db := openTestDB(t)
	repo := sqlite.NewSettingsRepository(db)

	require.NoError(t, repo.Write(ctx, entity.SettingsPatch{DefaultFontSize: entity.Ptr(1.5)}))
	require.NoError(t, repo.Write(ctx, entity.SettingsPatch{DefaultLineHeight: entity.Ptr(1.2)}))

	got, err := repo.Read(ctx)
	require.NoError(t, err)
	assert.InDelta(t, 1.5, got.DefaultFontSize, 1e-9)
	assert.InDelta(t, 1.2, got.DefaultLineHeight, 1e-9)
}

func TestSettingsRepository_EmptyPatchIsNoop(t *testing.T) {
	ctx := testCtx()
	db := openTestDB(t)
	repo := sqlite.NewSettingsRepository(db)

	require.NoError(t, repo.Write(ctx, entity.SettingsPatch{}))
	assert.Equal(t, 0, countRows(t, db))
}

func TestSettingsRepository_SiteUpdatesDoNotDisturbEachOther(t *testing.T) {
	ctx := testCtx()
	db := openTestDB(t)
	repo := sqlite.NewSettingsRepository(db)

	update := func(site string, fs float64) {
		s, err := repo.Read(ctx)
		require.NoError(t, err)
		sites := s.Clone().SiteSettings
		o := sites[site]
		o.FontSize = entity.Ptr(fs)
		sites[site] = o
		require.NoError(t, repo.Write(ctx, entity.SettingsPatch{SiteSettings: sites}))
	}

	update("a.com", 1.2)
	afterA, err := repo.Read(ctx)
	require.NoError(t, err)

	update("b.com", 0.8)
	afterB, err := repo.Read(ctx)
	require.NoError(t, err)

	assert.Equal(t, afterA.SiteSettings["a.com"], afterB.SiteSettings["a.com"])
	assert.Equal(t, entity.Ptr(0.8), afterB.SiteSettings["b.com"].FontSize)
	assert.JSONEq(t, `{"a.com":{"fontSize":1.2},"b.com":{"fontSize":0.8}}`, rawValue(t, db, entity.KeySiteSettings))
}

func TestSettingsRepository_InitDoesNotClobber(t *testing.T) {
	ctx := testCtx()
	db := openTestDB(t)
	repo := sqlite.NewSettingsRepository(db)

	require.NoError(t, repo.Write(ctx, entity.SettingsPatch{GlobalEnabled: entity.Ptr(true)}))
	require.NoError(t, repo.Init(ctx))
	require.NoError(t, repo.Init(ctx))

	assert.Equal(t, len(entity.AllSettingsKeys()), countRows(t, db))
	assert.Equal(t, "true", rawValue(t, db, entity.KeyGlobalEnabled))
	assert.Equal(t, "[]", rawValue(t, db, entity.KeyExcludeSites))

	got, err := repo.Read(ctx)
	require.NoError(t, err)
	assert.True(t, got.GlobalEnabled)
}

func TestSettingsRepository_ResetRestoresDefaults(t *testing.T) {
	ctx := testCtx()
	db := openTestDB(t)
	repo := sqlite.NewSettingsRepository(db)

	require.NoError(t, repo.Write(ctx, entity.SettingsPatch{
		GlobalEnabled:   entity.Ptr(true),
		DefaultFontSize: entity.Ptr(1.8),
		SiteSettings:    map[string]entity.SiteOverride{"a.com": {Enabled: entity.Ptr(true)}},
		ExcludeSites:    []string{"b.com"},
	}))
	require.NoError(t, repo.Reset(ctx))

	got, err := repo.Read(ctx)
	require.NoError(t, err)
	assert.Equal(t, entity.DefaultSettings(), got)
}

func TestSettingsRepository_CorruptValueIsReported(t *testing.T) {
	ctx := testCtx()
	db := openTestDB(t)
	repo := sqlite.NewSettingsRepository(db)

	_, err := db.Exec(`INSERT INTO settings (key, value) VALUES ('defaultFontSize', 'not json')`)
	require.NoError(t, err)

	_, err = repo.Read(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "defaultFontSize")
}

func TestSettingsRepository_UnknownKeysIgnored(t *testing.T) {
	ctx := testCtx()
	db := openTestDB(t)
	repo := sqlite.NewSettingsRepository(db)

	_, err := db.Exec(`INSERT INTO settings (key, value) VALUES ('legacyTheme', '"dark"')`)
	require.NoError(t, err)

	got, err := repo.Read(ctx)
	require.NoError(t, err)
	assert.Equal(t, entity.DefaultSettings(), got)
}
