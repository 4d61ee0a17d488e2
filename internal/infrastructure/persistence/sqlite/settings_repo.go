package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"slices"

	"github.com/bnema/legible/internal/domain/entity"
	"github.com/bnema/legible/internal/domain/repository"
	"github.com/bnema/legible/internal/logging"
)

const (
	selectSettingsSQL = `SELECT key, value FROM settings`
	upsertSettingSQL  = `INSERT INTO settings (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`
	insertSettingSQL = `INSERT INTO settings (key, value) VALUES (?, ?) ON CONFLICT(key) DO NOTHING`
)

type settingsRepo struct {
	db *sql.DB
}

// NewSettingsRepository creates a new SQLite-backed settings repository.
// Each top-level key is one row holding its JSON-encoded value.
func NewSettingsRepository(db *sql.DB) repository.SettingsRepository {
	return &settingsRepo{db: db}
}

func (r *settingsRepo) Read(ctx context.Context) (*entity.Settings, error) {
	rows, err := r.db.QueryContext(ctx, selectSettingsSQL)
	if err != nil {
		return nil, fmt.Errorf("failed to query settings: %w", err)
	}
	defer rows.Close()

	s := entity.DefaultSettings()
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("failed to scan setting: %w", err)
		}
		if err := decodeSetting(s, entity.SettingsKey(key), []byte(value)); err != nil {
			return nil, err
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate settings: %w", err)
	}
	return s, nil
}

func (r *settingsRepo) Write(ctx context.Context, patch entity.SettingsPatch) error {
	log := logging.FromContext(ctx)

	if patch.ExcludeSites != nil {
		patch.ExcludeSites = dedupe(patch.ExcludeSites)
	}
	keys := patch.Keys()
	if len(keys) == 0 {
		return nil
	}
	log.Debug().Strs("keys", keyStrings(keys)).Msg("writing settings")

	return r.inTx(ctx, func(tx *sql.Tx) error {
		for _, key := range keys {
			value, err := json.Marshal(patch.Value(key))
			if err != nil {
				return fmt.Errorf("failed to encode %s: %w", key, err)
			}
			if _, err := tx.ExecContext(ctx, upsertSettingSQL, string(key), string(value)); err != nil {
				return fmt.Errorf("failed to write %s: %w", key, err)
			}
		}
		return nil
	})
}

func (r *settingsRepo) Init(ctx context.Context) error {
	log := logging.FromContext(ctx)

	defaults := entity.FullPatch(entity.DefaultSettings())
	inserted := 0

	err := r.inTx(ctx, func(tx *sql.Tx) error {
		for _, key := range entity.AllSettingsKeys() {
			value, err := json.Marshal(defaults.Value(key))
			if err != nil {
				return fmt.Errorf("failed to encode %s: %w", key, err)
			}
			res, err := tx.ExecContext(ctx, insertSettingSQL, string(key), string(value))
			if err != nil {
				return fmt.Errorf("failed to initialize %s: %w", key, err)
			}
			if n, err := res.RowsAffected(); err == nil {
				inserted += int(n)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	if inserted > 0 {
		log.Info().Int("keys", inserted).Msg("settings initialized with defaults")
	}
	return nil
}

func (r *settingsRepo) Reset(ctx context.Context) error {
	return r.Write(ctx, entity.FullPatch(entity.DefaultSettings()))
}

func (r *settingsRepo) inTx(ctx context.Context, fn func(*sql.Tx) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit settings: %w", err)
	}
	return nil
}

// decodeSetting stores one persisted key into s. Unknown keys are ignored.
func decodeSetting(s *entity.Settings, key entity.SettingsKey, value []byte) error {
	var target any
	switch key {
	case entity.KeyGlobalEnabled:
		target = &s.GlobalEnabled
	case entity.KeySiteSettings:
		sites := map[string]entity.SiteOverride{}
		if err := json.Unmarshal(value, &sites); err != nil {
			return fmt.Errorf("failed to decode %s: %w", key, err)
		}
		if sites == nil {
			sites = map[string]entity.SiteOverride{}
		}
		s.SiteSettings = sites
		return nil
	case entity.KeyDefaultFontSize:
		target = &s.DefaultFontSize
	case entity.KeyDefaultLetterSpacing:
		target = &s.DefaultLetterSpacing
	case entity.KeyDefaultLineHeight:
		target = &s.DefaultLineHeight
	case entity.KeyExcludeSites:
		var sites []string
		if err := json.Unmarshal(value, &sites); err != nil {
			return fmt.Errorf("failed to decode %s: %w", key, err)
		}
		if sites == nil {
			sites = []string{}
		}
		s.ExcludeSites = sites
		return nil
	default:
		return nil
	}
	if err := json.Unmarshal(value, target); err != nil {
		return fmt.Errorf("failed to decode %s: %w", key, err)
	}
	return nil
}

func dedupe(sites []string) []string {
	out := make([]string, 0, len(sites))
	for _, s := range sites {
		if !slices.Contains(out, s) {
			out = append(out, s)
		}
	}
	return out
}

func keyStrings(keys []entity.SettingsKey) []string {
	out := make([]string, len(keys))
	for i, k := range keys {
		out[i] = string(k)
	}
	return out
}
