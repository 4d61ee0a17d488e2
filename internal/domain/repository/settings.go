package repository

import (
	"context"

	"github.com/bnema/legible/internal/domain/entity"
)

// SettingsRepository persists the settings record as independent top-level keys.
type SettingsRepository interface {
	// Read returns the stored record merged over defaults.
	// Keys missing from storage are filled in memory only.
	Read(ctx context.Context) (*entity.Settings, error)

	// Write replaces every top-level key present in patch.
	// Keys absent from patch are left untouched.
	Write(ctx context.Context, patch entity.SettingsPatch) error

	// Init persists defaults for keys missing from storage.
	// Existing keys are never overwritten.
	Init(ctx context.Context) error

	// Reset overwrites every key with the factory defaults.
	Reset(ctx context.Context) error
}
