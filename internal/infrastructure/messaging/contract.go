// Package messaging implements the settings message contract: a router that
// dispatches action envelopes to handlers, and a hub that broadcasts
// SETTINGS_UPDATED to listening configuration UIs.
package messaging

import (
	"github.com/bnema/legible/internal/application/port"
	"github.com/bnema/legible/internal/domain/entity"
)

// Action names of the message contract.
const (
	ActionGetSettings        = "GET_SETTINGS"
	ActionGetAllSettings     = "GET_ALL_SETTINGS"
	ActionUpdateSettings     = "UPDATE_SETTINGS"
	ActionSetDefaults        = "SET_DEFAULTS"
	ActionSetSiteEnabled     = "SET_SITE_ENABLED"
	ActionExcludeSite        = "EXCLUDE_SITE"
	ActionRemoveExcludedSite = "REMOVE_EXCLUDED_SITE"
	ActionRemoveSite         = "REMOVE_SITE"
	ActionResetAll           = "RESET_ALL"
	ActionImportSettings     = "IMPORT_SETTINGS"
	ActionToggleFont         = "TOGGLE_FONT"
	ActionSettingsUpdated    = "SETTINGS_UPDATED"
	ActionSetFont            = string(port.ActionSetFont)
	ActionUpdateStyle        = string(port.ActionUpdateStyle)
)

// StatusOK is the status of every successful acknowledgement.
const StatusOK = "ok"

// SiteRequest carries a site identifier or URL.
type SiteRequest struct {
	Action string `json:"action"`
	Site   string `json:"site"`
}

// UpdateSettingsRequest is the UPDATE_SETTINGS payload.
type UpdateSettingsRequest struct {
	Action     string   `json:"action"`
	Site       string   `json:"site"`
	FontSize   *float64 `json:"fontSize,omitempty"`
	Spacing    *float64 `json:"spacing,omitempty"`
	LineHeight *float64 `json:"lineHeight,omitempty"`
	Force      *bool    `json:"force,omitempty"`
}

// SetDefaultsRequest is the SET_DEFAULTS payload.
type SetDefaultsRequest struct {
	Action               string   `json:"action"`
	GlobalEnabled        *bool    `json:"globalEnabled,omitempty"`
	DefaultFontSize      *float64 `json:"defaultFontSize,omitempty"`
	DefaultLetterSpacing *float64 `json:"defaultLetterSpacing,omitempty"`
	DefaultLineHeight    *float64 `json:"defaultLineHeight,omitempty"`
}

// SetSiteEnabledRequest is the SET_SITE_ENABLED payload.
type SetSiteEnabledRequest struct {
	Action  string `json:"action"`
	Site    string `json:"site"`
	Enabled *bool  `json:"enabled"`
}

// ImportSettingsRequest is the IMPORT_SETTINGS payload.
type ImportSettingsRequest struct {
	Action   string           `json:"action"`
	Settings *entity.Settings `json:"settings"`
}

// ToggleFontRequest is the TOGGLE_FONT payload.
type ToggleFontRequest struct {
	Action string      `json:"action"`
	PageID port.PageID `json:"pageId"`
}

// Ack acknowledges a mutation.
type Ack struct {
	Status string `json:"status"`
}

// ToggleResponse reports the outcome of TOGGLE_FONT.
type ToggleResponse struct {
	Status  string `json:"status"`
	Site    string `json:"site"`
	Enabled bool   `json:"enabled"`
}

// SettingsUpdated is the broadcast event sent after every change.
type SettingsUpdated struct {
	Action      string           `json:"action"`
	NewSettings *entity.Settings `json:"newSettings"`
}

// ErrorResponse is returned for a failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

func ack() Ack {
	return Ack{Status: StatusOK}
}
