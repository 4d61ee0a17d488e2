package entity

// EffectiveStyle is the fully resolved typography decision for one site.
type EffectiveStyle struct {
	Enabled    bool    `json:"enabled"`
	Force      bool    `json:"force"`
	FontSize   float64 `json:"fontSize"`
	Spacing    float64 `json:"spacing"`
	LineHeight float64 `json:"lineHeight"`
}

// SiteView is what a configuration UI sees for one site.
type SiteView struct {
	EffectiveStyle
	IsExcluded bool `json:"isExcluded"`
}
