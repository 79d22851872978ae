package settings

// UIPreferences is the operator-facing dashboard appearance state. One
// object per deployment, persisted as JSON in the settings table and
// merged field-wise on update.
type UIPreferences struct {
	Accent           string  `json:"accent"`
	ShowGrid         bool    `json:"showGrid"`
	ShowOrbs         bool    `json:"showOrbs"`
	Motion           string  `json:"motion"`   // "normal" or "reduce"
	Contrast         string  `json:"contrast"` // "default" or "high"
	PanelOpacity     float64 `json:"panelOpacity"`
	PanelSoftOpacity float64 `json:"panelSoftOpacity"`
	FontScale        float64 `json:"fontScale"`
	GlowIntensity    float64 `json:"glowIntensity"`
	Radius           int     `json:"radius"`
	Scanlines        bool    `json:"scanlines"`
}

// DefaultUIPreferences returns the hard-coded defaults used on first run
// and whenever stored preferences fail to parse.
func DefaultUIPreferences() UIPreferences {
	return UIPreferences{
		Accent:           "cyan",
		ShowGrid:         true,
		ShowOrbs:         true,
		Motion:           "normal",
		Contrast:         "default",
		PanelOpacity:     0.88,
		PanelSoftOpacity: 0.7,
		FontScale:        1,
		GlowIntensity:    0.18,
		Radius:           24,
		Scanlines:        false,
	}
}

// Settings table keys.
const (
	keyUIPreferences    = "ui_settings"
	keyPresentationMode = "presentation_mode"
)
