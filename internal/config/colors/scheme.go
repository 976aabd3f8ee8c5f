// Package colors defines the color schemes used across the CLI and TUI.
// A scheme can be selected by preset name and individual values overridden
// in the config file; missing values fall back to the preset.
package colors

// ColorScheme defines all configurable color values
type ColorScheme struct {
	// Preset name (e.g., "default", "monochrome", "wave", "lotus")
	Preset string `yaml:"preset"`

	// Primary accent color (used for selections, titles, highlights)
	Accent string `yaml:"accent"`

	// Semantic colors
	Create string `yaml:"create"` // Green - creation forms
	Delete string `yaml:"delete"` // Red - delete confirmations

	// Task status colors
	StatusTodo  string `yaml:"status_todo"`
	StatusDoing string `yaml:"status_doing"`
	StatusDone  string `yaml:"status_done"`

	// UI element colors
	PaneBorder     string `yaml:"pane_border"`
	SelectedBorder string `yaml:"selected_border"`
	SelectedBg     string `yaml:"selected_bg"`

	// Text colors
	Title  string `yaml:"title"`
	Subtle string `yaml:"subtle"` // Muted/placeholder text
	Normal string `yaml:"normal"`

	// Notification colors (foreground/background pairs)
	InfoFg    string `yaml:"info_fg"`
	InfoBg    string `yaml:"info_bg"`
	WarningFg string `yaml:"warning_fg"`
	WarningBg string `yaml:"warning_bg"`
	ErrorFg   string `yaml:"error_fg"`
	ErrorBg   string `yaml:"error_bg"`
}

// GetPreset returns a preset color scheme by name
func GetPreset(name string) *ColorScheme {
	switch name {
	case "monochrome":
		return Monochrome()
	case "wave":
		return Wave()
	case "dragon":
		return Dragon()
	case "lotus":
		return Lotus()
	case "default", "":
		return Default()
	default:
		return Default()
	}
}

// MergeFrom overrides this scheme with any non-empty values from other
func (c *ColorScheme) MergeFrom(other ColorScheme) {
	if other.Preset != "" {
		c.Preset = other.Preset
	}
	if other.Accent != "" {
		c.Accent = other.Accent
	}
	if other.Create != "" {
		c.Create = other.Create
	}
	if other.Delete != "" {
		c.Delete = other.Delete
	}
	if other.StatusTodo != "" {
		c.StatusTodo = other.StatusTodo
	}
	if other.StatusDoing != "" {
		c.StatusDoing = other.StatusDoing
	}
	if other.StatusDone != "" {
		c.StatusDone = other.StatusDone
	}
	if other.PaneBorder != "" {
		c.PaneBorder = other.PaneBorder
	}
	if other.SelectedBorder != "" {
		c.SelectedBorder = other.SelectedBorder
	}
	if other.SelectedBg != "" {
		c.SelectedBg = other.SelectedBg
	}
	if other.Title != "" {
		c.Title = other.Title
	}
	if other.Subtle != "" {
		c.Subtle = other.Subtle
	}
	if other.Normal != "" {
		c.Normal = other.Normal
	}
	if other.InfoFg != "" {
		c.InfoFg = other.InfoFg
	}
	if other.InfoBg != "" {
		c.InfoBg = other.InfoBg
	}
	if other.WarningFg != "" {
		c.WarningFg = other.WarningFg
	}
	if other.WarningBg != "" {
		c.WarningBg = other.WarningBg
	}
	if other.ErrorFg != "" {
		c.ErrorFg = other.ErrorFg
	}
	if other.ErrorBg != "" {
		c.ErrorBg = other.ErrorBg
	}
}

// ApplyDefaults fills in missing color values using the preset as base.
// If preset is specified, loads that preset first, then keeps custom values.
func (c *ColorScheme) ApplyDefaults() {
	// Get the base preset
	preset := GetPreset(c.Preset)

	// Override with custom values (only if not empty)
	if c.Accent == "" {
		c.Accent = preset.Accent
	}
	if c.Create == "" {
		c.Create = preset.Create
	}
	if c.Delete == "" {
		c.Delete = preset.Delete
	}
	if c.StatusTodo == "" {
		c.StatusTodo = preset.StatusTodo
	}
	if c.StatusDoing == "" {
		c.StatusDoing = preset.StatusDoing
	}
	if c.StatusDone == "" {
		c.StatusDone = preset.StatusDone
	}
	if c.PaneBorder == "" {
		c.PaneBorder = preset.PaneBorder
	}
	if c.SelectedBorder == "" {
		c.SelectedBorder = preset.SelectedBorder
	}
	if c.SelectedBg == "" {
		c.SelectedBg = preset.SelectedBg
	}
	if c.Title == "" {
		c.Title = preset.Title
	}
	if c.Subtle == "" {
		c.Subtle = preset.Subtle
	}
	if c.Normal == "" {
		c.Normal = preset.Normal
	}
	if c.InfoFg == "" {
		c.InfoFg = preset.InfoFg
	}
	if c.InfoBg == "" {
		c.InfoBg = preset.InfoBg
	}
	if c.WarningFg == "" {
		c.WarningFg = preset.WarningFg
	}
	if c.WarningBg == "" {
		c.WarningBg = preset.WarningBg
	}
	if c.ErrorFg == "" {
		c.ErrorFg = preset.ErrorFg
	}
	if c.ErrorBg == "" {
		c.ErrorBg = preset.ErrorBg
	}
}
