package colors

// Wave returns the Kanagawa Wave color scheme (dark theme with blue/purple accents)
func Wave() *ColorScheme {
	return &ColorScheme{
		Preset: "wave",

		// Primary
		Accent: "#957FB8",

		// Semantic
		Create: "#98BB6C",
		Delete: "#FF5D62",

		// Statuses
		StatusTodo:  "#7E9CD8",
		StatusDoing: "#E6C384",
		StatusDone:  "#98BB6C",

		// UI elements
		PaneBorder:     "#54546D",
		SelectedBorder: "#7AA89F",
		SelectedBg:     "#223249",

		// Text
		Title:  "#7E9CD8",
		Subtle: "#727169",
		Normal: "#DCD7BA",

		// Notifications
		InfoFg:    "#658594",
		InfoBg:    "#252535",
		WarningFg: "#FF9E3B",
		WarningBg: "#49443C",
		ErrorFg:   "#E82424",
		ErrorBg:   "#43242B",
	}
}
