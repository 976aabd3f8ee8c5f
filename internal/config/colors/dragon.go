package colors

// Dragon returns the Kanagawa Dragon color scheme (dark theme with warm earth tones)
func Dragon() *ColorScheme {
	return &ColorScheme{
		Preset: "dragon",

		// Primary
		Accent: "#8992A7",

		// Semantic
		Create: "#87A987",
		Delete: "#C4746E",

		// Statuses
		StatusTodo:  "#8BA4B0",
		StatusDoing: "#C4B28A",
		StatusDone:  "#87A987",

		// UI elements
		PaneBorder:     "#625E5A",
		SelectedBorder: "#8EA4A2",
		SelectedBg:     "#282727",

		// Text
		Title:  "#8BA4B0",
		Subtle: "#737C73",
		Normal: "#C5C9C5",

		// Notifications
		InfoFg:    "#658594",
		InfoBg:    "#252535",
		WarningFg: "#FF9E3B",
		WarningBg: "#49443C",
		ErrorFg:   "#E82424",
		ErrorBg:   "#43242B",
	}
}
