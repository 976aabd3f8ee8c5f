package colors

// Lotus returns the Kanagawa Lotus color scheme (light theme with cream/paper background)
func Lotus() *ColorScheme {
	return &ColorScheme{
		Preset: "lotus",

		// Primary
		Accent: "#766B90",

		// Semantic
		Create: "#6F894E",
		Delete: "#C84053",

		// Statuses
		StatusTodo:  "#4D699B",
		StatusDoing: "#DE9800",
		StatusDone:  "#6F894E",

		// UI elements
		PaneBorder:     "#A09CAC",
		SelectedBorder: "#597B75",
		SelectedBg:     "#C7D7E0",

		// Text
		Title:  "#4D699B",
		Subtle: "#8A8980",
		Normal: "#545464",

		// Notifications
		InfoFg:    "#597B75",
		InfoBg:    "#B5CBD2",
		WarningFg: "#E98A00",
		WarningBg: "#E4D794",
		ErrorFg:   "#C84053",
		ErrorBg:   "#D9A594",
	}
}
