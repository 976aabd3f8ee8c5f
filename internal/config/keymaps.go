package config

// KeyMappings defines all configurable key bindings
type KeyMappings struct {
	// Tasks
	AddTask     string `yaml:"add_task"`
	AdvanceTask string `yaml:"advance_task"`
	DeleteTask  string `yaml:"delete_task"`

	// Projects
	AddProject    string `yaml:"add_project"`
	DeleteProject string `yaml:"delete_project"`

	// Filters
	CycleProject string `yaml:"cycle_project"`
	CycleStatus  string `yaml:"cycle_status"`

	// Forms
	SaveForm   string `yaml:"save_form"`
	CancelForm string `yaml:"cancel_form"`

	// Navigation
	FocusProjects string `yaml:"focus_projects"`
	FocusTasks    string `yaml:"focus_tasks"`
	PrevItem      string `yaml:"prev_item"`
	NextItem      string `yaml:"next_item"`

	// Other
	Refresh  string `yaml:"refresh"`
	ShowHelp string `yaml:"show_help"`
	Quit     string `yaml:"quit"`
}

// DefaultKeyMappings returns the default key mappings
func DefaultKeyMappings() KeyMappings {
	return KeyMappings{
		// Tasks
		AddTask:     "a",
		AdvanceTask: "enter",
		DeleteTask:  "d",

		// Projects
		AddProject:    "P",
		DeleteProject: "D",

		// Filters
		CycleProject: "p",
		CycleStatus:  "s",

		// Forms
		SaveForm:   "ctrl+s",
		CancelForm: "esc",

		// Navigation
		FocusProjects: "h",
		FocusTasks:    "l",
		PrevItem:      "k",
		NextItem:      "j",

		// Other
		Refresh:  "r",
		ShowHelp: "?",
		Quit:     "q",
	}
}

// applyDefaults fills in missing key mappings with defaults
func (k *KeyMappings) applyDefaults() {
	defaults := DefaultKeyMappings()

	if k.AddTask == "" {
		k.AddTask = defaults.AddTask
	}
	if k.AdvanceTask == "" {
		k.AdvanceTask = defaults.AdvanceTask
	}
	if k.DeleteTask == "" {
		k.DeleteTask = defaults.DeleteTask
	}
	if k.AddProject == "" {
		k.AddProject = defaults.AddProject
	}
	if k.DeleteProject == "" {
		k.DeleteProject = defaults.DeleteProject
	}
	if k.CycleProject == "" {
		k.CycleProject = defaults.CycleProject
	}
	if k.CycleStatus == "" {
		k.CycleStatus = defaults.CycleStatus
	}
	if k.SaveForm == "" {
		k.SaveForm = defaults.SaveForm
	}
	if k.CancelForm == "" {
		k.CancelForm = defaults.CancelForm
	}
	if k.FocusProjects == "" {
		k.FocusProjects = defaults.FocusProjects
	}
	if k.FocusTasks == "" {
		k.FocusTasks = defaults.FocusTasks
	}
	if k.PrevItem == "" {
		k.PrevItem = defaults.PrevItem
	}
	if k.NextItem == "" {
		k.NextItem = defaults.NextItem
	}
	if k.Refresh == "" {
		k.Refresh = defaults.Refresh
	}
	if k.ShowHelp == "" {
		k.ShowHelp = defaults.ShowHelp
	}
	if k.Quit == "" {
		k.Quit = defaults.Quit
	}
}
