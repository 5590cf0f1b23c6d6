package config

// KeyMappings defines the configurable TUI key bindings
type KeyMappings struct {
	// Drag and drop
	Grab   string `yaml:"grab"`   // pick up the selected task, press again to drop
	Cancel string `yaml:"cancel"` // abandon a drag without moving anything

	// Navigation
	PrevColumn string `yaml:"prev_column"`
	NextColumn string `yaml:"next_column"`
	PrevTask   string `yaml:"prev_task"`
	NextTask   string `yaml:"next_task"`

	// Editing
	NewTask      string `yaml:"new_task"`
	EditTask     string `yaml:"edit_task"`
	RenameColumn string `yaml:"rename_column"`
	SaveForm     string `yaml:"save_form"` // submit the open form without reaching the confirm field

	// Other
	ViewTask string `yaml:"view_task"`
	Refresh  string `yaml:"refresh"`
	ShowHelp string `yaml:"show_help"`
	Quit     string `yaml:"quit"`
}

// DefaultKeyMappings returns the default key mappings
func DefaultKeyMappings() KeyMappings {
	return KeyMappings{
		Grab:   "space",
		Cancel: "esc",

		PrevColumn: "h",
		NextColumn: "l",
		PrevTask:   "k",
		NextTask:   "j",

		NewTask:      "n",
		EditTask:     "e",
		RenameColumn: "R",
		SaveForm:     "ctrl+s",

		ViewTask: "enter",
		Refresh:  "r",
		ShowHelp: "?",
		Quit:     "q",
	}
}

// applyDefaults fills in missing key mappings with defaults
func (k *KeyMappings) applyDefaults() {
	defaults := DefaultKeyMappings()

	fill := func(dst *string, def string) {
		if *dst == "" {
			*dst = def
		}
	}
	fill(&k.Grab, defaults.Grab)
	fill(&k.Cancel, defaults.Cancel)
	fill(&k.PrevColumn, defaults.PrevColumn)
	fill(&k.NextColumn, defaults.NextColumn)
	fill(&k.PrevTask, defaults.PrevTask)
	fill(&k.NextTask, defaults.NextTask)
	fill(&k.NewTask, defaults.NewTask)
	fill(&k.EditTask, defaults.EditTask)
	fill(&k.RenameColumn, defaults.RenameColumn)
	fill(&k.SaveForm, defaults.SaveForm)
	fill(&k.ViewTask, defaults.ViewTask)
	fill(&k.Refresh, defaults.Refresh)
	fill(&k.ShowHelp, defaults.ShowHelp)
	fill(&k.Quit, defaults.Quit)
}
