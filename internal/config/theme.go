package config

// Theme defines the TUI colors
type Theme struct {
	// Preset name ("default" or "monochrome") used for any unset color
	Preset string `yaml:"preset"`

	Accent         string `yaml:"accent"`          // titles, selection
	ColumnBorder   string `yaml:"column_border"`
	TaskBorder     string `yaml:"task_border"`
	SelectedBorder string `yaml:"selected_border"`
	DragBorder     string `yaml:"drag_border"` // drop cursor while a task is grabbed
	Subtle         string `yaml:"subtle"`
	Normal         string `yaml:"normal"`
	ErrorFg        string `yaml:"error_fg"`
}

// DefaultTheme returns the purple theme
func DefaultTheme() Theme {
	return Theme{
		Preset:         "default",
		Accent:         "#874BFD",
		ColumnBorder:   "#5F87D7",
		TaskBorder:     "#585858",
		SelectedBorder: "#D75FD7",
		DragBorder:     "#5FD75F",
		Subtle:         "#585858",
		Normal:         "#D0D0D0",
		ErrorFg:        "#FF0000",
	}
}

// MonochromeTheme returns a black and white theme
func MonochromeTheme() Theme {
	return Theme{
		Preset:         "monochrome",
		Accent:         "#FFFFFF",
		ColumnBorder:   "#808080",
		TaskBorder:     "#606060",
		SelectedBorder: "#FFFFFF",
		DragBorder:     "#C0C0C0",
		Subtle:         "#808080",
		Normal:         "#D0D0D0",
		ErrorFg:        "#FFFFFF",
	}
}

// presetTheme returns a preset by name, falling back to the default
func presetTheme(name string) Theme {
	if name == "monochrome" {
		return MonochromeTheme()
	}
	return DefaultTheme()
}

// applyDefaults fills unset colors from the selected preset
func (t *Theme) applyDefaults() {
	preset := presetTheme(t.Preset)
	if t.Preset == "" {
		t.Preset = preset.Preset
	}

	fill := func(dst *string, def string) {
		if *dst == "" {
			*dst = def
		}
	}
	fill(&t.Accent, preset.Accent)
	fill(&t.ColumnBorder, preset.ColumnBorder)
	fill(&t.TaskBorder, preset.TaskBorder)
	fill(&t.SelectedBorder, preset.SelectedBorder)
	fill(&t.DragBorder, preset.DragBorder)
	fill(&t.Subtle, preset.Subtle)
	fill(&t.Normal, preset.Normal)
	fill(&t.ErrorFg, preset.ErrorFg)
}
