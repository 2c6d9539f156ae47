package config

// Theme holds the colors used by the board and task renderers
type Theme struct {
	// Preset name ("default" or "monochrome")
	Preset string `yaml:"preset"`

	Accent       string `yaml:"accent"` // Column headers
	ColumnBorder string `yaml:"column_border"`
	TaskBorder   string `yaml:"task_border"`
	Title        string `yaml:"title"`
	Subtle       string `yaml:"subtle"` // Positions, timestamps, empty columns
	Normal       string `yaml:"normal"`
	Success      string `yaml:"success"`
	Error        string `yaml:"error"`
}

// DefaultTheme returns the purple theme
func DefaultTheme() Theme {
	return Theme{
		Preset:       "default",
		Accent:       "#874BFD",
		ColumnBorder: "#5F87D7",
		TaskBorder:   "#585858",
		Title:        "#D75FD7",
		Subtle:       "#585858",
		Normal:       "#D0D0D0",
		Success:      "#5FD75F",
		Error:        "#FF0000",
	}
}

// MonochromeTheme returns a black and white theme
func MonochromeTheme() Theme {
	return Theme{
		Preset:       "monochrome",
		Accent:       "#FFFFFF",
		ColumnBorder: "#FFFFFF",
		TaskBorder:   "#585858",
		Title:        "#FFFFFF",
		Subtle:       "#585858",
		Normal:       "#D0D0D0",
		Success:      "#FFFFFF",
		Error:        "#FFFFFF",
	}
}

// GetPreset returns a preset theme by name
func GetPreset(name string) Theme {
	switch name {
	case "monochrome":
		return MonochromeTheme()
	default:
		return DefaultTheme()
	}
}

// ApplyDefaults fills in missing colors from the preset
func (t *Theme) ApplyDefaults() {
	preset := GetPreset(t.Preset)

	if t.Preset == "" {
		t.Preset = preset.Preset
	}
	fill := func(dst *string, v string) {
		if *dst == "" {
			*dst = v
		}
	}
	fill(&t.Accent, preset.Accent)
	fill(&t.ColumnBorder, preset.ColumnBorder)
	fill(&t.TaskBorder, preset.TaskBorder)
	fill(&t.Title, preset.Title)
	fill(&t.Subtle, preset.Subtle)
	fill(&t.Normal, preset.Normal)
	fill(&t.Success, preset.Success)
	fill(&t.Error, preset.Error)
}
