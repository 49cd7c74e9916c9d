package config

// ColorScheme defines all configurable color values
type ColorScheme struct {
	// Preset name: "dark", "light" or "monochrome"
	Preset string `yaml:"preset"`

	Accent         string `yaml:"accent"`
	ColumnBorder   string `yaml:"column_border"`
	SelectedBorder string `yaml:"selected_border"`
	GrabbedBorder  string `yaml:"grabbed_border"`

	Title  string `yaml:"title"`
	Subtle string `yaml:"subtle"`
	Normal string `yaml:"normal"`

	InfoFg    string `yaml:"info_fg"`
	WarningFg string `yaml:"warning_fg"`
	ErrorFg   string `yaml:"error_fg"`
}

// Preset returns a preset color scheme by name. "system" and unknown names
// fall back to dark.
func Preset(name string) ColorScheme {
	switch name {
	case "light":
		return ColorScheme{
			Preset:         "light",
			Accent:         "#624C83",
			ColumnBorder:   "#766B90",
			SelectedBorder: "#4E8CA2",
			GrabbedBorder:  "#CC6D00",
			Title:          "#4D699B",
			Subtle:         "#8A8980",
			Normal:         "#545464",
			InfoFg:         "#597B75",
			WarningFg:      "#CC6D00",
			ErrorFg:        "#C84053",
		}
	case "monochrome":
		return ColorScheme{
			Preset:         "monochrome",
			Accent:         "#FFFFFF",
			ColumnBorder:   "#808080",
			SelectedBorder: "#FFFFFF",
			GrabbedBorder:  "#FFFFFF",
			Title:          "#FFFFFF",
			Subtle:         "#808080",
			Normal:         "#D0D0D0",
			InfoFg:         "#D0D0D0",
			WarningFg:      "#FFFFFF",
			ErrorFg:        "#FFFFFF",
		}
	default:
		return ColorScheme{
			Preset:         "dark",
			Accent:         "#874BFD",
			ColumnBorder:   "#5F87D7",
			SelectedBorder: "#D75FD7",
			GrabbedBorder:  "#FFD700",
			Title:          "#D75FD7",
			Subtle:         "#585858",
			Normal:         "#D0D0D0",
			InfoFg:         "#00AFFF",
			WarningFg:      "#FFD700",
			ErrorFg:        "#FF0000",
		}
	}
}

// ApplyDefaults fills in missing color values from the preset
func (c *ColorScheme) ApplyDefaults() {
	p := Preset(c.Preset)
	if c.Preset == "" {
		c.Preset = p.Preset
	}

	fill := func(v *string, d string) {
		if *v == "" {
			*v = d
		}
	}
	fill(&c.Accent, p.Accent)
	fill(&c.ColumnBorder, p.ColumnBorder)
	fill(&c.SelectedBorder, p.SelectedBorder)
	fill(&c.GrabbedBorder, p.GrabbedBorder)
	fill(&c.Title, p.Title)
	fill(&c.Subtle, p.Subtle)
	fill(&c.Normal, p.Normal)
	fill(&c.InfoFg, p.InfoFg)
	fill(&c.WarningFg, p.WarningFg)
	fill(&c.ErrorFg, p.ErrorFg)
}
