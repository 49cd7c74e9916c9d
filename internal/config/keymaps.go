package config

// KeyMappings defines all configurable key bindings
type KeyMappings struct {
	// Navigation
	PrevColumn string `yaml:"prev_column"`
	NextColumn string `yaml:"next_column"`
	PrevTask   string `yaml:"prev_task"`
	NextTask   string `yaml:"next_task"`

	// Moving a task: grab it, steer it with the navigation keys, drop it
	Grab   string `yaml:"grab"`
	Drop   string `yaml:"drop"`
	Cancel string `yaml:"cancel"`

	// Board
	Refresh  string `yaml:"refresh"`
	ViewTask string `yaml:"view_task"`

	// Notifications
	ToggleNotifications string `yaml:"toggle_notifications"`
	ClearNotifications  string `yaml:"clear_notifications"`

	// Other
	ShowHelp string `yaml:"show_help"`
	Quit     string `yaml:"quit"`
}

// DefaultKeyMappings returns the default key mappings
func DefaultKeyMappings() KeyMappings {
	return KeyMappings{
		PrevColumn: "h",
		NextColumn: "l",
		PrevTask:   "k",
		NextTask:   "j",

		Grab:   "space",
		Drop:   "enter",
		Cancel: "esc",

		Refresh:  "r",
		ViewTask: "v",

		ToggleNotifications: "n",
		ClearNotifications:  "c",

		ShowHelp: "?",
		Quit:     "q",
	}
}

// applyDefaults fills in missing key mappings with defaults
func (k *KeyMappings) applyDefaults() {
	defaults := DefaultKeyMappings()

	fill := func(v *string, d string) {
		if *v == "" {
			*v = d
		}
	}
	fill(&k.PrevColumn, defaults.PrevColumn)
	fill(&k.NextColumn, defaults.NextColumn)
	fill(&k.PrevTask, defaults.PrevTask)
	fill(&k.NextTask, defaults.NextTask)
	fill(&k.Grab, defaults.Grab)
	fill(&k.Drop, defaults.Drop)
	fill(&k.Cancel, defaults.Cancel)
	fill(&k.Refresh, defaults.Refresh)
	fill(&k.ViewTask, defaults.ViewTask)
	fill(&k.ToggleNotifications, defaults.ToggleNotifications)
	fill(&k.ClearNotifications, defaults.ClearNotifications)
	fill(&k.ShowHelp, defaults.ShowHelp)
	fill(&k.Quit, defaults.Quit)
}
