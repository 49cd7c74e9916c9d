package notifications

import "github.com/thenoetrevino/taskboard/internal/config"

type style struct {
	icon       string
	title      string
	foreground string
	border     string
}

func (s Severity) style(colors config.ColorScheme) style {
	switch s {
	case Warning:
		return style{
			icon:       "⚠",
			title:      "Warning",
			foreground: colors.WarningFg,
			border:     colors.WarningFg,
		}
	case Error:
		return style{
			icon:       "✕",
			title:      "Error",
			foreground: colors.ErrorFg,
			border:     colors.ErrorFg,
		}
	default:
		return style{
			icon:       "🔔",
			title:      "Info",
			foreground: colors.InfoFg,
			border:     colors.InfoFg,
		}
	}
}
