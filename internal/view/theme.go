package view

import "strings"

// Theme selects the terminal palette.
type Theme int

const (
	Light Theme = iota
	Dark
)

// ParseTheme accepts "light" or "dark"; anything else is Light.
func ParseTheme(s string) Theme {
	if strings.EqualFold(strings.TrimSpace(s), "dark") {
		return Dark
	}
	return Light
}

func (t Theme) Toggle() Theme {
	if t == Dark {
		return Light
	}
	return Dark
}

func (t Theme) String() string {
	if t == Dark {
		return "dark"
	}
	return "light"
}

type palette struct {
	title string
	text  string
	muted string
	error string
	reset string
}

func (t Theme) palette() palette {
	const reset = "\x1b[0m"
	if t == Dark {
		return palette{
			title: "\x1b[1;96m",
			text:  "\x1b[97m",
			muted: "\x1b[37m",
			error: "\x1b[91m",
			reset: reset,
		}
	}
	return palette{
		title: "\x1b[1;34m",
		text:  "\x1b[30m",
		muted: "\x1b[90m",
		error: "\x1b[31m",
		reset: reset,
	}
}

// plain disables color, e.g. when output is not a terminal.
var plain = palette{}
