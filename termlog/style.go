package termlog

import "github.com/charmbracelet/lipgloss"

// Styles describes the appearance of each visual element of a rendered log
// line. It is pure data; zero values render plain text.
//
// Levels holds the style applied to each severity label. Messages optionally
// overrides the style applied to the message text of events at a given
// severity; levels without an entry fall back to Default.
type Styles struct {
	Default   lipgloss.Style
	Timestamp lipgloss.Style
	Levels    map[Level]lipgloss.Style
	Messages  map[Level]lipgloss.Style
}

// DefaultStyles returns the default style set: a plain default style, a
// faint timestamp, and one label style per severity (bold red errors, bold
// amber warnings, bold green info, bold blue debug, dim magenta trace).
func DefaultStyles() Styles {
	return Styles{
		Default:   lipgloss.NewStyle(),
		Timestamp: lipgloss.NewStyle().Faint(true),
		Levels: map[Level]lipgloss.Style{
			LevelError: lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
			LevelWarn:  lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true),
			LevelInfo:  lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
			LevelDebug: lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true),
			LevelTrace: lipgloss.NewStyle().Foreground(lipgloss.Color("13")).Faint(true),
		},
	}
}

// level returns the label style for l, falling back to Default.
func (s Styles) level(l Level) lipgloss.Style {
	if st, ok := s.Levels[l]; ok {
		return st
	}

	return s.Default
}

// message returns the message style for l, falling back to Default.
func (s Styles) message(l Level) lipgloss.Style {
	if st, ok := s.Messages[l]; ok {
		return st
	}

	return s.Default
}

// clone deep-copies the style maps so a built Writer cannot be affected by
// later mutation of the source maps.
func (s Styles) clone() Styles {
	out := s

	if s.Levels != nil {
		out.Levels = make(map[Level]lipgloss.Style, len(s.Levels))
		for k, v := range s.Levels {
			out.Levels[k] = v
		}
	}

	if s.Messages != nil {
		out.Messages = make(map[Level]lipgloss.Style, len(s.Messages))
		for k, v := range s.Messages {
			out.Messages[k] = v
		}
	}

	return out
}
