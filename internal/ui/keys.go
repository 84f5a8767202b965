package ui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/TimelordUK/setlist/internal/config"
)

// Button identifies one of the two pedal switches
type Button int

const (
	ButtonLeft Button = iota
	ButtonRight
)

// PressKind distinguishes a tap from a held press
type PressKind int

const (
	Press PressKind = iota
	LongPress
)

// Event is a debounced button event
type Event struct {
	Button Button
	Kind   PressKind
}

// KeyMap binds terminal keys to button events
type KeyMap struct {
	Left      key.Binding
	Right     key.Binding
	LeftLong  key.Binding
	RightLong key.Binding
	Quit      key.Binding
}

// NewKeyMap builds the key map from config
func NewKeyMap(cfg config.KeybindingConfig) KeyMap {
	return KeyMap{
		Left: key.NewBinding(
			key.WithKeys(cfg.Left...),
			key.WithHelp(first(cfg.Left), "left"),
		),
		Right: key.NewBinding(
			key.WithKeys(cfg.Right...),
			key.WithHelp(first(cfg.Right), "right"),
		),
		LeftLong: key.NewBinding(
			key.WithKeys(cfg.LeftLong...),
			key.WithHelp(first(cfg.LeftLong), "hold left"),
		),
		RightLong: key.NewBinding(
			key.WithKeys(cfg.RightLong...),
			key.WithHelp(first(cfg.RightLong), "hold right"),
		),
		Quit: key.NewBinding(
			key.WithKeys(cfg.Quit...),
			key.WithHelp(first(cfg.Quit), "quit"),
		),
	}
}

// Resolve maps a key press onto a button event
func (k KeyMap) Resolve(msg tea.KeyMsg) (Event, bool) {
	switch {
	case key.Matches(msg, k.LeftLong):
		return Event{ButtonLeft, LongPress}, true
	case key.Matches(msg, k.RightLong):
		return Event{ButtonRight, LongPress}, true
	case key.Matches(msg, k.Left):
		return Event{ButtonLeft, Press}, true
	case key.Matches(msg, k.Right):
		return Event{ButtonRight, Press}, true
	}
	return Event{}, false
}

// ShortHelp implements help.KeyMap
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Left, k.Right, k.LeftLong, k.RightLong, k.Quit}
}

// FullHelp implements help.KeyMap
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

func first(keys []string) string {
	if len(keys) == 0 {
		return ""
	}
	return keys[0]
}
