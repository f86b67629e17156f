package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// Composer holds the user's draft and decides when it is submitted.
//
// Plain enter submits. A modified enter inserts a newline instead. Nothing is
// submitted while the draft is blank or the composer is disabled.
type Composer struct {
	draft    []rune
	disabled bool
	onSend   func(string)
}

// NewComposer returns an enabled composer handing submissions to onSend.
func NewComposer(onSend func(string)) *Composer {
	return &Composer{onSend: onSend}
}

// Draft returns the current, untrimmed draft.
func (c *Composer) Draft() string {
	return string(c.draft)
}

// Disabled reports whether input is currently refused.
func (c *Composer) Disabled() bool {
	return c.disabled
}

// SetDisabled toggles the input surface, typically while a turn is in flight.
func (c *Composer) SetDisabled(disabled bool) {
	c.disabled = disabled
}

// Insert appends text to the draft.
func (c *Composer) Insert(text string) {
	if c.disabled {
		return
	}
	c.draft = append(c.draft, []rune(text)...)
}

// Newline appends a literal line break.
func (c *Composer) Newline() {
	c.Insert("\n")
}

// Backspace removes the last rune of the draft.
func (c *Composer) Backspace() {
	if c.disabled || len(c.draft) == 0 {
		return
	}
	c.draft = c.draft[:len(c.draft)-1]
}

// Submit hands the trimmed draft to onSend and clears the draft. It reports
// false and changes nothing when the draft is blank or the composer is
// disabled.
func (c *Composer) Submit() bool {
	if c.disabled {
		return false
	}
	text := strings.TrimSpace(string(c.draft))
	if text == "" {
		return false
	}
	c.draft = c.draft[:0]
	if c.onSend != nil {
		c.onSend(text)
	}
	return true
}

// HandleKey applies a key press and reports whether it caused a submission.
func (c *Composer) HandleKey(msg tea.KeyMsg) bool {
	if msg.Type == tea.KeyRunes {
		c.Insert(string(msg.Runes))
		return false
	}

	switch msg.String() {
	case "enter":
		return c.Submit()
	case "alt+enter", "shift+enter", "ctrl+j":
		c.Newline()
	case "backspace", "ctrl+h":
		c.Backspace()
	default:
		switch msg.Type {
		case tea.KeySpace:
			c.Insert(" ")
		case tea.KeyTab:
			c.Insert("\t")
		}
	}
	return false
}
