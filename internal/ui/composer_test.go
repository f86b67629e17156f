package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
)

func typeText(c *Composer, text string) {
	for _, r := range text {
		if r == ' ' {
			c.HandleKey(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
			continue
		}
		c.HandleKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func TestComposerEnterSubmitsTrimmedDraft(t *testing.T) {
	var sent []string
	c := NewComposer(func(s string) { sent = append(sent, s) })

	typeText(c, "  full cover  ")
	submitted := c.HandleKey(tea.KeyMsg{Type: tea.KeyEnter})

	assert.True(t, submitted)
	assert.Equal(t, []string{"full cover"}, sent)
	assert.Empty(t, c.Draft())
}

func TestComposerModifiedEnterInsertsNewline(t *testing.T) {
	var sent []string
	c := NewComposer(func(s string) { sent = append(sent, s) })

	typeText(c, "line one")
	assert.False(t, c.HandleKey(tea.KeyMsg{Type: tea.KeyEnter, Alt: true}))
	typeText(c, "two")

	assert.Empty(t, sent)
	assert.Equal(t, "line one\ntwo", c.Draft())

	c.HandleKey(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, []string{"line one\ntwo"}, sent)
}

func TestComposerBlankDraftIsNotSubmitted(t *testing.T) {
	calls := 0
	c := NewComposer(func(string) { calls++ })

	assert.False(t, c.Submit())
	typeText(c, "   ")
	c.Newline()
	assert.False(t, c.HandleKey(tea.KeyMsg{Type: tea.KeyEnter}))

	assert.Zero(t, calls)
	assert.Equal(t, "   \n", c.Draft())
}

func TestComposerDisabled(t *testing.T) {
	calls := 0
	c := NewComposer(func(string) { calls++ })
	typeText(c, "quote")

	c.SetDisabled(true)
	typeText(c, "more")
	c.Backspace()
	assert.False(t, c.Submit())
	assert.Equal(t, "quote", c.Draft())
	assert.Zero(t, calls)

	c.SetDisabled(false)
	assert.True(t, c.Submit())
	assert.Equal(t, 1, calls)
}

func TestComposerBackspace(t *testing.T) {
	c := NewComposer(nil)
	typeText(c, "héllo")
	c.HandleKey(tea.KeyMsg{Type: tea.KeyBackspace})
	assert.Equal(t, "héll", c.Draft())

	c = NewComposer(nil)
	c.Backspace()
	assert.Empty(t, c.Draft())
}

func TestComposerPastedTextIsLiteral(t *testing.T) {
	calls := 0
	c := NewComposer(func(string) { calls++ })
	c.HandleKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("enter"), Paste: true})

	assert.Zero(t, calls)
	assert.Equal(t, "enter", c.Draft())
}
