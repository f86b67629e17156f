package ui

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	chatsvc "github.com/zhouzirui/quote-chat/internal/service/chat"
)

func TestAppSubmitsAndReflectsStore(t *testing.T) {
	release := make(chan struct{})
	store := chatsvc.NewStore(chatsvc.SenderFunc(func(context.Context, string) (string, error) {
		<-release
		return "Sure, which car?", nil
	}))
	app := NewApp(context.Background(), store)

	var model tea.Model = app
	for _, r := range "quote" {
		model, _ = model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyEnter})

	require.Equal(t, 1, store.State().Len())
	assert.Empty(t, app.composer.Draft())

	// pending transition
	model, _ = model.Update(waitForState(app.updates)())
	assert.Contains(t, model.View(), typingLabel)
	assert.True(t, app.composer.Disabled())

	// further typing is refused while the turn is in flight
	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}})
	assert.Empty(t, app.composer.Draft())

	close(release)
	select {
	case s := <-app.updates:
		model, _ = model.Update(stateMsg(s))
	case <-time.After(2 * time.Second):
		t.Fatal("no completion update")
	}

	view := model.View()
	assert.Contains(t, view, "Sure, which car?")
	assert.NotContains(t, view, typingLabel)
	assert.False(t, app.composer.Disabled())
}

func TestAppQuitKeys(t *testing.T) {
	app := NewApp(context.Background(), chatsvc.NewStore(nil))
	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}
