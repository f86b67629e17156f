package ui

import (
	"context"
	"strings"

	bspinner "github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/zhouzirui/quote-chat/internal/model/chat"
	chatsvc "github.com/zhouzirui/quote-chat/internal/service/chat"
)

const (
	title       = "Insurance Quote Assistant"
	subtitle    = "Ask me about insurance quotes for your vehicle"
	placeholder = "Type your message... (Press Enter to send)"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	composerStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("63")).Padding(0, 1)
	disabledStyle = composerStyle.BorderForeground(lipgloss.Color("240"))
)

// stateMsg carries a store transition into the program loop.
type stateMsg chat.State

// App is the bubbletea model tying a Composer and a chat.Store together.
type App struct {
	store    *chatsvc.Store
	composer *Composer
	updates  chan chat.State
	spinner  bspinner.Model
	state    chat.State
	width    int
}

// NewApp builds the model and subscribes it to store.
func NewApp(ctx context.Context, store *chatsvc.Store) App {
	updates := make(chan chat.State, 16)
	store.Subscribe(func(s chat.State) { updates <- s })

	sp := bspinner.New()
	sp.Spinner = bspinner.Ellipsis
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("63"))

	return App{
		store: store,
		composer: NewComposer(func(text string) {
			store.SendMessage(ctx, text)
		}),
		updates: updates,
		spinner: sp,
		state:   store.State(),
	}
}

func waitForState(ch <-chan chat.State) tea.Cmd {
	return func() tea.Msg {
		return stateMsg(<-ch)
	}
}

func (m App) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, waitForState(m.updates))
}

func (m App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch ev := msg.(type) {
	case tea.KeyMsg:
		switch ev.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		}
		m.composer.SetDisabled(m.store.Pending())
		m.composer.HandleKey(ev)
		return m, nil
	case stateMsg:
		m.state = chat.State(ev)
		m.composer.SetDisabled(m.state.Pending)
		return m, waitForState(m.updates)
	case tea.WindowSizeMsg:
		m.width = ev.Width
		return m, nil
	case bspinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(ev)
		return m, cmd
	}
	return m, nil
}

func (m App) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n")
	b.WriteString(hintStyle.Render(subtitle))
	b.WriteString("\n\n")
	b.WriteString(Render(m.state, RenderOptions{Width: m.width, TypingFrame: m.spinner.View()}))
	b.WriteString("\n\n")
	b.WriteString(m.composerView())
	return b.String()
}

func (m App) composerView() string {
	style := composerStyle
	if m.composer.Disabled() {
		style = disabledStyle
	}
	if m.width > 4 {
		style = style.Width(m.width - 4)
	}

	draft := m.composer.Draft()
	if draft == "" {
		return style.Render(hintStyle.Render(placeholder))
	}
	return style.Render(draft + "█")
}
