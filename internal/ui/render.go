package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/zhouzirui/quote-chat/internal/model/chat"
)

const (
	emptyHint    = "Start a conversation by asking about insurance quotes!"
	emptyExample = `Try: "I want full insurance for my car"`
	typingLabel  = "Assistant is typing"
	timeLayout   = "15:04"
	defaultWidth = 80
)

var (
	userBubble = lipgloss.NewStyle().
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("62")).
			Padding(0, 1)
	assistantBubble = lipgloss.NewStyle().
			Foreground(lipgloss.Color("236")).
			Background(lipgloss.Color("254")).
			Padding(0, 1)
	metaStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	hintStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	emptyStyle = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("247"))
)

// RenderOptions controls presentation only.
type RenderOptions struct {
	Width int
	// TypingFrame is appended to the typing indicator, e.g. a spinner frame.
	TypingFrame string
}

// Render projects state into a transcript. User messages are right-aligned,
// assistant messages left-aligned, and a typing indicator is shown exactly
// when a turn is pending.
func Render(state chat.State, opts RenderOptions) string {
	width := opts.Width
	if width <= 0 {
		width = defaultWidth
	}
	bubbleWidth := width * 3 / 4

	if len(state.Messages) == 0 && !state.Pending {
		return lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.JoinVertical(lipgloss.Center, hintStyle.Render(emptyHint), emptyStyle.Render(emptyExample)))
	}

	blocks := make([]string, 0, len(state.Messages)+1)
	for _, m := range state.Messages {
		blocks = append(blocks, renderMessage(m, width, bubbleWidth))
	}

	if state.Pending {
		indicator := typingLabel
		if frame := strings.TrimSpace(opts.TypingFrame); frame != "" {
			indicator += " " + frame
		} else {
			indicator += "..."
		}
		blocks = append(blocks, assistantBubble.Render(indicator))
	}

	return strings.Join(blocks, "\n\n")
}

func renderMessage(m chat.Message, width, bubbleWidth int) string {
	meta := metaStyle.Render(m.Timestamp.Format(timeLayout))

	if m.Role == chat.RoleUser {
		bubble := userBubble.MaxWidth(bubbleWidth).Render(wrap(m.Content, bubbleWidth-2))
		block := lipgloss.JoinVertical(lipgloss.Right, bubble, meta)
		return lipgloss.PlaceHorizontal(width, lipgloss.Right, block)
	}

	bubble := assistantBubble.MaxWidth(bubbleWidth).Render(wrap(m.Content, bubbleWidth-2))
	return lipgloss.JoinVertical(lipgloss.Left, bubble, meta)
}

func wrap(text string, width int) string {
	if width <= 0 || lipgloss.Width(text) <= width {
		return text
	}
	return lipgloss.NewStyle().Width(width).Render(text)
}
