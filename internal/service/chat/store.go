package chat

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/zhouzirui/quote-chat/internal/model/chat"
)

// Fixed assistant texts. Raw errors never reach the conversation log.
const (
	EmptyReplyText = "I apologize, but I could not generate a response."
	FailureText    = "Sorry, I encountered an error. Please try again."
)

// Sender dispatches one turn and returns the assistant reply text.
type Sender interface {
	SendTurn(ctx context.Context, text string) (string, error)
}

// SenderFunc adapts a function to Sender.
type SenderFunc func(ctx context.Context, text string) (string, error)

// SendTurn calls f.
func (f SenderFunc) SendTurn(ctx context.Context, text string) (string, error) {
	return f(ctx, text)
}

// Listener observes state after every transition.
type Listener func(chat.State)

// Store is the sole owner of the conversation log. It is Idle when no turn is
// in flight and Sending while exactly one is.
type Store struct {
	mu        sync.Mutex
	messages  []chat.Message
	pending   bool
	sender    Sender
	listeners []Listener
	logger    zerolog.Logger
	now       func() time.Time
	newID     func() string
}

// Option customises a Store.
type Option func(*Store)

// WithLogger sets the logger used for turn failures.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Store) {
		s.logger = l
	}
}

// WithClock overrides the message timestamp source.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// NewStore creates an empty, idle conversation that dispatches turns through sender.
func NewStore(sender Sender, opts ...Option) *Store {
	s := &Store{
		messages: make([]chat.Message, 0, 16),
		sender:   sender,
		logger:   zerolog.Nop(),
		now:      time.Now,
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Subscribe registers l for state changes.
func (s *Store) Subscribe(l Listener) {
	s.mu.Lock()
	s.listeners = append(s.listeners, l)
	s.mu.Unlock()
}

// State returns a copy of the current conversation state.
func (s *Store) State() chat.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Pending reports whether a turn is in flight.
func (s *Store) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending
}

// SendMessage appends text as a user message and dispatches the turn.
//
// It is a no-op returning ok=false when the trimmed text is empty or another
// turn is in flight. Otherwise the user message is logged before SendMessage
// returns and done is closed once the assistant reply has been appended.
// The turn is not cancelled by ctx.
func (s *Store) SendMessage(ctx context.Context, text string) (done <-chan struct{}, ok bool) {
	content := strings.TrimSpace(text)
	if content == "" {
		return nil, false
	}

	s.mu.Lock()
	if s.pending {
		s.mu.Unlock()
		return nil, false
	}
	s.appendLocked(chat.RoleUser, content)
	s.pending = true
	state, listeners := s.snapshotLocked(), s.listeners
	s.mu.Unlock()

	notify(listeners, state)

	finished := make(chan struct{})
	go s.dispatch(context.WithoutCancel(ctx), content, finished)
	return finished, true
}

func (s *Store) dispatch(ctx context.Context, content string, finished chan<- struct{}) {
	defer close(finished)

	reply, err := s.sender.SendTurn(ctx, content)
	switch {
	case err != nil:
		s.logger.Debug().Err(err).Msg("turn failed")
		reply = FailureText
	case strings.TrimSpace(reply) == "":
		reply = EmptyReplyText
	}

	s.mu.Lock()
	s.appendLocked(chat.RoleAssistant, reply)
	s.pending = false
	state, listeners := s.snapshotLocked(), s.listeners
	s.mu.Unlock()

	notify(listeners, state)
}

func (s *Store) appendLocked(role chat.Role, content string) {
	s.messages = append(s.messages, chat.Message{
		ID:        s.newID(),
		Role:      role,
		Content:   content,
		Timestamp: s.now(),
	})
}

func (s *Store) snapshotLocked() chat.State {
	copied := make([]chat.Message, len(s.messages))
	copy(copied, s.messages)
	return chat.State{Messages: copied, Pending: s.pending}
}

func notify(listeners []Listener, state chat.State) {
	for _, l := range listeners {
		l(state)
	}
}
