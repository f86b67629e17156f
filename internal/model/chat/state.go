package chat

// State is a point-in-time view of a conversation.
// Pending is true while exactly one turn is in flight.
type State struct {
	Messages []Message `json:"messages"`
	Pending  bool      `json:"pending"`
}

// Len returns the number of logged messages.
func (s State) Len() int {
	return len(s.Messages)
}

// Last returns the most recent message, if any.
func (s State) Last() (Message, bool) {
	if len(s.Messages) == 0 {
		return Message{}, false
	}
	return s.Messages[len(s.Messages)-1], true
}
