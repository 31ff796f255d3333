package inject

// Message is one message shown to the user.
type Message struct {
	Title string
	Text  string
}

// MessageDisplayer is an injected message displayer that records what it was asked to show.
type MessageDisplayer struct {
	Shown     []Message
	ErrorFunc func(title, text string)
}

// ShowError records the message and calls the injected ShowError if set.
func (m *MessageDisplayer) ShowError(title, text string) {
	m.Shown = append(m.Shown, Message{Title: title, Text: text})
	if m.ErrorFunc != nil {
		m.ErrorFunc(title, text)
	}
}
