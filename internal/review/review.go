// Package review holds the Review & Annotate phase state: a chat with the
// analysis assistant and a list of free-form notes. Both live only as long
// as the phase is mounted.
package review

import (
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"
)

// Sender identifies who wrote a chat message.
type Sender string

const (
	SenderUser   Sender = "user"
	SenderSystem Sender = "system"
)

const (
	// WelcomeMessage opens every review session.
	WelcomeMessage = "Welcome! Let's review and annotate the documents. What do you notice about the images?"
	// AcknowledgeMessage is the canned reply to every user observation.
	AcknowledgeMessage = "Thank you for your observation. I've added it to our analysis."
	// DefaultReplyDelay is how long the assistant "thinks" before replying.
	DefaultReplyDelay = time.Second
)

// Message is one chat entry.
type Message struct {
	Text   string
	Sender Sender
}

// Session is the per-mount review state.
type Session struct {
	Messages []Message
	Notes    []string
}

// NewSession returns a session seeded with the welcome message.
func NewSession() *Session {
	return &Session{
		Messages: []Message{{Text: WelcomeMessage, Sender: SenderSystem}},
	}
}

// clean trims and NFC-normalises user input so accented names typed on
// different keyboards compare equal.
func clean(text string) string {
	return norm.NFC.String(strings.TrimSpace(text))
}

// Send appends a user message. Blank input is ignored and Send returns
// false; otherwise the caller should schedule Acknowledge after the reply
// delay.
func (s *Session) Send(text string) bool {
	text = clean(text)
	if text == "" {
		return false
	}
	s.Messages = append(s.Messages, Message{Text: text, Sender: SenderUser})
	return true
}

// Acknowledge appends the assistant's canned reply.
func (s *Session) Acknowledge() {
	s.Messages = append(s.Messages, Message{Text: AcknowledgeMessage, Sender: SenderSystem})
}

// AddNote appends a note. Blank input is ignored and AddNote returns false.
func (s *Session) AddNote(text string) bool {
	text = clean(text)
	if text == "" {
		return false
	}
	s.Notes = append(s.Notes, text)
	return true
}

// Observations returns the user's chat messages in order.
func (s *Session) Observations() []string {
	var out []string
	for _, m := range s.Messages {
		if m.Sender == SenderUser {
			out = append(out, m.Text)
		}
	}
	return out
}
