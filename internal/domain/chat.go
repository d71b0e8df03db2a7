package domain

import (
	"slices"
	"time"
)

type ChatRole string

const (
	RoleUser  ChatRole = "user"
	RoleModel ChatRole = "model"
)

const (
	StylistPersona  = "You are a world-class fashion stylist named Mira. Be helpful, trendy, and concise. Use emojis."
	StylistGreeting = "Hey! I'm Mira, your personal stylist. Need help with an outfit today? ✨"
	StylistApology  = "Oops! I'm having trouble connecting to the fashion servers. Try again?"
)

// ChatMessage is one turn of the stylist conversation.
type ChatMessage struct {
	ID        string    `json:"id"`
	Role      ChatRole  `json:"role"`
	Text      string    `json:"text"`
	Image     string    `json:"image,omitempty"`
	IsTyping  bool      `json:"is_typing,omitempty"`
	Fallback  bool      `json:"fallback,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Conversation is the whole stylist state handed to the AI gateway on every
// turn: persona plus the turns accumulated so far.
type Conversation struct {
	Persona  string        `json:"-"`
	Messages []ChatMessage `json:"messages"`
}

func (c Conversation) Clone() Conversation {
	return Conversation{Persona: c.Persona, Messages: slices.Clone(c.Messages)}
}

// History returns the completed exchanges the model should see. The seeded
// greeting, typing placeholders and failed exchanges (a user turn answered by
// the fallback apology) are left out, so roles keep alternating.
func (c Conversation) History() []ChatMessage {
	out := make([]ChatMessage, 0, len(c.Messages))
	for i, m := range c.Messages {
		if i == 0 && m.Role == RoleModel {
			continue
		}
		if m.IsTyping || m.Fallback {
			continue
		}
		if m.Role == RoleUser && i+1 < len(c.Messages) && c.Messages[i+1].Fallback {
			continue
		}
		out = append(out, m)
	}
	return out
}
