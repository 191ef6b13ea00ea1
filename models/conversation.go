package models

import "time"

type MessageAuthor string

const (
	AuthorUser      MessageAuthor = "user"
	AuthorAssistant MessageAuthor = "assistant"
)

// Offer marks an assistant message that proposed booking a specific activity.
type Offer struct {
	ActivityID string `json:"activityId"`
}

// ConversationMessage is one entry of a session transcript.
type ConversationMessage struct {
	ID        string        `json:"id"`
	Text      string        `json:"text"`
	Author    MessageAuthor `json:"author"`
	Timestamp time.Time     `json:"timestamp"`
	Offer     *Offer        `json:"offer,omitempty"`
}

func (m ConversationMessage) IsUser() bool {
	return m.Author == AuthorUser
}

// ChatMessageRequest is the body of a user turn.
type ChatMessageRequest struct {
	Text string `json:"text" binding:"required"`
}

// ChatSessionResponse describes a session and its transcript.
type ChatSessionResponse struct {
	SessionID string                `json:"sessionId"`
	CreatedAt time.Time             `json:"createdAt"`
	Messages  []ConversationMessage `json:"messages"`
}

// ChatTurnResponse is returned after a completed turn.
type ChatTurnResponse struct {
	UserMessage      ConversationMessage `json:"userMessage"`
	AssistantMessage ConversationMessage `json:"assistantMessage"`
	Booking          *BookingOutcomeView `json:"booking,omitempty"`
}

// BookingOutcomeView exposes the result of a booking attempt made during a turn.
type BookingOutcomeView struct {
	Outcome    string   `json:"outcome"`
	ActivityID string   `json:"activityId"`
	Booking    *Booking `json:"booking,omitempty"`
	Position   int      `json:"position,omitempty"`
}
