package domain

import (
	"time"

	"github.com/google/uuid"
)

// MessageType tags the kind of an outbound chat message.
type MessageType string

const (
	// MessageText is a plain assistant text chunk.
	MessageText MessageType = "text"
	// MessageHotelCard carries a structured hotel card.
	MessageHotelCard MessageType = "hotel_card"
	// MessageError is a user-facing failure notice.
	MessageError MessageType = "error"
)

// Message is a single outbound chat message. The transport layer is its sole
// consumer and must preserve the order messages were produced in.
type Message struct {
	ID        string      `json:"id"`
	Type      MessageType `json:"type"`
	Sender    string      `json:"sender"`
	Content   string      `json:"content,omitempty"`
	Hotel     *Hotel      `json:"hotel,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// NewTextMessage creates an assistant text message.
func NewTextMessage(content string) Message {
	return Message{
		ID:        uuid.NewString(),
		Type:      MessageText,
		Sender:    "assistant",
		Content:   content,
		Timestamp: time.Now(),
	}
}

// NewHotelCard creates a structured hotel card message.
func NewHotelCard(h Hotel) Message {
	return Message{
		ID:        uuid.NewString(),
		Type:      MessageHotelCard,
		Sender:    "assistant",
		Hotel:     &h,
		Timestamp: time.Now(),
	}
}

// NewErrorMessage creates a user-facing error message.
func NewErrorMessage(content string) Message {
	return Message{
		ID:        uuid.NewString(),
		Type:      MessageError,
		Sender:    "assistant",
		Content:   content,
		Timestamp: time.Now(),
	}
}
