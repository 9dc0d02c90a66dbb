package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type MessageKind string

const (
	MessageSystem MessageKind = "system"
	MessageUser   MessageKind = "user"
)

// ChatMessage is immutable once appended to a room's log.
type ChatMessage struct {
	ID         string       `json:"id"`
	Text       string       `json:"text"`
	SenderID   ConnectionID `json:"senderId,omitempty"`
	SenderName string       `json:"senderName,omitempty"`
	Kind       MessageKind  `json:"kind"`
	CreatedAt  time.Time    `json:"createdAt"`
}

func NewUserMessage(from *Participant, text string, now time.Time) ChatMessage {
	return ChatMessage{
		ID:         uuid.NewString(),
		Text:       text,
		SenderID:   from.ConnectionID,
		SenderName: from.DisplayName,
		Kind:       MessageUser,
		CreatedAt:  now.UTC(),
	}
}

func NewSystemMessage(text string, now time.Time) ChatMessage {
	return ChatMessage{
		ID:        uuid.NewString(),
		Text:      text,
		Kind:      MessageSystem,
		CreatedAt: now.UTC(),
	}
}

func JoinedMessage(p *Participant, asHost bool, now time.Time) ChatMessage {
	text := fmt.Sprintf("%s joined the room", p.DisplayName)
	if asHost {
		text += " as host"
	}
	return NewSystemMessage(text, now)
}

func LeftMessage(p *Participant, now time.Time) ChatMessage {
	return NewSystemMessage(fmt.Sprintf("%s left the room", p.DisplayName), now)
}
