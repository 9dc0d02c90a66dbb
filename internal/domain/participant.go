// Package domain contains entity without logic, just meta-data
package domain

import (
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
)

const MaxDisplayNameLen = 36

var (
	ErrDisplayNameTooLong = errors.New("display name too long")
	ErrDisplayNameEmpty   = errors.New("display name empty")
)

// ConnectionID identifies one joined connection. It is minted on join and
// never reused, so a reconnecting client always gets a fresh one.
type ConnectionID string

type Participant struct {
	ConnectionID ConnectionID `json:"connectionId"`
	DisplayName  string       `json:"displayName"`
}

// NewParticipant validates the display name and assigns a fresh connection id.
func NewParticipant(displayName string) (*Participant, error) {
	name, err := NormalizeDisplayName(displayName)
	if err != nil {
		return nil, err
	}
	id := ConnectionID(uuid.NewString())
	return &Participant{ConnectionID: id, DisplayName: name}, nil
}

func NormalizeDisplayName(displayName string) (string, error) {
	name := strings.TrimSpace(displayName)
	if len(name) == 0 {
		return "", ErrDisplayNameEmpty
	}
	if utf8.RuneCountInString(name) > MaxDisplayNameLen {
		return "", ErrDisplayNameTooLong
	}
	return name, nil
}
