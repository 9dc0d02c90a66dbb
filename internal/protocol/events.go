package protocol

import (
	"github.com/dkeye/CodeRoom/internal/core"
	"github.com/dkeye/CodeRoom/internal/domain"
)

type EventKind string

const (
	EvAssignedConnectionID EventKind = "assignedConnectionId"
	EvHostStatus           EventKind = "hostStatus"
	EvRoster               EventKind = "roster"
	EvChatMessage          EventKind = "chatMessage"
	EvChatHistory          EventKind = "chatHistory"
	EvCodeBuffer           EventKind = "codeBuffer"
	EvOutputBuffer         EventKind = "outputBuffer"
	EvPong                 EventKind = "pong"
)

type Event interface {
	Kind() EventKind
}

type AssignedConnectionID struct {
	Type         EventKind           `json:"type"`
	ConnectionID domain.ConnectionID `json:"connectionId"`
}

type HostStatus struct {
	Type   EventKind `json:"type"`
	IsHost bool      `json:"isHost"`
}

type Roster struct {
	Type         EventKind          `json:"type"`
	Participants []core.RosterEntry `json:"participants"`
}

type ChatMessage struct {
	Type    EventKind          `json:"type"`
	Message domain.ChatMessage `json:"message"`
}

type ChatHistory struct {
	Type     EventKind            `json:"type"`
	Messages []domain.ChatMessage `json:"messages"`
}

type CodeBuffer struct {
	Type EventKind `json:"type"`
	Code string    `json:"code"`
}

type OutputBuffer struct {
	Type   EventKind `json:"type"`
	Output string    `json:"output"`
}

type Pong struct {
	Type EventKind `json:"type"`
}

func (AssignedConnectionID) Kind() EventKind { return EvAssignedConnectionID }
func (HostStatus) Kind() EventKind           { return EvHostStatus }
func (Roster) Kind() EventKind               { return EvRoster }
func (ChatMessage) Kind() EventKind          { return EvChatMessage }
func (ChatHistory) Kind() EventKind          { return EvChatHistory }
func (CodeBuffer) Kind() EventKind           { return EvCodeBuffer }
func (OutputBuffer) Kind() EventKind         { return EvOutputBuffer }
func (Pong) Kind() EventKind                 { return EvPong }

func NewAssignedConnectionID(id domain.ConnectionID) AssignedConnectionID {
	return AssignedConnectionID{Type: EvAssignedConnectionID, ConnectionID: id}
}

func NewHostStatus(isHost bool) HostStatus {
	return HostStatus{Type: EvHostStatus, IsHost: isHost}
}

func NewRoster(entries []core.RosterEntry) Roster {
	if entries == nil {
		entries = []core.RosterEntry{}
	}
	return Roster{Type: EvRoster, Participants: entries}
}

func NewChatMessage(msg domain.ChatMessage) ChatMessage {
	return ChatMessage{Type: EvChatMessage, Message: msg}
}

func NewChatHistory(msgs []domain.ChatMessage) ChatHistory {
	if msgs == nil {
		msgs = []domain.ChatMessage{}
	}
	return ChatHistory{Type: EvChatHistory, Messages: msgs}
}

func NewCodeBuffer(code string) CodeBuffer {
	return CodeBuffer{Type: EvCodeBuffer, Code: code}
}

func NewOutputBuffer(output string) OutputBuffer {
	return OutputBuffer{Type: EvOutputBuffer, Output: output}
}

func NewPong() Pong { return Pong{Type: EvPong} }
