package core

import (
	"errors"
	"time"

	"github.com/dkeye/CodeRoom/internal/domain"
)

var (
	ErrNotMember    = errors.New("not a member of the room")
	ErrRoomNotFound = errors.New("room not found")
)

// RosterEntry is a read-only view of a participant, in join order.
type RosterEntry struct {
	ConnectionID domain.ConnectionID `json:"connectionId"`
	DisplayName  string              `json:"displayName"`
	IsHost       bool                `json:"isHost"`
}

// Snapshot is a copy of the replayable room state.
type Snapshot struct {
	Code    string               `json:"code"`
	Output  string               `json:"output"`
	ChatLog []domain.ChatMessage `json:"chatLog"`
}

// LeaveResult describes what a departure changed.
type LeaveResult struct {
	Participant domain.Participant
	WasHost     bool
	// NewHost is set only when host privilege moved to another participant.
	NewHost domain.ConnectionID
	Empty   bool
}

// RoomService is the core-facing API of a room.
// It owns roster, host pointer and shared buffers but never touches transport resources.
type RoomService interface {
	ID() domain.RoomID
	MemberCount() int
	Roster() []RosterEntry
	Host() (domain.ConnectionID, bool)
	IsHost(id domain.ConnectionID) bool
	Member(id domain.ConnectionID) (domain.Participant, bool)

	// Join appends p to the roster. The first participant of an empty room becomes host.
	Join(p domain.Participant) (isHost bool)
	// Leave removes id and promotes the earliest-joined remaining participant if id was host.
	Leave(id domain.ConnectionID) (LeaveResult, error)

	SetCode(code string)
	SetOutput(output string)
	AppendChat(msg domain.ChatMessage)
	Snapshot() Snapshot

	// EmptySince reports when the roster last became empty.
	EmptySince() (time.Time, bool)
}

type RoomInfo struct {
	ID          domain.RoomID `json:"roomId"`
	MemberCount int           `json:"members"`
	Host        string        `json:"host,omitempty"`
}

// InfoOf summarizes a room for listings.
func InfoOf(r RoomService) RoomInfo {
	info := RoomInfo{ID: r.ID(), MemberCount: r.MemberCount()}
	if host, ok := r.Host(); ok {
		if p, ok := r.Member(host); ok {
			info.Host = p.DisplayName
		}
	}
	return info
}

type RoomManager interface {
	GetOrCreate(id domain.RoomID) (room RoomService, created bool)
	Get(id domain.RoomID) (RoomService, bool)
	List() []RoomInfo
	StopRoom(id domain.RoomID)
	// ReclaimEmpty drops rooms whose roster has been empty for at least ttl.
	ReclaimEmpty(ttl time.Duration) []domain.RoomID
}
