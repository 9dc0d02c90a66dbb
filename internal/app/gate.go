package app

import (
	"github.com/dkeye/CodeRoom/internal/core"
	"github.com/dkeye/CodeRoom/internal/domain"
)

// HostGate admits code/output mutations only from the room's current host.
type HostGate struct{}

// Authorize is a pure read of the room's host pointer.
func (HostGate) Authorize(room core.RoomService, id domain.ConnectionID) bool {
	if room == nil {
		return false
	}
	return room.IsHost(id)
}
