package app

import (
	"context"
	"sync"

	"github.com/dkeye/CodeRoom/internal/core"
	"github.com/dkeye/CodeRoom/internal/domain"
	"github.com/rs/zerolog/log"
)

// ConnState is the lifecycle of one transport connection.
// UNJOINED -> JOINED -> DISCONNECTED; there is no re-join on the same connection.
type ConnState int

const (
	StateUnjoined ConnState = iota
	StateJoined
	StateDisconnected
)

func (s ConnState) String() string {
	switch s {
	case StateUnjoined:
		return "unjoined"
	case StateJoined:
		return "joined"
	case StateDisconnected:
		return "disconnected"
	}
	return "unknown"
}

// Session is a copy of one registry entry.
type Session struct {
	SID         core.SessionID
	State       ConnState
	RoomID      domain.RoomID
	Participant domain.Participant
	Signal      core.SignalConnection
	// DefaultName is used when a join omits the display name.
	DefaultName string
}

type sessionEntry struct {
	Session
	Cancel context.CancelFunc
}

type Registry struct {
	mu       sync.RWMutex
	sessions map[core.SessionID]*sessionEntry
	byConn   map[domain.ConnectionID]core.SessionID
}

func NewRegistry() *Registry {
	return &Registry{
		sessions: make(map[core.SessionID]*sessionEntry),
		byConn:   make(map[domain.ConnectionID]core.SessionID),
	}
}

func (r *Registry) BindSignal(sid core.SessionID, conn core.SignalConnection, defaultName string, cancel context.CancelFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[sid] = &sessionEntry{
		Session: Session{SID: sid, State: StateUnjoined, Signal: conn, DefaultName: defaultName},
		Cancel:  cancel,
	}
	log.Info().Str("module", "app.registry").Str("sid", string(sid)).Msg("bound signal")
}

func (r *Registry) GetSession(sid core.SessionID) (Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if e, ok := r.sessions[sid]; ok {
		return e.Session, true
	}
	return Session{}, false
}

// MarkJoined moves an UNJOINED session to JOINED. It reports false for
// unknown sessions and for sessions that already left UNJOINED.
func (r *Registry) MarkJoined(sid core.SessionID, roomID domain.RoomID, p domain.Participant) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.sessions[sid]
	if !ok || e.State != StateUnjoined {
		return false
	}
	e.State = StateJoined
	e.RoomID = roomID
	e.Participant = p
	r.byConn[p.ConnectionID] = sid
	log.Info().Str("module", "app.registry").Str("sid", string(sid)).Str("room", string(roomID)).
		Str("conn", string(p.ConnectionID)).Msg("session joined")
	return true
}

// Unbind removes the session and returns its final state marked DISCONNECTED.
func (r *Registry) Unbind(sid core.SessionID) (Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.sessions[sid]
	if !ok {
		return Session{}, false
	}
	delete(r.sessions, sid)
	if e.Participant.ConnectionID != "" {
		delete(r.byConn, e.Participant.ConnectionID)
	}
	last := e.Session
	last.State = StateDisconnected
	log.Info().Str("module", "app.registry").Str("sid", string(sid)).Msg("unbind session")
	return last, true
}

// SignalOf resolves a joined connection id to its transport.
func (r *Registry) SignalOf(id domain.ConnectionID) (core.SignalConnection, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	sid, ok := r.byConn[id]
	if !ok {
		return nil, false
	}
	e, ok := r.sessions[sid]
	if !ok {
		return nil, false
	}
	return e.Signal, true
}

func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

func (r *Registry) Cancel(sid core.SessionID) bool {
	r.mu.RLock()
	e, ok := r.sessions[sid]
	r.mu.RUnlock()
	if !ok {
		return false
	}
	if e.Cancel != nil {
		e.Cancel()
	}
	log.Info().Str("module", "app.registry").Str("sid", string(sid)).Msg("canceled session")
	return true
}
