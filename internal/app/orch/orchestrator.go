package orch

import (
	"context"
	"time"

	"github.com/dkeye/CodeRoom/internal/app"
	"github.com/dkeye/CodeRoom/internal/core"
	"github.com/dkeye/CodeRoom/internal/domain"
	"github.com/dkeye/CodeRoom/internal/protocol"
	"github.com/rs/zerolog/log"
)

// Orchestrator is the connection lifecycle handler. All room mutations run
// on the single Run loop, one operation at a time, so every command is
// applied and fanned out before the next one is looked at.
type Orchestrator struct {
	Registry *app.Registry
	Rooms    core.RoomManager
	Router   *app.Router
	Gate     app.HostGate
	// EmptyRoomTTL is how long an empty room keeps its state; zero drops it on last leave.
	EmptyRoomTTL time.Duration
	Now          func() time.Time

	ops  chan func()
	done chan struct{}
}

func New(reg *app.Registry, rooms core.RoomManager, policy app.Policy, queue int) *Orchestrator {
	if queue <= 0 {
		queue = 1
	}
	return &Orchestrator{
		Registry: reg,
		Rooms:    rooms,
		Router:   &app.Router{Registry: reg, Policy: policy},
		Now:      time.Now,
		ops:      make(chan func(), queue),
		done:     make(chan struct{}),
	}
}

// Run processes queued operations until ctx is done.
func (o *Orchestrator) Run(ctx context.Context) error {
	defer close(o.done)
	log.Info().Str("module", "orch").Msg("event loop started")
	for {
		select {
		case <-ctx.Done():
			log.Info().Str("module", "orch").Msg("event loop stopped")
			return nil
		case op := <-o.ops:
			op()
		}
	}
}

func (o *Orchestrator) submit(op func()) bool {
	select {
	case <-o.done:
		return false
	default:
	}
	select {
	case o.ops <- op:
		return true
	case <-o.done:
		return false
	}
}

// Connect registers a fresh transport connection in the UNJOINED state.
func (o *Orchestrator) Connect(sid core.SessionID, conn core.SignalConnection, defaultName string, cancel context.CancelFunc) {
	o.Registry.BindSignal(sid, conn, defaultName, cancel)
}

// Dispatch queues one decoded command from sid.
func (o *Orchestrator) Dispatch(sid core.SessionID, cmd protocol.Command) {
	o.submit(func() { o.handle(sid, cmd) })
}

// Throttled reports a command the transport dropped under rate limiting.
// Dropped buffer writes are answered with the buffer as it stands so the
// sender's editor does not drift from the room.
func (o *Orchestrator) Throttled(sid core.SessionID, cmd protocol.Command) {
	switch cmd.(type) {
	case protocol.SetCode, protocol.SetOutput:
		o.submit(func() { o.resync(sid, cmd) })
	}
}

// Disconnect queues the teardown of sid. Duplicate signals are harmless.
func (o *Orchestrator) Disconnect(sid core.SessionID) {
	o.submit(func() { o.disconnect(sid) })
}

func (o *Orchestrator) handle(sid core.SessionID, cmd protocol.Command) {
	sess, ok := o.Registry.GetSession(sid)
	if !ok {
		return
	}
	if join, ok := cmd.(protocol.Join); ok {
		o.join(sess, join)
		return
	}
	if sess.State != app.StateJoined {
		log.Debug().Str("module", "orch").Str("sid", string(sid)).Str("cmd", string(cmd.Kind())).Msg("command before join ignored")
		return
	}

	switch c := cmd.(type) {
	case protocol.RequestRoster:
		if room, ok := o.roomFor(sess, c.RoomID); ok {
			o.Router.ToConnection(sess.Participant.ConnectionID, protocol.NewRoster(room.Roster()))
		}
	case protocol.CheckHostStatus:
		if room, ok := o.roomFor(sess, c.RoomID); ok {
			o.sendHostStatus(room, sess)
		}
	case protocol.SetCode:
		if room, ok := o.roomFor(sess, c.RoomID); ok {
			o.setCode(room, sess, *c.Code)
		}
	case protocol.SetOutput:
		if room, ok := o.roomFor(sess, c.RoomID); ok {
			o.setOutput(room, sess, *c.Output)
		}
	case protocol.SendChatMessage:
		if room, ok := o.roomFor(sess, c.RoomID); ok {
			o.sendChat(room, sess, c.Text)
		}
	default:
		log.Warn().Str("module", "orch").Str("sid", string(sid)).Str("cmd", string(cmd.Kind())).Msg("unhandled command")
	}
}

// roomFor resolves the room a command names. A room other than the one the
// connection joined is treated like an unknown room: no-op.
func (o *Orchestrator) roomFor(sess app.Session, raw string) (core.RoomService, bool) {
	id, err := domain.ParseRoomID(raw)
	if err != nil || id != sess.RoomID {
		log.Warn().Str("module", "orch").Str("sid", string(sess.SID)).Str("room", raw).Msg("command for foreign room")
		return nil, false
	}
	return o.Rooms.Get(sess.RoomID)
}
