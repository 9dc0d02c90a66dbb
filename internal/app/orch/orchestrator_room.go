package orch

import (
	"github.com/dkeye/CodeRoom/internal/app"
	"github.com/dkeye/CodeRoom/internal/core"
	"github.com/dkeye/CodeRoom/internal/domain"
	"github.com/dkeye/CodeRoom/internal/protocol"
	"github.com/rs/zerolog/log"
)

func (o *Orchestrator) join(sess app.Session, c protocol.Join) {
	if sess.State != app.StateUnjoined {
		log.Warn().Str("module", "orch").Str("sid", string(sess.SID)).Str("state", sess.State.String()).Msg("join ignored")
		return
	}
	roomID, err := domain.ParseRoomID(c.RoomID)
	if err != nil {
		log.Warn().Err(err).Str("module", "orch").Str("sid", string(sess.SID)).Msg("bad join payload")
		return
	}
	name := c.DisplayName
	if name == "" {
		name = sess.DefaultName
	}
	p, err := domain.NewParticipant(name)
	if err != nil {
		log.Warn().Err(err).Str("module", "orch").Str("sid", string(sess.SID)).Msg("bad join payload")
		return
	}

	room, _ := o.Rooms.GetOrCreate(roomID)
	isHost := room.Join(*p)
	o.Registry.MarkJoined(sess.SID, roomID, *p)
	log.Info().Str("module", "orch").Str("sid", string(sess.SID)).Str("room", string(roomID)).
		Str("conn", string(p.ConnectionID)).Str("name", p.DisplayName).Bool("host", isHost).Msg("joined")

	// History is the log as it stood before this arrival; the arrival
	// notice itself reaches the joiner live.
	snap := room.Snapshot()

	o.Router.ToConnection(p.ConnectionID, protocol.NewAssignedConnectionID(p.ConnectionID))
	o.Router.ToConnection(p.ConnectionID, protocol.NewHostStatus(isHost))
	o.Router.ToRoom(room, protocol.NewRoster(room.Roster()))
	o.announce(room, domain.JoinedMessage(p, isHost, o.Now()))

	o.Router.ToConnection(p.ConnectionID, protocol.NewChatHistory(snap.ChatLog))
	o.Router.ToConnection(p.ConnectionID, protocol.NewCodeBuffer(snap.Code))
	o.Router.ToConnection(p.ConnectionID, protocol.NewOutputBuffer(snap.Output))
	o.logRoomState(room)
}

func (o *Orchestrator) disconnect(sid core.SessionID) {
	o.Registry.Cancel(sid)
	sess, ok := o.Registry.Unbind(sid)
	if !ok || sess.RoomID == "" {
		return
	}
	room, ok := o.Rooms.Get(sess.RoomID)
	if !ok {
		return
	}
	res, err := room.Leave(sess.Participant.ConnectionID)
	if err != nil {
		log.Debug().Err(err).Str("module", "orch").Str("sid", string(sid)).Msg("leave ignored")
		return
	}
	log.Info().Str("module", "orch").Str("sid", string(sid)).Str("room", string(sess.RoomID)).
		Str("conn", string(sess.Participant.ConnectionID)).Msg("left")

	if res.NewHost != "" {
		o.Router.ToConnection(res.NewHost, protocol.NewHostStatus(true))
		log.Info().Str("module", "orch").Str("room", string(sess.RoomID)).Str("conn", string(res.NewHost)).Msg("host promoted")
	}
	o.Router.ToRoom(room, protocol.NewRoster(room.Roster()))
	o.announce(room, domain.LeftMessage(&res.Participant, o.Now()))
	o.logRoomState(room)

	if res.Empty && o.EmptyRoomTTL <= 0 {
		o.Rooms.StopRoom(room.ID())
		log.Info().Str("module", "orch").Str("room", string(room.ID())).Msg("room dropped")
	}
}

func (o *Orchestrator) announce(room core.RoomService, msg domain.ChatMessage) {
	room.AppendChat(msg)
	o.Router.ToRoom(room, protocol.NewChatMessage(msg))
}

func (o *Orchestrator) logRoomState(room core.RoomService) {
	host, _ := room.Host()
	log.Debug().Str("module", "orch").Str("room", string(room.ID())).Str("host", string(host)).
		Int("members", room.MemberCount()).Msg("room state")
}
