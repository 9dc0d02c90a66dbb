package orch

import (
	"strings"

	"github.com/dkeye/CodeRoom/internal/app"
	"github.com/dkeye/CodeRoom/internal/core"
	"github.com/dkeye/CodeRoom/internal/domain"
	"github.com/dkeye/CodeRoom/internal/protocol"
	"github.com/rs/zerolog/log"
)

func (o *Orchestrator) setCode(room core.RoomService, sess app.Session, code string) {
	id := sess.Participant.ConnectionID
	if !o.Gate.Authorize(room, id) {
		o.rejected(room, sess, "setCode")
		o.Router.ToConnection(id, protocol.NewCodeBuffer(room.Snapshot().Code))
		o.sendHostStatus(room, sess)
		return
	}
	room.SetCode(code)
	o.Router.ToRoom(room, protocol.NewCodeBuffer(code))
}

func (o *Orchestrator) setOutput(room core.RoomService, sess app.Session, output string) {
	id := sess.Participant.ConnectionID
	if !o.Gate.Authorize(room, id) {
		o.rejected(room, sess, "setOutput")
		o.Router.ToConnection(id, protocol.NewOutputBuffer(room.Snapshot().Output))
		o.sendHostStatus(room, sess)
		return
	}
	room.SetOutput(output)
	o.Router.ToRoom(room, protocol.NewOutputBuffer(output))
}

// sendChat is not gated: every member may speak.
func (o *Orchestrator) sendChat(room core.RoomService, sess app.Session, text string) {
	if strings.TrimSpace(text) == "" {
		return
	}
	o.announce(room, domain.NewUserMessage(&sess.Participant, text, o.Now()))
}

func (o *Orchestrator) sendHostStatus(room core.RoomService, sess app.Session) {
	id := sess.Participant.ConnectionID
	o.Router.ToConnection(id, protocol.NewHostStatus(room.IsHost(id)))
}

func (o *Orchestrator) rejected(room core.RoomService, sess app.Session, op string) {
	log.Warn().Str("module", "orch").Str("room", string(room.ID())).Str("conn", string(sess.Participant.ConnectionID)).
		Str("name", sess.Participant.DisplayName).Str("op", op).Msg("non-host mutation rejected")
}

func (o *Orchestrator) resync(sid core.SessionID, cmd protocol.Command) {
	sess, ok := o.Registry.GetSession(sid)
	if !ok || sess.State != app.StateJoined {
		return
	}
	id := sess.Participant.ConnectionID
	switch c := cmd.(type) {
	case protocol.SetCode:
		if room, ok := o.roomFor(sess, c.RoomID); ok {
			o.Router.ToConnection(id, protocol.NewCodeBuffer(room.Snapshot().Code))
		}
	case protocol.SetOutput:
		if room, ok := o.roomFor(sess, c.RoomID); ok {
			o.Router.ToConnection(id, protocol.NewOutputBuffer(room.Snapshot().Output))
		}
	}
}
