package app

import (
	"errors"

	"github.com/dkeye/CodeRoom/internal/core"
	"github.com/dkeye/CodeRoom/internal/domain"
	"github.com/dkeye/CodeRoom/internal/protocol"
	"github.com/rs/zerolog/log"
)

// Router fans events out to joined connections. Delivery is best-effort:
// a connection that is already gone is skipped silently.
type Router struct {
	Registry *Registry
	Policy   Policy
}

// PublishResult reports delivery stats for one fan-out.
type PublishResult struct {
	SendTo  int
	Dropped []domain.ConnectionID
}

// ToRoom delivers ev to every current member of room, sender included,
// in roster order.
func (rt *Router) ToRoom(room core.RoomService, ev protocol.Event) PublishResult {
	res := PublishResult{}
	frame, err := protocol.Encode(ev)
	if err != nil {
		log.Error().Err(err).Str("module", "app.router").Str("event", string(ev.Kind())).Msg("encode")
		return res
	}
	for _, m := range room.Roster() {
		if rt.send(m.ConnectionID, frame) {
			res.SendTo++
			continue
		}
		res.Dropped = append(res.Dropped, m.ConnectionID)
	}
	log.Debug().Str("module", "app.router").Str("room", string(room.ID())).Str("event", string(ev.Kind())).
		Int("sent_to", res.SendTo).Int("dropped", len(res.Dropped)).Msg("broadcast result")
	return res
}

func (rt *Router) ToConnection(id domain.ConnectionID, ev protocol.Event) bool {
	frame, err := protocol.Encode(ev)
	if err != nil {
		log.Error().Err(err).Str("module", "app.router").Str("event", string(ev.Kind())).Msg("encode")
		return false
	}
	return rt.send(id, frame)
}

func (rt *Router) send(id domain.ConnectionID, frame core.Frame) bool {
	conn, ok := rt.Registry.SignalOf(id)
	if !ok {
		return false
	}
	err := conn.TrySend(frame)
	switch {
	case err == nil:
		return true
	case errors.Is(err, core.ErrBackpressure):
		if rt.Policy != nil && rt.Policy.OnBackPressure(id) == KickMember {
			log.Warn().Str("module", "app.router").Str("conn", string(id)).Msg("slow consumer kicked")
			conn.Close()
		}
	default:
		log.Debug().Err(err).Str("module", "app.router").Str("conn", string(id)).Msg("send skipped")
	}
	return false
}
