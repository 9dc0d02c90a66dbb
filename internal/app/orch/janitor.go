package orch

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

// RunJanitor periodically reclaims rooms that stayed empty for EmptyRoomTTL.
// The sweep itself runs on the event loop.
func (o *Orchestrator) RunJanitor(ctx context.Context, interval time.Duration) error {
	if interval <= 0 || o.EmptyRoomTTL <= 0 {
		<-ctx.Done()
		return nil
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			o.submit(o.reclaim)
		}
	}
}

func (o *Orchestrator) reclaim() {
	ids := o.Rooms.ReclaimEmpty(o.EmptyRoomTTL)
	for _, id := range ids {
		log.Debug().Str("module", "orch").Str("room", string(id)).Msg("room reclaimed")
	}
}
