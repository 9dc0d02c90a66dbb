package app

import (
	"sort"
	"sync"
	"time"

	"github.com/dkeye/CodeRoom/internal/core"
	"github.com/dkeye/CodeRoom/internal/domain"
	"github.com/rs/zerolog/log"
)

// RoomManagerImpl is the process-wide room registry. Construct one per
// process (or per test) and hand it to the orchestrator.
type RoomManagerImpl struct {
	mu    sync.RWMutex
	rooms map[domain.RoomID]core.RoomService
	opts  []core.RoomOption
	now   func() time.Time
}

func NewRoomManager(opts ...core.RoomOption) *RoomManagerImpl {
	return &RoomManagerImpl{
		rooms: make(map[domain.RoomID]core.RoomService),
		opts:  opts,
		now:   time.Now,
	}
}

func (f *RoomManagerImpl) GetOrCreate(id domain.RoomID) (core.RoomService, bool) {
	f.mu.RLock()
	room, ok := f.rooms[id]
	f.mu.RUnlock()
	if ok {
		return room, false
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if room, ok = f.rooms[id]; ok {
		return room, false
	}
	room = core.NewRoomService(id, f.opts...)
	f.rooms[id] = room
	log.Info().Str("module", "app.rooms").Str("room", string(id)).Msg("room created")
	return room, true
}

func (f *RoomManagerImpl) Get(id domain.RoomID) (core.RoomService, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	room, ok := f.rooms[id]
	return room, ok
}

func (f *RoomManagerImpl) List() []core.RoomInfo {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make([]core.RoomInfo, 0, len(f.rooms))
	for _, r := range f.rooms {
		out = append(out, core.InfoOf(r))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (f *RoomManagerImpl) StopRoom(id domain.RoomID) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.rooms, id)
}

func (f *RoomManagerImpl) ReclaimEmpty(ttl time.Duration) []domain.RoomID {
	now := f.now()
	f.mu.Lock()
	defer f.mu.Unlock()
	var reclaimed []domain.RoomID
	for id, r := range f.rooms {
		since, empty := r.EmptySince()
		if !empty || now.Sub(since) < ttl {
			continue
		}
		delete(f.rooms, id)
		reclaimed = append(reclaimed, id)
	}
	if len(reclaimed) > 0 {
		log.Info().Str("module", "app.rooms").Int("count", len(reclaimed)).Msg("reclaimed empty rooms")
	}
	return reclaimed
}
