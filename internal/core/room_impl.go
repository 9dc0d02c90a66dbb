package core

import (
	"sync"
	"time"

	"github.com/dkeye/CodeRoom/internal/domain"
	"github.com/rs/zerolog/log"
)

// roomImpl is a threadsafe in-memory room.
// Mutations are serialized by the orchestrator loop; the lock only guards
// concurrent readers such as the REST API.
type roomImpl struct {
	id        domain.RoomID
	mu        sync.RWMutex
	roster    []domain.Participant
	host      domain.ConnectionID
	code      string
	output    string
	chat      []domain.ChatMessage
	chatLimit int
	emptyAt   time.Time
	now       func() time.Time
}

type RoomOption func(*roomImpl)

// WithChatLimit bounds the chat log; older entries are dropped first.
func WithChatLimit(n int) RoomOption {
	return func(r *roomImpl) { r.chatLimit = n }
}

func WithClock(now func() time.Time) RoomOption {
	return func(r *roomImpl) { r.now = now }
}

func NewRoomService(id domain.RoomID, opts ...RoomOption) RoomService {
	r := &roomImpl{
		id:   id,
		chat: make([]domain.ChatMessage, 0),
		now:  time.Now,
	}
	for _, o := range opts {
		o(r)
	}
	r.emptyAt = r.now()
	return r
}

func (r *roomImpl) ID() domain.RoomID { return r.id }

func (r *roomImpl) MemberCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.roster)
}

func (r *roomImpl) Roster() []RosterEntry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]RosterEntry, 0, len(r.roster))
	for _, p := range r.roster {
		out = append(out, RosterEntry{
			ConnectionID: p.ConnectionID,
			DisplayName:  p.DisplayName,
			IsHost:       p.ConnectionID == r.host,
		})
	}
	return out
}

func (r *roomImpl) Host() (domain.ConnectionID, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.host, r.host != ""
}

func (r *roomImpl) IsHost(id domain.ConnectionID) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return id != "" && r.host == id
}

func (r *roomImpl) Member(id domain.ConnectionID) (domain.Participant, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if i := r.indexOf(id); i >= 0 {
		return r.roster[i], true
	}
	return domain.Participant{}, false
}

func (r *roomImpl) Join(p domain.Participant) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if i := r.indexOf(p.ConnectionID); i >= 0 {
		return r.host == p.ConnectionID
	}
	r.roster = append(r.roster, p)
	if len(r.roster) == 1 {
		r.host = p.ConnectionID
	}
	r.emptyAt = time.Time{}
	log.Debug().Str("module", "core.room").Str("room", string(r.id)).Str("conn", string(p.ConnectionID)).
		Str("host", string(r.host)).Int("members", len(r.roster)).Msg("member joined")
	return r.host == p.ConnectionID
}

func (r *roomImpl) Leave(id domain.ConnectionID) (LeaveResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.indexOf(id)
	if i < 0 {
		return LeaveResult{}, ErrNotMember
	}
	res := LeaveResult{Participant: r.roster[i], WasHost: r.host == id}
	r.roster = append(r.roster[:i], r.roster[i+1:]...)

	switch {
	case len(r.roster) == 0:
		r.host = ""
		r.emptyAt = r.now()
		res.Empty = true
	case res.WasHost:
		r.host = r.roster[0].ConnectionID
		res.NewHost = r.host
	}
	log.Debug().Str("module", "core.room").Str("room", string(r.id)).Str("conn", string(id)).
		Str("host", string(r.host)).Int("members", len(r.roster)).Msg("member left")
	return res, nil
}

func (r *roomImpl) SetCode(code string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.code = code
}

func (r *roomImpl) SetOutput(output string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.output = output
}

func (r *roomImpl) AppendChat(msg domain.ChatMessage) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.chat = append(r.chat, msg)
	if r.chatLimit > 0 && len(r.chat) > r.chatLimit {
		r.chat = append([]domain.ChatMessage(nil), r.chat[len(r.chat)-r.chatLimit:]...)
	}
}

func (r *roomImpl) Snapshot() Snapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()
	chat := make([]domain.ChatMessage, len(r.chat))
	copy(chat, r.chat)
	return Snapshot{Code: r.code, Output: r.output, ChatLog: chat}
}

func (r *roomImpl) EmptySince() (time.Time, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if len(r.roster) > 0 {
		return time.Time{}, false
	}
	return r.emptyAt, true
}

func (r *roomImpl) indexOf(id domain.ConnectionID) int {
	for i, p := range r.roster {
		if p.ConnectionID == id {
			return i
		}
	}
	return -1
}
