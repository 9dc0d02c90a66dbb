package app

import "github.com/dkeye/CodeRoom/internal/domain"

type BackpressureAction int

const (
	NoAction BackpressureAction = iota
	KickMember
)

type Policy interface {
	OnBackPressure(conn domain.ConnectionID) BackpressureAction
}

// SimplePolicy kicks a member whose outbound queue is full.
// The client reconnects and receives a full replay.
type SimplePolicy struct{}

func (SimplePolicy) OnBackPressure(domain.ConnectionID) BackpressureAction {
	return KickMember
}
