package core

import "errors"

var (
	ErrBackpressure = errors.New("backpressure")
	ErrConnClosed   = errors.New("connection closed")
)

// Frame is a raw encoded event.
type Frame []byte

// SessionID identifies a transport connection from accept to close,
// before and after it joins a room.
type SessionID string

// SignalConnection abstracts for a system messaging transport
// Owned by the adapter; the adapter must Close() it.
// TrySend never blocks: it returns ErrBackpressure when the outbound queue
// is full and ErrConnClosed once the connection is gone.
type SignalConnection interface {
	TrySend(Frame) error
	Close()
}
