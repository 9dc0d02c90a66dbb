package signal

import "github.com/dkeye/CodeRoom/internal/protocol"

// handlePing answers on the socket directly; liveness never touches a room.
func (ctl *SignalWSController) handlePing(conn *WsSignalConn) {
	ctl.sendEvent(conn, protocol.NewPong())
}
