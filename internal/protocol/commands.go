// Package protocol defines the closed set of commands a client may send and
// events the server emits, and their flat JSON encoding with a "type"
// discriminator.
package protocol

type CommandKind string

const (
	CmdJoin            CommandKind = "join"
	CmdRequestRoster   CommandKind = "requestRoster"
	CmdSetCode         CommandKind = "setCode"
	CmdSetOutput       CommandKind = "setOutput"
	CmdCheckHostStatus CommandKind = "checkHostStatus"
	CmdSendChatMessage CommandKind = "sendChatMessage"
	CmdPing            CommandKind = "ping"
)

type Command interface {
	Kind() CommandKind
}

// Join may omit DisplayName; the connection's remembered profile name is used instead.
// Name length is checked by domain.NormalizeDisplayName after trimming.
type Join struct {
	DisplayName string `json:"displayName"`
	RoomID      string `json:"roomId" validate:"required"`
}

type RequestRoster struct {
	RoomID string `json:"roomId" validate:"required"`
}

// SetCode.Code is a pointer so that an empty buffer is valid but a missing field is not.
type SetCode struct {
	RoomID string  `json:"roomId" validate:"required"`
	Code   *string `json:"code" validate:"required"`
}

type SetOutput struct {
	RoomID string  `json:"roomId" validate:"required"`
	Output *string `json:"output" validate:"required"`
}

type CheckHostStatus struct {
	RoomID string `json:"roomId" validate:"required"`
}

type SendChatMessage struct {
	RoomID string `json:"roomId" validate:"required"`
	Text   string `json:"text" validate:"required"`
}

type Ping struct{}

func (Join) Kind() CommandKind            { return CmdJoin }
func (RequestRoster) Kind() CommandKind   { return CmdRequestRoster }
func (SetCode) Kind() CommandKind         { return CmdSetCode }
func (SetOutput) Kind() CommandKind       { return CmdSetOutput }
func (CheckHostStatus) Kind() CommandKind { return CmdCheckHostStatus }
func (SendChatMessage) Kind() CommandKind { return CmdSendChatMessage }
func (Ping) Kind() CommandKind            { return CmdPing }
