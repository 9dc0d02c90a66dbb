package protocol

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

var (
	ErrUnknownCommand = errors.New("unknown command")
	ErrUnknownEvent   = errors.New("unknown event")
	ErrMalformed      = errors.New("malformed payload")
)

var validate = validator.New(validator.WithRequiredStructEnabled())

type envelope struct {
	Type string `json:"type"`
}

// DecodeCommand parses one inbound frame into its typed command.
// Missing required fields yield ErrMalformed.
func DecodeCommand(data []byte) (Command, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	switch CommandKind(env.Type) {
	case CmdJoin:
		return decodeCommand[Join](data)
	case CmdRequestRoster:
		return decodeCommand[RequestRoster](data)
	case CmdSetCode:
		return decodeCommand[SetCode](data)
	case CmdSetOutput:
		return decodeCommand[SetOutput](data)
	case CmdCheckHostStatus:
		return decodeCommand[CheckHostStatus](data)
	case CmdSendChatMessage:
		return decodeCommand[SendChatMessage](data)
	case CmdPing:
		return Ping{}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownCommand, env.Type)
}

func decodeCommand[T Command](data []byte) (Command, error) {
	var c T
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformed, c.Kind(), err)
	}
	if err := validate.Struct(c); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformed, c.Kind(), err)
	}
	return c, nil
}

// EncodeCommand is the client-side counterpart of DecodeCommand.
func EncodeCommand(c Command) ([]byte, error) {
	body, err := json.Marshal(c)
	if err != nil {
		return nil, err
	}
	return withType(body, string(c.Kind()))
}

func Encode(e Event) ([]byte, error) {
	return json.Marshal(e)
}

// DecodeEvent parses one outbound frame, used by clients and tests.
func DecodeEvent(data []byte) (Event, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	switch EventKind(env.Type) {
	case EvAssignedConnectionID:
		return decodeEvent[AssignedConnectionID](data)
	case EvHostStatus:
		return decodeEvent[HostStatus](data)
	case EvRoster:
		return decodeEvent[Roster](data)
	case EvChatMessage:
		return decodeEvent[ChatMessage](data)
	case EvChatHistory:
		return decodeEvent[ChatHistory](data)
	case EvCodeBuffer:
		return decodeEvent[CodeBuffer](data)
	case EvOutputBuffer:
		return decodeEvent[OutputBuffer](data)
	case EvPong:
		return decodeEvent[Pong](data)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownEvent, env.Type)
}

func decodeEvent[T Event](data []byte) (Event, error) {
	var e T
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformed, e.Kind(), err)
	}
	return e, nil
}

func withType(body []byte, kind string) ([]byte, error) {
	fields := map[string]json.RawMessage{}
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil, err
	}
	t, err := json.Marshal(kind)
	if err != nil {
		return nil, err
	}
	fields["type"] = t
	return json.Marshal(fields)
}
