package protocol

import (
	"testing"
	"time"

	"github.com/dkeye/CodeRoom/internal/core"
	"github.com/dkeye/CodeRoom/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strptr(s string) *string { return &s }

func TestDecodeCommand(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want Command
	}{
		{"join", `{"type":"join","displayName":"A","roomId":"r1"}`, Join{DisplayName: "A", RoomID: "r1"}},
		{"join without name", `{"type":"join","roomId":"r1"}`, Join{RoomID: "r1"}},
		{"join cjk name", `{"type":"join","displayName":"二十个字符的名字二十个字符的名字二十个字","roomId":"r1"}`, Join{DisplayName: "二十个字符的名字二十个字符的名字二十个字", RoomID: "r1"}},
		{"roster", `{"type":"requestRoster","roomId":"r1"}`, RequestRoster{RoomID: "r1"}},
		{"set code", `{"type":"setCode","roomId":"r1","code":"print(1)"}`, SetCode{RoomID: "r1", Code: strptr("print(1)")}},
		{"clear code", `{"type":"setCode","roomId":"r1","code":""}`, SetCode{RoomID: "r1", Code: strptr("")}},
		{"set output", `{"type":"setOutput","roomId":"r1","output":"1\n"}`, SetOutput{RoomID: "r1", Output: strptr("1\n")}},
		{"host status", `{"type":"checkHostStatus","roomId":"r1"}`, CheckHostStatus{RoomID: "r1"}},
		{"chat", `{"type":"sendChatMessage","roomId":"r1","text":"hi"}`, SendChatMessage{RoomID: "r1", Text: "hi"}},
		{"ping", `{"type":"ping"}`, Ping{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeCommand([]byte(tt.in))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecodeCommandRejects(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want error
	}{
		{"not json", `{nope`, ErrMalformed},
		{"unknown type", `{"type":"explode"}`, ErrUnknownCommand},
		{"missing type", `{"roomId":"r1"}`, ErrUnknownCommand},
		{"join without room", `{"type":"join","displayName":"A"}`, ErrMalformed},
		{"code missing", `{"type":"setCode","roomId":"r1"}`, ErrMalformed},
		{"output missing", `{"type":"setOutput","roomId":"r1"}`, ErrMalformed},
		{"chat empty text", `{"type":"sendChatMessage","roomId":"r1","text":""}`, ErrMalformed},
		{"roster without room", `{"type":"requestRoster"}`, ErrMalformed},
		{"wrong field type", `{"type":"setCode","roomId":"r1","code":42}`, ErrMalformed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeCommand([]byte(tt.in))
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestEncodeCommandAddsType(t *testing.T) {
	data, err := EncodeCommand(SetCode{RoomID: "r1", Code: strptr("x")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"setCode","roomId":"r1","code":"x"}`, string(data))

	back, err := DecodeCommand(data)
	require.NoError(t, err)
	assert.Equal(t, SetCode{RoomID: "r1", Code: strptr("x")}, back)
}

func TestEncodeEvents(t *testing.T) {
	created := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	msg := domain.ChatMessage{ID: "m1", Text: "A joined the room", Kind: domain.MessageSystem, CreatedAt: created}

	tests := []struct {
		name string
		ev   Event
		want string
	}{
		{"assigned", NewAssignedConnectionID("c1"), `{"type":"assignedConnectionId","connectionId":"c1"}`},
		{"host", NewHostStatus(true), `{"type":"hostStatus","isHost":true}`},
		{"not host", NewHostStatus(false), `{"type":"hostStatus","isHost":false}`},
		{"roster", NewRoster([]core.RosterEntry{{ConnectionID: "c1", DisplayName: "A", IsHost: true}}),
			`{"type":"roster","participants":[{"connectionId":"c1","displayName":"A","isHost":true}]}`},
		{"empty roster", NewRoster(nil), `{"type":"roster","participants":[]}`},
		{"chat", NewChatMessage(msg),
			`{"type":"chatMessage","message":{"id":"m1","text":"A joined the room","kind":"system","createdAt":"2024-05-01T12:00:00Z"}}`},
		{"empty history", NewChatHistory(nil), `{"type":"chatHistory","messages":[]}`},
		{"code", NewCodeBuffer("print(1)"), `{"type":"codeBuffer","code":"print(1)"}`},
		{"output", NewOutputBuffer(""), `{"type":"outputBuffer","output":""}`},
		{"pong", NewPong(), `{"type":"pong"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := Encode(tt.ev)
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, string(data))

			back, err := DecodeEvent(data)
			require.NoError(t, err)
			assert.Equal(t, tt.ev.Kind(), back.Kind())
		})
	}
}

func TestDecodeEventUnknown(t *testing.T) {
	_, err := DecodeEvent([]byte(`{"type":"mystery"}`))
	assert.ErrorIs(t, err, ErrUnknownEvent)
}
