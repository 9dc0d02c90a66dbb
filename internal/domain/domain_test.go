package domain

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewParticipant(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr error
	}{
		{name: "plain", input: "alice", want: "alice"},
		{name: "trimmed", input: "  bob  ", want: "bob"},
		{name: "empty", input: "", wantErr: ErrDisplayNameEmpty},
		{name: "blank", input: "   ", wantErr: ErrDisplayNameEmpty},
		{name: "too long", input: strings.Repeat("x", MaxDisplayNameLen+1), wantErr: ErrDisplayNameTooLong},
		{name: "cjk counts runes", input: strings.Repeat("名", 20), want: strings.Repeat("名", 20)},
		{name: "cjk at limit", input: strings.Repeat("名", MaxDisplayNameLen), want: strings.Repeat("名", MaxDisplayNameLen)},
		{name: "cjk too long", input: strings.Repeat("名", MaxDisplayNameLen+1), wantErr: ErrDisplayNameTooLong},
		{name: "padding not counted", input: "  " + strings.Repeat("x", MaxDisplayNameLen) + "  ", want: strings.Repeat("x", MaxDisplayNameLen)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewParticipant(tt.input)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, p.DisplayName)
			assert.NotEmpty(t, p.ConnectionID)
		})
	}
}

func TestNewParticipantIDsAreUnique(t *testing.T) {
	a, err := NewParticipant("a")
	require.NoError(t, err)
	b, err := NewParticipant("a")
	require.NoError(t, err)
	assert.NotEqual(t, a.ConnectionID, b.ConnectionID)
}

func TestParseRoomID(t *testing.T) {
	id, err := ParseRoomID(" r1 ")
	require.NoError(t, err)
	assert.Equal(t, RoomID("r1"), id)

	_, err = ParseRoomID("")
	assert.ErrorIs(t, err, ErrRoomIDEmpty)

	id, err = ParseRoomID(strings.Repeat("房", MaxRoomIDLen))
	require.NoError(t, err)
	assert.Len(t, []rune(string(id)), MaxRoomIDLen)

	_, err = ParseRoomID(strings.Repeat("r", MaxRoomIDLen+1))
	assert.ErrorIs(t, err, ErrRoomIDTooLong)
}

func TestSystemMessages(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	p := &Participant{ConnectionID: "c1", DisplayName: "A"}

	joined := JoinedMessage(p, true, now)
	assert.Equal(t, "A joined the room as host", joined.Text)
	assert.Equal(t, MessageSystem, joined.Kind)
	assert.Empty(t, joined.SenderID)
	assert.Equal(t, now, joined.CreatedAt)

	assert.Equal(t, "A joined the room", JoinedMessage(p, false, now).Text)
	assert.Equal(t, "A left the room", LeftMessage(p, now).Text)

	user := NewUserMessage(p, "hi", now)
	assert.Equal(t, MessageUser, user.Kind)
	assert.Equal(t, ConnectionID("c1"), user.SenderID)
	assert.Equal(t, "A", user.SenderName)
	assert.NotEqual(t, joined.ID, user.ID)
}
