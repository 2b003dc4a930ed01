package logfilter

import (
	"testing"

	"github.com/protanki-go/protocol/core/wire/messages"
	"github.com/stretchr/testify/require"
)

func TestAlwaysAndNever(t *testing.T) {
	ping := &messages.Ping{}
	require.True(t, Always().ShouldLog(true, ping))
	require.False(t, Never().ShouldLog(false, ping))
}

func TestAllowModelIDs(t *testing.T) {
	f := AllowModelIDs(1) // Ping/Pong share model id 1
	require.True(t, f.ShouldLog(true, &messages.Ping{}))
	require.False(t, f.ShouldLog(true, &messages.ChatMessageSend{}))
}

func TestDenyModelIDs(t *testing.T) {
	f := DenyModelIDs(1)
	require.False(t, f.ShouldLog(false, &messages.Pong{}))
	require.True(t, f.ShouldLog(false, &messages.ChatMessageSend{}))
}
