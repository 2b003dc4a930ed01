package session

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/protanki-go/protocol/core/framer"
	"github.com/protanki-go/protocol/core/handler"
	"github.com/protanki-go/protocol/core/wire"
	"github.com/protanki-go/protocol/core/wire/messages"
)

func newHandshakedPair(t *testing.T) (*Session, *Session) {
	t.Helper()
	clientConn, serverConn := net.Pipe()
	t.Cleanup(func() { clientConn.Close(); serverConn.Close() })

	serverCatalog := wire.NewCatalog()
	messages.RegisterAll(serverCatalog, wire.RoleServer)
	clientCatalog := wire.NewCatalog()
	messages.RegisterAll(clientCatalog, wire.RoleClient)

	sc := framer.New(serverConn, wire.RoleServer, serverCatalog, nil, nil)
	cc := framer.New(clientConn, wire.RoleClient, clientCatalog, nil, nil)

	require.NoError(t, framer.ServerHandshake(sc))

	deadline := time.Now().Add(2 * time.Second)
	var first wire.Message
	for first == nil {
		// The handshake frame is only written out by the server's own
		// Progress, so both connections are progressed here.
		_, err := sc.Progress()
		require.NoError(t, err)
		m, err := cc.Progress()
		require.NoError(t, err)
		first = m
		if time.Now().After(deadline) {
			t.Fatal("handshake timed out")
		}
		time.Sleep(time.Millisecond)
	}
	ci, err := framer.ClientHandshake(first)
	require.NoError(t, err)
	cc.InstallCipher(ci)

	return New(sc, nil, nil), New(cc, nil, nil)
}

func pumpUntil(t *testing.T, s *Session, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		require.NoError(t, s.Progress())
		if time.Now().After(deadline) {
			t.Fatal("pumpUntil: deadline exceeded")
		}
		time.Sleep(time.Millisecond)
	}
}

func TestSendAndDispatchRoundTrip(t *testing.T) {
	server, client := newHandshakedPair(t)

	require.NoError(t, client.Send(&messages.EncryptionInitialized{LanguageCode: "en"}))

	stop := make(chan struct{})
	defer close(stop)
	go func() {
		for {
			select {
			case <-stop:
				return
			default:
			}
			_ = client.Progress()
			time.Sleep(time.Millisecond)
		}
	}()

	var got *messages.EncryptionInitialized
	h := recordHandler(func(msg wire.Message) {
		if m, ok := msg.(*messages.EncryptionInitialized); ok {
			got = m
		}
	})
	server.RegisterHandler(h)
	pumpUntil(t, server, func() bool { return got != nil })
	require.Equal(t, "en", got.LanguageCode)
}

func TestAwaitMatchResolvesOnMatchingPacket(t *testing.T) {
	server, client := newHandshakedPair(t)

	fut := AwaitMatch[int32](server, func(msg wire.Message) (int32, bool, error) {
		if p, ok := msg.(*messages.Pong); ok {
			return int32(p.ClientTime), true, nil
		}
		return 0, false, nil
	})

	require.NoError(t, client.Send(&messages.Ping{}))
	require.NoError(t, client.Send(&messages.Pong{ClientTime: 42}))
	require.NoError(t, client.Send(&messages.Pong{ClientTime: 99}))

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	pumpInBackground := func(s *Session) {
		go func() {
			for {
				select {
				case <-ctx.Done():
					return
				default:
				}
				if err := s.Progress(); err != nil {
					return
				}
				time.Sleep(time.Millisecond)
			}
		}()
	}
	pumpInBackground(server)
	pumpInBackground(client)

	v, err := fut.Await(ctx)
	require.NoError(t, err)
	require.Equal(t, int32(42), v, "await_match resolves on the first matching packet")
}

func TestComponentBagRoundTrip(t *testing.T) {
	server, _ := newHandshakedPair(t)
	type chatState struct{ channel int }
	RegisterComponent(server, &chatState{channel: 7})
	got, ok := GetComponent[*chatState](server)
	require.True(t, ok)
	require.Equal(t, 7, got.channel)
}

func TestSessionTimestampIsMonotonicNonNegative(t *testing.T) {
	server, _ := newHandshakedPair(t)
	before := server.SessionTimestamp()
	require.GreaterOrEqual(t, before, int32(0))
	time.Sleep(2 * time.Millisecond)
	require.GreaterOrEqual(t, server.SessionTimestamp(), before)
}

func TestDisconnectWithoutFlushIsImmediate(t *testing.T) {
	server, _ := newHandshakedPair(t)
	server.Disconnect(false)
	require.True(t, server.Disconnected())
}

// recordHandler adapts a plain func into a handler.Handler[*Session]
// that never completes on its own (for tests that just want to observe
// dispatched packets).
type recordFn func(msg wire.Message)

func (f recordFn) Observe(_ *Session, msg wire.Message) error {
	f(msg)
	return nil
}

func (f recordFn) Progress(*Session) (handler.Poll, error) { return handler.Pending, nil }

func recordHandler(f func(wire.Message)) handler.Handler[*Session] {
	return recordFn(f)
}
