package task

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/protanki-go/protocol/core/handler"
	"github.com/protanki-go/protocol/core/wire"
	"github.com/stretchr/testify/require"
)

type fakeSession struct{ sent []wire.Message }

type stubMsg struct{ id int32 }

func (m *stubMsg) MessageID() int32               { return m.id }
func (m *stubMsg) ModelID() int32                 { return 0 }
func (m *stubMsg) Direction() wire.Direction      { return wire.DirectionX2X }
func (m *stubMsg) EncodeFields(w io.Writer) error { return nil }

func matchID(want int32) Matcher[int32] {
	return func(msg wire.Message) (int32, bool, error) {
		if msg.MessageID() == want {
			return want, true, nil
		}
		return 0, false, nil
	}
}

func TestExecuteTaskRunsExecutorThenResolves(t *testing.T) {
	reg := handler.NewRegistry[*fakeSession]()
	s := &fakeSession{}

	ran := false
	fut := Execute(reg, func(s *fakeSession) error {
		ran = true
		return nil
	}, matchID(7))

	require.NoError(t, reg.Progress(s))
	require.True(t, ran)
	require.Equal(t, 1, reg.Len())

	require.NoError(t, reg.Dispatch(s, &stubMsg{id: 1}))
	require.NoError(t, reg.Progress(s))
	require.Equal(t, 1, reg.Len(), "non-matching packet must not resolve the task")

	require.NoError(t, reg.Dispatch(s, &stubMsg{id: 7}))
	require.NoError(t, reg.Progress(s))
	require.Equal(t, 0, reg.Len())

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	v, err := fut.Await(ctx)
	require.NoError(t, err)
	require.Equal(t, int32(7), v)
}

func TestAwaitMatchHasNoExecutor(t *testing.T) {
	reg := handler.NewRegistry[*fakeSession]()
	s := &fakeSession{}
	fut := AwaitMatch[*fakeSession](reg, matchID(3))

	require.NoError(t, reg.Progress(s))
	require.NoError(t, reg.Dispatch(s, &stubMsg{id: 3}))
	require.NoError(t, reg.Progress(s))

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	v, err := fut.Await(ctx)
	require.NoError(t, err)
	require.Equal(t, int32(3), v)
}

func TestExecutorErrorResolvesFutureAndPropagates(t *testing.T) {
	reg := handler.NewRegistry[*fakeSession]()
	s := &fakeSession{}
	boom := errors.New("boom")
	fut := Execute(reg, func(*fakeSession) error { return boom }, matchID(1))

	err := reg.Progress(s)
	require.ErrorIs(t, err, boom)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	_, awaitErr := fut.Await(ctx)
	require.ErrorIs(t, awaitErr, boom)
}

func TestOnSessionClosedResolvesDisconnected(t *testing.T) {
	reg := handler.NewRegistry[*fakeSession]()
	fut := AwaitMatch[*fakeSession](reg, matchID(9))
	reg.CloseAll()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	_, err := fut.Await(ctx)
	require.ErrorIs(t, err, ErrDisconnected)
}

func TestCancelRemovesHandlerOnNextProgress(t *testing.T) {
	reg := handler.NewRegistry[*fakeSession]()
	s := &fakeSession{}
	fut := AwaitMatch[*fakeSession](reg, matchID(9))
	fut.Cancel()

	require.NoError(t, reg.Progress(s))
	require.Equal(t, 0, reg.Len())
}
