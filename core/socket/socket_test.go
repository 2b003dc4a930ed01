package socket

import (
	"io"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestPollSendThenRecv(t *testing.T) {
	client, server := net.Pipe()
	defer client.Close()
	defer server.Close()

	cp := New(client)
	defer cp.Close()
	sp := New(server)
	defer sp.Close()

	payload := []byte("hello")
	for {
		if _, ready := cp.PollSend(payload); ready {
			break
		}
		time.Sleep(time.Millisecond)
	}

	buf := make([]byte, 16)
	var res Result
	for {
		r, ready := sp.PollRecv(buf)
		if ready {
			res = r
			break
		}
		time.Sleep(time.Millisecond)
	}
	require.NoError(t, res.Err)
	require.Equal(t, "hello", string(buf[:res.N]))
}

func TestPollRecvReportsEOFOnClose(t *testing.T) {
	client, server := net.Pipe()
	sp := New(server)
	defer sp.Close()

	require.NoError(t, client.Close())

	buf := make([]byte, 16)
	var res Result
	for {
		r, ready := sp.PollRecv(buf)
		if ready {
			res = r
			break
		}
		time.Sleep(time.Millisecond)
	}
	require.ErrorIs(t, res.Err, io.EOF)
}

func TestPollRecvNotReadyUntilDataArrives(t *testing.T) {
	client, server := net.Pipe()
	defer client.Close()
	defer server.Close()

	sp := New(server)
	defer sp.Close()

	buf := make([]byte, 16)
	_, ready := sp.PollRecv(buf)
	require.False(t, ready, "no writer yet, poll must not block or fabricate a result")
}
