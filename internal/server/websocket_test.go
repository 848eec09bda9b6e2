package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"

	"github.com/fieldsim/fieldsim/internal/core/engine"
	"github.com/fieldsim/fieldsim/internal/core/observability/log"
)

func TestFrameServerBroadcast(t *testing.T) {
	server := NewFrameServer("127.0.0.1:0", log.NewNop())

	s := httptest.NewServer(http.HandlerFunc(server.handleWebSocket))
	defer s.Close()

	u := "ws" + strings.TrimPrefix(s.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(u, nil)
	require.NoError(t, err)
	defer conn.Close()

	frame := engine.Frame{Tick: 7, Time: 0.7, Digest: 42}

	// The client registers asynchronously on upgrade; retry until the
	// broadcast reaches it.
	received := make(chan engine.Frame, 1)
	go func() {
		var got engine.Frame
		if err := conn.ReadJSON(&got); err == nil {
			received <- got
		}
	}()

	deadline := time.After(2 * time.Second)
	for {
		server.Broadcast(frame)
		select {
		case got := <-received:
			require.Equal(t, frame.Tick, got.Tick)
			require.Equal(t, frame.Digest, got.Digest)
			return
		case <-deadline:
			t.Fatal("frame never reached the client")
		case <-time.After(10 * time.Millisecond):
		}
	}
}

func TestFrameServerLifecycle(t *testing.T) {
	server := NewFrameServer("127.0.0.1:0", log.NewNop())
	ctx := context.Background()

	require.ErrorIs(t, server.Stop(ctx), ErrServerNotRunning)

	require.NoError(t, server.Start(ctx))
	require.ErrorIs(t, server.Start(ctx), ErrServerAlreadyRunning)

	// Broadcasting with no clients is a no-op.
	server.Broadcast(engine.Frame{Tick: 1})

	require.NoError(t, server.Stop(ctx))
	require.ErrorIs(t, server.Stop(ctx), ErrServerNotRunning)
}
