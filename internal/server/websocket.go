package server

import (
	"context"
	"net"
	"net/http"
	"sync"
	"sync/atomic"

	"github.com/gorilla/websocket"

	"github.com/fieldsim/fieldsim/internal/core/engine"
	"github.com/fieldsim/fieldsim/internal/core/observability/log"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// FrameServer broadcasts match frames to every connected WebSocket
// client. It is a swappable consumer of the engine's frame stream; the
// simulation never depends on it.
type FrameServer struct {
	addr   string
	logger log.Log

	mu      sync.Mutex
	clients map[*websocket.Conn]bool

	httpServer *http.Server
	listener   net.Listener
	running    int32 // atomic bool
}

func NewFrameServer(addr string, logger log.Log) *FrameServer {
	return &FrameServer{
		addr:    addr,
		logger:  logger,
		clients: make(map[*websocket.Conn]bool),
	}
}

// Start binds the listener and serves in the background.
func (s *FrameServer) Start(ctx context.Context) error {
	if !atomic.CompareAndSwapInt32(&s.running, 0, 1) {
		return ErrServerAlreadyRunning
	}

	listener, err := net.Listen("tcp", s.addr)
	if err != nil {
		atomic.StoreInt32(&s.running, 0)
		return err
	}
	s.listener = listener

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	s.httpServer = &http.Server{Handler: mux}

	go func() {
		if err := s.httpServer.Serve(listener); err != nil && err != http.ErrServerClosed {
			s.logger.Error("frame server failed", log.Error(err))
		}
	}()

	s.logger.Info("frame server listening", log.String("addr", listener.Addr().String()))
	return nil
}

// Stop shuts the listener down and disconnects every client.
func (s *FrameServer) Stop(ctx context.Context) error {
	if !atomic.CompareAndSwapInt32(&s.running, 1, 0) {
		return ErrServerNotRunning
	}

	s.mu.Lock()
	for conn := range s.clients {
		_ = conn.Close()
	}
	s.clients = make(map[*websocket.Conn]bool)
	s.mu.Unlock()

	return s.httpServer.Shutdown(ctx)
}

// Addr returns the bound address, useful when the configured port is 0.
func (s *FrameServer) Addr() string {
	if s.listener == nil {
		return s.addr
	}
	return s.listener.Addr().String()
}

// Broadcast sends one frame to every client. A client that cannot keep
// up is dropped rather than blocking the tick loop.
func (s *FrameServer) Broadcast(frame engine.Frame) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for conn := range s.clients {
		if err := conn.WriteJSON(frame); err != nil {
			s.logger.Warn("dropping slow frame client",
				log.String("remote", conn.RemoteAddr().String()), log.Error(err))
			_ = conn.Close()
			delete(s.clients, conn)
		}
	}
}

// Pump forwards frames from the engine subscription until the channel
// closes or the context is done.
func (s *FrameServer) Pump(ctx context.Context, frames <-chan engine.Frame) {
	for {
		select {
		case <-ctx.Done():
			return
		case frame, ok := <-frames:
			if !ok {
				return
			}
			s.Broadcast(frame)
		}
	}
}

func (s *FrameServer) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", log.Error(err))
		return
	}

	s.mu.Lock()
	s.clients[conn] = true
	s.mu.Unlock()

	s.logger.Info("frame client connected", log.String("remote", conn.RemoteAddr().String()))

	// Reader loop exists only to detect the close.
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				break
			}
		}
		s.mu.Lock()
		delete(s.clients, conn)
		s.mu.Unlock()
		_ = conn.Close()
	}()
}
