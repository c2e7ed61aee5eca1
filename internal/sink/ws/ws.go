// Package ws streams packet summaries to browser clients over WebSocket.
package ws

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"firestige.xyz/strix/internal/core/packet"
	"firestige.xyz/strix/internal/log"
	"firestige.xyz/strix/internal/sink"
)

const (
	writeWait  = 5 * time.Second
	sendBuffer = 512 // buffered messages per client — drops when full
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Sink broadcasts every consumed packet to all connected clients.
type Sink struct {
	log     log.Logger
	server  *http.Server
	mu      sync.Mutex
	clients map[*client]struct{}
	closed  bool
}

type client struct {
	conn   *websocket.Conn
	sendCh chan []byte
}

// NewSink starts an HTTP listener serving the live packet stream on /live.
func NewSink(listen string, logger log.Logger) *Sink {
	s := &Sink{
		log:     logger,
		clients: make(map[*client]struct{}),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/live", s.handleLive)
	s.server = &http.Server{Addr: listen, Handler: mux}

	go func() {
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.WithError(err).Error("ws sink listener failed")
		}
	}()
	return s
}

func (s *Sink) handleLive(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.WithError(err).Debug("ws upgrade failed")
		return
	}

	c := &client{
		conn:   conn,
		sendCh: make(chan []byte, sendBuffer),
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		conn.Close()
		return
	}
	s.clients[c] = struct{}{}
	s.mu.Unlock()

	go s.writeLoop(c)
}

func (s *Sink) writeLoop(c *client) {
	defer func() {
		c.conn.Close()
		s.mu.Lock()
		delete(s.clients, c)
		s.mu.Unlock()
	}()

	for msg := range c.sendCh {
		c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			return
		}
	}
}

// Consume serializes the packet summary once and fans it out. A slow
// client drops messages instead of blocking the capture pipeline.
func (s *Sink) Consume(pkt *packet.Packet) {
	msg, err := json.Marshal(sink.Summarize(pkt))
	if err != nil {
		s.log.WithError(err).Error("marshal packet summary")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for c := range s.clients {
		select {
		case c.sendCh <- msg:
		default:
		}
	}
}

func (s *Sink) Close() error {
	s.mu.Lock()
	s.closed = true
	for c := range s.clients {
		close(c.sendCh)
		delete(s.clients, c)
	}
	s.mu.Unlock()
	if s.server == nil {
		return nil
	}
	return s.server.Close()
}
