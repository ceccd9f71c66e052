// Package ingest runs a WebSocket server that decodes each incoming binary
// frame as a RemoteCompose document, one connection per client tracked in a
// mutex-guarded map.
package ingest

import (
	"fmt"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"remotecompose/internal/compose"
)

// Decoded is one successfully decoded document, tagged with the connection
// it arrived on.
type Decoded struct {
	ClientID string
	Document *compose.Document
}

// Failed is one frame that failed to decode.
type Failed struct {
	ClientID string
	Err      error
}

type client struct {
	id     string
	conn   *websocket.Conn
	closed bool
	mu     sync.Mutex
}

// Server accepts WebSocket connections and decodes each binary frame it
// receives as a RemoteCompose document, publishing results on Decoded and
// parse failures on Failed.
type Server struct {
	Decoded chan Decoded
	Failed  chan Failed

	upgrader websocket.Upgrader
	lenient  bool

	mu      sync.RWMutex
	clients map[string]*client
}

// NewServer returns a Server. When lenient is true, documents with unclosed
// containers are still decoded rather than rejected.
func NewServer(lenient bool) *Server {
	return &Server{
		Decoded: make(chan Decoded, 16),
		Failed:  make(chan Failed, 16),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		lenient: lenient,
		clients: make(map[string]*client),
	}
}

// ServeHTTP upgrades the request to a WebSocket connection and reads binary
// frames from it until the client disconnects.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}

	c := &client{id: uuid.NewString(), conn: conn}
	s.mu.Lock()
	s.clients[c.id] = c
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		delete(s.clients, c.id)
		s.mu.Unlock()
		conn.Close()
	}()

	for {
		msgType, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		if msgType != websocket.BinaryMessage {
			continue
		}
		s.handleFrame(c.id, data)
	}
}

func (s *Server) handleFrame(clientID string, data []byte) {
	var (
		doc *compose.Document
		err error
	)
	if s.lenient {
		doc, err = compose.ParseLenient(data)
	} else {
		doc, err = compose.Parse(data)
	}
	if err != nil {
		s.Failed <- Failed{ClientID: clientID, Err: fmt.Errorf("ingest: decode frame from %s: %w", clientID, err)}
		return
	}
	s.Decoded <- Decoded{ClientID: clientID, Document: doc}
}

// ClientIDs returns the IDs of currently connected clients.
func (s *Server) ClientIDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, len(s.clients))
	for id := range s.clients {
		ids = append(ids, id)
	}
	return ids
}

// Close closes every open connection and the Decoded/Failed channels.
func (s *Server) Close() {
	s.mu.Lock()
	for _, c := range s.clients {
		c.mu.Lock()
		if !c.closed {
			c.conn.Close()
			c.closed = true
		}
		c.mu.Unlock()
	}
	s.mu.Unlock()
	close(s.Decoded)
	close(s.Failed)
}
