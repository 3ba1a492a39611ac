// Package net shares a board across the LAN: a host serves the
// authoritative stroke list over websockets and every peer receives
// wholesale stroke-list replacements, mirroring the engine's
// SetStrokes semantics. Discovery happens over mDNS.
package net

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
)

// Message is the wire format exchanged between host and clients. The
// stroke payload stays opaque here; only the engine knows its schema.
type Message struct {
	Type    string          `json:"type"`
	Strokes json.RawMessage `json:"strokes,omitempty"`
}

const (
	// MessageStrokes carries a full stroke-list replacement.
	MessageStrokes = "strokes"
)

// Host accepts board clients and relays stroke updates to all of them.
type Host struct {
	upgrader websocket.Upgrader
	server   *http.Server

	mu       sync.RWMutex
	peers    map[*websocket.Conn]bool
	snapshot json.RawMessage

	// OnStrokes is called when a client pushes a stroke update.
	OnStrokes func(strokes json.RawMessage)
}

// NewHost creates a host; call Serve to start accepting clients.
func NewHost() *Host {
	return &Host{
		upgrader: websocket.Upgrader{
			// Local sharing only; any origin on the LAN may join.
			CheckOrigin: func(*http.Request) bool { return true },
		},
		peers:    make(map[*websocket.Conn]bool),
		snapshot: json.RawMessage("[]"),
	}
}

// Serve listens on the given port and blocks until the server stops.
func (h *Host) Serve(port int) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", h.handleJoin)
	h.server = &http.Server{Addr: fmt.Sprintf(":%d", port), Handler: mux}

	log.Printf("board host listening on port %d", port)
	if err := h.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("board host: %w", err)
	}
	return nil
}

// Close stops accepting clients and drops all peers.
func (h *Host) Close() error {
	h.mu.Lock()
	for conn := range h.peers {
		conn.Close()
	}
	h.peers = make(map[*websocket.Conn]bool)
	h.mu.Unlock()

	if h.server != nil {
		return h.server.Close()
	}
	return nil
}

func (h *Host) handleJoin(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("join rejected: %v", err)
		return
	}

	h.mu.Lock()
	h.peers[conn] = true
	snapshot := h.snapshot
	h.mu.Unlock()
	log.Printf("client joined from %s", conn.RemoteAddr())

	// A new client immediately receives the current board.
	if err := conn.WriteJSON(Message{Type: MessageStrokes, Strokes: snapshot}); err != nil {
		log.Printf("snapshot to %s failed: %v", conn.RemoteAddr(), err)
	}

	go h.readLoop(conn)
}

func (h *Host) readLoop(conn *websocket.Conn) {
	defer func() {
		h.mu.Lock()
		delete(h.peers, conn)
		h.mu.Unlock()
		conn.Close()
		log.Printf("client %s left", conn.RemoteAddr())
	}()

	for {
		var msg Message
		if err := conn.ReadJSON(&msg); err != nil {
			return
		}
		if msg.Type != MessageStrokes {
			continue
		}
		h.setSnapshot(msg.Strokes)
		if h.OnStrokes != nil {
			h.OnStrokes(msg.Strokes)
		}
		h.relay(msg, conn)
	}
}

// Broadcast pushes a stroke update from the host itself to every peer.
func (h *Host) Broadcast(strokes json.RawMessage) {
	h.setSnapshot(strokes)
	h.relay(Message{Type: MessageStrokes, Strokes: strokes}, nil)
}

func (h *Host) setSnapshot(strokes json.RawMessage) {
	h.mu.Lock()
	h.snapshot = strokes
	h.mu.Unlock()
}

func (h *Host) relay(msg Message, exclude *websocket.Conn) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for conn := range h.peers {
		if conn == exclude {
			continue
		}
		if err := conn.WriteJSON(msg); err != nil {
			log.Printf("relay to %s failed: %v", conn.RemoteAddr(), err)
		}
	}
}

// Client joins a hosted board and mirrors its stroke list.
type Client struct {
	conn *websocket.Conn

	// OnStrokes receives every stroke-list replacement from the host.
	OnStrokes func(strokes json.RawMessage)
}

// Join dials ws://addr/ws and starts the read loop.
func Join(addr string, onStrokes func(json.RawMessage)) (*Client, error) {
	conn, _, err := websocket.DefaultDialer.Dial("ws://"+addr+"/ws", nil)
	if err != nil {
		return nil, fmt.Errorf("join %s: %w", addr, err)
	}

	c := &Client{conn: conn, OnStrokes: onStrokes}
	go c.readLoop()
	return c, nil
}

func (c *Client) readLoop() {
	for {
		var msg Message
		if err := c.conn.ReadJSON(&msg); err != nil {
			log.Printf("disconnected from host: %v", err)
			return
		}
		if msg.Type == MessageStrokes && c.OnStrokes != nil {
			c.OnStrokes(msg.Strokes)
		}
	}
}

// Send pushes a local stroke update to the host.
func (c *Client) Send(strokes json.RawMessage) error {
	return c.conn.WriteJSON(Message{Type: MessageStrokes, Strokes: strokes})
}

// Close drops the connection.
func (c *Client) Close() error {
	return c.conn.Close()
}
