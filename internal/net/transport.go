package net

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"MyLocalPaint/internal/state"

	"github.com/gorilla/websocket"
)

const (
	FrameCheckpoint = "checkpoint"
	FrameOp         = "op"

	sendBuffer   = 256
	writeTimeout = 5 * time.Second
)

// Frame is one JSON message from host to viewer. A viewer always receives a
// checkpoint first, then ops in the order the host issued them.
type Frame struct {
	Type       string            `json:"type"`
	Op         *state.Op         `json:"op,omitempty"`
	Checkpoint *state.Checkpoint `json:"checkpoint,omitempty"`
}

// Apply plays a frame received from the host onto a viewer's controller.
// It must run on the viewer's UI goroutine.
func (f Frame) Apply(ctrl *state.Controller) error {
	switch f.Type {
	case FrameCheckpoint:
		if f.Checkpoint == nil {
			return errors.New("checkpoint frame without checkpoint")
		}
		return ctrl.Restore(*f.Checkpoint)
	case FrameOp:
		if f.Op == nil {
			return errors.New("op frame without op")
		}
		ctrl.Apply(*f.Op)
		return nil
	}
	return fmt.Errorf("unknown frame type %q", f.Type)
}

// Peer is one connected viewer.
type Peer struct {
	conn *websocket.Conn
	send chan []byte
}

// Hub fans canvas ops out to every connected viewer.
type Hub struct {
	upgrader   websocket.Upgrader
	checkpoint func() (state.Checkpoint, error)
	onUI       func(func())
	peers      map[*Peer]struct{}
	mu         sync.RWMutex
}

// NewHub builds a hub. checkpoint is always called through onUI, the same
// goroutine that calls Broadcast, so a new viewer never misses or repeats
// an op.
func NewHub(checkpoint func() (state.Checkpoint, error), onUI func(func())) *Hub {
	return &Hub{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 64 * 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		checkpoint: checkpoint,
		onUI:       onUI,
		peers:      make(map[*Peer]struct{}),
	}
}

func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[HOST] Upgrade from %s failed: %v", r.RemoteAddr, err)
		return
	}
	p := &Peer{conn: conn, send: make(chan []byte, sendBuffer)}

	var joinErr error
	h.onUI(func() {
		cp, err := h.checkpoint()
		if err != nil {
			joinErr = err
			return
		}
		data, err := json.Marshal(Frame{Type: FrameCheckpoint, Checkpoint: &cp})
		if err != nil {
			joinErr = err
			return
		}
		p.send <- data
		h.add(p)
	})
	if joinErr != nil {
		log.Printf("[HOST] Could not send canvas to %s: %v", r.RemoteAddr, joinErr)
		conn.Close()
		return
	}

	go p.writePump()
	h.readPump(p)
}

// Broadcast queues op for every viewer. Viewers whose queue is full are
// disconnected instead of stalling the caller.
func (h *Hub) Broadcast(op state.Op) {
	data, err := json.Marshal(Frame{Type: FrameOp, Op: &op})
	if err != nil {
		log.Printf("[HOST] Encoding op %d: %v", op.Seq, err)
		return
	}

	var slow []*Peer
	h.mu.RLock()
	for p := range h.peers {
		select {
		case p.send <- data:
		default:
			slow = append(slow, p)
		}
	}
	h.mu.RUnlock()

	for _, p := range slow {
		log.Printf("[HOST] Dropping slow viewer %s", p.conn.RemoteAddr())
		h.remove(p)
	}
}

// Count returns the number of connected viewers.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.peers)
}

// Close disconnects every viewer.
func (h *Hub) Close() {
	h.mu.RLock()
	peers := make([]*Peer, 0, len(h.peers))
	for p := range h.peers {
		peers = append(peers, p)
	}
	h.mu.RUnlock()
	for _, p := range peers {
		h.remove(p)
	}
}

func (h *Hub) add(p *Peer) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.peers[p] = struct{}{}
	log.Printf("[HOST] Viewer connected: %s", p.conn.RemoteAddr())
}

func (h *Hub) remove(p *Peer) {
	h.mu.Lock()
	_, ok := h.peers[p]
	if ok {
		delete(h.peers, p)
		close(p.send)
	}
	h.mu.Unlock()
	if ok {
		p.conn.Close()
		log.Printf("[HOST] Viewer disconnected: %s", p.conn.RemoteAddr())
	}
}

// readPump only watches for the viewer going away; viewers never send.
func (h *Hub) readPump(p *Peer) {
	defer h.remove(p)
	for {
		if _, _, err := p.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (p *Peer) writePump() {
	for data := range p.send {
		p.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := p.conn.WriteMessage(websocket.TextMessage, data); err != nil {
			log.Printf("[HOST] Write to %s failed: %v", p.conn.RemoteAddr(), err)
			p.conn.Close()
			return
		}
	}
}

// Serve runs the sharing endpoint at /ws until ctx is cancelled.
func Serve(ctx context.Context, port int, hub *Hub) error {
	mux := http.NewServeMux()
	mux.Handle("/ws", hub)
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("[HOST] Shutdown: %v", err)
		}
		hub.Close()
	}()

	log.Printf("[HOST] Sharing canvas on port %d", port)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}
