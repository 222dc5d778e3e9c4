package live

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"arenaserver/arena"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Hub fans finalized match results out to connected observers.
type Hub struct {
	mu      sync.Mutex
	clients map[*client]bool
	logger  *zap.Logger
}

type client struct {
	conn *websocket.Conn
}

func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		clients: make(map[*client]bool),
		logger:  logger,
	}
}

// HandleConnection upgrades an observer and keeps the connection alive
// with pings until it drops.
func (h *Hub) HandleConnection(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error("error upgrading websocket", zap.Error(err))
		return
	}

	c := &client{conn: conn}
	h.mu.Lock()
	h.clients[c] = true
	h.mu.Unlock()
	h.logger.Info("result feed observer connected")

	go h.keepAlive(c)
	go h.drain(c)
}

// drain reads and discards inbound frames so close/ping control messages
// get processed.
func (h *Hub) drain(c *client) {
	defer h.remove(c)
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				h.logger.Error("websocket error", zap.Error(err))
			}
			return
		}
	}
}

func (h *Hub) keepAlive(c *client) {
	defer h.remove(c)

	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})
	c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))

	ticker := time.NewTicker(10 * time.Second)
	defer ticker.Stop()

	for range ticker.C {
		if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
			return
		}
	}
}

func (h *Hub) remove(c *client) {
	h.mu.Lock()
	if h.clients[c] {
		delete(h.clients, c)
		c.conn.Close()
	}
	h.mu.Unlock()
}

// BroadcastResult pushes a finalized match to every observer. Only public
// outcome fields leave the server; label assignments never do.
func (h *Hub) BroadcastResult(result *arena.FinalizeResult) {
	if result == nil {
		return
	}
	message := map[string]interface{}{
		"type":          "matchFinalized",
		"matchId":       result.MatchPublicID,
		"winnerId":      result.WinnerID,
		"winnerName":    result.WinnerName,
		"tally":         result.Tally,
		"ratingApplied": result.RatingApplied,
		"timestamp":     time.Now().Format(time.RFC3339),
	}
	payload, err := json.Marshal(message)
	if err != nil {
		h.logger.Error("failed to encode result broadcast", zap.Error(err))
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			h.logger.Error("failed to send result broadcast", zap.Error(err))
		}
	}
}
