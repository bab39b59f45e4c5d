package services

import (
	"encoding/json"
	"sync"
	"time"

	"foodmanager/models"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	FoodCreated = "food.created"
	FoodUpdated = "food.updated"
	FoodDeleted = "food.deleted"
)

const (
	writeTimeout = 10 * time.Second
	pingInterval = 25 * time.Second
	// sendBuffer is how many events a client may fall behind before it is dropped.
	sendBuffer = 16
)

type FoodEvent struct {
	Kind string       `json:"kind"`
	ID   string       `json:"id"`
	Food *models.Food `json:"food,omitempty"`
}

// WSClient is one page subscribed to food changes. Only its write loop
// writes to Conn.
type WSClient struct {
	Conn *websocket.Conn
	send chan []byte
	done chan struct{}
	once sync.Once
}

func NewWSClient(conn *websocket.Conn) *WSClient {
	return &WSClient{
		Conn: conn,
		send: make(chan []byte, sendBuffer),
		done: make(chan struct{}),
	}
}

func (c *WSClient) close() {
	c.once.Do(func() {
		close(c.done)
		_ = c.Conn.Close()
	})
}

// FoodEvents fans food changes out to every connected client.
type FoodEvents struct {
	mu      sync.RWMutex
	clients map[*WSClient]struct{}
	log     *zap.Logger
}

func NewFoodEvents(log *zap.Logger) *FoodEvents {
	return &FoodEvents{
		clients: make(map[*WSClient]struct{}),
		log:     log.Named("food-events"),
	}
}

// Register adds c and starts its write loop.
func (h *FoodEvents) Register(c *WSClient) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	n := len(h.clients)
	h.mu.Unlock()
	h.log.Debug("client connected", zap.Int("clients", n))

	go h.writeLoop(c)
}

func (h *FoodEvents) Unregister(c *WSClient) {
	h.mu.Lock()
	_, ok := h.clients[c]
	delete(h.clients, c)
	n := len(h.clients)
	h.mu.Unlock()
	c.close()
	if ok {
		h.log.Debug("client disconnected", zap.Int("clients", n))
	}
}

func (h *FoodEvents) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Publish queues ev for every client without waiting on the network.
// Clients whose queue is full are dropped.
func (h *FoodEvents) Publish(ev FoodEvent) {
	msg, err := json.Marshal(ev)
	if err != nil {
		h.log.Error("marshal food event", zap.Error(err))
		return
	}

	var slow []*WSClient
	h.mu.RLock()
	for c := range h.clients {
		select {
		case c.send <- msg:
		default:
			slow = append(slow, c)
		}
	}
	h.mu.RUnlock()

	for _, c := range slow {
		h.log.Debug("drop client that stopped reading")
		h.Unregister(c)
	}
}

// writeLoop delivers queued events and keepalive pings until the client
// goes away or a write fails.
func (h *FoodEvents) writeLoop(c *WSClient) {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		var err error
		select {
		case <-c.done:
			return
		case msg := <-c.send:
			_ = c.Conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			err = c.Conn.WriteMessage(websocket.TextMessage, msg)
		case <-ticker.C:
			_ = c.Conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			err = c.Conn.WriteMessage(websocket.PingMessage, nil)
		}
		if err != nil {
			h.log.Debug("drop client after failed write", zap.Error(err))
			h.Unregister(c)
			return
		}
	}
}
