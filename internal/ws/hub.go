package ws

import (
	"sync"

	"github.com/gofiber/contrib/websocket"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Client ties a websocket connection to the authenticated user it belongs to.
type Client struct {
	Conn   *websocket.Conn
	UserID uuid.UUID
}

// Hub delivers notification events to connected clients. Delivery is
// best-effort: a user with no open connection simply polls the
// notification endpoints later.
type Hub struct {
	Register   chan *Client
	Unregister chan *Client
	Broadcast  chan []byte
	direct     chan directMessage

	clients map[*Client]bool
	log     *zap.Logger
	mutex   sync.Mutex
}

type directMessage struct {
	userID  uuid.UUID
	payload []byte
}

func NewHub(log *zap.Logger) *Hub {
	return &Hub{
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		Broadcast:  make(chan []byte),
		direct:     make(chan directMessage, 64),
		clients:    make(map[*Client]bool),
		log:        log,
	}
}

// SendToUser queues a payload for every open connection of one user.
func (h *Hub) SendToUser(userID uuid.UUID, payload []byte) {
	h.direct <- directMessage{userID: userID, payload: payload}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.mutex.Lock()
			h.clients[client] = true
			h.mutex.Unlock()
			h.log.Info("ws client connected", zap.String("user_id", client.UserID.String()))

		case client := <-h.Unregister:
			h.mutex.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				client.Conn.Close()
			}
			h.mutex.Unlock()

		case message := <-h.Broadcast:
			h.mutex.Lock()
			for client := range h.clients {
				if err := client.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
					client.Conn.Close()
					delete(h.clients, client)
				}
			}
			h.mutex.Unlock()

		case msg := <-h.direct:
			h.mutex.Lock()
			for client := range h.clients {
				if client.UserID != msg.userID {
					continue
				}
				if err := client.Conn.WriteMessage(websocket.TextMessage, msg.payload); err != nil {
					client.Conn.Close()
					delete(h.clients, client)
				}
			}
			h.mutex.Unlock()
		}
	}
}
