package handlers

import (
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/tavola-dev/tavola/internal/models"
	"github.com/tavola-dev/tavola/internal/types"
	"github.com/tavola-dev/tavola/internal/utils"
)

var (
	orderClients   = make(map[string]map[*orderClient]bool)
	orderClientsMu sync.RWMutex
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
	sendBufferSize = 16
)

// orderClient is one subscribed socket. Only its write loop writes to conn.
type orderClient struct {
	conn *websocket.Conn
	send chan gin.H
}

func addOrderClient(email string, client *orderClient) {
	orderClientsMu.Lock()
	defer orderClientsMu.Unlock()

	if orderClients[email] == nil {
		orderClients[email] = make(map[*orderClient]bool)
	}
	orderClients[email][client] = true
}

func removeOrderClient(email string, client *orderClient) {
	orderClientsMu.Lock()
	defer orderClientsMu.Unlock()

	if clients, exists := orderClients[email]; exists {
		delete(clients, client)

		if len(clients) == 0 {
			delete(orderClients, email)
		}
	}
}

// BroadcastOrderUpdate queues the order for every socket subscribed to the
// order's email. It never waits on a socket; a client whose queue is full
// misses the update.
func BroadcastOrderUpdate(order models.Order) {
	msg := gin.H{
		"type":  "order_updated",
		"order": order,
	}

	orderClientsMu.RLock()
	defer orderClientsMu.RUnlock()

	for client := range orderClients[order.Email] {
		select {
		case client.send <- msg:
		default:
			log.Printf("Dropping update for order %s: subscriber queue full", order.ID)
		}
	}
}

func (c *orderClient) writeLoop(email string, done <-chan struct{}) {
	ticker := time.NewTicker(pingPeriod)

	defer func() {
		ticker.Stop()
		// Unblocks the read loop
		c.conn.Close()
	}()

	for {
		select {
		case <-done:
			return
		case msg := <-c.send:
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				log.Printf("Failed to set write deadline for %s: %v", email, err)
				return
			}

			if err := c.conn.WriteJSON(msg); err != nil {
				log.Printf("Failed to send order update to %s: %v", email, err)
				return
			}
		case <-ticker.C:
			if err := c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				log.Printf("Ping failed for %s: %v", email, err)
				return
			}
		}
	}
}

func OrderUpdatesSocket(c *gin.Context) {
	email, err := utils.GetEmailParam(c)

	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			if origin == "" {
				return true
			}
			for _, allowed := range types.AllowedOrigins {
				if origin == allowed {
					return true
				}
			}
			return false
		},
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}

	conn.SetReadLimit(maxMessageSize)
	if err := conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		log.Printf("Failed to set initial read deadline: %v", err)
		conn.Close()
		return
	}
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	client := &orderClient{conn: conn, send: make(chan gin.H, sendBufferSize)}
	client.send <- gin.H{
		"type":    "connected",
		"message": "Subscribed to order updates",
		"email":   email,
	}

	done := make(chan struct{})

	defer func() {
		close(done)
		removeOrderClient(email, client)
		conn.Close()

		log.Printf("WebSocket connection closed for %s", email)
	}()

	addOrderClient(email, client)

	go client.writeLoop(email, done)

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket error for %s: %v", email, err)
			}
			break
		}
	}
}
