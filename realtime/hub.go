package realtime

import (
	"log"
	"sync"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
)

// client pairs a socket with its write lock. The websocket library allows at
// most one concurrent writer per connection, so every WriteJSON goes through
// send.
type client struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (cl *client) send(payload interface{}) error {
	cl.mu.Lock()
	defer cl.mu.Unlock()
	return cl.conn.WriteJSON(payload)
}

// hub keeps the open sockets per user. Delivery is best-effort and
// at-most-once: a user with no connected socket simply misses the push and
// relies on the persisted notification record instead.
var hub = struct {
	sync.RWMutex
	conns map[uint][]*client
}{conns: make(map[uint][]*client)}

func register(userID uint, c *websocket.Conn) *client {
	cl := &client{conn: c}
	hub.Lock()
	hub.conns[userID] = append(hub.conns[userID], cl)
	hub.Unlock()
	return cl
}

func unregister(userID uint, cl *client) {
	hub.Lock()
	defer hub.Unlock()
	conns := hub.conns[userID]
	for i, existing := range conns {
		if existing == cl {
			hub.conns[userID] = append(conns[:i], conns[i+1:]...)
			break
		}
	}
	if len(hub.conns[userID]) == 0 {
		delete(hub.conns, userID)
	}
}

// Push sends a payload to every open socket of the user. Write errors are
// dropped; the socket will be cleaned up when its read loop exits.
func Push(userID uint, payload interface{}) {
	hub.RLock()
	conns := append([]*client(nil), hub.conns[userID]...)
	hub.RUnlock()

	for _, cl := range conns {
		if err := cl.send(payload); err != nil {
			log.Printf("Websocket push to user %d failed: %v", userID, err)
		}
	}
}

// UpgradeRequired gates the websocket route behind a proper upgrade request.
func UpgradeRequired(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}

// Handler keeps the connection registered for pushes until the client hangs
// up. Inbound messages are ignored; the socket is server-to-client only.
func Handler() fiber.Handler {
	return websocket.New(func(c *websocket.Conn) {
		userID, ok := c.Locals("userId").(uint)
		if !ok {
			c.Close()
			return
		}

		cl := register(userID, c)
		defer func() {
			unregister(userID, cl)
			c.Close()
		}()

		for {
			if _, _, err := c.ReadMessage(); err != nil {
				return
			}
		}
	})
}
