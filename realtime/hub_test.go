package realtime_test

import (
	"fmt"
	"net"
	"sync"
	"testing"
	"time"

	"lms/config"
	"lms/middleware"
	"lms/realtime"

	fwebsocket "github.com/fasthttp/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

func dialTestSocket(t *testing.T, userID uint) *fwebsocket.Conn {
	t.Helper()
	config.LoadConfig()

	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	app.Use("/ws", realtime.UpgradeRequired)
	app.Get("/ws", middleware.JWTMiddleware, realtime.Handler())

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	go func() { _ = app.Listener(ln) }()
	t.Cleanup(func() { _ = app.Shutdown() })

	token, err := middleware.GenerateJWT(userID, "Socket Tester", "STUDENT", "socket@test.local")
	require.NoError(t, err)

	url := fmt.Sprintf("ws://%s/ws?token=%s", ln.Addr().String(), token)
	var conn *fwebsocket.Conn
	for i := 0; i < 50; i++ {
		conn, _, err = fwebsocket.DefaultDialer.Dial(url, nil)
		if err == nil {
			break
		}
		time.Sleep(20 * time.Millisecond)
	}
	require.NoError(t, err, "could not dial websocket endpoint")
	t.Cleanup(func() { conn.Close() })
	return conn
}

// Concurrent events for one user must serialize on the socket: the websocket
// library panics on concurrent writers. Run with -race.
func TestPushSerializesConcurrentWritesPerConnection(t *testing.T) {
	const userID uint = 42
	conn := dialTestSocket(t, userID)

	received := make(chan map[string]interface{}, 64)
	go func() {
		for {
			var msg map[string]interface{}
			if err := conn.ReadJSON(&msg); err != nil {
				return
			}
			received <- msg
		}
	}()

	// Registration happens in the server handler after the dial returns;
	// push until the first frame comes back.
	ready := false
	for i := 0; i < 50 && !ready; i++ {
		realtime.Push(userID, fiber.Map{"type": "ping"})
		select {
		case <-received:
			ready = true
		case <-time.After(20 * time.Millisecond):
		}
	}
	require.True(t, ready, "socket never registered with the hub")

	const pushes = 32
	var wg sync.WaitGroup
	for i := 0; i < pushes; i++ {
		wg.Add(1)
		go func(seq int) {
			defer wg.Done()
			realtime.Push(userID, fiber.Map{"type": "notification", "seq": seq})
		}(i)
	}
	wg.Wait()

	// Stray ping frames from the readiness loop may still be in flight.
	got := 0
	deadline := time.After(5 * time.Second)
	for got < pushes {
		select {
		case msg := <-received:
			if msg["type"] == "notification" {
				got++
			}
		case <-deadline:
			t.Fatalf("received only %d of %d pushed frames", got, pushes)
		}
	}
}

func TestPushWithoutConnectionIsNoop(t *testing.T) {
	realtime.Push(9999, fiber.Map{"type": "notification"})
}
