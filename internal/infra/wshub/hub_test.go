package wshub

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func TestBroadcastReachesClient(t *testing.T) {
	hub := NewHub()
	defer hub.Close()

	srv := httptest.NewServer(hub)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer conn.Close()

	// give the hub a moment to register the client
	deadline := time.Now().Add(2 * time.Second)
	for {
		hub.Broadcast("streaming", map[string]string{"cusip": "91282CAX9"})

		conn.SetReadDeadline(time.Now().Add(200 * time.Millisecond))
		_, msg, err := conn.ReadMessage()
		if err == nil {
			var tick Tick
			if err := json.Unmarshal(msg, &tick); err != nil {
				t.Fatal(err)
			}
			if tick.Stream != "streaming" {
				t.Errorf("stream = %s", tick.Stream)
			}
			return
		}
		if time.Now().After(deadline) {
			t.Fatalf("no broadcast received: %v", err)
		}
	}
}

func TestBroadcastWithNoClients(t *testing.T) {
	hub := NewHub()
	defer hub.Close()
	// must not panic or block
	hub.Broadcast("gui", "tick")
}
