package websocket

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/smartone/finance-board-game/game/engine"
)

func TestNewHub(t *testing.T) {
	hub := NewHub()

	if hub == nil {
		t.Fatal("NewHub() returned nil")
	}

	if hub.watchers == nil {
		t.Error("Hub sessions map is nil")
	}

	if hub.broadcast == nil {
		t.Error("Hub broadcast channel is nil")
	}

	if hub.register == nil {
		t.Error("Hub register channel is nil")
	}

	if hub.unregister == nil {
		t.Error("Hub unregister channel is nil")
	}
}

func TestHubRegisterClient(t *testing.T) {
	hub := NewHub()

	client := &Client{
		hub:       hub,
		sessionID: "test-session",
		send:      make(chan []byte, 256),
	}

	hub.registerClient(client)

	if _, exists := hub.watchers["test-session"]; !exists {
		t.Error("Session was not created")
	}

	if !hub.watchers["test-session"][client] {
		t.Error("Client was not registered in session")
	}

	if len(hub.watchers["test-session"]) != 1 {
		t.Errorf("Expected 1 client in session, got %d", len(hub.watchers["test-session"]))
	}
}

func TestHubUnregisterClient(t *testing.T) {
	hub := NewHub()

	client := &Client{
		hub:       hub,
		sessionID: "test-session",
		send:      make(chan []byte, 256),
	}

	hub.registerClient(client)
	hub.unregisterClient(client)

	if _, exists := hub.watchers["test-session"]; exists {
		t.Error("Session should have been cleaned up after last client unregistered")
	}
}

func TestHubMultipleClientsInSession(t *testing.T) {
	hub := NewHub()
	sessionID := "multi-client-session"

	client1 := &Client{
		hub:       hub,
		sessionID: sessionID,
		send:      make(chan []byte, 256),
	}
	client2 := &Client{
		hub:       hub,
		sessionID: sessionID,
		send:      make(chan []byte, 256),
	}

	hub.registerClient(client1)
	hub.registerClient(client2)

	if len(hub.watchers[sessionID]) != 2 {
		t.Errorf("Expected 2 clients in session, got %d", len(hub.watchers[sessionID]))
	}

	hub.unregisterClient(client1)

	if len(hub.watchers[sessionID]) != 1 {
		t.Errorf("Expected 1 client remaining in session, got %d", len(hub.watchers[sessionID]))
	}

	if !hub.watchers[sessionID][client2] {
		t.Error("client2 should still be registered")
	}
}

func TestHubBroadcastMessage(t *testing.T) {
	hub := NewHub()
	sessionID := "broadcast-test"

	client := &Client{
		hub:       hub,
		sessionID: sessionID,
		send:      make(chan []byte, 256),
	}
	other := &Client{
		hub:       hub,
		sessionID: "other-session",
		send:      make(chan []byte, 256),
	}

	hub.registerClient(client)
	hub.registerClient(other)

	hub.broadcastMessage(&Message{
		SessionID: sessionID,
		Event:     EventNotify,
		Data:      engine.Notification{Title: "P1 rolled the die", Amount: "4"},
	})

	select {
	case data := <-client.send:
		var message Message
		if err := json.Unmarshal(data, &message); err != nil {
			t.Fatalf("Failed to unmarshal message: %v", err)
		}
		if message.SessionID != sessionID {
			t.Errorf("Expected sessionID %s, got %s", sessionID, message.SessionID)
		}
		if message.Event != EventNotify {
			t.Errorf("Expected event %q, got %q", EventNotify, message.Event)
		}
	case <-time.After(100 * time.Millisecond):
		t.Error("No message received within timeout")
	}

	select {
	case <-other.send:
		t.Error("Client in another session received the message")
	default:
	}
}

func TestHubCloseGameDisconnectsWatchers(t *testing.T) {
	hub := NewHub()
	sessionID := "ending-game"

	client1 := &Client{hub: hub, sessionID: sessionID, send: make(chan []byte, 256)}
	client2 := &Client{hub: hub, sessionID: sessionID, send: make(chan []byte, 256)}
	other := &Client{hub: hub, sessionID: "still-running", send: make(chan []byte, 256)}

	hub.registerClient(client1)
	hub.registerClient(client2)
	hub.registerClient(other)

	hub.disconnectWatchers(sessionID)

	if _, exists := hub.watchers[sessionID]; exists {
		t.Error("expected the ended game to be dropped from the registry")
	}
	if !hub.watchers["still-running"][other] {
		t.Error("viewers of other games must be untouched")
	}
	for i, c := range []*Client{client1, client2} {
		select {
		case _, open := <-c.send:
			if open {
				t.Errorf("client %d: expected send channel closed, got a message", i)
			}
		default:
			t.Errorf("client %d: send channel still open", i)
		}
	}
}

func TestHubBroadcastEvent(t *testing.T) {
	hub := NewHub()
	done := make(chan bool)

	go func() {
		select {
		case message := <-hub.broadcast:
			if message.SessionID != "event-test" {
				t.Errorf("Expected sessionID 'event-test', got %s", message.SessionID)
			}
			if message.Event != "custom-event" {
				t.Errorf("Expected event 'custom-event', got %s", message.Event)
			}
			if message.Data != "test-data" {
				t.Errorf("Expected data 'test-data', got %v", message.Data)
			}
			done <- true
		case <-time.After(100 * time.Millisecond):
			t.Error("No broadcast message received within timeout")
			done <- false
		}
	}()

	hub.BroadcastEvent("event-test", "custom-event", "test-data")

	<-done
}

func TestSessionSinkEvents(t *testing.T) {
	hub := NewHub()
	sessionID := "sink-test"
	sink := NewSessionSink(hub, sessionID)

	received := make(chan *Message, 8)
	go func() {
		for msg := range hub.broadcast {
			received <- msg
		}
	}()

	sink.Notify(engine.Notification{Title: "P1 rolled the die", Amount: "3"})
	sink.QuizPrompt(&engine.QuizItem{Question: "2+2?", Choices: []string{"3", "4"}, Correct: 1})
	sink.PlayerPanelChanged([]engine.Player{{ID: 0, Name: "P1"}})
	sink.GameOver("Game Over", "P1 wins", true, true)
	sink.PionMoved(0, 5)

	want := []string{EventNotify, EventQuiz, EventPlayers, EventGameOver, EventPionMoved}
	for _, event := range want {
		select {
		case msg := <-received:
			if msg.Event != event {
				t.Errorf("expected event %q, got %q", event, msg.Event)
			}
			if msg.SessionID != sessionID {
				t.Errorf("expected session %q, got %q", sessionID, msg.SessionID)
			}
		case <-time.After(100 * time.Millisecond):
			t.Fatalf("timed out waiting for event %q", event)
		}
	}
}

func TestSessionSinkQuizHidesAnswer(t *testing.T) {
	hub := NewHub()
	sink := NewSessionSink(hub, "quiz-test")

	go sink.QuizPrompt(&engine.QuizItem{Question: "2+2?", Choices: []string{"3", "4"}, Correct: 1})

	select {
	case msg := <-hub.broadcast:
		data, err := json.Marshal(msg)
		if err != nil {
			t.Fatalf("failed to marshal: %v", err)
		}
		if strings.Contains(string(data), "correct") {
			t.Errorf("quiz prompt leaked the correct index: %s", data)
		}
	case <-time.After(100 * time.Millisecond):
		t.Fatal("no quiz prompt broadcast")
	}
}

func TestWebSocketUpgrade(t *testing.T) {
	hub := NewHub()

	go hub.Run()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sessionID := r.URL.Query().Get("session")
		if sessionID == "" {
			sessionID = "default"
		}
		hub.ServeWS(w, r, sessionID)
	}))
	defer server.Close()

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "?session=ws-test"

	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("Failed to connect to WebSocket: %v", err)
	}
	defer conn.Close()

	// Give some time for registration
	time.Sleep(50 * time.Millisecond)

	if len(hub.watchers["ws-test"]) != 1 {
		t.Errorf("Expected 1 client in session, got %d", len(hub.watchers["ws-test"]))
	}

	conn.Close()

	// Give some time for unregistration
	time.Sleep(10 * time.Millisecond)

	if _, exists := hub.watchers["ws-test"]; exists {
		t.Error("Session should have been cleaned up after WebSocket close")
	}
}

func TestWebSocketMessageReceive(t *testing.T) {
	hub := NewHub()

	go hub.Run()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sessionID := r.URL.Query().Get("session")
		if sessionID == "" {
			sessionID = "default"
		}
		hub.ServeWS(w, r, sessionID)
	}))
	defer server.Close()

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "?session=msg-test"

	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("Failed to connect to WebSocket: %v", err)
	}
	defer conn.Close()

	// Give time for connection to establish
	time.Sleep(10 * time.Millisecond)

	sink := NewSessionSink(hub, "msg-test")
	sink.Notify(engine.Notification{Title: "P2 passed START", Amount: "+10,000"})

	conn.SetReadDeadline(time.Now().Add(1 * time.Second))
	_, messageData, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("Failed to read WebSocket message: %v", err)
	}

	var message Message
	if err := json.Unmarshal(messageData, &message); err != nil {
		t.Fatalf("Failed to unmarshal message: %v", err)
	}

	if message.SessionID != "msg-test" {
		t.Errorf("Expected sessionID 'msg-test', got %s", message.SessionID)
	}
	if message.Event != EventNotify {
		t.Errorf("Expected event %q, got %q", EventNotify, message.Event)
	}

	payload, err := json.Marshal(message.Data)
	if err != nil {
		t.Fatalf("failed to re-marshal data: %v", err)
	}
	var n engine.Notification
	if err := json.Unmarshal(payload, &n); err != nil {
		t.Fatalf("failed to unmarshal notification: %v", err)
	}
	if n.Title != "P2 passed START" || n.Amount != "+10,000" {
		t.Errorf("notification not correctly received: %+v", n)
	}
}
