package websocket

import "github.com/smartone/finance-board-game/game/engine"

// Event names streamed over the wire. Clients switch on these.
const (
	EventNotify    = "notify"
	EventQuiz      = "quiz_prompt"
	EventPlayers   = "players"
	EventGameOver  = "game_over"
	EventPionMoved = "pion_moved"
)

// SessionSink adapts the hub to engine.EventSink for one session. The engine
// pushes through the sink from its turn goroutine; the hub loop does the
// actual fan-out, so sink methods never block on a slow client.
type SessionSink struct {
	hub       *Hub
	sessionID string
}

// NewSessionSink creates a sink that broadcasts to all clients watching the
// given session.
func NewSessionSink(hub *Hub, sessionID string) *SessionSink {
	return &SessionSink{hub: hub, sessionID: sessionID}
}

func (s *SessionSink) Notify(n engine.Notification) {
	s.hub.BroadcastEvent(s.sessionID, EventNotify, n)
}

// QuizPrompt streams the question and choices. The correct index stays
// server-side.
func (s *SessionSink) QuizPrompt(item *engine.QuizItem) {
	s.hub.BroadcastEvent(s.sessionID, EventQuiz, map[string]interface{}{
		"q":       item.Question,
		"choices": item.Choices,
	})
}

func (s *SessionSink) PlayerPanelChanged(players []engine.Player) {
	s.hub.BroadcastEvent(s.sessionID, EventPlayers, players)
}

func (s *SessionSink) GameOver(title, message string, win, terminal bool) {
	s.hub.BroadcastEvent(s.sessionID, EventGameOver, map[string]interface{}{
		"title":    title,
		"message":  message,
		"win":      win,
		"terminal": terminal,
	})
}

func (s *SessionSink) PionMoved(playerID, newPosition int) {
	s.hub.BroadcastEvent(s.sessionID, EventPionMoved, map[string]interface{}{
		"player_id": playerID,
		"position":  newPosition,
	})
}
