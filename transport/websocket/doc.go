// Package websocket provides the real-time event stream for the finance
// board game.
//
// The websocket package implements:
//   - Session-aware WebSocket connections
//   - Broadcasting of engine events to all watchers of a session
//   - Connection lifecycle management with ping/pong keepalive
//   - An engine.EventSink adapter per session
//
// Architecture:
//
// The package uses a hub-and-spoke model where a central Hub manages all
// WebSocket connections. Each client connection is handled by dedicated
// read and write goroutines. The engine never talks to connections directly:
// a SessionSink created per game session translates sink calls into hub
// broadcasts.
//
// Message Protocol:
//
// Messages are JSON-encoded envelopes:
//
//	{"session_id": "...", "event": "notify", "data": {...}}
//
// Events: notify, quiz_prompt, players, game_over, pion_moved. The stream is
// outbound-only; game actions (turn triggers, quiz answers) go through the
// REST API.
//
// Session Integration:
//
// Clients specify their session ID via query parameter (?session=<id>) when
// establishing the connection. Events are broadcast only to clients watching
// the same session.
//
// Usage:
//
//	hub := websocket.NewHub()
//	go hub.Run()
//
//	svc := service.NewGameService(sessions, categories, func(id string) engine.EventSink {
//		return websocket.NewSessionSink(hub, id)
//	})
package websocket
