// Package api provides the HTTP REST surface of the finance board game
// server.
//
// The api package implements:
//   - RESTful endpoints for game lifecycle and actions
//   - Category catalog listing
//   - WebSocket upgrade handling
//   - Static file serving
//
// Endpoints:
//
// Catalog:
//   - GET /api/categories - List playable categories
//
// Game Lifecycle:
//   - POST /api/games - Start a game {category, players}
//   - GET /api/games - List active games (sort, order, limit)
//   - GET /api/games/{id} - Get a game snapshot
//   - DELETE /api/games/{id} - End a game
//
// Game Actions:
//   - POST /api/games/{id}/turn - Trigger one turn for the current player
//   - POST /api/games/{id}/answer - Deliver a quiz answer {index|null}
//
// Other:
//   - GET /api/health - Health check
//   - GET /ws?session={id} - WebSocket event stream for a game
//
// Turn Semantics:
//
// Turns execute asynchronously. POST .../turn returns 202 Accepted when the
// trigger claims the turn guard and 409 Conflict when a turn is already in
// flight or the game is over; overlapping triggers are dropped, never queued.
// The turn's effects (die roll, movement, tile resolution, quiz prompt,
// game over) stream to WebSocket watchers as they happen.
//
// Quiz answers are delivered with POST .../answer. The body {"index": 2}
// selects a choice; {"index": null} or an empty body submits without a
// selection, which resolves as a wrong answer. 409 is returned when no quiz
// is awaiting an answer.
//
// Error Handling:
//
// Errors are returned as JSON with appropriate HTTP status codes:
//
//	{
//	  "error": "error message"
//	}
package api
