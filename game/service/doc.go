// Package service provides the business logic layer for the finance board
// game server.
//
// The service package implements:
//   - Multi-session game management
//   - Category catalog access
//   - Turn trigger routing with rejection semantics
//   - Quiz answer delivery
//   - Session lifecycle management
//
// Core Interfaces:
//
// GameService is the main service interface providing high-level game
// operations. SessionManager handles session creation, retrieval, and
// lifecycle. CategoryProvider supplies validated category configurations.
//
// Architecture:
//
// The service layer sits between the transport layer (HTTP/WebSocket/MCP)
// and the game engine, providing session isolation and orchestration. Each
// session maintains its own engine.GameSession with independent state, wired
// at creation time to an event sink produced by the SinkFactory so the
// transport can stream notifications, pion movement, quiz prompts and
// game-over declarations to the right clients.
//
// Turns run asynchronously: RequestTurn claims the engine's re-entrancy
// guard and returns immediately; overlapping triggers are rejected, never
// queued. Quiz answers flow back in through SubmitQuizAnswer.
package service
