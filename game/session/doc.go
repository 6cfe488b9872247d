// Package session provides in-memory storage for active game sessions.
//
// Manager implements service.SessionManager with a mutex-guarded map. Each
// entry pairs a session ID with its engine.GameSession, category key and
// access timestamps. Sessions idle past a configurable age are reaped by
// CleanupExpiredSessions, which the server runs on a ticker.
//
// Storage is deliberately process-local: games are short-lived classroom
// rounds and a restart starting everyone fresh is acceptable.
package session
