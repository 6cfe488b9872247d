// Package mcp provides the Model Context Protocol interface of the finance
// board game.
//
// The mcp package implements:
//   - MCP server for AI agent integration
//   - Tool definitions for game operations
//   - Stdio transport via the mcp-go server
//
// The client is a thin proxy: every tool call translates into a REST API
// request against a running game server, so the MCP process holds no game
// state of its own.
//
// MCP Tools:
//
// The package exposes the following tools for AI agents:
//   - list_categories: List playable categories
//   - start_game: Start a game with category and player count
//   - game_state: Get a game snapshot (players, wallets, whose turn)
//   - roll_turn: Trigger one turn for the current player
//   - submit_answer: Answer a pending quiz question
//   - list_games: List all active games
//   - end_game: End a game
//   - game_instructions: Get comprehensive game rules
//
// Turn Semantics:
//
// roll_turn is asynchronous: the tool returns as soon as the trigger is
// accepted or rejected, and the turn plays out on the server. Agents poll
// game_state and watch for awaiting_answer, which signals a suspended quiz
// that only submit_answer can resume.
//
// Usage:
//
//	client := mcp.NewClient("http://localhost:8080")
//	server.ServeStdio(client.GetMCPServer())
package mcp
