// Package engine provides the turn-resolution core of the finance board
// game.
//
// The engine package implements the game mechanics including:
//   - Ring topology and step-by-step pion movement with lap bonuses
//   - Tile effect resolution for all seven tile types
//   - The two-tier expense ledger (wallet, then savings) with bankruptcy
//   - The asynchronous quiz flow with level-partitioned question banks
//   - Turn orchestration with a re-entrancy guard
//   - Game outcome evaluation for single- and multi-player survival modes
//
// Core Types:
//
// GameSession owns the mutable state of one game and serializes all turn
// execution. CategoryConfig is the read-only per-category data (tile deck,
// quiz banks, educational text) validated at load time. EventSink is the
// outbound contract to the presentation layer.
//
// Usage:
//
//	cfg, err := engine.LoadCategoryConfig("category.json")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	game, err := engine.NewSession(cfg, 2, sink)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Run one turn; rejected while another turn is in flight.
//	accepted := game.TakeTurn()
//
//	// Resolve a pending quiz from the input layer.
//	game.SubmitQuizAnswer(&choice)
//
// Game Rules:
//
// Players circle a fixed 20-position ring, earning a bonus for every lap
// past START before the landing tile resolves. Income, expense, tax, save,
// bonus and penalty tiles adjust the wallet and savings; forced expenses
// fall back on savings as an emergency fund and eliminate the player when
// both are exhausted. Bonus tiles trigger a quiz whose reward depends on the
// player's level. The last non-eliminated player wins; a single-player game
// ends in a terminal loss on bankruptcy.
package engine
