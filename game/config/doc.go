// Package config loads and serves the category catalog: the data-driven
// tile decks, quiz banks and educational text that parametrize the game
// engine.
//
// The catalog is a single JSON document:
//
//	{
//	  "default": "smart-money",
//	  "categories": {
//	    "smart-money": { "name": "...", "tiles": [...], "quizLevels": {...} }
//	  }
//	}
//
// Manager reads it once, validates every category through the engine's
// validator, and serves cached lookups behind a read lock. When no file is
// configured (or the configured file is absent) a built-in catalog compiled
// into the binary takes its place, so the server is playable out of the box.
//
// Manager implements service.CategoryProvider.
package config
