package service

import (
	"time"

	"github.com/smartone/finance-board-game/game/engine"
)

// CategoryInfo summarizes a playable category for selection screens.
type CategoryInfo struct {
	Key        string `json:"key"`
	Name       string `json:"name"`
	TileCount  int    `json:"tile_count"`
	QuizLevels int    `json:"quiz_levels"`
	QuizItems  int    `json:"quiz_items"`
}

// GameInfo is the client-facing snapshot of one game session.
type GameInfo struct {
	ID             string          `json:"id"`
	CategoryKey    string          `json:"category_key"`
	CategoryName   string          `json:"category_name"`
	CreatedAt      time.Time       `json:"created_at"`
	LastAccessedAt time.Time       `json:"last_accessed_at"`
	Players        []engine.Player `json:"players"`
	TurnIndex      int             `json:"turn_index"`
	CurrentPlayer  engine.Player   `json:"current_player"`
	Busy           bool            `json:"busy"`
	Terminal       bool            `json:"terminal"`
	AwaitingAnswer bool            `json:"awaiting_answer"`
}

// TurnRequestResult reports whether a turn trigger was honored. Rejections
// are not errors; the re-entrancy guard drops overlapping triggers by
// design of the turn engine.
type TurnRequestResult struct {
	Accepted bool   `json:"accepted"`
	Reason   string `json:"reason,omitempty"`
}
