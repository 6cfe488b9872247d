package engine

import (
	"strconv"
	"time"
)

// TileType represents different kinds of board tiles
type TileType string

const (
	TileStart   TileType = "start"
	TileIncome  TileType = "income"
	TileExpense TileType = "expense"
	TileTax     TileType = "tax"
	TileSave    TileType = "save"
	TileBonus   TileType = "bonus"
	TilePenalty TileType = "penalty"

	// Board geometry
	GridSize   = 6
	RingLength = 4 * (GridSize - 1) // perimeter of the grid

	// Gameplay constants
	MinPlayers     = 1
	MaxPlayers     = 4
	StartingWallet = 50000
	LapBonus       = 10000
	DieSides       = 6

	// Level thresholds by wallet balance
	Level2Threshold = 130000
	Level3Threshold = 300000
	MaxLevel        = 3
)

// quizRewardByLevel is the fixed bonus paid for a correct quiz answer.
var quizRewardByLevel = map[int]int{1: 15000, 2: 8000, 3: 5000}

// tokenColors are the seat colors assigned in order.
var tokenColors = [MaxPlayers]string{"#22d3ee", "#fbbf24", "#ef4444", "#22c55e"}

// Tile represents a configured space on the ring. Which fields are
// meaningful depends on Type; ValidateCategoryConfig enforces that at load
// time so resolution never has to re-check.
type Tile struct {
	Type    TileType `json:"type"`
	Title   string   `json:"title"`
	Points  int      `json:"points,omitempty"`
	Percent int      `json:"percent,omitempty"`
	Effect  string   `json:"effect,omitempty"`
}

// QuizItem is a single multiple-choice question.
type QuizItem struct {
	Question string   `json:"q"`
	Choices  []string `json:"choices"`
	Correct  int      `json:"correct"`
}

// Player is one seat at the board.
type Player struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	Color      string `json:"color"`
	Position   int    `json:"position"`
	Wallet     int    `json:"wallet"`
	Savings    int    `json:"savings"`
	Laps       int    `json:"laps"`
	Level      int    `json:"level"`
	Eliminated bool   `json:"eliminated"`

	// UsedQuestions tracks asked question indexes per level. Reserved for
	// duplicate avoidance; not consulted by the selection logic yet.
	UsedQuestions map[int]map[int]bool `json:"-"`
}

// Notification is the payload for a user-visible notice.
type Notification struct {
	Title       string `json:"title"`
	Amount      string `json:"amount"`
	Description string `json:"description,omitempty"`
}

// EventSink receives everything the engine wants the presentation layer to
// show. Implementations must not call back into the session from within a
// sink method.
type EventSink interface {
	Notify(n Notification)
	QuizPrompt(item *QuizItem)
	PlayerPanelChanged(players []Player)
	GameOver(title, message string, win, terminal bool)
	PionMoved(playerID, newPosition int)
}

// NopSink discards all events. Useful as a default and in tests.
type NopSink struct{}

func (NopSink) Notify(Notification)                   {}
func (NopSink) QuizPrompt(*QuizItem)                  {}
func (NopSink) PlayerPanelChanged([]Player)           {}
func (NopSink) GameOver(string, string, bool, bool)   {}
func (NopSink) PionMoved(int, int)                    {}

// Timing holds the cooperative delays between turn phases. The zero value
// disables all waiting, which is what tests want.
type Timing struct {
	Step        time.Duration // pause after each pion step
	QuizDelay   time.Duration // pause before the quiz prompt opens
	NotifyRead  time.Duration // pause so a notification can be read
	WinnerDelay time.Duration // pause between elimination notice and winner declaration
}

// DefaultTiming mirrors the pacing of the original presentation.
func DefaultTiming() Timing {
	return Timing{
		Step:        220 * time.Millisecond,
		QuizDelay:   500 * time.Millisecond,
		NotifyRead:  1600 * time.Millisecond,
		WinnerDelay: 2000 * time.Millisecond,
	}
}

// NewPlayers creates the seats for a fresh game.
func NewPlayers(n int) []*Player {
	players := make([]*Player, n)
	for i := range players {
		players[i] = &Player{
			ID:     i,
			Name:   "P" + strconv.Itoa(i+1),
			Color:  tokenColors[i%len(tokenColors)],
			Wallet: StartingWallet,
			Level:  1,
			UsedQuestions: map[int]map[int]bool{
				1: {}, 2: {}, 3: {},
			},
		}
	}
	return players
}

// FormatPoints renders an amount with thousands separators, e.g. 10,000.
func FormatPoints(n int) string {
	neg := n < 0
	if neg {
		n = -n
	}
	s := strconv.Itoa(n)
	for i := len(s) - 3; i > 0; i -= 3 {
		s = s[:i] + "," + s[i:]
	}
	if neg {
		return "-" + s
	}
	return s
}

// SignedPoints renders a delta with an explicit sign, e.g. +10,000 or -2,500.
func SignedPoints(n int) string {
	if n < 0 {
		return "-" + FormatPoints(-n)
	}
	return "+" + FormatPoints(n)
}

// DeductedPoints renders an outflow magnitude with an explicit minus, e.g.
// -8,000. Unlike SignedPoints it keeps the minus when the amount is zero.
func DeductedPoints(n int) string {
	return "-" + FormatPoints(abs(n))
}
