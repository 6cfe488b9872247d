package service

import (
	"context"
	"time"

	"github.com/smartone/finance-board-game/game/engine"
)

// GameService defines all game-related operations
type GameService interface {
	// Category catalog
	ListCategories(ctx context.Context) ([]*CategoryInfo, error)

	// Game lifecycle
	StartGame(ctx context.Context, categoryKey string, playerCount int) (*GameInfo, error)
	GetGame(ctx context.Context, gameID string) (*GameInfo, error)
	ListGames(ctx context.Context) ([]*GameInfo, error)
	EndGame(ctx context.Context, gameID string) error

	// Turn triggers
	RequestTurn(ctx context.Context, gameID string) (*TurnRequestResult, error)
	SubmitQuizAnswer(ctx context.Context, gameID string, index *int) (bool, error)
}

// SessionManager defines game session storage operations
type SessionManager interface {
	Create(id string, game *engine.GameSession, categoryKey string) (*Session, error)
	Get(id string) (*Session, error)
	List() []*Session
	Delete(id string) error
	UpdateLastAccessed(id string) error
}

// CategoryProvider supplies validated category configurations
type CategoryProvider interface {
	Category(key string) (*engine.CategoryConfig, error)
	List() ([]*CategoryInfo, error)
	DefaultKey() string
}

// SinkFactory builds the event sink wired into a new game session, keyed by
// the session ID so a transport can route events to the right clients.
type SinkFactory func(sessionID string) engine.EventSink

// Session represents an active game session
type Session struct {
	ID             string
	Game           *engine.GameSession
	CategoryKey    string
	CreatedAt      time.Time
	LastAccessedAt time.Time
}
