package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/smartone/finance-board-game/game/engine"
)

// gameServiceImpl implements the GameService interface
type gameServiceImpl struct {
	sessions   SessionManager
	categories CategoryProvider
	sinkFor    SinkFactory
	mu         sync.RWMutex
}

// NewGameService creates a new game service instance. sinkFor may be nil, in
// which case sessions run with a discarding sink.
func NewGameService(sessions SessionManager, categories CategoryProvider, sinkFor SinkFactory) GameService {
	return &gameServiceImpl{
		sessions:   sessions,
		categories: categories,
		sinkFor:    sinkFor,
	}
}

// ListCategories returns the playable categories of the loaded catalog.
func (s *gameServiceImpl) ListCategories(ctx context.Context) ([]*CategoryInfo, error) {
	return s.categories.List()
}

// StartGame creates a new game session for the chosen category and seat
// count. An empty category key selects the catalog default.
func (s *gameServiceImpl) StartGame(ctx context.Context, categoryKey string, playerCount int) (*GameInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if categoryKey == "" {
		categoryKey = s.categories.DefaultKey()
	}
	cfg, err := s.categories.Category(categoryKey)
	if err != nil {
		if infos, listErr := s.categories.List(); listErr == nil && len(infos) > 0 {
			keys := make([]string, 0, len(infos))
			for _, info := range infos {
				keys = append(keys, info.Key)
			}
			return nil, fmt.Errorf("category %q not found, available categories: %v", categoryKey, keys)
		}
		return nil, fmt.Errorf("failed to load category %q: %w", categoryKey, err)
	}

	id := uuid.NewString()

	var sink engine.EventSink
	if s.sinkFor != nil {
		sink = s.sinkFor(id)
	}

	game, err := engine.NewSession(cfg, playerCount, sink)
	if err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	sess, err := s.sessions.Create(id, game, categoryKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return s.gameInfo(sess), nil
}

// GetGame retrieves the current snapshot of a session.
func (s *gameServiceImpl) GetGame(ctx context.Context, gameID string) (*GameInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.sessions.Get(gameID)
	if err != nil {
		return nil, fmt.Errorf("game not found: %w", err)
	}
	s.sessions.UpdateLastAccessed(gameID)

	return s.gameInfo(sess), nil
}

// ListGames returns snapshots of all active sessions.
func (s *gameServiceImpl) ListGames(ctx context.Context) ([]*GameInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sessions := s.sessions.List()
	result := make([]*GameInfo, 0, len(sessions))
	for _, sess := range sessions {
		result = append(result, s.gameInfo(sess))
	}
	return result, nil
}

// EndGame discards a session ("return to menu"). Closing the game first
// releases a turn suspended on a quiz so its goroutine can finish.
func (s *gameServiceImpl) EndGame(ctx context.Context, gameID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(gameID)
	if err != nil {
		return err
	}
	sess.Game.Close()
	return s.sessions.Delete(gameID)
}

// RequestTurn triggers one turn for the current player. The turn runs
// asynchronously; its effects stream through the session's event sink. A
// rejected trigger (turn in flight, or game over) is reported, not queued.
func (s *gameServiceImpl) RequestTurn(ctx context.Context, gameID string) (*TurnRequestResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.sessions.Get(gameID)
	if err != nil {
		return nil, fmt.Errorf("game not found: %w", err)
	}
	s.sessions.UpdateLastAccessed(gameID)

	if sess.Game.Terminal() {
		return &TurnRequestResult{Accepted: false, Reason: "game over"}, nil
	}
	if !sess.Game.StartTurn() {
		return &TurnRequestResult{Accepted: false, Reason: "turn in progress"}, nil
	}
	return &TurnRequestResult{Accepted: true}, nil
}

// SubmitQuizAnswer delivers an answer to a suspended quiz. A nil index is
// the submit-with-nothing-selected path. It reports false when no quiz was
// awaiting an answer.
func (s *gameServiceImpl) SubmitQuizAnswer(ctx context.Context, gameID string, index *int) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.sessions.Get(gameID)
	if err != nil {
		return false, fmt.Errorf("game not found: %w", err)
	}
	s.sessions.UpdateLastAccessed(gameID)

	return sess.Game.SubmitQuizAnswer(index), nil
}

// gameInfo builds a client snapshot from a session.
func (s *gameServiceImpl) gameInfo(sess *Session) *GameInfo {
	categoryName := sess.CategoryKey
	if cfg := sess.Game.Category(); cfg != nil {
		categoryName = cfg.Name
	}

	return &GameInfo{
		ID:             sess.ID,
		CategoryKey:    sess.CategoryKey,
		CategoryName:   categoryName,
		CreatedAt:      sess.CreatedAt,
		LastAccessedAt: sess.LastAccessedAt,
		Players:        sess.Game.Players(),
		TurnIndex:      sess.Game.TurnIndex(),
		CurrentPlayer:  sess.Game.CurrentPlayer(),
		Busy:           sess.Game.Busy(),
		Terminal:       sess.Game.Terminal(),
		AwaitingAnswer: sess.Game.AwaitingAnswer(),
	}
}
