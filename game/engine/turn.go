package engine

import (
	"fmt"
	"math/rand"
	"sync"
	"time"
)

// GameSession owns all mutable state for one game: the players, the turn
// pointer and the guards that keep turn execution serialized. Components
// operate on the session through its methods; there are no package globals.
type GameSession struct {
	mu      sync.Mutex
	cfg     *CategoryConfig
	players []*Player

	turnIndex int
	busy      bool
	terminal  bool
	closed    bool

	awaitingAnswer bool
	answerCh       chan *int
	done           chan struct{}

	sink   EventSink
	rng    *rand.Rand
	timing Timing
}

// SessionOptions tune a session for non-default environments. Tests inject a
// seeded Rand and zero Timing.
type SessionOptions struct {
	Timing Timing
	Rand   *rand.Rand
	Sink   EventSink
}

// NewSession creates a session with default pacing and a time-seeded die.
func NewSession(cfg *CategoryConfig, playerCount int, sink EventSink) (*GameSession, error) {
	return NewSessionWithOptions(cfg, playerCount, SessionOptions{
		Timing: DefaultTiming(),
		Sink:   sink,
	})
}

// NewSessionWithOptions creates a session with explicit options. The
// configuration is validated here; a category without tiles is fatal for the
// session and refused up front rather than resolved against a synthesized
// default.
func NewSessionWithOptions(cfg *CategoryConfig, playerCount int, opts SessionOptions) (*GameSession, error) {
	if err := ValidateCategoryConfig(cfg); err != nil {
		return nil, err
	}
	if playerCount < MinPlayers || playerCount > MaxPlayers {
		return nil, fmt.Errorf("player count must be between %d and %d, got %d", MinPlayers, MaxPlayers, playerCount)
	}

	sink := opts.Sink
	if sink == nil {
		sink = NopSink{}
	}
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	return &GameSession{
		cfg:      cfg,
		players:  NewPlayers(playerCount),
		answerCh: make(chan *int),
		done:     make(chan struct{}),
		sink:     sink,
		rng:      rng,
		timing:   opts.Timing,
	}, nil
}

// Players returns a snapshot copy of all seats.
func (g *GameSession) Players() []Player {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.playersLocked()
}

func (g *GameSession) playersLocked() []Player {
	out := make([]Player, len(g.players))
	for i, p := range g.players {
		out[i] = *p
	}
	return out
}

// CurrentPlayer returns a snapshot of the player whose turn it is.
func (g *GameSession) CurrentPlayer() Player {
	g.mu.Lock()
	defer g.mu.Unlock()
	return *g.players[g.turnIndex]
}

// TurnIndex returns the index of the player whose turn it is.
func (g *GameSession) TurnIndex() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.turnIndex
}

// Busy reports whether a turn is currently executing.
func (g *GameSession) Busy() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.busy
}

// Terminal reports whether a terminal game-over has been declared. Once
// terminal, the session accepts no further turns.
func (g *GameSession) Terminal() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.terminal
}

// Close abandons the session. A turn suspended on a quiz is released and
// resolves as unanswered; further turns and answer submissions are rejected.
// Close is idempotent and safe to call while a turn is in flight.
func (g *GameSession) Close() {
	g.mu.Lock()
	if g.closed {
		g.mu.Unlock()
		return
	}
	g.closed = true
	g.mu.Unlock()
	close(g.done)
}

// Closed reports whether the session has been abandoned via Close.
func (g *GameSession) Closed() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.closed
}

// Category returns the session's read-only configuration.
func (g *GameSession) Category() *CategoryConfig {
	return g.cfg
}

// TileAt returns the tile addressed cyclically by the given ring position.
func (g *GameSession) TileAt(pos int) Tile {
	return g.cfg.Tiles[pos%len(g.cfg.Tiles)]
}

// TakeTurn runs one full turn synchronously: roll, move with lap bonuses,
// resolve the landing tile, run the quiz when required, update leveling and
// advance to the next eligible player. It reports false when the trigger is
// rejected because a turn is already in progress or the game has ended.
func (g *GameSession) TakeTurn() bool {
	if !g.beginTurn() {
		return false
	}
	g.runTurn()
	return true
}

// StartTurn is the asynchronous variant of TakeTurn: it claims the turn
// guard in the caller's goroutine, so rejection is reported immediately, and
// runs the rest of the turn in the background.
func (g *GameSession) StartTurn() bool {
	if !g.beginTurn() {
		return false
	}
	go g.runTurn()
	return true
}

// beginTurn claims the re-entrancy guard. Overlapping triggers are rejected,
// not queued.
func (g *GameSession) beginTurn() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.busy || g.terminal || g.closed {
		return false
	}
	g.busy = true
	return true
}

func (g *GameSession) runTurn() {
	defer func() {
		g.mu.Lock()
		g.busy = false
		g.mu.Unlock()
	}()

	g.mu.Lock()
	p := g.players[g.turnIndex]
	g.mu.Unlock()

	roll := g.rollDie()
	g.sink.Notify(Notification{
		Title:  p.Name + " rolled the die",
		Amount: FormatPoints(roll),
	})

	g.movePlayer(p, roll)
	requiresQuiz := g.resolveTile(p)
	g.updateLevel(p)

	if requiresQuiz && !g.isEliminated(p) {
		g.sleep(g.timing.QuizDelay)
		g.runQuiz(p)
		g.updateLevel(p)
	}

	g.sink.PlayerPanelChanged(g.Players())
	g.advanceTurn()
}

// rollDie produces a uniform random integer in [1, DieSides].
func (g *GameSession) rollDie() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.rng.Intn(DieSides) + 1
}

// movePlayer advances the pion step by step. A lap bonus is credited and
// announced immediately on the wrapping step, before any further movement
// and before the landing tile resolves.
func (g *GameSession) movePlayer(p *Player, steps int) {
	for i := 0; i < steps; i++ {
		g.mu.Lock()
		var wrapped bool
		p.Position, wrapped = StepForward(p.Position, RingLength)
		if wrapped {
			p.Laps++
			p.Wallet += LapBonus
		}
		pos := p.Position
		g.mu.Unlock()

		g.sink.PionMoved(p.ID, pos)
		if wrapped {
			g.sink.Notify(Notification{
				Title:  p.Name + " passed START",
				Amount: SignedPoints(LapBonus),
			})
			g.sink.PlayerPanelChanged(g.Players())
		}
		g.sleep(g.timing.Step)
	}
}

// updateLevel recomputes the player's level from wallet thresholds and
// announces a change in either direction. Re-evaluating an unchanged wallet
// is silent.
func (g *GameSession) updateLevel(p *Player) {
	g.mu.Lock()
	old := p.Level
	p.Level = LevelForWallet(p.Wallet)
	changed := p.Level != old
	level := p.Level
	up := p.Level > old
	g.mu.Unlock()

	if !changed {
		return
	}
	verb := "dropped to"
	if up {
		verb = "reached"
	}
	g.sink.Notify(Notification{
		Title:  fmt.Sprintf("%s %s LEVEL %d", p.Name, verb, level),
		Amount: fmt.Sprintf("LEVEL %d", level),
	})
}

// LevelForWallet maps a wallet balance to a level per the fixed thresholds.
func LevelForWallet(wallet int) int {
	switch {
	case wallet >= Level3Threshold:
		return 3
	case wallet >= Level2Threshold:
		return 2
	default:
		return 1
	}
}

// advanceTurn scans forward for the next non-eliminated player. If no seat
// survives the scan the session is marked terminal; the outcome evaluator
// should have ended the game before this can happen.
func (g *GameSession) advanceTurn() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.terminal {
		return
	}

	n := len(g.players)
	for i := 1; i <= n; i++ {
		idx := (g.turnIndex + i) % n
		if !g.players[idx].Eliminated {
			g.turnIndex = idx
			return
		}
	}
	g.terminal = true
}

func (g *GameSession) isEliminated(p *Player) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return p.Eliminated
}

func (g *GameSession) sleep(d time.Duration) {
	if d > 0 {
		time.Sleep(d)
	}
}
