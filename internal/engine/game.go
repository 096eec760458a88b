package engine

import (
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/mage-knight-digital/MageKnight-sub005/internal/game/actions"
	"github.com/mage-knight-digital/MageKnight-sub005/internal/game/client"
	"github.com/mage-knight-digital/MageKnight-sub005/internal/game/commands"
	"github.com/mage-knight-digital/MageKnight-sub005/internal/game/events"
	"github.com/mage-knight-digital/MageKnight-sub005/internal/game/state"
	"github.com/mage-knight-digital/MageKnight-sub005/internal/game/validactions"
)

// ErrEngineFault wraps a panic raised while applying an action. The game
// keeps the state it had before the action.
var ErrEngineFault = errors.New("engine fault")

// Game is one running game. All methods are safe for concurrent use;
// actions are applied one at a time.
type Game struct {
	mu      sync.Mutex
	engine  *Engine
	logger  *zap.Logger
	state   state.GameState
	history *commands.Stack
	bus     *events.Bus
	replay  *Replay
}

// NewGame wraps an initial state.
func NewGame(engine *Engine, initial state.GameState, logger *zap.Logger) *Game {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Game{
		engine:  engine,
		logger:  logger.With(zap.String("game_id", initial.GameID)),
		state:   initial,
		history: commands.NewStack(),
		bus:     events.NewBus(),
		replay:  NewReplay(initial),
	}
}

// ID returns the game id.
func (g *Game) ID() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state.GameID
}

// Submit applies an action for playerID and publishes the resulting events
// after the lock is released, so listeners may call back into the game.
func (g *Game) Submit(playerID string, a actions.Action) (Outcome, error) {
	out, err := g.apply(playerID, a)
	if err != nil {
		return out, err
	}
	g.bus.PublishAll(out.Events)
	return out, nil
}

func (g *Game) apply(playerID string, a actions.Action) (out Outcome, err error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	defer func() {
		if r := recover(); r != nil {
			g.logger.Error("action panicked",
				zap.String("player_id", playerID),
				zap.String("action", string(a.Type())),
				zap.Any("panic", r),
			)
			out = Outcome{State: g.state}
			err = fmt.Errorf("%w: %s: %v", ErrEngineFault, a.Type(), r)
		}
	}()

	out = g.engine.ProcessAction(g.state, g.history, playerID, a)
	if out.Accepted() {
		g.state = out.State
		if rerr := g.replay.Record(playerID, a); rerr != nil {
			g.logger.Warn("failed to record action", zap.Error(rerr))
		}
	}
	return out, nil
}

// State returns a copy of the current state.
func (g *Game) State() state.GameState {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state.Clone()
}

// View returns the state as playerID may see it.
func (g *Game) View(playerID string) client.ClientGameState {
	g.mu.Lock()
	defer g.mu.Unlock()
	return client.Project(g.state, playerID)
}

// ValidActions returns what playerID may do now.
func (g *Game) ValidActions(playerID string) validactions.ValidActions {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.engine.ValidActions(g.state, g.history, playerID)
}

// CanUndo reports whether the undo history is non-empty.
func (g *Game) CanUndo() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.history.CanUndo()
}

// Checksum hashes the current state.
func (g *Game) Checksum() (state.Checksum, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return state.ComputeChecksum(g.state)
}

// Replay returns a copy of the action journal.
func (g *Game) Replay() *Replay {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.replay.Copy()
}

// Subscribe registers a listener for every event of this game.
func (g *Game) Subscribe(l events.Listener) int {
	return g.bus.Subscribe(l)
}

// SubscribeTyped registers a listener for one event type.
func (g *Game) SubscribeTyped(t events.Type, l events.Listener) int {
	return g.bus.SubscribeTyped(t, l)
}

// Unsubscribe removes a listener.
func (g *Game) Unsubscribe(handle int) {
	g.bus.Unsubscribe(handle)
}
