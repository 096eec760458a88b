package engine

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mage-knight-digital/MageKnight-sub005/internal/config"
	"github.com/mage-knight-digital/MageKnight-sub005/internal/game/actions"
	"github.com/mage-knight-digital/MageKnight-sub005/internal/game/events"
)

// ErrGameNotFound is returned for an unknown game id.
var ErrGameNotFound = errors.New("game not found")

// Manager owns the running games.
type Manager struct {
	logger *zap.Logger
	engine *Engine
	mu     sync.RWMutex
	games  map[string]*Game
}

// NewManager creates a manager whose games share engine.
func NewManager(engine *Engine, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{
		logger: logger,
		engine: engine,
		games:  make(map[string]*Game),
	}
}

// Create sets up a new game with a fresh id. The returned events are the
// setup events; they are not published because nobody can have subscribed
// yet.
func (m *Manager) Create(cfg config.GameConfig) (*Game, []events.Event, error) {
	id := uuid.NewString()
	s, evs, err := Setup(id, cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("create game: %w", err)
	}
	g := NewGame(m.engine, s, m.logger)

	m.mu.Lock()
	m.games[id] = g
	m.mu.Unlock()

	m.logger.Info("game created",
		zap.String("game_id", id),
		zap.Int("players", len(cfg.Players)),
		zap.Uint64("seed", cfg.Seed),
	)
	return g, evs, nil
}

// Get returns the game with the given id.
func (m *Manager) Get(id string) (*Game, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	g, ok := m.games[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrGameNotFound, id)
	}
	return g, nil
}

// Submit routes an action to a game.
func (m *Manager) Submit(gameID, playerID string, a actions.Action) (Outcome, error) {
	g, err := m.Get(gameID)
	if err != nil {
		return Outcome{}, err
	}
	return g.Submit(playerID, a)
}

// Remove forgets a game.
func (m *Manager) Remove(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.games[id]; !ok {
		return fmt.Errorf("%w: %s", ErrGameNotFound, id)
	}
	delete(m.games, id)
	m.logger.Info("game removed", zap.String("game_id", id))
	return nil
}

// IDs lists the running games in sorted order.
func (m *Manager) IDs() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]string, 0, len(m.games))
	for id := range m.games {
		out = append(out, id)
	}
	slices.Sort(out)
	return out
}
