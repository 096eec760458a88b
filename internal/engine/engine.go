// Package engine is the entry point of the rules engine. It validates an
// action, runs the matching command and maintains the undo history; Game
// and Manager add locking, event fan-out and game lookup on top.
package engine

import (
	"go.uber.org/zap"

	"github.com/mage-knight-digital/MageKnight-sub005/internal/game/actions"
	"github.com/mage-knight-digital/MageKnight-sub005/internal/game/commands"
	"github.com/mage-knight-digital/MageKnight-sub005/internal/game/events"
	"github.com/mage-knight-digital/MageKnight-sub005/internal/game/state"
	"github.com/mage-knight-digital/MageKnight-sub005/internal/game/validactions"
	"github.com/mage-knight-digital/MageKnight-sub005/internal/game/validators"
)

// Engine is stateless between calls: the state and its history are passed
// in by the caller.
type Engine struct {
	logger   *zap.Logger
	pipeline validators.Pipeline
	registry *commands.Registry
	undo     bool
}

// Option configures an Engine.
type Option func(*Engine)

// WithPipeline replaces the default validator pipeline.
func WithPipeline(p validators.Pipeline) Option {
	return func(e *Engine) { e.pipeline = p }
}

// WithRegistry replaces the default command registry.
func WithRegistry(r *commands.Registry) Option {
	return func(e *Engine) { e.registry = r }
}

// WithUndo turns the undo history on or off. With undo off nothing is
// recorded and every UNDO is rejected.
func WithUndo(enabled bool) Option {
	return func(e *Engine) { e.undo = enabled }
}

// NewEngine builds an engine over the default rules.
func NewEngine(logger *zap.Logger, opts ...Option) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	e := &Engine{
		logger:   logger,
		pipeline: validators.Default(),
		registry: commands.NewRegistry(),
		undo:     true,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Outcome is the result of one action.
type Outcome struct {
	State  state.GameState `json:"state"`
	Events []events.Event  `json:"events"`
	// Error is set when the action was rejected; State is then the input.
	Error       *validators.Error `json:"error,omitempty"`
	Description string            `json:"description,omitempty"`
	NoOp        bool              `json:"noOp,omitempty"`
}

// Accepted reports whether the action changed the game.
func (o Outcome) Accepted() bool {
	return o.Error == nil
}

// Validate checks a without running it.
func (e *Engine) Validate(s state.GameState, history *commands.Stack, playerID string, a actions.Action) validators.Result {
	if r := e.pipeline.Validate(s, playerID, a); !r.Valid {
		return r
	}
	if a.Type() == actions.TypeUndo {
		return validators.Undo(e.undo && history.CanUndo())
	}
	return validators.Valid()
}

// ValidActions projects what playerID may do in s.
func (e *Engine) ValidActions(s state.GameState, history *commands.Stack, playerID string) validactions.ValidActions {
	return validactions.NewWithPipeline(e.pipeline).Project(s, playerID, e.undo && history.CanUndo())
}

// ProcessAction validates and applies a. A rejected action yields a single
// INVALID_ACTION event and leaves both s and history untouched.
// Reversible commands are pushed onto history; an irreversible one clears it.
func (e *Engine) ProcessAction(s state.GameState, history *commands.Stack, playerID string, a actions.Action) Outcome {
	log := e.logger.With(
		zap.String("game_id", s.GameID),
		zap.String("player_id", playerID),
		zap.String("action", string(a.Type())),
	)
	log.Debug("processing action")

	if r := e.Validate(s, history, playerID, a); !r.Valid {
		return e.reject(log, s, playerID, r.Error)
	}

	if a.Type() == actions.TypeUndo {
		cmd, _ := history.Peek()
		res := cmd.Undo(s)
		history.Pop()
		log.Debug("undid command", zap.String("command", string(cmd.Type())), zap.Int("history", history.Len()))
		evs := append(res.Events, events.New(events.Undone, playerID).WithMeta("action", string(cmd.Type())))
		return Outcome{State: res.State, Events: evs}
	}

	cmd, err := e.registry.Create(playerID, a)
	if err != nil {
		return e.reject(log, s, playerID, &validators.Error{Code: validators.UnknownAction, Reason: err.Error()})
	}
	res := cmd.Execute(s)
	switch {
	case !cmd.IsReversible():
		history.Clear()
	case e.undo:
		history.Push(cmd)
	}
	log.Debug("action applied",
		zap.Int("events", len(res.Events)),
		zap.Bool("reversible", cmd.IsReversible()),
		zap.Int("history", history.Len()),
	)
	return Outcome{State: res.State, Events: res.Events, Description: res.Description, NoOp: res.NoOp}
}

func (e *Engine) reject(log *zap.Logger, s state.GameState, playerID string, err *validators.Error) Outcome {
	log.Info("action rejected", zap.String("code", string(err.Code)), zap.String("reason", err.Reason))
	return Outcome{
		State:  s,
		Events: []events.Event{events.Invalid(playerID, string(err.Code), err.Reason)},
		Error:  err,
	}
}
