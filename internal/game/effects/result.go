// Package effects is the effect interpreter: it resolves, checks, describes,
// reverses and boosts the effects printed on cards, skills and units.
//
// Every switch over state.Effect in this package lists every variant and
// panics in its default branch, so a new variant fails loudly in tests until
// each operation handles it.
package effects

import (
	"fmt"
	"strings"

	"github.com/mage-knight-digital/MageKnight-sub005/internal/game/events"
	"github.com/mage-knight-digital/MageKnight-sub005/internal/game/mana"
	"github.com/mage-knight-digital/MageKnight-sub005/internal/game/state"
)

// Result is the outcome of resolving an effect.
type Result struct {
	State       state.GameState
	Events      []events.Event
	Description string
	// NoOp is set when the effect found nothing to act on. The resolution
	// still succeeded.
	NoOp bool
	// RequiresChoice is set when the player's choice slot is now awaiting a
	// pick among Options.
	RequiresChoice bool
	Options        []state.Effect
	// RequiresDiscard is set when the player must now pick cards to discard.
	RequiresDiscard bool
	// RevealedHidden is set when the resolution drew from a hidden deck and so
	// cannot be undone.
	RevealedHidden bool
}

// resolver carries the working copy through one resolution.
type resolver struct {
	s        state.GameState
	playerID string
	source   state.Source
	events   []events.Event
	descs    []string
	noop     bool
	acted    bool
	choice   bool
	discard  bool
	options  []state.Effect
	revealed bool
}

func (r *resolver) emit(e events.Event) {
	r.events = append(r.events, e)
}

func (r *resolver) describe(format string, args ...any) {
	r.acted = true
	r.descs = append(r.descs, fmt.Sprintf(format, args...))
}

func (r *resolver) noOp(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	r.noop = true
	r.descs = append(r.descs, msg)
	r.emit(events.New(events.EffectNoOp, r.playerID).WithSource(r.source.ID).WithMeta("reason", msg))
}

func (r *resolver) player() *state.Player {
	i := r.s.PlayerIndex(r.playerID)
	if i < 0 {
		panic("effects: unknown player " + r.playerID)
	}
	return &r.s.Players[i]
}

func (r *resolver) result() Result {
	return Result{
		State:           r.s,
		Events:          r.events,
		Description:     strings.Join(r.descs, "; "),
		NoOp:            r.noop && !r.acted,
		RequiresChoice:  r.choice,
		Options:         r.options,
		RequiresDiscard: r.discard,
		RevealedHidden:  r.revealed,
	}
}

func tokenSource(k state.SourceKind) mana.TokenSource {
	switch k {
	case state.SourceSkill:
		return mana.FromSkill
	case state.SourceUnit:
		return mana.FromUnit
	}
	return mana.FromCard
}
