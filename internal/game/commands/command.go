// Package commands turns validated player actions into reversible state
// changes. Each action builds exactly one Command; executed commands are kept
// on a Stack so they can be undone in LIFO order until an irreversible
// command clears it.
//
// A command carries everything its Undo needs. Where the inverse is exact
// arithmetic (crystal conversion, combat allocations, healing) Undo applies
// it; otherwise the command keeps a snapshot of the parts of the state it
// touches and puts them back.
package commands

import (
	"fmt"

	"github.com/mage-knight-digital/MageKnight-sub005/internal/game/actions"
	"github.com/mage-knight-digital/MageKnight-sub005/internal/game/events"
	"github.com/mage-knight-digital/MageKnight-sub005/internal/game/state"
)

// Result is the outcome of executing or undoing a command.
type Result struct {
	State  state.GameState
	Events []events.Event
	// Description summarises what an effect resolution did.
	Description string
	// NoOp is set when a resolved effect found nothing to act on.
	NoOp bool
}

// Command is one executable player intent.
type Command interface {
	Type() actions.Type
	PlayerID() string
	// Execute applies the command. The action must have passed validation;
	// Execute panics on a state it cannot apply to.
	Execute(s state.GameState) Result
	// Undo reverts a previous Execute on the state Execute returned, or on a
	// state where every later command has already been undone.
	Undo(s state.GameState) Result
	// IsReversible reports whether the executed command may be undone.
	// Commands that reveal hidden information or close a turn are not.
	IsReversible() bool
}

type base struct {
	kind         actions.Type
	playerID     string
	irreversible bool
}

func (b *base) Type() actions.Type { return b.kind }

func (b *base) PlayerID() string { return b.playerID }

func (b *base) IsReversible() bool { return !b.irreversible }

func (b *base) cannotUndo() {
	panic(fmt.Sprintf("commands: %s is not reversible", b.kind))
}

// must unwraps a state transition whose preconditions the validators
// already checked.
func must(s state.GameState, evs []events.Event, err error) (state.GameState, []events.Event) {
	if err != nil {
		panic("commands: validated action failed: " + err.Error())
	}
	return s, evs
}
