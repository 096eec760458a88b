package commands

import (
	"slices"

	"github.com/mage-knight-digital/MageKnight-sub005/internal/game/actions"
	"github.com/mage-knight-digital/MageKnight-sub005/internal/game/effects"
	"github.com/mage-knight-digital/MageKnight-sub005/internal/game/events"
	"github.com/mage-knight-digital/MageKnight-sub005/internal/game/mana"
	"github.com/mage-knight-digital/MageKnight-sub005/internal/game/rules"
	"github.com/mage-knight-digital/MageKnight-sub005/internal/game/state"
)

type resolveChoice struct {
	snapshotCommand
	index int
}

func newResolveChoice(playerID string, a actions.ResolveChoice) *resolveChoice {
	return &resolveChoice{snapshotCommand: snapshotCommand{base: base{kind: actions.TypeResolveChoice, playerID: playerID}}, index: a.Index}
}

func (c *resolveChoice) Execute(s state.GameState) Result {
	c.before = capture(s, c.playerID)
	r := effects.ResolveChoice(s, c.playerID, c.index)
	c.irreversible = r.RevealedHidden
	return Result{State: r.State, Events: r.Events, Description: r.Description, NoOp: r.NoOp}
}

type resolveDiscard struct {
	snapshotCommand
	cards []state.CardID
}

func newResolveDiscard(playerID string, a actions.ResolveDiscard) *resolveDiscard {
	return &resolveDiscard{
		snapshotCommand: snapshotCommand{base: base{kind: actions.TypeResolveDiscard, playerID: playerID}},
		cards:           slices.Clone(a.CardIDs),
	}
}

func (c *resolveDiscard) Execute(s state.GameState) Result {
	c.before = capture(s, c.playerID)
	r := effects.ResolveDiscard(s, c.playerID, c.cards)
	c.irreversible = r.RevealedHidden
	return Result{State: r.State, Events: r.Events, Description: r.Description, NoOp: r.NoOp}
}

// resolveDeepMine picks the crystal of a deep mine and finishes the turn the
// END_TURN before it paused.
type resolveDeepMine struct {
	base
	color mana.Color
}

func newResolveDeepMine(playerID string, a actions.ResolveDeepMine) *resolveDeepMine {
	return &resolveDeepMine{base: base{kind: actions.TypeResolveDeepMine, playerID: playerID, irreversible: true}, color: a.Color}
}

func (c *resolveDeepMine) Execute(s state.GameState) Result {
	p := s.MustPlayer(c.playerID)
	if p.PendingDeepMine == nil || !slices.Contains(p.PendingDeepMine.Colors, c.color) {
		panic("commands: deep mine colour not offered: " + string(c.color))
	}
	evs := []events.Event{events.New(events.DeepMineResolved, c.playerID).WithMeta("color", string(c.color))}
	s, out := rules.FinishTurn(s, c.playerID, c.color)
	return Result{State: s, Events: append(evs, out...)}
}

func (c *resolveDeepMine) Undo(state.GameState) Result {
	c.cannotUndo()
	return Result{}
}
