package commands

import (
	"github.com/mage-knight-digital/MageKnight-sub005/internal/game/actions"
	"github.com/mage-knight-digital/MageKnight-sub005/internal/game/combat"
	"github.com/mage-knight-digital/MageKnight-sub005/internal/game/events"
	"github.com/mage-knight-digital/MageKnight-sub005/internal/game/state"
)

type transition func(s state.GameState, playerID string) (state.GameState, []events.Event, error)

// allocation moves points between the accumulator and an enemy's pending
// pool. Its inverse is the opposite move of the same amount.
type allocation struct {
	base
	apply, inverse transition
}

func newAllocation(kind actions.Type, playerID string, pair [2]transition) *allocation {
	return &allocation{base: base{kind: kind, playerID: playerID}, apply: pair[0], inverse: pair[1]}
}

func attackAllocation(enemy string, t state.AttackType, el state.Element, amount int, assign bool) [2]transition {
	a := combat.AttackAssignment{EnemyInstanceID: enemy, AttackType: t, Element: el, Amount: amount}
	do := func(s state.GameState, pid string) (state.GameState, []events.Event, error) {
		return combat.AssignAttack(s, pid, a)
	}
	undo := func(s state.GameState, pid string) (state.GameState, []events.Event, error) {
		return combat.UnassignAttack(s, pid, a)
	}
	if assign {
		return [2]transition{do, undo}
	}
	return [2]transition{undo, do}
}

// blockAllocation moves block points on or off an attack. Which of the
// points count twice against Swift depends on what else is assigned, so the
// opposite move is not always an exact inverse and undo restores a snapshot.
type blockAllocation struct {
	snapshotCommand
	assignment combat.BlockAssignment
	assign     bool
}

func newBlockAllocation(kind actions.Type, playerID string, b combat.BlockAssignment, assign bool) *blockAllocation {
	return &blockAllocation{
		snapshotCommand: snapshotCommand{base: base{kind: kind, playerID: playerID}},
		assignment:      b,
		assign:          assign,
	}
}

func (c *blockAllocation) Execute(s state.GameState) Result {
	c.before = capture(s, c.playerID)
	move := combat.UnassignBlock
	if c.assign {
		move = combat.AssignBlock
	}
	s, evs := must(move(s, c.playerID, c.assignment))
	return Result{State: s, Events: evs}
}

func (c *allocation) Execute(s state.GameState) Result {
	s, evs := must(c.apply(s, c.playerID))
	return Result{State: s, Events: evs}
}

func (c *allocation) Undo(s state.GameState) Result {
	s, _ = must(c.inverse(s, c.playerID))
	return Result{State: s}
}

type assignDamage struct {
	snapshotCommand
	assignment combat.DamageAssignment
}

func newAssignDamage(playerID string, a actions.AssignDamage) *assignDamage {
	return &assignDamage{
		snapshotCommand: snapshotCommand{base: base{kind: actions.TypeAssignDamage, playerID: playerID}},
		assignment:      combat.DamageAssignment{EnemyInstanceID: a.EnemyInstanceID, AttackIndex: a.AttackIndex, UnitInstanceID: a.UnitInstanceID},
	}
}

func (c *assignDamage) Execute(s state.GameState) Result {
	c.before = capture(s, c.playerID)
	s, evs := must(combat.AssignDamage(s, c.playerID, c.assignment))
	return Result{State: s, Events: evs}
}

type endCombatPhase struct {
	snapshotCommand
}

func newEndCombatPhase(playerID string) *endCombatPhase {
	return &endCombatPhase{snapshotCommand{base: base{kind: actions.TypeEndCombatPhase, playerID: playerID}}}
}

// Execute resolves the pending pools of the phase and moves on. Undo
// restores the enemies, the accumulator, the ledger and the map.
func (c *endCombatPhase) Execute(s state.GameState) Result {
	c.before = capture(s, c.playerID)
	s, evs := must(combat.EndPhase(s, c.playerID))
	return Result{State: s, Events: evs}
}
