package commands

import (
	"github.com/mage-knight-digital/MageKnight-sub005/internal/game/mana"
	"github.com/mage-knight-digital/MageKnight-sub005/internal/game/state"
)

// snapshot is the part of a state a player's own command can change: the
// acting player, the shared source and offers, the modifier ledger, combat
// and the map. Other players and the round bookkeeping are never touched by
// a reversible command.
type snapshot struct {
	player      state.Player
	source      mana.Source
	offers      state.Offers
	decks       state.Decks
	modifiers   []state.ActiveModifier
	modifierSeq int
	unitSeq     int
	combat      *state.CombatState
	hexes       state.MapState
}

func capture(s state.GameState, playerID string) *snapshot {
	c := s.Clone()
	return &snapshot{
		player:      c.MustPlayer(playerID),
		source:      c.Source,
		offers:      c.Offers,
		decks:       c.Decks,
		modifiers:   c.ActiveModifiers,
		modifierSeq: c.ModifierSeq,
		unitSeq:     c.UnitSeq,
		combat:      c.Combat,
		hexes:       c.Map,
	}
}

// restore writes the captured parts back into a copy of s.
func (sn *snapshot) restore(s state.GameState) state.GameState {
	if sn == nil {
		panic("commands: undo before execute")
	}
	s = s.Clone()
	c := state.GameState{
		Players:         []state.Player{sn.player},
		Source:          sn.source,
		Offers:          sn.offers,
		Decks:           sn.decks,
		ActiveModifiers: sn.modifiers,
		Combat:          sn.combat,
		Map:             sn.hexes,
	}.Clone()
	s.SetPlayer(c.Players[0])
	s.Source = c.Source
	s.Offers = c.Offers
	s.Decks = c.Decks
	s.ActiveModifiers = c.ActiveModifiers
	s.ModifierSeq = sn.modifierSeq
	s.UnitSeq = sn.unitSeq
	s.Combat = c.Combat
	s.Map = c.Map
	return s
}

// snapshotCommand is embedded by commands that undo by restoring a snapshot.
type snapshotCommand struct {
	base
	before *snapshot
}

func (c *snapshotCommand) Undo(s state.GameState) Result {
	if c.irreversible {
		c.cannotUndo()
	}
	return Result{State: c.before.restore(s)}
}
