package modifiers

import (
	"slices"

	"github.com/mage-knight-digital/MageKnight-sub005/internal/game/state"
)

func expire(s state.GameState, drop func(state.ActiveModifier) bool) (state.GameState, int) {
	before := len(s.ActiveModifiers)
	s.ActiveModifiers = slices.DeleteFunc(slices.Clone(s.ActiveModifiers), drop)
	if len(s.ActiveModifiers) == 0 {
		s.ActiveModifiers = nil
	}
	return s, before - len(s.ActiveModifiers)
}

// ExpireTurn removes turn modifiers created by playerID's turn, plus modifiers
// any player scoped to the whole table for this turn. It returns the count
// removed.
func ExpireTurn(s state.GameState, playerID string) (state.GameState, int) {
	return expire(s, func(m state.ActiveModifier) bool {
		return m.Duration == state.DurationTurn && (m.PlayerID == playerID || m.Scope.Kind == state.ScopeAllPlayers)
	})
}

// ExpireCombat removes combat modifiers, including armor reductions scoped to
// the enemies of the combat that ended.
func ExpireCombat(s state.GameState) (state.GameState, int) {
	return expire(s, func(m state.ActiveModifier) bool {
		return m.Duration == state.DurationCombat || m.Scope.Kind == state.ScopeEnemy
	})
}

// ExpireRound removes every modifier that cannot outlive a round.
func ExpireRound(s state.GameState) (state.GameState, int) {
	return expire(s, func(m state.ActiveModifier) bool {
		switch m.Duration {
		case state.DurationTurn, state.DurationCombat, state.DurationRound:
			return true
		}
		return false
	})
}

// RemoveFromSource removes every modifier created by the given source.
func RemoveFromSource(s state.GameState, src state.Source) (state.GameState, int) {
	return expire(s, func(m state.ActiveModifier) bool {
		return m.Source.Kind == src.Kind && m.Source.ID == src.ID && m.Source.PlayerID == src.PlayerID
	})
}
