// Package modifiers is the ledger of active modifiers: scoped, time-bounded
// alterations of game values stored apart from the entities they affect.
//
// Every function takes the state by value and returns a new state whose
// ActiveModifiers slice is freshly allocated, so the caller's snapshot is
// never touched. Consumption removes or rewrites exactly one matching entry;
// an entry that does not match the use is left as it is.
package modifiers

import (
	"fmt"
	"slices"

	"github.com/google/uuid"

	"github.com/mage-knight-digital/MageKnight-sub005/internal/game/state"
)

// NewID derives the id of the next modifier from the game id and sequence.
func NewID(gameID string, seq int) string {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(fmt.Sprintf("%s/modifier/%d", gameID, seq))).String()
}

// Add appends m to the ledger, assigning it a deterministic id when it has
// none. The assigned id is returned.
func Add(s state.GameState, m state.ActiveModifier) (state.GameState, string) {
	if m.Effect == nil {
		panic("modifiers: Add without effect")
	}
	if m.ID == "" {
		m.ID = NewID(s.GameID, s.ModifierSeq)
	}
	if m.CreatedAtRound == 0 {
		m.CreatedAtRound = s.Round
	}
	s.ModifierSeq++
	s.ActiveModifiers = append(slices.Clone(s.ActiveModifiers), m)
	return s, m.ID
}

// Remove drops the modifier with the given id. Unknown ids are ignored.
func Remove(s state.GameState, id string) state.GameState {
	s.ActiveModifiers = slices.DeleteFunc(slices.Clone(s.ActiveModifiers), func(m state.ActiveModifier) bool {
		return m.ID == id
	})
	return s
}

// Get returns the modifier with the given id.
func Get(s state.GameState, id string) (state.ActiveModifier, bool) {
	for _, m := range s.ActiveModifiers {
		if m.ID == id {
			return m, true
		}
	}
	return state.ActiveModifier{}, false
}

func replace(s state.GameState, m state.ActiveModifier) state.GameState {
	mods := slices.Clone(s.ActiveModifiers)
	for i := range mods {
		if mods[i].ID == m.ID {
			mods[i] = m
		}
	}
	s.ActiveModifiers = mods
	return s
}

func appliesToPlayer(m state.ActiveModifier, playerID string) bool {
	return m.PlayerID == playerID || m.Scope.Kind == state.ScopeAllPlayers
}

func appliesToUnit(m state.ActiveModifier, playerID, unitInstanceID string) bool {
	if m.PlayerID != playerID {
		return false
	}
	switch m.Scope.Kind {
	case state.ScopeAllUnits:
		return true
	case state.ScopeUnit:
		return m.Scope.UnitInstanceID == unitInstanceID
	}
	return false
}

// ForPlayer returns the modifiers that apply to playerID.
func ForPlayer(s state.GameState, playerID string) []state.ActiveModifier {
	var out []state.ActiveModifier
	for _, m := range s.ActiveModifiers {
		if appliesToPlayer(m, playerID) {
			out = append(out, m)
		}
	}
	return out
}

// OfKind returns the modifiers with the given payload kind.
func OfKind(s state.GameState, kind state.ModifierKind) []state.ActiveModifier {
	var out []state.ActiveModifier
	for _, m := range s.ActiveModifiers {
		if m.Effect.ModifierKind() == kind {
			out = append(out, m)
		}
	}
	return out
}
