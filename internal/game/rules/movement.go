package rules

import (
	"errors"

	"github.com/mage-knight-digital/MageKnight-sub005/internal/game/combat"
	"github.com/mage-knight-digital/MageKnight-sub005/internal/game/modifiers"
	"github.com/mage-knight-digital/MageKnight-sub005/internal/game/state"
)

var (
	ErrNoPosition  = errors.New("hero is not on the map")
	ErrNotAdjacent = errors.New("target hex is not adjacent")
	ErrUnknownHex  = errors.New("target hex is not revealed")
	ErrImpassable  = errors.New("terrain is impassable")
	ErrNoEnemies   = errors.New("no enemies to challenge there")
)

// MoveCost is the move points needed to step onto target.
func MoveCost(s state.GameState, playerID string, target state.HexCoord) (int, error) {
	p, ok := s.Player(playerID)
	if !ok || p.Position == nil {
		return 0, ErrNoPosition
	}
	if !p.Position.IsAdjacent(target) {
		return 0, ErrNotAdjacent
	}
	hex, ok := s.Map.Hex(target)
	if !ok {
		return 0, ErrUnknownHex
	}
	base, ok := state.BaseMoveCost(hex.Terrain, s.IsDay())
	if !ok {
		return 0, ErrImpassable
	}
	return modifiers.MoveCost(s, playerID, hex.Terrain, base), nil
}

// Encounter is the combat a hex provokes.
type Encounter struct {
	Enemies []state.EnemyID
	Options combat.StartOptions
}

// EncounterOnEntry returns the combat entering the hex starts, if any.
// Unconquered sites are assaulted; other enemies are fought where they stand.
func EncounterOnEntry(s state.GameState, target state.HexCoord) (Encounter, bool) {
	hex, ok := s.Map.Hex(target)
	if !ok || len(hex.Enemies) == 0 {
		return Encounter{}, false
	}
	opts := combat.StartOptions{HexKey: target.Key(), Context: state.ContextStandard}
	if hex.Site != nil && !hex.Site.Conquered {
		opts.Context = state.ContextSiteAssault
		opts.Fortified = hex.Site.Fortified
	}
	return Encounter{Enemies: hex.Enemies, Options: opts}, true
}

// ChallengeTarget returns the combat a challenge against an adjacent hex
// starts. Only enemies outside sites can be challenged.
func ChallengeTarget(s state.GameState, playerID string, target state.HexCoord) (Encounter, error) {
	p, ok := s.Player(playerID)
	if !ok || p.Position == nil {
		return Encounter{}, ErrNoPosition
	}
	if !p.Position.IsAdjacent(target) {
		return Encounter{}, ErrNotAdjacent
	}
	hex, ok := s.Map.Hex(target)
	if !ok {
		return Encounter{}, ErrUnknownHex
	}
	if len(hex.Enemies) == 0 || hex.Site != nil {
		return Encounter{}, ErrNoEnemies
	}
	return Encounter{
		Enemies: hex.Enemies,
		Options: combat.StartOptions{HexKey: target.Key(), Context: state.ContextChallenge},
	}, nil
}
