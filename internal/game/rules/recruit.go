package rules

import (
	"github.com/mage-knight-digital/MageKnight-sub005/internal/game/catalog"
	"github.com/mage-knight-digital/MageKnight-sub005/internal/game/modifiers"
	"github.com/mage-knight-digital/MageKnight-sub005/internal/game/state"
)

// CanRecruitHere reports whether the player stands where units are hired:
// a village, or a keep or mage tower the player has conquered.
func CanRecruitHere(s state.GameState, p state.Player) bool {
	if p.Position == nil {
		return false
	}
	hex, ok := s.Map.Hex(*p.Position)
	if !ok || hex.Site == nil {
		return false
	}
	switch hex.Site.Type {
	case state.SiteVillage:
		return true
	case state.SiteKeep, state.SiteMageTower:
		return hex.Site.Conquered && hex.Site.Owner == p.ID
	}
	return false
}

// RecruitCost is the influence a unit costs after recruit discounts.
func RecruitCost(s state.GameState, playerID string, unit state.UnitID) int {
	def := catalog.MustUnit(unit)
	return max(0, def.Cost-modifiers.RecruitDiscount(s, playerID))
}

// HealCost is the healing needed to heal a wounded unit: its level.
func HealCost(unit state.UnitID) int {
	return catalog.MustUnit(unit).Level
}
