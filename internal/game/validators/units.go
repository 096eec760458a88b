package validators

import (
	"slices"

	"github.com/mage-knight-digital/MageKnight-sub005/internal/game/actions"
	"github.com/mage-knight-digital/MageKnight-sub005/internal/game/catalog"
	"github.com/mage-knight-digital/MageKnight-sub005/internal/game/effects"
	"github.com/mage-knight-digital/MageKnight-sub005/internal/game/mana"
	"github.com/mage-knight-digital/MageKnight-sub005/internal/game/rules"
	"github.com/mage-knight-digital/MageKnight-sub005/internal/game/state"
)

// Units governs RECRUIT_UNIT, ACTIVATE_UNIT and HEAL_UNIT.
func Units(s state.GameState, playerID string, a actions.Action) Result {
	p := s.MustPlayer(playerID)
	switch a := a.(type) {
	case actions.RecruitUnit:
		if s.InCombat() {
			return Invalid(InCombat, "Not during combat")
		}
		if !slices.Contains(s.Offers.Units, a.UnitID) {
			return Invalid(UnitNotInOffer, "%s is not in the unit offer", a.UnitID)
		}
		if !rules.CanRecruitHere(s, p) {
			return Invalid(CannotRecruit, "Units are recruited at villages and conquered keeps and mage towers")
		}
		if len(p.Units) >= p.CommandTokens {
			return Invalid(NoCommandToken, "No free command token")
		}
		if cost := rules.RecruitCost(s, playerID, a.UnitID); p.InfluencePoints < cost {
			return Invalid(NoInfluence, "Recruiting costs %d influence, you have %d", cost, p.InfluencePoints)
		}
	case actions.ActivateUnit:
		return activateUnit(s, p, a)
	case actions.HealUnit:
		if s.InCombat() {
			return Invalid(InCombat, "Not during combat")
		}
		u, _, ok := p.Unit(a.UnitInstanceID)
		if !ok {
			return Invalid(UnknownUnit, "No unit %s", a.UnitInstanceID)
		}
		if !u.IsWounded {
			return Invalid(UnitNotWounded, "%s is not wounded", a.UnitInstanceID)
		}
		if cost := rules.HealCost(u.UnitID); p.HealingPoints < cost {
			return Invalid(NoHealing, "Healing costs %d, you have %d", cost, p.HealingPoints)
		}
	}
	return Valid()
}

// UnitAbility resolves the catalog ability an ACTIVATE_UNIT names.
func UnitAbility(p state.Player, a actions.ActivateUnit) (state.PlayerUnit, catalog.UnitAbility, bool) {
	u, _, ok := p.Unit(a.UnitInstanceID)
	if !ok {
		return u, catalog.UnitAbility{}, false
	}
	def := catalog.MustUnit(u.UnitID)
	if a.AbilityIndex < 0 || a.AbilityIndex >= len(def.Abilities) {
		return u, catalog.UnitAbility{}, false
	}
	return u, def.Abilities[a.AbilityIndex], true
}

func activateUnit(s state.GameState, p state.Player, a actions.ActivateUnit) Result {
	u, _, ok := p.Unit(a.UnitInstanceID)
	if !ok {
		return Invalid(UnknownUnit, "No unit %s", a.UnitInstanceID)
	}
	if u.State != state.UnitReady {
		return Invalid(UnitNotReady, "%s is spent", a.UnitInstanceID)
	}
	if u.IsWounded {
		return Invalid(UnitWounded, "%s is wounded", a.UnitInstanceID)
	}
	_, ability, ok := UnitAbility(p, a)
	if !ok {
		return Invalid(UnknownAbility, "%s has no ability %d", u.UnitID, a.AbilityIndex)
	}
	if ability.IsCombat() != s.InCombat() {
		if ability.IsCombat() {
			return Invalid(AbilityTiming, "%s is a combat ability", ability.Kind)
		}
		return Invalid(AbilityTiming, "%s cannot be used in combat", ability.Kind)
	}
	var payments []mana.Payment
	if a.Mana != nil {
		payments = []mana.Payment{*a.Mana}
	}
	var cost rules.Cost
	if ability.ManaCost != "" {
		cost = rules.Cost{ability.ManaCost}
	}
	if err := rules.CheckPayment(s, p.ID, cost, payments); err != nil {
		return fromError(err)
	}
	if effect := ability.Effect(); !effects.IsResolvable(s, p.ID, effect) {
		return Invalid(EffectNotUsable, "%s would have no effect now", effects.Describe(effect))
	}
	return Valid()
}
