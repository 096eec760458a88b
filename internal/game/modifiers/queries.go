package modifiers

import (
	"slices"

	"github.com/mage-knight-digital/MageKnight-sub005/internal/game/mana"
	"github.com/mage-knight-digital/MageKnight-sub005/internal/game/state"
)

// bonusMatches decides whether a unit ability bonus for granted applies to an
// activation of used. An attack bonus always applies to melee; it reaches
// ranged and siege abilities only in the attack phase.
func bonusMatches(granted, used state.AbilityKind, phase state.CombatPhase) bool {
	if granted == used {
		return true
	}
	if granted == state.AbilityAttack && phase == state.PhaseAttack {
		return used == state.AbilityRangedAttack || used == state.AbilitySiegeAttack
	}
	return false
}

func combatPhase(s state.GameState) state.CombatPhase {
	if s.Combat == nil {
		return ""
	}
	return s.Combat.Phase
}

// onePerSource walks the ledger in order and keeps, for every source, the
// first modifier that amount values above zero. Modifiers from different
// sources stack; two from the same source never do.
func onePerSource(s state.GameState, amount func(m state.ActiveModifier) int) (total int, ids []string) {
	seen := map[state.Source]bool{}
	for _, m := range s.ActiveModifiers {
		if seen[m.Source] {
			continue
		}
		if v := amount(m); v > 0 {
			seen[m.Source] = true
			total += v
			ids = append(ids, m.ID)
		}
	}
	return total, ids
}

func removeAll(s state.GameState, ids []string) state.GameState {
	for _, id := range ids {
		s = Remove(s, id)
	}
	return s
}

func unitBonuses(s state.GameState, playerID, unitInstanceID string, ability state.AbilityKind) (int, []string) {
	phase := combatPhase(s)
	return onePerSource(s, func(m state.ActiveModifier) int {
		b, ok := m.Effect.(state.UnitAbilityBonus)
		if !ok || !appliesToUnit(m, playerID, unitInstanceID) || !bonusMatches(b.Ability, ability, phase) {
			return 0
		}
		return b.Bonus
	})
}

// UnitAbilityBonus returns the bonus the next activation of ability by the
// unit would receive.
func UnitAbilityBonus(s state.GameState, playerID, unitInstanceID string, ability state.AbilityKind) int {
	bonus, _ := unitBonuses(s, playerID, unitInstanceID, ability)
	return bonus
}

// ConsumeUnitAbilityBonus removes, per source, the first bonus matching the
// activation and returns their sum with the ids removed. A bonus for another
// ability stays in the ledger.
func ConsumeUnitAbilityBonus(s state.GameState, playerID, unitInstanceID string, ability state.AbilityKind) (state.GameState, int, []string) {
	bonus, ids := unitBonuses(s, playerID, unitInstanceID, ability)
	return removeAll(s, ids), bonus, ids
}

func reductionFor(r state.DamageReduction, element state.Element) int {
	if element == state.Physical {
		return r.Physical
	}
	return r.NonPhysical
}

func damageReductions(s state.GameState, playerID string, element state.Element) (int, []string) {
	return onePerSource(s, func(m state.ActiveModifier) int {
		r, ok := m.Effect.(state.DamageReduction)
		if !ok || !appliesToPlayer(m, playerID) {
			return 0
		}
		return reductionFor(r, element)
	})
}

// DamageReductionFor returns the reduction the next enemy attack of element
// would receive.
func DamageReductionFor(s state.GameState, playerID string, element state.Element) int {
	v, _ := damageReductions(s, playerID, element)
	return v
}

// ConsumeDamageReduction removes, per source, the first reduction that
// applies to element and returns their sum with the ids removed. A reduction
// with nothing for this element is left in place.
func ConsumeDamageReduction(s state.GameState, playerID string, element state.Element) (state.GameState, int, []string) {
	v, ids := damageReductions(s, playerID, element)
	return removeAll(s, ids), v, ids
}

// RecordDefeatForFameTracker appends the defeated enemy to the first fame
// tracker of the player that still has room and returns the fame earned.
// Full trackers and repeated enemies earn nothing.
func RecordDefeatForFameTracker(s state.GameState, playerID, enemyInstanceID string) (state.GameState, int) {
	for _, m := range s.ActiveModifiers {
		t, ok := m.Effect.(state.FameTracker)
		if !ok || m.PlayerID != playerID {
			continue
		}
		if len(t.DefeatedEnemies) >= t.MaxEnemies || slices.Contains(t.DefeatedEnemies, enemyInstanceID) {
			continue
		}
		t.DefeatedEnemies = append(slices.Clone(t.DefeatedEnemies), enemyInstanceID)
		m.Effect = t
		return replace(s, m), t.FamePerEnemy
	}
	return s, 0
}

// EndlessManaColors returns the colours the player can pay for freely.
func EndlessManaColors(s state.GameState, playerID string) []mana.Color {
	var out []mana.Color
	for _, m := range s.ActiveModifiers {
		e, ok := m.Effect.(state.EndlessMana)
		if !ok || !appliesToPlayer(m, playerID) {
			continue
		}
		for _, c := range e.Colors {
			if !slices.Contains(out, c) {
				out = append(out, c)
			}
		}
	}
	slices.Sort(out)
	return out
}

// HasEndlessMana reports whether color is free for the player.
func HasEndlessMana(s state.GameState, playerID string, color mana.Color) bool {
	return slices.Contains(EndlessManaColors(s, playerID), color)
}

// IsRuleActive reports whether a rule switch is on for the player.
func IsRuleActive(s state.GameState, playerID string, rule state.Rule) bool {
	for _, m := range s.ActiveModifiers {
		if r, ok := m.Effect.(state.RuleActive); ok && r.Rule == rule && appliesToPlayer(m, playerID) {
			return true
		}
	}
	return false
}

// MoveCost applies terrain cost modifiers to the base cost of entering
// terrain. Reductions stack; each stops at its minimum, and a base cost
// already below that minimum is kept.
func MoveCost(s state.GameState, playerID string, terrain state.Terrain, base int) int {
	cost := base
	for _, m := range s.ActiveModifiers {
		t, ok := m.Effect.(state.TerrainCost)
		if !ok || !appliesToPlayer(m, playerID) {
			continue
		}
		if t.Terrain != "" && t.Terrain != terrain {
			continue
		}
		if cost <= t.Minimum {
			continue
		}
		cost = max(t.Minimum, cost-t.Amount)
	}
	return cost
}

// RecruitDiscount returns the discount the next recruit would receive.
func RecruitDiscount(s state.GameState, playerID string) int {
	for _, m := range s.ActiveModifiers {
		if d, ok := m.Effect.(state.RecruitDiscount); ok && appliesToPlayer(m, playerID) {
			return d.Amount
		}
	}
	return 0
}

// ConsumeRecruitDiscount removes the first recruit discount and returns it.
func ConsumeRecruitDiscount(s state.GameState, playerID string) (state.GameState, int, string) {
	for _, m := range s.ActiveModifiers {
		if d, ok := m.Effect.(state.RecruitDiscount); ok && appliesToPlayer(m, playerID) {
			return Remove(s, m.ID), d.Amount, m.ID
		}
	}
	return s, 0, ""
}

// EnemyArmorReduction sums the armor reductions on one enemy and returns the
// highest minimum among them. The minimum is at least 1.
func EnemyArmorReduction(s state.GameState, enemyInstanceID string) (amount, minimum int) {
	minimum = 1
	for _, m := range s.ActiveModifiers {
		a, ok := m.Effect.(state.EnemyArmor)
		if !ok || m.Scope.Kind != state.ScopeEnemy || m.Scope.EnemyInstanceID != enemyInstanceID {
			continue
		}
		amount += a.Amount
		minimum = max(minimum, a.Minimum)
	}
	return amount, minimum
}

// ConsumeTrophy removes the player's keep-trophy modifier, reporting whether
// there was one.
func ConsumeTrophy(s state.GameState, playerID string) (state.GameState, bool) {
	for _, m := range s.ActiveModifiers {
		if _, ok := m.Effect.(state.KeepTrophy); ok && m.PlayerID == playerID {
			return Remove(s, m.ID), true
		}
	}
	return s, false
}
