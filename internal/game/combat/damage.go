package combat

import (
	"github.com/mage-knight-digital/MageKnight-sub005/internal/game/catalog"
	"github.com/mage-knight-digital/MageKnight-sub005/internal/game/modifiers"
	"github.com/mage-knight-digital/MageKnight-sub005/internal/game/state"
)

// WoundsFor is the number of wounds an attack deals to a target of the given
// armor: ceil(max(0, attack×(2 if brutal) − reduction) / armor).
func WoundsFor(attack int, brutal bool, reduction, armor int) int {
	if armor <= 0 {
		panic("combat: armor must be positive")
	}
	dmg := AttackDamage(attack, brutal) - reduction
	if dmg <= 0 {
		return 0
	}
	return (dmg + armor - 1) / armor
}

// AttackDamage is the damage of an attack before any reduction. Brutal
// doubles it.
func AttackDamage(attack int, brutal bool) int {
	if brutal {
		return attack * 2
	}
	return attack
}

// EnemyAttackDamage is AttackDamage for attack i of a combat enemy.
func EnemyAttackDamage(e state.CombatEnemy, i int) int {
	def := catalog.MustEnemy(e.EnemyID)
	return AttackDamage(def.Attacks[i].Value, def.Has(state.EnemyBrutal))
}

// EffectiveAttack is the attack an enemy actually suffers from pool. Attacks
// of an element the enemy resists count half, rounded down over the resisted
// total.
func EffectiveAttack(def catalog.EnemyDefinition, pool state.ElementalValues) int {
	efficient, resisted := 0, 0
	for _, el := range state.AllElements {
		v := pool.Get(el)
		if def.Resists(el) {
			resisted += v
		} else {
			efficient += v
		}
	}
	return efficient + resisted/2
}

// blockEfficient reports whether block of element b is fully effective
// against an attack of element a.
func blockEfficient(a, b state.Element) bool {
	switch a {
	case state.Fire:
		return b == state.Ice || b == state.ColdFire
	case state.Ice:
		return b == state.Fire || b == state.ColdFire
	case state.ColdFire:
		return b == state.ColdFire
	}
	return true
}

// EffectiveBlock is the block pool counts for against an attack of element
// attack. Inefficient block counts half, rounded down over its total.
func EffectiveBlock(attack state.Element, pool state.ElementalValues) int {
	efficient, inefficient := 0, 0
	for _, el := range state.AllElements {
		if blockEfficient(attack, el) {
			efficient += pool.Get(el)
		} else {
			inefficient += pool.Get(el)
		}
	}
	return efficient + inefficient/2
}

// BlockRequired is the block needed to stop attack i. Swift doubles it.
func BlockRequired(e state.CombatEnemy, i int) int {
	def := catalog.MustEnemy(e.EnemyID)
	v := def.Attacks[i].Value
	if def.Has(state.EnemySwift) {
		return v * 2
	}
	return v
}

// EnemyArmor is the armor of a combat enemy after weakening modifiers.
func EnemyArmor(s state.GameState, e state.CombatEnemy) int {
	def := catalog.MustEnemy(e.EnemyID)
	amount, minimum := modifiers.EnemyArmorReduction(s, e.InstanceID)
	if amount == 0 {
		return def.Armor
	}
	return max(min(minimum, def.Armor), def.Armor-amount)
}

// fortification is 0 for an open target, 1 when only siege reaches it and 2
// when nothing reaches it in the ranged and siege phase.
func fortification(s state.GameState, playerID string, e state.CombatEnemy) int {
	if modifiers.IsRuleActive(s, playerID, state.RuleIgnoreFortification) {
		return 0
	}
	level := 0
	if s.Combat.IsAtFortifiedSite {
		level++
	}
	if catalog.MustEnemy(e.EnemyID).Has(state.EnemyFortified) {
		level++
	}
	return level
}

// CanTargetInPhase reports whether attack of type t may be assigned to e in
// the current phase. Ranged and siege attacks belong to the ranged and siege
// phase and remain usable in the attack phase; melee only in the attack
// phase. Fortified targets take only siege attacks in the ranged phase, and
// doubly fortified ones none.
func CanTargetInPhase(s state.GameState, playerID string, e state.CombatEnemy, t state.AttackType) bool {
	if s.Combat == nil {
		return false
	}
	switch s.Combat.Phase {
	case state.PhaseAttack:
		return true
	case state.PhaseRangedSiege:
		if t == state.Melee {
			return false
		}
		switch fortification(s, playerID, e) {
		case 0:
			return true
		case 1:
			return t == state.Siege
		}
		return false
	}
	return false
}
