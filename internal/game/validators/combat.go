package validators

import (
	"github.com/mage-knight-digital/MageKnight-sub005/internal/game/actions"
	"github.com/mage-knight-digital/MageKnight-sub005/internal/game/combat"
	"github.com/mage-knight-digital/MageKnight-sub005/internal/game/state"
)

// Combat governs the combat sub-actions by delegating to the combat
// engine's own checks.
func Combat(s state.GameState, playerID string, a actions.Action) Result {
	switch a := a.(type) {
	case actions.AssignAttack:
		return fromError(combat.CheckAssignAttack(s, playerID, AttackAssignment(a.EnemyInstanceID, a.AttackType, a.Element, a.Amount)))
	case actions.UnassignAttack:
		return fromError(combat.CheckUnassignAttack(s, playerID, AttackAssignment(a.EnemyInstanceID, a.AttackType, a.Element, a.Amount)))
	case actions.AssignBlock:
		return fromError(combat.CheckAssignBlock(s, playerID, BlockAssignment(a.EnemyInstanceID, a.AttackIndex, a.Element, a.Amount)))
	case actions.UnassignBlock:
		return fromError(combat.CheckUnassignBlock(s, playerID, BlockAssignment(a.EnemyInstanceID, a.AttackIndex, a.Element, a.Amount)))
	case actions.AssignDamage:
		return fromError(combat.CheckAssignDamage(s, playerID, DamageAssignment(a)))
	case actions.EndCombatPhase:
		return fromError(combat.CheckEndPhase(s))
	}
	return Valid()
}

// AttackAssignment converts action fields into a combat attack assignment.
func AttackAssignment(enemy string, t state.AttackType, el state.Element, amount int) combat.AttackAssignment {
	return combat.AttackAssignment{EnemyInstanceID: enemy, AttackType: t, Element: el, Amount: amount}
}

// BlockAssignment converts action fields into a combat block assignment.
func BlockAssignment(enemy string, attack int, el state.Element, amount int) combat.BlockAssignment {
	return combat.BlockAssignment{EnemyInstanceID: enemy, AttackIndex: attack, Element: el, Amount: amount}
}

// DamageAssignment converts an ASSIGN_DAMAGE action.
func DamageAssignment(a actions.AssignDamage) combat.DamageAssignment {
	return combat.DamageAssignment{EnemyInstanceID: a.EnemyInstanceID, AttackIndex: a.AttackIndex, UnitInstanceID: a.UnitInstanceID}
}
