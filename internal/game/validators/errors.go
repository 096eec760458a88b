package validators

import (
	"errors"

	"github.com/mage-knight-digital/MageKnight-sub005/internal/game/combat"
	"github.com/mage-knight-digital/MageKnight-sub005/internal/game/rules"
)

var errorCodes = []struct {
	err  error
	code Code
}{
	{combat.ErrNotInCombat, NotInCombat},
	{combat.ErrAlreadyInCombat, InCombat},
	{combat.ErrWrongPhase, WrongCombatPhase},
	{combat.ErrUnknownEnemy, UnknownEnemy},
	{combat.ErrEnemyDefeated, EnemyDefeated},
	{combat.ErrUnknownAttack, UnknownAttack},
	{combat.ErrAttackBlocked, AttackBlocked},
	{combat.ErrInvalidAmount, InvalidAmount},
	{combat.ErrInvalidElement, InvalidElement},
	{combat.ErrInsufficientAttack, NoAttack},
	{combat.ErrInsufficientBlock, NoBlock},
	{combat.ErrOverUnassign, OverUnassign},
	{combat.ErrCannotTarget, CannotTarget},
	{combat.ErrDamageAssigned, DamageAssigned},
	{combat.ErrDamageNotAssignable, DamageNotNeeded},
	{combat.ErrUnitCannotTakeDamage, UnitCannotTake},
	{combat.ErrDamagePending, DamagePending},

	{rules.ErrPaymentCount, InvalidMana},
	{rules.ErrPaymentColor, InvalidMana},
	{rules.ErrUnknownPayKind, InvalidMana},
	{rules.ErrNoEndless, InvalidMana},
	{rules.ErrDieUnavailable, DieUnavailable},
	{rules.ErrSourceLimit, SourceLimit},
	{rules.ErrNoCrystal, NoCrystal},
	{rules.ErrNoToken, NoManaToken},
	{rules.ErrBlackByDay, WrongTimeOfDay},
	{rules.ErrGoldByNight, WrongTimeOfDay},

	{rules.ErrNoPosition, UnknownHex},
	{rules.ErrNotAdjacent, NotAdjacent},
	{rules.ErrUnknownHex, UnknownHex},
	{rules.ErrImpassable, Impassable},
	{rules.ErrNoEnemies, NoEnemies},
}

// fromError turns an error of the combat or rules packages into a
// rejection. Unknown errors are programming errors.
func fromError(err error) Result {
	if err == nil {
		return Valid()
	}
	for _, m := range errorCodes {
		if errors.Is(err, m.err) {
			return Invalid(m.code, "%s", capitalize(err.Error()))
		}
	}
	panic("validators: unmapped error: " + err.Error())
}

func capitalize(s string) string {
	if s == "" || s[0] < 'a' || s[0] > 'z' {
		return s
	}
	return string(s[0]-'a'+'A') + s[1:]
}
