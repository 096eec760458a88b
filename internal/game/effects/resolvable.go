package effects

import (
	"fmt"

	"github.com/mage-knight-digital/MageKnight-sub005/internal/game/state"
)

// IsResolvable reports whether resolving e for playerID would do something.
// It agrees with Resolve: when it returns true, Resolve does not end in a
// no-op.
func IsResolvable(s state.GameState, playerID string, e state.Effect) bool {
	p, ok := s.Player(playerID)
	if !ok {
		return false
	}
	switch e := e.(type) {
	case state.GainAttack, state.GainBlock, state.AttackWithFameBonus:
		return s.InCombat()
	case state.GainHealing:
		return !s.InCombat()
	case state.GainMove, state.GainInfluence, state.GainMana, state.GainCrystal,
		state.GainFame, state.ChangeReputation, state.ApplyModifier:
		return true
	case state.DrawCards:
		return e.Count > 0 && len(p.Deck) > 0
	case state.Compound:
		for _, sub := range e.Effects {
			if IsResolvable(s, playerID, sub) {
				return true
			}
		}
		return false
	case state.Choice:
		return anyResolvable(s, playerID, e.Options)
	case state.DiscardCost:
		return len(discardEligible(p, e.AllowWounds)) >= e.Count
	case state.DiscardForCrystal:
		return anyResolvable(s, playerID, discardForCrystalOptions(s, playerID))
	case state.DiscardCardForCrystal:
		return p.HandIndex(e.CardID) >= 0
	case state.CrystallizeToken:
		return len(crystallizeOptions(s, playerID)) > 0
	case state.CrystallizeColor:
		for _, t := range p.PureMana {
			if t.Color == e.Color {
				return true
			}
		}
		return false
	case state.TakeFromOffer:
		return len(offerOptions(s, e.Offer)) > 0
	case state.TakeOfferCard:
		for _, id := range s.Offers.Cards(e.Offer) {
			if id == e.CardID {
				return true
			}
		}
		return false
	case state.ReadyUnit:
		return len(readyUnitOptions(s, playerID, e.MaxLevel)) > 0
	case state.ReadySpecificUnit:
		u, _, ok := p.Unit(e.UnitInstanceID)
		return ok && u.State == state.UnitSpent
	case state.WeakenEnemy:
		return len(weakenOptions(s, e.Amount)) > 0
	case state.WeakenSpecificEnemy:
		enemy, _, ok := s.Combat.Enemy(e.EnemyInstanceID)
		return ok && !enemy.IsDefeated
	case state.Conditional:
		if Holds(s, playerID, e.Condition) {
			return IsResolvable(s, playerID, e.Then)
		}
		return e.Else != nil && IsResolvable(s, playerID, e.Else)
	default:
		panic(fmt.Sprintf("effects: IsResolvable: unhandled effect %T", e))
	}
}

func anyResolvable(s state.GameState, playerID string, options []state.Effect) bool {
	for _, o := range options {
		if IsResolvable(s, playerID, o) {
			return true
		}
	}
	return false
}
