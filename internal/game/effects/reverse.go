package effects

import (
	"fmt"
	"slices"

	"github.com/mage-knight-digital/MageKnight-sub005/internal/game/state"
)

// Reverse undoes the value grant of e on p and reports whether it could do
// so exactly. A compound reverses only when every part does. It does not look
// at combat phase, and it does not restore modifiers, choices or cards;
// commands snapshot those themselves.
func Reverse(p state.Player, e state.Effect) (state.Player, bool) {
	switch e := e.(type) {
	case state.GainAttack:
		p.Accumulator.Attack = p.Accumulator.Attack.Add(e.AttackType, e.Element, -e.Amount)
		return p, true
	case state.AttackWithFameBonus:
		p.Accumulator.Attack = p.Accumulator.Attack.Add(e.AttackType, e.Element, -e.Amount)
		return p, true
	case state.GainBlock:
		p.Accumulator.Block = p.Accumulator.Block.Add(e.Element, -e.Amount)
		if e.CountsTwiceAgainstSwift {
			p.Accumulator.SwiftBlock = p.Accumulator.SwiftBlock.Add(e.Element, -e.Amount)
		}
		return p, true
	case state.GainMove:
		p.MovePoints -= e.Amount
		return p, true
	case state.GainInfluence:
		p.InfluencePoints -= e.Amount
		return p, true
	case state.GainFame:
		p.Fame -= e.Amount
		return p, true
	case state.GainMana:
		for i := len(p.PureMana) - 1; i >= 0; i-- {
			if p.PureMana[i].Color == e.Color {
				p.PureMana = slices.Delete(slices.Clone(p.PureMana), i, i+1)
				return p, true
			}
		}
		return p, false
	case state.Compound:
		out := p
		for i := len(e.Effects) - 1; i >= 0; i-- {
			var ok bool
			if out, ok = Reverse(out, e.Effects[i]); !ok {
				return p, false
			}
		}
		return out, true
	case state.ChangeReputation, state.GainCrystal:
		// Clamping and crystal overflow lose the amount actually applied.
		return p, false
	case state.GainHealing, state.DrawCards, state.Choice, state.DiscardCost,
		state.DiscardForCrystal, state.DiscardCardForCrystal, state.CrystallizeToken,
		state.CrystallizeColor, state.TakeFromOffer, state.TakeOfferCard,
		state.ReadyUnit, state.ReadySpecificUnit, state.WeakenEnemy,
		state.WeakenSpecificEnemy, state.ApplyModifier, state.Conditional:
		return p, false
	default:
		panic(fmt.Sprintf("effects: Reverse: unhandled effect %T", e))
	}
}

// AddBonus returns e with its amount raised by bonus. Every other field is
// kept. Effects without an amount are returned unchanged; a compound boosts
// its first boostable part and a choice boosts every option.
func AddBonus(e state.Effect, bonus int) state.Effect {
	if bonus == 0 {
		return e
	}
	switch e := e.(type) {
	case state.GainAttack:
		e.Amount += bonus
		return e
	case state.GainBlock:
		e.Amount += bonus
		return e
	case state.GainMove:
		e.Amount += bonus
		return e
	case state.GainInfluence:
		e.Amount += bonus
		return e
	case state.GainHealing:
		e.Amount += bonus
		return e
	case state.AttackWithFameBonus:
		e.Amount += bonus
		return e
	case state.Compound:
		list := slices.Clone(e.Effects)
		for i, sub := range list {
			if hasAmount(sub) {
				list[i] = AddBonus(sub, bonus)
				break
			}
		}
		return state.Compound{Effects: list}
	case state.Choice:
		opts := make([]state.Effect, len(e.Options))
		for i, o := range e.Options {
			opts[i] = AddBonus(o, bonus)
		}
		return state.Choice{Options: opts}
	case state.GainMana, state.GainCrystal, state.GainFame, state.ChangeReputation,
		state.DrawCards, state.DiscardCost, state.DiscardForCrystal, state.DiscardCardForCrystal,
		state.CrystallizeToken, state.CrystallizeColor, state.TakeFromOffer, state.TakeOfferCard,
		state.ReadyUnit, state.ReadySpecificUnit, state.WeakenEnemy, state.WeakenSpecificEnemy,
		state.ApplyModifier, state.Conditional:
		return e
	default:
		panic(fmt.Sprintf("effects: AddBonus: unhandled effect %T", e))
	}
}

func hasAmount(e state.Effect) bool {
	switch e := e.(type) {
	case state.GainAttack, state.GainBlock, state.GainMove, state.GainInfluence,
		state.GainHealing, state.AttackWithFameBonus:
		return true
	case state.Compound:
		return slices.ContainsFunc(e.Effects, hasAmount)
	case state.Choice:
		return slices.ContainsFunc(e.Options, hasAmount)
	}
	return false
}
