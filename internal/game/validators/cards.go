package validators

import (
	"github.com/mage-knight-digital/MageKnight-sub005/internal/game/actions"
	"github.com/mage-knight-digital/MageKnight-sub005/internal/game/catalog"
	"github.com/mage-knight-digital/MageKnight-sub005/internal/game/effects"
	"github.com/mage-knight-digital/MageKnight-sub005/internal/game/rules"
	"github.com/mage-knight-digital/MageKnight-sub005/internal/game/state"
)

// CardEffect returns the effect and mana cost of playing card in the given
// mode.
func CardEffect(def catalog.CardDefinition, powered bool) (state.Effect, rules.Cost) {
	if powered {
		return def.Powered, def.PoweredCost()
	}
	return def.Basic, def.BasicCost()
}

// Cards governs PLAY_CARD and PLAY_CARD_SIDEWAYS.
func Cards(s state.GameState, playerID string, a actions.Action) Result {
	p := s.MustPlayer(playerID)
	switch a := a.(type) {
	case actions.PlayCard:
		def, r := playableCard(p, a.CardID)
		if !r.Valid {
			return r
		}
		effect, cost := CardEffect(def, a.Powered)
		if effect == nil {
			return Invalid(CardNotPlayable, "%s has no such effect", def.Name)
		}
		if err := rules.CheckPayment(s, playerID, cost, a.Mana); err != nil {
			return fromError(err)
		}
		if !effects.IsResolvable(s, playerID, effect) {
			return Invalid(EffectNotUsable, "%s would have no effect now", def.Name).
				WithDetail("effect", effects.Describe(effect))
		}
	case actions.PlayCardSideways:
		if _, r := playableCard(p, a.CardID); !r.Valid {
			return r
		}
		return sideways(s, a.As)
	}
	return Valid()
}

func playableCard(p state.Player, id state.CardID) (catalog.CardDefinition, Result) {
	if p.HandIndex(id) < 0 {
		return catalog.CardDefinition{}, Invalid(CardNotInHand, "%s is not in your hand", id)
	}
	def, ok := catalog.Card(id)
	if !ok || !def.Playable() {
		return def, Invalid(CardNotPlayable, "%s cannot be played", id)
	}
	return def, Valid()
}

func sideways(s state.GameState, as actions.SidewaysAs) Result {
	switch as {
	case actions.SidewaysMove, actions.SidewaysInfluence:
		if s.InCombat() {
			return Invalid(InvalidSideways, "Only attack or block during combat")
		}
	case actions.SidewaysAttack:
		if !s.InCombat() || s.Combat.Phase != state.PhaseAttack {
			return Invalid(InvalidSideways, "Sideways attack only in the attack phase")
		}
	case actions.SidewaysBlock:
		if !s.InCombat() || s.Combat.Phase != state.PhaseBlock {
			return Invalid(InvalidSideways, "Sideways block only in the block phase")
		}
	default:
		return Invalid(InvalidSideways, "Unknown sideways play %q", as)
	}
	return Valid()
}

// Mana governs CONVERT_CRYSTAL.
func Mana(s state.GameState, playerID string, a actions.Action) Result {
	c, ok := a.(actions.ConvertCrystal)
	if !ok {
		return Valid()
	}
	if !c.Color.IsBasic() {
		return Invalid(NoCrystal, "Crystals are red, blue, green or white")
	}
	if s.MustPlayer(playerID).Crystals.Get(c.Color) <= 0 {
		return Invalid(NoCrystal, "No %s crystal to convert", c.Color)
	}
	return Valid()
}
