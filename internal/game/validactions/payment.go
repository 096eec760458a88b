package validactions

import (
	"github.com/mage-knight-digital/MageKnight-sub005/internal/game/mana"
	"github.com/mage-knight-digital/MageKnight-sub005/internal/game/modifiers"
	"github.com/mage-knight-digital/MageKnight-sub005/internal/game/rules"
	"github.com/mage-knight-digital/MageKnight-sub005/internal/game/state"
)

// candidates lists every payment that could pay one mana of required, cheapest
// first: endless supply, tokens, crystals, then source dice.
func candidates(s state.GameState, p state.Player, required mana.Color) []mana.Payment {
	isDay := s.IsDay()
	var out []mana.Payment
	for _, c := range []mana.Color{required, mana.Gold, mana.Black} {
		if !mana.Satisfies(required, c, isDay) {
			continue
		}
		if modifiers.HasEndlessMana(s, p.ID, c) {
			out = append(out, mana.Payment{Kind: mana.PayFromEndless, Color: c})
		}
		if mana.CountTokens(p.PureMana, c) > 0 {
			out = append(out, mana.Payment{Kind: mana.PayFromToken, Color: c})
		}
		if c.IsBasic() && p.Crystals.Get(c) > 0 {
			out = append(out, mana.Payment{Kind: mana.PayFromCrystal, Color: c})
		}
		for _, d := range s.Source.Dice {
			if d.Color == c && d.Available(isDay) {
				out = append(out, mana.Payment{Kind: mana.PayFromDie, Color: c, DieID: d.ID})
			}
		}
	}
	return out
}

// findPayment returns the first combination of payments that covers cost,
// or false. An empty cost is paid by no payments.
func findPayment(s state.GameState, playerID string, cost rules.Cost) ([]mana.Payment, bool) {
	p := s.MustPlayer(playerID)
	options := make([][]mana.Payment, len(cost))
	for i, c := range cost {
		options[i] = candidates(s, p, c)
		if len(options[i]) == 0 {
			return nil, false
		}
	}
	picked := make([]mana.Payment, len(cost))
	var search func(i int) bool
	search = func(i int) bool {
		if i == len(cost) {
			return rules.CheckPayment(s, playerID, cost, picked) == nil
		}
		for _, pay := range options[i] {
			picked[i] = pay
			if search(i + 1) {
				return true
			}
		}
		return false
	}
	if !search(0) {
		return nil, false
	}
	return picked, true
}
