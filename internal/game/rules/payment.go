package rules

import (
	"errors"
	"fmt"
	"slices"

	"github.com/mage-knight-digital/MageKnight-sub005/internal/game/events"
	"github.com/mage-knight-digital/MageKnight-sub005/internal/game/mana"
	"github.com/mage-knight-digital/MageKnight-sub005/internal/game/modifiers"
	"github.com/mage-knight-digital/MageKnight-sub005/internal/game/state"
)

var (
	ErrPaymentCount   = errors.New("wrong number of mana payments")
	ErrPaymentColor   = errors.New("mana colour does not pay the cost")
	ErrDieUnavailable = errors.New("source die not available")
	ErrSourceLimit    = errors.New("source dice already used this turn")
	ErrNoCrystal      = errors.New("no crystal of that colour")
	ErrNoToken        = errors.New("no mana token of that colour")
	ErrNoEndless      = errors.New("no endless supply of that colour")
	ErrUnknownPayKind = errors.New("unknown payment kind")
	ErrBlackByDay     = errors.New("black mana cannot be used during the day")
	ErrGoldByNight    = errors.New("gold mana cannot be used at night")
)

// Cost is the mana a card or ability needs, one colour per mana.
type Cost []mana.Color

// SourceDiceAllowed is how many source dice a player may take this turn.
func SourceDiceAllowed(s state.GameState, playerID string) int {
	if modifiers.IsRuleActive(s, playerID, state.RuleExtraSourceDie) {
		return 2
	}
	return 1
}

// CheckPayment reports why payments cannot pay cost, or nil. Payment i pays
// cost colour i.
func CheckPayment(s state.GameState, playerID string, cost Cost, payments []mana.Payment) error {
	if len(cost) != len(payments) {
		return fmt.Errorf("%w: need %d, got %d", ErrPaymentCount, len(cost), len(payments))
	}
	p, ok := s.Player(playerID)
	if !ok {
		return fmt.Errorf("unknown player %s", playerID)
	}
	isDay := s.IsDay()
	crystals := p.Crystals
	tokens := slices.Clone(p.PureMana)
	dice := len(p.UsedDieIDs)
	var taken []string
	for i, pay := range payments {
		if pay.Color == mana.Black && isDay {
			return ErrBlackByDay
		}
		if pay.Color == mana.Gold && !isDay {
			return ErrGoldByNight
		}
		if !mana.Satisfies(cost[i], pay.Color, isDay) {
			return fmt.Errorf("%w: %s for %s", ErrPaymentColor, pay.Color, cost[i])
		}
		switch pay.Kind {
		case mana.PayFromDie:
			d, _, found := s.Source.Die(pay.DieID)
			if !found || !d.Available(isDay) || d.Color != pay.Color || slices.Contains(taken, d.ID) {
				return fmt.Errorf("%w: %s", ErrDieUnavailable, pay.DieID)
			}
			if dice >= SourceDiceAllowed(s, playerID) {
				return ErrSourceLimit
			}
			dice++
			taken = append(taken, d.ID)
		case mana.PayFromCrystal:
			var spent bool
			if crystals, spent = crystals.Spend(pay.Color); !spent {
				return fmt.Errorf("%w: %s", ErrNoCrystal, pay.Color)
			}
		case mana.PayFromToken:
			j := slices.IndexFunc(tokens, func(t mana.Token) bool { return t.Color == pay.Color })
			if j < 0 {
				return fmt.Errorf("%w: %s", ErrNoToken, pay.Color)
			}
			tokens = slices.Delete(tokens, j, j+1)
		case mana.PayFromEndless:
			if !modifiers.HasEndlessMana(s, playerID, pay.Color) {
				return fmt.Errorf("%w: %s", ErrNoEndless, pay.Color)
			}
		default:
			return fmt.Errorf("%w: %q", ErrUnknownPayKind, pay.Kind)
		}
	}
	return nil
}

// Pay spends payments. Call CheckPayment first; Pay panics on a payment it
// cannot make.
func Pay(s state.GameState, playerID string, payments []mana.Payment) (state.GameState, []events.Event) {
	if len(payments) == 0 {
		return s, nil
	}
	s = s.Clone()
	p := s.MustPlayer(playerID)
	var evs []events.Event
	for _, pay := range payments {
		switch pay.Kind {
		case mana.PayFromDie:
			_, i, ok := s.Source.Die(pay.DieID)
			if !ok {
				panic("rules: paying with unknown die " + pay.DieID)
			}
			s.Source.Dice[i].TakenBy = playerID
			p.UsedDieIDs = append(p.UsedDieIDs, pay.DieID)
			evs = append(evs, events.New(events.ManaDieUsed, playerID).WithSource(pay.DieID).WithMeta("color", string(pay.Color)))
		case mana.PayFromCrystal:
			var ok bool
			if p.Crystals, ok = p.Crystals.Spend(pay.Color); !ok {
				panic("rules: paying with missing crystal " + string(pay.Color))
			}
			evs = append(evs, events.New(events.CrystalUsed, playerID).WithMeta("color", string(pay.Color)))
		case mana.PayFromToken:
			j := slices.IndexFunc(p.PureMana, func(t mana.Token) bool { return t.Color == pay.Color })
			if j < 0 {
				panic("rules: paying with missing token " + string(pay.Color))
			}
			p.PureMana = slices.Delete(p.PureMana, j, j+1)
			evs = append(evs, events.New(events.ManaTokenUsed, playerID).WithMeta("color", string(pay.Color)))
		case mana.PayFromEndless:
			evs = append(evs, events.New(events.ManaTokenUsed, playerID).WithMeta("color", string(pay.Color)).WithMeta("endless", "true"))
		default:
			panic(fmt.Sprintf("rules: unknown payment kind %q", pay.Kind))
		}
	}
	s.SetPlayer(p)
	return s, evs
}
