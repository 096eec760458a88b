package effects

import (
	"fmt"
	"slices"

	"github.com/mage-knight-digital/MageKnight-sub005/internal/game/events"
	"github.com/mage-knight-digital/MageKnight-sub005/internal/game/state"
)

// ResolveChoice applies option index of the player's pending choice and
// returns the slot to idle. A nested choice raised by the option replaces
// the slot again.
func ResolveChoice(s state.GameState, playerID string, index int) Result {
	p := s.MustPlayer(playerID)
	if !p.Choice.IsAwaiting() {
		panic("effects: ResolveChoice without pending choice")
	}
	pending := *p.Choice.Pending
	if index < 0 || index >= len(pending.Options) {
		panic(fmt.Sprintf("effects: choice index %d out of range", index))
	}
	r := &resolver{s: s.Clone(), playerID: playerID, source: pending.Source}
	r.player().Choice = state.Idle()
	r.emit(events.New(events.ChoiceResolved, playerID).WithSource(pending.Source.ID).WithAmount(index))
	r.resolve(pending.Options[index], nil)
	return r.result()
}

// ResolveDiscard moves cards from hand to the discard pile for the player's
// pending discard, then resolves its follow-up effect.
func ResolveDiscard(s state.GameState, playerID string, cards []state.CardID) Result {
	p := s.MustPlayer(playerID)
	if p.PendingDiscard == nil {
		panic("effects: ResolveDiscard without pending discard")
	}
	pending := *p.PendingDiscard
	r := &resolver{s: s.Clone(), playerID: playerID, source: pending.Source}
	pl := r.player()
	hand := slices.Clone(pl.Hand)
	discard := slices.Clone(pl.Discard)
	for _, c := range cards {
		i := slices.Index(hand, c)
		if i < 0 {
			panic(fmt.Sprintf("effects: discard of %s not in hand", c))
		}
		hand = slices.Delete(hand, i, i+1)
		discard = append(discard, c)
		r.emit(events.New(events.CardDiscarded, playerID).WithTarget(string(c)))
	}
	pl.Hand = hand
	pl.Discard = discard
	pl.PendingDiscard = nil
	r.emit(events.New(events.DiscardResolved, playerID).WithSource(pending.Source.ID).WithAmount(len(cards)))
	r.resolve(pending.Then, nil)
	return r.result()
}

// ValidDiscard reports whether cards satisfy the player's pending discard.
func ValidDiscard(p state.Player, cards []state.CardID) bool {
	if p.PendingDiscard == nil || len(cards) != p.PendingDiscard.Count {
		return false
	}
	hand := slices.Clone(p.Hand)
	for _, c := range cards {
		if c == state.WoundCard && !p.PendingDiscard.AllowWounds {
			return false
		}
		i := slices.Index(hand, c)
		if i < 0 {
			return false
		}
		hand = slices.Delete(hand, i, i+1)
	}
	return true
}
