package validators

import (
	"slices"

	"github.com/mage-knight-digital/MageKnight-sub005/internal/game/actions"
	"github.com/mage-knight-digital/MageKnight-sub005/internal/game/effects"
	"github.com/mage-knight-digital/MageKnight-sub005/internal/game/state"
)

// Resolution governs RESOLVE_CHOICE, RESOLVE_DISCARD and RESOLVE_DEEP_MINE.
func Resolution(s state.GameState, playerID string, a actions.Action) Result {
	p := s.MustPlayer(playerID)
	switch a := a.(type) {
	case actions.ResolveChoice:
		if !p.Choice.IsAwaiting() {
			return Invalid(NoPendingChoice, "No choice to resolve")
		}
		if n := len(p.Choice.Pending.Options); a.Index < 0 || a.Index >= n {
			return Invalid(BadChoiceIndex, "Choice index %d out of range 0..%d", a.Index, n-1)
		}
	case actions.ResolveDiscard:
		if p.PendingDiscard == nil {
			return Invalid(NoPendingDiscard, "No discard to resolve")
		}
		if !effects.ValidDiscard(p, a.CardIDs) {
			return Invalid(InvalidDiscard, "Discard exactly %d eligible cards from your hand", p.PendingDiscard.Count)
		}
	case actions.ResolveDeepMine:
		if p.PendingDeepMine == nil {
			return Invalid(NoPendingMine, "No deep mine to resolve")
		}
		if !slices.Contains(p.PendingDeepMine.Colors, a.Color) {
			return Invalid(InvalidMineColor, "This mine does not yield %s", a.Color)
		}
	}
	return Valid()
}

// TurnFlow governs END_TURN and ANNOUNCE_END_OF_ROUND.
func TurnFlow(s state.GameState, playerID string, a actions.Action) Result {
	switch a.(type) {
	case actions.EndTurn:
		if s.InCombat() {
			return Invalid(InCombat, "Finish combat first")
		}
	case actions.AnnounceEndOfRound:
		if s.InCombat() {
			return Invalid(InCombat, "Finish combat first")
		}
		if s.EndOfRoundAnnouncedBy != "" {
			return Invalid(RoundAnnounced, "%s already announced the end of the round", s.EndOfRoundAnnouncedBy)
		}
		if len(s.MustPlayer(playerID).Deck) > 0 {
			return Invalid(DeckNotEmpty, "Only a player with an empty deck can announce the end of the round")
		}
	}
	return Valid()
}
