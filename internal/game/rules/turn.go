package rules

import (
	"cmp"
	"slices"

	"github.com/mage-knight-digital/MageKnight-sub005/internal/game/catalog"
	"github.com/mage-knight-digital/MageKnight-sub005/internal/game/events"
	"github.com/mage-knight-digital/MageKnight-sub005/internal/game/mana"
	"github.com/mage-knight-digital/MageKnight-sub005/internal/game/modifiers"
	"github.com/mage-knight-digital/MageKnight-sub005/internal/game/state"
)

// TurnOrderByTactics orders players by the number of their tactic, lowest
// first. Players without a tactic keep their relative order at the end.
func TurnOrderByTactics(s state.GameState) []string {
	players := slices.Clone(s.Players)
	number := func(p state.Player) int {
		if t, ok := catalog.Tactic(p.TacticID); ok {
			return t.Number
		}
		return len(s.Players) + 100
	}
	slices.SortStableFunc(players, func(a, b state.Player) int {
		return cmp.Compare(number(a), number(b))
	})
	order := make([]string, len(players))
	for i, p := range players {
		order[i] = p.ID
	}
	return order
}

// AllTacticsSelected reports whether every player holds a tactic.
func AllTacticsSelected(s state.GameState) bool {
	for _, p := range s.Players {
		if p.TacticID == "" {
			return false
		}
	}
	return true
}

// StartTurn resets a player's per-turn flags.
func StartTurn(s state.GameState, playerID string) (state.GameState, []events.Event) {
	s = s.Clone()
	s.UpdatePlayer(playerID, func(p *state.Player) {
		p.MovePoints = 0
		p.InfluencePoints = 0
		p.HealingPoints = 0
		p.UsedDieIDs = nil
		p.HasMovedThisTurn = false
		p.HasTakenActionThisTurn = false
		p.HasCombattedThisTurn = false
		p.Cooldowns.UsedThisTurn = nil
		p.Cooldowns.ActiveUntilNextTurn = nil
	})
	return s, []events.Event{events.New(events.TurnStarted, playerID).WithIntMeta("round", s.Round)}
}

// DrawUpTo draws from the deck until the hand holds limit cards or the deck
// is empty. Deck order is hidden, so drawing is irreversible.
func DrawUpTo(p state.Player, limit int) (state.Player, int) {
	n := min(max(0, limit-len(p.Hand)), len(p.Deck))
	if n == 0 {
		return p, 0
	}
	p.Hand = append(slices.Clone(p.Hand), p.Deck[:n]...)
	p.Deck = slices.Clone(p.Deck[n:])
	return p, n
}

// MineColor reports the crystal colour a plain mine gives to a player ending
// the turn on it.
func MineColor(s state.GameState, p state.Player) (mana.Color, bool) {
	if p.Position == nil {
		return "", false
	}
	hex, ok := s.Map.Hex(*p.Position)
	if !ok || hex.Site == nil || hex.Site.Type != state.SiteMine || len(hex.Site.MineColors) == 0 {
		return "", false
	}
	return hex.Site.MineColors[0], true
}

// DeepMineColors reports the colours a deep mine offers a player ending the
// turn on it.
func DeepMineColors(s state.GameState, p state.Player) ([]mana.Color, bool) {
	if p.Position == nil {
		return nil, false
	}
	hex, ok := s.Map.Hex(*p.Position)
	if !ok || hex.Site == nil || hex.Site.Type != state.SiteDeepMine || len(hex.Site.MineColors) == 0 {
		return nil, false
	}
	return slices.Clone(hex.Site.MineColors), true
}

// FinishTurn runs the end of the current player's turn: played cards go to
// the discard pile, a mine yields mined (when set), source dice return
// rerolled, turn modifiers expire, unspent points and tokens are lost, the
// hand is refilled and play passes on. When the turn would pass back to the
// player who announced the end of the round, the round ends instead.
func FinishTurn(s state.GameState, playerID string, mined mana.Color) (state.GameState, []events.Event) {
	s = s.Clone()
	var evs []events.Event
	p := s.MustPlayer(playerID)

	p.Discard = append(slices.Clone(p.Discard), p.PlayArea...)
	p.PlayArea = nil
	if mined != "" {
		p.Crystals, _ = p.Crystals.Add(mined, 1)
		evs = append(evs, events.New(events.CrystalMined, playerID).WithMeta("color", string(mined)))
	}
	p.PureMana = nil
	p.MovePoints, p.InfluencePoints, p.HealingPoints = 0, 0, 0
	p.Accumulator = state.CombatAccumulator{}
	p.Cooldowns.UsedThisTurn = nil
	p.PendingDeepMine = nil

	var drawn int
	p, drawn = DrawUpTo(p, p.HandLimit)
	if drawn > 0 {
		evs = append(evs, events.New(events.CardsDrawn, playerID).WithAmount(drawn))
	}
	s.SetPlayer(p)

	roll, rng := s.RNG.Roll()
	s.Source = s.Source.Release(playerID, roll)
	s.RNG = *rng

	var expired int
	if s, expired = modifiers.ExpireTurn(s, playerID); expired > 0 {
		evs = append(evs, events.New(events.ModifiersExpired, playerID).WithAmount(expired).WithMeta("duration", string(state.DurationTurn)))
	}

	if len(p.Deck) == 0 && len(p.Hand) == 0 && s.EndOfRoundAnnouncedBy == "" {
		s.EndOfRoundAnnouncedBy = playerID
		evs = append(evs, events.New(events.EndOfRoundAnnounced, playerID))
	}
	evs = append(evs, events.New(events.TurnEnded, playerID))

	next := (s.CurrentPlayerIndex + 1) % len(s.TurnOrder)
	if s.EndOfRoundAnnouncedBy != "" && s.TurnOrder[next] == s.EndOfRoundAnnouncedBy {
		var out []events.Event
		s, out = EndRound(s)
		return s, append(evs, out...)
	}
	s.CurrentPlayerIndex = next
	var out []events.Event
	s, out = StartTurn(s, s.TurnOrder[next])
	return s, append(evs, out...)
}

// EndRound closes the round: round modifiers expire, day and night swap,
// the source is rerolled, units ready, decks are reshuffled with every card
// the player owns and fresh hands drawn. The next round starts with tactics
// selection, or the game ends after the last round.
func EndRound(s state.GameState) (state.GameState, []events.Event) {
	s = s.Clone()
	evs := []events.Event{events.New(events.RoundEnded, "").WithIntMeta("round", s.Round)}

	var expired int
	if s, expired = modifiers.ExpireRound(s); expired > 0 {
		evs = append(evs, events.New(events.ModifiersExpired, "").WithAmount(expired).WithMeta("duration", string(state.DurationRound)))
	}
	s.EndOfRoundAnnouncedBy = ""

	if s.RoundLimit > 0 && s.Round >= s.RoundLimit {
		s.Phase = state.PhaseGameOver
		return s, append(evs, events.New(events.GameEnded, "").WithIntMeta("round", s.Round))
	}

	s.Round++
	if s.IsDay() {
		s.TimeOfDay = state.Night
	} else {
		s.TimeOfDay = state.Day
	}
	evs = append(evs, events.New(events.TimeOfDayChanged, "").WithMeta("timeOfDay", string(s.TimeOfDay)))

	roll, rng := s.RNG.Roll()
	s.Source = s.Source.Roll(roll)
	s.RNG = *rng
	evs = append(evs, events.New(events.SourceRerolled, "").WithAmount(len(s.Source.Dice)))

	for i := range s.Players {
		p := s.Players[i]
		for u := range p.Units {
			p.Units[u].State = state.UnitReady
		}
		all := slices.Concat(p.Deck, p.Hand, p.Discard, p.PlayArea)
		p.Deck, s.RNG = state.ShuffleCards(all, s.RNG)
		p.Hand, p.Discard, p.PlayArea = nil, nil, nil
		p.TacticID = ""
		p.Cooldowns.UsedThisRound = nil
		var drawn int
		p, drawn = DrawUpTo(p, p.HandLimit)
		s.Players[i] = p
		evs = append(evs, events.New(events.CardsDrawn, p.ID).WithAmount(drawn))
	}

	s.Phase = state.PhaseTacticsSelection
	s.AvailableTactics = catalog.TacticsFor(!s.IsDay())
	s.CurrentPlayerIndex = 0
	evs = append(evs, events.New(events.RoundStarted, "").WithIntMeta("round", s.Round))
	return s, evs
}

// BeginPlayerTurns fixes the turn order once every tactic is chosen and
// starts the first turn.
func BeginPlayerTurns(s state.GameState) (state.GameState, []events.Event) {
	s = s.Clone()
	s.TurnOrder = TurnOrderByTactics(s)
	s.Phase = state.PhasePlayerTurns
	s.CurrentPlayerIndex = 0
	return StartTurn(s, s.TurnOrder[0])
}

// TacticSelectionOrder is the order players pick tactics in: lowest fame
// first, ties broken by the previous turn order.
func TacticSelectionOrder(s state.GameState) []string {
	order := slices.Clone(s.TurnOrder)
	slices.SortStableFunc(order, func(a, b string) int {
		return cmp.Compare(s.MustPlayer(a).Fame, s.MustPlayer(b).Fame)
	})
	return order
}

// NextTacticSelector is the player who picks a tactic next, or "" when all
// have picked.
func NextTacticSelector(s state.GameState) string {
	for _, id := range TacticSelectionOrder(s) {
		if s.MustPlayer(id).TacticID == "" {
			return id
		}
	}
	return ""
}
