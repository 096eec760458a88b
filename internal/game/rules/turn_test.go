package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mage-knight-digital/MageKnight-sub005/internal/game/catalog"
	"github.com/mage-knight-digital/MageKnight-sub005/internal/game/events"
	"github.com/mage-knight-digital/MageKnight-sub005/internal/game/mana"
	"github.com/mage-knight-digital/MageKnight-sub005/internal/game/state"
)

func types(evs []events.Event) []events.Type {
	out := make([]events.Type, len(evs))
	for i, e := range evs {
		out[i] = e.Type
	}
	return out
}

func TestTacticsOrder(t *testing.T) {
	s := newState()
	s.Phase = state.PhaseTacticsSelection
	s.Players[0].Fame = 4

	assert.Equal(t, []string{"p2", "p1"}, TacticSelectionOrder(s))
	assert.Equal(t, "p2", NextTacticSelector(s))
	assert.False(t, AllTacticsSelected(s))

	s.Players[1].TacticID = "planning"
	assert.Equal(t, "p1", NextTacticSelector(s))

	s.Players[0].TacticID = "early_bird"
	assert.Empty(t, NextTacticSelector(s))
	require.True(t, AllTacticsSelected(s))

	got, evs := BeginPlayerTurns(s)
	assert.Equal(t, []string{"p1", "p2"}, got.TurnOrder, "early bird goes first")
	assert.Equal(t, state.PhasePlayerTurns, got.Phase)
	assert.Equal(t, "p1", got.CurrentPlayerID())
	assert.Equal(t, []events.Type{events.TurnStarted}, types(evs))

	s.Players[0].TacticID = "the_right_moment"
	assert.Equal(t, []string{"p2", "p1"}, TurnOrderByTactics(s))
}

func TestStartTurnResetsTurnFlags(t *testing.T) {
	s := newState()
	s.UpdatePlayer("p1", func(p *state.Player) {
		p.MovePoints = 3
		p.InfluencePoints = 2
		p.HealingPoints = 1
		p.UsedDieIDs = []string{"die_0"}
		p.HasMovedThisTurn = true
		p.HasTakenActionThisTurn = true
		p.HasCombattedThisTurn = true
		p.Cooldowns.UsedThisTurn = []state.SkillID{"leadership"}
		p.Cooldowns.UsedThisRound = []state.SkillID{"battle_hardened"}
	})

	got, _ := StartTurn(s, "p1")
	p := got.MustPlayer("p1")
	assert.Zero(t, p.MovePoints)
	assert.Zero(t, p.InfluencePoints)
	assert.Zero(t, p.HealingPoints)
	assert.Empty(t, p.UsedDieIDs)
	assert.False(t, p.HasMovedThisTurn)
	assert.False(t, p.HasTakenActionThisTurn)
	assert.False(t, p.HasCombattedThisTurn)
	assert.Empty(t, p.Cooldowns.UsedThisTurn)
	assert.Equal(t, []state.SkillID{"battle_hardened"}, p.Cooldowns.UsedThisRound, "round cooldowns survive")
}

func TestDrawUpTo(t *testing.T) {
	p := state.Player{Hand: []state.CardID{"march"}, Deck: []state.CardID{"rage", "stamina", "promise"}}

	got, n := DrawUpTo(p, 3)
	assert.Equal(t, 2, n)
	assert.Equal(t, []state.CardID{"march", "rage", "stamina"}, got.Hand)
	assert.Equal(t, []state.CardID{"promise"}, got.Deck)
	assert.Len(t, p.Deck, 3, "input untouched")

	_, n = DrawUpTo(got, 2)
	assert.Zero(t, n, "hand already over the limit")

	short, n := DrawUpTo(state.Player{Deck: []state.CardID{"rage"}}, 5)
	assert.Equal(t, 1, n)
	assert.Empty(t, short.Deck)
}

func TestMines(t *testing.T) {
	s := newState()
	p := s.MustPlayer("p1")

	_, ok := MineColor(s, p)
	assert.False(t, ok)

	p.Position = &state.HexCoord{Q: -1, R: 1}
	c, ok := MineColor(s, p)
	require.True(t, ok)
	assert.Equal(t, mana.Blue, c)

	p.Position = &state.HexCoord{R: -1}
	colors, ok := DeepMineColors(s, p)
	require.True(t, ok)
	assert.Equal(t, []mana.Color{mana.Green, mana.White}, colors)
	_, ok = MineColor(s, p)
	assert.False(t, ok, "deep mines need a pick")
}

func TestFinishTurn(t *testing.T) {
	s := newState()
	s.Source.Dice[0].TakenBy = "p1"
	s.UpdatePlayer("p1", func(p *state.Player) {
		p.Hand = []state.CardID{"march"}
		p.PlayArea = []state.CardID{"rage"}
		p.MovePoints = 4
		p.Accumulator.Block = state.ElementalValues{Physical: 3}
	})
	s = withModifier(s, "p1", state.TerrainCost{Amount: 1, Minimum: 1})

	got, evs := FinishTurn(s, "p1", mana.Blue)

	p := got.MustPlayer("p1")
	assert.Equal(t, []state.CardID{"rage"}, p.Discard)
	assert.Empty(t, p.PlayArea)
	assert.Equal(t, []state.CardID{"march", "stamina", "swiftness"}, p.Hand)
	assert.Equal(t, []state.CardID{"promise"}, p.Deck)
	assert.Equal(t, 1, p.Crystals.Get(mana.Blue))
	assert.Empty(t, p.PureMana, "tokens are lost")
	assert.Zero(t, p.MovePoints)
	assert.True(t, p.Accumulator.Block.IsZero())
	assert.Empty(t, got.Source.Dice[0].TakenBy)
	assert.Empty(t, got.ActiveModifiers)
	assert.Equal(t, "p2", got.CurrentPlayerID())
	assert.Equal(t, []events.Type{
		events.CrystalMined, events.CardsDrawn, events.ModifiersExpired, events.TurnEnded, events.TurnStarted,
	}, types(evs))
	assert.NotEqual(t, s.RNG, got.RNG, "released dice are rerolled")
}

func TestRoundEnd(t *testing.T) {
	empty := func(s state.GameState, id string) state.GameState {
		s.UpdatePlayer(id, func(p *state.Player) {
			p.Discard = append(p.Discard, p.Hand...)
			p.Discard = append(p.Discard, p.Deck...)
			p.Hand, p.Deck = nil, nil
		})
		return s
	}

	t.Run("empty handed player announces", func(t *testing.T) {
		s := empty(newState(), "p1")
		got, evs := FinishTurn(s, "p1", "")
		assert.Equal(t, "p1", got.EndOfRoundAnnouncedBy)
		assert.Contains(t, types(evs), events.EndOfRoundAnnounced)
		assert.Equal(t, "p2", got.CurrentPlayerID(), "everyone else gets a last turn")
	})

	t.Run("round ends when play returns to the announcer", func(t *testing.T) {
		s := newState()
		s.EndOfRoundAnnouncedBy = "p1"
		s.CurrentPlayerIndex = 1
		s.Players[0].Units = []state.PlayerUnit{{InstanceID: "unit_1", UnitID: "peasants", State: state.UnitSpent}}
		s.Players[0].TacticID = "planning"
		s.Players[0].Cooldowns.UsedThisRound = []state.SkillID{"leadership"}
		s = withModifier(s, "p1", state.RecruitDiscount{Amount: 1})
		s.ActiveModifiers[0].Duration = state.DurationRound

		got, evs := FinishTurn(s, "p2", "")

		assert.Equal(t, state.PhaseTacticsSelection, got.Phase)
		assert.Equal(t, 2, got.Round)
		assert.Equal(t, state.Night, got.TimeOfDay)
		assert.Empty(t, got.EndOfRoundAnnouncedBy)
		assert.Equal(t, catalog.TacticsFor(true), got.AvailableTactics)
		assert.Empty(t, got.ActiveModifiers)

		p := got.MustPlayer("p1")
		assert.Equal(t, state.UnitReady, p.Units[0].State)
		assert.Empty(t, p.TacticID)
		assert.Empty(t, p.Cooldowns.UsedThisRound)
		assert.Len(t, p.Hand, 3)
		assert.Len(t, p.Hand, p.HandLimit)
		assert.Len(t, append(p.Hand, p.Deck...), 5, "every card is back")
		assert.Empty(t, p.Discard)

		ts := types(evs)
		assert.Contains(t, ts, events.RoundEnded)
		assert.Contains(t, ts, events.TimeOfDayChanged)
		assert.Contains(t, ts, events.RoundStarted)
		assert.NotContains(t, ts, events.TurnStarted)
	})

	t.Run("last round ends the game", func(t *testing.T) {
		s := newState()
		s.Round = s.RoundLimit
		got, evs := EndRound(s)
		assert.Equal(t, state.PhaseGameOver, got.Phase)
		assert.Equal(t, s.Round, got.Round)
		assert.Contains(t, types(evs), events.GameEnded)
	})

	t.Run("round end is deterministic", func(t *testing.T) {
		a, _ := EndRound(newState())
		b, _ := EndRound(newState())
		ja, err := state.Canonical(a)
		require.NoError(t, err)
		jb, err := state.Canonical(b)
		require.NoError(t, err)
		assert.JSONEq(t, string(ja), string(jb))
	})
}
