package validactions

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mage-knight-digital/MageKnight-sub005/internal/game/actions"
	"github.com/mage-knight-digital/MageKnight-sub005/internal/game/mana"
	"github.com/mage-knight-digital/MageKnight-sub005/internal/game/state"
	"github.com/mage-knight-digital/MageKnight-sub005/internal/game/validators"
)

func fixture() state.GameState {
	origin := state.HexCoord{}
	hexes := map[string]state.Hex{}
	for _, h := range []state.Hex{
		{Coord: origin, Terrain: state.Plains, Site: &state.Site{Type: state.SiteVillage}},
		{Coord: state.HexCoord{Q: 1}, Terrain: state.Hills},
		{Coord: state.HexCoord{R: 1}, Terrain: state.Forest, Enemies: []state.EnemyID{"prowlers"}},
		{Coord: state.HexCoord{Q: -1}, Terrain: state.Lake},
	} {
		hexes[h.Coord.Key()] = h
	}
	player := func(id string) state.Player {
		return state.Player{
			ID:            id,
			Hero:          "goldyx",
			Position:      &origin,
			Level:         1,
			Armor:         2,
			HandLimit:     5,
			CommandTokens: 2,
			Hand:          []state.CardID{"march", "rage", "rage", state.WoundCard},
			Deck:          []state.CardID{"stamina"},
			Crystals:      mana.Crystals{Red: 1},
			PureMana:      []mana.Token{{Color: mana.Red, Source: mana.FromCard}},
			Skills:        []state.SkillID{"leadership", "shield_mastery"},
			Units:         []state.PlayerUnit{{InstanceID: "unit_1", UnitID: "peasants", State: state.UnitReady}},
			Choice:        state.Idle(),
		}
	}
	return state.GameState{
		GameID:    "g1",
		Phase:     state.PhasePlayerTurns,
		Round:     1,
		TimeOfDay: state.Day,
		Players:   []state.Player{player("p1"), player("p2")},
		TurnOrder: []string{"p1", "p2"},
		Map:       state.MapState{Hexes: hexes},
		Source: mana.Source{Dice: []mana.SourceDie{
			{ID: "die_0", Color: mana.Red},
			{ID: "die_1", Color: mana.Green},
			{ID: "die_2", Color: mana.White},
		}},
		Offers: state.Offers{Units: []state.UnitID{"peasants", "utem_guardsmen"}},
	}
}

func p1(s *state.GameState) *state.Player { return &s.Players[0] }

func inCombat(s *state.GameState, phase state.CombatPhase) {
	s.Combat = &state.CombatState{
		Phase:   phase,
		Context: state.ContextStandard,
		Enemies: []state.CombatEnemy{
			{InstanceID: "enemy_0", EnemyID: "prowlers", AttacksBlocked: []bool{false}, AttacksDamageAssigned: []bool{false}},
		},
	}
}

func card(t *testing.T, list []CardOption, id state.CardID) CardOption {
	t.Helper()
	for _, c := range list {
		if c.CardID == id {
			return c
		}
	}
	require.Failf(t, "card not listed", "%s", id)
	return CardOption{}
}

func TestCannotAct(t *testing.T) {
	tests := []struct {
		name     string
		setup    func(s *state.GameState)
		playerID string
		reason   string
	}{
		{"unknown player", nil, "p9", "Unknown player p9"},
		{"game over", func(s *state.GameState) { s.Phase = state.PhaseGameOver }, "p1", "The game is over"},
		{"not your turn", nil, "p2", "It is p1's turn"},
		{"other player picks tactic", func(s *state.GameState) {
			s.Phase = state.PhaseTacticsSelection
			s.AvailableTactics = []state.TacticID{"early_bird"}
		}, "p2", "Waiting for p1 to select a tactic"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := fixture()
			if tt.setup != nil {
				tt.setup(&s)
			}
			va := Project(s, tt.playerID, true)
			assert.Equal(t, ModeCannotAct, va.Mode)
			assert.Equal(t, tt.reason, va.Reason)
			assert.False(t, va.CanUndo)
		})
	}
}

func TestTacticsSelection(t *testing.T) {
	s := fixture()
	s.Phase = state.PhaseTacticsSelection
	s.AvailableTactics = []state.TacticID{"early_bird", "rethink"}

	va := Project(s, "p1", false)
	require.Equal(t, ModeTacticsSelection, va.Mode)
	assert.Equal(t, []state.TacticID{"early_bird", "rethink"}, va.Tactics.Available)
	assert.Nil(t, va.Turn)
}

func TestPendingModes(t *testing.T) {
	t.Run("choice", func(t *testing.T) {
		s := fixture()
		p1(&s).Choice = state.Awaiting(state.PendingChoice{
			Source: state.Source{Kind: state.SourceCard, ID: "rage", PlayerID: "p1"},
			Options: []state.Effect{
				state.GainAttack{Amount: 2, AttackType: state.Melee, Element: state.Physical},
				state.GainBlock{Amount: 2, Element: state.Physical},
			},
		})
		va := Project(s, "p1", true)
		require.Equal(t, ModePendingChoice, va.Mode)
		assert.True(t, va.CanUndo)
		assert.Equal(t, "rage", va.Choice.Source)
		assert.Equal(t, []ChoiceOption{{Index: 0, Description: "Attack 2"}, {Index: 1, Description: "Block 2"}}, va.Choice.Options)
		assert.Nil(t, va.Turn)
		assert.Nil(t, va.Combat)
	})

	t.Run("discard", func(t *testing.T) {
		s := fixture()
		p1(&s).PendingDiscard = &state.PendingDiscard{
			Source: state.Source{Kind: state.SourceCard, ID: "improvisation"},
			Count:  1,
			Then:   state.GainMove{Amount: 3},
		}
		va := Project(s, "p1", false)
		require.Equal(t, ModePendingDiscard, va.Mode)
		assert.False(t, va.CanUndo)
		assert.Equal(t, 1, va.Discard.Count)
		assert.Equal(t, []state.CardID{"march", "rage"}, va.Discard.Eligible)
	})

	t.Run("deep mine never offers undo", func(t *testing.T) {
		s := fixture()
		p1(&s).PendingDeepMine = &state.PendingDeepMine{Colors: []mana.Color{mana.Green, mana.White}}
		va := Project(s, "p1", true)
		require.Equal(t, ModePendingDeepMine, va.Mode)
		assert.False(t, va.CanUndo)
		assert.Equal(t, []mana.Color{mana.Green, mana.White}, va.DeepMine.Colors)
	})
}

func TestNormalTurn(t *testing.T) {
	s := fixture()
	p1(&s).MovePoints = 3
	p1(&s).InfluencePoints = 4

	va := Project(s, "p1", true)
	require.Equal(t, ModeNormalTurn, va.Mode)
	assert.True(t, va.CanUndo)
	turn := va.Turn
	require.NotNil(t, turn)

	assert.Contains(t, turn.Moves, MoveOption{Target: state.HexCoord{Q: 1}, Cost: 3})
	for _, m := range turn.Moves {
		assert.NotEqual(t, state.HexCoord{Q: -1}, m.Target, "lake is impassable")
	}
	assert.Equal(t, []state.HexCoord{{R: 1}}, turn.Challenges)

	march := card(t, turn.Cards, "march")
	assert.True(t, march.Basic)
	assert.Empty(t, march.BasicPayment)
	assert.True(t, march.Powered)
	assert.Equal(t, []mana.Payment{{Kind: mana.PayFromDie, Color: mana.Green, DieID: "die_1"}}, march.PoweredPayment)
	assert.Equal(t, []actions.SidewaysAs{actions.SidewaysMove, actions.SidewaysInfluence}, march.Sideways)

	rage := card(t, turn.Cards, "rage")
	assert.False(t, rage.Basic, "attack or block has no use outside combat")
	assert.False(t, rage.Powered)
	assert.NotEmpty(t, rage.Sideways)
	for _, c := range turn.Cards {
		assert.NotEqual(t, state.WoundCard, c.CardID)
	}

	assert.Equal(t, []mana.Color{mana.Red}, turn.ConvertCrystals)
	assert.Equal(t, []RecruitOption{{UnitID: "peasants", Cost: 4}}, turn.Recruits)
	require.Len(t, turn.Units, 1)
	assert.Equal(t, []int{2, 3}, abilityIndexes(turn.Units[0]))
	assert.Empty(t, turn.Heals)
	assert.Equal(t, []state.SkillID{"leadership"}, turn.Skills)
	assert.True(t, turn.CanEndTurn)
	assert.False(t, turn.CanAnnounceEndOfRound)
}

func abilityIndexes(u UnitOption) []int {
	var out []int
	for _, a := range u.Abilities {
		out = append(out, a.Index)
	}
	return out
}

func TestCombat(t *testing.T) {
	t.Run("attack phase", func(t *testing.T) {
		s := fixture()
		inCombat(&s, state.PhaseAttack)
		p1(&s).Accumulator.Attack = state.AttackPool{}.Add(state.Melee, state.Physical, 3)
		p1(&s).Accumulator.AssignedAttack = state.AttackPool{}.Add(state.Melee, state.Physical, 1)

		va := Project(s, "p1", false)
		require.Equal(t, ModeCombat, va.Mode)
		c := va.Combat
		assert.Equal(t, state.PhaseAttack, c.Phase)
		assert.Equal(t, 2, c.AvailableAttack.Melee.Physical)
		require.Len(t, c.Enemies, 1)
		e := c.Enemies[0]
		assert.Equal(t, 3, e.Armor)
		assert.Contains(t, e.Targetable, state.Melee)
		assert.Equal(t, []EnemyAttackOption{{Index: 0, Value: 4, Element: state.Physical, BlockRequired: 4}}, e.Attacks)

		rage := card(t, c.Cards, "rage")
		assert.True(t, rage.Basic)
		assert.True(t, rage.Powered)
		assert.Equal(t, []mana.Payment{{Kind: mana.PayFromToken, Color: mana.Red}}, rage.PoweredPayment)
		assert.Equal(t, []actions.SidewaysAs{actions.SidewaysAttack}, rage.Sideways)
		assert.Equal(t, []int{0, 1}, abilityIndexes(c.Units[0]))
		assert.Contains(t, c.Skills, state.SkillID("shield_mastery"))
		assert.True(t, c.CanEndPhase)
	})

	t.Run("ranged phase cannot reach with melee", func(t *testing.T) {
		s := fixture()
		inCombat(&s, state.PhaseRangedSiege)
		va := Project(s, "p1", false)
		assert.NotContains(t, va.Combat.Enemies[0].Targetable, state.Melee)
		assert.Contains(t, va.Combat.Enemies[0].Targetable, state.Ranged)
	})

	t.Run("assign damage", func(t *testing.T) {
		s := fixture()
		inCombat(&s, state.PhaseAssignDamage)
		va := Project(s, "p1", false)
		a := va.Combat.Enemies[0].Attacks[0]
		assert.True(t, a.CanAssign)
		assert.Equal(t, []string{"unit_1"}, a.DamageTargets)
		assert.False(t, va.Combat.CanEndPhase)
	})
}

func TestEveryListedActionValidates(t *testing.T) {
	s := fixture()
	p1(&s).MovePoints = 5
	p1(&s).InfluencePoints = 9
	va := Project(s, "p1", false)
	pipeline := validators.Default()

	var listed []actions.Action
	for _, m := range va.Turn.Moves {
		listed = append(listed, actions.Move{Target: m.Target})
	}
	for _, c := range va.Turn.Cards {
		if c.Basic {
			listed = append(listed, actions.PlayCard{CardID: c.CardID, Mana: c.BasicPayment})
		}
		if c.Powered {
			listed = append(listed, actions.PlayCard{CardID: c.CardID, Powered: true, Mana: c.PoweredPayment})
		}
		for _, as := range c.Sideways {
			listed = append(listed, actions.PlayCardSideways{CardID: c.CardID, As: as})
		}
	}
	for _, r := range va.Turn.Recruits {
		listed = append(listed, actions.RecruitUnit{UnitID: r.UnitID})
	}
	for _, u := range va.Turn.Units {
		for _, a := range u.Abilities {
			listed = append(listed, actions.ActivateUnit{UnitInstanceID: u.UnitInstanceID, AbilityIndex: a.Index, Mana: a.Payment})
		}
	}
	require.NotEmpty(t, listed)
	for _, a := range listed {
		assert.True(t, pipeline.Validate(s, "p1", a).Valid, "%#v", a)
	}
}
