package combat

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mage-knight-digital/MageKnight-sub005/internal/game/catalog"
	"github.com/mage-knight-digital/MageKnight-sub005/internal/game/events"
	"github.com/mage-knight-digital/MageKnight-sub005/internal/game/modifiers"
	"github.com/mage-knight-digital/MageKnight-sub005/internal/game/state"
)

var skillSource = state.Source{Kind: state.SourceSkill, ID: "test_skill", PlayerID: "p1"}

func newState() state.GameState {
	return state.GameState{
		GameID:    "g1",
		Phase:     state.PhasePlayerTurns,
		Round:     1,
		TimeOfDay: state.Day,
		TurnOrder: []string{"p1"},
		Players: []state.Player{{
			ID:        "p1",
			Armor:     2,
			HandLimit: 5,
			Hand:      []state.CardID{"march", "rage"},
			Choice:    state.Idle(),
			Units: []state.PlayerUnit{
				{InstanceID: "unit_1", UnitID: "peasants", State: state.UnitReady},
				{InstanceID: "unit_2", UnitID: "altem_guardians", State: state.UnitReady},
			},
		}},
		Map: state.MapState{Hexes: map[string]state.Hex{
			"1,0": {Coord: state.HexCoord{Q: 1}, Terrain: state.Plains, Enemies: []state.EnemyID{"diggers", "diggers"}},
		}},
	}
}

func start(t *testing.T, s state.GameState, opts StartOptions, enemies ...state.EnemyID) state.GameState {
	t.Helper()
	s, evs, err := Start(s, "p1", enemies, opts)
	require.NoError(t, err)
	require.True(t, events.Log(evs).Has(events.CombatStarted))
	return s
}

func withAttack(s state.GameState, t state.AttackType, el state.Element, n int) state.GameState {
	s = s.Clone()
	s.UpdatePlayer("p1", func(p *state.Player) {
		p.Accumulator.Attack = p.Accumulator.Attack.Add(t, el, n)
	})
	return s
}

func withBlock(s state.GameState, el state.Element, n, swift int) state.GameState {
	s = s.Clone()
	s.UpdatePlayer("p1", func(p *state.Player) {
		p.Accumulator.Block = p.Accumulator.Block.Add(el, n)
		p.Accumulator.SwiftBlock = p.Accumulator.SwiftBlock.Add(el, swift)
	})
	return s
}

func endPhase(t *testing.T, s state.GameState) (state.GameState, events.Log) {
	t.Helper()
	s, evs, err := EndPhase(s, "p1")
	require.NoError(t, err)
	return s, evs
}

func TestWoundsForFormula(t *testing.T) {
	for attack := 0; attack <= 9; attack++ {
		for _, brutal := range []bool{false, true} {
			for reduction := 0; reduction <= 4; reduction++ {
				for armor := 1; armor <= 5; armor++ {
					a := float64(attack)
					if brutal {
						a *= 2
					}
					want := int(math.Ceil(math.Max(0, a-float64(reduction)) / float64(armor)))
					got := WoundsFor(attack, brutal, reduction, armor)
					if got != want {
						t.Fatalf("WoundsFor(%d, %v, %d, %d) = %d, want %d", attack, brutal, reduction, armor, got, want)
					}
				}
			}
		}
	}
	assert.Panics(t, func() { WoundsFor(1, false, 0, 0) })
}

func TestSwiftBrutalEnemy(t *testing.T) {
	s := start(t, newState(), StartOptions{}, "dire_wolves")
	e := s.Combat.Enemies[0]

	assert.Equal(t, 8, EnemyAttackDamage(e, 0), "brutal doubles damage")
	assert.Equal(t, 8, BlockRequired(e, 0), "swift doubles block needed")

	s, _ = endPhase(t, s)
	s, evs := endPhase(t, s)
	require.Equal(t, state.PhaseAssignDamage, s.Combat.Phase)
	assert.False(t, evs.Has(events.EnemyBlocked))

	s, out, err := AssignDamage(s, "p1", DamageAssignment{EnemyInstanceID: "enemy_0"})
	require.NoError(t, err)
	dmg := events.Log(out).OfType(events.DamageAssigned)
	require.Len(t, dmg, 1)
	assert.Equal(t, 8, dmg[0].Amount)
	assert.Equal(t, 4, s.MustPlayer("p1").Wounds())
}

func TestTwoEnemiesOnlyTargetedOneFalls(t *testing.T) {
	s := start(t, newState(), StartOptions{HexKey: "1,0"}, "diggers", "diggers")

	s, _ = endPhase(t, s) // ranged_siege -> block
	s, _ = endPhase(t, s) // block -> assign_damage
	for _, id := range []string{"enemy_0", "enemy_1"} {
		var err error
		s, _, err = AssignDamage(s, "p1", DamageAssignment{EnemyInstanceID: id})
		require.NoError(t, err)
	}
	s, _ = endPhase(t, s)
	require.Equal(t, state.PhaseAttack, s.Combat.Phase)

	s = withAttack(s, state.Melee, state.Physical, 3)
	s, _, err := AssignAttack(s, "p1", AttackAssignment{EnemyInstanceID: "enemy_0", AttackType: state.Melee, Element: state.Physical, Amount: 3})
	require.NoError(t, err)

	before := s.MustPlayer("p1").Fame
	s, evs := endPhase(t, s)

	defeated := evs.OfType(events.EnemyDefeated)
	require.Len(t, defeated, 1)
	assert.Equal(t, "enemy_0", defeated[0].TargetID)
	assert.Equal(t, before+2, s.MustPlayer("p1").Fame)
	assert.Nil(t, s.Combat)
	assert.Equal(t, []state.EnemyID{"diggers"}, s.Map.Hexes["1,0"].Enemies, "the undefeated digger stays")

	ended := evs.OfType(events.CombatEnded)
	require.Len(t, ended, 1)
	assert.Equal(t, "retreat", ended[0].Metadata["outcome"])
}

func TestAssignAttack(t *testing.T) {
	base := start(t, newState(), StartOptions{}, "prowlers", "diggers")
	base.Combat.Phase = state.PhaseAttack
	base = withAttack(base, state.Melee, state.Physical, 3)

	t.Run("more than accumulated is rejected", func(t *testing.T) {
		got, _, err := AssignAttack(base, "p1", AttackAssignment{EnemyInstanceID: "enemy_0", AttackType: state.Melee, Element: state.Physical, Amount: 4})
		assert.ErrorIs(t, err, ErrInsufficientAttack)
		want, _ := state.Canonical(base)
		have, _ := state.Canonical(got)
		assert.JSONEq(t, string(want), string(have))
	})

	t.Run("split across enemies never exceeds the pool", func(t *testing.T) {
		s, _, err := AssignAttack(base, "p1", AttackAssignment{EnemyInstanceID: "enemy_0", AttackType: state.Melee, Element: state.Physical, Amount: 2})
		require.NoError(t, err)
		_, _, err = AssignAttack(s, "p1", AttackAssignment{EnemyInstanceID: "enemy_1", AttackType: state.Melee, Element: state.Physical, Amount: 2})
		assert.ErrorIs(t, err, ErrInsufficientAttack)
	})

	t.Run("unassign to zero drops the entry", func(t *testing.T) {
		s, _, err := AssignAttack(base, "p1", AttackAssignment{EnemyInstanceID: "enemy_0", AttackType: state.Melee, Element: state.Physical, Amount: 3})
		require.NoError(t, err)
		require.Contains(t, s.Combat.PendingDamage, "enemy_0")

		s, _, err = UnassignAttack(s, "p1", AttackAssignment{EnemyInstanceID: "enemy_0", AttackType: state.Melee, Element: state.Physical, Amount: 1})
		require.NoError(t, err)
		assert.Equal(t, 2, s.Combat.PendingDamage["enemy_0"].Melee.Physical)

		_, _, err = UnassignAttack(s, "p1", AttackAssignment{EnemyInstanceID: "enemy_0", AttackType: state.Melee, Element: state.Physical, Amount: 3})
		assert.ErrorIs(t, err, ErrOverUnassign)

		s, _, err = UnassignAttack(s, "p1", AttackAssignment{EnemyInstanceID: "enemy_0", AttackType: state.Melee, Element: state.Physical, Amount: 2})
		require.NoError(t, err)
		assert.NotContains(t, s.Combat.PendingDamage, "enemy_0")
		assert.Equal(t, 3, s.MustPlayer("p1").Accumulator.AvailableAttack(state.Melee, state.Physical))
	})

	t.Run("bad input", func(t *testing.T) {
		_, _, err := AssignAttack(base, "p1", AttackAssignment{EnemyInstanceID: "enemy_9", AttackType: state.Melee, Element: state.Physical, Amount: 1})
		assert.ErrorIs(t, err, ErrUnknownEnemy)
		_, _, err = AssignAttack(base, "p1", AttackAssignment{EnemyInstanceID: "enemy_0", AttackType: state.Melee, Element: state.Physical})
		assert.ErrorIs(t, err, ErrInvalidAmount)
		_, _, err = AssignAttack(base, "p1", AttackAssignment{EnemyInstanceID: "enemy_0", AttackType: "magic", Element: state.Physical, Amount: 1})
		assert.ErrorIs(t, err, ErrInvalidElement)
	})
}

func TestCanTargetInPhase(t *testing.T) {
	open := start(t, newState(), StartOptions{}, "prowlers", "diggers")
	site := start(t, newState(), StartOptions{Fortified: true}, "prowlers", "diggers")
	prowlers, diggers := open.Combat.Enemies[0], open.Combat.Enemies[1]

	tests := []struct {
		name  string
		s     state.GameState
		enemy state.CombatEnemy
		typ   state.AttackType
		want  bool
	}{
		{"melee waits for the attack phase", open, prowlers, state.Melee, false},
		{"ranged at an open enemy", open, prowlers, state.Ranged, true},
		{"ranged at a fortified enemy", open, diggers, state.Ranged, false},
		{"siege at a fortified enemy", open, diggers, state.Siege, true},
		{"siege at a fortified site", site, prowlers, state.Siege, true},
		{"ranged at a fortified site", site, prowlers, state.Ranged, false},
		{"siege at a doubly fortified enemy", site, diggers, state.Siege, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanTargetInPhase(tt.s, "p1", tt.enemy, tt.typ))
		})
	}

	t.Run("ignore fortification", func(t *testing.T) {
		s, _ := modifiers.Add(site, modifiers.NewBuilder(skillSource).Build(state.RuleActive{Rule: state.RuleIgnoreFortification}))
		assert.True(t, CanTargetInPhase(s, "p1", diggers, state.Ranged))
	})

	t.Run("anything in the attack phase", func(t *testing.T) {
		s := site.Clone()
		s.Combat.Phase = state.PhaseAttack
		for _, typ := range state.AllAttackTypes {
			assert.True(t, CanTargetInPhase(s, "p1", diggers, typ))
		}
		s.Combat.Phase = state.PhaseBlock
		assert.False(t, CanTargetInPhase(s, "p1", prowlers, state.Melee))
	})
}

func TestRangedPhase(t *testing.T) {
	s := start(t, newState(), StartOptions{}, "prowlers", "diggers")
	s = withAttack(s, state.Ranged, state.Physical, 5)

	_, _, err := AssignAttack(s, "p1", AttackAssignment{EnemyInstanceID: "enemy_1", AttackType: state.Ranged, Element: state.Physical, Amount: 3})
	assert.ErrorIs(t, err, ErrCannotTarget)

	s, _, err = AssignAttack(s, "p1", AttackAssignment{EnemyInstanceID: "enemy_0", AttackType: state.Ranged, Element: state.Physical, Amount: 2})
	require.NoError(t, err)

	s, evs := endPhase(t, s)
	assert.Equal(t, state.PhaseBlock, s.Combat.Phase)
	assert.True(t, evs.Has(events.AttackFailed))
	assert.False(t, s.Combat.Enemies[0].IsDefeated)
	assert.Equal(t, 5, s.MustPlayer("p1").Accumulator.AvailableAttack(state.Ranged, state.Physical), "a failed attack returns its points")
	assert.Nil(t, s.Combat.PendingDamage)
}

func TestAllDefeatedInRangedPhaseEndsCombat(t *testing.T) {
	s := newState()
	s.Map.Hexes["2,0"] = state.Hex{Coord: state.HexCoord{Q: 2}, Terrain: state.Hills,
		Site: &state.Site{Type: state.SiteKeep, Fortified: true}, Enemies: []state.EnemyID{"prowlers"}}
	s = start(t, s, StartOptions{HexKey: "2,0", Context: state.ContextSiteAssault}, "prowlers")
	s = withAttack(s, state.Siege, state.Physical, 3)

	s, _, err := AssignAttack(s, "p1", AttackAssignment{EnemyInstanceID: "enemy_0", AttackType: state.Siege, Element: state.Physical, Amount: 3})
	require.NoError(t, err)
	s, evs := endPhase(t, s)

	assert.Nil(t, s.Combat)
	assert.True(t, evs.Has(events.SiteConquered))
	hex := s.Map.Hexes["2,0"]
	assert.Empty(t, hex.Enemies)
	assert.True(t, hex.Site.Conquered)
	assert.Equal(t, "p1", hex.Site.Owner)
	ended := evs.OfType(events.CombatEnded)
	require.Len(t, ended, 1)
	assert.Equal(t, "victory", ended[0].Metadata["outcome"])
}

func TestEffectiveAttackResistance(t *testing.T) {
	s := start(t, newState(), StartOptions{}, "ironclads", "fire_dragon")
	s.Combat.Phase = state.PhaseAttack

	tests := []struct {
		name  string
		enemy string
		pool  state.ElementalValues
		want  int
	}{
		{"physical halved", "enemy_0", state.ElementalValues{Physical: 7}, 3},
		{"fire unresisted", "enemy_0", state.ElementalValues{Fire: 3}, 3},
		{"mixed", "enemy_0", state.ElementalValues{Physical: 3, Ice: 2}, 3},
		{"both resisted halved together", "enemy_1", state.ElementalValues{Physical: 3, Fire: 3}, 3},
		{"cold fire needs both resistances", "enemy_1", state.ElementalValues{ColdFire: 4}, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, _, ok := s.Combat.Enemy(tt.enemy)
			require.True(t, ok)
			def := mustDef(t, e)
			assert.Equal(t, tt.want, EffectiveAttack(def, tt.pool))
		})
	}
}

func TestEffectiveBlock(t *testing.T) {
	tests := []struct {
		attack state.Element
		pool   state.ElementalValues
		want   int
	}{
		{state.Physical, state.ElementalValues{Physical: 3, Fire: 2}, 5},
		{state.Fire, state.ElementalValues{Physical: 5}, 2},
		{state.Fire, state.ElementalValues{Ice: 3}, 3},
		{state.Ice, state.ElementalValues{Fire: 2, Physical: 3}, 3},
		{state.ColdFire, state.ElementalValues{Fire: 2, Ice: 2}, 2},
		{state.ColdFire, state.ElementalValues{ColdFire: 3}, 3},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, EffectiveBlock(tt.attack, tt.pool), "%s vs %+v", tt.attack, tt.pool)
	}
}

func TestBlockPhase(t *testing.T) {
	blockPhase := func(t *testing.T, enemies ...state.EnemyID) state.GameState {
		s := start(t, newState(), StartOptions{}, enemies...)
		s, _ = endPhase(t, s)
		require.Equal(t, state.PhaseBlock, s.Combat.Phase)
		return s
	}

	t.Run("swift block counts twice", func(t *testing.T) {
		s := withBlock(blockPhase(t, "wolf_riders"), state.Physical, 3, 3)
		s, _, err := AssignBlock(s, "p1", BlockAssignment{EnemyInstanceID: "enemy_0", Element: state.Physical, Amount: 3})
		require.NoError(t, err)
		s, evs := endPhase(t, s)
		assert.True(t, evs.Has(events.EnemyBlocked))
		assert.True(t, s.Combat.Enemies[0].IsBlocked)
		assert.Equal(t, state.PhaseAttack, s.Combat.Phase, "nothing to assign skips damage assignment")
		assert.Zero(t, s.MustPlayer("p1").Accumulator.Block.Total())
	})

	t.Run("plain block is not enough against swift", func(t *testing.T) {
		s := withBlock(blockPhase(t, "wolf_riders"), state.Physical, 3, 0)
		s, _, err := AssignBlock(s, "p1", BlockAssignment{EnemyInstanceID: "enemy_0", Element: state.Physical, Amount: 3})
		require.NoError(t, err)
		s, evs := endPhase(t, s)
		failed := evs.OfType(events.BlockFailed)
		require.Len(t, failed, 1)
		assert.Equal(t, "6", failed[0].Metadata["required"])
		assert.Equal(t, state.PhaseAssignDamage, s.Combat.Phase)
		assert.Equal(t, []string{"enemy_0"}, UnassignedDamage(s))
	})

	t.Run("swift points only double where they are assigned", func(t *testing.T) {
		s := blockPhase(t, "wolf_riders", "prowlers")
		s = withBlock(s, state.Physical, 3, 0)
		s = withBlock(s, state.Ice, 4, 4)
		s, _, err := AssignBlock(s, "p1", BlockAssignment{EnemyInstanceID: "enemy_1", Element: state.Ice, Amount: 4})
		require.NoError(t, err)
		s, _, err = AssignBlock(s, "p1", BlockAssignment{EnemyInstanceID: "enemy_0", Element: state.Physical, Amount: 3})
		require.NoError(t, err)
		assert.Equal(t, 4, s.Combat.PendingSwiftBlock["enemy_1"].Ice)
		assert.NotContains(t, s.Combat.PendingSwiftBlock, "enemy_0")

		s, evs := endPhase(t, s)
		assert.False(t, s.Combat.Enemies[0].IsBlocked, "plain physical block is not doubled against swift")
		assert.True(t, s.Combat.Enemies[1].IsBlocked)
		failed := evs.OfType(events.BlockFailed)
		require.Len(t, failed, 1)
		assert.Equal(t, "enemy_0", failed[0].TargetID)
		assert.Equal(t, 3, failed[0].Amount)
	})

	t.Run("plain points go to other enemies first", func(t *testing.T) {
		s := withBlock(blockPhase(t, "wolf_riders", "prowlers"), state.Physical, 7, 4)
		s, _, err := AssignBlock(s, "p1", BlockAssignment{EnemyInstanceID: "enemy_1", Element: state.Physical, Amount: 4})
		require.NoError(t, err)
		acc := s.MustPlayer("p1").Accumulator
		assert.Equal(t, 1, acc.AssignedSwiftBlock.Physical, "only three plain points exist")
		assert.Equal(t, 3, acc.AvailableSwiftBlock(state.Physical))

		s, _, err = AssignBlock(s, "p1", BlockAssignment{EnemyInstanceID: "enemy_0", Element: state.Physical, Amount: 3})
		require.NoError(t, err)
		assert.Equal(t, 3, s.Combat.PendingSwiftBlock["enemy_0"].Physical)

		// 3 swift points are worth 6 against the riders; 3 plain and 1 swift
		// point stop the prowlers.
		s, _ = endPhase(t, s)
		assert.True(t, s.Combat.Enemies[0].IsBlocked)
		assert.True(t, s.Combat.Enemies[1].IsBlocked)
		assert.Nil(t, s.Combat.PendingSwiftBlock)
	})

	t.Run("swift points spent elsewhere are not doubled again", func(t *testing.T) {
		s := withBlock(blockPhase(t, "wolf_riders", "prowlers"), state.Physical, 6, 4)
		s, _, err := AssignBlock(s, "p1", BlockAssignment{EnemyInstanceID: "enemy_1", Element: state.Physical, Amount: 5})
		require.NoError(t, err)
		s, _, err = AssignBlock(s, "p1", BlockAssignment{EnemyInstanceID: "enemy_0", Element: state.Physical, Amount: 1})
		require.NoError(t, err)

		s, evs := endPhase(t, s)
		assert.False(t, s.Combat.Enemies[0].IsBlocked)
		failed := evs.OfType(events.BlockFailed)
		require.Len(t, failed, 1)
		assert.Equal(t, 2, failed[0].Amount)
	})

	t.Run("unassigning frees swift points first", func(t *testing.T) {
		s := withBlock(blockPhase(t, "wolf_riders", "prowlers"), state.Physical, 5, 4)
		s, _, err := AssignBlock(s, "p1", BlockAssignment{EnemyInstanceID: "enemy_1", Element: state.Physical, Amount: 4})
		require.NoError(t, err)
		require.Equal(t, 3, s.Combat.PendingSwiftBlock["enemy_1"].Physical)

		s, _, err = UnassignBlock(s, "p1", BlockAssignment{EnemyInstanceID: "enemy_1", Element: state.Physical, Amount: 3})
		require.NoError(t, err)
		assert.Nil(t, s.Combat.PendingSwiftBlock)
		assert.Equal(t, 4, s.MustPlayer("p1").Accumulator.AvailableSwiftBlock(state.Physical))
	})

	t.Run("each attack blocked separately", func(t *testing.T) {
		s := withBlock(blockPhase(t, "orc_skirmishers"), state.Physical, 1, 0)
		s, _, err := AssignBlock(s, "p1", BlockAssignment{EnemyInstanceID: "enemy_0", AttackIndex: 1, Element: state.Physical, Amount: 1})
		require.NoError(t, err)
		_, _, err = AssignBlock(s, "p1", BlockAssignment{EnemyInstanceID: "enemy_0", Element: state.Physical, Amount: 1})
		assert.ErrorIs(t, err, ErrInsufficientBlock)
		s, _ = endPhase(t, s)
		assert.Equal(t, []bool{false, true}, s.Combat.Enemies[0].AttacksBlocked)
		assert.False(t, s.Combat.Enemies[0].IsBlocked)
		assert.Equal(t, []string{"enemy_0"}, UnassignedDamage(s))
	})

	t.Run("unassign block", func(t *testing.T) {
		s := withBlock(blockPhase(t, "prowlers"), state.Ice, 4, 0)
		s, _, err := AssignBlock(s, "p1", BlockAssignment{EnemyInstanceID: "enemy_0", Element: state.Ice, Amount: 4})
		require.NoError(t, err)
		s, _, err = UnassignBlock(s, "p1", BlockAssignment{EnemyInstanceID: "enemy_0", Element: state.Ice, Amount: 4})
		require.NoError(t, err)
		assert.Nil(t, s.Combat.PendingBlock)
		assert.Equal(t, 4, s.MustPlayer("p1").Accumulator.AvailableBlock(state.Ice))
	})

	t.Run("wrong phase", func(t *testing.T) {
		s := withBlock(start(t, newState(), StartOptions{}, "prowlers"), state.Physical, 4, 0)
		_, _, err := AssignBlock(s, "p1", BlockAssignment{EnemyInstanceID: "enemy_0", Element: state.Physical, Amount: 4})
		assert.ErrorIs(t, err, ErrWrongPhase)
	})
}

func TestAssignDamage(t *testing.T) {
	damagePhase := func(t *testing.T, enemies ...state.EnemyID) state.GameState {
		s := start(t, newState(), StartOptions{}, enemies...)
		s, _ = endPhase(t, s)
		s, _ = endPhase(t, s)
		require.Equal(t, state.PhaseAssignDamage, s.Combat.Phase)
		return s
	}

	t.Run("end phase waits for every unblocked attack", func(t *testing.T) {
		s := damagePhase(t, "prowlers")
		_, _, err := EndPhase(s, "p1")
		assert.ErrorIs(t, err, ErrDamagePending)
	})

	t.Run("hero takes wounds", func(t *testing.T) {
		s, evs, err := AssignDamage(damagePhase(t, "prowlers"), "p1", DamageAssignment{EnemyInstanceID: "enemy_0"})
		require.NoError(t, err)
		assert.Equal(t, 2, s.MustPlayer("p1").Wounds())
		assert.Equal(t, 2, s.Combat.WoundsTaken)
		assert.True(t, events.Log(evs).Has(events.WoundTaken))

		_, _, err = AssignDamage(s, "p1", DamageAssignment{EnemyInstanceID: "enemy_0"})
		assert.ErrorIs(t, err, ErrDamageAssigned)
	})

	t.Run("poison doubles wounds into the discard", func(t *testing.T) {
		s, _, err := AssignDamage(damagePhase(t, "cursed_hags"), "p1", DamageAssignment{EnemyInstanceID: "enemy_0"})
		require.NoError(t, err)
		p := s.MustPlayer("p1")
		assert.Equal(t, 2, p.Wounds())
		assert.Equal(t, []state.CardID{state.WoundCard, state.WoundCard}, p.Discard)
	})

	t.Run("unit absorbs its armor", func(t *testing.T) {
		s, evs, err := AssignDamage(damagePhase(t, "prowlers"), "p1", DamageAssignment{EnemyInstanceID: "enemy_0", UnitInstanceID: "unit_1"})
		require.NoError(t, err)
		p := s.MustPlayer("p1")
		u, _, _ := p.Unit("unit_1")
		assert.True(t, u.IsWounded)
		assert.Equal(t, 1, p.Wounds(), "4 damage minus armor 3 leaves one wound")
		assert.True(t, events.Log(evs).Has(events.UnitWounded))
	})

	t.Run("resistant unit shrugs it off", func(t *testing.T) {
		s, _, err := AssignDamage(damagePhase(t, "prowlers"), "p1", DamageAssignment{EnemyInstanceID: "enemy_0", UnitInstanceID: "unit_2"})
		require.NoError(t, err)
		p := s.MustPlayer("p1")
		u, _, _ := p.Unit("unit_2")
		assert.False(t, u.IsWounded)
		assert.Zero(t, p.Wounds())
	})

	t.Run("poison destroys a unit", func(t *testing.T) {
		s, evs, err := AssignDamage(damagePhase(t, "cursed_hags"), "p1", DamageAssignment{EnemyInstanceID: "enemy_0", UnitInstanceID: "unit_1"})
		require.NoError(t, err)
		_, _, ok := s.MustPlayer("p1").Unit("unit_1")
		assert.False(t, ok)
		assert.True(t, events.Log(evs).Has(events.UnitDestroyed))
	})

	t.Run("wounded unit cannot take damage", func(t *testing.T) {
		s := damagePhase(t, "prowlers")
		s.Players[0].Units[0].IsWounded = true
		_, _, err := AssignDamage(s, "p1", DamageAssignment{EnemyInstanceID: "enemy_0", UnitInstanceID: "unit_1"})
		assert.ErrorIs(t, err, ErrUnitCannotTakeDamage)
	})

	t.Run("damage reduction is consumed", func(t *testing.T) {
		s := damagePhase(t, "prowlers", "diggers")
		s, _ = modifiers.Add(s, modifiers.NewBuilder(skillSource).UntilConsumed().Build(state.DamageReduction{Physical: 2}))
		s, _, err := AssignDamage(s, "p1", DamageAssignment{EnemyInstanceID: "enemy_0"})
		require.NoError(t, err)
		assert.Equal(t, 1, s.MustPlayer("p1").Wounds())
		assert.Empty(t, modifiers.OfKind(s, state.ModDamageReduction))
		s, _, err = AssignDamage(s, "p1", DamageAssignment{EnemyInstanceID: "enemy_1"})
		require.NoError(t, err)
		assert.Equal(t, 3, s.MustPlayer("p1").Wounds())
	})

	t.Run("knocked out", func(t *testing.T) {
		s := damagePhase(t, "high_dragon")
		s, evs, err := AssignDamage(s, "p1", DamageAssignment{EnemyInstanceID: "enemy_0"})
		require.NoError(t, err)
		p := s.MustPlayer("p1")
		assert.Equal(t, len(p.Hand), p.Wounds())
		assert.Contains(t, p.Discard, state.CardID("march"))
		assert.Equal(t, "true", events.Log(evs).OfType(events.WoundTaken)[0].Metadata["knockedOut"])
	})
}

func TestDefeatPayouts(t *testing.T) {
	s := start(t, newState(), StartOptions{}, "prowlers", "diggers")
	s.Combat.Phase = state.PhaseAttack
	s = withAttack(s, state.Melee, state.Physical, 6)
	s, _ = modifiers.Add(s, modifiers.NewBuilder(skillSource).UntilEndOfCombat().Build(state.FameTracker{FamePerEnemy: 1, MaxEnemies: 1}))
	s, _ = modifiers.Add(s, modifiers.NewBuilder(skillSource).UntilConsumed().Build(state.KeepTrophy{}))

	for _, id := range []string{"enemy_0", "enemy_1"} {
		var err error
		s, _, err = AssignAttack(s, "p1", AttackAssignment{EnemyInstanceID: id, AttackType: state.Melee, Element: state.Physical, Amount: 3})
		require.NoError(t, err)
	}
	s, evs := endPhase(t, s)

	p := s.MustPlayer("p1")
	assert.Equal(t, 2+2+1, p.Fame, "base fame plus one tracked enemy")
	require.Len(t, p.KeptEnemyTokens, 1)
	assert.Equal(t, state.EnemyID("prowlers"), p.KeptEnemyTokens[0].EnemyID)
	assert.True(t, evs.Has(events.TrophyKept))
	assert.Empty(t, s.ActiveModifiers, "combat modifiers expire with combat")
	assert.Equal(t, state.CombatAccumulator{}, p.Accumulator)
}

func TestWeakenedArmor(t *testing.T) {
	s := start(t, newState(), StartOptions{}, "prowlers")
	s.Combat.Phase = state.PhaseAttack
	s, _ = modifiers.Add(s, modifiers.NewBuilder(skillSource).UntilEndOfCombat().OnEnemy("enemy_0").Build(state.EnemyArmor{Amount: 5, Minimum: 1}))
	assert.Equal(t, 1, EnemyArmor(s, s.Combat.Enemies[0]))

	s = withAttack(s, state.Melee, state.Physical, 1)
	s, _, err := AssignAttack(s, "p1", AttackAssignment{EnemyInstanceID: "enemy_0", AttackType: state.Melee, Element: state.Physical, Amount: 1})
	require.NoError(t, err)
	_, evs := endPhase(t, s)
	assert.True(t, evs.Has(events.EnemyDefeated))
}

func TestStart(t *testing.T) {
	s := newState()
	s.TimeOfDay = state.Night
	got := start(t, s, StartOptions{}, "orc_skirmishers")
	assert.True(t, got.Combat.NightRules)
	assert.Equal(t, state.ContextStandard, got.Combat.Context)
	assert.Equal(t, []bool{false, false}, got.Combat.Enemies[0].AttacksBlocked)
	assert.True(t, got.MustPlayer("p1").HasCombattedThisTurn)
	assert.Nil(t, s.Combat, "input untouched")

	_, _, err := Start(got, "p1", []state.EnemyID{"prowlers"}, StartOptions{})
	assert.ErrorIs(t, err, ErrAlreadyInCombat)
	_, _, err = Start(s, "p1", []state.EnemyID{"nobody"}, StartOptions{})
	assert.ErrorIs(t, err, ErrUnknownEnemy)

	_, _, err = EndPhase(s, "p1")
	assert.ErrorIs(t, err, ErrNotInCombat)
}

func mustDef(t *testing.T, e state.CombatEnemy) catalog.EnemyDefinition {
	t.Helper()
	def, ok := catalog.Enemy(e.EnemyID)
	require.True(t, ok)
	return def
}
