package actions

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mage-knight-digital/MageKnight-sub005/internal/game/mana"
	"github.com/mage-knight-digital/MageKnight-sub005/internal/game/state"
)

var samples = []Action{
	Move{Target: state.HexCoord{Q: 1, R: -1}},
	Challenge{Target: state.HexCoord{Q: 0, R: 1}},
	PlayCard{CardID: "rage", Powered: true, Mana: []mana.Payment{{Kind: mana.PayFromDie, Color: mana.Red, DieID: "die_0"}}},
	PlayCardSideways{CardID: "march", As: SidewaysInfluence},
	ConvertCrystal{Color: mana.Blue},
	RecruitUnit{UnitID: "peasants"},
	ActivateUnit{UnitInstanceID: "unit_1", AbilityIndex: 1, Mana: &mana.Payment{Kind: mana.PayFromToken, Color: mana.Green}},
	HealUnit{UnitInstanceID: "unit_1"},
	UseSkill{SkillID: "leadership"},
	SelectTactic{TacticID: "early_bird"},
	AssignAttack{EnemyInstanceID: "enemy_0", AttackType: state.Melee, Element: state.Physical, Amount: 3},
	UnassignAttack{EnemyInstanceID: "enemy_0", AttackType: state.Ranged, Element: state.Fire, Amount: 1},
	AssignBlock{EnemyInstanceID: "enemy_1", AttackIndex: 1, Element: state.Ice, Amount: 2},
	UnassignBlock{EnemyInstanceID: "enemy_1", Element: state.Ice, Amount: 2},
	AssignDamage{EnemyInstanceID: "enemy_0", UnitInstanceID: "unit_2"},
	EndCombatPhase{},
	ResolveChoice{Index: 2},
	ResolveDiscard{CardIDs: []state.CardID{"march", "wound"}},
	ResolveDeepMine{Color: mana.White},
	Undo{},
	EndTurn{},
	AnnounceEndOfRound{},
}

func TestSamplesCoverEveryType(t *testing.T) {
	seen := map[Type]bool{}
	for _, a := range samples {
		seen[a.Type()] = true
	}
	for _, typ := range All() {
		assert.True(t, seen[typ], "no sample for %s", typ)
		assert.Contains(t, decoders, typ)
	}
	assert.Len(t, decoders, len(All()))
}

func TestEncodeDecode(t *testing.T) {
	for _, a := range samples {
		t.Run(string(a.Type()), func(t *testing.T) {
			data, err := Encode(a)
			require.NoError(t, err)
			got, err := Decode(data)
			require.NoError(t, err)
			assert.Equal(t, a, got)
		})
	}
}

func TestDecode(t *testing.T) {
	t.Run("wire form", func(t *testing.T) {
		a, err := Decode([]byte(`{"type":"ASSIGN_ATTACK","enemyInstanceId":"enemy_0","attackType":"melee","element":"physical","amount":3}`))
		require.NoError(t, err)
		assert.Equal(t, AssignAttack{EnemyInstanceID: "enemy_0", AttackType: state.Melee, Element: state.Physical, Amount: 3}, a)
	})

	t.Run("empty body", func(t *testing.T) {
		data, err := Encode(EndTurn{})
		require.NoError(t, err)
		assert.JSONEq(t, `{"type":"END_TURN"}`, string(data))
	})

	t.Run("unknown type", func(t *testing.T) {
		_, err := Decode([]byte(`{"type":"CAST_FIREBALL"}`))
		assert.ErrorIs(t, err, ErrUnknownAction)
		_, err = Decode([]byte(`{}`))
		assert.ErrorIs(t, err, ErrUnknownAction)
	})

	t.Run("malformed", func(t *testing.T) {
		_, err := Decode([]byte(`{"type":`))
		assert.Error(t, err)
		_, err = Decode([]byte(`{"type":"RESOLVE_CHOICE","index":"two"}`))
		assert.Error(t, err)
		assert.NotErrorIs(t, err, ErrUnknownAction)
	})
}
