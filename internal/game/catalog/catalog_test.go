package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mage-knight-digital/MageKnight-sub005/internal/game/mana"
	"github.com/mage-knight-digital/MageKnight-sub005/internal/game/state"
)

func TestEmbeddedDocumentsLoad(t *testing.T) {
	require.NoError(t, Validate())
	assert.NotEmpty(t, Enemies())
	assert.NotEmpty(t, UnitDeck())
}

func TestEnemyDefinitions(t *testing.T) {
	t.Run("swift brutal wolves", func(t *testing.T) {
		e := MustEnemy("dire_wolves")
		assert.True(t, e.Has(state.EnemySwift))
		assert.True(t, e.Has(state.EnemyBrutal))
		assert.Equal(t, 4, e.Attacks[0].Value)
	})

	t.Run("cold fire resistance needs fire and ice", func(t *testing.T) {
		assert.True(t, MustEnemy("high_dragon").Resists(state.ColdFire))
		assert.False(t, MustEnemy("fire_dragon").Resists(state.ColdFire))
	})

	t.Run("multi attack", func(t *testing.T) {
		assert.Len(t, MustEnemy("orc_skirmishers").Attacks, 2)
	})

	t.Run("token is a frozen copy", func(t *testing.T) {
		e := MustEnemy("prowlers")
		tok := e.Token(3)
		tok.Attacks[0].Value = 99
		assert.Equal(t, 4, MustEnemy("prowlers").Attacks[0].Value)
		assert.Equal(t, 3, tok.KeptAtRound)
	})
}

func TestUnitAbilityEffects(t *testing.T) {
	guardsmen := MustUnit("utem_guardsmen")
	assert.Equal(t,
		state.GainBlock{Amount: 4, Element: state.Physical, CountsTwiceAgainstSwift: true},
		guardsmen.Abilities[1].Effect())

	catapults := MustUnit("catapults")
	assert.Equal(t,
		state.GainAttack{Amount: 5, AttackType: state.Siege, Element: state.Fire},
		catapults.Abilities[1].Effect())
	assert.Equal(t, mana.Red, catapults.Abilities[1].ManaCost)

	assert.Equal(t, state.ReadyUnit{MaxLevel: 2}, MustUnit("herbalist").Abilities[1].Effect())
}

func TestRegisterRejectsBadDocuments(t *testing.T) {
	err := registerEnemies([]EnemyDefinition{{ID: "blob", Armor: 0, Attacks: []state.EnemyAttack{{Value: 1, Element: state.Physical}}}})
	assert.Error(t, err)

	err = registerUnits([]UnitDefinition{{ID: "nobody"}})
	assert.Error(t, err)
}

func TestCardCosts(t *testing.T) {
	assert.Equal(t, []mana.Color{mana.Red, mana.Black}, MustCard("fireball").PoweredCost())
	assert.Equal(t, []mana.Color{mana.Red}, MustCard("fireball").BasicCost())
	assert.Equal(t, []mana.Color{mana.Green}, MustCard("march").PoweredCost())
	assert.Nil(t, MustCard("march").BasicCost())
	assert.Nil(t, MustCard("ruby_ring").PoweredCost())
	assert.False(t, MustCard(state.WoundCard).Playable())
}

func TestStartingDeckIsKnown(t *testing.T) {
	deck := StartingDeck()
	assert.Len(t, deck, 16)
	for _, id := range deck {
		_, ok := Card(id)
		assert.True(t, ok, "unknown card %s", id)
	}
}

func TestHeroSkillsAreKnown(t *testing.T) {
	for _, h := range Heroes() {
		hero, _ := Hero(h)
		for _, s := range hero.Skills {
			_, ok := Skill(s)
			assert.True(t, ok, "hero %s has unknown skill %s", h, s)
		}
	}
}

func TestTacticsFor(t *testing.T) {
	day := TacticsFor(false)
	night := TacticsFor(true)
	assert.Len(t, day, 6)
	assert.Len(t, night, 6)
	assert.Equal(t, state.TacticID("early_bird"), day[0])
	tac, ok := Tactic("long_night")
	require.True(t, ok)
	assert.Equal(t, 2, tac.Number)
}
