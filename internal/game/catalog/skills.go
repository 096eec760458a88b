package catalog

import (
	"github.com/mage-knight-digital/MageKnight-sub005/internal/game/mana"
	"github.com/mage-knight-digital/MageKnight-sub005/internal/game/state"
)

// Cooldown is when a used skill becomes available again.
type Cooldown string

const (
	CooldownTurn          Cooldown = "turn"
	CooldownRound         Cooldown = "round"
	CooldownCombat        Cooldown = "combat"
	CooldownUntilNextTurn Cooldown = "until_next_turn"
)

// SkillDefinition is a hero skill.
type SkillDefinition struct {
	ID         state.SkillID
	Name       string
	Cooldown   Cooldown
	CombatOnly bool
	Effect     state.Effect
}

func leadershipBonus(bonus int, ability state.AbilityKind, text string) state.Effect {
	return state.ApplyModifier{
		Modifier:    state.UnitAbilityBonus{Bonus: bonus, Ability: ability},
		Duration:    state.DurationTurn,
		Scope:       state.ScopeAllUnits,
		Description: text,
	}
}

var skills = map[state.SkillID]SkillDefinition{
	"leadership": {
		ID: "leadership", Name: "Leadership", Cooldown: CooldownTurn,
		Effect: state.Choice{Options: []state.Effect{
			leadershipBonus(3, state.AbilityBlock, "+3 to the next unit block"),
			leadershipBonus(2, state.AbilityAttack, "+2 to the next unit attack"),
			leadershipBonus(1, state.AbilityRangedAttack, "+1 to the next unit ranged attack"),
		}},
	},
	"battle_hardened": {
		ID: "battle_hardened", Name: "Battle Hardened", Cooldown: CooldownUntilNextTurn,
		Effect: state.ApplyModifier{
			Modifier:    state.DamageReduction{Physical: 2, NonPhysical: 1},
			Duration:    state.DurationTurn,
			Scope:       state.ScopeSelf,
			Description: "Reduce the next enemy attack by 2, or by 1 if not physical",
		},
	},
	"trophy_hunter": {
		ID: "trophy_hunter", Name: "Trophy Hunter", Cooldown: CooldownRound,
		Effect: state.ApplyModifier{
			Modifier:    state.KeepTrophy{},
			Duration:    state.DurationRound,
			Scope:       state.ScopeSelf,
			Description: "Keep the next enemy you defeat as a trophy",
		},
	},
	"white_crystal_craft": {
		ID: "white_crystal_craft", Name: "White Crystal Craft", Cooldown: CooldownRound,
		Effect: state.Compound{Effects: []state.Effect{
			state.GainCrystal{Color: mana.Blue},
			state.GainMana{Color: mana.White},
		}},
	},
	"cold_swordsmanship": {
		ID: "cold_swordsmanship", Name: "Cold Swordsmanship", Cooldown: CooldownTurn, CombatOnly: true,
		Effect: state.Choice{Options: []state.Effect{
			state.GainAttack{Amount: 2, AttackType: state.Melee, Element: state.Physical},
			state.GainAttack{Amount: 2, AttackType: state.Melee, Element: state.Ice},
		}},
	},
	"shield_mastery": {
		ID: "shield_mastery", Name: "Shield Mastery", Cooldown: CooldownCombat, CombatOnly: true,
		Effect: state.GainBlock{Amount: 3, Element: state.Physical},
	},
}

// Skill returns the definition of a skill.
func Skill(id state.SkillID) (SkillDefinition, bool) {
	s, ok := skills[id]
	return s, ok
}

// MustSkill returns the definition of a skill or panics.
func MustSkill(id state.SkillID) SkillDefinition {
	s, ok := skills[id]
	if !ok {
		panic("catalog: unknown skill " + string(id))
	}
	return s
}

// HeroDefinition is a playable hero.
type HeroDefinition struct {
	ID     state.HeroID
	Name   string
	Skills []state.SkillID
}

var heroes = map[state.HeroID]HeroDefinition{
	"norowas": {ID: "norowas", Name: "Norowas", Skills: []state.SkillID{"leadership", "trophy_hunter"}},
	"tovak":   {ID: "tovak", Name: "Tovak", Skills: []state.SkillID{"battle_hardened", "cold_swordsmanship"}},
	"goldyx":  {ID: "goldyx", Name: "Goldyx", Skills: []state.SkillID{"white_crystal_craft", "shield_mastery"}},
}

// Hero returns the definition of a hero.
func Hero(id state.HeroID) (HeroDefinition, bool) {
	h, ok := heroes[id]
	return h, ok
}

// Heroes returns every hero id in stable order.
func Heroes() []state.HeroID {
	out := make([]state.HeroID, 0, len(heroes))
	for id := range heroes {
		out = append(out, id)
	}
	sortIDs(out)
	return out
}

// TacticDefinition is a tactic card. Lower numbers act first.
type TacticDefinition struct {
	ID     state.TacticID
	Name   string
	Number int
	Night  bool
}

var tactics = []TacticDefinition{
	{ID: "early_bird", Name: "Early Bird", Number: 1},
	{ID: "rethink", Name: "Rethink", Number: 2},
	{ID: "mana_steal", Name: "Mana Steal", Number: 3},
	{ID: "planning", Name: "Planning", Number: 4},
	{ID: "great_start", Name: "Great Start", Number: 5},
	{ID: "the_right_moment", Name: "The Right Moment", Number: 6},
	{ID: "from_the_dusk", Name: "From The Dusk", Number: 1, Night: true},
	{ID: "long_night", Name: "Long Night", Number: 2, Night: true},
	{ID: "mana_search", Name: "Mana Search", Number: 3, Night: true},
	{ID: "midnight_meditation", Name: "Midnight Meditation", Number: 4, Night: true},
	{ID: "preparation", Name: "Preparation", Number: 5, Night: true},
	{ID: "sparing_power", Name: "Sparing Power", Number: 6, Night: true},
}

// Tactic returns the definition of a tactic.
func Tactic(id state.TacticID) (TacticDefinition, bool) {
	for _, t := range tactics {
		if t.ID == id {
			return t, true
		}
	}
	return TacticDefinition{}, false
}

// TacticsFor returns the tactics available at the given time of day, in
// number order.
func TacticsFor(night bool) []state.TacticID {
	var out []state.TacticID
	for _, t := range tactics {
		if t.Night == night {
			out = append(out, t.ID)
		}
	}
	return out
}
