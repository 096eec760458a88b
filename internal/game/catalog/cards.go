package catalog

import (
	"github.com/mage-knight-digital/MageKnight-sub005/internal/game/mana"
	"github.com/mage-knight-digital/MageKnight-sub005/internal/game/state"
)

// CardKind is the deck a card belongs to.
type CardKind string

const (
	BasicAction    CardKind = "basic_action"
	AdvancedAction CardKind = "advanced_action"
	Spell          CardKind = "spell"
	Artifact       CardKind = "artifact"
	Wound          CardKind = "wound"
)

// CardDefinition is the printed content of a card.
type CardDefinition struct {
	ID      state.CardID
	Name    string
	Kind    CardKind
	Color   mana.Color
	Basic   state.Effect
	Powered state.Effect
}

// BasicCost returns the mana needed to play the basic effect.
func (c CardDefinition) BasicCost() []mana.Color {
	if c.Kind == Spell {
		return []mana.Color{c.Color}
	}
	return nil
}

// PoweredCost returns the mana needed to play the powered effect. Artifacts
// are powered by destroying them instead.
func (c CardDefinition) PoweredCost() []mana.Color {
	switch c.Kind {
	case Spell:
		return []mana.Color{c.Color, mana.Black}
	case Artifact:
		return nil
	}
	return []mana.Color{c.Color}
}

// Playable reports whether the card can be played at all.
func (c CardDefinition) Playable() bool {
	return c.Kind != Wound
}

func attack(n int) state.Effect {
	return state.GainAttack{Amount: n, AttackType: state.Melee, Element: state.Physical}
}

func block(n int) state.Effect {
	return state.GainBlock{Amount: n, Element: state.Physical}
}

func crystalChoice() state.Effect {
	opts := make([]state.Effect, 0, len(mana.BasicColors))
	for _, c := range mana.BasicColors {
		opts = append(opts, state.GainCrystal{Color: c})
	}
	return state.Choice{Options: opts}
}

func manaChoice() state.Effect {
	opts := make([]state.Effect, 0, len(mana.BasicColors))
	for _, c := range mana.BasicColors {
		opts = append(opts, state.GainMana{Color: c})
	}
	return state.Choice{Options: opts}
}

var cards = map[state.CardID]CardDefinition{}

func addCard(c CardDefinition) {
	cards[c.ID] = c
}

func init() {
	addCard(CardDefinition{ID: state.WoundCard, Name: "Wound", Kind: Wound})

	addCard(CardDefinition{
		ID: "march", Name: "March", Kind: BasicAction, Color: mana.Green,
		Basic:   state.GainMove{Amount: 2},
		Powered: state.GainMove{Amount: 4},
	})
	addCard(CardDefinition{
		ID: "stamina", Name: "Stamina", Kind: BasicAction, Color: mana.Blue,
		Basic:   state.GainMove{Amount: 2},
		Powered: state.GainMove{Amount: 4},
	})
	addCard(CardDefinition{
		ID: "rage", Name: "Rage", Kind: BasicAction, Color: mana.Red,
		Basic:   state.Choice{Options: []state.Effect{attack(2), block(2)}},
		Powered: attack(4),
	})
	addCard(CardDefinition{
		ID: "determination", Name: "Determination", Kind: BasicAction, Color: mana.Blue,
		Basic:   block(2),
		Powered: block(5),
	})
	addCard(CardDefinition{
		ID: "swiftness", Name: "Swiftness", Kind: BasicAction, Color: mana.White,
		Basic:   state.GainMove{Amount: 2},
		Powered: state.GainAttack{Amount: 3, AttackType: state.Ranged, Element: state.Physical},
	})
	addCard(CardDefinition{
		ID: "tranquility", Name: "Tranquility", Kind: BasicAction, Color: mana.Green,
		Basic:   state.Choice{Options: []state.Effect{state.GainHealing{Amount: 1}, state.DrawCards{Count: 1}}},
		Powered: state.Choice{Options: []state.Effect{state.GainHealing{Amount: 2}, state.DrawCards{Count: 2}}},
	})
	addCard(CardDefinition{
		ID: "promise", Name: "Promise", Kind: BasicAction, Color: mana.White,
		Basic:   state.GainInfluence{Amount: 2},
		Powered: state.GainInfluence{Amount: 4},
	})
	addCard(CardDefinition{
		ID: "threaten", Name: "Threaten", Kind: BasicAction, Color: mana.Red,
		Basic: state.GainInfluence{Amount: 2},
		Powered: state.Compound{Effects: []state.Effect{
			state.GainInfluence{Amount: 5},
			state.ChangeReputation{Amount: -1},
		}},
	})
	addCard(CardDefinition{
		ID: "crystallize", Name: "Crystallize", Kind: BasicAction, Color: mana.Blue,
		Basic:   state.CrystallizeToken{},
		Powered: crystalChoice(),
	})
	addCard(CardDefinition{
		ID: "mana_draw", Name: "Mana Draw", Kind: BasicAction, Color: mana.White,
		Basic: state.ApplyModifier{
			Modifier:    state.RuleActive{Rule: state.RuleExtraSourceDie},
			Duration:    state.DurationTurn,
			Scope:       state.ScopeSelf,
			Description: "Use one additional die from the Source this turn",
		},
		Powered: state.Compound{Effects: []state.Effect{manaChoice(), manaChoice()}},
	})
	addCard(CardDefinition{
		ID: "improvisation", Name: "Improvisation", Kind: BasicAction, Color: mana.Red,
		Basic: state.DiscardCost{Count: 1, Then: state.Choice{Options: []state.Effect{
			state.GainMove{Amount: 3}, state.GainInfluence{Amount: 3}, attack(3), block(3),
		}}},
		Powered: state.DiscardCost{Count: 1, Then: state.Choice{Options: []state.Effect{
			state.GainMove{Amount: 5}, state.GainInfluence{Amount: 5}, attack(5), block(5),
		}}},
	})

	addCard(CardDefinition{
		ID: "ice_bolt", Name: "Ice Bolt", Kind: AdvancedAction, Color: mana.Blue,
		Basic:   state.GainAttack{Amount: 3, AttackType: state.Ranged, Element: state.Ice},
		Powered: state.GainAttack{Amount: 3, AttackType: state.Siege, Element: state.Ice},
	})
	addCard(CardDefinition{
		ID: "fire_bolt", Name: "Fire Bolt", Kind: AdvancedAction, Color: mana.Red,
		Basic:   state.GainAttack{Amount: 3, AttackType: state.Ranged, Element: state.Fire},
		Powered: state.GainAttack{Amount: 3, AttackType: state.Siege, Element: state.Fire},
	})
	addCard(CardDefinition{
		ID: "refreshing_walk", Name: "Refreshing Walk", Kind: AdvancedAction, Color: mana.Green,
		Basic:   state.Compound{Effects: []state.Effect{state.GainMove{Amount: 2}, state.GainHealing{Amount: 1}}},
		Powered: state.Compound{Effects: []state.Effect{state.GainMove{Amount: 4}, state.GainHealing{Amount: 2}}},
	})
	addCard(CardDefinition{
		ID: "path_finding", Name: "Path Finding", Kind: AdvancedAction, Color: mana.Green,
		Basic: state.GainMove{Amount: 2},
		Powered: state.ApplyModifier{
			Modifier:    state.TerrainCost{Amount: 5, Minimum: 2},
			Duration:    state.DurationTurn,
			Scope:       state.ScopeSelf,
			Description: "Every terrain costs 2 to enter this turn",
		},
	})
	addCard(CardDefinition{
		ID: "chivalry", Name: "Chivalry", Kind: AdvancedAction, Color: mana.White,
		Basic: state.Choice{Options: []state.Effect{state.GainInfluence{Amount: 3}, attack(2)}},
		Powered: state.Choice{Options: []state.Effect{
			state.GainInfluence{Amount: 6},
			state.AttackWithFameBonus{Amount: 4, AttackType: state.Melee, Element: state.Physical, FamePerEnemy: 1, MaxEnemies: 2},
		}},
	})
	addCard(CardDefinition{
		ID: "crystal_mastery", Name: "Crystal Mastery", Kind: AdvancedAction, Color: mana.Blue,
		Basic:   state.DiscardForCrystal{},
		Powered: state.Compound{Effects: []state.Effect{state.DiscardForCrystal{}, state.GainMove{Amount: 2}}},
	})
	addCard(CardDefinition{
		ID: "training", Name: "Training", Kind: AdvancedAction, Color: mana.Green,
		Basic: state.TakeFromOffer{Offer: state.OfferAdvancedActions},
		Powered: state.Compound{Effects: []state.Effect{
			state.TakeFromOffer{Offer: state.OfferAdvancedActions},
			state.GainFame{Amount: 1},
		}},
	})
	addCard(CardDefinition{
		ID: "night_raid", Name: "Night Raid", Kind: AdvancedAction, Color: mana.Red,
		Basic: state.Conditional{Condition: "ctx.isNight", Then: attack(4), Else: attack(2)},
		Powered: state.Conditional{
			Condition: `ctx.inCombat && ctx.combatPhase == "ranged_siege"`,
			Then:      state.GainAttack{Amount: 4, AttackType: state.Ranged, Element: state.Physical},
			Else:      attack(4),
		},
	})
	addCard(CardDefinition{
		ID: "rally", Name: "Rally", Kind: AdvancedAction, Color: mana.White,
		Basic: state.ReadyUnit{MaxLevel: 2},
		Powered: state.ApplyModifier{
			Modifier:    state.RecruitDiscount{Amount: 3},
			Duration:    state.DurationTurn,
			Scope:       state.ScopeSelf,
			Description: "The next unit you recruit this turn costs 3 less",
		},
	})

	addCard(CardDefinition{
		ID: "fireball", Name: "Fireball", Kind: Spell, Color: mana.Red,
		Basic:   state.GainAttack{Amount: 5, AttackType: state.Ranged, Element: state.Fire},
		Powered: state.GainAttack{Amount: 8, AttackType: state.Siege, Element: state.Fire},
	})
	addCard(CardDefinition{
		ID: "snowstorm", Name: "Snowstorm", Kind: Spell, Color: mana.Blue,
		Basic:   state.GainAttack{Amount: 5, AttackType: state.Ranged, Element: state.Ice},
		Powered: state.GainAttack{Amount: 8, AttackType: state.Siege, Element: state.Ice},
	})
	addCard(CardDefinition{
		ID: "tremor", Name: "Tremor", Kind: Spell, Color: mana.Green,
		Basic:   state.WeakenEnemy{Amount: 3},
		Powered: state.WeakenEnemy{Amount: 5},
	})
	addCard(CardDefinition{
		ID: "flame_wall", Name: "Flame Wall", Kind: Spell, Color: mana.Red,
		Basic:   state.GainBlock{Amount: 5, Element: state.Fire},
		Powered: state.GainBlock{Amount: 7, Element: state.Fire},
	})
	addCard(CardDefinition{
		ID: "demolish", Name: "Demolish", Kind: Spell, Color: mana.Red,
		Basic: state.ApplyModifier{
			Modifier:    state.RuleActive{Rule: state.RuleIgnoreFortification},
			Duration:    state.DurationCombat,
			Scope:       state.ScopeSelf,
			Description: "Ignore site fortifications this combat",
		},
		Powered: state.Compound{Effects: []state.Effect{
			state.ApplyModifier{
				Modifier:    state.RuleActive{Rule: state.RuleIgnoreFortification},
				Duration:    state.DurationCombat,
				Scope:       state.ScopeSelf,
				Description: "Ignore site fortifications this combat",
			},
			state.WeakenEnemy{Amount: 1},
		}},
	})

	addCard(CardDefinition{
		ID: "ruby_ring", Name: "Ruby Ring", Kind: Artifact, Color: mana.Red,
		Basic: state.Compound{Effects: []state.Effect{state.GainMana{Color: mana.Red}, state.GainFame{Amount: 1}}},
		Powered: state.ApplyModifier{
			Modifier:    state.EndlessMana{Colors: []mana.Color{mana.Red, mana.Black}},
			Duration:    state.DurationTurn,
			Scope:       state.ScopeSelf,
			Description: "Endless red and black mana this turn",
		},
	})
	addCard(CardDefinition{
		ID: "sapphire_ring", Name: "Sapphire Ring", Kind: Artifact, Color: mana.Blue,
		Basic: state.Compound{Effects: []state.Effect{state.GainMana{Color: mana.Blue}, state.GainFame{Amount: 1}}},
		Powered: state.ApplyModifier{
			Modifier:    state.EndlessMana{Colors: []mana.Color{mana.Blue, mana.Black}},
			Duration:    state.DurationTurn,
			Scope:       state.ScopeSelf,
			Description: "Endless blue and black mana this turn",
		},
	})
}

// Card returns the definition of a card.
func Card(id state.CardID) (CardDefinition, bool) {
	c, ok := cards[id]
	return c, ok
}

// MustCard returns the definition of a card or panics. State never holds
// unknown card ids.
func MustCard(id state.CardID) CardDefinition {
	c, ok := cards[id]
	if !ok {
		panic("catalog: unknown card " + string(id))
	}
	return c
}

// Cards returns every card id of the given kind.
func Cards(kind CardKind) []state.CardID {
	var out []state.CardID
	for id, c := range cards {
		if c.Kind == kind {
			out = append(out, id)
		}
	}
	sortIDs(out)
	return out
}

// StartingDeck is the deck every hero begins with.
func StartingDeck() []state.CardID {
	return []state.CardID{
		"march", "march", "stamina", "stamina", "rage", "rage",
		"determination", "determination", "swiftness", "swiftness",
		"tranquility", "promise", "threaten", "crystallize", "mana_draw", "improvisation",
	}
}
