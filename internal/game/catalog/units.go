package catalog

import (
	"fmt"

	"github.com/mage-knight-digital/MageKnight-sub005/internal/game/mana"
	"github.com/mage-knight-digital/MageKnight-sub005/internal/game/state"
)

// UnitAbility is one activatable ability printed on a unit.
type UnitAbility struct {
	Kind                    state.AbilityKind `yaml:"kind"`
	Value                   int               `yaml:"value"`
	Element                 state.Element     `yaml:"element,omitempty"`
	ManaCost                mana.Color        `yaml:"mana,omitempty"`
	CountsTwiceAgainstSwift bool              `yaml:"countsTwiceAgainstSwift,omitempty"`
}

// Effect converts the ability into the effect its activation resolves.
func (a UnitAbility) Effect() state.Effect {
	element := a.Element
	if element == "" {
		element = state.Physical
	}
	switch a.Kind {
	case state.AbilityAttack:
		return state.GainAttack{Amount: a.Value, AttackType: state.Melee, Element: element}
	case state.AbilityRangedAttack:
		return state.GainAttack{Amount: a.Value, AttackType: state.Ranged, Element: element}
	case state.AbilitySiegeAttack:
		return state.GainAttack{Amount: a.Value, AttackType: state.Siege, Element: element}
	case state.AbilityBlock:
		return state.GainBlock{Amount: a.Value, Element: element, CountsTwiceAgainstSwift: a.CountsTwiceAgainstSwift}
	case state.AbilityMove:
		return state.GainMove{Amount: a.Value}
	case state.AbilityInfluence:
		return state.GainInfluence{Amount: a.Value}
	case state.AbilityHeal:
		return state.GainHealing{Amount: a.Value}
	case state.AbilityReadyUnit:
		return state.ReadyUnit{MaxLevel: a.Value}
	}
	panic(fmt.Sprintf("catalog: unhandled unit ability %q", a.Kind))
}

// IsCombat reports whether the ability can only be used during combat.
func (a UnitAbility) IsCombat() bool {
	switch a.Kind {
	case state.AbilityAttack, state.AbilityRangedAttack, state.AbilitySiegeAttack, state.AbilityBlock:
		return true
	}
	return false
}

// UnitDefinition is a unit card.
type UnitDefinition struct {
	ID          state.UnitID    `yaml:"id"`
	Name        string          `yaml:"name"`
	Level       int             `yaml:"level"`
	Cost        int             `yaml:"cost"`
	Armor       int             `yaml:"armor"`
	Copies      int             `yaml:"copies"`
	Resistances []state.Element `yaml:"resistances,omitempty"`
	Abilities   []UnitAbility   `yaml:"abilities"`
}

// Resists reports whether the unit resists element e. Cold fire needs both
// fire and ice resistance.
func (u UnitDefinition) Resists(e state.Element) bool {
	return resists(u.Resistances, e)
}

func resists(list []state.Element, e state.Element) bool {
	has := func(x state.Element) bool {
		for _, r := range list {
			if r == x {
				return true
			}
		}
		return false
	}
	if e == state.ColdFire {
		return has(state.Fire) && has(state.Ice)
	}
	return has(e)
}

var units = map[state.UnitID]UnitDefinition{}
var unitOrder []state.UnitID

func registerUnits(docs []UnitDefinition) error {
	for i, u := range docs {
		if u.ID == "" {
			return fmt.Errorf("unit %d: missing id", i)
		}
		if _, dup := units[u.ID]; dup {
			return fmt.Errorf("unit %s: duplicate id", u.ID)
		}
		if len(u.Abilities) == 0 {
			return fmt.Errorf("unit %s: no abilities", u.ID)
		}
		for _, a := range u.Abilities {
			if a.Element != "" && !a.Element.Valid() {
				return fmt.Errorf("unit %s: unknown element %q", u.ID, a.Element)
			}
			if a.ManaCost != "" && !a.ManaCost.Valid() {
				return fmt.Errorf("unit %s: unknown mana %q", u.ID, a.ManaCost)
			}
		}
		if u.Copies == 0 {
			u.Copies = 1
		}
		units[u.ID] = u
		unitOrder = append(unitOrder, u.ID)
	}
	return nil
}

// Unit returns the definition of a unit.
func Unit(id state.UnitID) (UnitDefinition, bool) {
	ensureLoaded()
	u, ok := units[id]
	return u, ok
}

// MustUnit returns the definition of a unit or panics.
func MustUnit(id state.UnitID) UnitDefinition {
	u, ok := Unit(id)
	if !ok {
		panic("catalog: unknown unit " + string(id))
	}
	return u
}

// UnitDeck returns every unit copy in catalog order, ready to be shuffled.
func UnitDeck() []state.UnitID {
	ensureLoaded()
	var out []state.UnitID
	for _, id := range unitOrder {
		for i := 0; i < units[id].Copies; i++ {
			out = append(out, id)
		}
	}
	return out
}
