package catalog

import (
	"fmt"

	"github.com/mage-knight-digital/MageKnight-sub005/internal/game/state"
)

// EnemyColor is the token back colour of an enemy.
type EnemyColor string

const (
	EnemyGreen  EnemyColor = "green"
	EnemyGrey   EnemyColor = "grey"
	EnemyBrown  EnemyColor = "brown"
	EnemyViolet EnemyColor = "violet"
	EnemyRed    EnemyColor = "red"
	EnemyWhite  EnemyColor = "white"
)

// EnemyDefinition is the printed content of an enemy token.
type EnemyDefinition struct {
	ID          state.EnemyID        `yaml:"id"`
	Name        string               `yaml:"name"`
	Color       EnemyColor           `yaml:"color"`
	Armor       int                  `yaml:"armor"`
	Fame        int                  `yaml:"fame"`
	Attacks     []state.EnemyAttack  `yaml:"attacks"`
	Abilities   []state.EnemyAbility `yaml:"abilities,omitempty"`
	Resistances []state.Element      `yaml:"resistances,omitempty"`
}

// Has reports whether the enemy has ability a.
func (e EnemyDefinition) Has(a state.EnemyAbility) bool {
	for _, x := range e.Abilities {
		if x == a {
			return true
		}
	}
	return false
}

// Resists reports whether the enemy resists element el. Cold fire needs both
// fire and ice resistance.
func (e EnemyDefinition) Resists(el state.Element) bool {
	return resists(e.Resistances, el)
}

// Token freezes the definition into a kept token.
func (e EnemyDefinition) Token(round int) state.KeptEnemyToken {
	return state.KeptEnemyToken{
		EnemyID:     e.ID,
		Name:        e.Name,
		Armor:       e.Armor,
		Fame:        e.Fame,
		Attacks:     append([]state.EnemyAttack(nil), e.Attacks...),
		Abilities:   append([]state.EnemyAbility(nil), e.Abilities...),
		Resistances: append([]state.Element(nil), e.Resistances...),
		KeptAtRound: round,
	}
}

var enemies = map[state.EnemyID]EnemyDefinition{}

func registerEnemies(docs []EnemyDefinition) error {
	for i, e := range docs {
		if e.ID == "" {
			return fmt.Errorf("enemy %d: missing id", i)
		}
		if _, dup := enemies[e.ID]; dup {
			return fmt.Errorf("enemy %s: duplicate id", e.ID)
		}
		if e.Armor <= 0 {
			return fmt.Errorf("enemy %s: armor must be positive", e.ID)
		}
		if len(e.Attacks) == 0 {
			return fmt.Errorf("enemy %s: no attacks", e.ID)
		}
		for _, a := range e.Attacks {
			if !a.Element.Valid() {
				return fmt.Errorf("enemy %s: unknown element %q", e.ID, a.Element)
			}
		}
		enemies[e.ID] = e
	}
	return nil
}

// Enemy returns the definition of an enemy.
func Enemy(id state.EnemyID) (EnemyDefinition, bool) {
	ensureLoaded()
	e, ok := enemies[id]
	return e, ok
}

// MustEnemy returns the definition of an enemy or panics.
func MustEnemy(id state.EnemyID) EnemyDefinition {
	e, ok := Enemy(id)
	if !ok {
		panic("catalog: unknown enemy " + string(id))
	}
	return e
}

// Enemies returns every enemy id in stable order.
func Enemies() []state.EnemyID {
	ensureLoaded()
	out := make([]state.EnemyID, 0, len(enemies))
	for id := range enemies {
		out = append(out, id)
	}
	sortIDs(out)
	return out
}
