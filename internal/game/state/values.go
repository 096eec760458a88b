package state

// CardID identifies a card definition. Wounds are the card "wound".
type CardID string

// UnitID identifies a unit definition.
type UnitID string

// EnemyID identifies an enemy token definition.
type EnemyID string

// SkillID identifies a hero skill.
type SkillID string

// TacticID identifies a tactic card.
type TacticID string

// HeroID identifies a hero.
type HeroID string

// WoundCard is the card id used for wounds in hand, deck and discard.
const WoundCard CardID = "wound"

// Element is the elemental type of an attack or block.
type Element string

const (
	Physical Element = "physical"
	Fire     Element = "fire"
	Ice      Element = "ice"
	ColdFire Element = "coldFire"
)

// AllElements lists the elements in canonical order.
var AllElements = []Element{Physical, Fire, Ice, ColdFire}

// Valid reports whether e is a known element.
func (e Element) Valid() bool {
	switch e {
	case Physical, Fire, Ice, ColdFire:
		return true
	}
	return false
}

// AttackType is how an attack is delivered.
type AttackType string

const (
	Melee  AttackType = "melee"
	Ranged AttackType = "ranged"
	Siege  AttackType = "siege"
)

// AllAttackTypes lists attack types in canonical order.
var AllAttackTypes = []AttackType{Melee, Ranged, Siege}

// Valid reports whether t is a known attack type.
func (t AttackType) Valid() bool {
	switch t {
	case Melee, Ranged, Siege:
		return true
	}
	return false
}

// ElementalValues holds one amount per element.
type ElementalValues struct {
	Physical int `json:"physical,omitempty"`
	Fire     int `json:"fire,omitempty"`
	Ice      int `json:"ice,omitempty"`
	ColdFire int `json:"coldFire,omitempty"`
}

// Get returns the amount for element e.
func (v ElementalValues) Get(e Element) int {
	switch e {
	case Physical:
		return v.Physical
	case Fire:
		return v.Fire
	case Ice:
		return v.Ice
	case ColdFire:
		return v.ColdFire
	}
	return 0
}

// Add returns v with delta added to element e.
func (v ElementalValues) Add(e Element, delta int) ElementalValues {
	switch e {
	case Physical:
		v.Physical += delta
	case Fire:
		v.Fire += delta
	case Ice:
		v.Ice += delta
	case ColdFire:
		v.ColdFire += delta
	}
	return v
}

// Plus returns the element-wise sum of v and o.
func (v ElementalValues) Plus(o ElementalValues) ElementalValues {
	return ElementalValues{
		Physical: v.Physical + o.Physical,
		Fire:     v.Fire + o.Fire,
		Ice:      v.Ice + o.Ice,
		ColdFire: v.ColdFire + o.ColdFire,
	}
}

// Minus returns the element-wise difference v - o.
func (v ElementalValues) Minus(o ElementalValues) ElementalValues {
	return ElementalValues{
		Physical: v.Physical - o.Physical,
		Fire:     v.Fire - o.Fire,
		Ice:      v.Ice - o.Ice,
		ColdFire: v.ColdFire - o.ColdFire,
	}
}

// Total returns the sum over all elements.
func (v ElementalValues) Total() int {
	return v.Physical + v.Fire + v.Ice + v.ColdFire
}

// IsZero reports whether every element is zero.
func (v ElementalValues) IsZero() bool {
	return v == ElementalValues{}
}

// AttackPool holds elemental values per attack type.
type AttackPool struct {
	Melee  ElementalValues `json:"melee,omitzero"`
	Ranged ElementalValues `json:"ranged,omitzero"`
	Siege  ElementalValues `json:"siege,omitzero"`
}

// Get returns the elemental values for attack type t.
func (p AttackPool) Get(t AttackType) ElementalValues {
	switch t {
	case Melee:
		return p.Melee
	case Ranged:
		return p.Ranged
	case Siege:
		return p.Siege
	}
	return ElementalValues{}
}

// Add returns p with delta added to (t, e).
func (p AttackPool) Add(t AttackType, e Element, delta int) AttackPool {
	switch t {
	case Melee:
		p.Melee = p.Melee.Add(e, delta)
	case Ranged:
		p.Ranged = p.Ranged.Add(e, delta)
	case Siege:
		p.Siege = p.Siege.Add(e, delta)
	}
	return p
}

// Plus returns the type-wise sum of p and o.
func (p AttackPool) Plus(o AttackPool) AttackPool {
	return AttackPool{
		Melee:  p.Melee.Plus(o.Melee),
		Ranged: p.Ranged.Plus(o.Ranged),
		Siege:  p.Siege.Plus(o.Siege),
	}
}

// Minus returns the type-wise difference p - o.
func (p AttackPool) Minus(o AttackPool) AttackPool {
	return AttackPool{
		Melee:  p.Melee.Minus(o.Melee),
		Ranged: p.Ranged.Minus(o.Ranged),
		Siege:  p.Siege.Minus(o.Siege),
	}
}

// Elements collapses the pool into one value per element.
func (p AttackPool) Elements() ElementalValues {
	return p.Melee.Plus(p.Ranged).Plus(p.Siege)
}

// Total returns the sum over all types and elements.
func (p AttackPool) Total() int {
	return p.Elements().Total()
}

// IsZero reports whether the pool is empty.
func (p AttackPool) IsZero() bool {
	return p == AttackPool{}
}
