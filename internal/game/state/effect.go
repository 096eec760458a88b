package state

import "github.com/mage-knight-digital/MageKnight-sub005/internal/game/mana"

// EffectKind names an effect variant. It doubles as the JSON discriminator.
type EffectKind string

const (
	EffectGainAttack          EffectKind = "gain_attack"
	EffectGainBlock           EffectKind = "gain_block"
	EffectGainMove            EffectKind = "gain_move"
	EffectGainInfluence       EffectKind = "gain_influence"
	EffectGainHealing         EffectKind = "gain_healing"
	EffectGainMana            EffectKind = "gain_mana"
	EffectGainCrystal         EffectKind = "gain_crystal"
	EffectGainFame            EffectKind = "gain_fame"
	EffectChangeReputation    EffectKind = "change_reputation"
	EffectDrawCards           EffectKind = "draw_cards"
	EffectCompound            EffectKind = "compound"
	EffectChoice              EffectKind = "choice"
	EffectDiscardCost         EffectKind = "discard_cost"
	EffectDiscardForCrystal   EffectKind = "discard_for_crystal"
	EffectDiscardCardCrystal  EffectKind = "discard_card_for_crystal"
	EffectCrystallizeToken    EffectKind = "crystallize_token"
	EffectCrystallizeColor    EffectKind = "crystallize_color"
	EffectTakeFromOffer       EffectKind = "take_from_offer"
	EffectTakeOfferCard       EffectKind = "take_offer_card"
	EffectReadyUnit           EffectKind = "ready_unit"
	EffectReadySpecificUnit   EffectKind = "ready_specific_unit"
	EffectWeakenEnemy         EffectKind = "weaken_enemy"
	EffectWeakenSpecificEnemy EffectKind = "weaken_specific_enemy"
	EffectApplyModifier       EffectKind = "apply_modifier"
	EffectAttackWithFameBonus EffectKind = "attack_with_fame_bonus"
	EffectConditional         EffectKind = "conditional"
)

// AllEffectKinds lists every effect variant. Consumers are tested against it.
func AllEffectKinds() []EffectKind {
	return []EffectKind{
		EffectGainAttack, EffectGainBlock, EffectGainMove, EffectGainInfluence,
		EffectGainHealing, EffectGainMana, EffectGainCrystal, EffectGainFame,
		EffectChangeReputation, EffectDrawCards, EffectCompound, EffectChoice,
		EffectDiscardCost, EffectDiscardForCrystal, EffectDiscardCardCrystal,
		EffectCrystallizeToken, EffectCrystallizeColor, EffectTakeFromOffer,
		EffectTakeOfferCard, EffectReadyUnit, EffectReadySpecificUnit,
		EffectWeakenEnemy, EffectWeakenSpecificEnemy, EffectApplyModifier,
		EffectAttackWithFameBonus, EffectConditional,
	}
}

// Effect is a closed union of card, skill and unit effects. Only types in
// this package implement it.
type Effect interface {
	Kind() EffectKind
	isEffect()
}

// GainAttack adds attack of a type and element to the combat accumulator.
type GainAttack struct {
	Amount     int        `json:"amount"`
	AttackType AttackType `json:"attackType"`
	Element    Element    `json:"element"`
}

// GainBlock adds block of an element to the combat accumulator.
type GainBlock struct {
	Amount                  int     `json:"amount"`
	Element                 Element `json:"element"`
	CountsTwiceAgainstSwift bool    `json:"countsTwiceAgainstSwift,omitempty"`
}

type GainMove struct {
	Amount int `json:"amount"`
}

type GainInfluence struct {
	Amount int `json:"amount"`
}

type GainHealing struct {
	Amount int `json:"amount"`
}

// GainMana adds one pure mana token.
type GainMana struct {
	Color mana.Color `json:"color"`
}

// GainCrystal adds one crystal.
type GainCrystal struct {
	Color mana.Color `json:"color"`
}

type GainFame struct {
	Amount int `json:"amount"`
}

type ChangeReputation struct {
	Amount int `json:"amount"`
}

// DrawCards draws from the player's deck. Drawing reveals hidden information.
type DrawCards struct {
	Count int `json:"count"`
}

// Compound resolves its effects left to right.
type Compound struct {
	Effects []Effect `json:"effects"`
}

// Choice asks the player to pick exactly one option.
type Choice struct {
	Options []Effect `json:"options"`
}

// DiscardCost asks the player to discard cards from hand, then resolves Then.
type DiscardCost struct {
	Count       int    `json:"count"`
	AllowWounds bool   `json:"allowWounds,omitempty"`
	Then        Effect `json:"then"`
}

// DiscardForCrystal discards a coloured action card to gain a crystal of its
// colour. The concrete card is picked through a choice of
// DiscardCardForCrystal options.
type DiscardForCrystal struct{}

// DiscardCardForCrystal is the concrete option of DiscardForCrystal.
type DiscardCardForCrystal struct {
	CardID CardID     `json:"cardId"`
	Color  mana.Color `json:"color"`
}

// CrystallizeToken spends one basic-colour mana token to gain a crystal of
// that colour.
type CrystallizeToken struct{}

// CrystallizeColor is the concrete option of CrystallizeToken.
type CrystallizeColor struct {
	Color mana.Color `json:"color"`
}

// OfferKind names a card offer.
type OfferKind string

const (
	OfferAdvancedActions OfferKind = "advanced_actions"
	OfferSpells          OfferKind = "spells"
)

// TakeFromOffer gains a card from an offer into the hand. The offer is
// refilled from the matching deck.
type TakeFromOffer struct {
	Offer OfferKind `json:"offer"`
}

// TakeOfferCard is the concrete option of TakeFromOffer.
type TakeOfferCard struct {
	Offer  OfferKind `json:"offer"`
	CardID CardID    `json:"cardId"`
}

// ReadyUnit readies one spent unit of at most MaxLevel.
type ReadyUnit struct {
	MaxLevel int `json:"maxLevel"`
}

// ReadySpecificUnit is the concrete option of ReadyUnit.
type ReadySpecificUnit struct {
	UnitInstanceID string `json:"unitInstanceId"`
}

// WeakenEnemy reduces the armor of one enemy in combat for the rest of it.
type WeakenEnemy struct {
	Amount int `json:"amount"`
}

// WeakenSpecificEnemy is the concrete option of WeakenEnemy.
type WeakenSpecificEnemy struct {
	EnemyInstanceID string `json:"enemyInstanceId"`
	Amount          int    `json:"amount"`
}

// ApplyModifier adds a modifier to the ledger.
type ApplyModifier struct {
	Modifier    ModifierEffect `json:"modifier"`
	Duration    Duration       `json:"duration"`
	Scope       ScopeKind      `json:"scope"`
	Description string         `json:"description,omitempty"`
}

// AttackWithFameBonus grants attack and tracks enemies defeated this combat,
// granting FamePerEnemy for each of up to MaxEnemies of them.
type AttackWithFameBonus struct {
	Amount       int        `json:"amount"`
	AttackType   AttackType `json:"attackType"`
	Element      Element    `json:"element"`
	FamePerEnemy int        `json:"famePerEnemy"`
	MaxEnemies   int        `json:"maxEnemies"`
}

// Conditional resolves Then when Condition (a CEL expression) holds and Else
// otherwise. Else may be nil.
type Conditional struct {
	Condition string `json:"condition"`
	Then      Effect `json:"then"`
	Else      Effect `json:"else,omitempty"`
}

func (GainAttack) Kind() EffectKind            { return EffectGainAttack }
func (GainBlock) Kind() EffectKind             { return EffectGainBlock }
func (GainMove) Kind() EffectKind              { return EffectGainMove }
func (GainInfluence) Kind() EffectKind         { return EffectGainInfluence }
func (GainHealing) Kind() EffectKind           { return EffectGainHealing }
func (GainMana) Kind() EffectKind              { return EffectGainMana }
func (GainCrystal) Kind() EffectKind           { return EffectGainCrystal }
func (GainFame) Kind() EffectKind              { return EffectGainFame }
func (ChangeReputation) Kind() EffectKind      { return EffectChangeReputation }
func (DrawCards) Kind() EffectKind             { return EffectDrawCards }
func (Compound) Kind() EffectKind              { return EffectCompound }
func (Choice) Kind() EffectKind                { return EffectChoice }
func (DiscardCost) Kind() EffectKind           { return EffectDiscardCost }
func (DiscardForCrystal) Kind() EffectKind     { return EffectDiscardForCrystal }
func (DiscardCardForCrystal) Kind() EffectKind { return EffectDiscardCardCrystal }
func (CrystallizeToken) Kind() EffectKind      { return EffectCrystallizeToken }
func (CrystallizeColor) Kind() EffectKind      { return EffectCrystallizeColor }
func (TakeFromOffer) Kind() EffectKind         { return EffectTakeFromOffer }
func (TakeOfferCard) Kind() EffectKind         { return EffectTakeOfferCard }
func (ReadyUnit) Kind() EffectKind             { return EffectReadyUnit }
func (ReadySpecificUnit) Kind() EffectKind     { return EffectReadySpecificUnit }
func (WeakenEnemy) Kind() EffectKind           { return EffectWeakenEnemy }
func (WeakenSpecificEnemy) Kind() EffectKind   { return EffectWeakenSpecificEnemy }
func (ApplyModifier) Kind() EffectKind         { return EffectApplyModifier }
func (AttackWithFameBonus) Kind() EffectKind   { return EffectAttackWithFameBonus }
func (Conditional) Kind() EffectKind           { return EffectConditional }

func (GainAttack) isEffect()            {}
func (GainBlock) isEffect()             {}
func (GainMove) isEffect()              {}
func (GainInfluence) isEffect()         {}
func (GainHealing) isEffect()           {}
func (GainMana) isEffect()              {}
func (GainCrystal) isEffect()           {}
func (GainFame) isEffect()              {}
func (ChangeReputation) isEffect()      {}
func (DrawCards) isEffect()             {}
func (Compound) isEffect()              {}
func (Choice) isEffect()                {}
func (DiscardCost) isEffect()           {}
func (DiscardForCrystal) isEffect()     {}
func (DiscardCardForCrystal) isEffect() {}
func (CrystallizeToken) isEffect()      {}
func (CrystallizeColor) isEffect()      {}
func (TakeFromOffer) isEffect()         {}
func (TakeOfferCard) isEffect()         {}
func (ReadyUnit) isEffect()             {}
func (ReadySpecificUnit) isEffect()     {}
func (WeakenEnemy) isEffect()           {}
func (WeakenSpecificEnemy) isEffect()   {}
func (ApplyModifier) isEffect()         {}
func (AttackWithFameBonus) isEffect()   {}
func (Conditional) isEffect()           {}
