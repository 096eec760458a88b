package state

import (
	"encoding/json"
	"errors"
	"fmt"
)

var (
	// ErrUnknownEffect is returned when decoding an effect of unknown kind.
	ErrUnknownEffect = errors.New("unknown effect kind")
	// ErrUnknownModifier is returned when decoding a modifier of unknown kind.
	ErrUnknownModifier = errors.New("unknown modifier kind")
)

// envelope carries a union value as {"type": kind, "data": payload}.
type envelope struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

func decodeEffectAs[T Effect](raw json.RawMessage) (Effect, error) {
	var v T
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, err
		}
	}
	return v, nil
}

func decodeModifierAs[T ModifierEffect](raw json.RawMessage) (ModifierEffect, error) {
	var v T
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, err
		}
	}
	return v, nil
}

var effectDecoders = map[EffectKind]func(json.RawMessage) (Effect, error){
	EffectGainAttack:          decodeEffectAs[GainAttack],
	EffectGainBlock:           decodeEffectAs[GainBlock],
	EffectGainMove:            decodeEffectAs[GainMove],
	EffectGainInfluence:       decodeEffectAs[GainInfluence],
	EffectGainHealing:         decodeEffectAs[GainHealing],
	EffectGainMana:            decodeEffectAs[GainMana],
	EffectGainCrystal:         decodeEffectAs[GainCrystal],
	EffectGainFame:            decodeEffectAs[GainFame],
	EffectChangeReputation:    decodeEffectAs[ChangeReputation],
	EffectDrawCards:           decodeEffectAs[DrawCards],
	EffectCompound:            decodeEffectAs[Compound],
	EffectChoice:              decodeEffectAs[Choice],
	EffectDiscardCost:         decodeEffectAs[DiscardCost],
	EffectDiscardForCrystal:   decodeEffectAs[DiscardForCrystal],
	EffectDiscardCardCrystal:  decodeEffectAs[DiscardCardForCrystal],
	EffectCrystallizeToken:    decodeEffectAs[CrystallizeToken],
	EffectCrystallizeColor:    decodeEffectAs[CrystallizeColor],
	EffectTakeFromOffer:       decodeEffectAs[TakeFromOffer],
	EffectTakeOfferCard:       decodeEffectAs[TakeOfferCard],
	EffectReadyUnit:           decodeEffectAs[ReadyUnit],
	EffectReadySpecificUnit:   decodeEffectAs[ReadySpecificUnit],
	EffectWeakenEnemy:         decodeEffectAs[WeakenEnemy],
	EffectWeakenSpecificEnemy: decodeEffectAs[WeakenSpecificEnemy],
	EffectApplyModifier:       decodeEffectAs[ApplyModifier],
	EffectAttackWithFameBonus: decodeEffectAs[AttackWithFameBonus],
	EffectConditional:         decodeEffectAs[Conditional],
}

var modifierDecoders = map[ModifierKind]func(json.RawMessage) (ModifierEffect, error){
	ModUnitAbilityBonus: decodeModifierAs[UnitAbilityBonus],
	ModDamageReduction:  decodeModifierAs[DamageReduction],
	ModFameTracker:      decodeModifierAs[FameTracker],
	ModEndlessMana:      decodeModifierAs[EndlessMana],
	ModRuleActive:       decodeModifierAs[RuleActive],
	ModTerrainCost:      decodeModifierAs[TerrainCost],
	ModRecruitDiscount:  decodeModifierAs[RecruitDiscount],
	ModEnemyArmor:       decodeModifierAs[EnemyArmor],
	ModKeepTrophy:       decodeModifierAs[KeepTrophy],
}

// MarshalEffect encodes an effect with its kind discriminator. A nil effect
// encodes as null.
func MarshalEffect(e Effect) (json.RawMessage, error) {
	if e == nil {
		return json.RawMessage("null"), nil
	}
	data, err := json.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("marshal %s effect: %w", e.Kind(), err)
	}
	return json.Marshal(envelope{Type: string(e.Kind()), Data: data})
}

// UnmarshalEffect decodes an effect written by MarshalEffect.
func UnmarshalEffect(raw json.RawMessage) (Effect, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("decode effect envelope: %w", err)
	}
	decode, ok := effectDecoders[EffectKind(env.Type)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEffect, env.Type)
	}
	e, err := decode(env.Data)
	if err != nil {
		return nil, fmt.Errorf("decode %s effect: %w", env.Type, err)
	}
	return e, nil
}

// MarshalModifier encodes a modifier effect with its kind discriminator.
func MarshalModifier(m ModifierEffect) (json.RawMessage, error) {
	if m == nil {
		return json.RawMessage("null"), nil
	}
	data, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("marshal %s modifier: %w", m.ModifierKind(), err)
	}
	return json.Marshal(envelope{Type: string(m.ModifierKind()), Data: data})
}

// UnmarshalModifier decodes a modifier written by MarshalModifier.
func UnmarshalModifier(raw json.RawMessage) (ModifierEffect, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("decode modifier envelope: %w", err)
	}
	decode, ok := modifierDecoders[ModifierKind(env.Type)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownModifier, env.Type)
	}
	m, err := decode(env.Data)
	if err != nil {
		return nil, fmt.Errorf("decode %s modifier: %w", env.Type, err)
	}
	return m, nil
}

func marshalEffects(list []Effect) ([]json.RawMessage, error) {
	if list == nil {
		return nil, nil
	}
	out := make([]json.RawMessage, len(list))
	for i, e := range list {
		raw, err := MarshalEffect(e)
		if err != nil {
			return nil, err
		}
		out[i] = raw
	}
	return out, nil
}

func unmarshalEffects(list []json.RawMessage) ([]Effect, error) {
	if list == nil {
		return nil, nil
	}
	out := make([]Effect, len(list))
	for i, raw := range list {
		e, err := UnmarshalEffect(raw)
		if err != nil {
			return nil, err
		}
		out[i] = e
	}
	return out, nil
}

func optionalEffect(e Effect) (json.RawMessage, error) {
	if e == nil {
		return nil, nil
	}
	return MarshalEffect(e)
}

func (c Compound) MarshalJSON() ([]byte, error) {
	list, err := marshalEffects(c.Effects)
	if err != nil {
		return nil, err
	}
	return json.Marshal(struct {
		Effects []json.RawMessage `json:"effects"`
	}{list})
}

func (c *Compound) UnmarshalJSON(b []byte) error {
	var aux struct {
		Effects []json.RawMessage `json:"effects"`
	}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	list, err := unmarshalEffects(aux.Effects)
	if err != nil {
		return err
	}
	c.Effects = list
	return nil
}

func (c Choice) MarshalJSON() ([]byte, error) {
	list, err := marshalEffects(c.Options)
	if err != nil {
		return nil, err
	}
	return json.Marshal(struct {
		Options []json.RawMessage `json:"options"`
	}{list})
}

func (c *Choice) UnmarshalJSON(b []byte) error {
	var aux struct {
		Options []json.RawMessage `json:"options"`
	}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	list, err := unmarshalEffects(aux.Options)
	if err != nil {
		return err
	}
	c.Options = list
	return nil
}

func (d DiscardCost) MarshalJSON() ([]byte, error) {
	type alias DiscardCost
	then, err := optionalEffect(d.Then)
	if err != nil {
		return nil, err
	}
	return json.Marshal(struct {
		alias
		Then json.RawMessage `json:"then,omitempty"`
	}{alias(d), then})
}

func (d *DiscardCost) UnmarshalJSON(b []byte) error {
	type alias DiscardCost
	aux := struct {
		*alias
		Then json.RawMessage `json:"then,omitempty"`
	}{alias: (*alias)(d)}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	then, err := UnmarshalEffect(aux.Then)
	if err != nil {
		return err
	}
	d.Then = then
	return nil
}

func (c Conditional) MarshalJSON() ([]byte, error) {
	type alias Conditional
	then, err := optionalEffect(c.Then)
	if err != nil {
		return nil, err
	}
	els, err := optionalEffect(c.Else)
	if err != nil {
		return nil, err
	}
	return json.Marshal(struct {
		alias
		Then json.RawMessage `json:"then,omitempty"`
		Else json.RawMessage `json:"else,omitempty"`
	}{alias(c), then, els})
}

func (c *Conditional) UnmarshalJSON(b []byte) error {
	type alias Conditional
	aux := struct {
		*alias
		Then json.RawMessage `json:"then,omitempty"`
		Else json.RawMessage `json:"else,omitempty"`
	}{alias: (*alias)(c)}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	then, err := UnmarshalEffect(aux.Then)
	if err != nil {
		return err
	}
	els, err := UnmarshalEffect(aux.Else)
	if err != nil {
		return err
	}
	c.Then, c.Else = then, els
	return nil
}

func (a ApplyModifier) MarshalJSON() ([]byte, error) {
	type alias ApplyModifier
	mod, err := MarshalModifier(a.Modifier)
	if err != nil {
		return nil, err
	}
	return json.Marshal(struct {
		alias
		Modifier json.RawMessage `json:"modifier"`
	}{alias(a), mod})
}

func (a *ApplyModifier) UnmarshalJSON(b []byte) error {
	type alias ApplyModifier
	aux := struct {
		*alias
		Modifier json.RawMessage `json:"modifier"`
	}{alias: (*alias)(a)}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	mod, err := UnmarshalModifier(aux.Modifier)
	if err != nil {
		return err
	}
	a.Modifier = mod
	return nil
}

func (m ActiveModifier) MarshalJSON() ([]byte, error) {
	type alias ActiveModifier
	eff, err := MarshalModifier(m.Effect)
	if err != nil {
		return nil, err
	}
	return json.Marshal(struct {
		alias
		Effect json.RawMessage `json:"effect"`
	}{alias(m), eff})
}

func (m *ActiveModifier) UnmarshalJSON(b []byte) error {
	type alias ActiveModifier
	aux := struct {
		*alias
		Effect json.RawMessage `json:"effect"`
	}{alias: (*alias)(m)}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	eff, err := UnmarshalModifier(aux.Effect)
	if err != nil {
		return err
	}
	m.Effect = eff
	return nil
}

func (c PendingChoice) MarshalJSON() ([]byte, error) {
	list, err := marshalEffects(c.Options)
	if err != nil {
		return nil, err
	}
	return json.Marshal(struct {
		Source  Source            `json:"source"`
		Options []json.RawMessage `json:"options"`
	}{c.Source, list})
}

func (c *PendingChoice) UnmarshalJSON(b []byte) error {
	var aux struct {
		Source  Source            `json:"source"`
		Options []json.RawMessage `json:"options"`
	}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	list, err := unmarshalEffects(aux.Options)
	if err != nil {
		return err
	}
	c.Source, c.Options = aux.Source, list
	return nil
}

func (d PendingDiscard) MarshalJSON() ([]byte, error) {
	type alias PendingDiscard
	then, err := optionalEffect(d.Then)
	if err != nil {
		return nil, err
	}
	return json.Marshal(struct {
		alias
		Then json.RawMessage `json:"then,omitempty"`
	}{alias(d), then})
}

func (d *PendingDiscard) UnmarshalJSON(b []byte) error {
	type alias PendingDiscard
	aux := struct {
		*alias
		Then json.RawMessage `json:"then,omitempty"`
	}{alias: (*alias)(d)}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	then, err := UnmarshalEffect(aux.Then)
	if err != nil {
		return err
	}
	d.Then = then
	return nil
}
