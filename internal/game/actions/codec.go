package actions

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrUnknownAction is returned when the wire type names no action.
var ErrUnknownAction = errors.New("unknown action type")

func decodeAs[T Action](raw []byte) (Action, error) {
	var a T
	if err := json.Unmarshal(raw, &a); err != nil {
		return nil, err
	}
	return a, nil
}

var decoders = map[Type]func([]byte) (Action, error){
	TypeMove:               decodeAs[Move],
	TypeChallenge:          decodeAs[Challenge],
	TypePlayCard:           decodeAs[PlayCard],
	TypePlayCardSideways:   decodeAs[PlayCardSideways],
	TypeConvertCrystal:     decodeAs[ConvertCrystal],
	TypeRecruitUnit:        decodeAs[RecruitUnit],
	TypeActivateUnit:       decodeAs[ActivateUnit],
	TypeHealUnit:           decodeAs[HealUnit],
	TypeUseSkill:           decodeAs[UseSkill],
	TypeSelectTactic:       decodeAs[SelectTactic],
	TypeAssignAttack:       decodeAs[AssignAttack],
	TypeUnassignAttack:     decodeAs[UnassignAttack],
	TypeAssignBlock:        decodeAs[AssignBlock],
	TypeUnassignBlock:      decodeAs[UnassignBlock],
	TypeAssignDamage:       decodeAs[AssignDamage],
	TypeEndCombatPhase:     decodeAs[EndCombatPhase],
	TypeResolveChoice:      decodeAs[ResolveChoice],
	TypeResolveDiscard:     decodeAs[ResolveDiscard],
	TypeResolveDeepMine:    decodeAs[ResolveDeepMine],
	TypeUndo:               decodeAs[Undo],
	TypeEndTurn:            decodeAs[EndTurn],
	TypeAnnounceEndOfRound: decodeAs[AnnounceEndOfRound],
}

// Decode parses one action from its wire form.
func Decode(data []byte) (Action, error) {
	var head struct {
		Type Type `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, fmt.Errorf("decode action: %w", err)
	}
	dec, ok := decoders[head.Type]
	if !ok {
		return nil, fmt.Errorf("decode action: %w: %q", ErrUnknownAction, head.Type)
	}
	a, err := dec(data)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", head.Type, err)
	}
	return a, nil
}

// Encode writes a in its wire form.
func Encode(a Action) ([]byte, error) {
	body, err := json.Marshal(a)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", a.Type(), err)
	}
	typ, _ := json.Marshal(a.Type())
	var buf bytes.Buffer
	buf.WriteString(`{"type":`)
	buf.Write(typ)
	if rest := bytes.TrimSpace(body[1:]); len(rest) > 1 {
		buf.WriteByte(',')
		buf.Write(rest)
	} else {
		buf.WriteByte('}')
	}
	return buf.Bytes(), nil
}
