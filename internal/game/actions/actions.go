// Package actions defines the closed set of player actions the engine
// accepts and their JSON wire form, {"type": "...", ...fields}.
package actions

import (
	"github.com/mage-knight-digital/MageKnight-sub005/internal/game/mana"
	"github.com/mage-knight-digital/MageKnight-sub005/internal/game/state"
)

// Type names an action on the wire.
type Type string

const (
	TypeMove               Type = "MOVE"
	TypeChallenge          Type = "CHALLENGE"
	TypePlayCard           Type = "PLAY_CARD"
	TypePlayCardSideways   Type = "PLAY_CARD_SIDEWAYS"
	TypeConvertCrystal     Type = "CONVERT_CRYSTAL"
	TypeRecruitUnit        Type = "RECRUIT_UNIT"
	TypeActivateUnit       Type = "ACTIVATE_UNIT"
	TypeHealUnit           Type = "HEAL_UNIT"
	TypeUseSkill           Type = "USE_SKILL"
	TypeSelectTactic       Type = "SELECT_TACTIC"
	TypeAssignAttack       Type = "ASSIGN_ATTACK"
	TypeUnassignAttack     Type = "UNASSIGN_ATTACK"
	TypeAssignBlock        Type = "ASSIGN_BLOCK"
	TypeUnassignBlock      Type = "UNASSIGN_BLOCK"
	TypeAssignDamage       Type = "ASSIGN_DAMAGE"
	TypeEndCombatPhase     Type = "END_COMBAT_PHASE"
	TypeResolveChoice      Type = "RESOLVE_CHOICE"
	TypeResolveDiscard     Type = "RESOLVE_DISCARD"
	TypeResolveDeepMine    Type = "RESOLVE_DEEP_MINE"
	TypeUndo               Type = "UNDO"
	TypeEndTurn            Type = "END_TURN"
	TypeAnnounceEndOfRound Type = "ANNOUNCE_END_OF_ROUND"
)

// All lists every action type in wire order.
func All() []Type {
	return []Type{
		TypeMove, TypeChallenge, TypePlayCard, TypePlayCardSideways, TypeConvertCrystal,
		TypeRecruitUnit, TypeActivateUnit, TypeHealUnit, TypeUseSkill, TypeSelectTactic,
		TypeAssignAttack, TypeUnassignAttack, TypeAssignBlock, TypeUnassignBlock,
		TypeAssignDamage, TypeEndCombatPhase, TypeResolveChoice, TypeResolveDiscard,
		TypeResolveDeepMine, TypeUndo, TypeEndTurn, TypeAnnounceEndOfRound,
	}
}

// Action is a player action. The set is closed.
type Action interface {
	Type() Type
	isAction()
}

// Move walks the hero to an adjacent hex.
type Move struct {
	Target state.HexCoord `json:"target"`
}

// Challenge starts combat with the enemies on an adjacent hex.
type Challenge struct {
	Target state.HexCoord `json:"target"`
}

// PlayCard plays a card from hand for its basic or powered effect. Mana lists
// the payments, one per colour of the cost.
type PlayCard struct {
	CardID  state.CardID   `json:"cardId"`
	Powered bool           `json:"powered,omitempty"`
	Mana    []mana.Payment `json:"mana,omitempty"`
}

// SidewaysAs is what a card played sideways turns into.
type SidewaysAs string

const (
	SidewaysMove      SidewaysAs = "move"
	SidewaysInfluence SidewaysAs = "influence"
	SidewaysAttack    SidewaysAs = "attack"
	SidewaysBlock     SidewaysAs = "block"
)

// PlayCardSideways plays a non-wound card for one point of move, influence,
// attack or block.
type PlayCardSideways struct {
	CardID state.CardID `json:"cardId"`
	As     SidewaysAs   `json:"as"`
}

// ConvertCrystal turns one crystal into a mana token of the same colour.
type ConvertCrystal struct {
	Color mana.Color `json:"color"`
}

// RecruitUnit buys a unit from the offer with influence.
type RecruitUnit struct {
	UnitID state.UnitID `json:"unitId"`
}

// ActivateUnit uses one ability of a ready, unwounded unit.
type ActivateUnit struct {
	UnitInstanceID string        `json:"unitInstanceId"`
	AbilityIndex   int           `json:"abilityIndex"`
	Mana           *mana.Payment `json:"mana,omitempty"`
}

// HealUnit spends healing points equal to the unit's level to heal it.
type HealUnit struct {
	UnitInstanceID string `json:"unitInstanceId"`
}

// UseSkill uses a hero skill.
type UseSkill struct {
	SkillID state.SkillID `json:"skillId"`
}

// SelectTactic picks a tactic card during tactics selection.
type SelectTactic struct {
	TacticID state.TacticID `json:"tacticId"`
}

// AssignAttack moves accumulated attack onto an enemy.
type AssignAttack struct {
	EnemyInstanceID string           `json:"enemyInstanceId"`
	AttackType      state.AttackType `json:"attackType"`
	Element         state.Element    `json:"element"`
	Amount          int              `json:"amount"`
}

// UnassignAttack takes assigned attack back from an enemy.
type UnassignAttack struct {
	EnemyInstanceID string           `json:"enemyInstanceId"`
	AttackType      state.AttackType `json:"attackType"`
	Element         state.Element    `json:"element"`
	Amount          int              `json:"amount"`
}

// AssignBlock moves accumulated block onto one enemy attack.
type AssignBlock struct {
	EnemyInstanceID string        `json:"enemyInstanceId"`
	AttackIndex     int           `json:"attackIndex,omitempty"`
	Element         state.Element `json:"element"`
	Amount          int           `json:"amount"`
}

// UnassignBlock takes assigned block back from an enemy attack.
type UnassignBlock struct {
	EnemyInstanceID string        `json:"enemyInstanceId"`
	AttackIndex     int           `json:"attackIndex,omitempty"`
	Element         state.Element `json:"element"`
	Amount          int           `json:"amount"`
}

// AssignDamage sends an unblocked enemy attack to the hero or a unit.
type AssignDamage struct {
	EnemyInstanceID string `json:"enemyInstanceId"`
	AttackIndex     int    `json:"attackIndex,omitempty"`
	UnitInstanceID  string `json:"unitInstanceId,omitempty"`
}

// EndCombatPhase resolves the current combat phase and moves on.
type EndCombatPhase struct{}

// ResolveChoice picks an option of the pending choice.
type ResolveChoice struct {
	Index int `json:"index"`
}

// ResolveDiscard pays a pending discard cost.
type ResolveDiscard struct {
	CardIDs []state.CardID `json:"cardIds"`
}

// ResolveDeepMine picks the crystal colour of a deep mine.
type ResolveDeepMine struct {
	Color mana.Color `json:"color"`
}

// Undo reverts the last reversible command.
type Undo struct{}

// EndTurn ends the current player's turn.
type EndTurn struct{}

// AnnounceEndOfRound gives every other player one last turn.
type AnnounceEndOfRound struct{}

func (Move) Type() Type               { return TypeMove }
func (Challenge) Type() Type          { return TypeChallenge }
func (PlayCard) Type() Type           { return TypePlayCard }
func (PlayCardSideways) Type() Type   { return TypePlayCardSideways }
func (ConvertCrystal) Type() Type     { return TypeConvertCrystal }
func (RecruitUnit) Type() Type        { return TypeRecruitUnit }
func (ActivateUnit) Type() Type       { return TypeActivateUnit }
func (HealUnit) Type() Type           { return TypeHealUnit }
func (UseSkill) Type() Type           { return TypeUseSkill }
func (SelectTactic) Type() Type       { return TypeSelectTactic }
func (AssignAttack) Type() Type       { return TypeAssignAttack }
func (UnassignAttack) Type() Type     { return TypeUnassignAttack }
func (AssignBlock) Type() Type        { return TypeAssignBlock }
func (UnassignBlock) Type() Type      { return TypeUnassignBlock }
func (AssignDamage) Type() Type       { return TypeAssignDamage }
func (EndCombatPhase) Type() Type     { return TypeEndCombatPhase }
func (ResolveChoice) Type() Type      { return TypeResolveChoice }
func (ResolveDiscard) Type() Type     { return TypeResolveDiscard }
func (ResolveDeepMine) Type() Type    { return TypeResolveDeepMine }
func (Undo) Type() Type               { return TypeUndo }
func (EndTurn) Type() Type            { return TypeEndTurn }
func (AnnounceEndOfRound) Type() Type { return TypeAnnounceEndOfRound }

func (Move) isAction()               {}
func (Challenge) isAction()          {}
func (PlayCard) isAction()           {}
func (PlayCardSideways) isAction()   {}
func (ConvertCrystal) isAction()     {}
func (RecruitUnit) isAction()        {}
func (ActivateUnit) isAction()       {}
func (HealUnit) isAction()           {}
func (UseSkill) isAction()           {}
func (SelectTactic) isAction()       {}
func (AssignAttack) isAction()       {}
func (UnassignAttack) isAction()     {}
func (AssignBlock) isAction()        {}
func (UnassignBlock) isAction()      {}
func (AssignDamage) isAction()       {}
func (EndCombatPhase) isAction()     {}
func (ResolveChoice) isAction()      {}
func (ResolveDiscard) isAction()     {}
func (ResolveDeepMine) isAction()    {}
func (Undo) isAction()               {}
func (EndTurn) isAction()            {}
func (AnnounceEndOfRound) isAction() {}
