// Package validactions builds the menu of legal actions a player can take
// right now. It is the only description of legality handed to a UI: every
// entry it lists passes the validator pipeline, and nothing of the raw state
// leaks through it.
package validactions

import (
	"github.com/mage-knight-digital/MageKnight-sub005/internal/game/actions"
	"github.com/mage-knight-digital/MageKnight-sub005/internal/game/mana"
	"github.com/mage-knight-digital/MageKnight-sub005/internal/game/state"
)

// Mode discriminates ValidActions.
type Mode string

const (
	ModeCannotAct        Mode = "cannot_act"
	ModeTacticsSelection Mode = "tactics_selection"
	ModePendingChoice    Mode = "pending_choice"
	ModePendingDiscard   Mode = "pending_discard"
	ModePendingDeepMine  Mode = "pending_deep_mine"
	ModeCombat           Mode = "combat"
	ModeNormalTurn       Mode = "normal_turn"
)

// Modes lists every mode.
func Modes() []Mode {
	return []Mode{
		ModeCannotAct, ModeTacticsSelection, ModePendingChoice, ModePendingDiscard,
		ModePendingDeepMine, ModeCombat, ModeNormalTurn,
	}
}

// ValidActions is what a player may do. Exactly the field matching Mode is
// set.
type ValidActions struct {
	Mode    Mode `json:"mode"`
	CanUndo bool `json:"canUndo"`
	// Reason explains cannot_act.
	Reason   string           `json:"reason,omitempty"`
	Tactics  *TacticsOptions  `json:"tactics,omitempty"`
	Choice   *ChoiceOptions   `json:"choice,omitempty"`
	Discard  *DiscardOptions  `json:"discard,omitempty"`
	DeepMine *DeepMineOptions `json:"deepMine,omitempty"`
	Combat   *CombatOptions   `json:"combat,omitempty"`
	Turn     *TurnOptions     `json:"turn,omitempty"`
}

type TacticsOptions struct {
	Available []state.TacticID `json:"available"`
}

type ChoiceOption struct {
	Index       int    `json:"index"`
	Description string `json:"description"`
}

type ChoiceOptions struct {
	Source  string         `json:"source"`
	Options []ChoiceOption `json:"options"`
}

type DiscardOptions struct {
	Source      string         `json:"source"`
	Count       int            `json:"count"`
	AllowWounds bool           `json:"allowWounds,omitempty"`
	Eligible    []state.CardID `json:"eligible"`
}

type DeepMineOptions struct {
	Colors []mana.Color `json:"colors"`
}

// CardOption is a card that can be played from hand. The payments are one
// way to pay each mode, when it costs mana.
type CardOption struct {
	CardID         state.CardID         `json:"cardId"`
	Basic          bool                 `json:"basic,omitempty"`
	BasicPayment   []mana.Payment       `json:"basicPayment,omitempty"`
	Powered        bool                 `json:"powered,omitempty"`
	PoweredPayment []mana.Payment       `json:"poweredPayment,omitempty"`
	Sideways       []actions.SidewaysAs `json:"sideways,omitempty"`
}

// UnitOption is a unit with the abilities it can use now.
type UnitOption struct {
	UnitInstanceID string          `json:"unitInstanceId"`
	UnitID         state.UnitID    `json:"unitId"`
	Abilities      []AbilityOption `json:"abilities"`
}

type AbilityOption struct {
	Index       int           `json:"index"`
	Description string        `json:"description"`
	Payment     *mana.Payment `json:"payment,omitempty"`
}

type MoveOption struct {
	Target state.HexCoord `json:"target"`
	Cost   int            `json:"cost"`
}

type RecruitOption struct {
	UnitID state.UnitID `json:"unitId"`
	Cost   int          `json:"cost"`
}

// TurnOptions is the menu outside combat.
type TurnOptions struct {
	Moves                 []MoveOption     `json:"moves,omitempty"`
	Challenges            []state.HexCoord `json:"challenges,omitempty"`
	Cards                 []CardOption     `json:"cards,omitempty"`
	ConvertCrystals       []mana.Color     `json:"convertCrystals,omitempty"`
	Recruits              []RecruitOption  `json:"recruits,omitempty"`
	Units                 []UnitOption     `json:"units,omitempty"`
	Heals                 []string         `json:"heals,omitempty"`
	Skills                []state.SkillID  `json:"skills,omitempty"`
	CanEndTurn            bool             `json:"canEndTurn"`
	CanAnnounceEndOfRound bool             `json:"canAnnounceEndOfRound"`
}

// EnemyAttackOption is one attack of an enemy in combat.
type EnemyAttackOption struct {
	Index          int           `json:"index"`
	Value          int           `json:"value"`
	Element        state.Element `json:"element"`
	BlockRequired  int           `json:"blockRequired"`
	Blocked        bool          `json:"blocked,omitempty"`
	DamageAssigned bool          `json:"damageAssigned,omitempty"`
	// DamageTargets lists the units that may absorb this attack. The hero
	// can always take it.
	DamageTargets []string `json:"damageTargets,omitempty"`
	CanAssign     bool     `json:"canAssignDamage,omitempty"`
}

// EnemyOption is an enemy and what can be aimed at it.
type EnemyOption struct {
	InstanceID string              `json:"instanceId"`
	EnemyID    state.EnemyID       `json:"enemyId"`
	Armor      int                 `json:"armor"`
	Defeated   bool                `json:"defeated,omitempty"`
	Targetable []state.AttackType  `json:"targetable,omitempty"`
	Attacks    []EnemyAttackOption `json:"attacks"`
	Pending    state.AttackPool    `json:"pendingDamage,omitzero"`
}

// CombatOptions is the menu during combat.
type CombatOptions struct {
	Phase           state.CombatPhase     `json:"phase"`
	Enemies         []EnemyOption         `json:"enemies"`
	AvailableAttack state.AttackPool      `json:"availableAttack,omitzero"`
	AvailableBlock  state.ElementalValues `json:"availableBlock,omitzero"`
	Cards           []CardOption          `json:"cards,omitempty"`
	Units           []UnitOption          `json:"units,omitempty"`
	Skills          []state.SkillID       `json:"skills,omitempty"`
	CanEndPhase     bool                  `json:"canEndPhase"`
}
