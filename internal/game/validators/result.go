// Package validators decides whether an action is legal before any command
// runs. Validators are pure: they read the state and never change it. Each
// validator governs a few action types and passes everything else.
package validators

import (
	"fmt"

	"github.com/mage-knight-digital/MageKnight-sub005/internal/game/actions"
	"github.com/mage-knight-digital/MageKnight-sub005/internal/game/state"
)

// Code is the machine-readable reason an action was rejected.
type Code string

const (
	GameOver         Code = "GAME_OVER"
	UnknownPlayer    Code = "UNKNOWN_PLAYER"
	WrongGamePhase   Code = "WRONG_GAME_PHASE"
	NotYourTurn      Code = "NOT_YOUR_TURN"
	ChoicePending    Code = "CHOICE_PENDING"
	DiscardPending   Code = "DISCARD_PENDING"
	DeepMinePending  Code = "DEEP_MINE_PENDING"
	NothingToUndo    Code = "NOTHING_TO_UNDO"
	UnknownAction    Code = "UNKNOWN_ACTION"
	ActionTaken      Code = "ACTION_ALREADY_TAKEN"
	InCombat         Code = "IN_COMBAT"
	NotInCombat      Code = "NOT_IN_COMBAT"
	EffectNotUsable  Code = "EFFECT_NOT_RESOLVABLE"
	CardNotInHand    Code = "CARD_NOT_IN_HAND"
	CardNotPlayable  Code = "CARD_NOT_PLAYABLE"
	InvalidSideways  Code = "INVALID_SIDEWAYS"
	InvalidMana      Code = "INVALID_MANA_PAYMENT"
	NoCrystal        Code = "NO_CRYSTAL"
	DieUnavailable   Code = "SOURCE_DIE_UNAVAILABLE"
	SourceLimit      Code = "SOURCE_LIMIT_REACHED"
	NoManaToken      Code = "NO_MANA_TOKEN"
	WrongTimeOfDay   Code = "WRONG_TIME_OF_DAY"
	NotAdjacent      Code = "NOT_ADJACENT"
	UnknownHex       Code = "UNKNOWN_HEX"
	Impassable       Code = "IMPASSABLE"
	InsufficientMove Code = "INSUFFICIENT_MOVE"
	AlreadyCombatted Code = "ALREADY_COMBATTED"
	NoEnemies        Code = "NO_ENEMIES"
	UnitNotInOffer   Code = "UNIT_NOT_IN_OFFER"
	CannotRecruit    Code = "CANNOT_RECRUIT_HERE"
	NoInfluence      Code = "INSUFFICIENT_INFLUENCE"
	NoCommandToken   Code = "NO_COMMAND_TOKEN"
	UnknownUnit      Code = "UNKNOWN_UNIT"
	UnitNotReady     Code = "UNIT_NOT_READY"
	UnitWounded      Code = "UNIT_WOUNDED"
	UnitNotWounded   Code = "UNIT_NOT_WOUNDED"
	UnknownAbility   Code = "UNKNOWN_ABILITY"
	AbilityTiming    Code = "ABILITY_WRONG_TIMING"
	NoHealing        Code = "INSUFFICIENT_HEALING"
	UnknownSkill     Code = "UNKNOWN_SKILL"
	SkillCooldown    Code = "SKILL_ON_COOLDOWN"
	SkillCombatOnly  Code = "SKILL_COMBAT_ONLY"
	TacticTaken      Code = "TACTIC_UNAVAILABLE"
	TacticChosen     Code = "TACTIC_ALREADY_SELECTED"
	WrongCombatPhase Code = "WRONG_COMBAT_PHASE"
	UnknownEnemy     Code = "UNKNOWN_ENEMY"
	EnemyDefeated    Code = "ENEMY_DEFEATED"
	UnknownAttack    Code = "UNKNOWN_ENEMY_ATTACK"
	AttackBlocked    Code = "ATTACK_ALREADY_BLOCKED"
	InvalidAmount    Code = "INVALID_AMOUNT"
	InvalidElement   Code = "INVALID_ELEMENT"
	NoAttack         Code = "INSUFFICIENT_ATTACK"
	NoBlock          Code = "INSUFFICIENT_BLOCK"
	OverUnassign     Code = "OVER_UNASSIGN"
	CannotTarget     Code = "CANNOT_TARGET"
	DamageAssigned   Code = "DAMAGE_ALREADY_ASSIGNED"
	DamageNotNeeded  Code = "DAMAGE_NOT_ASSIGNABLE"
	UnitCannotTake   Code = "UNIT_CANNOT_TAKE_DAMAGE"
	DamagePending    Code = "DAMAGE_PENDING"
	NoPendingChoice  Code = "NO_PENDING_CHOICE"
	BadChoiceIndex   Code = "INVALID_CHOICE_INDEX"
	NoPendingDiscard Code = "NO_PENDING_DISCARD"
	InvalidDiscard   Code = "INVALID_DISCARD"
	NoPendingMine    Code = "NO_PENDING_DEEP_MINE"
	InvalidMineColor Code = "INVALID_DEEP_MINE_COLOR"
	RoundAnnounced   Code = "END_OF_ROUND_ALREADY_ANNOUNCED"
	DeckNotEmpty     Code = "DECK_NOT_EMPTY"
)

// Codes lists every code.
func Codes() []Code {
	return []Code{
		GameOver, UnknownPlayer, WrongGamePhase, NotYourTurn, ChoicePending, DiscardPending,
		DeepMinePending, NothingToUndo, UnknownAction, ActionTaken, InCombat, NotInCombat,
		EffectNotUsable, CardNotInHand, CardNotPlayable, InvalidSideways, InvalidMana,
		NoCrystal, DieUnavailable, SourceLimit, NoManaToken, WrongTimeOfDay, NotAdjacent,
		UnknownHex, Impassable, InsufficientMove, AlreadyCombatted, NoEnemies, UnitNotInOffer,
		CannotRecruit, NoInfluence, NoCommandToken, UnknownUnit, UnitNotReady, UnitWounded,
		UnitNotWounded, UnknownAbility, AbilityTiming, NoHealing, UnknownSkill, SkillCooldown,
		SkillCombatOnly, TacticTaken, TacticChosen, WrongCombatPhase, UnknownEnemy,
		EnemyDefeated, UnknownAttack, AttackBlocked, InvalidAmount, InvalidElement, NoAttack,
		NoBlock, OverUnassign, CannotTarget, DamageAssigned, DamageNotNeeded, UnitCannotTake,
		DamagePending, NoPendingChoice, BadChoiceIndex, NoPendingDiscard, InvalidDiscard,
		NoPendingMine, InvalidMineColor, RoundAnnounced, DeckNotEmpty,
	}
}

// Error explains a rejection.
type Error struct {
	Code    Code              `json:"code"`
	Reason  string            `json:"reason"`
	Details map[string]string `json:"details,omitempty"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Reason)
}

// Result is the outcome of validating one action.
type Result struct {
	Valid bool   `json:"valid"`
	Error *Error `json:"error,omitempty"`
}

// Valid is the passing result.
func Valid() Result {
	return Result{Valid: true}
}

// Invalid is a rejection with the given code.
func Invalid(code Code, format string, args ...any) Result {
	return Result{Error: &Error{Code: code, Reason: fmt.Sprintf(format, args...)}}
}

// WithDetail adds a detail to a rejection.
func (r Result) WithDetail(key, value string) Result {
	if r.Error == nil {
		return r
	}
	e := *r.Error
	details := make(map[string]string, len(e.Details)+1)
	for k, v := range e.Details {
		details[k] = v
	}
	details[key] = value
	e.Details = details
	r.Error = &e
	return r
}

// Validator checks one concern of an action. It returns Valid for actions
// outside its concern.
type Validator func(s state.GameState, playerID string, a actions.Action) Result
