package state

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/mage-knight-digital/MageKnight-sub005/internal/game/mana"
)

// UnitState is whether a unit can still be activated this round.
type UnitState string

const (
	UnitReady UnitState = "ready"
	UnitSpent UnitState = "spent"
)

// PlayerUnit is a recruited unit.
type PlayerUnit struct {
	InstanceID     string    `json:"instanceId"`
	UnitID         UnitID    `json:"unitId"`
	State          UnitState `json:"state"`
	IsWounded      bool      `json:"isWounded,omitempty"`
	UsedResistance bool      `json:"usedResistance,omitempty"`
}

// SkillCooldowns tracks used skills per reset boundary.
type SkillCooldowns struct {
	UsedThisTurn        []SkillID `json:"usedThisTurn,omitempty"`
	UsedThisRound       []SkillID `json:"usedThisRound,omitempty"`
	UsedThisCombat      []SkillID `json:"usedThisCombat,omitempty"`
	ActiveUntilNextTurn []SkillID `json:"activeUntilNextTurn,omitempty"`
}

// ChoiceState is the state of a player's choice slot.
type ChoiceState string

const (
	ChoiceIdle     ChoiceState = "idle"
	ChoiceAwaiting ChoiceState = "awaiting_choice"
)

// PendingChoice is an effect resolution paused on a player pick.
type PendingChoice struct {
	Source  Source   `json:"source"`
	Options []Effect `json:"options"`
}

// ChoiceSlot holds at most one pending choice. A nested choice replaces the
// one that produced it.
type ChoiceSlot struct {
	State   ChoiceState    `json:"state"`
	Pending *PendingChoice `json:"pending,omitempty"`
}

// Idle is the empty choice slot.
func Idle() ChoiceSlot {
	return ChoiceSlot{State: ChoiceIdle}
}

// Awaiting returns a slot waiting on choice.
func Awaiting(choice PendingChoice) ChoiceSlot {
	return ChoiceSlot{State: ChoiceAwaiting, Pending: &choice}
}

// IsAwaiting reports whether a choice must be resolved.
func (c ChoiceSlot) IsAwaiting() bool {
	return c.State == ChoiceAwaiting && c.Pending != nil
}

// PendingDiscard is a discard cost waiting on the player's card selection.
type PendingDiscard struct {
	Source      Source `json:"source"`
	Count       int    `json:"count"`
	AllowWounds bool   `json:"allowWounds,omitempty"`
	Then        Effect `json:"then"`
}

// PendingDeepMine waits on the crystal colour picked at a deep mine.
type PendingDeepMine struct {
	Colors []mana.Color `json:"colors"`
}

// KeptEnemyToken is a frozen copy of an enemy definition kept by a player.
type KeptEnemyToken struct {
	EnemyID     EnemyID        `json:"enemyId"`
	Name        string         `json:"name"`
	Armor       int            `json:"armor"`
	Fame        int            `json:"fame"`
	Attacks     []EnemyAttack  `json:"attacks"`
	Abilities   []EnemyAbility `json:"abilities,omitempty"`
	Resistances []Element      `json:"resistances,omitempty"`
	KeptAtRound int            `json:"keptAtRound"`
}

// Player is one hero and everything the player controls.
type Player struct {
	ID            string    `json:"id"`
	Hero          HeroID    `json:"hero"`
	Position      *HexCoord `json:"position,omitempty"`
	Fame          int       `json:"fame,omitempty"`
	Reputation    int       `json:"reputation,omitempty"`
	Level         int       `json:"level"`
	Armor         int       `json:"armor"`
	HandLimit     int       `json:"handLimit"`
	CommandTokens int       `json:"commandTokens"`

	Hand      []CardID       `json:"hand,omitempty"`
	Deck      []CardID       `json:"deck,omitempty"`
	Discard   []CardID       `json:"discard,omitempty"`
	PlayArea  []CardID       `json:"playArea,omitempty"`
	Crystals  mana.Crystals  `json:"crystals,omitzero"`
	PureMana  []mana.Token   `json:"pureMana,omitempty"`
	Units     []PlayerUnit   `json:"units,omitempty"`
	Skills    []SkillID      `json:"skills,omitempty"`
	Cooldowns SkillCooldowns `json:"skillCooldowns"`

	MovePoints      int               `json:"movePoints,omitempty"`
	InfluencePoints int               `json:"influencePoints,omitempty"`
	HealingPoints   int               `json:"healingPoints,omitempty"`
	Accumulator     CombatAccumulator `json:"combatAccumulator,omitzero"`

	Choice          ChoiceSlot       `json:"choice"`
	PendingDiscard  *PendingDiscard  `json:"pendingDiscard,omitempty"`
	PendingDeepMine *PendingDeepMine `json:"pendingDeepMine,omitempty"`

	UsedDieIDs             []string         `json:"usedDieIds,omitempty"`
	HasMovedThisTurn       bool             `json:"hasMovedThisTurn,omitempty"`
	HasTakenActionThisTurn bool             `json:"hasTakenActionThisTurn,omitempty"`
	HasCombattedThisTurn   bool             `json:"hasCombattedThisTurn,omitempty"`
	TacticID               TacticID         `json:"tacticId,omitempty"`
	KeptEnemyTokens        []KeptEnemyToken `json:"keptEnemyTokens,omitempty"`
}

// IsBlocked reports whether the player has a pending state that must be
// resolved before anything else.
func (p Player) IsBlocked() bool {
	return p.Choice.IsAwaiting() || p.PendingDiscard != nil || p.PendingDeepMine != nil
}

// HasSkill reports whether the player owns skill id.
func (p Player) HasSkill(id SkillID) bool {
	for _, s := range p.Skills {
		if s == id {
			return true
		}
	}
	return false
}

// Unit returns the unit with the given instance id.
func (p Player) Unit(instanceID string) (PlayerUnit, int, bool) {
	for i, u := range p.Units {
		if u.InstanceID == instanceID {
			return u, i, true
		}
	}
	return PlayerUnit{}, -1, false
}

// HandIndex returns the index of the first copy of card in hand.
func (p Player) HandIndex(card CardID) int {
	for i, c := range p.Hand {
		if c == card {
			return i
		}
	}
	return -1
}

// CountInHand returns how many copies of card are in hand.
func (p Player) CountInHand(card CardID) int {
	n := 0
	for _, c := range p.Hand {
		if c == card {
			n++
		}
	}
	return n
}

// Wounds returns the number of wound cards in hand.
func (p Player) Wounds() int {
	return p.CountInHand(WoundCard)
}

// UnitInstanceID derives the id of the n-th unit recruited in a game,
// counting from one. Replaying a game yields the same ids.
func UnitInstanceID(gameID string, n int) string {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(fmt.Sprintf("%s/unit/%d", gameID, n))).String()
}
