package state

import "fmt"

// CombatPhase is the step of the combat state machine.
type CombatPhase string

const (
	PhaseRangedSiege  CombatPhase = "ranged_siege"
	PhaseBlock        CombatPhase = "block"
	PhaseAssignDamage CombatPhase = "assign_damage"
	PhaseAttack       CombatPhase = "attack"
)

// CombatContext says why combat started.
type CombatContext string

const (
	ContextStandard    CombatContext = "standard"
	ContextSiteAssault CombatContext = "site_assault"
	ContextChallenge   CombatContext = "challenge"
)

// EnemyAbility is a printed enemy ability.
type EnemyAbility string

const (
	EnemySwift     EnemyAbility = "swift"
	EnemyBrutal    EnemyAbility = "brutal"
	EnemyFortified EnemyAbility = "fortified"
	EnemyPoison    EnemyAbility = "poison"
)

// EnemyAttack is one attack printed on an enemy token.
type EnemyAttack struct {
	Value   int     `json:"value" yaml:"value"`
	Element Element `json:"element" yaml:"element"`
}

// CombatEnemy is an enemy taking part in the current combat. Definition data
// is looked up by EnemyID.
type CombatEnemy struct {
	InstanceID            string  `json:"instanceId"`
	EnemyID               EnemyID `json:"enemyId"`
	IsBlocked             bool    `json:"isBlocked,omitempty"`
	IsDefeated            bool    `json:"isDefeated,omitempty"`
	AttacksBlocked        []bool  `json:"attacksBlocked"`
	AttacksDamageAssigned []bool  `json:"attacksDamageAssigned"`
}

// CombatAccumulator is a player's attack and block gathered this combat. The
// spendable pool is accumulated minus assigned. SwiftBlock is the part of
// Block that counts twice against Swift enemies; AssignedSwiftBlock is the
// part of it already sitting on some attack.
type CombatAccumulator struct {
	Attack             AttackPool      `json:"attack,omitzero"`
	AssignedAttack     AttackPool      `json:"assignedAttack,omitzero"`
	Block              ElementalValues `json:"block,omitzero"`
	AssignedBlock      ElementalValues `json:"assignedBlock,omitzero"`
	SwiftBlock         ElementalValues `json:"swiftBlock,omitzero"`
	AssignedSwiftBlock ElementalValues `json:"assignedSwiftBlock,omitzero"`
}

// AvailableAttack is the unassigned attack of type t and element e.
func (a CombatAccumulator) AvailableAttack(t AttackType, e Element) int {
	return a.Attack.Get(t).Get(e) - a.AssignedAttack.Get(t).Get(e)
}

// AvailableBlock is the unassigned block of element e.
func (a CombatAccumulator) AvailableBlock(e Element) int {
	return a.Block.Get(e) - a.AssignedBlock.Get(e)
}

// AvailableSwiftBlock is the unassigned block of element e that counts twice
// against Swift.
func (a CombatAccumulator) AvailableSwiftBlock(e Element) int {
	return a.SwiftBlock.Get(e) - a.AssignedSwiftBlock.Get(e)
}

// CombatState is the combat sub-state. PendingDamage is keyed by enemy
// instance id, PendingBlock by AttackKey. PendingSwiftBlock holds, per attack,
// how much of its pending block counts twice against Swift.
type CombatState struct {
	Phase             CombatPhase                `json:"phase"`
	Enemies           []CombatEnemy              `json:"enemies"`
	PendingDamage     map[string]AttackPool      `json:"pendingDamage,omitempty"`
	PendingBlock      map[string]ElementalValues `json:"pendingBlock,omitempty"`
	PendingSwiftBlock map[string]ElementalValues `json:"pendingSwiftBlock,omitempty"`
	IsAtFortifiedSite bool                       `json:"isAtFortifiedSite,omitempty"`
	HexKey            string                     `json:"hexKey,omitempty"`
	Context           CombatContext              `json:"context"`
	NightRules        bool                       `json:"nightRules,omitempty"`
	FameGained        int                        `json:"fameGained,omitempty"`
	WoundsTaken       int                        `json:"woundsTaken,omitempty"`
}

// Enemy returns the enemy with the given instance id.
func (c *CombatState) Enemy(instanceID string) (CombatEnemy, int, bool) {
	if c == nil {
		return CombatEnemy{}, -1, false
	}
	for i, e := range c.Enemies {
		if e.InstanceID == instanceID {
			return e, i, true
		}
	}
	return CombatEnemy{}, -1, false
}

// AllDefeated reports whether every enemy is defeated.
func (c *CombatState) AllDefeated() bool {
	for _, e := range c.Enemies {
		if !e.IsDefeated {
			return false
		}
	}
	return true
}

// AttackKey keys PendingBlock. The first attack of an enemy uses the bare
// instance id.
func AttackKey(instanceID string, attackIndex int) string {
	if attackIndex == 0 {
		return instanceID
	}
	return fmt.Sprintf("%s#%d", instanceID, attackIndex)
}

// EnemyInstanceID is the combat-scoped id of the i-th enemy.
func EnemyInstanceID(i int) string {
	return fmt.Sprintf("enemy_%d", i)
}
