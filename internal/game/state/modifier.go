package state

import "github.com/mage-knight-digital/MageKnight-sub005/internal/game/mana"

// Duration is how long a modifier stays in the ledger.
type Duration string

const (
	DurationTurn          Duration = "turn"
	DurationCombat        Duration = "combat"
	DurationRound         Duration = "round"
	DurationUntilConsumed Duration = "until_consumed"
	DurationPermanent     Duration = "permanent"
)

// ScopeKind says who a modifier applies to.
type ScopeKind string

const (
	ScopeSelf       ScopeKind = "self"
	ScopeAllUnits   ScopeKind = "all_units"
	ScopeUnit       ScopeKind = "unit"
	ScopeEnemy      ScopeKind = "enemy"
	ScopeAllPlayers ScopeKind = "all_players"
)

// Scope narrows a modifier to a unit or enemy when the kind needs a target.
type Scope struct {
	Kind            ScopeKind `json:"kind"`
	UnitInstanceID  string    `json:"unitInstanceId,omitempty"`
	EnemyInstanceID string    `json:"enemyInstanceId,omitempty"`
}

// SourceKind is the provenance of a modifier or choice.
type SourceKind string

const (
	SourceCard   SourceKind = "card"
	SourceSkill  SourceKind = "skill"
	SourceUnit   SourceKind = "unit"
	SourceTactic SourceKind = "tactic"
	SourceSite   SourceKind = "site"
)

// Source identifies what created a modifier or a pending choice.
type Source struct {
	Kind     SourceKind `json:"kind"`
	ID       string     `json:"id"`
	PlayerID string     `json:"playerId,omitempty"`
}

// ActiveModifier is one entry of the modifier ledger.
type ActiveModifier struct {
	ID             string         `json:"id"`
	Source         Source         `json:"source"`
	Duration       Duration       `json:"duration"`
	Scope          Scope          `json:"scope"`
	Effect         ModifierEffect `json:"effect"`
	CreatedAtRound int            `json:"createdAtRound,omitempty"`
	PlayerID       string         `json:"playerId"`
}

// ModifierKind names a modifier effect variant.
type ModifierKind string

const (
	ModUnitAbilityBonus ModifierKind = "unit_ability_bonus"
	ModDamageReduction  ModifierKind = "damage_reduction"
	ModFameTracker      ModifierKind = "fame_tracker"
	ModEndlessMana      ModifierKind = "endless_mana"
	ModRuleActive       ModifierKind = "rule_active"
	ModTerrainCost      ModifierKind = "terrain_cost"
	ModRecruitDiscount  ModifierKind = "recruit_discount"
	ModEnemyArmor       ModifierKind = "enemy_armor"
	ModKeepTrophy       ModifierKind = "keep_trophy"
)

// AllModifierKinds lists every modifier variant.
func AllModifierKinds() []ModifierKind {
	return []ModifierKind{
		ModUnitAbilityBonus, ModDamageReduction, ModFameTracker, ModEndlessMana,
		ModRuleActive, ModTerrainCost, ModRecruitDiscount, ModEnemyArmor, ModKeepTrophy,
	}
}

// ModifierEffect is the closed union of modifier payloads.
type ModifierEffect interface {
	ModifierKind() ModifierKind
	isModifierEffect()
}

// AbilityKind classifies unit abilities.
type AbilityKind string

const (
	AbilityAttack       AbilityKind = "attack"
	AbilityRangedAttack AbilityKind = "ranged_attack"
	AbilitySiegeAttack  AbilityKind = "siege_attack"
	AbilityBlock        AbilityKind = "block"
	AbilityMove         AbilityKind = "move"
	AbilityInfluence    AbilityKind = "influence"
	AbilityHeal         AbilityKind = "heal"
	AbilityReadyUnit    AbilityKind = "ready_unit"
)

// UnitAbilityBonus adds Bonus to the next unit ability activation of kind
// Ability and is consumed by it.
type UnitAbilityBonus struct {
	Bonus   int         `json:"bonus"`
	Ability AbilityKind `json:"ability"`
}

// DamageReduction reduces the damage of the first enemy attack it applies to.
// Physical applies to physical attacks, NonPhysical to fire, ice and cold
// fire attacks.
type DamageReduction struct {
	Physical    int `json:"physical,omitempty"`
	NonPhysical int `json:"nonPhysical,omitempty"`
}

// FameTracker grants fame for each enemy defeated while it is active, up to
// MaxEnemies. DefeatedEnemies is the accumulator.
type FameTracker struct {
	FamePerEnemy    int      `json:"famePerEnemy"`
	MaxEnemies      int      `json:"maxEnemies"`
	DefeatedEnemies []string `json:"defeatedEnemies,omitempty"`
}

// EndlessMana makes mana of the listed colours free to pay.
type EndlessMana struct {
	Colors []mana.Color `json:"colors"`
}

// Rule is a rule switch toggled by RuleActive.
type Rule string

const (
	RuleIgnoreFortification Rule = "ignore_fortification"
	RuleExtraSourceDie      Rule = "extra_source_die"
)

// RuleActive switches a rule on while the modifier lives.
type RuleActive struct {
	Rule Rule `json:"rule"`
}

// TerrainCost lowers the movement cost of a terrain ("" for all) by Amount,
// never below Minimum.
type TerrainCost struct {
	Terrain Terrain `json:"terrain,omitempty"`
	Amount  int     `json:"amount"`
	Minimum int     `json:"minimum"`
}

// RecruitDiscount lowers the influence cost of the next unit recruited.
type RecruitDiscount struct {
	Amount int `json:"amount"`
}

// EnemyArmor lowers the armor of the scoped enemy, never below Minimum.
type EnemyArmor struct {
	Amount  int `json:"amount"`
	Minimum int `json:"minimum"`
}

// KeepTrophy keeps a frozen copy of the next enemy the player defeats.
type KeepTrophy struct{}

func (UnitAbilityBonus) ModifierKind() ModifierKind { return ModUnitAbilityBonus }
func (DamageReduction) ModifierKind() ModifierKind  { return ModDamageReduction }
func (FameTracker) ModifierKind() ModifierKind      { return ModFameTracker }
func (EndlessMana) ModifierKind() ModifierKind      { return ModEndlessMana }
func (RuleActive) ModifierKind() ModifierKind       { return ModRuleActive }
func (TerrainCost) ModifierKind() ModifierKind      { return ModTerrainCost }
func (RecruitDiscount) ModifierKind() ModifierKind  { return ModRecruitDiscount }
func (EnemyArmor) ModifierKind() ModifierKind       { return ModEnemyArmor }
func (KeepTrophy) ModifierKind() ModifierKind       { return ModKeepTrophy }

func (UnitAbilityBonus) isModifierEffect() {}
func (DamageReduction) isModifierEffect()  {}
func (FameTracker) isModifierEffect()      {}
func (EndlessMana) isModifierEffect()      {}
func (RuleActive) isModifierEffect()       {}
func (TerrainCost) isModifierEffect()      {}
func (RecruitDiscount) isModifierEffect()  {}
func (EnemyArmor) isModifierEffect()       {}
func (KeepTrophy) isModifierEffect()       {}
