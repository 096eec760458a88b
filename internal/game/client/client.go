// Package client projects a GameState into what one player is allowed to
// see. Hands of other players and the order of every deck are replaced by
// counts; enemies in combat carry only their printed attributes.
package client

import (
	"slices"

	"github.com/mage-knight-digital/MageKnight-sub005/internal/game/catalog"
	"github.com/mage-knight-digital/MageKnight-sub005/internal/game/combat"
	"github.com/mage-knight-digital/MageKnight-sub005/internal/game/mana"
	"github.com/mage-knight-digital/MageKnight-sub005/internal/game/state"
)

// ClientGameState is the redacted game as seen by Viewer.
type ClientGameState struct {
	GameID                string             `json:"gameId" jsonschema:"required"`
	Viewer                string             `json:"viewer" jsonschema:"required,description=Player this projection was built for"`
	Phase                 state.GamePhase    `json:"phase" jsonschema:"required,enum=tactics_selection,enum=player_turns,enum=game_over"`
	Round                 int                `json:"round" jsonschema:"required,minimum=1"`
	TimeOfDay             state.TimeOfDay    `json:"timeOfDay" jsonschema:"required,enum=day,enum=night"`
	CurrentPlayerID       string             `json:"currentPlayerId,omitempty"`
	TurnOrder             []string           `json:"turnOrder"`
	EndOfRoundAnnouncedBy string             `json:"endOfRoundAnnouncedBy,omitempty"`
	AvailableTactics      []state.TacticID   `json:"availableTactics,omitempty"`
	Players               []ClientPlayer     `json:"players" jsonschema:"required"`
	Map                   []state.Hex        `json:"map"`
	Source                []mana.SourceDie   `json:"source"`
	Offers                state.Offers       `json:"offers"`
	DeckCounts            DeckCounts         `json:"deckCounts"`
	Modifiers             []ClientModifier   `json:"modifiers,omitempty"`
	Combat                *ClientCombatState `json:"combat,omitempty"`
}

// DeckCounts is the size of each face-down pile.
type DeckCounts struct {
	Units           int `json:"units"`
	AdvancedActions int `json:"advancedActions"`
	Spells          int `json:"spells"`
}

// ClientPlayer is one player. Hand is set only for the viewer.
type ClientPlayer struct {
	ID              string                  `json:"id" jsonschema:"required"`
	Hero            state.HeroID            `json:"hero"`
	Position        *state.HexCoord         `json:"position,omitempty"`
	Fame            int                     `json:"fame"`
	Reputation      int                     `json:"reputation" jsonschema:"minimum=-7,maximum=7"`
	Level           int                     `json:"level"`
	Armor           int                     `json:"armor"`
	HandLimit       int                     `json:"handLimit"`
	CommandTokens   int                     `json:"commandTokens"`
	Hand            []state.CardID          `json:"hand,omitempty" jsonschema:"description=Only present for the viewer"`
	HandCount       int                     `json:"handCount"`
	DeckCount       int                     `json:"deckCount"`
	Discard         []state.CardID          `json:"discard,omitempty"`
	PlayArea        []state.CardID          `json:"playArea,omitempty"`
	Crystals        mana.Crystals           `json:"crystals"`
	PureMana        []mana.Token            `json:"pureMana,omitempty"`
	Units           []state.PlayerUnit      `json:"units,omitempty"`
	Skills          []state.SkillID         `json:"skills,omitempty"`
	Cooldowns       state.SkillCooldowns    `json:"skillCooldowns"`
	MovePoints      int                     `json:"movePoints"`
	InfluencePoints int                     `json:"influencePoints"`
	HealingPoints   int                     `json:"healingPoints"`
	Accumulator     state.CombatAccumulator `json:"combatAccumulator"`
	TacticID        state.TacticID          `json:"tacticId,omitempty"`
	Wounds          int                     `json:"wounds"`
	KeptEnemies     []state.KeptEnemyToken  `json:"keptEnemies,omitempty"`
	// Pending is the kind of input the player owes: choice, discard or
	// deep_mine.
	Pending string `json:"pending,omitempty" jsonschema:"enum=choice,enum=discard,enum=deep_mine"`
}

// ClientModifier is a ledger entry without its internal payload.
type ClientModifier struct {
	ID       string             `json:"id"`
	Kind     state.ModifierKind `json:"kind"`
	Source   state.Source       `json:"source"`
	Duration state.Duration     `json:"duration"`
	PlayerID string             `json:"playerId"`
}

// ClientEnemy is an enemy in combat with its printed values.
type ClientEnemy struct {
	InstanceID     string               `json:"instanceId" jsonschema:"required"`
	EnemyID        state.EnemyID        `json:"enemyId" jsonschema:"required"`
	Name           string               `json:"name"`
	Armor          int                  `json:"armor"`
	Fame           int                  `json:"fame"`
	Attacks        []state.EnemyAttack  `json:"attacks"`
	Abilities      []state.EnemyAbility `json:"abilities,omitempty"`
	Resistances    []state.Element      `json:"resistances,omitempty"`
	IsBlocked      bool                 `json:"isBlocked,omitempty"`
	IsDefeated     bool                 `json:"isDefeated,omitempty"`
	AttacksBlocked []bool               `json:"attacksBlocked"`
}

// ClientCombatState is the public part of a combat.
type ClientCombatState struct {
	Phase             state.CombatPhase                `json:"phase" jsonschema:"enum=ranged_siege,enum=block,enum=assign_damage,enum=attack"`
	Context           state.CombatContext              `json:"context"`
	Enemies           []ClientEnemy                    `json:"enemies"`
	PendingDamage     map[string]state.AttackPool      `json:"pendingDamage,omitempty"`
	PendingBlock      map[string]state.ElementalValues `json:"pendingBlock,omitempty"`
	IsAtFortifiedSite bool                             `json:"isAtFortifiedSite,omitempty"`
	FameGained        int                              `json:"fameGained,omitempty"`
}

// Project builds the view of s for viewer. The result shares no memory
// with s.
func Project(s state.GameState, viewer string) ClientGameState {
	s = s.Clone()
	out := ClientGameState{
		GameID:                s.GameID,
		Viewer:                viewer,
		Phase:                 s.Phase,
		Round:                 s.Round,
		TimeOfDay:             s.TimeOfDay,
		CurrentPlayerID:       s.CurrentPlayerID(),
		TurnOrder:             s.TurnOrder,
		EndOfRoundAnnouncedBy: s.EndOfRoundAnnouncedBy,
		AvailableTactics:      s.AvailableTactics,
		Source:                s.Source.Dice,
		Offers:                s.Offers,
		DeckCounts: DeckCounts{
			Units:           len(s.Decks.Units),
			AdvancedActions: len(s.Decks.AdvancedActions),
			Spells:          len(s.Decks.Spells),
		},
	}
	for _, p := range s.Players {
		out.Players = append(out.Players, player(p, p.ID == viewer))
	}
	keys := make([]string, 0, len(s.Map.Hexes))
	for k := range s.Map.Hexes {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		out.Map = append(out.Map, s.Map.Hexes[k])
	}
	for _, m := range s.ActiveModifiers {
		out.Modifiers = append(out.Modifiers, ClientModifier{
			ID:       m.ID,
			Kind:     m.Effect.ModifierKind(),
			Source:   m.Source,
			Duration: m.Duration,
			PlayerID: m.PlayerID,
		})
	}
	if s.Combat != nil {
		out.Combat = combatView(s)
	}
	return out
}

func player(c state.Player, self bool) ClientPlayer {
	out := ClientPlayer{
		ID:              c.ID,
		Hero:            c.Hero,
		Position:        c.Position,
		Fame:            c.Fame,
		Reputation:      c.Reputation,
		Level:           c.Level,
		Armor:           c.Armor,
		HandLimit:       c.HandLimit,
		CommandTokens:   c.CommandTokens,
		HandCount:       len(c.Hand),
		DeckCount:       len(c.Deck),
		Discard:         c.Discard,
		PlayArea:        c.PlayArea,
		Crystals:        c.Crystals,
		PureMana:        c.PureMana,
		Units:           c.Units,
		Skills:          c.Skills,
		Cooldowns:       c.Cooldowns,
		MovePoints:      c.MovePoints,
		InfluencePoints: c.InfluencePoints,
		HealingPoints:   c.HealingPoints,
		Accumulator:     c.Accumulator,
		TacticID:        c.TacticID,
		Wounds:          c.Wounds(),
		KeptEnemies:     c.KeptEnemyTokens,
	}
	if self {
		out.Hand = c.Hand
	}
	switch {
	case c.Choice.IsAwaiting():
		out.Pending = "choice"
	case c.PendingDiscard != nil:
		out.Pending = "discard"
	case c.PendingDeepMine != nil:
		out.Pending = "deep_mine"
	}
	return out
}

func combatView(s state.GameState) *ClientCombatState {
	c := s.Combat
	out := &ClientCombatState{
		Phase:             c.Phase,
		Context:           c.Context,
		PendingDamage:     c.PendingDamage,
		PendingBlock:      c.PendingBlock,
		IsAtFortifiedSite: c.IsAtFortifiedSite,
		FameGained:        c.FameGained,
	}
	for _, e := range c.Enemies {
		def := catalog.MustEnemy(e.EnemyID)
		out.Enemies = append(out.Enemies, ClientEnemy{
			InstanceID:     e.InstanceID,
			EnemyID:        e.EnemyID,
			Name:           def.Name,
			Armor:          combat.EnemyArmor(s, e),
			Fame:           def.Fame,
			Attacks:        slices.Clone(def.Attacks),
			Abilities:      slices.Clone(def.Abilities),
			Resistances:    slices.Clone(def.Resistances),
			IsBlocked:      e.IsBlocked,
			IsDefeated:     e.IsDefeated,
			AttacksBlocked: e.AttacksBlocked,
		})
	}
	return out
}
