package state

import (
	"maps"
	"slices"
)

// Clone returns a deep copy of the state. Effect and modifier payloads are
// immutable values and are shared.
func (s GameState) Clone() GameState {
	out := s
	if s.Players != nil {
		out.Players = make([]Player, len(s.Players))
		for i, p := range s.Players {
			out.Players[i] = p.Clone()
		}
	}
	out.TurnOrder = slices.Clone(s.TurnOrder)
	out.AvailableTactics = slices.Clone(s.AvailableTactics)
	out.Map = s.Map.Clone()
	out.Source = s.Source.Copy()
	out.Offers = Offers{
		Units:           slices.Clone(s.Offers.Units),
		AdvancedActions: slices.Clone(s.Offers.AdvancedActions),
		Spells:          slices.Clone(s.Offers.Spells),
	}
	out.Decks = Decks{
		Units:           slices.Clone(s.Decks.Units),
		AdvancedActions: slices.Clone(s.Decks.AdvancedActions),
		Spells:          slices.Clone(s.Decks.Spells),
	}
	if s.Combat != nil {
		c := s.Combat.Clone()
		out.Combat = &c
	}
	out.ActiveModifiers = slices.Clone(s.ActiveModifiers)
	return out
}

// Clone returns a deep copy of the map.
func (m MapState) Clone() MapState {
	if m.Hexes == nil {
		return MapState{}
	}
	hexes := make(map[string]Hex, len(m.Hexes))
	for k, h := range m.Hexes {
		if h.Site != nil {
			site := *h.Site
			site.MineColors = slices.Clone(h.Site.MineColors)
			h.Site = &site
		}
		h.Enemies = slices.Clone(h.Enemies)
		hexes[k] = h
	}
	return MapState{Hexes: hexes}
}

// Clone returns a deep copy of the player.
func (p Player) Clone() Player {
	out := p
	if p.Position != nil {
		pos := *p.Position
		out.Position = &pos
	}
	out.Hand = slices.Clone(p.Hand)
	out.Deck = slices.Clone(p.Deck)
	out.Discard = slices.Clone(p.Discard)
	out.PlayArea = slices.Clone(p.PlayArea)
	out.PureMana = slices.Clone(p.PureMana)
	out.Units = slices.Clone(p.Units)
	out.Skills = slices.Clone(p.Skills)
	out.Cooldowns = SkillCooldowns{
		UsedThisTurn:        slices.Clone(p.Cooldowns.UsedThisTurn),
		UsedThisRound:       slices.Clone(p.Cooldowns.UsedThisRound),
		UsedThisCombat:      slices.Clone(p.Cooldowns.UsedThisCombat),
		ActiveUntilNextTurn: slices.Clone(p.Cooldowns.ActiveUntilNextTurn),
	}
	if p.Choice.Pending != nil {
		pending := *p.Choice.Pending
		pending.Options = slices.Clone(p.Choice.Pending.Options)
		out.Choice.Pending = &pending
	}
	if p.PendingDiscard != nil {
		pd := *p.PendingDiscard
		out.PendingDiscard = &pd
	}
	if p.PendingDeepMine != nil {
		dm := PendingDeepMine{Colors: slices.Clone(p.PendingDeepMine.Colors)}
		out.PendingDeepMine = &dm
	}
	out.UsedDieIDs = slices.Clone(p.UsedDieIDs)
	out.KeptEnemyTokens = slices.Clone(p.KeptEnemyTokens)
	return out
}

// Clone returns a deep copy of the combat state.
func (c CombatState) Clone() CombatState {
	out := c
	if c.Enemies != nil {
		out.Enemies = make([]CombatEnemy, len(c.Enemies))
		for i, e := range c.Enemies {
			e.AttacksBlocked = slices.Clone(e.AttacksBlocked)
			e.AttacksDamageAssigned = slices.Clone(e.AttacksDamageAssigned)
			out.Enemies[i] = e
		}
	}
	out.PendingDamage = maps.Clone(c.PendingDamage)
	out.PendingBlock = maps.Clone(c.PendingBlock)
	out.PendingSwiftBlock = maps.Clone(c.PendingSwiftBlock)
	return out
}
