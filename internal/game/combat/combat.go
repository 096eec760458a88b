// Package combat is the combat sub-engine: the phase machine
// ranged_siege → block → assign_damage → attack and the per-enemy attack and
// block pools players allocate into.
//
// Functions take the state by value and return a new one. Check* functions
// report the reason an allocation is illegal; validators call them and the
// matching mutators return the same errors.
package combat

import (
	"errors"
	"fmt"
	"slices"

	"github.com/mage-knight-digital/MageKnight-sub005/internal/game/catalog"
	"github.com/mage-knight-digital/MageKnight-sub005/internal/game/events"
	"github.com/mage-knight-digital/MageKnight-sub005/internal/game/modifiers"
	"github.com/mage-knight-digital/MageKnight-sub005/internal/game/state"
)

var (
	ErrNotInCombat          = errors.New("not in combat")
	ErrAlreadyInCombat      = errors.New("already in combat")
	ErrWrongPhase           = errors.New("not allowed in this combat phase")
	ErrUnknownEnemy         = errors.New("unknown enemy")
	ErrEnemyDefeated        = errors.New("enemy already defeated")
	ErrUnknownAttack        = errors.New("unknown enemy attack")
	ErrAttackBlocked        = errors.New("attack already blocked")
	ErrInvalidAmount        = errors.New("amount must be positive")
	ErrInvalidElement       = errors.New("unknown element or attack type")
	ErrInsufficientAttack   = errors.New("not enough unassigned attack")
	ErrInsufficientBlock    = errors.New("not enough unassigned block")
	ErrOverUnassign         = errors.New("more than is assigned")
	ErrCannotTarget         = errors.New("attack cannot reach this enemy now")
	ErrDamageAssigned       = errors.New("damage of this attack already assigned")
	ErrDamageNotAssignable  = errors.New("attack was blocked or enemy defeated")
	ErrUnitCannotTakeDamage = errors.New("unit cannot be assigned damage")
	ErrDamagePending        = errors.New("unblocked attacks still need damage assigned")
)

// StartOptions describes where and why combat starts.
type StartOptions struct {
	HexKey    string
	Fortified bool
	Context   state.CombatContext
}

// Start begins combat against enemies. Instance ids are combat scoped and
// numbered from zero.
func Start(s state.GameState, playerID string, enemies []state.EnemyID, opts StartOptions) (state.GameState, []events.Event, error) {
	if s.Combat != nil {
		return s, nil, ErrAlreadyInCombat
	}
	if len(enemies) == 0 {
		return s, nil, fmt.Errorf("start combat: %w", ErrUnknownEnemy)
	}
	s = s.Clone()
	ctx := opts.Context
	if ctx == "" {
		ctx = state.ContextStandard
	}
	c := &state.CombatState{
		Phase:             state.PhaseRangedSiege,
		IsAtFortifiedSite: opts.Fortified,
		HexKey:            opts.HexKey,
		Context:           ctx,
		NightRules:        !s.IsDay(),
	}
	for i, id := range enemies {
		def, ok := catalog.Enemy(id)
		if !ok {
			return s, nil, fmt.Errorf("start combat: %w: %s", ErrUnknownEnemy, id)
		}
		c.Enemies = append(c.Enemies, state.CombatEnemy{
			InstanceID:            state.EnemyInstanceID(i),
			EnemyID:               id,
			AttacksBlocked:        make([]bool, len(def.Attacks)),
			AttacksDamageAssigned: make([]bool, len(def.Attacks)),
		})
	}
	s.Combat = c
	s.UpdatePlayer(playerID, func(p *state.Player) {
		p.Accumulator = state.CombatAccumulator{}
		p.HasCombattedThisTurn = true
	})
	evs := []events.Event{
		events.New(events.CombatStarted, playerID).WithAmount(len(enemies)).WithMeta("context", string(ctx)),
	}
	return s, evs, nil
}

func enemyFor(s state.GameState, instanceID string) (state.CombatEnemy, int, error) {
	if s.Combat == nil {
		return state.CombatEnemy{}, -1, ErrNotInCombat
	}
	e, i, ok := s.Combat.Enemy(instanceID)
	if !ok {
		return state.CombatEnemy{}, -1, fmt.Errorf("%w: %s", ErrUnknownEnemy, instanceID)
	}
	return e, i, nil
}

// UnassignedDamage lists the attack keys of undefeated enemies whose attacks
// were neither blocked nor assigned as damage.
func UnassignedDamage(s state.GameState) []string {
	if s.Combat == nil {
		return nil
	}
	var out []string
	for _, e := range s.Combat.Enemies {
		if e.IsDefeated {
			continue
		}
		for i := range e.AttacksBlocked {
			if !e.AttacksBlocked[i] && !e.AttacksDamageAssigned[i] {
				out = append(out, state.AttackKey(e.InstanceID, i))
			}
		}
	}
	return out
}

// CheckEndPhase reports whether the current phase may end.
func CheckEndPhase(s state.GameState) error {
	if s.Combat == nil {
		return ErrNotInCombat
	}
	if s.Combat.Phase == state.PhaseAssignDamage && len(UnassignedDamage(s)) > 0 {
		return ErrDamagePending
	}
	return nil
}

func phaseChanged(playerID string, from, to state.CombatPhase) events.Event {
	return events.New(events.CombatPhaseChanged, playerID).WithMeta("from", string(from)).WithMeta("to", string(to))
}

// EndPhase resolves the current phase and moves to the next one. Ending the
// attack phase, or defeating every enemy, ends combat.
func EndPhase(s state.GameState, playerID string) (state.GameState, []events.Event, error) {
	if err := CheckEndPhase(s); err != nil {
		return s, nil, err
	}
	s = s.Clone()
	var evs []events.Event
	from := s.Combat.Phase
	switch from {
	case state.PhaseRangedSiege:
		s, evs = resolveAttacks(s, playerID)
		if s.Combat.AllDefeated() {
			return end(s, playerID, evs)
		}
		s.Combat.Phase = state.PhaseBlock
	case state.PhaseBlock:
		s, evs = resolveBlocks(s, playerID)
		s.Combat.Phase = state.PhaseAssignDamage
		if len(UnassignedDamage(s)) == 0 {
			evs = append(evs, phaseChanged(playerID, from, state.PhaseAssignDamage))
			from = state.PhaseAssignDamage
			s.Combat.Phase = state.PhaseAttack
		}
	case state.PhaseAssignDamage:
		s.Combat.Phase = state.PhaseAttack
	case state.PhaseAttack:
		s, evs = resolveAttacks(s, playerID)
		return end(s, playerID, evs)
	default:
		panic("combat: unknown phase " + string(from))
	}
	evs = append(evs, phaseChanged(playerID, from, s.Combat.Phase))
	return s, evs, nil
}

// End finishes combat early, as when every enemy is defeated.
func End(s state.GameState, playerID string) (state.GameState, []events.Event, error) {
	if s.Combat == nil {
		return s, nil, ErrNotInCombat
	}
	return end(s.Clone(), playerID, nil)
}

// end clears combat: defeated enemies leave the map, a site whose defenders
// all fell is conquered, combat modifiers expire and the accumulator resets.
func end(s state.GameState, playerID string, evs []events.Event) (state.GameState, []events.Event, error) {
	c := s.Combat
	victory := c.AllDefeated()
	if hex, ok := s.Map.Hexes[c.HexKey]; ok && c.HexKey != "" {
		var remaining []state.EnemyID
		defeated := map[state.EnemyID]int{}
		for _, e := range c.Enemies {
			if e.IsDefeated {
				defeated[e.EnemyID]++
			}
		}
		for _, id := range hex.Enemies {
			if defeated[id] > 0 {
				defeated[id]--
				continue
			}
			remaining = append(remaining, id)
		}
		hex.Enemies = remaining
		if victory && hex.Site != nil && c.Context == state.ContextSiteAssault && !hex.Site.Conquered {
			site := *hex.Site
			site.Conquered = true
			site.Owner = playerID
			hex.Site = &site
			evs = append(evs, events.New(events.SiteConquered, playerID).WithTarget(c.HexKey).WithMeta("site", string(site.Type)))
		}
		s.Map.Hexes[c.HexKey] = hex
	}
	var expired int
	s, expired = modifiers.ExpireCombat(s)
	if expired > 0 {
		evs = append(evs, events.New(events.ModifiersExpired, playerID).WithAmount(expired).WithMeta("duration", string(state.DurationCombat)))
	}
	s.UpdatePlayer(playerID, func(p *state.Player) {
		p.Accumulator = state.CombatAccumulator{}
		p.Cooldowns.UsedThisCombat = nil
	})
	outcome := "retreat"
	if victory {
		outcome = "victory"
	}
	evs = append(evs, events.New(events.CombatEnded, playerID).
		WithAmount(c.FameGained).
		WithMeta("outcome", outcome).
		WithIntMeta("woundsTaken", c.WoundsTaken))
	s.Combat = nil
	return s, evs, nil
}

// defeat marks enemy i defeated and pays out fame, trackers and trophies.
func defeat(s state.GameState, playerID string, i int) (state.GameState, []events.Event) {
	e := &s.Combat.Enemies[i]
	e.IsDefeated = true
	def := catalog.MustEnemy(e.EnemyID)
	fame := def.Fame
	var bonus int
	s, bonus = modifiers.RecordDefeatForFameTracker(s, playerID, e.InstanceID)
	fame += bonus
	s.Combat.FameGained += fame
	s.UpdatePlayer(playerID, func(p *state.Player) { p.Fame += fame })
	evs := []events.Event{
		events.New(events.EnemyDefeated, playerID).WithTarget(e.InstanceID).WithSource(string(e.EnemyID)).WithAmount(fame),
		events.New(events.FameGained, playerID).WithAmount(fame),
	}
	var keep bool
	if s, keep = modifiers.ConsumeTrophy(s, playerID); keep {
		s.UpdatePlayer(playerID, func(p *state.Player) {
			p.KeptEnemyTokens = append(slices.Clone(p.KeptEnemyTokens), def.Token(s.Round))
		})
		evs = append(evs, events.New(events.TrophyKept, playerID).WithTarget(string(def.ID)))
	}
	return s, evs
}
