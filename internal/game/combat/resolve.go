package combat

import (
	"slices"

	"github.com/mage-knight-digital/MageKnight-sub005/internal/game/catalog"
	"github.com/mage-knight-digital/MageKnight-sub005/internal/game/events"
	"github.com/mage-knight-digital/MageKnight-sub005/internal/game/modifiers"
	"github.com/mage-knight-digital/MageKnight-sub005/internal/game/state"
)

// resolveAttacks settles pending attack pools. Pools that beat the enemy's
// armor are spent and defeat it; weaker pools go back to the player.
func resolveAttacks(s state.GameState, playerID string) (state.GameState, []events.Event) {
	var evs []events.Event
	for i := range s.Combat.Enemies {
		e := s.Combat.Enemies[i]
		pool, ok := s.Combat.PendingDamage[e.InstanceID]
		if !ok || e.IsDefeated {
			continue
		}
		def := catalog.MustEnemy(e.EnemyID)
		effective := EffectiveAttack(def, pool.Elements())
		armor := EnemyArmor(s, e)
		if effective >= armor {
			s.UpdatePlayer(playerID, func(p *state.Player) {
				p.Accumulator.Attack = p.Accumulator.Attack.Minus(pool)
				p.Accumulator.AssignedAttack = p.Accumulator.AssignedAttack.Minus(pool)
			})
			var out []events.Event
			s, out = defeat(s, playerID, i)
			evs = append(evs, out...)
			continue
		}
		s.UpdatePlayer(playerID, func(p *state.Player) {
			p.Accumulator.AssignedAttack = p.Accumulator.AssignedAttack.Minus(pool)
		})
		evs = append(evs, events.New(events.AttackFailed, playerID).
			WithTarget(e.InstanceID).
			WithAmount(effective).
			WithIntMeta("armor", armor))
	}
	s.Combat.PendingDamage = nil
	return s, evs
}

// resolveBlocks settles pending block pools. Swift-counting points count
// twice, but only against the swift attack they were assigned to. Leftover
// block does not carry past the block phase.
func resolveBlocks(s state.GameState, playerID string) (state.GameState, []events.Event) {
	var evs []events.Event
	for i := range s.Combat.Enemies {
		e := &s.Combat.Enemies[i]
		if e.IsDefeated {
			continue
		}
		def := catalog.MustEnemy(e.EnemyID)
		for a, attack := range def.Attacks {
			key := state.AttackKey(e.InstanceID, a)
			pool, ok := s.Combat.PendingBlock[key]
			if !ok || e.AttacksBlocked[a] {
				continue
			}
			if def.Has(state.EnemySwift) {
				pool = pool.Plus(s.Combat.PendingSwiftBlock[key])
			}
			effective := EffectiveBlock(attack.Element, pool)
			required := BlockRequired(*e, a)
			if effective >= required {
				e.AttacksBlocked[a] = true
				evs = append(evs, events.New(events.EnemyBlocked, playerID).WithTarget(key).WithAmount(effective))
				continue
			}
			evs = append(evs, events.New(events.BlockFailed, playerID).
				WithTarget(key).
				WithAmount(effective).
				WithIntMeta("required", required))
		}
		if !slices.Contains(e.AttacksBlocked, false) {
			e.IsBlocked = true
		}
	}
	s.Combat.PendingBlock = nil
	s.Combat.PendingSwiftBlock = nil
	s.UpdatePlayer(playerID, func(p *state.Player) {
		p.Accumulator.Block = state.ElementalValues{}
		p.Accumulator.AssignedBlock = state.ElementalValues{}
		p.Accumulator.SwiftBlock = state.ElementalValues{}
		p.Accumulator.AssignedSwiftBlock = state.ElementalValues{}
	})
	return s, evs
}

// DamageAssignment sends one unblocked enemy attack to the hero, or to a
// unit when UnitInstanceID is set.
type DamageAssignment struct {
	EnemyInstanceID string
	AttackIndex     int
	UnitInstanceID  string
}

// CheckAssignDamage reports why d cannot be assigned, or nil.
func CheckAssignDamage(s state.GameState, playerID string, d DamageAssignment) error {
	if s.Combat == nil {
		return ErrNotInCombat
	}
	if s.Combat.Phase != state.PhaseAssignDamage {
		return ErrWrongPhase
	}
	e, _, err := enemyFor(s, d.EnemyInstanceID)
	if err != nil {
		return err
	}
	if d.AttackIndex < 0 || d.AttackIndex >= len(e.AttacksBlocked) {
		return ErrUnknownAttack
	}
	if e.IsDefeated || e.AttacksBlocked[d.AttackIndex] {
		return ErrDamageNotAssignable
	}
	if e.AttacksDamageAssigned[d.AttackIndex] {
		return ErrDamageAssigned
	}
	if d.UnitInstanceID != "" {
		u, _, ok := s.MustPlayer(playerID).Unit(d.UnitInstanceID)
		if !ok || u.IsWounded {
			return ErrUnitCannotTakeDamage
		}
	}
	return nil
}

// AssignDamage applies an unblocked attack. A unit absorbs its armor worth of
// damage and is wounded, or destroyed by poison; a unit resisting the
// element first absorbs its armor without a wound. What remains wounds the
// hero. Poison sends as many extra wounds to the discard pile. Taking at
// least a hand limit of wounds in one combat knocks the hero out, discarding
// every other card in hand.
func AssignDamage(s state.GameState, playerID string, d DamageAssignment) (state.GameState, []events.Event, error) {
	if err := CheckAssignDamage(s, playerID, d); err != nil {
		return s, nil, err
	}
	s = s.Clone()
	e, i, _ := s.Combat.Enemy(d.EnemyInstanceID)
	def := catalog.MustEnemy(e.EnemyID)
	attack := def.Attacks[d.AttackIndex]
	poison := def.Has(state.EnemyPoison)

	damage := EnemyAttackDamage(e, d.AttackIndex)
	var reduction int
	s, reduction, _ = modifiers.ConsumeDamageReduction(s, playerID, attack.Element)
	damage = max(0, damage-reduction)

	key := state.AttackKey(e.InstanceID, d.AttackIndex)
	evs := []events.Event{events.New(events.DamageAssigned, playerID).
		WithSource(key).
		WithTarget(d.UnitInstanceID).
		WithAmount(damage).
		WithIntMeta("reduction", reduction)}

	if d.UnitInstanceID != "" && damage > 0 {
		var out []events.Event
		damage, out = damageUnit(&s, playerID, d.UnitInstanceID, attack.Element, damage, poison)
		evs = append(evs, out...)
	}

	p := s.MustPlayer(playerID)
	wounds := 0
	if damage > 0 {
		wounds = WoundsFor(damage, false, 0, p.Armor)
	}
	if wounds > 0 {
		p.Hand = append(slices.Clone(p.Hand), repeatWound(wounds)...)
		if poison {
			p.Discard = append(slices.Clone(p.Discard), repeatWound(wounds)...)
		}
		s.Combat.WoundsTaken += wounds
		ev := events.New(events.WoundTaken, playerID).WithSource(key).WithAmount(wounds)
		if poison {
			ev = ev.WithIntMeta("poisonWounds", wounds)
		}
		if s.Combat.WoundsTaken >= p.HandLimit {
			var kept, dropped []state.CardID
			for _, c := range p.Hand {
				if c == state.WoundCard {
					kept = append(kept, c)
				} else {
					dropped = append(dropped, c)
				}
			}
			p.Hand = kept
			p.Discard = append(slices.Clone(p.Discard), dropped...)
			ev = ev.WithMeta("knockedOut", "true")
		}
		evs = append(evs, ev)
	}
	s.SetPlayer(p)
	s.Combat.Enemies[i].AttacksDamageAssigned[d.AttackIndex] = true
	return s, evs, nil
}

// damageUnit lets a unit absorb damage and returns what is left for the
// hero.
func damageUnit(s *state.GameState, playerID, instanceID string, element state.Element, damage int, poison bool) (int, []events.Event) {
	p := s.MustPlayer(playerID)
	u, idx, _ := p.Unit(instanceID)
	def := catalog.MustUnit(u.UnitID)
	var evs []events.Event
	if def.Resists(element) {
		damage -= def.Armor
		if damage <= 0 {
			return 0, nil
		}
	}
	damage = max(0, damage-def.Armor)
	p.Units = slices.Clone(p.Units)
	if poison {
		p.Units = slices.Delete(p.Units, idx, idx+1)
		evs = append(evs, events.New(events.UnitDestroyed, playerID).WithTarget(instanceID).WithMeta("cause", "poison"))
	} else {
		p.Units[idx].IsWounded = true
		evs = append(evs, events.New(events.UnitWounded, playerID).WithTarget(instanceID))
	}
	s.SetPlayer(p)
	return damage, evs
}

func repeatWound(n int) []state.CardID {
	out := make([]state.CardID, n)
	for i := range out {
		out[i] = state.WoundCard
	}
	return out
}
