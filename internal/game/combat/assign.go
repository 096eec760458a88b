package combat

import (
	"fmt"

	"github.com/mage-knight-digital/MageKnight-sub005/internal/game/catalog"
	"github.com/mage-knight-digital/MageKnight-sub005/internal/game/events"
	"github.com/mage-knight-digital/MageKnight-sub005/internal/game/state"
)

// AttackAssignment moves attack points between a player's pool and an enemy.
type AttackAssignment struct {
	EnemyInstanceID string
	AttackType      state.AttackType
	Element         state.Element
	Amount          int
}

// BlockAssignment moves block points between a player's pool and one enemy
// attack.
type BlockAssignment struct {
	EnemyInstanceID string
	AttackIndex     int
	Element         state.Element
	Amount          int
}

func (a AttackAssignment) check(s state.GameState, playerID string) (state.CombatEnemy, error) {
	if s.Combat == nil {
		return state.CombatEnemy{}, ErrNotInCombat
	}
	if s.Combat.Phase != state.PhaseRangedSiege && s.Combat.Phase != state.PhaseAttack {
		return state.CombatEnemy{}, ErrWrongPhase
	}
	if a.Amount <= 0 {
		return state.CombatEnemy{}, ErrInvalidAmount
	}
	if !a.AttackType.Valid() || !a.Element.Valid() {
		return state.CombatEnemy{}, ErrInvalidElement
	}
	e, _, err := enemyFor(s, a.EnemyInstanceID)
	if err != nil {
		return e, err
	}
	if e.IsDefeated {
		return e, ErrEnemyDefeated
	}
	return e, nil
}

// CheckAssignAttack reports why a cannot be assigned, or nil.
func CheckAssignAttack(s state.GameState, playerID string, a AttackAssignment) error {
	e, err := a.check(s, playerID)
	if err != nil {
		return err
	}
	if !CanTargetInPhase(s, playerID, e, a.AttackType) {
		return ErrCannotTarget
	}
	p, ok := s.Player(playerID)
	if !ok {
		return fmt.Errorf("unknown player %s", playerID)
	}
	if p.Accumulator.AvailableAttack(a.AttackType, a.Element) < a.Amount {
		return ErrInsufficientAttack
	}
	return nil
}

// CheckUnassignAttack reports why a cannot be taken back, or nil.
func CheckUnassignAttack(s state.GameState, playerID string, a AttackAssignment) error {
	if _, err := a.check(s, playerID); err != nil {
		return err
	}
	pending := s.Combat.PendingDamage[a.EnemyInstanceID]
	if pending.Get(a.AttackType).Get(a.Element) < a.Amount {
		return ErrOverUnassign
	}
	return nil
}

// AssignAttack moves attack points from the player's pool onto an enemy.
func AssignAttack(s state.GameState, playerID string, a AttackAssignment) (state.GameState, []events.Event, error) {
	if err := CheckAssignAttack(s, playerID, a); err != nil {
		return s, nil, err
	}
	s = s.Clone()
	s.UpdatePlayer(playerID, func(p *state.Player) {
		p.Accumulator.AssignedAttack = p.Accumulator.AssignedAttack.Add(a.AttackType, a.Element, a.Amount)
	})
	if s.Combat.PendingDamage == nil {
		s.Combat.PendingDamage = map[string]state.AttackPool{}
	}
	s.Combat.PendingDamage[a.EnemyInstanceID] = s.Combat.PendingDamage[a.EnemyInstanceID].Add(a.AttackType, a.Element, a.Amount)
	ev := events.New(events.AttackAssigned, playerID).
		WithTarget(a.EnemyInstanceID).
		WithAmount(a.Amount).
		WithMeta("attackType", string(a.AttackType)).
		WithMeta("element", string(a.Element))
	return s, []events.Event{ev}, nil
}

// UnassignAttack returns attack points from an enemy to the player's pool. An
// enemy left with nothing assigned is dropped from the pending map.
func UnassignAttack(s state.GameState, playerID string, a AttackAssignment) (state.GameState, []events.Event, error) {
	if err := CheckUnassignAttack(s, playerID, a); err != nil {
		return s, nil, err
	}
	s = s.Clone()
	s.UpdatePlayer(playerID, func(p *state.Player) {
		p.Accumulator.AssignedAttack = p.Accumulator.AssignedAttack.Add(a.AttackType, a.Element, -a.Amount)
	})
	left := s.Combat.PendingDamage[a.EnemyInstanceID].Add(a.AttackType, a.Element, -a.Amount)
	if left.IsZero() {
		delete(s.Combat.PendingDamage, a.EnemyInstanceID)
	} else {
		s.Combat.PendingDamage[a.EnemyInstanceID] = left
	}
	if len(s.Combat.PendingDamage) == 0 {
		s.Combat.PendingDamage = nil
	}
	ev := events.New(events.AttackUnassigned, playerID).
		WithTarget(a.EnemyInstanceID).
		WithAmount(a.Amount).
		WithMeta("attackType", string(a.AttackType)).
		WithMeta("element", string(a.Element))
	return s, []events.Event{ev}, nil
}

func (b BlockAssignment) key() string {
	return state.AttackKey(b.EnemyInstanceID, b.AttackIndex)
}

func (b BlockAssignment) check(s state.GameState) error {
	if s.Combat == nil {
		return ErrNotInCombat
	}
	if s.Combat.Phase != state.PhaseBlock {
		return ErrWrongPhase
	}
	if b.Amount <= 0 {
		return ErrInvalidAmount
	}
	if !b.Element.Valid() {
		return ErrInvalidElement
	}
	e, _, err := enemyFor(s, b.EnemyInstanceID)
	if err != nil {
		return err
	}
	if e.IsDefeated {
		return ErrEnemyDefeated
	}
	if b.AttackIndex < 0 || b.AttackIndex >= len(e.AttacksBlocked) {
		return ErrUnknownAttack
	}
	if e.AttacksBlocked[b.AttackIndex] {
		return ErrAttackBlocked
	}
	return nil
}

// CheckAssignBlock reports why b cannot be assigned, or nil.
func CheckAssignBlock(s state.GameState, playerID string, b BlockAssignment) error {
	if err := b.check(s); err != nil {
		return err
	}
	p, ok := s.Player(playerID)
	if !ok {
		return fmt.Errorf("unknown player %s", playerID)
	}
	if p.Accumulator.AvailableBlock(b.Element) < b.Amount {
		return ErrInsufficientBlock
	}
	return nil
}

// CheckUnassignBlock reports why b cannot be taken back, or nil.
func CheckUnassignBlock(s state.GameState, playerID string, b BlockAssignment) error {
	if err := b.check(s); err != nil {
		return err
	}
	if s.Combat.PendingBlock[b.key()].Get(b.Element) < b.Amount {
		return ErrOverUnassign
	}
	return nil
}

func (b BlockAssignment) swiftTarget(s state.GameState) bool {
	e, _, _ := s.Combat.Enemy(b.EnemyInstanceID)
	return catalog.MustEnemy(e.EnemyID).Has(state.EnemySwift)
}

// swiftShareOnAssign is how many of the b.Amount points come out of the
// Swift-counting part of the pool. A Swift attack takes those points first;
// any other attack takes plain points first.
func swiftShareOnAssign(s state.GameState, acc state.CombatAccumulator, b BlockAssignment) int {
	free := acc.AvailableSwiftBlock(b.Element)
	if b.swiftTarget(s) {
		return min(b.Amount, free)
	}
	plain := acc.AvailableBlock(b.Element) - free
	return max(0, b.Amount-plain)
}

// swiftShareOnUnassign is how many of the b.Amount points returned from an
// attack are Swift-counting ones. A Swift attack gives back plain points
// first; any other attack gives back Swift-counting points first.
func swiftShareOnUnassign(s state.GameState, b BlockAssignment) int {
	held := s.Combat.PendingSwiftBlock[b.key()].Get(b.Element)
	if b.swiftTarget(s) {
		plain := s.Combat.PendingBlock[b.key()].Get(b.Element) - held
		return max(0, b.Amount-plain)
	}
	return min(b.Amount, held)
}

func moveSwiftBlock(s *state.GameState, playerID string, b BlockAssignment, delta int) {
	if delta == 0 {
		return
	}
	s.UpdatePlayer(playerID, func(p *state.Player) {
		p.Accumulator.AssignedSwiftBlock = p.Accumulator.AssignedSwiftBlock.Add(b.Element, delta)
	})
	if s.Combat.PendingSwiftBlock == nil {
		s.Combat.PendingSwiftBlock = map[string]state.ElementalValues{}
	}
	left := s.Combat.PendingSwiftBlock[b.key()].Add(b.Element, delta)
	if left.IsZero() {
		delete(s.Combat.PendingSwiftBlock, b.key())
	} else {
		s.Combat.PendingSwiftBlock[b.key()] = left
	}
	if len(s.Combat.PendingSwiftBlock) == 0 {
		s.Combat.PendingSwiftBlock = nil
	}
}

// AssignBlock moves block points from the player's pool onto an attack.
// Points that count twice against Swift are tracked per attack, so they are
// only doubled on the attack they were put on.
func AssignBlock(s state.GameState, playerID string, b BlockAssignment) (state.GameState, []events.Event, error) {
	if err := CheckAssignBlock(s, playerID, b); err != nil {
		return s, nil, err
	}
	s = s.Clone()
	swift := swiftShareOnAssign(s, s.MustPlayer(playerID).Accumulator, b)
	s.UpdatePlayer(playerID, func(p *state.Player) {
		p.Accumulator.AssignedBlock = p.Accumulator.AssignedBlock.Add(b.Element, b.Amount)
	})
	if s.Combat.PendingBlock == nil {
		s.Combat.PendingBlock = map[string]state.ElementalValues{}
	}
	s.Combat.PendingBlock[b.key()] = s.Combat.PendingBlock[b.key()].Add(b.Element, b.Amount)
	moveSwiftBlock(&s, playerID, b, swift)
	ev := events.New(events.BlockAssigned, playerID).
		WithTarget(b.key()).
		WithAmount(b.Amount).
		WithMeta("element", string(b.Element))
	return s, []events.Event{ev}, nil
}

// UnassignBlock returns block points from an attack to the player's pool.
func UnassignBlock(s state.GameState, playerID string, b BlockAssignment) (state.GameState, []events.Event, error) {
	if err := CheckUnassignBlock(s, playerID, b); err != nil {
		return s, nil, err
	}
	s = s.Clone()
	moveSwiftBlock(&s, playerID, b, -swiftShareOnUnassign(s, b))
	s.UpdatePlayer(playerID, func(p *state.Player) {
		p.Accumulator.AssignedBlock = p.Accumulator.AssignedBlock.Add(b.Element, -b.Amount)
	})
	left := s.Combat.PendingBlock[b.key()].Add(b.Element, -b.Amount)
	if left.IsZero() {
		delete(s.Combat.PendingBlock, b.key())
	} else {
		s.Combat.PendingBlock[b.key()] = left
	}
	if len(s.Combat.PendingBlock) == 0 {
		s.Combat.PendingBlock = nil
	}
	ev := events.New(events.BlockUnassigned, playerID).
		WithTarget(b.key()).
		WithAmount(b.Amount).
		WithMeta("element", string(b.Element))
	return s, []events.Event{ev}, nil
}
