package commands

import (
	"errors"
	"fmt"

	"github.com/mage-knight-digital/MageKnight-sub005/internal/game/actions"
	"github.com/mage-knight-digital/MageKnight-sub005/internal/game/combat"
)

// ErrNoCommand is returned for an action type without a factory. UNDO has
// none: the engine pops the history instead.
var ErrNoCommand = errors.New("no command for action")

// Factory builds the command for one action.
type Factory func(playerID string, a actions.Action) Command

// Registry maps action types to their factories.
type Registry struct {
	factories map[actions.Type]Factory
}

// NewRegistry returns a registry with a factory for every player action.
func NewRegistry() *Registry {
	r := &Registry{factories: map[actions.Type]Factory{}}
	r.Register(actions.TypeMove, func(pid string, a actions.Action) Command {
		return newMove(pid, a.(actions.Move))
	})
	r.Register(actions.TypeChallenge, func(pid string, a actions.Action) Command {
		return newChallenge(pid, a.(actions.Challenge))
	})
	r.Register(actions.TypePlayCard, func(pid string, a actions.Action) Command {
		return newPlayCard(pid, a.(actions.PlayCard))
	})
	r.Register(actions.TypePlayCardSideways, func(pid string, a actions.Action) Command {
		return newPlaySideways(pid, a.(actions.PlayCardSideways))
	})
	r.Register(actions.TypeConvertCrystal, func(pid string, a actions.Action) Command {
		return newConvertCrystal(pid, a.(actions.ConvertCrystal))
	})
	r.Register(actions.TypeRecruitUnit, func(pid string, a actions.Action) Command {
		return newRecruitUnit(pid, a.(actions.RecruitUnit))
	})
	r.Register(actions.TypeActivateUnit, func(pid string, a actions.Action) Command {
		return newActivateUnit(pid, a.(actions.ActivateUnit))
	})
	r.Register(actions.TypeHealUnit, func(pid string, a actions.Action) Command {
		return newHealUnit(pid, a.(actions.HealUnit))
	})
	r.Register(actions.TypeUseSkill, func(pid string, a actions.Action) Command {
		return newUseSkill(pid, a.(actions.UseSkill))
	})
	r.Register(actions.TypeSelectTactic, func(pid string, a actions.Action) Command {
		return newSelectTactic(pid, a.(actions.SelectTactic))
	})
	r.Register(actions.TypeAssignAttack, func(pid string, a actions.Action) Command {
		x := a.(actions.AssignAttack)
		return newAllocation(actions.TypeAssignAttack, pid, attackAllocation(x.EnemyInstanceID, x.AttackType, x.Element, x.Amount, true))
	})
	r.Register(actions.TypeUnassignAttack, func(pid string, a actions.Action) Command {
		x := a.(actions.UnassignAttack)
		return newAllocation(actions.TypeUnassignAttack, pid, attackAllocation(x.EnemyInstanceID, x.AttackType, x.Element, x.Amount, false))
	})
	r.Register(actions.TypeAssignBlock, func(pid string, a actions.Action) Command {
		x := a.(actions.AssignBlock)
		return newBlockAllocation(actions.TypeAssignBlock, pid, combat.BlockAssignment{EnemyInstanceID: x.EnemyInstanceID, AttackIndex: x.AttackIndex, Element: x.Element, Amount: x.Amount}, true)
	})
	r.Register(actions.TypeUnassignBlock, func(pid string, a actions.Action) Command {
		x := a.(actions.UnassignBlock)
		return newBlockAllocation(actions.TypeUnassignBlock, pid, combat.BlockAssignment{EnemyInstanceID: x.EnemyInstanceID, AttackIndex: x.AttackIndex, Element: x.Element, Amount: x.Amount}, false)
	})
	r.Register(actions.TypeAssignDamage, func(pid string, a actions.Action) Command {
		return newAssignDamage(pid, a.(actions.AssignDamage))
	})
	r.Register(actions.TypeEndCombatPhase, func(pid string, _ actions.Action) Command {
		return newEndCombatPhase(pid)
	})
	r.Register(actions.TypeResolveChoice, func(pid string, a actions.Action) Command {
		return newResolveChoice(pid, a.(actions.ResolveChoice))
	})
	r.Register(actions.TypeResolveDiscard, func(pid string, a actions.Action) Command {
		return newResolveDiscard(pid, a.(actions.ResolveDiscard))
	})
	r.Register(actions.TypeResolveDeepMine, func(pid string, a actions.Action) Command {
		return newResolveDeepMine(pid, a.(actions.ResolveDeepMine))
	})
	r.Register(actions.TypeEndTurn, func(pid string, _ actions.Action) Command {
		return newEndTurn(pid)
	})
	r.Register(actions.TypeAnnounceEndOfRound, func(pid string, _ actions.Action) Command {
		return newAnnounceEndOfRound(pid)
	})
	return r
}

// Register sets the factory for t, replacing any previous one.
func (r *Registry) Register(t actions.Type, f Factory) {
	r.factories[t] = f
}

// Create builds the command for a.
func (r *Registry) Create(playerID string, a actions.Action) (Command, error) {
	f, ok := r.factories[a.Type()]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoCommand, a.Type())
	}
	return f(playerID, a), nil
}

// Types lists the action types the registry can build.
func (r *Registry) Types() []actions.Type {
	var out []actions.Type
	for _, t := range actions.All() {
		if _, ok := r.factories[t]; ok {
			out = append(out, t)
		}
	}
	return out
}
