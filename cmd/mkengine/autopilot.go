package main

import (
	"fmt"

	"github.com/mage-knight-digital/MageKnight-sub005/internal/engine"
	"github.com/mage-knight-digital/MageKnight-sub005/internal/game/actions"
	"github.com/mage-knight-digital/MageKnight-sub005/internal/game/state"
	"github.com/mage-knight-digital/MageKnight-sub005/internal/game/validactions"
)

// autopilot plays up to limit actions picked from the valid-actions menu of
// whoever can act. It stops early when nobody can act, which is the case
// once the game is over. step, if set, is called after every accepted action.
func autopilot(g *engine.Game, limit int, step func()) (int, error) {
	for n := 0; n < limit; n++ {
		playerID, va, ok := nextActor(g)
		if !ok {
			return n, nil
		}
		a := pick(va)
		out, err := g.Submit(playerID, a)
		if err != nil {
			return n, err
		}
		if !out.Accepted() {
			return n, fmt.Errorf("autopilot: %s %s rejected: %s", playerID, a.Type(), out.Error)
		}
		if step != nil {
			step()
		}
	}
	return limit, nil
}

func nextActor(g *engine.Game) (string, validactions.ValidActions, bool) {
	for _, p := range g.State().Players {
		if va := g.ValidActions(p.ID); va.Mode != validactions.ModeCannotAct {
			return p.ID, va, true
		}
	}
	return "", validactions.ValidActions{}, false
}

// pick is a simple policy: resolve whatever is pending with the first
// option, play cards sideways for movement and end the turn with an empty
// hand.
func pick(va validactions.ValidActions) actions.Action {
	switch va.Mode {
	case validactions.ModeTacticsSelection:
		return actions.SelectTactic{TacticID: va.Tactics.Available[0]}
	case validactions.ModePendingChoice:
		return actions.ResolveChoice{Index: va.Choice.Options[0].Index}
	case validactions.ModePendingDiscard:
		n := min(va.Discard.Count, len(va.Discard.Eligible))
		return actions.ResolveDiscard{CardIDs: va.Discard.Eligible[:n]}
	case validactions.ModePendingDeepMine:
		return actions.ResolveDeepMine{Color: va.DeepMine.Colors[0]}
	case validactions.ModeCombat:
		return pickCombat(va.Combat)
	}
	t := va.Turn
	if t.CanAnnounceEndOfRound {
		return actions.AnnounceEndOfRound{}
	}
	for _, c := range t.Cards {
		if len(c.Sideways) > 0 {
			return actions.PlayCardSideways{CardID: c.CardID, As: c.Sideways[0]}
		}
	}
	return actions.EndTurn{}
}

func pickCombat(c *validactions.CombatOptions) actions.Action {
	if c.Phase == state.PhaseAssignDamage {
		for _, e := range c.Enemies {
			for _, at := range e.Attacks {
				if at.CanAssign {
					return actions.AssignDamage{EnemyInstanceID: e.InstanceID, AttackIndex: at.Index}
				}
			}
		}
	}
	return actions.EndCombatPhase{}
}
