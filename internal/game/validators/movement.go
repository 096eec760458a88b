package validators

import (
	"github.com/mage-knight-digital/MageKnight-sub005/internal/game/actions"
	"github.com/mage-knight-digital/MageKnight-sub005/internal/game/rules"
	"github.com/mage-knight-digital/MageKnight-sub005/internal/game/state"
)

// Movement governs MOVE and CHALLENGE. Moving ends once the player has
// taken an action or fought.
func Movement(s state.GameState, playerID string, a actions.Action) Result {
	p := s.MustPlayer(playerID)
	switch a := a.(type) {
	case actions.Move:
		if r := beforeAction(s, p); !r.Valid {
			return r
		}
		cost, err := rules.MoveCost(s, playerID, a.Target)
		if err != nil {
			return fromError(err)
		}
		if p.MovePoints < cost {
			return Invalid(InsufficientMove, "Moving there costs %d, you have %d", cost, p.MovePoints).
				WithDetail("hex", a.Target.Key())
		}
	case actions.Challenge:
		if r := beforeAction(s, p); !r.Valid {
			return r
		}
		if _, err := rules.ChallengeTarget(s, playerID, a.Target); err != nil {
			return fromError(err)
		}
	}
	return Valid()
}

func beforeAction(s state.GameState, p state.Player) Result {
	switch {
	case s.InCombat():
		return Invalid(InCombat, "Not during combat")
	case p.HasCombattedThisTurn:
		return Invalid(AlreadyCombatted, "You already fought this turn")
	case p.HasTakenActionThisTurn:
		return Invalid(ActionTaken, "You already took your action this turn")
	}
	return Valid()
}
