package validators

import (
	"github.com/mage-knight-digital/MageKnight-sub005/internal/game/actions"
	"github.com/mage-knight-digital/MageKnight-sub005/internal/game/rules"
	"github.com/mage-knight-digital/MageKnight-sub005/internal/game/state"
)

// Pipeline runs validators in order and stops at the first rejection.
type Pipeline struct {
	validators []Validator
}

// NewPipeline builds a pipeline from validators.
func NewPipeline(validators ...Validator) Pipeline {
	return Pipeline{validators: validators}
}

// Default is the full rule set: shared gates first, then each area.
func Default() Pipeline {
	return NewPipeline(
		GameActive,
		PlayerKnown,
		GamePhase,
		CurrentPlayer,
		PendingGate,
		Movement,
		Cards,
		Mana,
		Units,
		Skills,
		Tactics,
		Combat,
		Resolution,
		TurnFlow,
	)
}

// Validate runs every validator against a.
func (p Pipeline) Validate(s state.GameState, playerID string, a actions.Action) Result {
	for _, v := range p.validators {
		if r := v(s, playerID, a); !r.Valid {
			return r
		}
	}
	return Valid()
}

// Undo rejects an undo with nothing to undo. The history lives outside the
// state, so the caller reports whether it is empty.
func Undo(canUndo bool) Result {
	if !canUndo {
		return Invalid(NothingToUndo, "Nothing to undo")
	}
	return Valid()
}

// GameActive rejects everything once the game is over.
func GameActive(s state.GameState, _ string, _ actions.Action) Result {
	if s.Phase == state.PhaseGameOver {
		return Invalid(GameOver, "The game is over")
	}
	return Valid()
}

// PlayerKnown rejects actions from players not in the game.
func PlayerKnown(s state.GameState, playerID string, _ actions.Action) Result {
	if _, ok := s.Player(playerID); !ok {
		return Invalid(UnknownPlayer, "Unknown player %s", playerID)
	}
	return Valid()
}

// GamePhase keeps tactic selection and player turns apart.
func GamePhase(s state.GameState, _ string, a actions.Action) Result {
	selecting := a.Type() == actions.TypeSelectTactic
	switch {
	case s.Phase == state.PhaseTacticsSelection && !selecting:
		return Invalid(WrongGamePhase, "Tactics must be selected first")
	case s.Phase == state.PhasePlayerTurns && selecting:
		return Invalid(WrongGamePhase, "Tactics are selected at the start of a round")
	}
	return Valid()
}

// CurrentPlayer rejects actions out of turn. During tactics selection the
// turn belongs to the next player to pick.
func CurrentPlayer(s state.GameState, playerID string, _ actions.Action) Result {
	current := s.CurrentPlayerID()
	if s.Phase == state.PhaseTacticsSelection {
		current = rules.NextTacticSelector(s)
	}
	if current != playerID {
		return Invalid(NotYourTurn, "It is %s's turn", current)
	}
	return Valid()
}

// PendingGate lets only the resolving action, and undo where possible,
// through while a player has something to resolve.
func PendingGate(s state.GameState, playerID string, a actions.Action) Result {
	p := s.MustPlayer(playerID)
	t := a.Type()
	switch {
	case p.Choice.IsAwaiting():
		if t != actions.TypeResolveChoice && t != actions.TypeUndo {
			return Invalid(ChoicePending, "A choice must be resolved first")
		}
	case p.PendingDiscard != nil:
		if t != actions.TypeResolveDiscard && t != actions.TypeUndo {
			return Invalid(DiscardPending, "A discard must be resolved first")
		}
	case p.PendingDeepMine != nil:
		if t != actions.TypeResolveDeepMine {
			return Invalid(DeepMinePending, "A deep mine colour must be chosen first")
		}
	}
	return Valid()
}
