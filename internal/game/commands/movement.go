package commands

import (
	"github.com/mage-knight-digital/MageKnight-sub005/internal/game/actions"
	"github.com/mage-knight-digital/MageKnight-sub005/internal/game/combat"
	"github.com/mage-knight-digital/MageKnight-sub005/internal/game/events"
	"github.com/mage-knight-digital/MageKnight-sub005/internal/game/rules"
	"github.com/mage-knight-digital/MageKnight-sub005/internal/game/state"
)

type move struct {
	snapshotCommand
	target state.HexCoord
}

func newMove(playerID string, a actions.Move) *move {
	return &move{snapshotCommand: snapshotCommand{base: base{kind: actions.TypeMove, playerID: playerID}}, target: a.Target}
}

// Execute spends move points and steps onto the target hex. Entering enemies
// or an unconquered site starts combat.
func (c *move) Execute(s state.GameState) Result {
	c.before = capture(s, c.playerID)
	cost, err := rules.MoveCost(s, c.playerID, c.target)
	if err != nil {
		panic("commands: validated move failed: " + err.Error())
	}
	s = s.Clone()
	from := *s.MustPlayer(c.playerID).Position
	s.UpdatePlayer(c.playerID, func(p *state.Player) {
		p.MovePoints -= cost
		to := c.target
		p.Position = &to
		p.HasMovedThisTurn = true
	})
	evs := []events.Event{
		events.New(events.PlayerMoved, c.playerID).
			WithSource(from.Key()).
			WithTarget(c.target.Key()).
			WithAmount(cost),
	}
	enc, ok := rules.EncounterOnEntry(s, c.target)
	if !ok {
		return Result{State: s, Events: evs}
	}
	s, out := must(combat.Start(s, c.playerID, enc.Enemies, enc.Options))
	return Result{State: s, Events: append(evs, out...)}
}

type challenge struct {
	snapshotCommand
	target state.HexCoord
}

func newChallenge(playerID string, a actions.Challenge) *challenge {
	return &challenge{snapshotCommand: snapshotCommand{base: base{kind: actions.TypeChallenge, playerID: playerID}}, target: a.Target}
}

// Execute starts combat against the enemies on an adjacent hex.
func (c *challenge) Execute(s state.GameState) Result {
	c.before = capture(s, c.playerID)
	enc, err := rules.ChallengeTarget(s, c.playerID, c.target)
	if err != nil {
		panic("commands: validated challenge failed: " + err.Error())
	}
	s, evs := must(combat.Start(s, c.playerID, enc.Enemies, enc.Options))
	return Result{State: s, Events: evs}
}
