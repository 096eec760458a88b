package commands

import (
	"slices"

	"github.com/mage-knight-digital/MageKnight-sub005/internal/game/actions"
	"github.com/mage-knight-digital/MageKnight-sub005/internal/game/events"
	"github.com/mage-knight-digital/MageKnight-sub005/internal/game/rules"
	"github.com/mage-knight-digital/MageKnight-sub005/internal/game/state"
)

type endTurn struct {
	base
}

func newEndTurn(playerID string) *endTurn {
	return &endTurn{base{kind: actions.TypeEndTurn, playerID: playerID, irreversible: true}}
}

// Execute closes the turn. Ending on a deep mine pauses instead until the
// player picks the crystal colour.
func (c *endTurn) Execute(s state.GameState) Result {
	p := s.MustPlayer(c.playerID)
	mined, _ := rules.MineColor(s, p)
	if colors, ok := rules.DeepMineColors(s, p); ok {
		if len(colors) > 1 {
			s = s.Clone()
			s.UpdatePlayer(c.playerID, func(p *state.Player) {
				p.PendingDeepMine = &state.PendingDeepMine{Colors: slices.Clone(colors)}
			})
			ev := events.New(events.DeepMineRequired, c.playerID).WithAmount(len(colors))
			return Result{State: s, Events: []events.Event{ev}}
		}
		mined = colors[0]
	}
	s, evs := rules.FinishTurn(s, c.playerID, mined)
	return Result{State: s, Events: evs}
}

func (c *endTurn) Undo(state.GameState) Result {
	c.cannotUndo()
	return Result{}
}

type announceEndOfRound struct {
	base
}

func newAnnounceEndOfRound(playerID string) *announceEndOfRound {
	return &announceEndOfRound{base{kind: actions.TypeAnnounceEndOfRound, playerID: playerID, irreversible: true}}
}

// Execute announces the end of the round in place of the player's turn.
// Every other player gets one more turn.
func (c *announceEndOfRound) Execute(s state.GameState) Result {
	s = s.Clone()
	s.EndOfRoundAnnouncedBy = c.playerID
	evs := []events.Event{events.New(events.EndOfRoundAnnounced, c.playerID)}
	s, out := rules.FinishTurn(s, c.playerID, "")
	return Result{State: s, Events: append(evs, out...)}
}

func (c *announceEndOfRound) Undo(state.GameState) Result {
	c.cannotUndo()
	return Result{}
}
