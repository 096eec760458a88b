package commands

import (
	"slices"

	"github.com/mage-knight-digital/MageKnight-sub005/internal/game/actions"
	"github.com/mage-knight-digital/MageKnight-sub005/internal/game/catalog"
	"github.com/mage-knight-digital/MageKnight-sub005/internal/game/effects"
	"github.com/mage-knight-digital/MageKnight-sub005/internal/game/events"
	"github.com/mage-knight-digital/MageKnight-sub005/internal/game/rules"
	"github.com/mage-knight-digital/MageKnight-sub005/internal/game/state"
)

type useSkill struct {
	snapshotCommand
	skill state.SkillID
}

func newUseSkill(playerID string, a actions.UseSkill) *useSkill {
	return &useSkill{snapshotCommand: snapshotCommand{base: base{kind: actions.TypeUseSkill, playerID: playerID}}, skill: a.SkillID}
}

// Execute puts the skill on cooldown and resolves it.
func (c *useSkill) Execute(s state.GameState) Result {
	c.before = capture(s, c.playerID)
	def := catalog.MustSkill(c.skill)
	s = s.Clone()
	s.UpdatePlayer(c.playerID, func(p *state.Player) {
		cd := &p.Cooldowns
		switch def.Cooldown {
		case catalog.CooldownTurn:
			cd.UsedThisTurn = append(slices.Clone(cd.UsedThisTurn), def.ID)
		case catalog.CooldownRound:
			cd.UsedThisRound = append(slices.Clone(cd.UsedThisRound), def.ID)
		case catalog.CooldownCombat:
			cd.UsedThisCombat = append(slices.Clone(cd.UsedThisCombat), def.ID)
		case catalog.CooldownUntilNextTurn:
			cd.ActiveUntilNextTurn = append(slices.Clone(cd.ActiveUntilNextTurn), def.ID)
		default:
			panic("commands: unknown cooldown " + string(def.Cooldown))
		}
	})
	evs := []events.Event{events.New(events.SkillUsed, c.playerID).WithTarget(string(def.ID))}
	src := state.Source{Kind: state.SourceSkill, ID: string(def.ID), PlayerID: c.playerID}
	r := effects.Resolve(s, c.playerID, def.Effect, src)
	c.irreversible = r.RevealedHidden
	return Result{State: r.State, Events: append(evs, r.Events...), Description: r.Description, NoOp: r.NoOp}
}

type selectTactic struct {
	base
	tactic state.TacticID
}

func newSelectTactic(playerID string, a actions.SelectTactic) *selectTactic {
	return &selectTactic{base: base{kind: actions.TypeSelectTactic, playerID: playerID, irreversible: true}, tactic: a.TacticID}
}

// Execute takes the tactic. Once every player holds one, turn order is fixed
// and the first turn starts.
func (c *selectTactic) Execute(s state.GameState) Result {
	s = s.Clone()
	i := slices.Index(s.AvailableTactics, c.tactic)
	if i < 0 {
		panic("commands: tactic not available: " + string(c.tactic))
	}
	s.AvailableTactics = slices.Delete(slices.Clone(s.AvailableTactics), i, i+1)
	s.UpdatePlayer(c.playerID, func(p *state.Player) { p.TacticID = c.tactic })
	evs := []events.Event{events.New(events.TacticSelected, c.playerID).WithTarget(string(c.tactic))}
	if !rules.AllTacticsSelected(s) {
		return Result{State: s, Events: evs}
	}
	s, out := rules.BeginPlayerTurns(s)
	return Result{State: s, Events: append(evs, out...)}
}

func (c *selectTactic) Undo(state.GameState) Result {
	c.cannotUndo()
	return Result{}
}
