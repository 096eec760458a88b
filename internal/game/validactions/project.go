package validactions

import (
	"fmt"
	"slices"

	"github.com/mage-knight-digital/MageKnight-sub005/internal/game/actions"
	"github.com/mage-knight-digital/MageKnight-sub005/internal/game/catalog"
	"github.com/mage-knight-digital/MageKnight-sub005/internal/game/combat"
	"github.com/mage-knight-digital/MageKnight-sub005/internal/game/effects"
	"github.com/mage-knight-digital/MageKnight-sub005/internal/game/mana"
	"github.com/mage-knight-digital/MageKnight-sub005/internal/game/rules"
	"github.com/mage-knight-digital/MageKnight-sub005/internal/game/state"
	"github.com/mage-knight-digital/MageKnight-sub005/internal/game/validators"
)

var sidewaysModes = []actions.SidewaysAs{
	actions.SidewaysMove, actions.SidewaysInfluence, actions.SidewaysAttack, actions.SidewaysBlock,
}

var attackTypes = []state.AttackType{state.Ranged, state.Siege, state.Melee}

// Projector lists legal actions by asking a validator pipeline about every
// candidate.
type Projector struct {
	pipeline validators.Pipeline
}

// New returns a projector over the default rule set.
func New() Projector {
	return Projector{pipeline: validators.Default()}
}

// NewWithPipeline returns a projector over a custom pipeline.
func NewWithPipeline(p validators.Pipeline) Projector {
	return Projector{pipeline: p}
}

// Project computes what playerID may do in s. canUndo reports whether the
// caller's history holds a command to undo.
func Project(s state.GameState, playerID string, canUndo bool) ValidActions {
	return New().Project(s, playerID, canUndo)
}

type query struct {
	pr       Projector
	s        state.GameState
	playerID string
	p        state.Player
}

func (q query) legal(a actions.Action) bool {
	return q.pr.pipeline.Validate(q.s, q.playerID, a).Valid
}

func cannotAct(format string, args ...any) ValidActions {
	return ValidActions{Mode: ModeCannotAct, Reason: fmt.Sprintf(format, args...)}
}

// Project computes what playerID may do in s.
func (pr Projector) Project(s state.GameState, playerID string, canUndo bool) ValidActions {
	p, ok := s.Player(playerID)
	if !ok {
		return cannotAct("Unknown player %s", playerID)
	}
	if s.Phase == state.PhaseGameOver {
		return cannotAct("The game is over")
	}
	q := query{pr: pr, s: s, playerID: playerID, p: p}

	if s.Phase == state.PhaseTacticsSelection {
		if next := rules.NextTacticSelector(s); next != playerID {
			return cannotAct("Waiting for %s to select a tactic", next)
		}
		return ValidActions{Mode: ModeTacticsSelection, Tactics: q.tactics()}
	}
	if current := s.CurrentPlayerID(); current != playerID {
		return cannotAct("It is %s's turn", current)
	}

	undo := validators.Undo(canUndo).Valid
	switch {
	case p.Choice.IsAwaiting():
		return ValidActions{Mode: ModePendingChoice, CanUndo: undo, Choice: q.choice()}
	case p.PendingDiscard != nil:
		return ValidActions{Mode: ModePendingDiscard, CanUndo: undo, Discard: q.discard()}
	case p.PendingDeepMine != nil:
		// The END_TURN that raised it closed the undo history.
		return ValidActions{Mode: ModePendingDeepMine, DeepMine: q.deepMine()}
	case s.InCombat():
		return ValidActions{Mode: ModeCombat, CanUndo: undo, Combat: q.combat()}
	}
	return ValidActions{Mode: ModeNormalTurn, CanUndo: undo, Turn: q.turn()}
}

func (q query) tactics() *TacticsOptions {
	out := &TacticsOptions{}
	for _, id := range q.s.AvailableTactics {
		if q.legal(actions.SelectTactic{TacticID: id}) {
			out.Available = append(out.Available, id)
		}
	}
	return out
}

func (q query) choice() *ChoiceOptions {
	pending := q.p.Choice.Pending
	out := &ChoiceOptions{Source: pending.Source.ID}
	for i, o := range pending.Options {
		if q.legal(actions.ResolveChoice{Index: i}) {
			out.Options = append(out.Options, ChoiceOption{Index: i, Description: effects.Describe(o)})
		}
	}
	return out
}

func (q query) discard() *DiscardOptions {
	pending := q.p.PendingDiscard
	out := &DiscardOptions{Source: pending.Source.ID, Count: pending.Count, AllowWounds: pending.AllowWounds}
	for _, c := range distinct(q.p.Hand) {
		if c == state.WoundCard && !pending.AllowWounds {
			continue
		}
		out.Eligible = append(out.Eligible, c)
	}
	return out
}

func (q query) deepMine() *DeepMineOptions {
	out := &DeepMineOptions{}
	for _, c := range q.p.PendingDeepMine.Colors {
		if q.legal(actions.ResolveDeepMine{Color: c}) {
			out.Colors = append(out.Colors, c)
		}
	}
	return out
}

func (q query) turn() *TurnOptions {
	out := &TurnOptions{
		CanEndTurn:            q.legal(actions.EndTurn{}),
		CanAnnounceEndOfRound: q.legal(actions.AnnounceEndOfRound{}),
	}
	if q.p.Position != nil {
		for _, nb := range q.p.Position.Neighbors() {
			if q.legal(actions.Move{Target: nb}) {
				cost, _ := rules.MoveCost(q.s, q.playerID, nb)
				out.Moves = append(out.Moves, MoveOption{Target: nb, Cost: cost})
			}
			if q.legal(actions.Challenge{Target: nb}) {
				out.Challenges = append(out.Challenges, nb)
			}
		}
	}
	out.Cards = q.cards()
	for _, c := range mana.BasicColors {
		if q.legal(actions.ConvertCrystal{Color: c}) {
			out.ConvertCrystals = append(out.ConvertCrystals, c)
		}
	}
	for _, id := range distinct(q.s.Offers.Units) {
		if q.legal(actions.RecruitUnit{UnitID: id}) {
			out.Recruits = append(out.Recruits, RecruitOption{UnitID: id, Cost: rules.RecruitCost(q.s, q.playerID, id)})
		}
	}
	out.Units = q.units()
	for _, u := range q.p.Units {
		if q.legal(actions.HealUnit{UnitInstanceID: u.InstanceID}) {
			out.Heals = append(out.Heals, u.InstanceID)
		}
	}
	out.Skills = q.skills()
	return out
}

func (q query) combat() *CombatOptions {
	c := q.s.Combat
	acc := q.p.Accumulator
	out := &CombatOptions{
		Phase:           c.Phase,
		AvailableAttack: acc.Attack.Minus(acc.AssignedAttack),
		AvailableBlock:  acc.Block.Minus(acc.AssignedBlock),
		Cards:           q.cards(),
		Units:           q.units(),
		Skills:          q.skills(),
		CanEndPhase:     q.legal(actions.EndCombatPhase{}),
	}
	for _, e := range c.Enemies {
		out.Enemies = append(out.Enemies, q.enemy(e))
	}
	return out
}

func (q query) enemy(e state.CombatEnemy) EnemyOption {
	def := catalog.MustEnemy(e.EnemyID)
	out := EnemyOption{
		InstanceID: e.InstanceID,
		EnemyID:    e.EnemyID,
		Armor:      combat.EnemyArmor(q.s, e),
		Defeated:   e.IsDefeated,
		Pending:    q.s.Combat.PendingDamage[e.InstanceID],
	}
	if !e.IsDefeated {
		for _, t := range attackTypes {
			if combat.CanTargetInPhase(q.s, q.playerID, e, t) {
				out.Targetable = append(out.Targetable, t)
			}
		}
	}
	for i, a := range def.Attacks {
		opt := EnemyAttackOption{
			Index:          i,
			Value:          a.Value,
			Element:        a.Element,
			BlockRequired:  combat.BlockRequired(e, i),
			Blocked:        e.AttacksBlocked[i],
			DamageAssigned: e.AttacksDamageAssigned[i],
		}
		if q.s.Combat.Phase == state.PhaseAssignDamage {
			opt.CanAssign = q.legal(actions.AssignDamage{EnemyInstanceID: e.InstanceID, AttackIndex: i})
			for _, u := range q.p.Units {
				if q.legal(actions.AssignDamage{EnemyInstanceID: e.InstanceID, AttackIndex: i, UnitInstanceID: u.InstanceID}) {
					opt.DamageTargets = append(opt.DamageTargets, u.InstanceID)
				}
			}
		}
		out.Attacks = append(out.Attacks, opt)
	}
	return out
}

func (q query) cards() []CardOption {
	var out []CardOption
	for _, id := range distinct(q.p.Hand) {
		def, ok := catalog.Card(id)
		if !ok || !def.Playable() {
			continue
		}
		opt := CardOption{CardID: id}
		opt.Basic, opt.BasicPayment = q.playable(def, false)
		opt.Powered, opt.PoweredPayment = q.playable(def, true)
		for _, as := range sidewaysModes {
			if q.legal(actions.PlayCardSideways{CardID: id, As: as}) {
				opt.Sideways = append(opt.Sideways, as)
			}
		}
		if opt.Basic || opt.Powered || len(opt.Sideways) > 0 {
			out = append(out, opt)
		}
	}
	return out
}

func (q query) playable(def catalog.CardDefinition, powered bool) (bool, []mana.Payment) {
	effect, cost := validators.CardEffect(def, powered)
	if effect == nil {
		return false, nil
	}
	pay, ok := findPayment(q.s, q.playerID, cost)
	if !ok {
		return false, nil
	}
	if !q.legal(actions.PlayCard{CardID: def.ID, Powered: powered, Mana: pay}) {
		return false, nil
	}
	return true, pay
}

func (q query) units() []UnitOption {
	var out []UnitOption
	for _, u := range q.p.Units {
		def := catalog.MustUnit(u.UnitID)
		opt := UnitOption{UnitInstanceID: u.InstanceID, UnitID: u.UnitID}
		for i, ability := range def.Abilities {
			a := actions.ActivateUnit{UnitInstanceID: u.InstanceID, AbilityIndex: i}
			if ability.ManaCost != "" {
				pay, ok := findPayment(q.s, q.playerID, rules.Cost{ability.ManaCost})
				if !ok {
					continue
				}
				a.Mana = &pay[0]
			}
			if q.legal(a) {
				opt.Abilities = append(opt.Abilities, AbilityOption{Index: i, Description: effects.Describe(ability.Effect()), Payment: a.Mana})
			}
		}
		if len(opt.Abilities) > 0 {
			out = append(out, opt)
		}
	}
	return out
}

func (q query) skills() []state.SkillID {
	var out []state.SkillID
	for _, id := range q.p.Skills {
		if q.legal(actions.UseSkill{SkillID: id}) {
			out = append(out, id)
		}
	}
	return out
}

func distinct[T comparable](list []T) []T {
	var out []T
	for _, x := range list {
		if !slices.Contains(out, x) {
			out = append(out, x)
		}
	}
	return out
}
