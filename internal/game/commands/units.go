package commands

import (
	"slices"

	"github.com/mage-knight-digital/MageKnight-sub005/internal/game/actions"
	"github.com/mage-knight-digital/MageKnight-sub005/internal/game/effects"
	"github.com/mage-knight-digital/MageKnight-sub005/internal/game/events"
	"github.com/mage-knight-digital/MageKnight-sub005/internal/game/mana"
	"github.com/mage-knight-digital/MageKnight-sub005/internal/game/modifiers"
	"github.com/mage-knight-digital/MageKnight-sub005/internal/game/rules"
	"github.com/mage-knight-digital/MageKnight-sub005/internal/game/state"
	"github.com/mage-knight-digital/MageKnight-sub005/internal/game/validators"
)

type recruitUnit struct {
	snapshotCommand
	unit state.UnitID
}

func newRecruitUnit(playerID string, a actions.RecruitUnit) *recruitUnit {
	return &recruitUnit{snapshotCommand: snapshotCommand{base: base{kind: actions.TypeRecruitUnit, playerID: playerID}}, unit: a.UnitID}
}

// Execute pays influence, takes the unit from the offer and refills the slot
// from the unit deck. Undo restores offer and deck together.
func (c *recruitUnit) Execute(s state.GameState) Result {
	c.before = capture(s, c.playerID)
	cost := rules.RecruitCost(s, c.playerID, c.unit)
	s, _, discountID := modifiers.ConsumeRecruitDiscount(s, c.playerID)
	s = s.Clone()
	var evs []events.Event
	if discountID != "" {
		evs = append(evs, events.New(events.ModifierConsumed, c.playerID).WithSource(discountID))
	}

	i := slices.Index(s.Offers.Units, c.unit)
	if i < 0 {
		panic("commands: unit not in offer: " + string(c.unit))
	}
	s.Offers.Units = slices.Delete(slices.Clone(s.Offers.Units), i, i+1)
	s.UnitSeq++
	id := state.UnitInstanceID(s.GameID, s.UnitSeq)
	s.UpdatePlayer(c.playerID, func(p *state.Player) {
		p.InfluencePoints -= cost
		p.Units = append(slices.Clone(p.Units), state.PlayerUnit{InstanceID: id, UnitID: c.unit, State: state.UnitReady})
	})
	evs = append(evs, events.New(events.UnitRecruited, c.playerID).
		WithTarget(id).
		WithSource(string(c.unit)).
		WithAmount(cost))

	if len(s.Decks.Units) > 0 {
		next := s.Decks.Units[0]
		s.Decks.Units = slices.Clone(s.Decks.Units[1:])
		s.Offers.Units = append(s.Offers.Units, next)
		evs = append(evs, events.New(events.OfferRefilled, c.playerID).WithTarget(string(next)).WithMeta("offer", "units"))
	}
	return Result{State: s, Events: evs}
}

type activateUnit struct {
	snapshotCommand
	action actions.ActivateUnit
}

func newActivateUnit(playerID string, a actions.ActivateUnit) *activateUnit {
	return &activateUnit{snapshotCommand: snapshotCommand{base: base{kind: actions.TypeActivateUnit, playerID: playerID}}, action: a}
}

// Execute spends the unit and resolves its ability. A matching unit ability
// bonus in the ledger is consumed and added to the ability's value.
func (c *activateUnit) Execute(s state.GameState) Result {
	c.before = capture(s, c.playerID)
	u, ability, ok := validators.UnitAbility(s.MustPlayer(c.playerID), c.action)
	if !ok {
		panic("commands: unknown unit ability")
	}
	var evs []events.Event
	if c.action.Mana != nil {
		s, evs = rules.Pay(s, c.playerID, []mana.Payment{*c.action.Mana})
	}
	s, bonus, modIDs := modifiers.ConsumeUnitAbilityBonus(s, c.playerID, u.InstanceID, ability.Kind)
	s = s.Clone()
	s.UpdatePlayer(c.playerID, func(p *state.Player) {
		_, i, _ := p.Unit(u.InstanceID)
		p.Units = slices.Clone(p.Units)
		p.Units[i].State = state.UnitSpent
	})
	evs = append(evs, events.New(events.UnitActivated, c.playerID).
		WithTarget(u.InstanceID).
		WithMeta("ability", string(ability.Kind)).
		WithIntMeta("bonus", bonus))
	for _, id := range modIDs {
		evs = append(evs, events.New(events.ModifierConsumed, c.playerID).WithSource(id).WithTarget(u.InstanceID))
	}

	effect := effects.AddBonus(ability.Effect(), bonus)
	src := state.Source{Kind: state.SourceUnit, ID: u.InstanceID, PlayerID: c.playerID}
	r := effects.Resolve(s, c.playerID, effect, src)
	c.irreversible = r.RevealedHidden
	return Result{State: r.State, Events: append(evs, r.Events...), Description: r.Description, NoOp: r.NoOp}
}

type healUnit struct {
	base
	unitInstanceID string
	cost           int
}

func newHealUnit(playerID string, a actions.HealUnit) *healUnit {
	return &healUnit{base: base{kind: actions.TypeHealUnit, playerID: playerID}, unitInstanceID: a.UnitInstanceID}
}

func (c *healUnit) Execute(s state.GameState) Result {
	s = s.Clone()
	s.UpdatePlayer(c.playerID, func(p *state.Player) {
		u, i, ok := p.Unit(c.unitInstanceID)
		if !ok || !u.IsWounded {
			panic("commands: no wounded unit " + c.unitInstanceID)
		}
		c.cost = rules.HealCost(u.UnitID)
		p.HealingPoints -= c.cost
		p.Units = slices.Clone(p.Units)
		p.Units[i].IsWounded = false
	})
	return Result{State: s, Events: []events.Event{
		events.New(events.UnitHealed, c.playerID).WithTarget(c.unitInstanceID).WithAmount(c.cost),
	}}
}

func (c *healUnit) Undo(s state.GameState) Result {
	s = s.Clone()
	s.UpdatePlayer(c.playerID, func(p *state.Player) {
		_, i, ok := p.Unit(c.unitInstanceID)
		if !ok {
			panic("commands: healed unit is gone: " + c.unitInstanceID)
		}
		p.HealingPoints += c.cost
		p.Units = slices.Clone(p.Units)
		p.Units[i].IsWounded = true
	})
	return Result{State: s}
}
