package commands

import (
	"fmt"
	"slices"

	"github.com/mage-knight-digital/MageKnight-sub005/internal/game/actions"
	"github.com/mage-knight-digital/MageKnight-sub005/internal/game/catalog"
	"github.com/mage-knight-digital/MageKnight-sub005/internal/game/effects"
	"github.com/mage-knight-digital/MageKnight-sub005/internal/game/events"
	"github.com/mage-knight-digital/MageKnight-sub005/internal/game/mana"
	"github.com/mage-knight-digital/MageKnight-sub005/internal/game/rules"
	"github.com/mage-knight-digital/MageKnight-sub005/internal/game/state"
	"github.com/mage-knight-digital/MageKnight-sub005/internal/game/validators"
)

func cardSource(playerID string, id state.CardID) state.Source {
	return state.Source{Kind: state.SourceCard, ID: string(id), PlayerID: playerID}
}

// takeFromHand removes one copy of card from the hand.
func takeFromHand(p *state.Player, card state.CardID) {
	i := p.HandIndex(card)
	if i < 0 {
		panic(fmt.Sprintf("commands: %s not in hand", card))
	}
	p.Hand = slices.Delete(slices.Clone(p.Hand), i, i+1)
}

type playCard struct {
	snapshotCommand
	action actions.PlayCard
}

func newPlayCard(playerID string, a actions.PlayCard) *playCard {
	return &playCard{snapshotCommand: snapshotCommand{base: base{kind: actions.TypePlayCard, playerID: playerID}}, action: a}
}

// Execute pays the mana, moves the card to the play area and resolves its
// effect. A powered artifact is destroyed instead of played.
func (c *playCard) Execute(s state.GameState) Result {
	c.before = capture(s, c.playerID)
	def := catalog.MustCard(c.action.CardID)
	effect, _ := validators.CardEffect(def, c.action.Powered)

	s, evs := rules.Pay(s, c.playerID, c.action.Mana)
	s = s.Clone()
	destroyed := c.action.Powered && def.Kind == catalog.Artifact
	s.UpdatePlayer(c.playerID, func(p *state.Player) {
		takeFromHand(p, def.ID)
		if !destroyed {
			p.PlayArea = append(slices.Clone(p.PlayArea), def.ID)
		}
	})
	evs = append(evs, events.New(events.CardPlayed, c.playerID).
		WithTarget(string(def.ID)).
		WithMeta("powered", fmt.Sprint(c.action.Powered)))
	if destroyed {
		evs = append(evs, events.New(events.CardDestroyed, c.playerID).WithTarget(string(def.ID)))
	}

	r := effects.Resolve(s, c.playerID, effect, cardSource(c.playerID, def.ID))
	c.irreversible = r.RevealedHidden
	return Result{State: r.State, Events: append(evs, r.Events...), Description: r.Description, NoOp: r.NoOp}
}

type playSideways struct {
	base
	action    actions.PlayCardSideways
	handIndex int
	effect    state.Effect
}

func newPlaySideways(playerID string, a actions.PlayCardSideways) *playSideways {
	return &playSideways{base: base{kind: actions.TypePlayCardSideways, playerID: playerID}, action: a}
}

// SidewaysEffect is the value a card played sideways grants.
func SidewaysEffect(as actions.SidewaysAs) state.Effect {
	switch as {
	case actions.SidewaysMove:
		return state.GainMove{Amount: 1}
	case actions.SidewaysInfluence:
		return state.GainInfluence{Amount: 1}
	case actions.SidewaysAttack:
		return state.GainAttack{Amount: 1, AttackType: state.Melee, Element: state.Physical}
	case actions.SidewaysBlock:
		return state.GainBlock{Amount: 1, Element: state.Physical}
	}
	panic(fmt.Sprintf("commands: unknown sideways play %q", as))
}

func (c *playSideways) Execute(s state.GameState) Result {
	s = s.Clone()
	c.effect = SidewaysEffect(c.action.As)
	s.UpdatePlayer(c.playerID, func(p *state.Player) {
		c.handIndex = p.HandIndex(c.action.CardID)
		takeFromHand(p, c.action.CardID)
		p.PlayArea = append(slices.Clone(p.PlayArea), c.action.CardID)
	})
	r := effects.Resolve(s, c.playerID, c.effect, cardSource(c.playerID, c.action.CardID))
	evs := append([]events.Event{
		events.New(events.CardPlayedSideways, c.playerID).WithTarget(string(c.action.CardID)).WithMeta("as", string(c.action.As)),
	}, r.Events...)
	return Result{State: r.State, Events: evs, Description: r.Description}
}

// Undo takes the granted point back and returns the card to its hand slot.
func (c *playSideways) Undo(s state.GameState) Result {
	s = s.Clone()
	p := s.MustPlayer(c.playerID)
	p, ok := effects.Reverse(p, c.effect)
	if !ok {
		panic("commands: sideways grant not reversible")
	}
	i := slices.Index(p.PlayArea, c.action.CardID)
	if i < 0 {
		panic(fmt.Sprintf("commands: %s not in play area", c.action.CardID))
	}
	p.PlayArea = slices.Delete(slices.Clone(p.PlayArea), i, i+1)
	if len(p.PlayArea) == 0 {
		p.PlayArea = nil
	}
	p.Hand = slices.Insert(slices.Clone(p.Hand), c.handIndex, c.action.CardID)
	s.SetPlayer(p)
	return Result{State: s}
}

type convertCrystal struct {
	base
	color      mana.Color
	tokenIndex int
}

func newConvertCrystal(playerID string, a actions.ConvertCrystal) *convertCrystal {
	return &convertCrystal{base: base{kind: actions.TypeConvertCrystal, playerID: playerID}, color: a.Color}
}

// Execute turns one crystal into a mana token and remembers which token it
// created.
func (c *convertCrystal) Execute(s state.GameState) Result {
	s = s.Clone()
	s.UpdatePlayer(c.playerID, func(p *state.Player) {
		var ok bool
		if p.Crystals, ok = p.Crystals.Spend(c.color); !ok {
			panic("commands: no crystal to convert")
		}
		c.tokenIndex = len(p.PureMana)
		p.PureMana = append(slices.Clone(p.PureMana), mana.Token{Color: c.color, Source: mana.FromCrystal})
	})
	return Result{State: s, Events: []events.Event{
		events.New(events.CrystalConverted, c.playerID).WithMeta("color", string(c.color)),
	}}
}

// Undo removes exactly the token Execute created and gives the crystal back.
func (c *convertCrystal) Undo(s state.GameState) Result {
	s = s.Clone()
	s.UpdatePlayer(c.playerID, func(p *state.Player) {
		if c.tokenIndex >= len(p.PureMana) || p.PureMana[c.tokenIndex] != (mana.Token{Color: c.color, Source: mana.FromCrystal}) {
			panic("commands: converted token is gone")
		}
		p.PureMana = slices.Delete(slices.Clone(p.PureMana), c.tokenIndex, c.tokenIndex+1)
		if len(p.PureMana) == 0 {
			p.PureMana = nil
		}
		p.Crystals, _ = p.Crystals.Add(c.color, 1)
	})
	return Result{State: s}
}
