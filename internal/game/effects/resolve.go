package effects

import (
	"fmt"
	"slices"

	"github.com/mage-knight-digital/MageKnight-sub005/internal/game/catalog"
	"github.com/mage-knight-digital/MageKnight-sub005/internal/game/conditions"
	"github.com/mage-knight-digital/MageKnight-sub005/internal/game/events"
	"github.com/mage-knight-digital/MageKnight-sub005/internal/game/mana"
	"github.com/mage-knight-digital/MageKnight-sub005/internal/game/modifiers"
	"github.com/mage-knight-digital/MageKnight-sub005/internal/game/state"
)

// MinReputation and MaxReputation bound the reputation track.
const (
	MinReputation = -7
	MaxReputation = 7
)

// Resolve applies e for playerID. The input state is not modified.
func Resolve(s state.GameState, playerID string, e state.Effect, source state.Source) Result {
	r := &resolver{s: s.Clone(), playerID: playerID, source: source}
	r.resolve(e, nil)
	return r.result()
}

// resolve applies e. rest holds the effects of an enclosing compound that
// still have to run after e; a choice raised by e carries them along.
func (r *resolver) resolve(e state.Effect, rest []state.Effect) {
	switch e := e.(type) {
	case state.GainAttack:
		r.gainAttack(e.Amount, e.AttackType, e.Element)
	case state.GainBlock:
		r.gainBlock(e)
	case state.GainMove:
		r.player().MovePoints += e.Amount
		r.emit(events.New(events.MoveGained, r.playerID).WithAmount(e.Amount))
		r.describe("Move %d", e.Amount)
	case state.GainInfluence:
		r.player().InfluencePoints += e.Amount
		r.emit(events.New(events.InfluenceGained, r.playerID).WithAmount(e.Amount))
		r.describe("Influence %d", e.Amount)
	case state.GainHealing:
		r.gainHealing(e.Amount)
	case state.GainMana:
		p := r.player()
		p.PureMana = append(slices.Clone(p.PureMana), mana.Token{Color: e.Color, Source: tokenSource(r.source.Kind)})
		r.emit(events.New(events.ManaTokenGained, r.playerID).WithMeta("color", string(e.Color)))
		r.describe("Gained %s mana", e.Color)
	case state.GainCrystal:
		r.gainCrystal(e.Color)
	case state.GainFame:
		r.player().Fame += e.Amount
		r.emit(events.New(events.FameGained, r.playerID).WithAmount(e.Amount))
		r.describe("Fame +%d", e.Amount)
	case state.ChangeReputation:
		p := r.player()
		before := p.Reputation
		p.Reputation = min(MaxReputation, max(MinReputation, p.Reputation+e.Amount))
		r.emit(events.New(events.ReputationChanged, r.playerID).WithAmount(p.Reputation - before))
		r.describe("Reputation %+d", e.Amount)
	case state.DrawCards:
		r.drawCards(e.Count)
	case state.Compound:
		r.compound(e.Effects, rest)
	case state.Choice:
		r.choose(e.Options, rest)
	case state.DiscardCost:
		r.discardCost(e, rest)
	case state.DiscardForCrystal:
		r.choose(discardForCrystalOptions(r.s, r.playerID), rest)
	case state.DiscardCardForCrystal:
		r.discardCardForCrystal(e)
	case state.CrystallizeToken:
		r.choose(crystallizeOptions(r.s, r.playerID), rest)
	case state.CrystallizeColor:
		r.crystallize(e.Color)
	case state.TakeFromOffer:
		r.choose(offerOptions(r.s, e.Offer), rest)
	case state.TakeOfferCard:
		r.takeOfferCard(e)
	case state.ReadyUnit:
		r.choose(readyUnitOptions(r.s, r.playerID, e.MaxLevel), rest)
	case state.ReadySpecificUnit:
		r.readyUnit(e.UnitInstanceID)
	case state.WeakenEnemy:
		r.choose(weakenOptions(r.s, e.Amount), rest)
	case state.WeakenSpecificEnemy:
		r.weaken(e)
	case state.ApplyModifier:
		r.applyModifier(e)
	case state.AttackWithFameBonus:
		r.attackWithFameBonus(e)
	case state.Conditional:
		r.conditional(e, rest)
	default:
		panic(fmt.Sprintf("effects: Resolve: unhandled effect %T", e))
	}
}

func (r *resolver) gainAttack(amount int, t state.AttackType, el state.Element) {
	if !r.s.InCombat() {
		r.noOp("No combat to attack in")
		return
	}
	p := r.player()
	p.Accumulator.Attack = p.Accumulator.Attack.Add(t, el, amount)
	r.emit(events.New(events.AttackGained, r.playerID).WithAmount(amount).
		WithMeta("attackType", string(t)).WithMeta("element", string(el)))
	r.describe("%s", describeAttack(amount, t, el))
}

func (r *resolver) gainBlock(e state.GainBlock) {
	if !r.s.InCombat() {
		r.noOp("No combat to block in")
		return
	}
	p := r.player()
	p.Accumulator.Block = p.Accumulator.Block.Add(e.Element, e.Amount)
	if e.CountsTwiceAgainstSwift {
		p.Accumulator.SwiftBlock = p.Accumulator.SwiftBlock.Add(e.Element, e.Amount)
	}
	r.emit(events.New(events.BlockGained, r.playerID).WithAmount(e.Amount).WithMeta("element", string(e.Element)))
	r.describe("%s", Describe(e))
}

// gainHealing removes wounds from hand first; what is left stays as healing
// points for wounded units.
func (r *resolver) gainHealing(amount int) {
	if r.s.InCombat() {
		r.noOp("Healing cannot be used in combat")
		return
	}
	p := r.player()
	healed := 0
	hand := slices.Clone(p.Hand)
	for healed < amount {
		i := slices.Index(hand, state.WoundCard)
		if i < 0 {
			break
		}
		hand = slices.Delete(hand, i, i+1)
		healed++
	}
	p.Hand = hand
	p.HealingPoints += amount - healed
	if healed > 0 {
		r.emit(events.New(events.Healed, r.playerID).WithAmount(healed))
	}
	r.emit(events.New(events.HealingGained, r.playerID).WithAmount(amount))
	r.describe("Heal %d", amount)
}

// gainCrystal adds a crystal; at the cap the mana becomes a token instead.
func (r *resolver) gainCrystal(c mana.Color) {
	p := r.player()
	crystals, added := p.Crystals.Add(c, 1)
	if added == 0 {
		p.PureMana = append(slices.Clone(p.PureMana), mana.Token{Color: c, Source: mana.FromCrystal})
		r.emit(events.New(events.ManaTokenGained, r.playerID).WithMeta("color", string(c)))
		r.describe("Gained %s mana (crystals full)", c)
		return
	}
	p.Crystals = crystals
	r.emit(events.New(events.CrystalGained, r.playerID).WithMeta("color", string(c)))
	r.describe("Gained %s crystal", c)
}

func (r *resolver) drawCards(count int) {
	p := r.player()
	n := min(count, len(p.Deck))
	if n == 0 {
		r.noOp("No cards left to draw")
		return
	}
	p.Hand = append(slices.Clone(p.Hand), p.Deck[:n]...)
	p.Deck = slices.Clone(p.Deck[n:])
	r.revealed = true
	r.emit(events.New(events.CardsDrawn, r.playerID).WithAmount(n))
	r.describe("Drew %d card(s)", n)
}

// compound runs effects left to right. A choice stops the run; the remaining
// effects are folded into each option.
func (r *resolver) compound(list []state.Effect, rest []state.Effect) {
	for i, e := range list {
		tail := append(slices.Clone(list[i+1:]), rest...)
		r.resolve(e, tail)
		if r.choice || r.discard {
			return
		}
	}
}

// withRest prefixes each option to the effects still pending.
func withRest(options []state.Effect, rest []state.Effect) []state.Effect {
	if len(rest) == 0 {
		return options
	}
	out := make([]state.Effect, len(options))
	for i, o := range options {
		out[i] = state.Compound{Effects: append([]state.Effect{o}, rest...)}
	}
	return out
}

// choose resolves a single resolvable option directly and parks two or more
// in the player's choice slot.
func (r *resolver) choose(options []state.Effect, rest []state.Effect) {
	var viable []state.Effect
	for _, o := range options {
		if IsResolvable(r.s, r.playerID, o) {
			viable = append(viable, o)
		}
	}
	switch len(viable) {
	case 0:
		if len(options) == 0 {
			r.noOp("Nothing to choose from")
		} else {
			r.noOp("No option can be resolved")
		}
		return
	case 1:
		r.resolve(viable[0], rest)
		return
	}
	viable = withRest(viable, rest)
	p := r.player()
	p.Choice = state.Awaiting(state.PendingChoice{Source: r.source, Options: viable})
	r.choice = true
	r.options = viable
	r.emit(events.New(events.ChoiceRequired, r.playerID).WithSource(r.source.ID).WithAmount(len(viable)))
	r.describe("Choose one of %d options", len(viable))
}

func discardEligible(p state.Player, allowWounds bool) []state.CardID {
	var out []state.CardID
	for _, c := range p.Hand {
		if c == state.WoundCard && !allowWounds {
			continue
		}
		out = append(out, c)
	}
	return out
}

// discardCost parks the discard; the follow-up effect and anything left of
// an enclosing compound run once the cards are picked.
func (r *resolver) discardCost(e state.DiscardCost, rest []state.Effect) {
	p := r.player()
	if len(discardEligible(*p, e.AllowWounds)) < e.Count {
		r.noOp("Not enough cards to discard")
		return
	}
	then := e.Then
	if len(rest) > 0 {
		then = state.Compound{Effects: append([]state.Effect{e.Then}, rest...)}
	}
	p.PendingDiscard = &state.PendingDiscard{Source: r.source, Count: e.Count, AllowWounds: e.AllowWounds, Then: then}
	r.discard = true
	r.emit(events.New(events.DiscardRequired, r.playerID).WithSource(r.source.ID).WithAmount(e.Count))
	r.describe("Discard %d card(s)", e.Count)
}

func discardForCrystalOptions(s state.GameState, playerID string) []state.Effect {
	p, ok := s.Player(playerID)
	if !ok {
		return nil
	}
	var out []state.Effect
	seen := map[state.CardID]bool{}
	for _, id := range p.Hand {
		if seen[id] {
			continue
		}
		seen[id] = true
		def, ok := catalog.Card(id)
		if !ok || !def.Color.IsBasic() {
			continue
		}
		if def.Kind != catalog.BasicAction && def.Kind != catalog.AdvancedAction {
			continue
		}
		out = append(out, state.DiscardCardForCrystal{CardID: id, Color: def.Color})
	}
	return out
}

func (r *resolver) discardCardForCrystal(e state.DiscardCardForCrystal) {
	p := r.player()
	i := p.HandIndex(e.CardID)
	if i < 0 {
		r.noOp("%s is not in hand", e.CardID)
		return
	}
	p.Hand = slices.Delete(slices.Clone(p.Hand), i, i+1)
	p.Discard = append(slices.Clone(p.Discard), e.CardID)
	r.emit(events.New(events.CardDiscarded, r.playerID).WithTarget(string(e.CardID)))
	r.gainCrystal(e.Color)
}

func crystallizeOptions(s state.GameState, playerID string) []state.Effect {
	p, ok := s.Player(playerID)
	if !ok {
		return nil
	}
	var out []state.Effect
	for _, c := range mana.BasicColors {
		if mana.CountTokens(p.PureMana, c) > 0 {
			out = append(out, state.CrystallizeColor{Color: c})
		}
	}
	return out
}

func (r *resolver) crystallize(c mana.Color) {
	p := r.player()
	idx := -1
	for i := len(p.PureMana) - 1; i >= 0; i-- {
		if p.PureMana[i].Color == c {
			idx = i
			break
		}
	}
	if idx < 0 {
		r.noOp("No %s mana to crystallize", c)
		return
	}
	p.PureMana = slices.Delete(slices.Clone(p.PureMana), idx, idx+1)
	r.emit(events.New(events.ManaTokenUsed, r.playerID).WithMeta("color", string(c)))
	r.gainCrystal(c)
}

func offerOptions(s state.GameState, kind state.OfferKind) []state.Effect {
	var out []state.Effect
	seen := map[state.CardID]bool{}
	for _, id := range s.Offers.Cards(kind) {
		if !seen[id] {
			seen[id] = true
			out = append(out, state.TakeOfferCard{Offer: kind, CardID: id})
		}
	}
	return out
}

// takeOfferCard moves the card to the player's hand and refills its slot
// from the top of the matching deck.
func (r *resolver) takeOfferCard(e state.TakeOfferCard) {
	offer := slices.Clone(r.s.Offers.Cards(e.Offer))
	i := slices.Index(offer, e.CardID)
	if i < 0 {
		r.noOp("%s is not in the offer", e.CardID)
		return
	}
	deck := slices.Clone(r.s.Decks.Cards(e.Offer))
	offer = slices.Delete(offer, i, i+1)
	if len(deck) > 0 {
		offer = slices.Insert(offer, i, deck[0])
		deck = deck[1:]
		r.revealed = true
	}
	switch e.Offer {
	case state.OfferAdvancedActions:
		r.s.Offers.AdvancedActions = offer
		r.s.Decks.AdvancedActions = deck
	case state.OfferSpells:
		r.s.Offers.Spells = offer
		r.s.Decks.Spells = deck
	default:
		panic("effects: unknown offer " + string(e.Offer))
	}
	p := r.player()
	p.Hand = append(slices.Clone(p.Hand), e.CardID)
	r.emit(events.New(events.OfferCardTaken, r.playerID).WithTarget(string(e.CardID)).WithMeta("offer", string(e.Offer)))
	r.describe("Took %s from the offer", e.CardID)
}

func readyUnitOptions(s state.GameState, playerID string, maxLevel int) []state.Effect {
	p, ok := s.Player(playerID)
	if !ok {
		return nil
	}
	var out []state.Effect
	for _, u := range p.Units {
		if u.State != state.UnitSpent {
			continue
		}
		if catalog.MustUnit(u.UnitID).Level > maxLevel {
			continue
		}
		out = append(out, state.ReadySpecificUnit{UnitInstanceID: u.InstanceID})
	}
	return out
}

func (r *resolver) readyUnit(instanceID string) {
	p := r.player()
	u, i, ok := p.Unit(instanceID)
	if !ok || u.State != state.UnitSpent {
		r.noOp("Unit %s cannot be readied", instanceID)
		return
	}
	p.Units = slices.Clone(p.Units)
	p.Units[i].State = state.UnitReady
	r.emit(events.New(events.UnitReadied, r.playerID).WithTarget(instanceID))
	r.describe("Readied %s", u.UnitID)
}

func weakenOptions(s state.GameState, amount int) []state.Effect {
	if s.Combat == nil {
		return nil
	}
	var out []state.Effect
	for _, e := range s.Combat.Enemies {
		if !e.IsDefeated {
			out = append(out, state.WeakenSpecificEnemy{EnemyInstanceID: e.InstanceID, Amount: amount})
		}
	}
	return out
}

func (r *resolver) weaken(e state.WeakenSpecificEnemy) {
	enemy, _, ok := r.s.Combat.Enemy(e.EnemyInstanceID)
	if !ok || enemy.IsDefeated {
		r.noOp("No enemy %s to weaken", e.EnemyInstanceID)
		return
	}
	m := modifiers.NewBuilder(r.source).ForPlayer(r.playerID).AtRound(r.s.Round).
		OnEnemy(e.EnemyInstanceID).UntilEndOfCombat().
		Build(state.EnemyArmor{Amount: e.Amount, Minimum: 1})
	var id string
	r.s, id = modifiers.Add(r.s, m)
	r.emit(events.New(events.EnemyWeakened, r.playerID).WithTarget(e.EnemyInstanceID).WithAmount(e.Amount).WithMeta("modifierId", id))
	r.describe("%s", Describe(e))
}

func (r *resolver) applyModifier(e state.ApplyModifier) {
	b := modifiers.NewBuilder(r.source).ForPlayer(r.playerID).AtRound(r.s.Round).
		Lasting(e.Duration).Scoped(e.Scope)
	var id string
	r.s, id = modifiers.Add(r.s, b.Build(e.Modifier))
	r.emit(events.New(events.ModifierAdded, r.playerID).WithTarget(id).WithSource(r.source.ID).
		WithMeta("kind", string(e.Modifier.ModifierKind())))
	r.describe("%s", Describe(e))
}

func (r *resolver) attackWithFameBonus(e state.AttackWithFameBonus) {
	if !r.s.InCombat() {
		r.noOp("No combat to attack in")
		return
	}
	r.gainAttack(e.Amount, e.AttackType, e.Element)
	m := modifiers.NewBuilder(r.source).ForPlayer(r.playerID).AtRound(r.s.Round).UntilEndOfCombat().
		Build(state.FameTracker{FamePerEnemy: e.FamePerEnemy, MaxEnemies: e.MaxEnemies})
	var id string
	r.s, id = modifiers.Add(r.s, m)
	r.emit(events.New(events.ModifierAdded, r.playerID).WithTarget(id).WithMeta("kind", string(state.ModFameTracker)))
}

func (r *resolver) conditional(e state.Conditional, rest []state.Effect) {
	if Holds(r.s, r.playerID, e.Condition) {
		r.resolve(e.Then, rest)
		return
	}
	if e.Else == nil {
		r.noOp("Condition not met: %s", e.Condition)
		return
	}
	r.resolve(e.Else, rest)
}

// Holds evaluates a condition expression for playerID. Conditions ship with
// the catalog and are checked by its tests, so a failure here is a defect.
func Holds(s state.GameState, playerID, expression string) bool {
	ok, err := conditions.Default().Holds(expression, s, playerID)
	if err != nil {
		panic(fmt.Sprintf("effects: condition %q: %v", expression, err))
	}
	return ok
}
