package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mage-knight-digital/MageKnight-sub005/internal/game/events"
	"github.com/mage-knight-digital/MageKnight-sub005/internal/game/mana"
	"github.com/mage-knight-digital/MageKnight-sub005/internal/game/state"
)

func TestCheckPayment(t *testing.T) {
	die := func(id string, c mana.Color) mana.Payment {
		return mana.Payment{Kind: mana.PayFromDie, Color: c, DieID: id}
	}
	crystal := func(c mana.Color) mana.Payment { return mana.Payment{Kind: mana.PayFromCrystal, Color: c} }
	token := func(c mana.Color) mana.Payment { return mana.Payment{Kind: mana.PayFromToken, Color: c} }

	tests := []struct {
		name     string
		setup    func(s state.GameState) state.GameState
		cost     Cost
		payments []mana.Payment
		want     error
	}{
		{name: "nothing to pay"},
		{name: "die", cost: Cost{mana.Red}, payments: []mana.Payment{die("die_0", mana.Red)}},
		{name: "gold die by day", cost: Cost{mana.Green}, payments: []mana.Payment{die("die_2", mana.Gold)}},
		{name: "crystal", cost: Cost{mana.Red}, payments: []mana.Payment{crystal(mana.Red)}},
		{name: "token", cost: Cost{mana.Blue}, payments: []mana.Payment{token(mana.Blue)}},
		{name: "missing payment", cost: Cost{mana.Red}, want: ErrPaymentCount},
		{name: "extra payment", payments: []mana.Payment{crystal(mana.Red)}, want: ErrPaymentCount},
		{name: "wrong colour", cost: Cost{mana.White}, payments: []mana.Payment{crystal(mana.Red)}, want: ErrPaymentColor},
		{name: "die colour mismatch", cost: Cost{mana.Blue}, payments: []mana.Payment{die("die_0", mana.Blue)}, want: ErrDieUnavailable},
		{name: "unknown die", cost: Cost{mana.Red}, payments: []mana.Payment{die("die_7", mana.Red)}, want: ErrDieUnavailable},
		{name: "same die twice", cost: Cost{mana.Red, mana.Red},
			setup: func(s state.GameState) state.GameState {
				return withModifier(s, "p1", state.RuleActive{Rule: state.RuleExtraSourceDie})
			},
			payments: []mana.Payment{die("die_0", mana.Red), die("die_0", mana.Red)}, want: ErrDieUnavailable},
		{name: "taken die", cost: Cost{mana.Red},
			setup: func(s state.GameState) state.GameState {
				s.Source.Dice[0].TakenBy = "p2"
				return s
			},
			payments: []mana.Payment{die("die_0", mana.Red)}, want: ErrDieUnavailable},
		{name: "one die per turn", cost: Cost{mana.Red},
			setup: func(s state.GameState) state.GameState {
				s.Players[0].UsedDieIDs = []string{"die_9"}
				return s
			},
			payments: []mana.Payment{die("die_0", mana.Red)}, want: ErrSourceLimit},
		{name: "two dice in one payment", cost: Cost{mana.Red, mana.Green},
			payments: []mana.Payment{die("die_0", mana.Red), die("die_2", mana.Gold)}, want: ErrSourceLimit},
		{name: "extra source die", cost: Cost{mana.Red, mana.Green},
			setup: func(s state.GameState) state.GameState {
				return withModifier(s, "p1", state.RuleActive{Rule: state.RuleExtraSourceDie})
			},
			payments: []mana.Payment{die("die_0", mana.Red), die("die_2", mana.Gold)}},
		{name: "crystal spent once", cost: Cost{mana.Red, mana.Red},
			payments: []mana.Payment{crystal(mana.Red), crystal(mana.Red)}, want: ErrNoCrystal},
		{name: "missing token", cost: Cost{mana.Green}, payments: []mana.Payment{token(mana.Green)}, want: ErrNoToken},
		{name: "black by day", cost: Cost{mana.Black}, payments: []mana.Payment{die("die_1", mana.Black)}, want: ErrBlackByDay},
		{name: "black at night", cost: Cost{mana.Black},
			setup: func(s state.GameState) state.GameState {
				s.TimeOfDay = state.Night
				return s
			},
			payments: []mana.Payment{die("die_1", mana.Black)}},
		{name: "gold at night", cost: Cost{mana.Red},
			setup: func(s state.GameState) state.GameState {
				s.TimeOfDay = state.Night
				return s
			},
			payments: []mana.Payment{die("die_2", mana.Gold)}, want: ErrGoldByNight},
		{name: "endless", cost: Cost{mana.Red},
			setup: func(s state.GameState) state.GameState {
				return withModifier(s, "p1", state.EndlessMana{Colors: []mana.Color{mana.Red}})
			},
			payments: []mana.Payment{{Kind: mana.PayFromEndless, Color: mana.Red}}},
		{name: "no endless supply", cost: Cost{mana.Red}, payments: []mana.Payment{{Kind: mana.PayFromEndless, Color: mana.Red}}, want: ErrNoEndless},
		{name: "unknown kind", cost: Cost{mana.Red}, payments: []mana.Payment{{Kind: "borrowed", Color: mana.Red}}, want: ErrUnknownPayKind},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newState()
			if tt.setup != nil {
				s = tt.setup(s)
			}
			err := CheckPayment(s, "p1", tt.cost, tt.payments)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestPay(t *testing.T) {
	s := newState()
	before, err := state.Canonical(s)
	require.NoError(t, err)

	got, evs := Pay(s, "p1", []mana.Payment{
		{Kind: mana.PayFromDie, Color: mana.Red, DieID: "die_0"},
		{Kind: mana.PayFromCrystal, Color: mana.Red},
		{Kind: mana.PayFromToken, Color: mana.Blue},
	})

	p := got.MustPlayer("p1")
	assert.Equal(t, []string{"die_0"}, p.UsedDieIDs)
	assert.Equal(t, "p1", got.Source.Dice[0].TakenBy)
	assert.Zero(t, p.Crystals.Get(mana.Red))
	assert.Empty(t, p.PureMana)
	require.Len(t, evs, 3)
	assert.Equal(t, events.ManaDieUsed, evs[0].Type)
	assert.Equal(t, events.CrystalUsed, evs[1].Type)
	assert.Equal(t, events.ManaTokenUsed, evs[2].Type)

	after, err := state.Canonical(s)
	require.NoError(t, err)
	assert.JSONEq(t, string(before), string(after), "input state must not change")

	t.Run("nothing to pay", func(t *testing.T) {
		same, evs := Pay(s, "p1", nil)
		assert.Empty(t, evs)
		assert.Equal(t, s.Source, same.Source)
	})

	t.Run("impossible payment panics", func(t *testing.T) {
		assert.Panics(t, func() {
			Pay(s, "p1", []mana.Payment{{Kind: mana.PayFromCrystal, Color: mana.White}})
		})
	})
}
