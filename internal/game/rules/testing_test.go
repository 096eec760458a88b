package rules

import (
	"github.com/mage-knight-digital/MageKnight-sub005/internal/game/mana"
	"github.com/mage-knight-digital/MageKnight-sub005/internal/game/modifiers"
	"github.com/mage-knight-digital/MageKnight-sub005/internal/game/state"
)

func newState() state.GameState {
	origin := state.HexCoord{}
	hexes := map[string]state.Hex{}
	for _, h := range []state.Hex{
		{Coord: origin, Terrain: state.Plains, Site: &state.Site{Type: state.SiteVillage}},
		{Coord: state.HexCoord{Q: 1}, Terrain: state.Forest},
		{Coord: state.HexCoord{Q: -1}, Terrain: state.Lake},
		{Coord: state.HexCoord{R: 1}, Terrain: state.Hills, Enemies: []state.EnemyID{"prowlers"}},
		{Coord: state.HexCoord{Q: 1, R: -1}, Terrain: state.Plains, Site: &state.Site{Type: state.SiteKeep, Fortified: true}, Enemies: []state.EnemyID{"guardsmen"}},
		{Coord: state.HexCoord{Q: -1, R: 1}, Terrain: state.Plains, Site: &state.Site{Type: state.SiteMine, MineColors: []mana.Color{mana.Blue}}},
		{Coord: state.HexCoord{R: -1}, Terrain: state.Hills, Site: &state.Site{Type: state.SiteDeepMine, MineColors: []mana.Color{mana.Green, mana.White}}},
	} {
		hexes[h.Coord.Key()] = h
	}
	player := func(id string) state.Player {
		pos := origin
		return state.Player{
			ID:            id,
			Hero:          "tovak",
			Position:      &pos,
			Level:         1,
			Armor:         2,
			HandLimit:     3,
			CommandTokens: 1,
			Hand:          []state.CardID{"march", "rage"},
			Deck:          []state.CardID{"stamina", "swiftness", "promise"},
			Crystals:      mana.Crystals{Red: 1},
			PureMana:      []mana.Token{{Color: mana.Blue, Source: mana.FromCard}},
			Choice:        state.Idle(),
		}
	}
	return state.GameState{
		GameID:     "g1",
		Phase:      state.PhasePlayerTurns,
		Round:      1,
		RoundLimit: 3,
		TimeOfDay:  state.Day,
		Players:    []state.Player{player("p1"), player("p2")},
		TurnOrder:  []string{"p1", "p2"},
		Map:        state.MapState{Hexes: hexes},
		Source: mana.Source{Dice: []mana.SourceDie{
			{ID: "die_0", Color: mana.Red},
			{ID: "die_1", Color: mana.Black},
			{ID: "die_2", Color: mana.Gold},
		}},
		RNG: state.RNG{Seed: 42},
	}
}

func withModifier(s state.GameState, playerID string, effect state.ModifierEffect) state.GameState {
	m := modifiers.NewBuilder(state.Source{Kind: state.SourceCard, ID: "test", PlayerID: playerID}).Build(effect)
	s, _ = modifiers.Add(s, m)
	return s
}
