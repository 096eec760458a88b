package engine

import (
	"fmt"
	"slices"

	"github.com/mage-knight-digital/MageKnight-sub005/internal/config"
	"github.com/mage-knight-digital/MageKnight-sub005/internal/game/catalog"
	"github.com/mage-knight-digital/MageKnight-sub005/internal/game/events"
	"github.com/mage-knight-digital/MageKnight-sub005/internal/game/mana"
	"github.com/mage-knight-digital/MageKnight-sub005/internal/game/rules"
	"github.com/mage-knight-digital/MageKnight-sub005/internal/game/state"
)

const (
	advancedActionOffer = 3
	spellOffer          = 3
)

// StartingMap is the revealed area every game begins on. Heroes start on
// the centre hex.
func StartingMap() state.MapState {
	hexes := []state.Hex{
		{Coord: state.HexCoord{}, Terrain: state.Plains},
		{Coord: state.HexCoord{Q: 1}, Terrain: state.Forest},
		{Coord: state.HexCoord{Q: 1, R: -1}, Terrain: state.Plains, Site: &state.Site{Type: state.SiteVillage}},
		{Coord: state.HexCoord{R: -1}, Terrain: state.Hills, Enemies: []state.EnemyID{"orc_skirmishers"}},
		{Coord: state.HexCoord{Q: -1}, Terrain: state.Plains, Site: &state.Site{Type: state.SiteMine, MineColors: []mana.Color{mana.Blue}}},
		{Coord: state.HexCoord{Q: -1, R: 1}, Terrain: state.Lake},
		{Coord: state.HexCoord{R: 1}, Terrain: state.Hills, Site: &state.Site{Type: state.SiteKeep, Fortified: true}, Enemies: []state.EnemyID{"guardsmen"}},
		{Coord: state.HexCoord{Q: 2, R: -1}, Terrain: state.Wasteland, Site: &state.Site{Type: state.SiteDeepMine, MineColors: []mana.Color{mana.Green, mana.White}}},
		{Coord: state.HexCoord{Q: 2, R: -2}, Terrain: state.Plains, Site: &state.Site{Type: state.SiteMageTower, Fortified: true}, Enemies: []state.EnemyID{"fire_mages"}},
		{Coord: state.HexCoord{Q: 1, R: 1}, Terrain: state.Desert, Enemies: []state.EnemyID{"prowlers"}},
		{Coord: state.HexCoord{Q: -1, R: -1}, Terrain: state.Swamp},
		{Coord: state.HexCoord{Q: -2, R: 1}, Terrain: state.Mountain},
	}
	m := state.MapState{Hexes: make(map[string]state.Hex, len(hexes))}
	for _, h := range hexes {
		m.Hexes[h.Coord.Key()] = h
	}
	return m
}

// Setup builds a fresh game in tactics selection. The same gameID and
// configuration always produce the same state.
func Setup(gameID string, cfg config.GameConfig) (state.GameState, []events.Event, error) {
	if err := cfg.Validate(); err != nil {
		return state.GameState{}, nil, err
	}
	s := state.GameState{
		GameID:           gameID,
		Phase:            state.PhaseTacticsSelection,
		Round:            1,
		RoundLimit:       cfg.RoundLimit,
		TimeOfDay:        state.Day,
		AvailableTactics: catalog.TacticsFor(false),
		Map:              StartingMap(),
		RNG:              state.RNG{Seed: cfg.Seed},
	}

	origin := state.HexCoord{}
	for _, pc := range cfg.Players {
		hero, ok := catalog.Hero(state.HeroID(pc.Hero))
		if !ok {
			return state.GameState{}, nil, fmt.Errorf("setup: player %s: unknown hero %q", pc.ID, pc.Hero)
		}
		pos := origin
		p := state.Player{
			ID:            pc.ID,
			Hero:          hero.ID,
			Position:      &pos,
			Level:         1,
			Armor:         cfg.HeroArmor,
			HandLimit:     cfg.HandLimit,
			CommandTokens: cfg.CommandTokens,
			Skills:        slices.Clone(hero.Skills),
			Choice:        state.Idle(),
		}
		p.Deck, s.RNG = state.ShuffleCards(catalog.StartingDeck(), s.RNG)
		p, _ = rules.DrawUpTo(p, p.HandLimit)
		s.Players = append(s.Players, p)
		s.TurnOrder = append(s.TurnOrder, p.ID)
	}

	dice := len(cfg.Players) + 2 + cfg.ExtraSourceDice
	s.Source.Dice = make([]mana.SourceDie, dice)
	for i := range s.Source.Dice {
		s.Source.Dice[i].ID = fmt.Sprintf("die_%d", i)
	}
	roll, rng := s.RNG.Roll()
	s.Source = s.Source.Roll(roll)
	s.RNG = *rng

	var (
		units  []state.UnitID
		aas    []state.CardID
		spells []state.CardID
	)
	units, s.RNG = state.ShuffleCards(catalog.UnitDeck(), s.RNG)
	s.Offers.Units, s.Decks.Units = deal(units, len(cfg.Players)+2)
	aas, s.RNG = state.ShuffleCards(catalog.Cards(catalog.AdvancedAction), s.RNG)
	s.Offers.AdvancedActions, s.Decks.AdvancedActions = deal(aas, advancedActionOffer)
	spells, s.RNG = state.ShuffleCards(catalog.Cards(catalog.Spell), s.RNG)
	s.Offers.Spells, s.Decks.Spells = deal(spells, spellOffer)

	evs := []events.Event{
		events.New(events.GameStarted, "").WithAmount(len(s.Players)).WithMeta("gameId", gameID),
		events.New(events.RoundStarted, "").WithIntMeta("round", s.Round),
	}
	return s, evs, nil
}

func deal[T any](deck []T, n int) (offer, rest []T) {
	n = min(n, len(deck))
	return slices.Clone(deck[:n]), slices.Clone(deck[n:])
}
