package state

import (
	"fmt"

	"github.com/mage-knight-digital/MageKnight-sub005/internal/game/mana"
)

// Terrain is the land type of a hex.
type Terrain string

const (
	Plains    Terrain = "plains"
	Hills     Terrain = "hills"
	Forest    Terrain = "forest"
	Wasteland Terrain = "wasteland"
	Desert    Terrain = "desert"
	Swamp     Terrain = "swamp"
	Lake      Terrain = "lake"
	Mountain  Terrain = "mountain"
)

var terrainCosts = map[Terrain][2]int{
	Plains:    {2, 2},
	Hills:     {3, 3},
	Forest:    {3, 5},
	Wasteland: {4, 4},
	Desert:    {5, 3},
	Swamp:     {5, 5},
}

// BaseMoveCost returns the printed move cost of t. ok is false for impassable
// terrain.
func BaseMoveCost(t Terrain, isDay bool) (cost int, ok bool) {
	c, found := terrainCosts[t]
	if !found {
		return 0, false
	}
	if isDay {
		return c[0], true
	}
	return c[1], true
}

// HexCoord is an axial hex coordinate.
type HexCoord struct {
	Q int `json:"q" yaml:"q"`
	R int `json:"r" yaml:"r"`
}

// Key is the map key of the coordinate.
func (c HexCoord) Key() string {
	return fmt.Sprintf("%d,%d", c.Q, c.R)
}

var axialDirections = []HexCoord{{1, 0}, {1, -1}, {0, -1}, {-1, 0}, {-1, 1}, {0, 1}}

// Neighbors returns the six adjacent coordinates.
func (c HexCoord) Neighbors() []HexCoord {
	out := make([]HexCoord, 0, len(axialDirections))
	for _, d := range axialDirections {
		out = append(out, HexCoord{Q: c.Q + d.Q, R: c.R + d.R})
	}
	return out
}

// IsAdjacent reports whether o is a neighbour of c.
func (c HexCoord) IsAdjacent(o HexCoord) bool {
	for _, n := range c.Neighbors() {
		if n == o {
			return true
		}
	}
	return false
}

// SiteType is the kind of site on a hex.
type SiteType string

const (
	SiteVillage   SiteType = "village"
	SiteKeep      SiteType = "keep"
	SiteMageTower SiteType = "mage_tower"
	SiteMine      SiteType = "mine"
	SiteDeepMine  SiteType = "deep_mine"
	SiteDungeon   SiteType = "dungeon"
)

// Site is a location on a hex.
type Site struct {
	Type       SiteType     `json:"type" yaml:"type"`
	Fortified  bool         `json:"fortified,omitempty" yaml:"fortified,omitempty"`
	Conquered  bool         `json:"conquered,omitempty" yaml:"conquered,omitempty"`
	Owner      string       `json:"owner,omitempty" yaml:"owner,omitempty"`
	MineColors []mana.Color `json:"mineColors,omitempty" yaml:"mineColors,omitempty"`
}

// Hex is one map hex. Enemies lists the enemy tokens standing on it.
type Hex struct {
	Coord   HexCoord  `json:"coord" yaml:"coord"`
	Terrain Terrain   `json:"terrain" yaml:"terrain"`
	Site    *Site     `json:"site,omitempty" yaml:"site,omitempty"`
	Enemies []EnemyID `json:"enemies,omitempty" yaml:"enemies,omitempty"`
}

// MapState holds the revealed hexes keyed by HexCoord.Key.
type MapState struct {
	Hexes map[string]Hex `json:"hexes,omitempty"`
}

// Hex returns the hex at c.
func (m MapState) Hex(c HexCoord) (Hex, bool) {
	h, ok := m.Hexes[c.Key()]
	return h, ok
}

// Offers are the face-up cards and units players can acquire.
type Offers struct {
	Units           []UnitID `json:"units,omitempty"`
	AdvancedActions []CardID `json:"advancedActions,omitempty"`
	Spells          []CardID `json:"spells,omitempty"`
}

// Cards returns the card offer of the given kind.
func (o Offers) Cards(kind OfferKind) []CardID {
	switch kind {
	case OfferAdvancedActions:
		return o.AdvancedActions
	case OfferSpells:
		return o.Spells
	}
	return nil
}

// Decks are the face-down piles that refill the offers.
type Decks struct {
	Units           []UnitID `json:"units,omitempty"`
	AdvancedActions []CardID `json:"advancedActions,omitempty"`
	Spells          []CardID `json:"spells,omitempty"`
}

// Cards returns the deck refilling the given offer.
func (d Decks) Cards(kind OfferKind) []CardID {
	switch kind {
	case OfferAdvancedActions:
		return d.AdvancedActions
	case OfferSpells:
		return d.Spells
	}
	return nil
}
