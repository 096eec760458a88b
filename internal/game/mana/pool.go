package mana

import "fmt"

// Color is a mana colour. Basic colours can be stored as crystals, gold and
// black only exist as dice or tokens.
type Color string

const (
	Red   Color = "red"
	Blue  Color = "blue"
	Green Color = "green"
	White Color = "white"
	Gold  Color = "gold"
	Black Color = "black"
)

// BasicColors lists the four crystal colours in canonical order.
var BasicColors = []Color{Red, Blue, Green, White}

// AllColors lists every colour a die or token can show.
var AllColors = []Color{Red, Blue, Green, White, Gold, Black}

// IsBasic reports whether c can be held as a crystal.
func (c Color) IsBasic() bool {
	switch c {
	case Red, Blue, Green, White:
		return true
	}
	return false
}

// Valid reports whether c is a known colour.
func (c Color) Valid() bool {
	return c.IsBasic() || c == Gold || c == Black
}

// MaxCrystalsPerColor is the inventory cap for a single crystal colour.
const MaxCrystalsPerColor = 3

// Crystals is a player's crystal inventory. It is a plain value so that
// copying a player copies the inventory.
type Crystals struct {
	Red   int `json:"red,omitempty" yaml:"red,omitempty"`
	Blue  int `json:"blue,omitempty" yaml:"blue,omitempty"`
	Green int `json:"green,omitempty" yaml:"green,omitempty"`
	White int `json:"white,omitempty" yaml:"white,omitempty"`
}

// Get returns the number of crystals of colour c.
func (c Crystals) Get(color Color) int {
	switch color {
	case Red:
		return c.Red
	case Blue:
		return c.Blue
	case Green:
		return c.Green
	case White:
		return c.White
	}
	return 0
}

// Add returns the inventory with amount crystals of colour added, capped at
// MaxCrystalsPerColor. The second return value is how many were actually
// added.
func (c Crystals) Add(color Color, amount int) (Crystals, int) {
	if amount <= 0 || !color.IsBasic() {
		return c, 0
	}
	current := c.Get(color)
	next := current + amount
	if next > MaxCrystalsPerColor {
		next = MaxCrystalsPerColor
	}
	return c.set(color, next), next - current
}

// Spend returns the inventory with one crystal of colour removed. ok is false
// when there is none to spend.
func (c Crystals) Spend(color Color) (Crystals, bool) {
	current := c.Get(color)
	if current <= 0 {
		return c, false
	}
	return c.set(color, current-1), true
}

// Total returns the number of crystals across all colours.
func (c Crystals) Total() int {
	return c.Red + c.Blue + c.Green + c.White
}

func (c Crystals) set(color Color, value int) Crystals {
	switch color {
	case Red:
		c.Red = value
	case Blue:
		c.Blue = value
	case Green:
		c.Green = value
	case White:
		c.White = value
	default:
		panic(fmt.Sprintf("mana: %q cannot be stored as a crystal", color))
	}
	return c
}

// TokenSource records where a pure mana token came from.
type TokenSource string

const (
	FromCard    TokenSource = "card"
	FromCrystal TokenSource = "crystal"
	FromSkill   TokenSource = "skill"
	FromUnit    TokenSource = "unit"
)

// Token is a pure mana token held until the end of the turn.
type Token struct {
	Color  Color       `json:"color" yaml:"color"`
	Source TokenSource `json:"source" yaml:"source"`
}

// CountTokens returns how many tokens of colour c are in tokens.
func CountTokens(tokens []Token, c Color) int {
	n := 0
	for _, t := range tokens {
		if t.Color == c {
			n++
		}
	}
	return n
}
