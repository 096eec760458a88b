package mana

// Satisfies reports whether a mana of colour provided can pay for a required
// colour. Gold is wild for basic colours by day only; black is only usable
// at night.
func Satisfies(required, provided Color, isDay bool) bool {
	if provided == Black && isDay {
		return false
	}
	if provided == Gold && !isDay {
		return false
	}
	if required == provided {
		return true
	}
	return provided == Gold && required.IsBasic()
}

// PaymentKind identifies where a paid mana comes from.
type PaymentKind string

const (
	PayFromDie     PaymentKind = "die"
	PayFromCrystal PaymentKind = "crystal"
	PayFromToken   PaymentKind = "token"
	PayFromEndless PaymentKind = "endless"
)

// Payment is one mana supplied towards a cost.
type Payment struct {
	Kind  PaymentKind `json:"kind"`
	Color Color       `json:"color"`
	DieID string      `json:"dieId,omitempty"`
}
