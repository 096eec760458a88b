package state

import "math/rand/v2"

// RNG is a deterministic random source stored in the state so that replays
// and undo reproduce the same results. Each draw advances Counter.
type RNG struct {
	Seed    uint64 `json:"seed"`
	Counter uint64 `json:"counter,omitempty"`
}

// IntN returns a value in [0, n) and the advanced generator.
func (r RNG) IntN(n int) (int, RNG) {
	if n <= 0 {
		panic("state: IntN with non-positive n")
	}
	v := rand.New(rand.NewPCG(r.Seed, r.Counter)).IntN(n)
	r.Counter++
	return v, r
}

// Roll returns a roll function for callers that take one, plus a pointer the
// function advances. Read the final generator from the pointer afterwards.
func (r RNG) Roll() (func(n int) int, *RNG) {
	cur := r
	return func(n int) int {
		var v int
		v, cur = cur.IntN(n)
		return v
	}, &cur
}

// ShuffleCards returns a shuffled copy of cards.
func ShuffleCards[T any](cards []T, r RNG) ([]T, RNG) {
	out := make([]T, len(cards))
	copy(out, cards)
	src := rand.New(rand.NewPCG(r.Seed, r.Counter))
	src.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	r.Counter++
	return out, r
}
