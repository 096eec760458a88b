package mana

// SourceDie is one die of the shared mana source.
type SourceDie struct {
	ID         string `json:"id"`
	Color      Color  `json:"color"`
	TakenBy    string `json:"takenBy,omitempty"`
	IsDepleted bool   `json:"isDepleted,omitempty"`
}

// Source is the shared dice pool. Every player reads it, only the acting
// player's commands change it.
type Source struct {
	Dice []SourceDie `json:"dice,omitempty"`
}

// Copy returns a deep copy of the source.
func (s Source) Copy() Source {
	if s.Dice == nil {
		return Source{}
	}
	dice := make([]SourceDie, len(s.Dice))
	copy(dice, s.Dice)
	return Source{Dice: dice}
}

// Die returns the die with the given id.
func (s Source) Die(id string) (SourceDie, int, bool) {
	for i, d := range s.Dice {
		if d.ID == id {
			return d, i, true
		}
	}
	return SourceDie{}, -1, false
}

// Available reports whether a die can currently be taken: not taken, not
// depleted, and not a colour that is unusable at this time of day.
func (d SourceDie) Available(isDay bool) bool {
	if d.TakenBy != "" || d.IsDepleted {
		return false
	}
	if isDay && d.Color == Black {
		return false
	}
	if !isDay && d.Color == Gold {
		return false
	}
	return true
}

// Roll rerolls every die using roll, which must return an index into
// AllColors. Taken and depleted flags are cleared. Depletion is recomputed by
// the caller, which knows the time of day.
func (s Source) Roll(roll func(n int) int) Source {
	out := s.Copy()
	for i := range out.Dice {
		out.Dice[i].Color = AllColors[roll(len(AllColors))]
		out.Dice[i].TakenBy = ""
		out.Dice[i].IsDepleted = false
	}
	return out
}

// Release returns every die taken by playerID to the pool, rerolling each with
// roll.
func (s Source) Release(playerID string, roll func(n int) int) Source {
	out := s.Copy()
	for i := range out.Dice {
		if out.Dice[i].TakenBy == playerID {
			out.Dice[i].TakenBy = ""
			out.Dice[i].Color = AllColors[roll(len(AllColors))]
		}
	}
	return out
}
