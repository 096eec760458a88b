package state

import "github.com/mage-knight-digital/MageKnight-sub005/internal/game/mana"

// GamePhase is the top-level phase of a round.
type GamePhase string

const (
	PhaseTacticsSelection GamePhase = "tactics_selection"
	PhasePlayerTurns      GamePhase = "player_turns"
	PhaseGameOver         GamePhase = "game_over"
)

// TimeOfDay alternates every round.
type TimeOfDay string

const (
	Day   TimeOfDay = "day"
	Night TimeOfDay = "night"
)

// GameState is the root snapshot. Engine functions never mutate a state they
// receive; they work on a Clone.
type GameState struct {
	GameID             string           `json:"gameId"`
	Phase              GamePhase        `json:"phase"`
	Round              int              `json:"round"`
	RoundLimit         int              `json:"roundLimit,omitempty"`
	TimeOfDay          TimeOfDay        `json:"timeOfDay"`
	Players            []Player         `json:"players"`
	TurnOrder          []string         `json:"turnOrder,omitempty"`
	CurrentPlayerIndex int              `json:"currentPlayerIndex"`
	AvailableTactics   []TacticID       `json:"availableTactics,omitempty"`
	Map                MapState         `json:"map"`
	Source             mana.Source      `json:"source"`
	Offers             Offers           `json:"offers"`
	Decks              Decks            `json:"decks"`
	Combat             *CombatState     `json:"combat,omitempty"`
	ActiveModifiers    []ActiveModifier `json:"activeModifiers,omitempty"`
	ModifierSeq        int              `json:"modifierSeq,omitempty"`
	UnitSeq            int              `json:"unitSeq,omitempty"`
	// EndOfRoundAnnouncedBy is the player who announced the end of the
	// round; the round ends when the turn would pass back to them.
	EndOfRoundAnnouncedBy string `json:"endOfRoundAnnouncedBy,omitempty"`
	RNG                   RNG    `json:"rng"`
}

// IsDay reports whether it is day.
func (s GameState) IsDay() bool {
	return s.TimeOfDay != Night
}

// CurrentPlayerID returns the id of the player whose turn it is, or "" when
// no turn is running.
func (s GameState) CurrentPlayerID() string {
	if s.Phase != PhasePlayerTurns {
		return ""
	}
	if s.CurrentPlayerIndex < 0 || s.CurrentPlayerIndex >= len(s.TurnOrder) {
		return ""
	}
	return s.TurnOrder[s.CurrentPlayerIndex]
}

// PlayerIndex returns the index of the player in Players, or -1.
func (s GameState) PlayerIndex(id string) int {
	for i, p := range s.Players {
		if p.ID == id {
			return i
		}
	}
	return -1
}

// Player returns the player with the given id.
func (s GameState) Player(id string) (Player, bool) {
	i := s.PlayerIndex(id)
	if i < 0 {
		return Player{}, false
	}
	return s.Players[i], true
}

// MustPlayer returns the player or panics. Use it only after validation.
func (s GameState) MustPlayer(id string) Player {
	p, ok := s.Player(id)
	if !ok {
		panic("state: unknown player " + id)
	}
	return p
}

// UpdatePlayer applies fn to the player in place. The receiver must be a
// working copy.
func (s *GameState) UpdatePlayer(id string, fn func(p *Player)) {
	i := s.PlayerIndex(id)
	if i < 0 {
		panic("state: unknown player " + id)
	}
	fn(&s.Players[i])
}

// SetPlayer replaces the player with the same id.
func (s *GameState) SetPlayer(p Player) {
	i := s.PlayerIndex(p.ID)
	if i < 0 {
		panic("state: unknown player " + p.ID)
	}
	s.Players[i] = p
}

// InCombat reports whether combat is running.
func (s GameState) InCombat() bool {
	return s.Combat != nil
}
