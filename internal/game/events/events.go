package events

import (
	"strconv"
	"sync"
)

// Type is the tag of a domain event. Events are returned alongside every
// processed action and are never part of the game state.
type Type string

const (
	// Game and turn flow
	GameStarted         Type = "GAME_STARTED"
	GameEnded           Type = "GAME_ENDED"
	TacticSelected      Type = "TACTIC_SELECTED"
	TurnStarted         Type = "TURN_STARTED"
	TurnEnded           Type = "TURN_ENDED"
	RoundEnded          Type = "ROUND_ENDED"
	EndOfRoundAnnounced Type = "END_OF_ROUND_ANNOUNCED"
	RoundStarted        Type = "ROUND_STARTED"
	TimeOfDayChanged    Type = "TIME_OF_DAY_CHANGED"
	SourceRerolled      Type = "SOURCE_REROLLED"
	Undone              Type = "UNDONE"
	InvalidAction       Type = "INVALID_ACTION"

	// Movement
	PlayerMoved Type = "PLAYER_MOVED"

	// Cards and mana
	CardPlayed         Type = "CARD_PLAYED"
	CardPlayedSideways Type = "CARD_PLAYED_SIDEWAYS"
	CardsDrawn         Type = "CARDS_DRAWN"
	CardDiscarded      Type = "CARD_DISCARDED"
	CardDestroyed      Type = "CARD_DESTROYED"
	ManaDieUsed        Type = "MANA_DIE_USED"
	ManaTokenGained    Type = "MANA_TOKEN_GAINED"
	ManaTokenUsed      Type = "MANA_TOKEN_USED"
	CrystalGained      Type = "CRYSTAL_GAINED"
	CrystalUsed        Type = "CRYSTAL_USED"
	CrystalConverted   Type = "CRYSTAL_CONVERTED"
	OfferCardTaken     Type = "OFFER_CARD_TAKEN"
	OfferRefilled      Type = "OFFER_REFILLED"

	// Player values
	AttackGained      Type = "ATTACK_GAINED"
	BlockGained       Type = "BLOCK_GAINED"
	MoveGained        Type = "MOVE_GAINED"
	InfluenceGained   Type = "INFLUENCE_GAINED"
	HealingGained     Type = "HEALING_GAINED"
	Healed            Type = "HEALED"
	FameGained        Type = "FAME_GAINED"
	ReputationChanged Type = "REPUTATION_CHANGED"
	EffectNoOp        Type = "EFFECT_NO_OP"

	// Choices
	ChoiceRequired   Type = "CHOICE_REQUIRED"
	ChoiceResolved   Type = "CHOICE_RESOLVED"
	DiscardRequired  Type = "DISCARD_REQUIRED"
	DiscardResolved  Type = "DISCARD_RESOLVED"
	DeepMineRequired Type = "DEEP_MINE_REQUIRED"
	DeepMineResolved Type = "DEEP_MINE_RESOLVED"
	CrystalMined     Type = "CRYSTAL_MINED"

	// Units and skills
	UnitRecruited Type = "UNIT_RECRUITED"
	UnitActivated Type = "UNIT_ACTIVATED"
	UnitReadied   Type = "UNIT_READIED"
	UnitWounded   Type = "UNIT_WOUNDED"
	UnitDestroyed Type = "UNIT_DESTROYED"
	UnitHealed    Type = "UNIT_HEALED"
	SkillUsed     Type = "SKILL_USED"

	// Modifiers
	ModifierAdded    Type = "MODIFIER_ADDED"
	ModifierConsumed Type = "MODIFIER_CONSUMED"
	ModifiersExpired Type = "MODIFIERS_EXPIRED"

	// Combat
	CombatStarted      Type = "COMBAT_STARTED"
	CombatPhaseChanged Type = "COMBAT_PHASE_CHANGED"
	AttackAssigned     Type = "ATTACK_ASSIGNED"
	AttackUnassigned   Type = "ATTACK_UNASSIGNED"
	BlockAssigned      Type = "BLOCK_ASSIGNED"
	BlockUnassigned    Type = "BLOCK_UNASSIGNED"
	EnemyBlocked       Type = "ENEMY_BLOCKED"
	BlockFailed        Type = "BLOCK_FAILED"
	AttackFailed       Type = "ATTACK_FAILED"
	EnemyDefeated      Type = "ENEMY_DEFEATED"
	EnemyWeakened      Type = "ENEMY_WEAKENED"
	DamageAssigned     Type = "DAMAGE_ASSIGNED"
	WoundTaken         Type = "WOUND_TAKEN"
	TrophyKept         Type = "TROPHY_KEPT"
	SiteConquered      Type = "SITE_CONQUERED"
	CombatEnded        Type = "COMBAT_ENDED"
)

// Event is one entry of the event log.
type Event struct {
	Type     Type              `json:"type"`
	PlayerID string            `json:"playerId,omitempty"`
	TargetID string            `json:"targetId,omitempty"`
	SourceID string            `json:"sourceId,omitempty"`
	Amount   int               `json:"amount,omitempty"`
	Code     string            `json:"code,omitempty"`
	Reason   string            `json:"reason,omitempty"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// New creates an event for playerID.
func New(t Type, playerID string) Event {
	return Event{Type: t, PlayerID: playerID}
}

// WithTarget returns e with TargetID set.
func (e Event) WithTarget(id string) Event {
	e.TargetID = id
	return e
}

// WithSource returns e with SourceID set.
func (e Event) WithSource(id string) Event {
	e.SourceID = id
	return e
}

// WithAmount returns e with Amount set.
func (e Event) WithAmount(n int) Event {
	e.Amount = n
	return e
}

// WithMeta returns e with one more metadata entry. The map is copied.
func (e Event) WithMeta(key, value string) Event {
	m := make(map[string]string, len(e.Metadata)+1)
	for k, v := range e.Metadata {
		m[k] = v
	}
	m[key] = value
	e.Metadata = m
	return e
}

// WithIntMeta is WithMeta for integer values.
func (e Event) WithIntMeta(key string, value int) Event {
	return e.WithMeta(key, strconv.Itoa(value))
}

// Invalid is the INVALID_ACTION event carried back for a rejected action.
func Invalid(playerID, code, reason string) Event {
	return Event{Type: InvalidAction, PlayerID: playerID, Code: code, Reason: reason}
}

// Log is an ordered event list.
type Log []Event

// OfType returns the events of type t in order.
func (l Log) OfType(t Type) Log {
	var out Log
	for _, e := range l {
		if e.Type == t {
			out = append(out, e)
		}
	}
	return out
}

// Has reports whether the log contains an event of type t.
func (l Log) Has(t Type) bool {
	for _, e := range l {
		if e.Type == t {
			return true
		}
	}
	return false
}

// Listener receives published events.
type Listener func(Event)

type typedListener struct {
	handle   int
	callback Listener
}

// Bus fans events out to subscribers synchronously.
type Bus struct {
	mu         sync.RWMutex
	nextHandle int
	listeners  map[int]Listener
	typed      map[Type][]typedListener
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{
		listeners: make(map[int]Listener),
		typed:     make(map[Type][]typedListener),
	}
}

// Subscribe registers a listener for all events and returns a handle.
func (b *Bus) Subscribe(listener Listener) int {
	if listener == nil {
		return -1
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	h := b.nextHandle
	b.nextHandle++
	b.listeners[h] = listener
	return h
}

// SubscribeTyped registers a listener for one event type.
func (b *Bus) SubscribeTyped(t Type, callback Listener) int {
	if callback == nil {
		return -1
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	h := b.nextHandle
	b.nextHandle++
	b.typed[t] = append(b.typed[t], typedListener{handle: h, callback: callback})
	return h
}

// Unsubscribe removes the listener identified by handle.
func (b *Bus) Unsubscribe(handle int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.listeners, handle)
	for t, ls := range b.typed {
		for i := len(ls) - 1; i >= 0; i-- {
			if ls[i].handle == handle {
				b.typed[t] = append(ls[:i:i], ls[i+1:]...)
				break
			}
		}
	}
}

// Publish delivers e to all matching listeners.
func (b *Bus) Publish(e Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, l := range b.listeners {
		l(e)
	}
	for _, l := range b.typed[e.Type] {
		l.callback(e)
	}
}

// PublishAll publishes events in order.
func (b *Bus) PublishAll(log []Event) {
	for _, e := range log {
		b.Publish(e)
	}
}
