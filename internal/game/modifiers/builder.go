package modifiers

import "github.com/mage-knight-digital/MageKnight-sub005/internal/game/state"

// Builder provides a fluent API for assembling ledger entries.
type Builder struct {
	source   state.Source
	playerID string
	duration state.Duration
	scope    state.Scope
	round    int
}

// NewBuilder starts a modifier for a source. The defaults are a turn
// duration, self scope and the source's player.
func NewBuilder(source state.Source) *Builder {
	return &Builder{
		source:   source,
		playerID: source.PlayerID,
		duration: state.DurationTurn,
		scope:    state.Scope{Kind: state.ScopeSelf},
	}
}

// ForPlayer sets the owning player.
func (b *Builder) ForPlayer(playerID string) *Builder {
	b.playerID = playerID
	return b
}

// AtRound stamps the creation round.
func (b *Builder) AtRound(round int) *Builder {
	b.round = round
	return b
}

// Lasting sets the duration.
func (b *Builder) Lasting(d state.Duration) *Builder {
	b.duration = d
	return b
}

// UntilEndOfTurn sets the duration to the current turn.
func (b *Builder) UntilEndOfTurn() *Builder { return b.Lasting(state.DurationTurn) }

// UntilEndOfCombat sets the duration to the current combat.
func (b *Builder) UntilEndOfCombat() *Builder { return b.Lasting(state.DurationCombat) }

// UntilEndOfRound sets the duration to the current round.
func (b *Builder) UntilEndOfRound() *Builder { return b.Lasting(state.DurationRound) }

// UntilConsumed keeps the modifier until the effect reading it removes it.
func (b *Builder) UntilConsumed() *Builder { return b.Lasting(state.DurationUntilConsumed) }

// Permanent never expires.
func (b *Builder) Permanent() *Builder { return b.Lasting(state.DurationPermanent) }

// Scoped sets the scope kind without a target.
func (b *Builder) Scoped(kind state.ScopeKind) *Builder {
	b.scope = state.Scope{Kind: kind}
	return b
}

// OnUnit scopes the modifier to one unit.
func (b *Builder) OnUnit(unitInstanceID string) *Builder {
	b.scope = state.Scope{Kind: state.ScopeUnit, UnitInstanceID: unitInstanceID}
	return b
}

// OnEnemy scopes the modifier to one combat enemy.
func (b *Builder) OnEnemy(enemyInstanceID string) *Builder {
	b.scope = state.Scope{Kind: state.ScopeEnemy, EnemyInstanceID: enemyInstanceID}
	return b
}

// Build returns the entry. The id is assigned by Add.
func (b *Builder) Build(effect state.ModifierEffect) state.ActiveModifier {
	return state.ActiveModifier{
		Source:         b.source,
		Duration:       b.duration,
		Scope:          b.scope,
		Effect:         effect,
		CreatedAtRound: b.round,
		PlayerID:       b.playerID,
	}
}
