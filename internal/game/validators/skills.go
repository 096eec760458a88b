package validators

import (
	"slices"

	"github.com/mage-knight-digital/MageKnight-sub005/internal/game/actions"
	"github.com/mage-knight-digital/MageKnight-sub005/internal/game/catalog"
	"github.com/mage-knight-digital/MageKnight-sub005/internal/game/effects"
	"github.com/mage-knight-digital/MageKnight-sub005/internal/game/state"
)

// OnCooldown reports whether the player used skill recently enough that it
// is not available yet.
func OnCooldown(p state.Player, skill state.SkillID) bool {
	c := p.Cooldowns
	return slices.Contains(c.UsedThisTurn, skill) ||
		slices.Contains(c.UsedThisRound, skill) ||
		slices.Contains(c.UsedThisCombat, skill) ||
		slices.Contains(c.ActiveUntilNextTurn, skill)
}

// Skills governs USE_SKILL.
func Skills(s state.GameState, playerID string, a actions.Action) Result {
	use, ok := a.(actions.UseSkill)
	if !ok {
		return Valid()
	}
	p := s.MustPlayer(playerID)
	def, known := catalog.Skill(use.SkillID)
	if !known || !p.HasSkill(use.SkillID) {
		return Invalid(UnknownSkill, "You do not have %s", use.SkillID)
	}
	if OnCooldown(p, use.SkillID) {
		return Invalid(SkillCooldown, "%s is not ready yet", def.Name)
	}
	if def.CombatOnly && !s.InCombat() {
		return Invalid(SkillCombatOnly, "%s is only used in combat", def.Name)
	}
	if !effects.IsResolvable(s, playerID, def.Effect) {
		return Invalid(EffectNotUsable, "%s would have no effect now", def.Name)
	}
	return Valid()
}

// Tactics governs SELECT_TACTIC.
func Tactics(s state.GameState, playerID string, a actions.Action) Result {
	sel, ok := a.(actions.SelectTactic)
	if !ok {
		return Valid()
	}
	if s.MustPlayer(playerID).TacticID != "" {
		return Invalid(TacticChosen, "You already picked a tactic")
	}
	if !slices.Contains(s.AvailableTactics, sel.TacticID) {
		return Invalid(TacticTaken, "%s is not available", sel.TacticID)
	}
	return Valid()
}
