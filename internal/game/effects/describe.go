package effects

import (
	"fmt"
	"strings"

	"github.com/mage-knight-digital/MageKnight-sub005/internal/game/state"
)

func describeAttack(amount int, t state.AttackType, el state.Element) string {
	var b strings.Builder
	switch t {
	case state.Ranged:
		b.WriteString("Ranged Attack")
	case state.Siege:
		b.WriteString("Siege Attack")
	default:
		b.WriteString("Attack")
	}
	fmt.Fprintf(&b, " %d", amount)
	if el != state.Physical && el != "" {
		fmt.Fprintf(&b, " (%s)", el)
	}
	return b.String()
}

func describeList(list []state.Effect, sep string) string {
	parts := make([]string, len(list))
	for i, e := range list {
		parts[i] = Describe(e)
	}
	return strings.Join(parts, sep)
}

// Describe renders e as text. It reads nothing but the effect, and it
// repeats every amount and element the effect carries.
func Describe(e state.Effect) string {
	switch e := e.(type) {
	case state.GainAttack:
		return describeAttack(e.Amount, e.AttackType, e.Element)
	case state.GainBlock:
		s := fmt.Sprintf("Block %d", e.Amount)
		if e.Element != state.Physical && e.Element != "" {
			s += fmt.Sprintf(" (%s)", e.Element)
		}
		if e.CountsTwiceAgainstSwift {
			s += ", counts twice against Swift"
		}
		return s
	case state.GainMove:
		return fmt.Sprintf("Move %d", e.Amount)
	case state.GainInfluence:
		return fmt.Sprintf("Influence %d", e.Amount)
	case state.GainHealing:
		return fmt.Sprintf("Heal %d", e.Amount)
	case state.GainMana:
		return fmt.Sprintf("Gain 1 %s mana", e.Color)
	case state.GainCrystal:
		return fmt.Sprintf("Gain 1 %s crystal", e.Color)
	case state.GainFame:
		return fmt.Sprintf("Fame +%d", e.Amount)
	case state.ChangeReputation:
		return fmt.Sprintf("Reputation %+d", e.Amount)
	case state.DrawCards:
		if e.Count == 1 {
			return "Draw 1 card"
		}
		return fmt.Sprintf("Draw %d cards", e.Count)
	case state.Compound:
		return describeList(e.Effects, ", then ")
	case state.Choice:
		return "Choose one: " + describeList(e.Options, " or ")
	case state.DiscardCost:
		s := fmt.Sprintf("Discard %d card", e.Count)
		if e.Count != 1 {
			s += "s"
		}
		if e.AllowWounds {
			s += " (wounds allowed)"
		}
		return s + " to: " + Describe(e.Then)
	case state.DiscardForCrystal:
		return "Discard a coloured action card to gain a crystal of its colour"
	case state.DiscardCardForCrystal:
		return fmt.Sprintf("Discard %s to gain 1 %s crystal", e.CardID, e.Color)
	case state.CrystallizeToken:
		return "Turn one mana token into a crystal of its colour"
	case state.CrystallizeColor:
		return fmt.Sprintf("Turn 1 %s mana into a %s crystal", e.Color, e.Color)
	case state.TakeFromOffer:
		return fmt.Sprintf("Take a card from the %s offer", strings.ReplaceAll(string(e.Offer), "_", " "))
	case state.TakeOfferCard:
		return fmt.Sprintf("Take %s from the %s offer", e.CardID, strings.ReplaceAll(string(e.Offer), "_", " "))
	case state.ReadyUnit:
		return fmt.Sprintf("Ready a unit of level %d or lower", e.MaxLevel)
	case state.ReadySpecificUnit:
		return fmt.Sprintf("Ready unit %s", e.UnitInstanceID)
	case state.WeakenEnemy:
		return fmt.Sprintf("An enemy gets Armor -%d", e.Amount)
	case state.WeakenSpecificEnemy:
		return fmt.Sprintf("%s gets Armor -%d", e.EnemyInstanceID, e.Amount)
	case state.ApplyModifier:
		if e.Description != "" {
			return e.Description
		}
		return DescribeModifier(e.Modifier)
	case state.AttackWithFameBonus:
		return fmt.Sprintf("%s, Fame +%d per enemy defeated (max %d)",
			describeAttack(e.Amount, e.AttackType, e.Element), e.FamePerEnemy, e.MaxEnemies)
	case state.Conditional:
		s := fmt.Sprintf("If %s: %s", e.Condition, Describe(e.Then))
		if e.Else != nil {
			s += ", otherwise " + Describe(e.Else)
		}
		return s
	default:
		panic(fmt.Sprintf("effects: Describe: unhandled effect %T", e))
	}
}

// DescribeModifier renders a modifier payload as text.
func DescribeModifier(m state.ModifierEffect) string {
	switch m := m.(type) {
	case state.UnitAbilityBonus:
		return fmt.Sprintf("+%d to the next unit %s", m.Bonus, strings.ReplaceAll(string(m.Ability), "_", " "))
	case state.DamageReduction:
		return fmt.Sprintf("Reduce the next enemy attack by %d (physical) or %d (other)", m.Physical, m.NonPhysical)
	case state.FameTracker:
		return fmt.Sprintf("Fame +%d per enemy defeated (%d/%d)", m.FamePerEnemy, len(m.DefeatedEnemies), m.MaxEnemies)
	case state.EndlessMana:
		colors := make([]string, len(m.Colors))
		for i, c := range m.Colors {
			colors[i] = string(c)
		}
		return "Endless " + strings.Join(colors, " and ") + " mana"
	case state.RuleActive:
		return "Rule: " + strings.ReplaceAll(string(m.Rule), "_", " ")
	case state.TerrainCost:
		terrain := "all terrain"
		if m.Terrain != "" {
			terrain = string(m.Terrain)
		}
		return fmt.Sprintf("Move cost of %s -%d (min %d)", terrain, m.Amount, m.Minimum)
	case state.RecruitDiscount:
		return fmt.Sprintf("Next recruit costs %d less", m.Amount)
	case state.EnemyArmor:
		return fmt.Sprintf("Armor -%d (min %d)", m.Amount, m.Minimum)
	case state.KeepTrophy:
		return "Keep the next defeated enemy as a trophy"
	default:
		panic(fmt.Sprintf("effects: DescribeModifier: unhandled modifier %T", m))
	}
}
