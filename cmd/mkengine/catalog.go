package main

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/mage-knight-digital/MageKnight-sub005/internal/game/catalog"
	"github.com/mage-knight-digital/MageKnight-sub005/internal/game/effects"
	"github.com/mage-knight-digital/MageKnight-sub005/internal/game/state"
)

// listers return the header and rows of one kind of definition.
var listers = map[string]func() ([]string, [][]string){
	"cards":   listCards,
	"units":   listUnits,
	"enemies": listEnemies,
	"heroes":  listHeroes,
	"tactics": listTactics,
}

func newCatalogCmd(_ *app) *cobra.Command {
	kinds := make([]string, 0, len(listers))
	for k := range listers {
		kinds = append(kinds, k)
	}
	slices.Sort(kinds)

	return &cobra.Command{
		Use:       "catalog [" + strings.Join(kinds, "|") + "]",
		Short:     "List catalog definitions",
		Long:      `Validates the built-in catalog and prints one kind of definition as a table.`,
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: kinds,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := catalog.Validate(); err != nil {
				return fmt.Errorf("catalog: %w", err)
			}
			headers, rows := listers[args[0]]()
			t := table.New().
				Border(lipgloss.NormalBorder()).
				Headers(headers...).
				Rows(rows...)
			_, err := fmt.Fprintln(cmd.OutOrStdout(), t.Render())
			return err
		},
	}
}

func listCards() ([]string, [][]string) {
	var rows [][]string
	for _, kind := range []catalog.CardKind{catalog.BasicAction, catalog.AdvancedAction, catalog.Spell, catalog.Artifact} {
		for _, id := range catalog.Cards(kind) {
			c := catalog.MustCard(id)
			rows = append(rows, []string{string(c.ID), string(c.Kind), string(c.Color), describe(c.Basic), describe(c.Powered)})
		}
	}
	return []string{"ID", "KIND", "COLOR", "BASIC", "POWERED"}, rows
}

func listUnits() ([]string, [][]string) {
	var rows [][]string
	var seen []state.UnitID
	for _, id := range catalog.UnitDeck() {
		if slices.Contains(seen, id) {
			continue
		}
		seen = append(seen, id)
		u := catalog.MustUnit(id)
		var abilities []string
		for _, a := range u.Abilities {
			text := describe(a.Effect())
			if a.ManaCost != "" {
				text += " (" + string(a.ManaCost) + ")"
			}
			abilities = append(abilities, text)
		}
		rows = append(rows, []string{string(u.ID), strconv.Itoa(u.Level), strconv.Itoa(u.Cost), strconv.Itoa(u.Armor), strings.Join(abilities, "; ")})
	}
	return []string{"ID", "LEVEL", "COST", "ARMOR", "ABILITIES"}, rows
}

func listEnemies() ([]string, [][]string) {
	var rows [][]string
	for _, id := range catalog.Enemies() {
		e := catalog.MustEnemy(id)
		var attacks []string
		for _, a := range e.Attacks {
			attacks = append(attacks, fmt.Sprintf("%d %s", a.Value, a.Element))
		}
		var abilities []string
		for _, a := range e.Abilities {
			abilities = append(abilities, string(a))
		}
		rows = append(rows, []string{string(e.ID), string(e.Color), strconv.Itoa(e.Armor), strconv.Itoa(e.Fame), strings.Join(attacks, ", "), strings.Join(abilities, ", ")})
	}
	return []string{"ID", "COLOR", "ARMOR", "FAME", "ATTACKS", "ABILITIES"}, rows
}

func listHeroes() ([]string, [][]string) {
	var rows [][]string
	for _, id := range catalog.Heroes() {
		h, _ := catalog.Hero(id)
		var skills []string
		for _, s := range h.Skills {
			def := catalog.MustSkill(s)
			skills = append(skills, fmt.Sprintf("%s [%s]", def.Name, def.Cooldown))
		}
		rows = append(rows, []string{string(h.ID), h.Name, strings.Join(skills, ", ")})
	}
	return []string{"ID", "NAME", "SKILLS"}, rows
}

func listTactics() ([]string, [][]string) {
	var rows [][]string
	for _, night := range []bool{false, true} {
		for _, id := range catalog.TacticsFor(night) {
			t, _ := catalog.Tactic(id)
			time := "day"
			if t.Night {
				time = "night"
			}
			rows = append(rows, []string{string(t.ID), strconv.Itoa(t.Number), time})
		}
	}
	return []string{"ID", "NUMBER", "TIME"}, rows
}

func describe(e state.Effect) string {
	if e == nil {
		return "-"
	}
	return effects.Describe(e)
}
