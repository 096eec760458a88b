package validators

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mage-knight-digital/MageKnight-sub005/internal/game/actions"
	"github.com/mage-knight-digital/MageKnight-sub005/internal/game/mana"
	"github.com/mage-knight-digital/MageKnight-sub005/internal/game/state"
)

func hex(q, r int, terrain state.Terrain, site *state.Site, enemies ...state.EnemyID) state.Hex {
	return state.Hex{Coord: state.HexCoord{Q: q, R: r}, Terrain: terrain, Site: site, Enemies: enemies}
}

func fixture() state.GameState {
	origin := state.HexCoord{}
	hexes := map[string]state.Hex{}
	for _, h := range []state.Hex{
		hex(0, 0, state.Plains, &state.Site{Type: state.SiteVillage}),
		hex(1, 0, state.Hills, nil),
		hex(0, 1, state.Forest, nil, "prowlers"),
		hex(-1, 0, state.Lake, nil),
		hex(1, -1, state.Plains, &state.Site{Type: state.SiteKeep, Fortified: true}, "guardsmen"),
		hex(2, 0, state.Plains, nil),
	} {
		hexes[h.Coord.Key()] = h
	}
	player := func(id string) state.Player {
		return state.Player{
			ID:            id,
			Hero:          "norowas",
			Position:      &origin,
			Level:         1,
			Armor:         2,
			HandLimit:     5,
			CommandTokens: 1,
			Hand:          []state.CardID{"march", "rage", "fireball", "ruby_ring", state.WoundCard},
			Deck:          []state.CardID{"stamina"},
			Crystals:      mana.Crystals{Red: 1},
			PureMana:      []mana.Token{{Color: mana.Blue, Source: mana.FromCard}},
			Skills:        []state.SkillID{"leadership", "trophy_hunter"},
			Units:         []state.PlayerUnit{{InstanceID: "unit_1", UnitID: "peasants", State: state.UnitReady}},
			Choice:        state.Idle(),
		}
	}
	return state.GameState{
		GameID:    "g1",
		Phase:     state.PhasePlayerTurns,
		Round:     1,
		TimeOfDay: state.Day,
		Players:   []state.Player{player("p1"), player("p2")},
		TurnOrder: []string{"p1", "p2"},
		Map:       state.MapState{Hexes: hexes},
		Source: mana.Source{Dice: []mana.SourceDie{
			{ID: "die_0", Color: mana.Red},
			{ID: "die_1", Color: mana.Black},
			{ID: "die_2", Color: mana.Gold},
		}},
		Offers: state.Offers{Units: []state.UnitID{"utem_guardsmen", "peasants"}},
	}
}

func inCombat(s *state.GameState, phase state.CombatPhase) {
	s.Combat = &state.CombatState{
		Phase:   phase,
		Context: state.ContextStandard,
		Enemies: []state.CombatEnemy{
			{InstanceID: "enemy_0", EnemyID: "prowlers", AttacksBlocked: []bool{false}, AttacksDamageAssigned: []bool{false}},
		},
	}
}

func p1(s *state.GameState) *state.Player { return &s.Players[0] }

func TestPipeline(t *testing.T) {
	tests := []struct {
		name   string
		setup  func(s *state.GameState)
		player string
		action actions.Action
		want   Code
	}{
		// Shared gates
		{"valid move", func(s *state.GameState) { p1(s).MovePoints = 3 }, "p1", actions.Move{Target: state.HexCoord{Q: 1}}, ""},
		{"game over", func(s *state.GameState) { s.Phase = state.PhaseGameOver }, "p1", actions.EndTurn{}, GameOver},
		{"unknown player", nil, "p9", actions.EndTurn{}, UnknownPlayer},
		{"out of turn", nil, "p2", actions.EndTurn{}, NotYourTurn},
		{"tactic during turns", nil, "p1", actions.SelectTactic{TacticID: "early_bird"}, WrongGamePhase},
		{"turn action during tactics", func(s *state.GameState) { s.Phase = state.PhaseTacticsSelection }, "p1", actions.EndTurn{}, WrongGamePhase},
		{"choice blocks other actions", func(s *state.GameState) {
			p1(s).Choice = state.Awaiting(state.PendingChoice{Options: []state.Effect{state.GainMove{Amount: 1}, state.GainInfluence{Amount: 1}}})
		}, "p1", actions.EndTurn{}, ChoicePending},
		{"choice lets undo through", func(s *state.GameState) {
			p1(s).Choice = state.Awaiting(state.PendingChoice{Options: []state.Effect{state.GainMove{Amount: 1}, state.GainInfluence{Amount: 1}}})
		}, "p1", actions.Undo{}, ""},
		{"discard blocks other actions", func(s *state.GameState) {
			p1(s).PendingDiscard = &state.PendingDiscard{Count: 1, Then: state.GainMove{Amount: 1}}
		}, "p1", actions.PlayCard{CardID: "march"}, DiscardPending},
		{"deep mine blocks undo", func(s *state.GameState) {
			p1(s).PendingDeepMine = &state.PendingDeepMine{Colors: []mana.Color{mana.Blue}}
		}, "p1", actions.Undo{}, DeepMinePending},

		// Movement
		{"not enough move", func(s *state.GameState) { p1(s).MovePoints = 2 }, "p1", actions.Move{Target: state.HexCoord{Q: 1}}, InsufficientMove},
		{"not adjacent", func(s *state.GameState) { p1(s).MovePoints = 9 }, "p1", actions.Move{Target: state.HexCoord{Q: 2}}, NotAdjacent},
		{"unrevealed", func(s *state.GameState) { p1(s).MovePoints = 9 }, "p1", actions.Move{Target: state.HexCoord{R: -1}}, UnknownHex},
		{"lake", func(s *state.GameState) { p1(s).MovePoints = 9 }, "p1", actions.Move{Target: state.HexCoord{Q: -1}}, Impassable},
		{"move after fighting", func(s *state.GameState) {
			p1(s).MovePoints = 9
			p1(s).HasCombattedThisTurn = true
		}, "p1", actions.Move{Target: state.HexCoord{Q: 1}}, AlreadyCombatted},
		{"move in combat", func(s *state.GameState) { inCombat(s, state.PhaseAttack) }, "p1", actions.Move{Target: state.HexCoord{Q: 1}}, InCombat},
		{"challenge rampaging enemies", nil, "p1", actions.Challenge{Target: state.HexCoord{R: 1}}, ""},
		{"challenge a site", nil, "p1", actions.Challenge{Target: state.HexCoord{Q: 1, R: -1}}, NoEnemies},
		{"challenge empty hex", nil, "p1", actions.Challenge{Target: state.HexCoord{Q: 1}}, NoEnemies},

		// Cards
		{"basic play", nil, "p1", actions.PlayCard{CardID: "march"}, ""},
		{"card not in hand", nil, "p1", actions.PlayCard{CardID: "stamina"}, CardNotInHand},
		{"wound", nil, "p1", actions.PlayCard{CardID: state.WoundCard}, CardNotPlayable},
		{"powered with a crystal", nil, "p1", actions.PlayCard{CardID: "march", Powered: true, Mana: []mana.Payment{{Kind: mana.PayFromCrystal, Color: mana.Red}}}, InvalidMana},
		{"powered with gold die by day", nil, "p1", actions.PlayCard{CardID: "march", Powered: true, Mana: []mana.Payment{{Kind: mana.PayFromDie, Color: mana.Gold, DieID: "die_2"}}}, ""},
		{"powered without mana", nil, "p1", actions.PlayCard{CardID: "march", Powered: true}, InvalidMana},
		{"missing crystal", nil, "p1", actions.PlayCard{CardID: "march", Powered: true, Mana: []mana.Payment{{Kind: mana.PayFromCrystal, Color: mana.Green}}}, NoCrystal},
		{"second die", func(s *state.GameState) { p1(s).UsedDieIDs = []string{"die_9"} }, "p1",
			actions.PlayCard{CardID: "march", Powered: true, Mana: []mana.Payment{{Kind: mana.PayFromDie, Color: mana.Gold, DieID: "die_2"}}}, SourceLimit},
		{"die colour mismatch", nil, "p1", actions.PlayCard{CardID: "march", Powered: true, Mana: []mana.Payment{{Kind: mana.PayFromDie, Color: mana.Green, DieID: "die_0"}}}, DieUnavailable},
		{"attack outside combat", nil, "p1", actions.PlayCard{CardID: "fireball", Mana: []mana.Payment{{Kind: mana.PayFromCrystal, Color: mana.Red}}}, EffectNotUsable},
		{"spell in combat", func(s *state.GameState) { inCombat(s, state.PhaseRangedSiege) }, "p1",
			actions.PlayCard{CardID: "fireball", Mana: []mana.Payment{{Kind: mana.PayFromCrystal, Color: mana.Red}}}, ""},
		{"powered spell by day", func(s *state.GameState) { inCombat(s, state.PhaseRangedSiege) }, "p1",
			actions.PlayCard{CardID: "fireball", Powered: true, Mana: []mana.Payment{{Kind: mana.PayFromCrystal, Color: mana.Red}, {Kind: mana.PayFromDie, Color: mana.Black, DieID: "die_1"}}}, WrongTimeOfDay},
		{"powered spell at night", func(s *state.GameState) {
			s.TimeOfDay = state.Night
			inCombat(s, state.PhaseRangedSiege)
		}, "p1", actions.PlayCard{CardID: "fireball", Powered: true, Mana: []mana.Payment{{Kind: mana.PayFromCrystal, Color: mana.Red}, {Kind: mana.PayFromDie, Color: mana.Black, DieID: "die_1"}}}, ""},
		{"artifact powered without mana", nil, "p1", actions.PlayCard{CardID: "ruby_ring", Powered: true}, ""},
		{"sideways influence", nil, "p1", actions.PlayCardSideways{CardID: "rage", As: actions.SidewaysInfluence}, ""},
		{"sideways attack outside combat", nil, "p1", actions.PlayCardSideways{CardID: "rage", As: actions.SidewaysAttack}, InvalidSideways},
		{"sideways block in block phase", func(s *state.GameState) { inCombat(s, state.PhaseBlock) }, "p1", actions.PlayCardSideways{CardID: "rage", As: actions.SidewaysBlock}, ""},
		{"sideways move in combat", func(s *state.GameState) { inCombat(s, state.PhaseBlock) }, "p1", actions.PlayCardSideways{CardID: "rage", As: actions.SidewaysMove}, InvalidSideways},
		{"sideways wound", nil, "p1", actions.PlayCardSideways{CardID: state.WoundCard, As: actions.SidewaysMove}, CardNotPlayable},

		// Mana
		{"convert crystal", nil, "p1", actions.ConvertCrystal{Color: mana.Red}, ""},
		{"convert missing crystal", nil, "p1", actions.ConvertCrystal{Color: mana.White}, NoCrystal},
		{"convert gold", nil, "p1", actions.ConvertCrystal{Color: mana.Gold}, NoCrystal},

		// Units
		{"recruit", func(s *state.GameState) {
			p1(s).InfluencePoints = 5
			p1(s).Units = nil
		}, "p1", actions.RecruitUnit{UnitID: "utem_guardsmen"}, ""},
		{"recruit without influence", func(s *state.GameState) { p1(s).Units = nil }, "p1", actions.RecruitUnit{UnitID: "peasants"}, NoInfluence},
		{"recruit without command token", func(s *state.GameState) { p1(s).InfluencePoints = 9 }, "p1", actions.RecruitUnit{UnitID: "peasants"}, NoCommandToken},
		{"recruit missing unit", nil, "p1", actions.RecruitUnit{UnitID: "catapults"}, UnitNotInOffer},
		{"recruit away from a village", func(s *state.GameState) {
			p1(s).Position = &state.HexCoord{Q: 1}
			p1(s).InfluencePoints = 9
			p1(s).Units = nil
		}, "p1", actions.RecruitUnit{UnitID: "peasants"}, CannotRecruit},
		{"activate move outside combat", nil, "p1", actions.ActivateUnit{UnitInstanceID: "unit_1", AbilityIndex: 3}, ""},
		{"activate attack outside combat", nil, "p1", actions.ActivateUnit{UnitInstanceID: "unit_1"}, AbilityTiming},
		{"activate attack in combat", func(s *state.GameState) { inCombat(s, state.PhaseAttack) }, "p1", actions.ActivateUnit{UnitInstanceID: "unit_1"}, ""},
		{"activate spent unit", func(s *state.GameState) { p1(s).Units[0].State = state.UnitSpent }, "p1", actions.ActivateUnit{UnitInstanceID: "unit_1", AbilityIndex: 3}, UnitNotReady},
		{"activate wounded unit", func(s *state.GameState) { p1(s).Units[0].IsWounded = true }, "p1", actions.ActivateUnit{UnitInstanceID: "unit_1", AbilityIndex: 3}, UnitWounded},
		{"activate unknown ability", nil, "p1", actions.ActivateUnit{UnitInstanceID: "unit_1", AbilityIndex: 7}, UnknownAbility},
		{"activate unknown unit", nil, "p1", actions.ActivateUnit{UnitInstanceID: "unit_9"}, UnknownUnit},
		{"mana for a free ability", nil, "p1", actions.ActivateUnit{UnitInstanceID: "unit_1", AbilityIndex: 3, Mana: &mana.Payment{Kind: mana.PayFromToken, Color: mana.Blue}}, InvalidMana},
		{"heal unit", func(s *state.GameState) {
			p1(s).Units[0].IsWounded = true
			p1(s).HealingPoints = 1
		}, "p1", actions.HealUnit{UnitInstanceID: "unit_1"}, ""},
		{"heal healthy unit", func(s *state.GameState) { p1(s).HealingPoints = 1 }, "p1", actions.HealUnit{UnitInstanceID: "unit_1"}, UnitNotWounded},
		{"heal without healing", func(s *state.GameState) { p1(s).Units[0].IsWounded = true }, "p1", actions.HealUnit{UnitInstanceID: "unit_1"}, NoHealing},

		// Skills and tactics
		{"use skill", nil, "p1", actions.UseSkill{SkillID: "leadership"}, ""},
		{"skill not owned", nil, "p1", actions.UseSkill{SkillID: "shield_mastery"}, UnknownSkill},
		{"skill on cooldown", func(s *state.GameState) { p1(s).Cooldowns.UsedThisTurn = []state.SkillID{"leadership"} }, "p1", actions.UseSkill{SkillID: "leadership"}, SkillCooldown},
		{"select tactic", func(s *state.GameState) {
			s.Phase = state.PhaseTacticsSelection
			s.AvailableTactics = []state.TacticID{"early_bird", "rethink"}
		}, "p1", actions.SelectTactic{TacticID: "rethink"}, ""},
		{"select taken tactic", func(s *state.GameState) {
			s.Phase = state.PhaseTacticsSelection
			s.AvailableTactics = []state.TacticID{"early_bird"}
		}, "p1", actions.SelectTactic{TacticID: "rethink"}, TacticTaken},
		{"lowest fame picks first", func(s *state.GameState) {
			s.Phase = state.PhaseTacticsSelection
			s.AvailableTactics = []state.TacticID{"early_bird"}
			p1(s).Fame = 5
		}, "p1", actions.SelectTactic{TacticID: "early_bird"}, NotYourTurn},

		// Combat
		{"assign attack outside combat", nil, "p1", actions.AssignAttack{EnemyInstanceID: "enemy_0", AttackType: state.Melee, Element: state.Physical, Amount: 1}, NotInCombat},
		{"assign more than accumulated", func(s *state.GameState) {
			inCombat(s, state.PhaseAttack)
			p1(s).Accumulator.Attack = state.AttackPool{Melee: state.ElementalValues{Physical: 2}}
		}, "p1", actions.AssignAttack{EnemyInstanceID: "enemy_0", AttackType: state.Melee, Element: state.Physical, Amount: 3}, NoAttack},
		{"assign attack", func(s *state.GameState) {
			inCombat(s, state.PhaseAttack)
			p1(s).Accumulator.Attack = state.AttackPool{Melee: state.ElementalValues{Physical: 2}}
		}, "p1", actions.AssignAttack{EnemyInstanceID: "enemy_0", AttackType: state.Melee, Element: state.Physical, Amount: 2}, ""},
		{"block in attack phase", func(s *state.GameState) { inCombat(s, state.PhaseAttack) }, "p1", actions.AssignBlock{EnemyInstanceID: "enemy_0", Element: state.Physical, Amount: 1}, WrongCombatPhase},
		{"damage pending", func(s *state.GameState) { inCombat(s, state.PhaseAssignDamage) }, "p1", actions.EndCombatPhase{}, DamagePending},
		{"assign damage", func(s *state.GameState) { inCombat(s, state.PhaseAssignDamage) }, "p1", actions.AssignDamage{EnemyInstanceID: "enemy_0"}, ""},
		{"end turn in combat", func(s *state.GameState) { inCombat(s, state.PhaseAttack) }, "p1", actions.EndTurn{}, InCombat},

		// Resolution
		{"resolve without choice", nil, "p1", actions.ResolveChoice{}, NoPendingChoice},
		{"choice index out of range", func(s *state.GameState) {
			p1(s).Choice = state.Awaiting(state.PendingChoice{Options: []state.Effect{state.GainMove{Amount: 1}, state.GainInfluence{Amount: 1}}})
		}, "p1", actions.ResolveChoice{Index: 2}, BadChoiceIndex},
		{"discard a wound", func(s *state.GameState) {
			p1(s).PendingDiscard = &state.PendingDiscard{Count: 1, Then: state.GainMove{Amount: 1}}
		}, "p1", actions.ResolveDiscard{CardIDs: []state.CardID{state.WoundCard}}, InvalidDiscard},
		{"discard", func(s *state.GameState) {
			p1(s).PendingDiscard = &state.PendingDiscard{Count: 1, Then: state.GainMove{Amount: 1}}
		}, "p1", actions.ResolveDiscard{CardIDs: []state.CardID{"rage"}}, ""},
		{"deep mine colour", func(s *state.GameState) {
			p1(s).PendingDeepMine = &state.PendingDeepMine{Colors: []mana.Color{mana.Blue, mana.Green}}
		}, "p1", actions.ResolveDeepMine{Color: mana.Red}, InvalidMineColor},
		{"no deep mine", nil, "p1", actions.ResolveDeepMine{Color: mana.Red}, NoPendingMine},

		// Turn flow
		{"announce with cards in deck", nil, "p1", actions.AnnounceEndOfRound{}, DeckNotEmpty},
		{"announce", func(s *state.GameState) { p1(s).Deck = nil }, "p1", actions.AnnounceEndOfRound{}, ""},
		{"announce twice", func(s *state.GameState) {
			p1(s).Deck = nil
			s.EndOfRoundAnnouncedBy = "p2"
		}, "p1", actions.AnnounceEndOfRound{}, RoundAnnounced},
	}

	pipeline := Default()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := fixture()
			if tt.setup != nil {
				tt.setup(&s)
			}
			got := pipeline.Validate(s, tt.player, tt.action)
			if tt.want == "" {
				assert.True(t, got.Valid, "unexpected rejection: %+v", got.Error)
				return
			}
			require.False(t, got.Valid)
			require.NotNil(t, got.Error)
			assert.Equal(t, tt.want, got.Error.Code, got.Error.Reason)
			assert.NotEmpty(t, got.Error.Reason)
		})
	}
}

func TestValidatorsIgnoreOtherActions(t *testing.T) {
	s := fixture()
	for _, v := range []Validator{Movement, Cards, Mana, Units, Skills, Tactics, Combat, Resolution, TurnFlow} {
		assert.True(t, v(s, "p1", actions.Undo{}).Valid)
	}
}

func TestUndo(t *testing.T) {
	r := Undo(false)
	require.False(t, r.Valid)
	assert.Equal(t, NothingToUndo, r.Error.Code)
	assert.True(t, Undo(true).Valid)
}

func TestValidationDoesNotMutate(t *testing.T) {
	s := fixture()
	before, err := state.Canonical(s)
	require.NoError(t, err)
	for _, a := range []actions.Action{
		actions.PlayCard{CardID: "march", Powered: true, Mana: []mana.Payment{{Kind: mana.PayFromDie, Color: mana.Gold, DieID: "die_2"}}},
		actions.Move{Target: state.HexCoord{Q: 1}},
		actions.ConvertCrystal{Color: mana.Red},
	} {
		Default().Validate(s, "p1", a)
	}
	after, err := state.Canonical(s)
	require.NoError(t, err)
	assert.JSONEq(t, string(before), string(after))
}

func TestResultDetails(t *testing.T) {
	r := Invalid(NoCrystal, "no %s crystal", "red").WithDetail("color", "red")
	assert.Equal(t, "NO_CRYSTAL: no red crystal", r.Error.Error())
	assert.Equal(t, map[string]string{"color": "red"}, r.Error.Details)
	assert.Equal(t, Valid(), Valid().WithDetail("ignored", "x"))
	assert.Len(t, Codes(), len(uniqueCodes()))
}

func uniqueCodes() map[Code]bool {
	out := map[Code]bool{}
	for _, c := range Codes() {
		out[c] = true
	}
	return out
}
