// Package conditions evaluates the CEL expressions carried by conditional
// effects. Every expression sees one variable, ctx, built from the game state
// for the acting player.
package conditions

import (
	"fmt"
	"sync"

	"github.com/google/cel-go/cel"
	"github.com/google/cel-go/common/types"
	"github.com/google/cel-go/common/types/ref"

	"github.com/mage-knight-digital/MageKnight-sub005/internal/game/mana"
	"github.com/mage-knight-digital/MageKnight-sub005/internal/game/state"
)

// Registry compiles expressions once and caches the programs.
type Registry struct {
	env *cel.Env

	mu       sync.RWMutex
	programs map[string]cel.Program
}

// NewRegistry builds the CEL environment.
func NewRegistry() (*Registry, error) {
	env, err := cel.NewEnv(
		cel.Variable("ctx", cel.MapType(cel.StringType, cel.DynType)),
		cel.Function("atLeast",
			cel.Overload("atLeast_int_int",
				[]*cel.Type{cel.IntType, cel.IntType},
				cel.BoolType,
				cel.BinaryBinding(func(lhs, rhs ref.Val) ref.Val {
					return types.Bool(lhs.(types.Int) >= rhs.(types.Int))
				}),
			),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("build cel env: %w", err)
	}
	return &Registry{env: env, programs: make(map[string]cel.Program)}, nil
}

// Compile checks that expression is a boolean expression over ctx.
func (r *Registry) Compile(expression string) error {
	_, err := r.program(expression)
	return err
}

func (r *Registry) program(expression string) (cel.Program, error) {
	r.mu.RLock()
	prg, ok := r.programs[expression]
	r.mu.RUnlock()
	if ok {
		return prg, nil
	}

	ast, iss := r.env.Compile(expression)
	if iss.Err() != nil {
		return nil, fmt.Errorf("compile %q: %w", expression, iss.Err())
	}
	if ast.OutputType() != cel.BoolType && ast.OutputType() != cel.DynType {
		return nil, fmt.Errorf("compile %q: result is %s, want bool", expression, ast.OutputType())
	}
	prg, err := r.env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("program %q: %w", expression, err)
	}

	r.mu.Lock()
	r.programs[expression] = prg
	r.mu.Unlock()
	return prg, nil
}

// Eval evaluates expression against vars and returns its boolean result.
func (r *Registry) Eval(expression string, vars map[string]any) (bool, error) {
	prg, err := r.program(expression)
	if err != nil {
		return false, err
	}
	out, _, err := prg.Eval(map[string]any{"ctx": vars})
	if err != nil {
		return false, fmt.Errorf("eval %q: %w", expression, err)
	}
	b, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("eval %q: result %v is not a bool", expression, out.Value())
	}
	return b, nil
}

// Holds evaluates expression for playerID in s.
func (r *Registry) Holds(expression string, s state.GameState, playerID string) (bool, error) {
	return r.Eval(expression, Vars(s, playerID))
}

// Vars builds the ctx map for playerID.
func Vars(s state.GameState, playerID string) map[string]any {
	vars := map[string]any{
		"isDay":       s.IsDay(),
		"isNight":     !s.IsDay(),
		"round":       int64(s.Round),
		"inCombat":    s.InCombat(),
		"combatPhase": "",
	}
	if s.Combat != nil {
		vars["combatPhase"] = string(s.Combat.Phase)
		undefeated := int64(0)
		for _, e := range s.Combat.Enemies {
			if !e.IsDefeated {
				undefeated++
			}
		}
		vars["enemiesRemaining"] = undefeated
		vars["atFortifiedSite"] = s.Combat.IsAtFortifiedSite
	} else {
		vars["enemiesRemaining"] = int64(0)
		vars["atFortifiedSite"] = false
	}

	p, ok := s.Player(playerID)
	if !ok {
		return vars
	}
	ready := int64(0)
	for _, u := range p.Units {
		if u.State == state.UnitReady {
			ready++
		}
	}
	crystals := make(map[string]any, len(mana.BasicColors))
	for _, c := range mana.BasicColors {
		crystals[string(c)] = int64(p.Crystals.Get(c))
	}
	skills := make([]string, 0, len(p.Skills))
	for _, sk := range p.Skills {
		skills = append(skills, string(sk))
	}
	vars["fame"] = int64(p.Fame)
	vars["reputation"] = int64(p.Reputation)
	vars["level"] = int64(p.Level)
	vars["handSize"] = int64(len(p.Hand))
	vars["woundsInHand"] = int64(p.Wounds())
	vars["units"] = int64(len(p.Units))
	vars["readyUnits"] = ready
	vars["crystals"] = crystals
	vars["skills"] = skills
	vars["hasCombatted"] = p.HasCombattedThisTurn
	return vars
}

var (
	defaultOnce sync.Once
	defaultReg  *Registry
)

// Default returns the process-wide registry. The environment is static, so a
// construction failure is a programming error.
func Default() *Registry {
	defaultOnce.Do(func() {
		reg, err := NewRegistry()
		if err != nil {
			panic(err)
		}
		defaultReg = reg
	})
	return defaultReg
}
