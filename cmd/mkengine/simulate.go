package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/mage-knight-digital/MageKnight-sub005/internal/config"
	"github.com/mage-knight-digital/MageKnight-sub005/internal/engine"
	"github.com/mage-knight-digital/MageKnight-sub005/internal/game/actions"
	"github.com/mage-knight-digital/MageKnight-sub005/internal/game/client"
	"github.com/mage-knight-digital/MageKnight-sub005/internal/game/events"
	"github.com/mage-knight-digital/MageKnight-sub005/internal/game/state"
)

// scenario is a scripted game read from YAML.
type scenario struct {
	Name  string         `yaml:"name"`
	Game  scenarioGame   `yaml:"game"`
	Steps []scenarioStep `yaml:"steps"`
	// Auto continues with the autopilot for up to this many actions.
	Auto int `yaml:"auto"`
}

type scenarioGame struct {
	Seed       *uint64               `yaml:"seed"`
	RoundLimit int                   `yaml:"roundLimit"`
	Players    []config.PlayerConfig `yaml:"players"`
}

type scenarioStep struct {
	Player string         `yaml:"player"`
	Action map[string]any `yaml:"action"`
	// Expect is the rejection code the step must produce. Empty means the
	// action must be accepted.
	Expect string `yaml:"expect"`
}

func loadScenario(path string) (scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return scenario{}, fmt.Errorf("read scenario: %w", err)
	}
	var sc scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return scenario{}, fmt.Errorf("parse scenario %s: %w", path, err)
	}
	return sc, nil
}

// apply overlays the scenario's game settings on cfg.
func (g scenarioGame) apply(cfg config.GameConfig) config.GameConfig {
	if g.Seed != nil {
		cfg.Seed = *g.Seed
	}
	if g.RoundLimit > 0 {
		cfg.RoundLimit = g.RoundLimit
	}
	if len(g.Players) > 0 {
		cfg.Players = g.Players
	}
	return cfg
}

func (st scenarioStep) decode() (actions.Action, error) {
	raw, err := json.Marshal(st.Action)
	if err != nil {
		return nil, fmt.Errorf("encode step action: %w", err)
	}
	return actions.Decode(raw)
}

// summary is what simulate prints.
type summary struct {
	Scenario string                  `json:"scenario,omitempty"`
	GameID   string                  `json:"gameId"`
	Actions  int                     `json:"actions"`
	Phase    state.GamePhase         `json:"phase"`
	Round    int                     `json:"round"`
	Checksum state.Checksum          `json:"checksum"`
	Events   []events.Event          `json:"events,omitempty"`
	View     *client.ClientGameState `json:"view,omitempty"`
	Replay   string                  `json:"replay,omitempty"`
}

type simulateOptions struct {
	auto      int
	seed      int64
	viewer    string
	events    bool
	replayDir string
	progress  bool
}

func newSimulateCmd(a *app) *cobra.Command {
	opts := simulateOptions{seed: -1}
	cmd := &cobra.Command{
		Use:   "simulate [scenario.yaml]",
		Short: "Run a scripted game and print the final state",
		Long: `Plays the steps of a scenario file against a fresh game, checking each
step is accepted or rejected as expected, then optionally lets the
autopilot continue. Without a scenario the autopilot plays from setup.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var sc scenario
			if len(args) == 1 {
				var err error
				if sc, err = loadScenario(args[0]); err != nil {
					return err
				}
			}
			if cmd.Flags().Changed("auto") {
				sc.Auto = opts.auto
			}
			cfg := sc.Game.apply(a.cfg.Game)
			if opts.seed >= 0 {
				cfg.Seed = uint64(opts.seed)
			}
			e := engine.NewEngine(a.logger, engine.WithUndo(cfg.UndoEnabled))
			sum, err := runScenario(e, a.logger, cfg, sc, opts)
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(sum)
		},
	}
	cmd.Flags().IntVar(&opts.auto, "auto", 0, "let the autopilot play up to this many actions after the script")
	cmd.Flags().Int64Var(&opts.seed, "seed", -1, "override the game seed")
	cmd.Flags().StringVar(&opts.viewer, "viewer", "", "include the final state as seen by this player")
	cmd.Flags().BoolVar(&opts.events, "events", false, "include every event in the output")
	cmd.Flags().StringVar(&opts.replayDir, "replay-dir", "", "write the replay file to this directory")
	cmd.Flags().BoolVar(&opts.progress, "progress", false, "show an autopilot progress bar on stderr")
	return cmd
}

func runScenario(e *engine.Engine, logger *zap.Logger, cfg config.GameConfig, sc scenario, opts simulateOptions) (summary, error) {
	m := engine.NewManager(e, logger)
	g, setupEvents, err := m.Create(cfg)
	if err != nil {
		return summary{}, err
	}
	sum := summary{Scenario: sc.Name, GameID: g.ID()}
	if opts.events {
		sum.Events = append(sum.Events, setupEvents...)
		g.Subscribe(func(ev events.Event) { sum.Events = append(sum.Events, ev) })
	}

	for i, st := range sc.Steps {
		a, err := st.decode()
		if err != nil {
			return summary{}, fmt.Errorf("step %d: %w", i+1, err)
		}
		out, err := g.Submit(st.Player, a)
		if err != nil {
			return summary{}, fmt.Errorf("step %d: %w", i+1, err)
		}
		sum.Actions++
		if err := checkStep(st, out); err != nil {
			return summary{}, fmt.Errorf("step %d (%s %s): %w", i+1, st.Player, a.Type(), err)
		}
	}

	if sc.Auto > 0 {
		var step func()
		if opts.progress {
			bar := progressbar.Default(int64(sc.Auto), "autopilot")
			step = func() { _ = bar.Add(1) }
			defer func() { _ = bar.Finish() }()
		}
		n, err := autopilot(g, sc.Auto, step)
		sum.Actions += n
		if err != nil {
			return summary{}, err
		}
	}

	s := g.State()
	sum.Phase, sum.Round = s.Phase, s.Round
	if sum.Checksum, err = g.Checksum(); err != nil {
		return summary{}, err
	}
	if opts.viewer != "" {
		view := g.View(opts.viewer)
		sum.View = &view
	}
	if opts.replayDir != "" {
		if sum.Replay, err = g.Replay().SaveToFile(opts.replayDir); err != nil {
			return summary{}, err
		}
	}
	logger.Info("simulation finished",
		zap.String("game_id", sum.GameID),
		zap.Int("actions", sum.Actions),
		zap.String("phase", string(sum.Phase)),
		zap.Int("round", sum.Round),
	)
	return sum, nil
}

func checkStep(st scenarioStep, out engine.Outcome) error {
	switch {
	case st.Expect == "" && !out.Accepted():
		return fmt.Errorf("rejected: %s", out.Error)
	case st.Expect != "" && out.Accepted():
		return fmt.Errorf("accepted, expected %s", st.Expect)
	case st.Expect != "" && string(out.Error.Code) != st.Expect:
		return fmt.Errorf("rejected with %s, expected %s", out.Error.Code, st.Expect)
	}
	return nil
}
