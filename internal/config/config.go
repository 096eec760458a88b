// Package config loads engine settings from defaults, an optional YAML file
// and MK_* environment variables, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, e.g. MK_GAME_SEED.
const EnvPrefix = "MK"

// Config is the root configuration.
type Config struct {
	Logging LoggingConfig `mapstructure:"logging"`
	Game    GameConfig    `mapstructure:"game"`
}

// LoggingConfig selects the zap level and encoder.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// PlayerConfig seats one player.
type PlayerConfig struct {
	ID   string `mapstructure:"id" yaml:"id"`
	Hero string `mapstructure:"hero" yaml:"hero"`
}

// GameConfig parameterizes a new game.
type GameConfig struct {
	Players       []PlayerConfig `mapstructure:"players"`
	HandLimit     int            `mapstructure:"hand_limit"`
	HeroArmor     int            `mapstructure:"hero_armor"`
	CommandTokens int            `mapstructure:"command_tokens"`
	// ExtraSourceDice is added to the player count plus two.
	ExtraSourceDice int    `mapstructure:"extra_source_dice"`
	RoundLimit      int    `mapstructure:"round_limit"`
	Seed            uint64 `mapstructure:"seed"`
	UndoEnabled     bool   `mapstructure:"undo_enabled"`
}

var (
	ErrNoPlayers       = errors.New("config: at least one player is required")
	ErrTooManyPlayers  = errors.New("config: at most four players")
	ErrDuplicatePlayer = errors.New("config: duplicate player id")
)

func setDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	v.SetDefault("game.players", []map[string]any{
		{"id": "p1", "hero": "norowas"},
		{"id": "p2", "hero": "tovak"},
	})
	v.SetDefault("game.hand_limit", 5)
	v.SetDefault("game.hero_armor", 2)
	v.SetDefault("game.command_tokens", 1)
	v.SetDefault("game.extra_source_dice", 0)
	v.SetDefault("game.round_limit", 6)
	v.SetDefault("game.seed", 1)
	v.SetDefault("game.undo_enabled", true)
}

// Default returns the built-in configuration.
func Default() Config {
	cfg, err := Load("")
	if err != nil {
		panic(err)
	}
	return cfg
}

// Load reads the configuration. An empty path skips the file.
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Game.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the settings a game cannot start without.
func (g GameConfig) Validate() error {
	switch {
	case len(g.Players) == 0:
		return ErrNoPlayers
	case len(g.Players) > 4:
		return ErrTooManyPlayers
	}
	seen := make(map[string]bool, len(g.Players))
	for _, p := range g.Players {
		if p.ID == "" {
			return fmt.Errorf("config: player without id")
		}
		if seen[p.ID] {
			return fmt.Errorf("%w: %s", ErrDuplicatePlayer, p.ID)
		}
		seen[p.ID] = true
	}
	if g.HandLimit <= 0 {
		return fmt.Errorf("config: hand_limit must be positive, got %d", g.HandLimit)
	}
	if g.ExtraSourceDice < 0 {
		return fmt.Errorf("config: extra_source_dice must not be negative, got %d", g.ExtraSourceDice)
	}
	return nil
}
