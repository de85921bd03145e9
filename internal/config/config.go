package config

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	astar "github.com/pdrpinto/gridastar"
)

// EnvPrefix prefixes environment overrides, e.g. GRIDASTAR_SERVER_ADDR.
const EnvPrefix = "GRIDASTAR"

// Config holds all application configuration
type Config struct {
	Log    LogConfig    `mapstructure:"log"`
	Server ServerConfig `mapstructure:"server"`
	Search SearchConfig `mapstructure:"search"`
	Render RenderConfig `mapstructure:"render"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

// ServerConfig configures the web visualiser.
type ServerConfig struct {
	Addr string `mapstructure:"addr"`
	// StepInterval paces the websocket step stream.
	StepInterval time.Duration `mapstructure:"stepInterval"`
}

// SearchConfig holds the engine defaults applied by every command.
type SearchConfig struct {
	Diagonal         bool   `mapstructure:"diagonal"`
	CostModel        string `mapstructure:"costModel"`
	ProgressInterval int    `mapstructure:"progressInterval"`
	MaxSteps         int    `mapstructure:"maxSteps"`
}

type RenderConfig struct {
	CellSize   int           `mapstructure:"cellSize"`
	Color      bool          `mapstructure:"color"`
	FrameDelay time.Duration `mapstructure:"frameDelay"`
}

func setDefaults(vp *viper.Viper) {
	vp.SetDefault("log.level", "info")
	vp.SetDefault("server.addr", ":8080")
	vp.SetDefault("server.stepInterval", 50*time.Millisecond)
	vp.SetDefault("search.diagonal", false)
	vp.SetDefault("search.costModel", "manhattan")
	vp.SetDefault("search.progressInterval", 100)
	vp.SetDefault("search.maxSteps", 0)
	vp.SetDefault("render.cellSize", 20)
	vp.SetDefault("render.color", true)
	vp.SetDefault("render.frameDelay", 0)
}

// Load reads the YAML file at path, if any, then applies GRIDASTAR_*
// environment overrides on top of the defaults.
func Load(path string) (*Config, error) {
	vp := viper.New()
	setDefaults(vp)
	vp.SetEnvPrefix(EnvPrefix)
	vp.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	vp.AutomaticEnv()

	if path != "" {
		vp.SetConfigFile(path)
		vp.SetConfigType(strings.TrimPrefix(filepath.Ext(path), "."))
		if err := vp.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	cfg := &Config{}
	if err := vp.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values viper cannot type-check on its own.
func (c *Config) Validate() error {
	if _, err := astar.ParseCostModel(c.Search.CostModel); err != nil {
		return fmt.Errorf("search.costModel: %w", err)
	}
	if c.Search.ProgressInterval < 0 {
		return fmt.Errorf("search.progressInterval must not be negative")
	}
	if c.Render.CellSize <= 0 {
		return fmt.Errorf("render.cellSize must be positive")
	}
	return nil
}

// SearchOptions turns the search section into engine options.
func (c *Config) SearchOptions(logger *slog.Logger) []astar.Option {
	model, _ := astar.ParseCostModel(c.Search.CostModel)
	return []astar.Option{
		astar.WithDiagonal(c.Search.Diagonal),
		astar.WithCostModel(model),
		astar.WithProgressInterval(c.Search.ProgressInterval),
		astar.WithMaxSteps(c.Search.MaxSteps),
		astar.WithLogger(logger),
	}
}
