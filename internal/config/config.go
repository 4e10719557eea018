package config

import (
	"fmt"
	"log/slog"
	"os"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/dynbench/internal/integrators"
	"github.com/san-kum/dynbench/internal/locomotion"
)

const (
	DefaultHTTPAddr   = ":9000"
	DefaultGRPCAddr   = ":9001"
	DefaultClientAddr = "localhost:9000"
	DefaultStoreDir   = ".dynbench"
	DefaultResetNoise = 0.005
)

type Config struct {
	LogLevel   string               `yaml:"log_level" validate:"oneof=debug info warn error"`
	Server     ServerConfig         `yaml:"server"`
	Store      StoreConfig          `yaml:"store"`
	Simulator  SimConfig            `yaml:"simulator"`
	Benchmarks map[string]SimConfig `yaml:"benchmarks,omitempty" validate:"dive,keys,benchmark,endkeys"`
}

type ServerConfig struct {
	HTTPAddr string `yaml:"http_addr"`
	GRPCAddr string `yaml:"grpc_addr"`
	// StrictBounds rejects inputs outside a benchmark's box.
	StrictBounds bool `yaml:"strict_bounds"`
	// ReuseFacades keeps one facade per benchmark instead of building one
	// per request.
	ReuseFacades bool `yaml:"reuse_facades"`
}

type StoreConfig struct {
	Kind string `yaml:"kind" validate:"oneof=file sqlite memory none"`
	Path string `yaml:"path" validate:"required_if=Kind file,required_if=Kind sqlite"`
}

// SimConfig tunes policy rollouts. Zero fields inherit from the level
// above: benchmark entry, then simulator section, then preset.
type SimConfig struct {
	Preset     string  `yaml:"preset,omitempty" validate:"omitempty,preset"`
	Horizon    int     `yaml:"horizon,omitempty" validate:"gte=0"`
	Episodes   int     `yaml:"episodes,omitempty" validate:"gte=0"`
	Dt         float64 `yaml:"dt,omitempty" validate:"gte=0,lte=0.1"`
	Integrator string  `yaml:"integrator,omitempty" validate:"omitempty,integrator"`
	ResetNoise float64 `yaml:"reset_noise,omitempty" validate:"gte=0"`
	Seed       int64   `yaml:"seed,omitempty"`
	Workers    int     `yaml:"workers,omitempty" validate:"gte=0"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
	_ = validate.RegisterValidation("integrator", func(fl validator.FieldLevel) bool {
		return slices.Contains(integrators.Names(), fl.Field().String())
	})
	_ = validate.RegisterValidation("benchmark", func(fl validator.FieldLevel) bool {
		_, err := locomotion.Lookup(fl.Field().String())
		return err == nil
	})
	_ = validate.RegisterValidation("preset", func(fl validator.FieldLevel) bool {
		_, ok := Presets[fl.Field().String()]
		return ok
	})
}

func DefaultConfig() *Config {
	return &Config{
		LogLevel: "info",
		Server: ServerConfig{
			HTTPAddr: DefaultHTTPAddr,
			GRPCAddr: DefaultGRPCAddr,
		},
		Store: StoreConfig{
			Kind: "file",
			Path: DefaultStoreDir,
		},
		Simulator: SimConfig{
			Preset:     "standard",
			ResetNoise: DefaultResetNoise,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	return validate.Struct(c)
}

// Level maps LogLevel to a slog level; unknown values mean info.
func (c *Config) Level() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// SimOptions resolves the rollout settings for one benchmark.
func (c *Config) SimOptions(name string) locomotion.Options {
	opts := locomotion.DefaultOptions()
	layers := []SimConfig{c.Simulator}
	if b, ok := c.Benchmarks[name]; ok {
		layers = append(layers, b)
	}

	for _, l := range layers {
		if l.Preset != "" {
			if p := GetPreset(l.Preset); p != nil {
				p.apply(&opts)
			}
		}
		l.apply(&opts)
	}
	return opts
}

func (s SimConfig) apply(opts *locomotion.Options) {
	if s.Horizon > 0 {
		opts.Horizon = s.Horizon
	}
	if s.Episodes > 0 {
		opts.Episodes = s.Episodes
	}
	if s.Dt > 0 {
		opts.Dt = s.Dt
	}
	if s.Integrator != "" {
		opts.Integrator = s.Integrator
	}
	if s.ResetNoise > 0 {
		opts.ResetNoise = s.ResetNoise
	}
	if s.Seed != 0 {
		opts.Seed = s.Seed
	}
	if s.Workers > 0 {
		opts.Workers = s.Workers
	}
}
