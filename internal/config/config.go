package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// SourcesConfig names the embeddings and simple-words files.
type SourcesConfig struct {
	Embeddings string `yaml:"embeddings"`
	Words      string `yaml:"words"`
}

// SimplifierConfig holds the similarity thresholds for word replacement.
type SimplifierConfig struct {
	Floor         float64 `yaml:"floor"`
	KeepThreshold float64 `yaml:"keep_threshold"`
	PreviewSize   int     `yaml:"preview_size"`
}

// GameConfig configures the word-guessing game.
type GameConfig struct {
	CorrectThreshold float64 `yaml:"correct_threshold"`
	Hints            int     `yaml:"hints"`
	SuggestThreshold float64 `yaml:"suggest_threshold"`
}

// LogConfig selects log verbosity and output format.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// AppConfig is the root application configuration structure.
type AppConfig struct {
	Sources    SourcesConfig    `yaml:"sources"`
	Simplifier SimplifierConfig `yaml:"simplifier"`
	Game       GameConfig       `yaml:"game"`
	Log        LogConfig        `yaml:"log"`
}

// Environment variables that override file values.
const (
	EnvEmbeddings = "SIMPLIFIER_EMBEDDINGS"
	EnvWords      = "SIMPLIFIER_WORDS"
	EnvLogLevel   = "SIMPLIFIER_LOG_LEVEL"
)

// Load reads a config from a specified path. If the file does not exist, returns defaults.
func Load(path string) (*AppConfig, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return nil, err
	}
	defer f.Close()
	cfg, err := LoadFromReader(f)
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// LoadFromReader decodes YAML from r, fills defaults and validates the result.
// Unknown keys are rejected.
func LoadFromReader(r io.Reader) (*AppConfig, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}
	applyConfigDefaults(cfg)
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadDefault tries ./config.yaml first, then ~/.config/simplifier/config.yaml.
// If neither exists, it writes defaults to ~/.config/simplifier/config.yaml and returns them.
func LoadDefault() (*AppConfig, string, error) {
	cwdPath := "config.yaml"
	if _, err := os.Stat(cwdPath); err == nil {
		cfg, err := Load(cwdPath)
		return cfg, cwdPath, err
	}
	userPath, err := defaultUserConfigPath()
	if err != nil {
		return nil, "", err
	}
	if _, err := os.Stat(userPath); err == nil {
		cfg, err := Load(userPath)
		return cfg, userPath, err
	}
	cfg := Default()
	if err := Save(userPath, cfg); err != nil {
		return nil, "", err
	}
	return cfg, userPath, nil
}

// Save writes the config to the given path, creating directories as needed.
func Save(path string, cfg *AppConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// ApplyEnv overrides file values with any SIMPLIFIER_* variables that are set.
func ApplyEnv(cfg *AppConfig) {
	if v := os.Getenv(EnvEmbeddings); v != "" {
		cfg.Sources.Embeddings = v
	}
	if v := os.Getenv(EnvWords); v != "" {
		cfg.Sources.Words = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.Log.Level = strings.ToLower(v)
	}
}

// Validate checks that cfg is coherent and returns every problem found.
func Validate(cfg *AppConfig) error {
	var errs []error
	s := cfg.Simplifier
	if s.Floor < 0 || s.KeepThreshold > 1 || s.Floor >= s.KeepThreshold {
		errs = append(errs, fmt.Errorf("simplifier: need 0 <= floor (%g) < keep_threshold (%g) <= 1", s.Floor, s.KeepThreshold))
	}
	if s.PreviewSize < 0 {
		errs = append(errs, fmt.Errorf("simplifier.preview_size %d must not be negative", s.PreviewSize))
	}
	g := cfg.Game
	if g.CorrectThreshold < -1 || g.CorrectThreshold > 1 {
		errs = append(errs, fmt.Errorf("game.correct_threshold %g must be within [-1, 1]", g.CorrectThreshold))
	}
	if g.Hints <= 0 {
		errs = append(errs, fmt.Errorf("game.hints %d must be positive", g.Hints))
	}
	if g.SuggestThreshold < 0 || g.SuggestThreshold > 1 {
		errs = append(errs, fmt.Errorf("game.suggest_threshold %g must be within [0, 1]", g.SuggestThreshold))
	}
	switch cfg.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("log.level %q is invalid; valid values: debug, info, warn, error", cfg.Log.Level))
	}
	switch cfg.Log.Format {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("log.format %q is invalid; valid values: text, json", cfg.Log.Format))
	}
	return errors.Join(errs...)
}

func defaultUserConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "simplifier", "config.yaml"), nil
}

// Default returns the built-in configuration.
func Default() *AppConfig {
	return &AppConfig{
		Simplifier: SimplifierConfig{Floor: 0.1, KeepThreshold: 0.5, PreviewSize: 10},
		Game:       GameConfig{CorrectThreshold: 0.7, Hints: 5, SuggestThreshold: 0.85},
		Log:        LogConfig{Level: "info", Format: "text"},
	}
}

func applyConfigDefaults(cfg *AppConfig) {
	if cfg.Game.Hints == 0 {
		cfg.Game.Hints = 5
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	cfg.Log.Level = strings.ToLower(cfg.Log.Level)
	if cfg.Log.Format == "" {
		cfg.Log.Format = "text"
	}
}
