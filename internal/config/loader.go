package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultConfigPath is read when no path is given and the file exists.
	DefaultConfigPath = "folio.yaml"

	// EnvPrefix is the prefix for environment variable overrides.
	EnvPrefix = "FOLIO"
)

// Loader handles loading configuration from files and environment.
type Loader struct {
	v *viper.Viper
}

// NewLoader creates a new configuration loader. Every known key has a
// default so that FOLIO_* variables reach Unmarshal without a config file.
func NewLoader() *Loader {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	def := NewConfig()
	v.SetDefault("variant", def.Variant)
	v.SetDefault("content.dir", def.Content.Dir)
	v.SetDefault("content.watch", def.Content.Watch)
	v.SetDefault("preloader.period", def.Preloader.Period)
	v.SetDefault("preloader.reveal_delay", def.Preloader.RevealDelay)
	v.SetDefault("preloader.skip", def.Preloader.Skip)
	v.SetDefault("typing.speed", def.Typing.Speed)
	v.SetDefault("serve.addr", def.Serve.Addr)
	v.SetDefault("ssh.addr", def.SSH.Addr)
	v.SetDefault("ssh.host_key", def.SSH.HostKey)
	v.SetDefault("log.level", def.Log.Level)
	v.SetDefault("log.file", def.Log.File)

	return &Loader{v: v}
}

// LoadConfig loads configuration from path, merges environment variables,
// applies defaults and validates the result. An empty path reads
// DefaultConfigPath when it exists and falls back to defaults otherwise.
func (l *Loader) LoadConfig(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultConfigPath
	}

	if _, err := os.Stat(path); err != nil {
		if !errors.Is(err, os.ErrNotExist) || explicit {
			return nil, &LoadError{Path: path, Message: "config file not found", Err: err}
		}
		path = ""
	}

	if path != "" {
		l.v.SetConfigFile(path)
		if err := l.v.ReadInConfig(); err != nil {
			return nil, &LoadError{Path: path, Message: "failed to read config file", Err: err}
		}
	}

	cfg := NewConfig()
	if err := l.v.Unmarshal(cfg, viperDecodeHook); err != nil {
		return nil, &LoadError{Path: displayPath(path), Message: "failed to parse config", Err: err}
	}
	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, &LoadError{Path: displayPath(path), Message: "configuration validation failed", Err: err}
	}
	return cfg, nil
}

// Path returns the config file that was read, or "" when none was.
func (l *Loader) Path() string {
	return l.v.ConfigFileUsed()
}

func displayPath(path string) string {
	if path == "" {
		return "(defaults)"
	}
	return path
}

// viperDecodeHook lets durations be written as "500ms" in files and env.
func viperDecodeHook(dc *mapstructure.DecoderConfig) {
	dc.DecodeHook = mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	)
}

// LoadError represents an error that occurred while loading configuration.
type LoadError struct {
	Path    string
	Message string
	Err     error
}

func (e *LoadError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Path, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Load is a convenience function that creates a new Loader and loads configuration.
func Load(path string) (*Config, error) {
	return NewLoader().LoadConfig(path)
}

// Marshal renders cfg as YAML that LoadConfig reads back.
func Marshal(cfg *Config) ([]byte, error) {
	doc := map[string]any{
		"variant": cfg.Variant,
		"content": map[string]any{
			"dir":   cfg.Content.Dir,
			"watch": cfg.Content.Watch,
		},
		"preloader": map[string]any{
			"period":       cfg.Preloader.Period.String(),
			"reveal_delay": cfg.Preloader.RevealDelay.String(),
			"skip":         cfg.Preloader.Skip,
		},
		"typing": map[string]any{
			"speed": cfg.Typing.Speed.String(),
		},
		"serve": map[string]any{"addr": cfg.Serve.Addr},
		"ssh": map[string]any{
			"addr":     cfg.SSH.Addr,
			"host_key": cfg.SSH.HostKey,
		},
		"log": map[string]any{
			"level": cfg.Log.Level,
			"file":  cfg.Log.File,
		},
	}
	if len(cfg.Variants) > 0 {
		doc["variants"] = cfg.Variants
	}
	return yaml.Marshal(doc)
}
