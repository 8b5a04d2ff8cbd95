// Package config provides configuration loading for folio.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/kyaoi/folio/internal/content"
	"github.com/kyaoi/folio/internal/page"
)

// Config is the complete folio configuration.
type Config struct {
	Variant   string                     `mapstructure:"variant"`
	Content   ContentConfig              `mapstructure:"content"`
	Preloader PreloaderConfig            `mapstructure:"preloader"`
	Typing    TypingConfig               `mapstructure:"typing"`
	Serve     ServeConfig                `mapstructure:"serve"`
	SSH       SSHConfig                  `mapstructure:"ssh"`
	Log       LogConfig                  `mapstructure:"log"`
	Variants  map[string]content.Variant `mapstructure:"variants"`
}

// ContentConfig selects where sections come from.
type ContentConfig struct {
	// Dir holds the section markdown files. Empty means the built-in sample.
	Dir string `mapstructure:"dir"`
	// Watch reloads sections when files in Dir change.
	Watch bool `mapstructure:"watch"`
}

// PreloaderConfig tunes the loading animation.
type PreloaderConfig struct {
	Period      time.Duration `mapstructure:"period"`
	RevealDelay time.Duration `mapstructure:"reveal_delay"`
	Skip        bool          `mapstructure:"skip"`
}

// TypingConfig tunes the typed headline. A section's own speed wins.
type TypingConfig struct {
	Speed time.Duration `mapstructure:"speed"`
}

// ServeConfig configures the HTTP server.
type ServeConfig struct {
	Addr string `mapstructure:"addr"`
}

// SSHConfig configures the SSH server.
type SSHConfig struct {
	Addr    string `mapstructure:"addr"`
	HostKey string `mapstructure:"host_key"`
}

// LogConfig configures logging. File receives logs while the terminal UI
// owns the screen.
type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

// Log levels accepted by LogConfig.Level.
var logLevels = []string{"trace", "debug", "info", "error"}

// NewConfig returns a Config with defaults applied.
func NewConfig() *Config {
	cfg := &Config{}
	cfg.ApplyDefaults()
	return cfg
}

// ApplyDefaults fills unset fields.
func (c *Config) ApplyDefaults() {
	if c.Variant == "" {
		c.Variant = content.DefaultVariant
	}
	if c.Preloader.Period == 0 {
		c.Preloader.Period = page.DefaultPreloadPeriod
	}
	if c.Preloader.RevealDelay == 0 {
		c.Preloader.RevealDelay = page.DefaultRevealDelay
	}
	if c.Typing.Speed == 0 {
		c.Typing.Speed = page.HeadlineTypingSpeed
	}
	if c.Serve.Addr == "" {
		c.Serve.Addr = ":8080"
	}
	if c.SSH.Addr == "" {
		c.SSH.Addr = ":2222"
	}
	if c.SSH.HostKey == "" {
		c.SSH.HostKey = ".folio/ssh_host_ed25519_key"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs []error
	if c.Preloader.Period <= 0 {
		errs = append(errs, fmt.Errorf("preloader.period must be positive, got %v", c.Preloader.Period))
	}
	if c.Preloader.RevealDelay < 0 {
		errs = append(errs, fmt.Errorf("preloader.reveal_delay must not be negative, got %v", c.Preloader.RevealDelay))
	}
	if c.Typing.Speed <= 0 {
		errs = append(errs, fmt.Errorf("typing.speed must be positive, got %v", c.Typing.Speed))
	}
	if !validLevel(c.Log.Level) {
		errs = append(errs, fmt.Errorf("log.level must be one of %s, got %q", strings.Join(logLevels, ", "), c.Log.Level))
	}
	if c.Content.Watch && c.Content.Dir == "" {
		errs = append(errs, errors.New("content.watch requires content.dir"))
	}
	if _, err := c.ResolveVariant(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// ResolveVariant returns the configured variant.
func (c *Config) ResolveVariant() (content.Variant, error) {
	return content.Resolve(c.Variant, c.Variants)
}

func validLevel(level string) bool {
	for _, l := range logLevels {
		if strings.EqualFold(l, level) {
			return true
		}
	}
	return false
}
