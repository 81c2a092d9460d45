package config

import (
	"fmt"
	"os"

	"github.com/san-kum/pdspring/internal/curve"
	"github.com/san-kum/pdspring/internal/dynamo"
	"github.com/san-kum/pdspring/spring"
	"gopkg.in/yaml.v3"
)

const (
	DefaultFrom   = 0.0
	DefaultTo     = 200.0
	DefaultRepeat = 100
	DefaultFPS    = 60
	DefaultWidth  = 60
)

type Config struct {
	Duration float64       `yaml:"duration"`
	Bounce   float64       `yaml:"bounce"`
	Velocity float64       `yaml:"velocity"`
	Engine   string        `yaml:"engine"`
	Sampling dynamo.Config `yaml:"sampling"`
	Tween    TweenConfig   `yaml:"tween"`
	Demo     DemoConfig    `yaml:"demo"`
}

type TweenConfig struct {
	From   float64 `yaml:"from"`
	To     float64 `yaml:"to"`
	Repeat int     `yaml:"repeat"`
}

type DemoConfig struct {
	FPS   int    `yaml:"fps"`
	Width int    `yaml:"width"`
	Theme string `yaml:"theme"`
}

func DefaultConfig() *Config {
	return &Config{
		Duration: spring.DefaultDuration,
		Bounce:   spring.DefaultBounce,
		Engine:   curve.DefaultEngine,
		Sampling: dynamo.DefaultConfig(),
		Tween: TweenConfig{
			From:   DefaultFrom,
			To:     DefaultTo,
			Repeat: DefaultRepeat,
		},
		Demo: DemoConfig{
			FPS:   DefaultFPS,
			Width: DefaultWidth,
		},
	}
}

// LoadInto overlays the keys present in the file at path onto cfg.
func LoadInto(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if err := c.Params().Perceptual().Validate(); err != nil {
		return err
	}
	if err := c.Sampling.Validate(); err != nil {
		return err
	}
	if c.Tween.Repeat < 0 {
		return fmt.Errorf("tween repeat must be >= 0, got %d", c.Tween.Repeat)
	}
	if c.Demo.FPS <= 0 {
		return fmt.Errorf("demo fps must be positive, got %d", c.Demo.FPS)
	}
	return nil
}

func (c *Config) Params() curve.Params {
	return curve.Params{
		Duration: c.Duration,
		Bounce:   c.Bounce,
		Velocity: c.Velocity,
	}
}

// Apply copies a preset's spring onto the config.
func (c *Config) Apply(p Preset) {
	c.Duration = p.Duration
	c.Bounce = p.Bounce
}
