package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/ivlev/kimaybe/internal/anim"
	"github.com/ivlev/kimaybe/internal/kimaybe"
	"github.com/ivlev/kimaybe/internal/slots"
)

type Config struct {
	ScenarioPath string `yaml:"scenario"`
	IconsPath    string `yaml:"icons"` // по умолчанию каталог сценария
	OutputVideo  string `yaml:"output"`
	FramesDir    string `yaml:"frames"` // пусто = временный каталог
	// Дисплей генератора и превью, запись берёт размер из сценария.
	Width   int  `yaml:"width"`
	Height  int  `yaml:"height"`
	Round   bool `yaml:"round"`
	FPS     int  `yaml:"fps"`
	Scale   int  `yaml:"scale"` // увеличение кадра для видео
	Workers int  `yaml:"workers"`

	KMDuration time.Duration `yaml:"km_duration"`
	Delay      time.Duration `yaml:"delay"`
	Slices     int           `yaml:"slices"`
	DelayRatio float64       `yaml:"delay_ratio"`
	Completion string        `yaml:"completion"` // all | middle
	Curve      string        `yaml:"curve"`

	FadeDuration float64 `yaml:"fade"`
	VideoEncoder string  `yaml:"encoder"`
	Quality      int     `yaml:"quality"`
	SkipVideo    bool    `yaml:"skip_video"`
	Verify       bool    `yaml:"verify"`
	ShowStats    bool    `yaml:"stats"`
	Debug        bool    `yaml:"debug"`
	BuildVersion string  `yaml:"-"`
}

// EncodeParams describes one encoded clip
type EncodeParams struct {
	Width, Height int // размер кадра до увеличения
	FPS           int
	Scale         int
	Duration      float64
	FadeDuration  float64
	Encoder       string
	Quality       int
	Filter        string
}

var ErrInvalidConfig = errors.New("invalid config")

// Default returns the reference timing of the watch app on a 144x168 display.
func Default() *Config {
	return &Config{
		OutputVideo:  "kimaybe.mp4",
		Width:        144,
		Height:       168,
		FPS:          30,
		Scale:        4,
		Workers:      4,
		KMDuration:   slots.DefaultDuration,
		Delay:        slots.DefaultDelay,
		Slices:       kimaybe.DefaultSlices,
		DelayRatio:   kimaybe.DefaultDelayRatio,
		Completion:   "all",
		Curve:        "ease-in-out",
		VideoEncoder: "libx264",
		Quality:      23,
	}
}

// Load overlays the YAML file at path onto cfg. Keys missing from the file
// keep their current values.
func Load(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("config %s: %w", path, err)
	}
	return nil
}

// Save writes cfg as YAML.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	switch {
	case c.FPS <= 0:
		return fmt.Errorf("%w: fps %d", ErrInvalidConfig, c.FPS)
	case c.Scale <= 0:
		return fmt.Errorf("%w: scale %d", ErrInvalidConfig, c.Scale)
	case c.KMDuration < time.Millisecond:
		return fmt.Errorf("%w: km duration %v", ErrInvalidConfig, c.KMDuration)
	case c.Delay < 0:
		return fmt.Errorf("%w: delay %v", ErrInvalidConfig, c.Delay)
	case c.Slices <= 0:
		return fmt.Errorf("%w: slices %d", ErrInvalidConfig, c.Slices)
	case c.DelayRatio < 0:
		return fmt.Errorf("%w: delay ratio %v", ErrInvalidConfig, c.DelayRatio)
	case c.FadeDuration < 0:
		return fmt.Errorf("%w: fade %v", ErrInvalidConfig, c.FadeDuration)
	}
	if c.Workers <= 0 {
		c.Workers = 1
	}
	if _, err := c.CompletionPolicy(); err != nil {
		return err
	}
	if _, err := anim.CurveByName(c.Curve); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

func (c *Config) CompletionPolicy() (kimaybe.CompletionPolicy, error) {
	switch strings.ToLower(c.Completion) {
	case "", "all":
		return kimaybe.CompleteAll, nil
	case "middle":
		return kimaybe.CompleteMiddle, nil
	}
	return 0, fmt.Errorf("%w: completion %q", ErrInvalidConfig, c.Completion)
}

// SlotOptions converts the timing settings into coordinator options.
func (c *Config) SlotOptions() (slots.Options, error) {
	policy, err := c.CompletionPolicy()
	if err != nil {
		return slots.Options{}, err
	}
	curve, err := anim.CurveByName(c.Curve)
	if err != nil {
		return slots.Options{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return slots.Options{
		Duration: c.KMDuration,
		Delay:    c.Delay,
		KM: kimaybe.Options{
			Slices:     c.Slices,
			DelayRatio: c.DelayRatio,
			Curve:      curve,
			Completion: policy,
		},
	}, nil
}

// EncodeParams returns the clip parameters for a recording of duration
// seconds.
func (c *Config) EncodeParams(width, height int, duration float64) EncodeParams {
	return EncodeParams{
		Width:        width,
		Height:       height,
		FPS:          c.FPS,
		Scale:        c.Scale,
		Duration:     duration,
		FadeDuration: c.FadeDuration,
		Encoder:      c.VideoEncoder,
		Quality:      c.Quality,
	}
}
