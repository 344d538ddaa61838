// Package config reads start-up settings from an optional .env file and the
// environment.
package config

import (
	"os"
	"strconv"

	"hsv-colortest/internal/errors"

	"github.com/joho/godotenv"
)

// Environment variables read by Load.
const (
	EnvHue        = "HSVTEST_H"
	EnvSaturation = "HSVTEST_S"
	EnvValue      = "HSVTEST_V"
	EnvWidth      = "HSVTEST_WIDTH"
	EnvHeight     = "HSVTEST_HEIGHT"
	EnvDebug      = "HSVTEST_DEBUG"
)

// DefaultEnvFile is loaded when Load is called without file names.
const DefaultEnvFile = ".env"

// Canvas size of the original tool.
const (
	DefaultWidth  = 480
	DefaultHeight = 240
)

// Override is an integer setting that may be absent.
type Override struct {
	Value int
	Set   bool
}

// Or returns the override value when set, otherwise fallback.
func (o Override) Or(fallback int) int {
	if o.Set {
		return o.Value
	}
	return fallback
}

// Config holds the environment-provided settings.
type Config struct {
	Hue        Override
	Saturation Override
	Value      Override
	Width      int
	Height     int
	Debug      bool
}

// Load reads the given .env files (DefaultEnvFile when none are named) into
// the process environment without overriding variables that are already
// set, then parses the settings. Missing files are ignored.
func Load(files ...string) (Config, error) {
	if len(files) == 0 {
		files = []string{DefaultEnvFile}
	}

	var present []string
	for _, f := range files {
		if _, err := os.Stat(f); err == nil {
			present = append(present, f)
		}
	}
	if len(present) > 0 {
		if err := godotenv.Load(present...); err != nil {
			return Config{}, errors.Wrapf(err, "loading %v", present)
		}
	}

	return FromEnv(os.LookupEnv)
}

// FromEnv parses the settings through lookup.
func FromEnv(lookup func(string) (string, bool)) (Config, error) {
	cfg := Config{Width: DefaultWidth, Height: DefaultHeight}

	var err error
	if cfg.Hue, err = channel(lookup, EnvHue, 179); err != nil {
		return Config{}, err
	}
	if cfg.Saturation, err = channel(lookup, EnvSaturation, 255); err != nil {
		return Config{}, err
	}
	if cfg.Value, err = channel(lookup, EnvValue, 255); err != nil {
		return Config{}, err
	}

	if w, ok := lookup(EnvWidth); ok && w != "" {
		if cfg.Width, err = positive(EnvWidth, w); err != nil {
			return Config{}, err
		}
	}
	if h, ok := lookup(EnvHeight); ok && h != "" {
		if cfg.Height, err = positive(EnvHeight, h); err != nil {
			return Config{}, err
		}
	}

	if d, ok := lookup(EnvDebug); ok && d != "" {
		if cfg.Debug, err = strconv.ParseBool(d); err != nil {
			return Config{}, errors.Wrapf(err, "%s", EnvDebug)
		}
	}

	return cfg, nil
}

func channel(lookup func(string) (string, bool), key string, hi int) (Override, error) {
	s, ok := lookup(key)
	if !ok || s == "" {
		return Override{}, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return Override{}, errors.Wrapf(err, "%s", key)
	}
	return inRange(key, n, hi)
}

func inRange(key string, n, hi int) (Override, error) {
	if n < 0 || n > hi {
		return Override{}, errors.Errorf("%s=%d out of range 0-%d", key, n, hi)
	}
	return Override{Value: n, Set: true}, nil
}

func positive(key, s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, errors.Wrapf(err, "%s", key)
	}
	if n <= 0 {
		return 0, errors.Errorf("%s=%d must be positive", key, n)
	}
	return n, nil
}

// Resolve returns the first set override, or fallback when none is set.
// Sources are listed from highest to lowest precedence.
func Resolve(fallback int, sources ...Override) int {
	for _, o := range sources {
		if o.Set {
			return o.Value
		}
	}
	return fallback
}
