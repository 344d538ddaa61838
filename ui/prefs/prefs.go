// Package prefs provides JSON-based application preferences.
package prefs

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"hsv-colortest/internal/errors"
)

const (
	appDir    = "hsv-colortest"
	prefsFile = "preferences.json"
)

// Keys used by the viewer.
const (
	KeyHue        = "hue"
	KeySaturation = "saturation"
	KeyValue      = "value"
	KeyCandidate  = "candidate"
)

// Prefs stores application preferences as a key-value map.
type Prefs struct {
	mu     sync.RWMutex
	values map[string]interface{}
	path   string
	dirty  bool
	gen    uint64
}

// Load reads preferences from ~/.config/hsv-colortest/preferences.json.
// Returns empty Prefs if the file doesn't exist.
func Load() *Prefs {
	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir = filepath.Join(os.Getenv("HOME"), ".config")
	}
	return LoadFrom(filepath.Join(configDir, appDir, prefsFile))
}

// LoadFrom reads preferences from path. A missing or corrupt file yields
// empty Prefs that will be written back to path on Save.
func LoadFrom(path string) *Prefs {
	p := &Prefs{
		values: make(map[string]interface{}),
		path:   path,
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return p
	}
	_ = json.Unmarshal(data, &p.values)
	return p
}

// Path returns the backing file.
func (p *Prefs) Path() string {
	return p.path
}

// Save writes preferences to disk. Prefs stay dirty when the write fails,
// so a later SaveIfChanged retries.
func (p *Prefs) Save() error {
	p.mu.RLock()
	data, err := json.MarshalIndent(p.values, "", "  ")
	gen := p.gen
	p.mu.RUnlock()
	if err != nil {
		return errors.Wrap(err)
	}

	dir := filepath.Dir(p.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrapf(err, "creating %s", dir)
	}
	if err := os.WriteFile(p.path, data, 0o644); err != nil {
		return errors.Wrapf(err, "writing %s", p.path)
	}

	p.mu.Lock()
	if p.gen == gen {
		p.dirty = false
	}
	p.mu.Unlock()
	return nil
}

// SaveIfChanged writes preferences only when a setter changed a value since
// the last save.
func (p *Prefs) SaveIfChanged() error {
	p.mu.RLock()
	dirty := p.dirty
	p.mu.RUnlock()
	if !dirty {
		return nil
	}
	return p.Save()
}

// Int returns an int preference, or fallback if not set.
// JSON numbers decode as float64 and are truncated.
func (p *Prefs) Int(key string, fallback int) int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if v, ok := p.values[key]; ok {
		switch n := v.(type) {
		case float64:
			return int(n)
		case int:
			return n
		}
	}
	return fallback
}

// SetInt stores an int preference.
func (p *Prefs) SetInt(key string, val int) {
	p.set(key, val)
}

// String returns a string preference, or fallback if not set.
func (p *Prefs) String(key string, fallback string) string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if v, ok := p.values[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return fallback
}

// SetString stores a string preference.
func (p *Prefs) SetString(key string, val string) {
	p.set(key, val)
}

func (p *Prefs) set(key string, val interface{}) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if old, ok := p.values[key]; ok && equalValue(old, val) {
		return
	}
	p.values[key] = val
	p.dirty = true
	p.gen++
}

func equalValue(a, b interface{}) bool {
	switch bv := b.(type) {
	case int:
		switch av := a.(type) {
		case int:
			return av == bv
		case float64:
			return av == float64(bv)
		}
	case string:
		av, ok := a.(string)
		return ok && av == bv
	}
	return false
}
