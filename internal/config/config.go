// Package config loads the governance pipeline's own operator-facing
// settings — log level, which pre-hooks are CRITICAL, and the
// post-process check commands — from ".orchestration/settings.json" (or
// ".toml"), following the teacher's own settings package: strict decoding
// that rejects unknown keys, plus an optional ".local" overlay for
// machine-specific overrides.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// CheckSpec configures one Post-process Orchestrator check.
type CheckSpec struct {
	Name           string   `json:"name" toml:"name"`
	Command        []string `json:"command" toml:"command"`
	TimeoutSeconds int      `json:"timeout_seconds,omitempty" toml:"timeout_seconds"`
}

// Settings is the governance pipeline's own configuration, as distinct
// from the intent/scope data the core consumes at runtime.
type Settings struct {
	LogLevel           string      `json:"log_level,omitempty" toml:"log_level"`
	CriticalHooks      []string    `json:"critical_hooks,omitempty" toml:"critical_hooks"`
	PostprocessChecks  []CheckSpec `json:"postprocess_checks,omitempty" toml:"postprocess_checks"`
	HITLTimeoutSeconds int         `json:"hitl_timeout_seconds,omitempty" toml:"hitl_timeout_seconds"`
}

// DefaultCriticalHooks names the pre-hooks registered as CRITICAL by
// default: the intent-requirement hook ("handshake") and the scope/lock
// hook ("scope"). No separate human-in-the-loop pre-hook is registered;
// scope-expansion approval runs inside the scope hook.
var DefaultCriticalHooks = []string{"handshake", "scope"}

// Load reads workdir's ".orchestration/settings.toml" if present, else
// ".orchestration/settings.json" if present, overlaying
// ".local" variant of whichever format was found. A workdir with neither
// file yields zero-value Settings plus DefaultCriticalHooks.
func Load(workdir string) (Settings, error) {
	dir := filepath.Join(workdir, ".orchestration")

	if path := filepath.Join(dir, "settings.toml"); fileExists(path) {
		base, err := loadTOML(path)
		if err != nil {
			return Settings{}, err
		}
		if localPath := filepath.Join(dir, "settings.local.toml"); fileExists(localPath) {
			local, err := loadTOML(localPath)
			if err != nil {
				return Settings{}, err
			}
			base = overlay(base, local)
		}
		return withDefaults(base), nil
	}

	if path := filepath.Join(dir, "settings.json"); fileExists(path) {
		base, err := loadJSON(path)
		if err != nil {
			return Settings{}, err
		}
		if localPath := filepath.Join(dir, "settings.local.json"); fileExists(localPath) {
			local, err := loadJSON(localPath)
			if err != nil {
				return Settings{}, err
			}
			base = overlay(base, local)
		}
		return withDefaults(base), nil
	}

	return withDefaults(Settings{}), nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// loadJSON strictly decodes path, rejecting unknown keys the same way the
// teacher's settings loader does.
func loadJSON(path string) (Settings, error) {
	f, err := os.Open(path) //nolint:gosec // path derived from workdir + fixed filename
	if err != nil {
		return Settings{}, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close() //nolint:errcheck // read-only handle

	dec := json.NewDecoder(f)
	dec.DisallowUnknownFields()
	var s Settings
	if err := dec.Decode(&s); err != nil {
		return Settings{}, fmt.Errorf("parsing %s: %w", path, err)
	}
	return s, nil
}

// loadTOML decodes path, rejecting keys that map to no Settings field.
func loadTOML(path string) (Settings, error) {
	var s Settings
	md, err := toml.DecodeFile(path, &s)
	if err != nil {
		return Settings{}, fmt.Errorf("parsing %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Settings{}, fmt.Errorf("parsing %s: unknown field %q", path, undecoded[0].String())
	}
	return s, nil
}

// overlay applies local's non-zero fields on top of base.
func overlay(base, local Settings) Settings {
	if local.LogLevel != "" {
		base.LogLevel = local.LogLevel
	}
	if len(local.CriticalHooks) > 0 {
		base.CriticalHooks = local.CriticalHooks
	}
	if len(local.PostprocessChecks) > 0 {
		base.PostprocessChecks = local.PostprocessChecks
	}
	if local.HITLTimeoutSeconds != 0 {
		base.HITLTimeoutSeconds = local.HITLTimeoutSeconds
	}
	return base
}

func withDefaults(s Settings) Settings {
	if len(s.CriticalHooks) == 0 {
		s.CriticalHooks = DefaultCriticalHooks
	}
	if s.LogLevel == "" {
		s.LogLevel = "info"
	}
	return s
}
