package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/joeymnguyen/skill-bus/warnings"
)

// DefaultGlobalConfigPath is the fallback global config location, used
// when SKILL_BUS_GLOBAL_CONFIG is unset.
const DefaultGlobalConfigPath = "~/.claude/skill-bus.json"

// ProjectConfigRelPath is the project config location relative to cwd.
const ProjectConfigRelPath = ".claude/skill-bus.json"

// Load reads a single config file. A missing file yields (nil, nil) with
// no warning. Malformed JSON yields (nil, nil) plus a warning — a
// broken config degrades to "absent", not fatal.
func Load(path string, w *warnings.Collector) (*FileConfig, error) {
	expanded, err := expandHome(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(expanded)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var fc FileConfig
	if err := json.Unmarshal(data, &fc); err != nil {
		w.Add("[skill-bus] WARNING - %s has invalid JSON (%v). Fix to restore subscriptions.", path, err)
		return nil, nil
	}
	return &fc, nil
}

// ProjectConfigPath returns the project-scoped config path for cwd.
func ProjectConfigPath(cwd string) string {
	return filepath.Join(cwd, ".claude", "skill-bus.json")
}

// expandHome expands a leading "~" the way os.Expanduser does in the
// original implementation: only a bare "~" or "~/..." prefix, never
// "~user".
func expandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	if path == "~" {
		return home, nil
	}
	return filepath.Join(home, path[2:]), nil
}
