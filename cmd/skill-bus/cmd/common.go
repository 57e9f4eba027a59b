package cmd

import (
	"os"
	"sort"

	"github.com/joeymnguyen/skill-bus/config"
	"github.com/joeymnguyen/skill-bus/warnings"
)

// scopedConfigs loads both layers for cwd, discarding per-load warnings
// into a throwaway collector the way the Python CLI silently drains its
// warning queue between commands.
func scopedConfigs(cwd string) (global, project *config.FileConfig) {
	w := warnings.New()
	globalPath := os.Getenv("SKILL_BUS_GLOBAL_CONFIG")
	if globalPath == "" {
		globalPath = config.DefaultGlobalConfigPath
	}
	global, _ = config.Load(globalPath, w)
	project, _ = config.Load(config.ProjectConfigPath(cwd), w)
	return global, project
}

// deriveScope reports which scope a merged subscription survived from
// by re-deriving it from Subscription.Scope, set during MergeSubscriptions.
func deriveScope(sub config.Subscription) string {
	if sub.Scope == "" {
		return "project"
	}
	return sub.Scope
}

func sortedKeys(m map[string]config.Insert) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
