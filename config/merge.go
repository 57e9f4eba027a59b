package config

import (
	"encoding/json"

	"github.com/joeymnguyen/skill-bus/warnings"
)

// MergeSettings overlays global then project settings onto the
// defaults, key by key: start from defaults, apply global settings,
// then apply project settings.
func MergeSettings(global, project *FileConfig, w *warnings.Collector) Settings {
	s := DefaultSettings()
	if global != nil {
		applySettingsOverlay(&s, global.Settings, w)
	}
	if project != nil {
		applySettingsOverlay(&s, project.Settings, w)
	}
	return s
}

func applySettingsOverlay(s *Settings, raw map[string]json.RawMessage, w *warnings.Collector) {
	for key, val := range raw {
		switch key {
		case "enabled":
			decodeBool(val, &s.Enabled, key, w)
		case "maxMatchesPerSkill":
			decodeInt(val, &s.MaxMatchesPerSkill, key, w)
		case "showConsoleEcho":
			decodeBool(val, &s.ShowConsoleEcho, key, w)
		case "disableGlobal":
			decodeBool(val, &s.DisableGlobal, key, w)
		case "monitorSlashCommands":
			decodeBool(val, &s.MonitorSlashCommands, key, w)
		case "showConditionSkips":
			decodeBool(val, &s.ShowConditionSkips, key, w)
		case "telemetry":
			decodeBool(val, &s.Telemetry, key, w)
		case "observeUnmatched":
			decodeBool(val, &s.ObserveUnmatched, key, w)
		case "completionHooks":
			decodeBool(val, &s.CompletionHooks, key, w)
		case "telemetryPath":
			decodeString(val, &s.TelemetryPath, key, w)
		case "maxLogSizeKB":
			decodeInt(val, &s.MaxLogSizeKB, key, w)
		default:
			// Unknown setting key: forward-compat, ignored silently.
		}
	}
}

func decodeBool(val json.RawMessage, dst *bool, key string, w *warnings.Collector) {
	var v bool
	if err := json.Unmarshal(val, &v); err != nil {
		w.Add("[skill-bus] WARNING: setting %q must be a boolean, ignoring", key)
		return
	}
	*dst = v
}

func decodeInt(val json.RawMessage, dst *int, key string, w *warnings.Collector) {
	var v int
	if err := json.Unmarshal(val, &v); err != nil {
		w.Add("[skill-bus] WARNING: setting %q must be an integer, ignoring", key)
		return
	}
	*dst = v
}

func decodeString(val json.RawMessage, dst *string, key string, w *warnings.Collector) {
	var v string
	if err := json.Unmarshal(val, &v); err != nil {
		w.Add("[skill-bus] WARNING: setting %q must be a string, ignoring", key)
		return
	}
	*dst = v
}

// MergeInserts merges global and project inserts maps; project wins on
// name collision with an informational warning.
func MergeInserts(global, project *FileConfig, w *warnings.Collector) map[string]Insert {
	merged := make(map[string]Insert)
	var globalInserts, projectInserts map[string]Insert
	if global != nil {
		globalInserts = global.Inserts
	}
	if project != nil {
		projectInserts = project.Inserts
	}
	for name, ins := range globalInserts {
		merged[name] = ins
	}
	for name, ins := range projectInserts {
		if _, exists := globalInserts[name]; exists {
			w.Add("[skill-bus] INFO: insert %q defined in both scopes — using project version", name)
		}
		merged[name] = ins
	}
	return merged
}

// MergeSubscriptions runs the five-step merge: disableGlobal gate,
// override-directive partitioning, global filtering, concatenation, and
// dedup-keeping-later-occurrence. Each surviving subscription is tagged
// with its originating Scope.
func MergeSubscriptions(global, project *FileConfig, settings Settings, w *warnings.Collector) []Subscription {
	if !settings.Enabled {
		return nil
	}

	var globalSubs, projectSubs []Subscription
	if global != nil && !settings.DisableGlobal {
		globalSubs = global.Subscriptions
	}
	if project != nil {
		projectSubs = project.Subscriptions
	}

	var overridesSpecific []subKey
	overridesInsert := make(map[string]bool)
	var activeProject []Subscription

	for _, sub := range projectSubs {
		if sub.IsOverride() {
			if sub.Insert == "" {
				// Self-disabled subscription without an insert: silent no-op.
				continue
			}
			if sub.On != "" && sub.When != "" {
				overridesSpecific = append(overridesSpecific, subKey{insert: sub.Insert, on: sub.On, when: sub.When})
			} else {
				overridesInsert[sub.Insert] = true
			}
			continue
		}
		sub.Scope = "project"
		activeProject = append(activeProject, sub)
	}

	var filteredGlobal []Subscription
	for _, sub := range globalSubs {
		if !sub.IsEnabled() {
			continue
		}
		if overridesInsert[sub.Insert] {
			continue
		}
		if matchesAny(overridesSpecific, sub.key()) {
			continue
		}
		sub.Scope = "global"
		filteredGlobal = append(filteredGlobal, sub)
	}

	all := append(filteredGlobal, activeProject...)
	return dedupSubscriptions(all, w)
}

func matchesAny(keys []subKey, k subKey) bool {
	for _, candidate := range keys {
		if candidate == k {
			return true
		}
	}
	return false
}

// dedupSubscriptions keeps the later occurrence of each (insert, on,
// when) key while preserving the original order of survivors, using a
// reverse-scan-append-then-reverse pass.
func dedupSubscriptions(subs []Subscription, w *warnings.Collector) []Subscription {
	seenScope := make(map[subKey]string, len(subs))
	deduped := make([]Subscription, 0, len(subs))

	for i := len(subs) - 1; i >= 0; i-- {
		sub := subs[i]
		key := sub.key()
		if winnerScope, seen := seenScope[key]; seen {
			loserScope := sub.Scope
			if winnerScope == loserScope {
				w.Add("[skill-bus] WARNING: duplicate subscription (%s -> %s [%s]) in %s scope — deduplicating",
					key.insert, key.on, key.when, loserScope)
			} else {
				w.Add("[skill-bus] WARNING: duplicate subscription (%s -> %s [%s]) — using %s version",
					key.insert, key.on, key.when, winnerScope)
			}
			continue
		}
		seenScope[key] = sub.Scope
		deduped = append(deduped, sub)
	}

	for i, j := 0, len(deduped)-1; i < j; i, j = i+1, j-1 {
		deduped[i], deduped[j] = deduped[j], deduped[i]
	}
	return deduped
}
