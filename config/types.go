// Package config loads, merges, and types the two-layer skill-bus
// configuration: global (user-wide) and project (cwd-relative) JSON
// files contributing settings, inserts, and subscriptions.
package config

import "encoding/json"

// Condition is a predicate mapping with exactly one key naming the kind
// (fileExists, gitBranch, envSet, envEquals, fileContains, not) paired
// with its argument. The argument shape is kind-specific and decoded by
// package condition.
type Condition map[string]json.RawMessage

// Insert is a named chunk of injectable text.
type Insert struct {
	Text       string      `json:"text,omitempty"`
	Conditions []Condition `json:"conditions,omitempty"`
	Dynamic    string      `json:"dynamic,omitempty"`
}

// Subscription ties a skill pattern to an insert. Scope is populated by
// MergeSubscriptions and is not part of the on-disk schema.
type Subscription struct {
	Insert            string      `json:"insert,omitempty"`
	On                string      `json:"on,omitempty"`
	When              string      `json:"when,omitempty"`
	Enabled           *bool       `json:"enabled,omitempty"`
	Conditions        []Condition `json:"conditions,omitempty"`
	InheritConditions *bool       `json:"inheritConditions,omitempty"`

	// Inject is the pre-insert-era field name. Its presence without
	// Insert marks an old-format subscription.
	Inject string `json:"inject,omitempty"`

	// Scope records which config file this subscription survived from
	// ("global" or "project"), tagged during MergeSubscriptions. Never serialized.
	Scope string `json:"-"`
}

// IsEnabled reports the subscription's enabled flag, defaulting to true.
func (s Subscription) IsEnabled() bool {
	return s.Enabled == nil || *s.Enabled
}

// IsOverride reports whether this is an override directive: a
// project-scope subscription with enabled:false.
func (s Subscription) IsOverride() bool {
	return s.Enabled != nil && !*s.Enabled
}

// WhenOrDefault returns the subscription's timing, defaulting to "pre".
func (s Subscription) WhenOrDefault() string {
	if s.When == "" {
		return "pre"
	}
	return s.When
}

// InheritsConditions reports whether insert-level conditions should be
// stacked onto this subscription's own, defaulting to true.
func (s Subscription) InheritsConditions() bool {
	return s.InheritConditions == nil || *s.InheritConditions
}

// IsOldFormat reports whether this subscription uses the pre-insert
// "inject" field instead of "insert".
func (s Subscription) IsOldFormat() bool {
	return s.Inject != "" && s.Insert == ""
}

// key returns the (insert, on, when) dedup tuple.
func (s Subscription) key() subKey {
	return subKey{insert: s.Insert, on: s.On, when: s.WhenOrDefault()}
}

type subKey struct {
	insert, on, when string
}

// Settings is the merged settings object, with defaults from
// DefaultSettings applied for any key missing from both config scopes.
type Settings struct {
	Enabled              bool   `json:"enabled"`
	MaxMatchesPerSkill   int    `json:"maxMatchesPerSkill"`
	ShowConsoleEcho      bool   `json:"showConsoleEcho"`
	DisableGlobal        bool   `json:"disableGlobal"`
	MonitorSlashCommands bool   `json:"monitorSlashCommands"`
	ShowConditionSkips   bool   `json:"showConditionSkips"`
	Telemetry            bool   `json:"telemetry"`
	ObserveUnmatched     bool   `json:"observeUnmatched"`
	CompletionHooks      bool   `json:"completionHooks"`
	TelemetryPath        string `json:"telemetryPath"`
	MaxLogSizeKB         int    `json:"maxLogSizeKB"`
}

// DefaultSettings returns the built-in settings defaults.
func DefaultSettings() Settings {
	return Settings{
		Enabled:              true,
		MaxMatchesPerSkill:   3,
		ShowConsoleEcho:      true,
		DisableGlobal:        false,
		MonitorSlashCommands: false,
		ShowConditionSkips:   false,
		Telemetry:            false,
		ObserveUnmatched:     false,
		CompletionHooks:      false,
		TelemetryPath:        "",
		MaxLogSizeKB:         512,
	}
}

// FileConfig is the on-disk schema shared by both global and project
// config files.
type FileConfig struct {
	Settings      map[string]json.RawMessage `json:"settings,omitempty"`
	Inserts       map[string]Insert          `json:"inserts,omitempty"`
	Subscriptions []Subscription             `json:"subscriptions,omitempty"`
}
