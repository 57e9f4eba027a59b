package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joeymnguyen/skill-bus/config"
	"github.com/joeymnguyen/skill-bus/telemetry"
)

func TestSessionStats_EmptyLogYieldsEmptyString(t *testing.T) {
	cwd := t.TempDir()
	settings := config.DefaultSettings()

	text, err := sessionStats(cwd, settings)

	require.NoError(t, err)
	assert.Empty(t, text)
}

func TestSessionStats_SummarizesMatchesSkipsAndGaps(t *testing.T) {
	cwd := t.TempDir()
	settings := config.DefaultSettings()
	log := telemetry.NewLogger()

	log.LogEvent(cwd, settings, "match", telemetry.Event{Skill: "deploy:prod", Insert: "ctx"})
	log.LogEvent(cwd, settings, "match", telemetry.Event{Skill: "deploy:prod", Insert: "ctx2"})
	log.LogEvent(cwd, settings, "condition_skip", telemetry.Event{Skill: "deploy:prod", Insert: "ctx3"})
	for i := 0; i < 3; i++ {
		log.LogEvent(cwd, settings, "no_match", telemetry.Event{Skill: "mystery:skill"})
	}

	text, err := sessionStats(cwd, settings)

	require.NoError(t, err)
	assert.Contains(t, text, "Skills intercepted: 1")
	assert.Contains(t, text, "Inserts injected: 2")
	assert.Contains(t, text, "Condition skips: ctx3 (1x)")
	assert.Contains(t, text, "mystery:skill ran 3x with no subscriptions")
	assert.Contains(t, text, "Suggestion: add a subscription for mystery:skill")
}

func TestSessionStats_BelowGapThresholdOmitted(t *testing.T) {
	cwd := t.TempDir()
	settings := config.DefaultSettings()
	log := telemetry.NewLogger()

	log.LogEvent(cwd, settings, "no_match", telemetry.Event{Skill: "rare:skill"})
	log.LogEvent(cwd, settings, "no_match", telemetry.Event{Skill: "rare:skill"})
	log.LogEvent(cwd, settings, "match", telemetry.Event{Skill: "deploy:prod", Insert: "ctx"})

	text, err := sessionStats(cwd, settings)

	require.NoError(t, err)
	assert.NotContains(t, text, "Gaps:")
}
