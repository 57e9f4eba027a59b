package match

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/joeymnguyen/skill-bus/condition"
	"github.com/joeymnguyen/skill-bus/config"
	"github.com/joeymnguyen/skill-bus/warnings"
)

func newMatcher(settings config.Settings, w *warnings.Collector) *Matcher {
	eval := condition.NewEvaluator(".", w)
	return New(map[string]config.Insert{}, settings, eval, w, nil)
}

func TestMatch_ToolModeExactGlob(t *testing.T) {
	w := warnings.New()
	m := newMatcher(config.DefaultSettings(), w)
	subs := []config.Subscription{{Insert: "ctx", On: "deploy:*", When: "pre"}}

	res := m.Match(Request{SkillName: "deploy:prod", Timing: "pre", Source: "tool", Cwd: "."}, subs)

	assert.Len(t, res.Matches, 1)
}

func TestMatch_PromptModeStripsNamespacePrefix(t *testing.T) {
	w := warnings.New()
	m := newMatcher(config.DefaultSettings(), w)
	subs := []config.Subscription{{Insert: "ctx", On: "ns:build", When: "pre"}}

	res := m.Match(Request{SkillName: "build", Timing: "pre", Source: "prompt", Cwd: "."}, subs)

	assert.Len(t, res.Matches, 1, "prompt mode should strip the namespace prefix for a bare skill name")
}

func TestMatch_PromptModeExcludesWildcardSuffix(t *testing.T) {
	w := warnings.New()
	m := newMatcher(config.DefaultSettings(), w)
	subs := []config.Subscription{
		{Insert: "ctx", On: "ns:*", When: "pre"},
		{Insert: "ctx2", On: "ns:**", When: "pre"},
	}

	res := m.Match(Request{SkillName: "build", Timing: "pre", Source: "prompt", Cwd: "."}, subs)

	assert.Empty(t, res.Matches, "bare `*`/`**` suffixes must never match an unprefixed prompt skill name")
}

func TestMatch_PromptModeOnlyMatchesPreTiming(t *testing.T) {
	w := warnings.New()
	m := newMatcher(config.DefaultSettings(), w)
	subs := []config.Subscription{{Insert: "ctx", On: "build", When: "post"}}

	res := m.Match(Request{SkillName: "build", Timing: "post", Source: "prompt", Cwd: "."}, subs)

	assert.Empty(t, res.Matches, "prompt source only ever evaluates when==pre subscriptions")
}

func TestMatch_CompleteTimingInertUnlessEnabled(t *testing.T) {
	w := warnings.New()
	settings := config.DefaultSettings()
	settings.CompletionHooks = false
	m := newMatcher(settings, w)
	subs := []config.Subscription{{Insert: "ctx", On: "build", When: "complete"}}

	res := m.Match(Request{SkillName: "build", Timing: "complete", Source: "tool", Cwd: "."}, subs)

	assert.Empty(t, res.Matches)
}

func TestMatch_CompleteTimingFiresWhenEnabled(t *testing.T) {
	w := warnings.New()
	settings := config.DefaultSettings()
	settings.CompletionHooks = true
	m := newMatcher(settings, w)
	subs := []config.Subscription{{Insert: "ctx", On: "build", When: "complete"}}

	res := m.Match(Request{SkillName: "build", Timing: "complete", Source: "tool", Cwd: "."}, subs)

	assert.Len(t, res.Matches, 1)
}

func TestMatch_InvalidWhenWarnsAndSkips(t *testing.T) {
	w := warnings.New()
	m := newMatcher(config.DefaultSettings(), w)
	subs := []config.Subscription{{Insert: "ctx", On: "build", When: "sometime"}}

	res := m.Match(Request{SkillName: "build", Timing: "pre", Source: "tool", Cwd: "."}, subs)

	assert.Empty(t, res.Matches)
	_, found := w.Find("invalid when")
	assert.True(t, found)
}

func TestMatch_CapAndTruncate_ExactlyAtCapNoWarning(t *testing.T) {
	w := warnings.New()
	settings := config.DefaultSettings()
	settings.MaxMatchesPerSkill = 2
	m := newMatcher(settings, w)
	subs := []config.Subscription{
		{Insert: "a", On: "build", When: "pre"},
		{Insert: "b", On: "build", When: "pre"},
	}

	res := m.Match(Request{SkillName: "build", Timing: "pre", Source: "tool", Cwd: "."}, subs)

	assert.Len(t, res.Matches, 2)
	assert.False(t, res.Truncated)
	assert.Equal(t, 0, w.Len())
}

func TestMatch_CapAndTruncate_ExceedsCapByOneWarns(t *testing.T) {
	w := warnings.New()
	settings := config.DefaultSettings()
	settings.MaxMatchesPerSkill = 2
	m := newMatcher(settings, w)
	subs := []config.Subscription{
		{Insert: "a", On: "build", When: "pre"},
		{Insert: "b", On: "build", When: "pre"},
		{Insert: "c", On: "build", When: "pre"},
	}

	res := m.Match(Request{SkillName: "build", Timing: "pre", Source: "tool", Cwd: "."}, subs)

	assert.Len(t, res.Matches, 2)
	assert.True(t, res.Truncated)
	assert.Equal(t, 3, res.TotalCount)
	_, found := w.Find("exceeded cap of 2")
	assert.True(t, found)
}

func TestMatch_ConditionNotMetRecordsSkipWarningWhenEnabled(t *testing.T) {
	w := warnings.New()
	settings := config.DefaultSettings()
	settings.ShowConditionSkips = true
	eval := condition.NewEvaluator(".", w)
	m := New(map[string]config.Insert{}, settings, eval, w, nil)
	subs := []config.Subscription{
		{Insert: "ctx", On: "build", When: "pre", Conditions: []config.Condition{
			{"envSet": []byte(`"DEFINITELY_UNSET_VAR_XYZ"`)},
		}},
	}

	res := m.Match(Request{SkillName: "build", Timing: "pre", Source: "tool", Cwd: "."}, subs)

	assert.Empty(t, res.Matches)
	_, found := w.Find("SKIP")
	assert.True(t, found)
}

func TestHasCompletionTrigger(t *testing.T) {
	subs := []config.Subscription{
		{Insert: "ctx", On: "build", When: "complete"},
		{Insert: "ctx2", On: "deploy", When: "pre"},
	}

	assert.True(t, HasCompletionTrigger(subs, "build"))
	assert.False(t, HasCompletionTrigger(subs, "deploy"))
}

func TestGlob(t *testing.T) {
	assert.True(t, Glob("deploy:*", "deploy:prod"))
	assert.False(t, Glob("deploy:*", "build:prod"))
	assert.False(t, Glob("[invalid", "anything"))
}
