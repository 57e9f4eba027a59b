// Package match implements the subscription matcher: timing gates,
// glob pattern tests against skill names, condition resolution and
// evaluation, and cap-and-truncate accounting.
package match

import (
	"strings"

	"github.com/gobwas/glob"

	"github.com/joeymnguyen/skill-bus/condition"
	"github.com/joeymnguyen/skill-bus/config"
	"github.com/joeymnguyen/skill-bus/telemetry"
	"github.com/joeymnguyen/skill-bus/warnings"
)

// Request is the per-dispatch matching context: the four values the
// host supplies to drive one control-flow pass.
type Request struct {
	SkillName string
	Timing    string // pre | post | complete
	Source    string // tool | prompt
	Cwd       string
}

// Result carries the capped match list plus the accounting needed to
// report truncation, even though matches past the cap are discarded.
type Result struct {
	Matches    []config.Subscription
	Truncated  bool
	TotalCount int
}

// Matcher walks a subscription list for one dispatch. It is constructed
// fresh per dispatch and holds only references to dispatch-scoped
// collaborators as explicit fields, never globals.
type Matcher struct {
	Inserts  map[string]config.Insert
	Settings config.Settings
	Eval     *condition.Evaluator
	Warn     *warnings.Collector
	Tel      *telemetry.Logger // may be nil; events are logged only when Settings.Telemetry is set
}

// New returns a Matcher wired to the given dispatch collaborators.
func New(inserts map[string]config.Insert, settings config.Settings, eval *condition.Evaluator, w *warnings.Collector, tel *telemetry.Logger) *Matcher {
	return &Matcher{Inserts: inserts, Settings: settings, Eval: eval, Warn: w, Tel: tel}
}

// Match filters subs against req and returns the capped matches in
// original order.
func (m *Matcher) Match(req Request, subs []config.Subscription) Result {
	if req.Timing == "complete" && !m.Settings.CompletionHooks {
		return Result{}
	}

	maxMatches := m.Settings.MaxMatchesPerSkill
	if maxMatches < 1 {
		maxMatches = 1
	}

	var matched []config.Subscription
	total := 0

	for _, sub := range subs {
		when := sub.WhenOrDefault()
		if when != "pre" && when != "post" && when != "complete" {
			m.Warn.Add("[skill-bus] WARNING: subscription for insert %q has invalid when %q, skipping", sub.Insert, when)
			continue
		}
		if when == "complete" && !m.Settings.CompletionHooks {
			continue
		}

		if req.Source == "prompt" {
			if when != "pre" {
				continue
			}
		} else if when != req.Timing {
			continue
		}

		if !m.patternMatches(sub.On, req.SkillName, req.Source) {
			continue
		}

		conditions := condition.ResolveEffective(sub, m.Inserts)
		if len(conditions) > 0 && req.Cwd == "" {
			m.recordSkip(sub, req)
			continue
		}
		if !m.Eval.EvaluateAll(conditions) {
			m.recordSkip(sub, req)
			continue
		}

		total++
		if total <= maxMatches {
			matched = append(matched, sub)
		}
	}

	truncated := total > maxMatches
	if truncated {
		m.Warn.Add("[skill-bus] WARNING: %d matches for skill %q exceeded cap of %d, truncating", total, req.SkillName, maxMatches)
	}

	return Result{Matches: matched, Truncated: truncated, TotalCount: total}
}

// patternMatches runs the tool/prompt dual-mode glob test. Tool mode
// compares the pattern as-is; prompt mode strips the pattern's
// namespace prefix when the skill name itself carries none, excluding
// bare `*`/`**` suffixes from matching unprefixed commands.
func (m *Matcher) patternMatches(pattern, skillName, source string) bool {
	if source == "prompt" && !strings.Contains(skillName, ":") {
		suffix := pattern
		if idx := strings.LastIndex(pattern, ":"); idx != -1 {
			suffix = pattern[idx+1:]
		}
		if suffix == "*" || suffix == "**" {
			return false
		}
		return m.globMatch(suffix, skillName)
	}
	return m.globMatch(pattern, skillName)
}

// Glob reports whether pattern shell-glob-matches s. It is exported for
// display tooling that needs the same pattern semantics the matcher
// uses without going through a full Match call.
func Glob(pattern, s string) bool {
	g, err := glob.Compile(pattern)
	if err != nil {
		return false
	}
	return g.Match(s)
}

func (m *Matcher) globMatch(pattern, s string) bool {
	g, err := glob.Compile(pattern)
	if err != nil {
		m.Warn.Add("[skill-bus] WARNING: invalid glob pattern %q: %v", pattern, err)
		return false
	}
	return g.Match(s)
}

// HasCompletionTrigger reports whether any subscription in subs is
// timed "complete" and its pattern glob-matches skillName. It is used
// to decide whether a "pre" dispatch should carry the completion
// trigger instruction regardless of how many "pre" subscriptions
// matched.
func HasCompletionTrigger(subs []config.Subscription, skillName string) bool {
	for _, sub := range subs {
		if sub.WhenOrDefault() != "complete" {
			continue
		}
		g, err := glob.Compile(sub.On)
		if err != nil {
			continue
		}
		if g.Match(skillName) {
			return true
		}
	}
	return false
}

func (m *Matcher) recordSkip(sub config.Subscription, req Request) {
	if m.Settings.ShowConditionSkips {
		m.Warn.Add("[skill-bus] SKIP: insert %q pattern %q [%s] — condition not met", sub.Insert, sub.On, sub.WhenOrDefault())
	}
	if m.Settings.Telemetry && m.Tel != nil {
		m.Tel.LogEvent(req.Cwd, m.Settings, "condition_skip", telemetry.Event{
			Skill:   req.SkillName,
			Insert:  sub.Insert,
			Pattern: sub.On,
			Timing:  sub.WhenOrDefault(),
			Source:  req.Source,
		})
	}
}
