// Package dispatch is the orchestrator: it wires the config loader,
// condition evaluator, matcher, and output assembler into a single
// end-to-end pipeline for one dispatch invocation.
package dispatch

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joeymnguyen/skill-bus/assemble"
	"github.com/joeymnguyen/skill-bus/condition"
	"github.com/joeymnguyen/skill-bus/config"
	"github.com/joeymnguyen/skill-bus/match"
	"github.com/joeymnguyen/skill-bus/telemetry"
	"github.com/joeymnguyen/skill-bus/warnings"
)

// Options are the four values the host supplies for one dispatch: the
// skill name via env var, the rest via CLI flags.
type Options struct {
	SkillName string
	Timing    string // pre | post | complete
	Source    string // tool | prompt
	Cwd       string
}

const softDeadline = 4 * time.Second

// Run executes one dispatch end to end and returns the output document
// to serialize. It never panics across its own boundary: any internal
// failure is converted into a systemMessage.
func Run(opts Options) (out *assemble.Output) {
	defer func() {
		if r := recover(); r != nil {
			out = &assemble.Output{SystemMessage: fmt.Sprintf("[skill-bus] ERROR - %v", r)}
		}
	}()

	if opts.SkillName == "" {
		return &assemble.Output{}
	}

	start := time.Now()
	w := warnings.New()

	globalPath := os.Getenv("SKILL_BUS_GLOBAL_CONFIG")
	if globalPath == "" {
		globalPath = config.DefaultGlobalConfigPath
	}
	projectPath := config.ProjectConfigPath(opts.Cwd)

	globalCfg, err := config.Load(globalPath, w)
	if err != nil {
		w.Add("[skill-bus] WARNING: could not read %s: %v — treating as absent", globalPath, err)
	}
	projectCfg, err := config.Load(projectPath, w)
	if err != nil {
		w.Add("[skill-bus] WARNING: could not read %s: %v — treating as absent", projectPath, err)
	}

	settings := config.MergeSettings(globalCfg, projectCfg, w)
	if os.Getenv("SKILL_BUS_DEBUG") == "1" {
		settings.ShowConditionSkips = true
	}
	inserts := config.MergeInserts(globalCfg, projectCfg, w)
	subs := config.MergeSubscriptions(globalCfg, projectCfg, settings, w)
	subs = config.FilterOldFormat(subs, w)

	if !settings.Enabled {
		return &assemble.Output{SystemMessage: "[skill-bus] Disabled via settings. Run /skill-bus:unpause-subs to re-enable."}
	}
	if opts.Timing == "complete" && !settings.CompletionHooks {
		return &assemble.Output{}
	}
	if opts.Source == "prompt" && !settings.MonitorSlashCommands {
		return &assemble.Output{}
	}

	eval := condition.NewEvaluator(opts.Cwd, w)
	tel := telemetry.NewLogger()
	matcher := match.New(inserts, settings, eval, w, tel)

	req := match.Request{SkillName: opts.SkillName, Timing: opts.Timing, Source: opts.Source, Cwd: opts.Cwd}
	result := matcher.Match(req, subs)

	completionInstruction := buildCompletionInstruction(opts, settings, subs, w)

	if settings.Telemetry {
		for _, sub := range result.Matches {
			tel.LogEvent(opts.Cwd, settings, "match", telemetry.Event{
				Skill: opts.SkillName, Insert: sub.Insert, Timing: opts.Timing, Source: opts.Source,
			})
		}
		if opts.Timing == "complete" && len(result.Matches) > 0 {
			tel.LogEvent(opts.Cwd, settings, "skill_complete", telemetry.Event{
				Skill: opts.SkillName, Timing: "complete", Source: opts.Source,
			})
		}
	}

	if len(result.Matches) == 0 {
		if settings.Telemetry && settings.ObserveUnmatched {
			tel.LogEvent(opts.Cwd, settings, "no_match", telemetry.Event{
				Skill: opts.SkillName, Timing: opts.Timing, Source: opts.Source,
			})
		}
		if w.Len() == 0 && completionInstruction == "" {
			return &assemble.Output{}
		}
	}

	if time.Since(start) > softDeadline {
		w.Add("[skill-bus] WARNING: dispatch took %.1fs (5s timeout), context may be incomplete", time.Since(start).Seconds())
	}

	assembleReq := assemble.Request{Timing: opts.Timing, Source: opts.Source, Cwd: opts.Cwd, SkillName: opts.SkillName}
	return assemble.Build(assembleReq, result.Matches, inserts, settings, w, completionInstruction)
}

// buildCompletionInstruction renders the fixed completion-trigger text
// when a "pre" dispatch's skill has a matching "complete" subscription
// and completionHooks is enabled. The chain depth comes from
// _SB_CHAIN_DEPTH, defaulting to zero on malformed values.
func buildCompletionInstruction(opts Options, settings config.Settings, subs []config.Subscription, w *warnings.Collector) string {
	if opts.Timing != "pre" || !settings.CompletionHooks {
		return ""
	}
	if opts.Source != "tool" && opts.Source != "prompt" {
		return ""
	}
	if !match.HasCompletionTrigger(subs, opts.SkillName) {
		return ""
	}

	depth := parseChainDepth(w)
	depthArg := ""
	if depth > 0 {
		depthArg = fmt.Sprintf(" --depth %d", depth)
	}

	return fmt.Sprintf(
		"\n\n---\n[skill-bus] COMPLETION TRIGGER: When you have FULLY completed "+
			"the work described by this skill — not begun it, FULLY delivered all "+
			"outputs — you MUST invoke the Skill tool with skill: \"skill-bus:complete\" "+
			"and args: \"%s%s\" to trigger downstream subscriptions. Do NOT skip this step.",
		opts.SkillName, depthArg,
	)
}

func parseChainDepth(w *warnings.Collector) int {
	raw := os.Getenv("_SB_CHAIN_DEPTH")
	if raw == "" {
		return 0
	}
	depth, err := strconv.Atoi(raw)
	if err != nil {
		w.Add("[skill-bus] WARNING: invalid _SB_CHAIN_DEPTH=%q, defaulting to 0", raw)
		return 0
	}
	return depth
}
