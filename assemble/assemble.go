// Package assemble implements the output assembler: insert dedup,
// static/dynamic text resolution, concatenation, event-name mapping,
// console-echo summaries, completion-trigger injection, and warning
// channelling.
package assemble

import (
	"fmt"
	"strings"

	"github.com/joeymnguyen/skill-bus/config"
	"github.com/joeymnguyen/skill-bus/handlers"
	"github.com/joeymnguyen/skill-bus/warnings"
)

// HookSpecificOutput is the hook-protocol payload carrying injected
// context for the matched lifecycle event.
type HookSpecificOutput struct {
	HookEventName     string `json:"hookEventName"`
	AdditionalContext string `json:"additionalContext"`
}

// Output is the single JSON document a dispatch emits on stdout.
type Output struct {
	HookSpecificOutput *HookSpecificOutput `json:"hookSpecificOutput,omitempty"`
	SystemMessage      string              `json:"systemMessage,omitempty"`
}

// Empty reports whether Output carries nothing worth printing.
func (o *Output) Empty() bool {
	return o.HookSpecificOutput == nil && o.SystemMessage == ""
}

// Request is the per-dispatch context the assembler needs beyond the
// matched subscriptions themselves.
type Request struct {
	Timing    string
	Source    string
	Cwd       string
	SkillName string
}

// Build materializes matched subscriptions into a single Output.
// completionInstruction is the fully-rendered trigger text (or "" when
// none applies); computing it is the dispatch orchestrator's
// responsibility since it depends on the full subscription list and
// the chain-depth env var.
func Build(req Request, matched []config.Subscription, inserts map[string]config.Insert, settings config.Settings, warn *warnings.Collector, completionInstruction string) *Output {
	var contextParts []string
	var subLabels []string
	seenInserts := make(map[string]bool, len(matched))

	for _, sub := range matched {
		if sub.Insert == "" {
			continue
		}
		if seenInserts[sub.Insert] {
			continue
		}
		seenInserts[sub.Insert] = true

		ins, ok := inserts[sub.Insert]
		if !ok {
			warn.Add("[skill-bus] WARNING: dangling insert reference %q — skipping", sub.Insert)
			continue
		}

		text := ins.Text
		if ins.Dynamic != "" {
			if fn, ok := handlers.Lookup(ins.Dynamic); ok {
				dynText, err := safeCall(fn, req.Cwd, settings)
				if err != nil {
					warn.Add("[skill-bus] WARNING: dynamic handler %q failed: %v", ins.Dynamic, err)
				} else if dynText != "" {
					text = dynText
				}
			} else {
				warn.Add("[skill-bus] WARNING: unknown dynamic handler %q, using static text", ins.Dynamic)
			}
		}

		if text == "" {
			continue
		}
		contextParts = append(contextParts, text)
		subLabels = append(subLabels, fmt.Sprintf("%s -> %s [%s]", sub.Insert, lastSegment(sub.On), sub.WhenOrDefault()))
	}

	out := &Output{}

	if len(contextParts) > 0 {
		out.HookSpecificOutput = &HookSpecificOutput{
			HookEventName:     eventNameFor(req.Source, req.Timing),
			AdditionalContext: strings.Join(contextParts, "\n\n"),
		}
		if note, ok := warn.Find("exceeded cap of"); ok {
			out.HookSpecificOutput.AdditionalContext += "\n\n[Note: " + note + "]"
		}
	}

	if completionInstruction != "" {
		if out.HookSpecificOutput != nil {
			out.HookSpecificOutput.AdditionalContext += completionInstruction
		} else {
			hookEvent := "PreToolUse"
			if req.Source == "prompt" {
				hookEvent = "UserPromptSubmit"
			}
			out.HookSpecificOutput = &HookSpecificOutput{
				HookEventName:     hookEvent,
				AdditionalContext: strings.TrimLeft(completionInstruction, "\n"),
			}
		}
	}

	messages := append([]string(nil), warn.All()...)
	if settings.ShowConsoleEcho && len(contextParts) > 0 {
		label := "[skill-bus]"
		if req.Source == "prompt" {
			label = "[skill-bus] prompt-monitor:"
		}
		messages = append(messages, fmt.Sprintf("%s %d sub(s) matched (%s)", label, len(subLabels), strings.Join(subLabels, ", ")))
	}
	if len(messages) > 0 {
		out.SystemMessage = strings.Join(messages, " | ")
	}

	return out
}

func safeCall(fn handlers.Handler, cwd string, settings config.Settings) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return fn(cwd, settings)
}

func eventNameFor(source, timing string) string {
	switch {
	case source == "prompt":
		return "UserPromptSubmit"
	case timing == "pre" || timing == "complete":
		return "PreToolUse"
	default:
		return "PostToolUse"
	}
}

func lastSegment(pattern string) string {
	if idx := strings.LastIndex(pattern, ":"); idx != -1 {
		return pattern[idx+1:]
	}
	if pattern == "" {
		return "?"
	}
	return pattern
}
