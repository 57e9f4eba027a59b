package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joeymnguyen/skill-bus/condition"
	"github.com/joeymnguyen/skill-bus/config"
	"github.com/joeymnguyen/skill-bus/match"
	"github.com/joeymnguyen/skill-bus/warnings"
)

var simulateTiming string

var simulateCmd = &cobra.Command{
	Use:   "simulate SKILL",
	Short: "Simulate matching with per-condition pass/fail",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		skillName := args[0]

		global, project := scopedConfigs(cwdFlag)
		w := warnings.New()
		settings := config.MergeSettings(global, project, w)
		inserts := config.MergeInserts(global, project, w)
		subs := config.MergeSubscriptions(global, project, settings, w)
		subs = config.FilterOldFormat(subs, w)

		fmt.Printf("Simulating: %s (%s) in %s\n\n", skillName, simulateTiming, cwdFlag)

		matchedAny := false
		for _, sub := range subs {
			if sub.WhenOrDefault() != simulateTiming {
				continue
			}
			if !match.Glob(sub.On, skillName) {
				continue
			}
			matchedAny = true

			fmt.Printf("  %s -> %s [%s]:\n", sub.Insert, sub.On, simulateTiming)

			eval := condition.NewEvaluator(cwdFlag, warnings.New())
			allPass := true

			insDef, hasInsert := inserts[sub.Insert]
			optOut := sub.InheritConditions != nil && !*sub.InheritConditions

			if hasInsert && len(insDef.Conditions) > 0 && !optOut {
				for _, c := range insDef.Conditions {
					allPass = simulateCondition(eval, c, "insert")
					if !allPass {
						fmt.Println("    (short-circuit: insert condition failed, sub conditions not evaluated)")
						break
					}
				}
			} else if optOut && hasInsert && len(insDef.Conditions) > 0 {
				fmt.Println("    insert: (opted out with inheritConditions: false)")
			}

			if allPass && len(sub.Conditions) > 0 {
				for _, c := range sub.Conditions {
					allPass = simulateCondition(eval, c, "sub")
					if !allPass {
						fmt.Println("    (short-circuit: sub condition failed, remaining not evaluated)")
						break
					}
				}
			}

			if allPass {
				text := ""
				if hasInsert {
					text = insDef.Text
				}
				fmt.Printf("    -> fires (~%d tokens)\n", len(text)/4)
			} else {
				fmt.Println("    -> skipped (conditions not met)")
			}
			fmt.Println()
		}

		if !matchedAny {
			fmt.Printf("  No subscriptions match %q [%s]\n", skillName, simulateTiming)
		}
		for _, msg := range w.All() {
			fmt.Println(msg)
		}
	},
}

func init() {
	simulateCmd.Flags().StringVar(&simulateTiming, "timing", "pre", "Lifecycle point to simulate: pre, post, or complete.")
	rootCmd.AddCommand(simulateCmd)
}

// simulateCondition evaluates c, printing its pass/fail mark and any
// warnings raised along the way, and returns whether it passed.
func simulateCondition(eval *condition.Evaluator, c config.Condition, origin string) bool {
	before := eval.Warn.Len()
	result := eval.Evaluate(c)
	for _, msg := range eval.Warn.All()[before:] {
		fmt.Printf("    WARNING: %s\n", msg)
	}
	mark := "✗"
	if result {
		mark = "✓"
	}
	fmt.Printf("    %s: %s %s%s\n", origin, formatCondition(c), mark, liveValue(c, eval))
	return result
}

func formatCondition(c config.Condition) string {
	data, err := json.Marshal(c)
	if err != nil {
		return "<unformattable condition>"
	}
	return string(data)
}

// liveValue annotates gitBranch conditions with the branch actually
// observed, mirroring condition_live_value in the original tool.
func liveValue(c config.Condition, eval *condition.Evaluator) string {
	if len(c) != 1 {
		return ""
	}
	for kind, arg := range c {
		switch kind {
		case "gitBranch":
			branch, ok := eval.CurrentGitBranch()
			if !ok {
				return " (not in git repo)"
			}
			return fmt.Sprintf(" (current: %s)", branch)
		case "not":
			var inner config.Condition
			if err := json.Unmarshal(arg, &inner); err == nil {
				return liveValue(inner, eval)
			}
		}
	}
	return ""
}
