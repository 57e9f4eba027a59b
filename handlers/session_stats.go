package handlers

import (
	"fmt"
	"sort"
	"strings"

	"github.com/joeymnguyen/skill-bus/config"
	"github.com/joeymnguyen/skill-bus/telemetry"
)

func init() {
	Register("session-stats", sessionStats)
}

// sessionStats summarizes the telemetry log into a short report suitable
// for injection into a completion-timed insert: skills intercepted,
// inserts injected, condition skips grouped by insert, and skills that
// ran three or more times with no matching subscription ("gaps").
func sessionStats(cwd string, settings config.Settings) (string, error) {
	events, err := telemetry.ReadEvents(cwd, settings, "", 0)
	if err != nil || len(events) == 0 {
		return "", nil
	}

	matchedSkills := make(map[string]bool)
	matchCount := 0
	skipsByInsert := make(map[string]int)
	noMatchBySkill := make(map[string]int)

	for _, e := range events {
		switch e.Kind {
		case "match":
			matchCount++
			matchedSkills[e.Skill] = true
		case "condition_skip":
			skipsByInsert[e.Insert]++
		case "no_match":
			noMatchBySkill[e.Skill]++
		}
	}

	var lines []string
	lines = append(lines, "[skill-bus session summary]")
	lines = append(lines, fmt.Sprintf("Skills intercepted: %d | Inserts injected: %d", len(matchedSkills), matchCount))

	if len(skipsByInsert) > 0 {
		inserts := make([]string, 0, len(skipsByInsert))
		for ins := range skipsByInsert {
			inserts = append(inserts, ins)
		}
		sort.Strings(inserts)
		parts := make([]string, 0, len(inserts))
		for _, ins := range inserts {
			parts = append(parts, fmt.Sprintf("%s (%dx)", ins, skipsByInsert[ins]))
		}
		lines = append(lines, "Condition skips: "+strings.Join(parts, ", "))
	}

	type gap struct {
		skill string
		count int
	}
	var gaps []gap
	for skill, count := range noMatchBySkill {
		if count >= 3 {
			gaps = append(gaps, gap{skill, count})
		}
	}
	if len(gaps) > 0 {
		sort.Slice(gaps, func(i, j int) bool { return gaps[i].count > gaps[j].count })
		lines = append(lines, "Gaps:")
		for _, g := range gaps {
			lines = append(lines, fmt.Sprintf("  %s ran %dx with no subscriptions", g.skill, g.count))
			lines = append(lines, fmt.Sprintf("  Suggestion: add a subscription for %s", g.skill))
		}
	}

	return strings.Join(lines, "\n"), nil
}
