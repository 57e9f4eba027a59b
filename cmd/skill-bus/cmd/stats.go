package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/joeymnguyen/skill-bus/config"
	"github.com/joeymnguyen/skill-bus/telemetry"
	"github.com/joeymnguyen/skill-bus/warnings"
)

var (
	statsSession string
	statsDays    int
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Telemetry stats summary",
	Run: func(cmd *cobra.Command, args []string) {
		global, project := scopedConfigs(cwdFlag)
		w := warnings.New()
		settings := config.MergeSettings(global, project, w)

		events, err := telemetry.ReadEvents(cwdFlag, settings, statsSession, statsDays)
		if err != nil || len(events) == 0 {
			fmt.Println("No telemetry data found.")
			if !settings.Telemetry {
				fmt.Println(`  Telemetry is disabled. Enable with: "telemetry": true in settings.`)
			}
			return
		}

		var matches, skips, noMatch []telemetry.Event
		for _, e := range events {
			switch e.Kind {
			case "match":
				matches = append(matches, e)
			case "condition_skip":
				skips = append(skips, e)
			case "no_match":
				noMatch = append(noMatch, e)
			}
		}

		var lines []string
		lines = append(lines, "Skill Bus Stats", strings.Repeat("=", 40))
		if statsDays > 0 {
			lines = append(lines, fmt.Sprintf("(last %d days)", statsDays))
		}
		lines = append(lines, "")

		matchedSkills := make(map[string]bool)
		for _, m := range matches {
			matchedSkills[m.Skill] = true
		}
		lines = append(lines, fmt.Sprintf("Skills intercepted: %d", len(matchedSkills)))
		lines = append(lines, fmt.Sprintf("Inserts injected: %d", len(matches)))
		lines = append(lines, "")

		if len(matches) > 0 {
			lines = append(lines, "Top skills:")
			bySkill := make(map[string][]string)
			for _, m := range matches {
				bySkill[m.Skill] = append(bySkill[m.Skill], m.Insert)
			}
			type row struct {
				skill string
				total int
				line  string
			}
			var rows []row
			for skill, inserts := range bySkill {
				counts := make(map[string]int)
				for _, ins := range inserts {
					counts[ins]++
				}
				var parts []string
				for _, ins := range sortedStringKeys(counts) {
					parts = append(parts, fmt.Sprintf("%s %d/%d", ins, counts[ins], len(inserts)))
				}
				rows = append(rows, row{skill, len(inserts), fmt.Sprintf("  %s — %dx (%s)", skill, len(inserts), strings.Join(parts, ", "))})
			}
			sort.Slice(rows, func(i, j int) bool { return rows[i].total > rows[j].total })
			for _, r := range rows {
				lines = append(lines, r.line)
			}
			lines = append(lines, "")
		}

		lines = append(lines, fmt.Sprintf("Condition skips: %d", len(skips)))
		if len(skips) > 0 {
			type key struct{ insert, skill string }
			counts := make(map[key]int)
			var order []key
			for _, s := range skips {
				k := key{s.Insert, s.Skill}
				if _, seen := counts[k]; !seen {
					order = append(order, k)
				}
				counts[k]++
			}
			for _, k := range order {
				lines = append(lines, fmt.Sprintf("  %s on %s (%dx)", k.insert, k.skill, counts[k]))
			}
		}
		lines = append(lines, "")

		lines = append(lines, fmt.Sprintf("No coverage: %d", len(noMatch)))
		noMatchBySkill := make(map[string]int)
		for _, n := range noMatch {
			noMatchBySkill[n.Skill]++
		}
		if len(noMatch) > 0 {
			for _, skill := range sortedByCountDesc(noMatchBySkill) {
				lines = append(lines, fmt.Sprintf("  %s — %dx", skill, noMatchBySkill[skill]))
			}
		}
		lines = append(lines, "")

		sessionIDs := make(map[string]bool)
		for _, e := range events {
			sessionIDs[e.SessionID] = true
		}
		lines = append(lines, fmt.Sprintf("Sessions: %d", len(sessionIDs)))

		var suggestions []string
		for _, skill := range sortedByCountDesc(noMatchBySkill) {
			if count := noMatchBySkill[skill]; count >= 3 {
				suggestions = append(suggestions, fmt.Sprintf("  %s ran %dx with no subscription. Consider: /skill-bus:add-sub", skill, count))
			}
		}
		skipByInsert := make(map[string]int)
		for _, s := range skips {
			skipByInsert[s.Insert]++
		}
		for _, ins := range sortedByCountDesc(skipByInsert) {
			if count := skipByInsert[ins]; count >= 3 {
				suggestions = append(suggestions, fmt.Sprintf("  %s skipped %dx due to conditions. Run: skill-bus simulate <skill> --cwd %s", ins, count, cwdFlag))
			}
		}
		if len(suggestions) > 0 {
			lines = append(lines, "", "Suggestions:")
			lines = append(lines, suggestions...)
		}

		fmt.Println(strings.Join(lines, "\n"))
	},
}

func init() {
	statsCmd.Flags().StringVar(&statsSession, "session", "", "Restrict to one session ID.")
	statsCmd.Flags().IntVar(&statsDays, "days", 0, "Restrict to the last N days (0 = no limit).")
	rootCmd.AddCommand(statsCmd)
}

func sortedStringKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedByCountDesc(m map[string]int) []string {
	keys := sortedStringKeys(m)
	sort.SliceStable(keys, func(i, j int) bool { return m[keys[i]] > m[keys[j]] })
	return keys
}
