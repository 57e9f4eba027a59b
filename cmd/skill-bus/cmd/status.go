package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/joeymnguyen/skill-bus/config"
	"github.com/joeymnguyen/skill-bus/warnings"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Quick status one-liner",
	Run: func(cmd *cobra.Command, args []string) {
		global, project := scopedConfigs(cwdFlag)
		w := warnings.New()
		settings := config.MergeSettings(global, project, w)
		inserts := config.MergeInserts(global, project, w)
		subs := config.MergeSubscriptions(global, project, settings, w)
		subs = config.FilterOldFormat(subs, w)

		status := "enabled"
		if !settings.Enabled {
			status = "PAUSED"
		}

		var globalCount, projectCount int
		for _, sub := range subs {
			if deriveScope(sub) == "global" {
				globalCount++
			} else {
				projectCount++
			}
		}

		monitor := "off"
		if settings.MonitorSlashCommands {
			monitor = "on"
		}

		telem := "off"
		if settings.Telemetry {
			telem = "on"
			if settings.ObserveUnmatched {
				telem += " (+unmatched)"
			}
		}

		parts := []string{
			fmt.Sprintf("Skill Bus: %s", status),
			fmt.Sprintf("%d subs (%d global, %d project)", len(subs), globalCount, projectCount),
			fmt.Sprintf("%d inserts", len(inserts)),
			fmt.Sprintf("prompt-monitor: %s", monitor),
			fmt.Sprintf("telemetry: %s", telem),
		}
		fmt.Println(strings.Join(parts, " | "))
		for _, msg := range w.All() {
			fmt.Println(msg)
		}
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
