package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/joeymnguyen/skill-bus/config"
	"github.com/joeymnguyen/skill-bus/warnings"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Full subscription listing",
	Run: func(cmd *cobra.Command, args []string) {
		global, project := scopedConfigs(cwdFlag)
		w := warnings.New()
		settings := config.MergeSettings(global, project, w)
		inserts := config.MergeInserts(global, project, w)
		subs := config.MergeSubscriptions(global, project, settings, w)
		subs = config.FilterOldFormat(subs, w)

		fmt.Println(formatSettingsLine(settings))
		fmt.Println()

		if len(subs) == 0 {
			fmt.Println("  (no active subscriptions)")
		}
		for _, sub := range subs {
			insDef, ok := inserts[sub.Insert]
			preview := "<dangling reference>"
			if ok {
				preview = previewText(insDef.Text)
			}
			fmt.Printf("  [%s] %s -> %s [%s] -- %q\n", deriveScope(sub), sub.Insert, sub.On, sub.WhenOrDefault(), preview)
		}

		for _, msg := range w.All() {
			fmt.Println(msg)
		}
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func formatSettingsLine(s config.Settings) string {
	status := "enabled"
	if !s.Enabled {
		status = "PAUSED"
	}
	return fmt.Sprintf("Settings: %s | maxMatchesPerSkill=%d | showConsoleEcho=%t | monitorSlashCommands=%t | telemetry=%t",
		status, s.MaxMatchesPerSkill, s.ShowConsoleEcho, s.MonitorSlashCommands, s.Telemetry)
}

func previewText(text string) string {
	text = strings.ReplaceAll(text, "\n", " ")
	if len(text) > 60 {
		return text[:60] + "..."
	}
	return text
}
