package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joeymnguyen/skill-bus/config"
)

var insertsScope string

var insertsCmd = &cobra.Command{
	Use:   "inserts",
	Short: "List inserts for a scope",
	Run: func(cmd *cobra.Command, args []string) {
		global, project := scopedConfigs(cwdFlag)
		cfg := project
		if insertsScope == "global" {
			cfg = global
		}

		if cfg == nil {
			fmt.Printf("No %s config found.\n", insertsScope)
			return
		}
		if len(cfg.Inserts) == 0 {
			fmt.Printf("No inserts in %s config.\n", insertsScope)
			return
		}

		fmt.Printf("Available inserts (%s):\n", insertsScope)
		fmt.Println("  1. [Create new insert]")
		for i, name := range sortedKeys(cfg.Inserts) {
			ins := cfg.Inserts[name]
			preview := previewText(ins.Text)
			condStr := "\n     (no conditions)"
			if len(ins.Conditions) > 0 {
				condStr = fmt.Sprintf("\n     conditions: %s", formatConditions(ins.Conditions))
			}
			fmt.Printf("  %d. %s -- %q%s\n", i+2, name, preview, condStr)
		}
	},
}

func init() {
	insertsCmd.Flags().StringVar(&insertsScope, "scope", "project", "Config scope to list: global or project.")
	rootCmd.AddCommand(insertsCmd)
}

func formatConditions(conditions []config.Condition) string {
	data, err := json.Marshal(conditions)
	if err != nil {
		return "<unformattable>"
	}
	return string(data)
}
