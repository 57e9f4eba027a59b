// Package cmd implements the skill-bus operator CLI: inspection and
// editing commands layered over the same config package the dispatcher
// uses.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cwdFlag string

var rootCmd = &cobra.Command{
	Use:   "skill-bus",
	Short: "Inspect and edit skill-bus subscriptions, inserts, and telemetry",
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cwd, _ := os.Getwd()
	rootCmd.PersistentFlags().StringVar(&cwdFlag, "cwd", cwd, "Project directory to resolve project config against.")

	viper.BindEnv("global_config", "SKILL_BUS_GLOBAL_CONFIG")
	viper.SetEnvPrefix("skill_bus")
	viper.AutomaticEnv()
}
