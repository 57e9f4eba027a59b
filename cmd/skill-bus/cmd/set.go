package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/joeymnguyen/skill-bus/config"
	"github.com/joeymnguyen/skill-bus/warnings"
)

var setScope string

var validSettings = map[string]string{
	"enabled":              "bool",
	"maxMatchesPerSkill":   "int",
	"showConsoleEcho":      "bool",
	"disableGlobal":        "bool",
	"monitorSlashCommands": "bool",
	"showConditionSkips":   "bool",
	"telemetry":            "bool",
	"observeUnmatched":     "bool",
	"completionHooks":      "bool",
	"telemetryPath":        "string",
	"maxLogSizeKB":         "int",
}

var setCmd = &cobra.Command{
	Use:   "set KEY VALUE",
	Short: "Set a config setting value",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		key, rawValue := args[0], args[1]

		kind, ok := validSettings[key]
		if !ok {
			fmt.Fprintf(os.Stderr, "Unknown setting: %q\n", key)
			fmt.Fprintf(os.Stderr, "Valid settings: %s\n", validSettingNames())
			os.Exit(1)
		}

		value, err := parseSettingValue(kind, rawValue)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		path := resolveConfigPath(setScope)

		w := warnings.New()
		cfg, _ := config.Load(path, w)
		if cfg == nil {
			if msg, found := w.Find("invalid JSON"); found {
				fmt.Fprintln(os.Stderr, msg)
				fmt.Fprintln(os.Stderr, "Fix the JSON syntax before modifying config.")
				os.Exit(1)
			}
			cfg = &config.FileConfig{Inserts: map[string]config.Insert{}}
		}
		if cfg.Settings == nil {
			cfg.Settings = map[string]json.RawMessage{}
		}

		encoded, err := json.Marshal(value)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		cfg.Settings[key] = encoded

		if parent := filepath.Dir(path); parent != "" {
			os.MkdirAll(parent, 0o755)
		}
		data, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		valueJSON, _ := json.Marshal(value)
		fmt.Printf("Set %s = %s in %s config\n", key, valueJSON, setScope)

		if key == "observeUnmatched" {
			if b, ok := value.(bool); ok && b {
				if _, telemetryOn := cfg.Settings["telemetry"]; !telemetryOn {
					fmt.Fprintln(os.Stderr, "  Note: observeUnmatched requires telemetry to be enabled")
				}
			}
		}
	},
}

func init() {
	setCmd.Flags().StringVar(&setScope, "scope", "project", "Config scope to write: global or project.")
	rootCmd.AddCommand(setCmd)
}

func resolveConfigPath(scope string) string {
	if scope == "global" {
		if path := viper.GetString("global_config"); path != "" {
			return expandHomePath(path)
		}
		return expandHomePath(config.DefaultGlobalConfigPath)
	}
	return config.ProjectConfigPath(cwdFlag)
}

func expandHomePath(path string) string {
	if path == "~" {
		home, _ := os.UserHomeDir()
		return home
	}
	if len(path) >= 2 && path[:2] == "~/" {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}

func parseSettingValue(kind, raw string) (any, error) {
	switch kind {
	case "bool":
		switch raw {
		case "true":
			return true, nil
		case "false":
			return false, nil
		}
		return nil, fmt.Errorf("value must be true or false, got %q", raw)
	case "int":
		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("value must be an integer, got %q", raw)
		}
		return n, nil
	default:
		return raw, nil
	}
}

func validSettingNames() string {
	names := make([]string, 0, len(validSettings))
	for k := range validSettings {
		names = append(names, k)
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}
