package cmd

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/spf13/cobra"
)

var skillsCmd = &cobra.Command{
	Use:   "skills",
	Short: "Enumerate available skills and commands",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("Available skills and commands:")
		fmt.Println()

		home, _ := os.UserHomeDir()

		if userSkills := scanSkillsDir(filepath.Join(home, ".claude", "skills")); len(userSkills) > 0 {
			fmt.Println("  User skills (global):")
			fmt.Printf("    %s\n\n", strings.Join(userSkills, ", "))
		}
		if userCmds := scanCommandsDir(filepath.Join(home, ".claude", "commands")); len(userCmds) > 0 {
			fmt.Println("  User commands (global):")
			fmt.Printf("    %s\n\n", strings.Join(userCmds, ", "))
		}
		if projSkills := scanSkillsDir(filepath.Join(cwdFlag, ".claude", "skills")); len(projSkills) > 0 {
			fmt.Println("  Project skills:")
			fmt.Printf("    %s\n\n", strings.Join(projSkills, ", "))
		}
		if projCmds := scanCommandsDir(filepath.Join(cwdFlag, ".claude", "commands")); len(projCmds) > 0 {
			fmt.Println("  Project commands:")
			fmt.Printf("    %s\n\n", strings.Join(projCmds, ", "))
		}

		fmt.Println(`  Or enter a glob pattern (e.g. "superpowers:*")`)
	},
}

func init() {
	rootCmd.AddCommand(skillsCmd)
}

var frontmatterName = regexp.MustCompile(`^name:\s*(.+)$`)

// scanSkillsDir lists skill names from a directory of SKILL.md-bearing
// subdirectories, reading each file's YAML frontmatter "name" field
// without a YAML dependency.
func scanSkillsDir(dir string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	var names []string
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		skillMd := filepath.Join(dir, entry.Name(), "SKILL.md")
		if name := parseFrontmatterName(skillMd); name != "" {
			names = append(names, name)
		} else if _, err := os.Stat(skillMd); err == nil {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)
	return names
}

func scanCommandsDir(dir string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
			continue
		}
		names = append(names, strings.TrimSuffix(entry.Name(), ".md"))
	}
	sort.Strings(names)
	return names
}

func parseFrontmatterName(path string) string {
	f, err := os.Open(path)
	if err != nil {
		return ""
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	if !scanner.Scan() || strings.TrimSpace(scanner.Text()) != "---" {
		return ""
	}
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "---" {
			break
		}
		if m := frontmatterName.FindStringSubmatch(line); m != nil {
			return strings.Trim(strings.TrimSpace(m[1]), `"'`)
		}
	}
	return ""
}
