package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFrontmatterName_ReadsNameField(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "SKILL.md")
	require.NoError(t, os.WriteFile(path, []byte("---\nname: deploy-helper\ndescription: x\n---\nbody\n"), 0o644))

	assert.Equal(t, "deploy-helper", parseFrontmatterName(path))
}

func TestParseFrontmatterName_QuotedValueIsUnquoted(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "SKILL.md")
	require.NoError(t, os.WriteFile(path, []byte("---\nname: \"deploy helper\"\n---\n"), 0o644))

	assert.Equal(t, "deploy helper", parseFrontmatterName(path))
}

func TestParseFrontmatterName_NoFrontmatterYieldsEmpty(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "SKILL.md")
	require.NoError(t, os.WriteFile(path, []byte("just a plain markdown file\n"), 0o644))

	assert.Equal(t, "", parseFrontmatterName(path))
}

func TestParseFrontmatterName_MissingFileYieldsEmpty(t *testing.T) {
	assert.Equal(t, "", parseFrontmatterName(filepath.Join(t.TempDir(), "nope.md")))
}

func TestScanSkillsDir_FallsBackToDirNameWithoutFrontmatterName(t *testing.T) {
	dir := t.TempDir()
	skillDir := filepath.Join(dir, "my-skill")
	require.NoError(t, os.MkdirAll(skillDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(skillDir, "SKILL.md"), []byte("no frontmatter here"), 0o644))

	names := scanSkillsDir(dir)

	assert.Equal(t, []string{"my-skill"}, names)
}

func TestScanSkillsDir_MissingDirYieldsNil(t *testing.T) {
	assert.Nil(t, scanSkillsDir(filepath.Join(t.TempDir(), "nope")))
}

func TestScanCommandsDir_ListsMarkdownFilesSorted(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "zeta.md"), []byte(""), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "alpha.md"), []byte(""), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte(""), 0o644))

	names := scanCommandsDir(dir)

	assert.Equal(t, []string{"alpha", "zeta"}, names)
}
