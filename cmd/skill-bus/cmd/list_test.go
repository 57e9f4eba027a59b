package cmd

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/joeymnguyen/skill-bus/config"
)

func TestFormatSettingsLine_EnabledAndPaused(t *testing.T) {
	s := config.DefaultSettings()
	assert.Contains(t, formatSettingsLine(s), "Settings: enabled")

	s.Enabled = false
	assert.Contains(t, formatSettingsLine(s), "Settings: PAUSED")
}

func TestPreviewText_TruncatesAndCollapsesNewlines(t *testing.T) {
	assert.Equal(t, "short", previewText("short"))
	assert.Equal(t, "line one line two", previewText("line one\nline two"))

	long := strings.Repeat("a", 80)
	got := previewText(long)
	assert.Equal(t, strings.Repeat("a", 60)+"...", got)
}
