package cmd

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/joeymnguyen/skill-bus/condition"
	"github.com/joeymnguyen/skill-bus/config"
	"github.com/joeymnguyen/skill-bus/warnings"
)

func simCond(kind, value string) config.Condition {
	return config.Condition{kind: json.RawMessage(value)}
}

func TestFormatCondition_MarshalsToJSON(t *testing.T) {
	c := simCond("envSet", `"FOO"`)
	assert.JSONEq(t, `{"envSet":"FOO"}`, formatCondition(c))
}

func TestLiveValue_NonGitBranchConditionIsBlank(t *testing.T) {
	eval := condition.NewEvaluator(t.TempDir(), warnings.New())
	c := simCond("envSet", `"FOO"`)
	assert.Equal(t, "", liveValue(c, eval))
}

func TestLiveValue_GitBranchOutsideRepoAnnotatesAbsence(t *testing.T) {
	eval := condition.NewEvaluator(t.TempDir(), warnings.New())
	c := simCond("gitBranch", `"main"`)
	assert.Equal(t, " (not in git repo)", liveValue(c, eval))
}

func TestLiveValue_RecursesThroughNot(t *testing.T) {
	eval := condition.NewEvaluator(t.TempDir(), warnings.New())
	inner := simCond("gitBranch", `"main"`)
	innerData, _ := json.Marshal(inner)
	wrapped := config.Condition{"not": innerData}

	assert.Equal(t, " (not in git repo)", liveValue(wrapped, eval))
}

func TestSimulateCondition_ReportsPassFail(t *testing.T) {
	t.Setenv("SKILL_BUS_TEST_VAR", "1")
	eval := condition.NewEvaluator(t.TempDir(), warnings.New())

	assert.True(t, simulateCondition(eval, simCond("envSet", `"SKILL_BUS_TEST_VAR"`), "sub"))
	assert.False(t, simulateCondition(eval, simCond("envSet", `"SKILL_BUS_TEST_VAR_UNSET"`), "sub"))
}
