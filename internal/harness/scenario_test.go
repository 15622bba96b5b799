package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadScenario_ValidFile(t *testing.T) {
	s, err := LoadScenario("testdata/scenarios/scenario_a.yaml")
	require.NoError(t, err)

	assert.Equal(t, "scenario_a", s.Name)
	assert.Equal(t, "a", s.InningsID)
	assert.Len(t, s.Commands, 7)
	assert.Equal(t, "START", s.Commands[0])
	require.Len(t, s.Assertions, 4)
	assert.Equal(t, AssertTraceContains, s.Assertions[0].Type)
	assert.Equal(t, 11, s.Assertions[0].State["runs"])
}

func TestLoadScenario_MissingFile(t *testing.T) {
	_, err := LoadScenario(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read scenario file")
}

func TestParseScenario_AppliedFilter(t *testing.T) {
	s, err := ParseScenario([]byte(`
name: x
description: d
commands: [START, RUN 4]
assertions:
  - type: trace_count
    command: RUN 4
    applied: false
    count: 0
`))
	require.NoError(t, err)
	require.NotNil(t, s.Assertions[0].Applied)
	assert.False(t, *s.Assertions[0].Applied)
}

func TestParseScenario_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{
			name:    "unknown field",
			yaml:    "name: x\ndescription: d\ncommands: [START]\nasertions: []\n",
			wantErr: "failed to parse YAML",
		},
		{
			name:    "missing name",
			yaml:    "description: d\ncommands: [START]\nassertions: [{type: final_state, expect: {runs: 0}}]\n",
			wantErr: "name is required",
		},
		{
			name:    "missing description",
			yaml:    "name: x\ncommands: [START]\nassertions: [{type: final_state, expect: {runs: 0}}]\n",
			wantErr: "description is required",
		},
		{
			name:    "no commands",
			yaml:    "name: x\ndescription: d\nassertions: [{type: final_state, expect: {runs: 0}}]\n",
			wantErr: "commands list is required",
		},
		{
			name:    "blank command",
			yaml:    "name: x\ndescription: d\ncommands: [START, \" \"]\nassertions: [{type: final_state, expect: {runs: 0}}]\n",
			wantErr: "commands[1]: command is empty",
		},
		{
			name:    "no assertions",
			yaml:    "name: x\ndescription: d\ncommands: [START]\n",
			wantErr: "assertions list is required",
		},
		{
			name:    "unknown assertion type",
			yaml:    "name: x\ndescription: d\ncommands: [START]\nassertions: [{type: vibes}]\n",
			wantErr: `unknown assertion type "vibes"`,
		},
		{
			name:    "final_state without expect",
			yaml:    "name: x\ndescription: d\ncommands: [START]\nassertions: [{type: final_state}]\n",
			wantErr: "expect is required for final_state",
		},
		{
			name:    "trace_order without commands",
			yaml:    "name: x\ndescription: d\ncommands: [START]\nassertions: [{type: trace_order}]\n",
			wantErr: "commands list is required for trace_order",
		},
		{
			name:    "trace_count negative",
			yaml:    "name: x\ndescription: d\ncommands: [START]\nassertions: [{type: trace_count, command: START, count: -1}]\n",
			wantErr: "count must be non-negative",
		},
		{
			name:    "journal_state without table",
			yaml:    "name: x\ndescription: d\ncommands: [START]\nassertions: [{type: journal_state, expect: {id: x}}]\n",
			wantErr: "table is required for journal_state",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseScenario([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestFindScenarios(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.yaml", "a.yml", "notes.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.yaml"), 0o755))

	got, err := FindScenarios(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "a.yml"), filepath.Join(dir, "b.yaml")}, got)

	single := filepath.Join(dir, "notes.txt")
	got, err = FindScenarios(single)
	require.NoError(t, err)
	assert.Equal(t, []string{single}, got)
}

func TestFindScenarios_Missing(t *testing.T) {
	_, err := FindScenarios(filepath.Join(t.TempDir(), "gone"))
	var nf *ScenarioNotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Contains(t, nf.Error(), "does not exist")
}
