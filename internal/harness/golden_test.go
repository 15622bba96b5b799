package harness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGolden_ScenarioA(t *testing.T) {
	s, err := LoadScenario("testdata/scenarios/scenario_a.yaml")
	require.NoError(t, err)

	res, err := RunWithGolden(t, s)
	require.NoError(t, err)
	assert.True(t, res.Pass, "errors: %v", res.Errors)
}

func TestMarshalTrace_IncludesRejections(t *testing.T) {
	res := NewResult("r")
	res.AddTrace(TraceEvent{Command: "RUN 5", Error: "INVALID_RUN"})

	got, err := MarshalTrace("r", res)
	require.NoError(t, err)
	assert.Contains(t, string(got), `"error":"INVALID_RUN"`)
	assert.Contains(t, string(got), `"applied":false`)
	assert.Contains(t, string(got), `"seq":0`)
}
