package cli

import (
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScore_Text(t *testing.T) {
	out, err := execute(t, "", "score", "4", "6", "W", "1")
	require.NoError(t, err)
	assert.Equal(t, "11/1 (0.4 ov)  RR 16.50  last: 1 Run  wkts left: 9\n", out)
}

func TestScore_Steps(t *testing.T) {
	out, err := execute(t, "", "score", "RUN 4", "SIX", "--steps")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "0/0 (0.0 ov)  RR 0.00  wkts left: 10", lines[0])
	assert.Equal(t, "4/0 (0.1 ov)  RR 24.00  last: FOUR!  wkts left: 10", lines[1])
	assert.Equal(t, "10/0 (0.2 ov)  RR 30.00  last: SIX!!!  wkts left: 10", lines[2])
}

func TestScore_AllOutIgnoresLaterBalls(t *testing.T) {
	args := []string{"score"}
	for i := 0; i < 10; i++ {
		args = append(args, "W")
	}
	args = append(args, "4")

	out, err := execute(t, "", args...)
	require.NoError(t, err)
	assert.Equal(t, "0/10 (1.4 ov)  RR 0.00  last: OUT!  wkts left: 0  [innings over]\n", out)
}

func TestScore_JSON(t *testing.T) {
	out, err := execute(t, "", "score", "4", "6", "W", "1", "--format", "json")
	require.NoError(t, err)

	var resp struct {
		Status string      `json:"status"`
		Data   OutcomeView `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "RUN 1", resp.Data.Command)
	assert.Equal(t, int64(5), resp.Data.Seq)
	assert.Equal(t, 11, resp.Data.Snapshot.Runs)
	assert.Equal(t, "0.4", resp.Data.Snapshot.Overs)
}

func TestScore_RejectsInvalidRun(t *testing.T) {
	out, err := execute(t, "", "score", "4", "RUN 5")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, "Error [INVALID_RUN]")
}

func TestScore_JournalAndReplay(t *testing.T) {
	db := filepath.Join(t.TempDir(), "crease.db")

	_, err := execute(t, "", "score", "4", "6", "W", "1", "--db", db)
	require.NoError(t, err)
	_, err = execute(t, "", "score", "STOP", "--db", db)
	require.NoError(t, err)

	out, err := execute(t, "", "replay", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "Replay Summary: 2 innings")
	assert.Contains(t, out, "✓ All innings verified deterministic")
	assert.Contains(t, out, "(abandoned)")
	assert.Contains(t, out, "(stopped)")
}
