package cli

import (
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func onlyInningsID(t *testing.T, db string) string {
	t.Helper()
	out, err := execute(t, "", "trace", "--db", db, "--format", "json")
	require.NoError(t, err)

	var resp struct {
		Data []InningsSummary `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	require.Len(t, resp.Data, 1)
	return resp.Data[0].InningsID
}

func TestTrace_Innings(t *testing.T) {
	db := filepath.Join(t.TempDir(), "crease.db")
	scoreInto(t, db, "4", "W", "2")
	id := onlyInningsID(t, db)

	out, err := execute(t, "", "trace", "--db", db, "--innings", id)
	require.NoError(t, err)
	assert.Contains(t, out, "Innings: "+id+" (started seq 1)")
	assert.Contains(t, out, "[2] RUN 4")
	assert.Contains(t, out, "[3] WICKET")
	assert.Contains(t, out, "Ended at seq 5: abandoned")

	lines := strings.Split(out, "\n")
	var ballLines []string
	for _, l := range lines {
		if strings.HasPrefix(l, "  [") {
			ballLines = append(ballLines, l)
		}
	}
	require.Len(t, ballLines, 3)
	assert.Contains(t, ballLines[2], "6/1")
	assert.Contains(t, ballLines[2], "0.3 ov")
}

func TestTrace_JSON(t *testing.T) {
	db := filepath.Join(t.TempDir(), "crease.db")
	scoreInto(t, db, "SIX", "STOP")
	id := onlyInningsID(t, db)

	out, err := execute(t, "", "trace", "--db", db, "--innings", id, "--format", "json")
	require.NoError(t, err)

	var resp struct {
		Data TraceResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "stopped", resp.Data.EndReason)
	assert.Equal(t, int64(3), resp.Data.EndedSeq)
	require.Len(t, resp.Data.Balls, 1)
	assert.Equal(t, "SIX!!!", resp.Data.Balls[0].Label)
	assert.Equal(t, "6/0", resp.Data.Balls[0].Score)
	assert.Len(t, resp.Data.Balls[0].StateHash, 64)
}

func TestTrace_UnknownInnings(t *testing.T) {
	db := filepath.Join(t.TempDir(), "crease.db")
	scoreInto(t, db, "1")
	_, err := execute(t, "", "trace", "--db", db, "--innings", "nope")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "innings not found: nope")
}

func TestTrace_MissingJournal(t *testing.T) {
	db := filepath.Join(t.TempDir(), "typo.db")
	_, err := execute(t, "", "trace", "--db", db)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "journal not found")
	assert.NoFileExists(t, db)
}
