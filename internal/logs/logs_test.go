package logs

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevel(t *testing.T) {
	var buf bytes.Buffer
	level := new(slog.LevelVar)
	logger, closer, err := New(Options{Writer: &buf, Level: level})
	require.NoError(t, err)
	defer closer()

	logger.Debug("hidden")
	logger.Info("shown", "rule", "pair")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "msg=shown rule=pair")

	level.Set(slog.LevelDebug)
	logger.Debug("now visible")
	assert.Contains(t, buf.String(), `msg="now visible"`)
}

func TestJSONFile(t *testing.T) {
	var buf bytes.Buffer
	path := filepath.Join(t.TempDir(), "log.json")
	logger, closer, err := New(Options{Writer: &buf, JSONFile: path})
	require.NoError(t, err)

	logger.Warn("compiled", "rules", 3)
	require.NoError(t, closer())
	assert.Contains(t, buf.String(), "msg=compiled rules=3")

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	var record map[string]any
	require.NoError(t, json.Unmarshal(content, &record))
	assert.Equal(t, "compiled", record["msg"])
	assert.Equal(t, "WARN", record["level"])
	assert.Equal(t, float64(3), record["rules"])

	_, _, err = New(Options{JSONFile: filepath.Join(t.TempDir(), "missing", "log.json")})
	assert.Error(t, err)
}

func TestJournalKey(t *testing.T) {
	assert.Equal(t, "RULE_NAME", toJournalKey("rule.name"))
	assert.Equal(t, "LINE2", toJournalKey("line2"))
}
