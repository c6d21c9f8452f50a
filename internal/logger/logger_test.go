package logger

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_InvalidLevel(t *testing.T) {
	log, err := New(Options{Level: "loud"})

	assert.Error(t, err)
	assert.Nil(t, log)
}

func TestNew_WritesJSONFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "phi-guard.log")

	log, err := New(Options{Level: "debug", File: path})
	require.NoError(t, err)

	log.Info("audit finished")
	Trace(log, "Scan", time.Now())
	_ = log.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"message":"audit finished"`)
	assert.Contains(t, string(data), `"app":"phi-guard"`)
	assert.Contains(t, string(data), `"step":"Scan"`)
}
