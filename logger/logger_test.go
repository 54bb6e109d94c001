package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProductionWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, false, "")
	log.Debug("hidden")
	log.Info("build finished", "routes", 12)

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "build finished", rec["msg"])
	assert.Equal(t, float64(12), rec["routes"])
	assert.NotContains(t, buf.String(), "hidden")
}

func TestNewDevelopmentWritesDebugText(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, true, "").Debug("resolving", "slug", "about")
	assert.Contains(t, buf.String(), "level=DEBUG")
	assert.Contains(t, buf.String(), "slug=about")
}
