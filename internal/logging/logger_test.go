package logging

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/road-conditions/internal/config"
)

func TestNewProdIsJSON(t *testing.T) {
	var buf bytes.Buffer
	lg := New(&buf, &config.AppConfig{AppEnv: "prod", LogLevel: slog.LevelInfo}, "road-conditions")

	lg.Debug("hidden")
	lg.Info("sensor cache refreshed", "sensors", 3)

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "sensor cache refreshed", rec["msg"])
	assert.Equal(t, "road-conditions", rec["app"])
	assert.Equal(t, "prod", rec["env"])
	assert.Equal(t, float64(3), rec["sensors"])
}

func TestNewDevIsText(t *testing.T) {
	var buf bytes.Buffer
	lg := New(&buf, &config.AppConfig{AppEnv: "dev", LogLevel: slog.LevelWarn}, "road-conditions")

	lg.Info("hidden")
	assert.Zero(t, buf.Len())

	lg.Warn("no sensor data to serve")
	assert.Contains(t, buf.String(), "no sensor data to serve")
	assert.Contains(t, buf.String(), "road-conditions")
}
