package logger_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"isiledger/src/infra/config"
	"isiledger/src/infra/logger"
)

func TestPlainHandler(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewWithWriter(config.LogConfig{Level: "info", Format: "plain"}, &buf)

	logger.WithComponent(log, "ledger").Info("instruction applied", "kind", "RegisterAccount")
	log.Debug("hidden")

	assert.Equal(t, "INFO instruction applied component=ledger kind=RegisterAccount\n", buf.String())
}

func TestPlainHandler_Groups(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewWithWriter(config.LogConfig{Level: "debug", Format: "plain"}, &buf)

	log.WithGroup("req").Debug("done", "status", 200)

	assert.Equal(t, "DEBUG done req.status=200\n", buf.String())
}

func TestJSONHandler(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewWithWriter(config.LogConfig{Level: "warn", Format: "json"}, &buf)

	log.Info("dropped")
	logger.WithRequestID(log, "abc").Warn("slow", "ms", 1200)

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "slow", rec["msg"])
	assert.Equal(t, "abc", rec["request_id"])
}

func TestNilSafeHelpers(t *testing.T) {
	assert.NotPanics(t, func() {
		logger.Info(nil, "x")
		logger.Warn(nil, "x")
		logger.Error(nil, "x")
		logger.Debug(nil, "x")
	})
}
