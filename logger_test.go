package mqtt311

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLogLevelString(t *testing.T) {
	assert.Equal(t, "DEBUG", LogLevelDebug.String())
	assert.Equal(t, "INFO", LogLevelInfo.String())
	assert.Equal(t, "WARN", LogLevelWarn.String())
	assert.Equal(t, "ERROR", LogLevelError.String())
	assert.Equal(t, "NONE", LogLevelNone.String())
	assert.Equal(t, "UNKNOWN", LogLevel(42).String())
}

func TestStdLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	l := NewStdLogger(&buf, LogLevelWarn)

	l.Debug("d", nil)
	l.Info("i", nil)
	assert.Zero(t, buf.Len())

	l.Warn("w", LogFields{LogFieldPacketID: 7})
	l.Error("e", nil)

	out := buf.String()
	assert.Contains(t, out, "[WARN] w")
	assert.Contains(t, out, "packet_id")
	assert.Contains(t, out, "[ERROR] e")
}

func TestNoOpLogger(t *testing.T) {
	l := NewNoOpLogger()

	assert.NotPanics(t, func() {
		l.Debug("x", nil)
		l.Info("x", nil)
		l.Warn("x", LogFields{"k": "v"})
		l.Error("x", nil)
	})
}
