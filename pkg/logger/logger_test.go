package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLogger_With(t *testing.T) {
	buf := new(bytes.Buffer)
	l := NewWriterLogger(buf, INFO, false).With(map[string]any{"user_id": "u1"})

	l.Debugf("hidden")
	require.Zero(t, buf.Len())

	l.Warnf("balance is %d", 3)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	require.Equal(t, "warn", entry["level"])
	require.Equal(t, "u1", entry["user_id"])
	require.Equal(t, "balance is 3", entry["message"])
}

func TestParseLevel(t *testing.T) {
	require.Equal(t, DEBUG, ParseLevel("debug"))
	require.Equal(t, WARNING, ParseLevel("WARN"))
	require.Equal(t, SILENCE, ParseLevel("off"))
	require.Equal(t, INFO, ParseLevel("whatever"))
}
