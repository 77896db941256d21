package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, logrus.DebugLevel, ParseLevel("DEBUG"))
	assert.Equal(t, logrus.WarnLevel, ParseLevel("warning"))
	assert.Equal(t, logrus.ErrorLevel, ParseLevel("error"))
	assert.Equal(t, logrus.InfoLevel, ParseLevel(""))
	assert.Equal(t, logrus.InfoLevel, ParseLevel("nope"))
}

func TestJSONOutput_MergesFields(t *testing.T) {
	var buf bytes.Buffer
	l := New(Options{Level: logrus.InfoLevel, Format: FormatJSON, App: "petify", Output: &buf})

	l.With(map[string]any{"request_id": "r-1"}).Info("hello", map[string]any{
		"status": 200,
		"err":    errors.New("boom"),
		" ":      "dropped",
	})

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "hello", entry["msg"])
	assert.Equal(t, "petify", entry["app"])
	assert.Equal(t, "r-1", entry["request_id"])
	assert.Equal(t, "boom", entry["err"])
	assert.EqualValues(t, 200, entry["status"])
	_, hasBlank := entry[" "]
	assert.False(t, hasBlank)
}

func TestLevelFilter(t *testing.T) {
	var buf bytes.Buffer
	l := New(Options{Level: logrus.WarnLevel, Format: FormatText, Output: &buf})

	l.Info("skipped", nil)
	l.Warn("kept", nil)

	out := buf.String()
	assert.NotContains(t, out, "skipped")
	assert.True(t, strings.Contains(out, "kept"))
}
