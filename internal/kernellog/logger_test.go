package kernellog

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLogger_LevelGating(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: Warn, Component: "test", Output: &buf})

	l.Info("should not appear")
	assert.Empty(t, buf.String())

	l.Warn("should appear")
	assert.Contains(t, buf.String(), "should appear")
}

func TestLogger_LineShapeAndFields(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: Debug, Component: "job", Output: &buf})

	l.Info("worker started", Int("id", 3), String("state", "idle"))
	line := buf.String()

	assert.Contains(t, line, "[INFO ")
	assert.Contains(t, line, "[job]")
	assert.Contains(t, line, "worker started")
	assert.Contains(t, line, "id=3")
	assert.Contains(t, line, `state="idle"`)
}

func TestLogger_WithScopesComponentIndependently(t *testing.T) {
	var buf bytes.Buffer
	base := New(Config{Level: Debug, Component: "ecs", Output: &buf})
	scoped := base.With("ecs.world")

	scoped.Info("frame ran")
	assert.Contains(t, buf.String(), "[ecs.world]")
	assert.NotContains(t, buf.String(), "[ecs] ")
}

func TestField_ErrFormatsErrorMessage(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: Debug, Output: &buf})
	l.Error("flush failed", Err(errors.New("pool exhausted")))
	assert.Contains(t, buf.String(), `error="pool exhausted"`)
}

func TestLogger_NoColorWhenDisabled(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: Debug, Output: &buf, Colorize: false})
	l.Info("plain")
	assert.False(t, strings.Contains(buf.String(), "\033["))
}
