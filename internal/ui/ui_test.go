package ui

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseColorMode(t *testing.T) {
	for input, want := range map[string]ColorMode{"": ColorAuto, "auto": ColorAuto, "Always": ColorAlways, "never": ColorNever} {
		got, err := ParseColorMode(input)
		require.NoError(t, err, input)
		assert.Equal(t, want, got, input)
	}
	_, err := ParseColorMode("rainbow")
	assert.Error(t, err)
}

func TestUI_NoColor(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	var buf bytes.Buffer
	u := NewWithWriter(&buf, ColorAlways)

	u.Success("sent %d rows", 2)
	u.Error("failed")
	assert.Equal(t, "✓ sent 2 rows\n✗ failed\n", buf.String())
}

func TestUI_AlwaysColor(t *testing.T) {
	t.Setenv("NO_COLOR", "")
	var buf bytes.Buffer
	u := NewWithWriter(&buf, ColorAlways)

	u.Warning("careful")
	assert.Contains(t, buf.String(), "\x1b[")
	assert.Contains(t, buf.String(), "⚠ careful")
}

func TestFromContext(t *testing.T) {
	u := NewWithWriter(&bytes.Buffer{}, ColorNever)
	ctx := WithUI(context.Background(), u)
	assert.Same(t, u, FromContext(ctx))
	assert.NotNil(t, FromContext(context.Background()))
}
