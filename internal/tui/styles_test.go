package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHasColorSupport(t *testing.T) {
	t.Run("NO_COLOR disables color", func(t *testing.T) {
		t.Setenv("NO_COLOR", "")
		t.Setenv("TERM", "xterm-256color")
		assert.False(t, HasColorSupport())
	})

	t.Run("dumb terminal disables color", func(t *testing.T) {
		t.Setenv("TERM", "dumb")
		assert.False(t, HasColorSupport())
	})
}

func TestNewOutputStyles(t *testing.T) {
	styles := NewOutputStyles()
	require.NotNil(t, styles)

	// Labels are padded so report fields line up.
	assert.Equal(t, 9, styles.Label.GetWidth())
	assert.True(t, styles.Block.GetBorderLeft())
}
