package logging

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExcerpt(t *testing.T) {
	t.Parallel()

	t.Run("empty", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, Excerpt("", 5))
		assert.Empty(t, Excerpt("\n\n", 5))
	})

	t.Run("short output kept", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "line 1\nline 2", Excerpt("line 1\nline 2\n", 5))
	})

	t.Run("keeps trailing lines", func(t *testing.T) {
		t.Parallel()
		lines := make([]string, 10)
		for i := range lines {
			lines[i] = "line " + string(rune('a'+i))
		}
		got := Excerpt(strings.Join(lines, "\n"), 3)
		assert.Equal(t, "... (7 lines omitted)\nline h\nline i\nline j", got)
	})

	t.Run("default line count", func(t *testing.T) {
		t.Parallel()
		got := Excerpt(strings.Repeat("x\n", 50), 0)
		assert.Len(t, strings.Split(got, "\n"), DefaultExcerptLines+1)
	})

	t.Run("filters secrets", func(t *testing.T) {
		t.Parallel()
		got := Excerpt("error: PASSWORD="+fakePassword(), 5)
		assert.Contains(t, got, RedactedValue)
	})
}
