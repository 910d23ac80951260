package constants

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTimeoutConstants(t *testing.T) {
	t.Run("probe timeout is shorter than stage timeouts", func(t *testing.T) {
		assert.Less(t, DefaultProbeTimeout, DefaultCompilerTimeout)
		assert.Less(t, DefaultProbeTimeout, DefaultGeneratorTimeout)
	})

	t.Run("survey allows at least one probe to time out", func(t *testing.T) {
		assert.GreaterOrEqual(t, SurveyTimeout, DefaultProbeTimeout)
	})
}

func TestArtifactSuffixes(t *testing.T) {
	assert.NotEqual(t, HeaderSuffix, SourceSuffix)
	assert.True(t, strings.HasSuffix(HeaderSuffix, ".h"))
	assert.True(t, strings.HasSuffix(SourceSuffix, ".c"))
}

func TestRelativeLayout(t *testing.T) {
	for _, p := range []string{DefaultSchemaDir, DefaultOutputDir, VenvPython, PlatformIOPackagesDir, NanopbGeneratorScript} {
		assert.False(t, filepath.IsAbs(p), "%s must be relative", p)
	}
}
