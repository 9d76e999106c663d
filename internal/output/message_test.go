package output

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

// captureStatus redirects status messages into a buffer for the duration
// of the test. Not safe for parallel tests.
func captureStatus(t *testing.T) *bytes.Buffer {
	t.Helper()

	orig := statusWriter
	t.Cleanup(func() { statusWriter = orig })

	var buf bytes.Buffer
	statusWriter = &buf
	return &buf
}

func TestInfo(t *testing.T) {
	buf := captureStatus(t)

	Info("scanning")
	assert.Equal(t, "ℹ️  scanning\n", buf.String())

	buf.Reset()
	Infof("scanned %d chains", 3)
	assert.Equal(t, "ℹ️  scanned 3 chains\n", buf.String())
}

func TestWarn(t *testing.T) {
	buf := captureStatus(t)

	Warn("snapshot not saved")
	assert.Equal(t, "⚠️  snapshot not saved\n", buf.String())

	buf.Reset()
	Warnf("retrying in %ds", 2)
	assert.Equal(t, "⚠️  retrying in 2s\n", buf.String())
}

func TestSuccess(t *testing.T) {
	buf := captureStatus(t)

	Success("done")
	assert.Equal(t, "✅ done\n", buf.String())

	buf.Reset()
	Successf("saved %d addresses", 7)
	assert.Equal(t, "✅ saved 7 addresses\n", buf.String())
}
