package lineedit

import (
	"bufio"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDiagnosticsNopWhenDisabled(t *testing.T) {
	d := newDiagnostics("")
	require.False(t, d.enabled)
	// Must not panic without a backing file.
	d.Event("probe", map[string]interface{}{"n": 1})
	d.Error("boom", os.ErrClosed)
}

func TestDiagnosticsWritesEventsToFile(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "diag-*.log")
	require.NoError(t, err)
	path := f.Name()
	require.NoError(t, f.Close())

	d := newDiagnostics(path)
	require.True(t, d.enabled)
	d.Event("probe", map[string]interface{}{"n": 1})

	r, err := os.Open(path)
	require.NoError(t, err)
	defer r.Close()
	scanner := bufio.NewScanner(r)
	require.True(t, scanner.Scan())
	require.Contains(t, scanner.Text(), "probe")
}

func TestDiagnosticsRateLimitsRepeatedKeys(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "diag-*.log")
	require.NoError(t, err)
	path := f.Name()
	require.NoError(t, f.Close())

	d := newDiagnostics(path)
	d.minGap = time.Hour
	d.Event("burst", nil)
	d.Event("burst", nil)

	r, err := os.Open(path)
	require.NoError(t, err)
	defer r.Close()
	scanner := bufio.NewScanner(r)
	n := 0
	for scanner.Scan() {
		n++
	}
	require.Equal(t, 1, n, "second call within minGap must be dropped")
}
