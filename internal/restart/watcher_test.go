package restart

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcher_FiresOnSentinelTouch(t *testing.T) {
	dir := t.TempDir()
	sentinel := filepath.Join(dir, "tmp", "restart.txt")

	touched := make(chan struct{}, 1)
	w, err := NewWatcher(sentinel, func() {
		touched <- struct{}{}
	})
	require.NoError(t, err)

	require.NoError(t, w.Start(context.Background()))
	defer w.Stop()

	require.NoError(t, os.WriteFile(sentinel, nil, 0o644))

	select {
	case <-touched:
	case <-time.After(3 * time.Second):
		t.Fatal("sentinel touch was not observed")
	}
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	sentinel := filepath.Join(dir, "restart.txt")

	fired := false
	w, err := NewWatcher(sentinel, func() { fired = true })
	require.NoError(t, err)

	require.NoError(t, w.Start(context.Background()))
	defer w.Stop()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.txt"), nil, 0o644))
	time.Sleep(300 * time.Millisecond)

	assert.False(t, fired)
}
