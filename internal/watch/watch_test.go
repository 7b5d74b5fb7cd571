package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func startWatcher(t *testing.T, path string, onChange func(context.Context) error) {
	t.Helper()
	w, err := New(path, 50*time.Millisecond, zaptest.NewLogger(t))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx, onChange) }()

	t.Cleanup(func() {
		cancel()
		require.NoError(t, <-done)
		require.NoError(t, w.Close())
	})
}

func TestWatcher_Debounces(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ipc.ts")
	require.NoError(t, os.WriteFile(path, []byte("interface A {}"), 0644))

	var calls atomic.Int32
	changed := make(chan struct{}, 10)
	startWatcher(t, path, func(context.Context) error {
		calls.Add(1)
		changed <- struct{}{}
		return nil
	})

	for i := 0; i < 5; i++ {
		require.NoError(t, os.WriteFile(path, []byte("interface B {}"), 0644))
	}

	select {
	case <-changed:
	case <-time.After(5 * time.Second):
		t.Fatal("no change reported")
	}

	time.Sleep(300 * time.Millisecond)
	require.Equal(t, int32(1), calls.Load())
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ipc.ts")
	require.NoError(t, os.WriteFile(path, []byte("interface A {}"), 0644))

	var calls atomic.Int32
	startWatcher(t, path, func(context.Context) error {
		calls.Add(1)
		return nil
	})

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.ts"), []byte("x"), 0644))
	time.Sleep(300 * time.Millisecond)
	require.Zero(t, calls.Load())
}

func TestWatcher_ContinuesAfterError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ipc.ts")
	require.NoError(t, os.WriteFile(path, []byte("interface A {}"), 0644))

	changed := make(chan struct{}, 10)
	startWatcher(t, path, func(context.Context) error {
		changed <- struct{}{}
		return errors.New("parse failed")
	})

	for round := 0; round < 2; round++ {
		require.NoError(t, os.WriteFile(path, []byte("interface B {}"), 0644))
		select {
		case <-changed:
		case <-time.After(5 * time.Second):
			t.Fatalf("round %d: no change reported", round)
		}
	}
}

func TestNew_MissingDirectory(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "nope", "ipc.ts"), 0, nil)
	require.Error(t, err)
}
