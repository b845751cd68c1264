package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestWatcher_DebouncedCallback(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "holes.csv")
	require.NoError(t, os.WriteFile(path, []byte("id,x,y\n"), 0o644))

	w, err := NewWatcher(20 * time.Millisecond)
	require.NoError(t, err)
	defer w.Close()

	changed := make(chan string, 4)
	require.NoError(t, w.Watch([]string{path}, func(p string) { changed <- p }))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Run(ctx)

	for i := 0; i < 3; i++ {
		require.NoError(t, os.WriteFile(path, []byte("id,x,y\na,1,1\n"), 0o644))
	}

	select {
	case got := <-changed:
		abs, _ := filepath.Abs(path)
		require.Equal(t, abs, got)
	case <-time.After(5 * time.Second):
		t.Fatal("no change callback")
	}
}
