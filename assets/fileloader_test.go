package assets

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/bloeys/nrend/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFiles(t *testing.T, files map[string][]byte) string {

	dir := t.TempDir()
	for name, data := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), data, 0o644))
	}

	return dir
}

func TestLoad(t *testing.T) {

	big := bytes.Repeat([]byte("nrend"), 40_000)
	dir := writeFiles(t, map[string][]byte{"big.bin": big})

	var lastLoaded, lastTotal int64
	progressCalls := 0
	completed := []string{}

	l := &Loader{
		BaseDir: dir,
		OnProgress: func(loaded, total int64, name string) {
			assert.Equal(t, "big.bin", name)
			assert.GreaterOrEqual(t, loaded, lastLoaded)
			lastLoaded, lastTotal = loaded, total
			progressCalls++
		},
		OnFileComplete: func(name string) {
			completed = append(completed, name)
		},
	}

	data, err := l.Load(context.Background(), "big.bin")
	require.NoError(t, err)

	assert.Equal(t, big, data)
	assert.Equal(t, int64(len(big)), lastLoaded)
	assert.Equal(t, int64(len(big)), lastTotal)
	assert.Greater(t, progressCalls, 0)
	assert.Equal(t, []string{"big.bin"}, completed)
}

func TestLoadErrors(t *testing.T) {

	dir := writeFiles(t, map[string][]byte{"a.txt": []byte("a")})
	l := &Loader{BaseDir: dir}

	_, err := l.Load(context.Background(), "missing.txt")
	assert.ErrorIs(t, err, os.ErrNotExist)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = l.Load(ctx, "a.txt")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLoadRecoversCallbackPanics(t *testing.T) {

	out := &bytes.Buffer{}
	logging.ErrLog.SetOutput(out)
	defer logging.ErrLog.SetOutput(os.Stderr)

	dir := writeFiles(t, map[string][]byte{"a.txt": []byte("hello")})
	l := &Loader{
		BaseDir:        dir,
		OnProgress:     func(loaded, total int64, name string) { panic("progress boom") },
		OnFileComplete: func(name string) { panic("complete boom") },
	}

	data, err := l.Load(context.Background(), "a.txt")
	require.NoError(t, err)

	assert.Equal(t, []byte("hello"), data)
	assert.Contains(t, out.String(), "progress boom")
	assert.Contains(t, out.String(), "complete boom")
}

func TestLoadAll(t *testing.T) {

	files := map[string][]byte{}
	names := []string{}
	for i := 0; i < 12; i++ {
		name := "file" + strings.Repeat("x", i) + ".txt"
		files[name] = bytes.Repeat([]byte{byte('a' + i)}, 1000*(i+1))
		names = append(names, name)
	}

	dir := writeFiles(t, files)

	var mu sync.Mutex
	completed := map[string]int{}

	l := &Loader{
		BaseDir:     dir,
		MaxParallel: 3,
		OnFileComplete: func(name string) {
			mu.Lock()
			completed[name]++
			mu.Unlock()
		},
	}

	results, err := l.LoadAll(context.Background(), names...)
	require.NoError(t, err)
	require.Len(t, results, len(names))

	for i, name := range names {
		assert.Equal(t, files[name], results[i], name)
		assert.Equal(t, 1, completed[name], name)
	}

	_, err = l.LoadAll(context.Background(), names[0], "nope.txt", names[1])
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestProgressBarCallback(t *testing.T) {

	cb := ProgressBarCallback()

	assert.NotPanics(t, func() {
		cb(10, 100, "a")
		cb(100, 100, "a")
		cb(5, 5, "b")
	})
}
