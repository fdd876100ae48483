package assets

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/bloeys/nrend/logging"
	"github.com/schollz/progressbar/v3"
	"golang.org/x/sync/errgroup"
)

// Loader reads asset files relative to BaseDir and reports progress while doing so.
// Callbacks may be called from multiple goroutines at once by LoadAll.
type Loader struct {
	BaseDir string

	// MaxParallel limits how many files LoadAll reads at once. Zero or less means no limit
	MaxParallel int

	// OnProgress is called after every chunk read with the bytes read so far and the file size
	OnProgress func(loaded, total int64, name string)
	// OnFileComplete is called once a file has been fully read
	OnFileComplete func(name string)
}

func (l *Loader) Path(name string) string {
	return filepath.Join(l.BaseDir, name)
}

// Load reads one file. Reading stops early with ctx.Err() if ctx is cancelled.
func (l *Loader) Load(ctx context.Context, name string) ([]byte, error) {

	f, err := os.Open(l.Path(name))
	if err != nil {
		return nil, fmt.Errorf("open asset '%s': %w", name, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat asset '%s': %w", name, err)
	}

	total := info.Size()
	buf := bytes.NewBuffer(make([]byte, 0, total))

	pw := &progressWriter{
		name:  name,
		total: total,
		onProgress: func(loaded, total int64, name string) {
			l.callOnProgress(loaded, total, name)
		},
	}

	_, err = io.Copy(io.MultiWriter(buf, pw), &ctxReader{ctx: ctx, r: f})
	if err != nil {
		return nil, fmt.Errorf("read asset '%s': %w", name, err)
	}

	l.callOnFileComplete(name)
	return buf.Bytes(), nil
}

// LoadAll reads all files in parallel. Results are in the same order as names.
// The first failure cancels the remaining reads and is returned.
func (l *Loader) LoadAll(ctx context.Context, names ...string) ([][]byte, error) {

	results := make([][]byte, len(names))

	g, gCtx := errgroup.WithContext(ctx)
	if l.MaxParallel > 0 {
		g.SetLimit(l.MaxParallel)
	}

	for i, name := range names {
		g.Go(func() error {

			data, err := l.Load(gCtx, name)
			if err != nil {
				return err
			}

			results[i] = data
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}

func (l *Loader) callOnProgress(loaded, total int64, name string) {

	if l.OnProgress == nil {
		return
	}

	defer func() {
		if r := recover(); r != nil {
			logging.ErrLog.Printf("OnProgress callback for '%s' panicked: %v\n", name, r)
		}
	}()

	l.OnProgress(loaded, total, name)
}

func (l *Loader) callOnFileComplete(name string) {

	if l.OnFileComplete == nil {
		return
	}

	defer func() {
		if r := recover(); r != nil {
			logging.ErrLog.Printf("OnFileComplete callback for '%s' panicked: %v\n", name, r)
		}
	}()

	l.OnFileComplete(name)
}

// ProgressBarCallback returns an OnProgress func that draws one terminal progress bar per file
func ProgressBarCallback() func(loaded, total int64, name string) {

	var mu sync.Mutex
	bars := map[string]*progressbar.ProgressBar{}

	return func(loaded, total int64, name string) {

		mu.Lock()
		defer mu.Unlock()

		bar, ok := bars[name]
		if !ok {
			bar = progressbar.DefaultBytes(total, "loading "+name)
			bars[name] = bar
		}

		bar.Set64(loaded)
		if loaded >= total {
			bar.Finish()
			delete(bars, name)
		}
	}
}

type progressWriter struct {
	name       string
	loaded     int64
	total      int64
	onProgress func(loaded, total int64, name string)
}

func (pw *progressWriter) Write(p []byte) (int, error) {
	pw.loaded += int64(len(p))
	pw.onProgress(pw.loaded, pw.total, pw.name)
	return len(p), nil
}

type ctxReader struct {
	ctx context.Context
	r   io.Reader
}

func (cr *ctxReader) Read(p []byte) (int, error) {

	if err := cr.ctx.Err(); err != nil {
		return 0, err
	}

	return cr.r.Read(p)
}
