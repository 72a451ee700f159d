package graphql

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"
	"golang.org/x/tools/imports"
)

// Writer writes the generated artifacts to disk: the filter schema as
// SDL and the Go model bindings. Files are produced in parallel and Go
// output is formatted with goimports before it lands.
type Writer struct {
	gen     *Generator
	outDir  string
	pkg     string
	workers int

	mu      sync.Mutex
	metrics *WriterMetrics
}

// WriterMetrics tracks generation output.
type WriterMetrics struct {
	FilesGenerated int
	TotalBytes     int64
}

// NewWriter creates a writer that emits into outDir, with Go models in
// package pkg.
func NewWriter(g *Generator, outDir, pkg string) *Writer {
	return &Writer{
		gen:     g,
		outDir:  outDir,
		pkg:     pkg,
		workers: runtime.GOMAXPROCS(0),
		metrics: &WriterMetrics{},
	}
}

// WithWorkers sets the number of parallel workers.
func (w *Writer) WithWorkers(n int) *Writer {
	if n > 0 {
		w.workers = n
	}
	return w
}

// Metrics returns the generation metrics.
func (w *Writer) Metrics() *WriterMetrics {
	return w.metrics
}

// SchemaFile and ModelsFile are the names of the emitted files.
const (
	SchemaFile = "filter.graphql"
	ModelsFile = "filter_models.go"
)

// Generate writes all artifacts. It fails on the first file that cannot
// be rendered or written.
func (w *Writer) Generate(ctx context.Context) error {
	if err := os.MkdirAll(w.outDir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	files := []fileTask{
		{name: SchemaFile, render: w.renderSDL},
		{name: ModelsFile, render: w.renderModels},
	}

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(w.workers)
	for _, f := range files {
		eg.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
				return w.generateFile(f)
			}
		})
	}
	return eg.Wait()
}

// fileTask represents a single file generation task.
type fileTask struct {
	name   string
	render func(path string) ([]byte, error)
}

func (w *Writer) renderSDL(string) ([]byte, error) {
	return []byte(w.gen.SDL()), nil
}

func (w *Writer) renderModels(path string) ([]byte, error) {
	var buf bytes.Buffer
	if err := w.gen.Models(w.pkg).Render(&buf); err != nil {
		return nil, fmt.Errorf("render models: %w", err)
	}
	// goimports removes unused imports and normalizes the result.
	formatted, err := imports.Process(path, buf.Bytes(), nil)
	if err != nil {
		debugPath := path + ".error"
		_ = os.WriteFile(debugPath, buf.Bytes(), 0o644)
		return nil, fmt.Errorf("format %s: %w (unformatted written to %s)", filepath.Base(path), err, debugPath)
	}
	return formatted, nil
}

// generateFile renders and writes a single file.
func (w *Writer) generateFile(f fileTask) error {
	fullPath := filepath.Join(w.outDir, f.name)
	out, err := f.render(fullPath)
	if err != nil {
		return err
	}
	if err := os.WriteFile(fullPath, out, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", f.name, err)
	}
	w.mu.Lock()
	w.metrics.FilesGenerated++
	w.metrics.TotalBytes += int64(len(out))
	w.mu.Unlock()
	return nil
}
