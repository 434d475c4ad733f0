package assemble

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"svgsprite/config"
	"svgsprite/styles"
	"svgsprite/symbol"
	"svgsprite/utils/images"
)

// ErrUnreadableSource is returned when source content cannot be read.
var ErrUnreadableSource = errors.New("unreadable source")

// FileError ties per-file failure to the source which caused it.
type FileError struct {
	Name string
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("%s: %v", e.Name, e.Err)
}

func (e *FileError) Unwrap() error {
	return e.Err
}

// PreviewOptions requests PNG rendering of every source into Destination.
type PreviewOptions struct {
	Destination string
	images.PreviewOptions
}

// Options controls sprite building.
type Options struct {
	// Concurrency limits number of sources loaded at the same time, 0 means
	// number of CPUs.
	Concurrency int
	OnError     config.ErrorPolicy
	Symbol      symbol.Options
	IDs         symbol.IDOptions
	// Preview is optional, nil disables previews.
	Preview *PreviewOptions
}

// loaded is a result of the loading stage for a single source.
type loaded struct {
	index int
	doc   *symbol.Document
	err   error
}

type builder struct {
	sources []Source
	opts    Options
	log     *zap.Logger
}

// Build produces sprite from sources. Sources are read and parsed
// concurrently, while style extraction and fragment rendering happen on the
// calling goroutine strictly in source order. Store is compiled once, after
// every source went through extraction.
func Build(ctx context.Context, sources []Source, store *styles.Store, opts Options, log *zap.Logger) (*Sprite, error) {
	if log == nil {
		log = zap.NewNop()
	}
	b := &builder{sources: sources, opts: opts, log: log.Named("sprite")}

	concurrency := opts.Concurrency
	if concurrency <= 0 {
		concurrency = runtime.NumCPU()
	}
	// parsed documents waiting for their turn are bounded by window
	window := 2 * concurrency

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var g errgroup.Group
	g.SetLimit(concurrency)

	results := make(chan loaded, window)
	tokens := make(chan struct{}, window)

	go func() {
		defer func() {
			_ = g.Wait()
			close(results)
		}()
		for i, src := range sources {
			select {
			case tokens <- struct{}{}:
			case <-ctx.Done():
				return
			}
			g.Go(func() error {
				doc, err := b.load(ctx, i, src)
				results <- loaded{index: i, doc: doc, err: err}
				return nil
			})
		}
	}()

	compiler := symbol.NewCompiler(store, opts.Symbol, log)
	sprite := &Sprite{Fragments: make([]string, 0, len(sources))}
	ids := make(map[string]string, len(sources))

	var (
		failed  error
		next    int
		pending = make(map[int]loaded)
	)
	for r := range results {
		pending[r.index] = r
		for {
			cur, ok := pending[next]
			if !ok {
				break
			}
			delete(pending, next)
			next++
			<-tokens

			if failed != nil {
				if cur.doc != nil {
					cur.doc.Release()
				}
				continue
			}

			name := sources[cur.index].Name
			fragment, err := b.extract(compiler, cur)
			if err != nil {
				ferr := &FileError{Name: name, Err: err}
				if opts.OnError.Tolerant() && ctx.Err() == nil {
					b.log.Warn("Skipping source", zap.String("file", name), zap.Error(err))
					sprite.Skipped = append(sprite.Skipped, ferr)
					continue
				}
				failed = ferr
				cancel()
				continue
			}
			if owner, ok := ids[cur.doc.ID]; ok {
				b.log.Warn("Duplicate symbol id", zap.String("id", cur.doc.ID), zap.String("file", name), zap.String("owner", owner))
			} else {
				ids[cur.doc.ID] = name
			}
			sprite.Fragments = append(sprite.Fragments, fragment)
		}
	}

	if failed != nil {
		return nil, failed
	}
	// barrier: every source must have been through extraction
	if next != len(sources) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("only %d of %d sources processed", next, len(sources))
	}
	sprite.Stylesheet = store.Compile()

	if len(sprite.Skipped) > 0 {
		b.log.Warn("Some sources were skipped", zap.Int("count", len(sprite.Skipped)), zap.Error(multierr.Combine(sprite.Skipped...)))
	}
	b.log.Debug("Sprite built", zap.Int("symbols", len(sprite.Fragments)), zap.Int("styles", store.Len()))
	return sprite, nil
}

// extract runs style extraction and fragment rendering for a loaded source.
func (b *builder) extract(compiler *symbol.Compiler, r loaded) (string, error) {
	if r.err != nil {
		return "", r.err
	}
	return compiler.Compile(r.doc)
}

// load reads, checks and parses single source. It runs concurrently with
// other loads and must not touch shared state.
func (b *builder) load(ctx context.Context, index int, src Source) (*symbol.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	id, err := symbol.MakeID(symbol.IDValues{Stem: src.Stem, Name: src.Name, Index: index}, b.opts.IDs)
	if err != nil {
		return nil, err
	}

	data, err := readSource(src)
	if err != nil {
		return nil, err
	}
	if data, err = normalizeSource(data); err != nil {
		return nil, err
	}

	if b.opts.Preview != nil {
		b.preview(id, src.Name, data)
	}
	return symbol.Parse(id, data)
}

func readSource(src Source) ([]byte, error) {
	r, err := src.Open()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnreadableSource, err)
	}
	data, err := io.ReadAll(r)
	if err = multierr.Append(err, r.Close()); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnreadableSource, err)
	}
	return data, nil
}

// preview renders source into PNG file. Failures are logged, previews never
// affect the sprite.
func (b *builder) preview(id, name string, data []byte) {
	fname := filepath.Join(b.opts.Preview.Destination, config.PreviewFileName(id))

	start := time.Now()
	defer func() {
		// rasterizer may panic on unusual input
		if r := recover(); r != nil {
			b.log.Warn("Preview rendering ended with panic",
				zap.String("file", name), zap.Any("panic", r), zap.ByteString("stack", debug.Stack()))
		}
	}()

	img, err := images.RasterizeSVGToImage(data, b.opts.Preview.PreviewOptions)
	if err == nil {
		var png []byte
		if png, err = images.EncodePNG(img); err == nil {
			err = os.WriteFile(fname, png, 0644)
		}
	}
	if err != nil {
		b.log.Warn("Unable to render preview", zap.String("file", name), zap.Error(err))
		return
	}
	b.log.Debug("Preview rendered", zap.String("file", name), zap.String("to", fname), zap.Duration("elapsed", time.Since(start)))
}
