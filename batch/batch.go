// Package batch builds documents from many markup sources in parallel.
package batch

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/fwojciec/surflink"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is used when Builder.Concurrency is not positive.
const DefaultConcurrency = 8

// Builder builds a Document for each source using the DocumentBuilder
// registered for the source's format.
type Builder struct {
	Builders    map[surflink.Format]surflink.DocumentBuilder
	Concurrency int
}

// Result holds the outcome of building one source.
type Result struct {
	Source   *surflink.Source
	Document *surflink.Document
	Err      error
}

// ProgressEvent reports progress during a batch build.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	Source    string
	Links     int
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting batch progress.
type ProgressFunc func(event ProgressEvent)

type buildResult struct {
	position int
	Result
}

// BuildAll builds every source with cfg. Results are returned in source
// order; a failing source records its error in its Result and does not stop
// the others. If ctx is canceled, sources not yet built fail with the
// context error and BuildAll returns it.
func (b *Builder) BuildAll(ctx context.Context, sources []*surflink.Source, cfg surflink.Config, progress ProgressFunc) ([]Result, error) {
	concurrency := b.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	resultCh := make(chan buildResult, len(sources))

	var completed atomic.Int64
	total := len(sources)

	if progress != nil {
		progress(ProgressEvent{
			Type:  ProgressStarted,
			Total: total,
		})
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	go func() {
		for i, src := range sources {
			g.Go(func() error {
				resultCh <- buildResult{position: i, Result: b.build(gctx, src, cfg)}
				return nil
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	results := make([]Result, len(sources))
	for result := range resultCh {
		completed.Add(1)
		results[result.position] = result.Result

		if progress == nil {
			continue
		}
		event := ProgressEvent{
			Type:      ProgressCompleted,
			Completed: int(completed.Load()),
			Total:     total,
			Source:    result.Source.Name,
		}
		if result.Err != nil {
			event.Type = ProgressFailed
			event.Error = result.Err
		} else {
			event.Links = result.Document.Links().Len()
		}
		progress(event)
	}

	if progress != nil {
		progress(ProgressEvent{
			Type:      ProgressFinished,
			Completed: total,
			Total:     total,
		})
	}

	return results, ctx.Err()
}

func (b *Builder) build(ctx context.Context, src *surflink.Source, cfg surflink.Config) Result {
	result := Result{Source: src}
	if err := ctx.Err(); err != nil {
		result.Err = err
		return result
	}

	builder, ok := b.Builders[src.Format]
	if !ok {
		result.Err = surflink.Errorf(surflink.EINVALID, "no builder for format %q", src.Format)
		return result
	}

	rc, err := src.Open()
	if err != nil {
		result.Err = fmt.Errorf("opening %s: %w", src.Name, err)
		return result
	}
	defer rc.Close()

	result.Document, result.Err = builder.Build(rc, cfg)
	return result
}
