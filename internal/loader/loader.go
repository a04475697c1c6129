// Package loader populates an embedding.Store in the background.
//
// A Task reads the embeddings source and the simple-words source concurrently,
// builds the simple vocabulary once both are in, and swaps the finished
// snapshots into the store. Queries should wait for Ready (or call Wait)
// before building an engine over the store.
package loader

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"simplifier/internal/domain"
	"simplifier/internal/embedding"
)

// Sources names the files a Task loads. Words may be empty to load embeddings only.
type Sources struct {
	Embeddings string
	Words      string
}

// Result is what a finished Task produced.
type Result struct {
	Embeddings domain.LoadReport
	Simple     domain.LoadReport
	// Words is the normalised simple-words list in file order.
	Words []string
}

// Task is a one-shot background load into a store.
type Task struct {
	store   *embedding.Store
	sources Sources

	once   sync.Once
	ready  chan struct{}
	result Result
	err    error
}

// New creates a task that will load sources into store.
func New(store *embedding.Store, sources Sources) *Task {
	return &Task{store: store, sources: sources, ready: make(chan struct{})}
}

// Start launches the load. Calls after the first are no-ops.
func (t *Task) Start(ctx context.Context) {
	t.once.Do(func() {
		go func() {
			defer close(t.ready)
			t.result, t.err = t.run(ctx)
		}()
	})
}

// Ready is closed once the load has finished, successfully or not.
func (t *Task) Ready() <-chan struct{} { return t.ready }

// Wait starts the task if needed and blocks until it finishes.
func (t *Task) Wait() (Result, error) {
	t.Start(context.Background())
	<-t.ready
	return t.result, t.err
}

// Load runs a task to completion.
func Load(ctx context.Context, store *embedding.Store, sources Sources) (Result, error) {
	t := New(store, sources)
	t.Start(ctx)
	return t.Wait()
}

func (t *Task) run(ctx context.Context) (Result, error) {
	opts := t.store.ParseOptions()
	var (
		res   Result
		full  *embedding.Vocabulary
		words []string
	)

	var g errgroup.Group
	g.Go(func() error {
		var err error
		full, res.Embeddings, err = embedding.ReadEmbeddingsFile(t.sources.Embeddings, opts)
		return err
	})
	if t.sources.Words != "" {
		g.Go(func() error {
			var err error
			words, err = embedding.ReadWordsFile(t.sources.Words)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return res, err
	}
	if err := ctx.Err(); err != nil {
		return res, err
	}

	var simple *embedding.Vocabulary
	if t.sources.Words != "" {
		var err error
		simple, res.Simple, err = embedding.BuildSimple(full, words, opts)
		if err != nil {
			return res, err
		}
		res.Simple.Source = t.sources.Words
		res.Words = words
	}
	t.store.Install(full, simple)
	return res, nil
}
