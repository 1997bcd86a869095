package db

import (
	"context"
	"database/sql"
	"errors"
)

// DefaultWorkerQueue is the number of write jobs that may wait for the worker.
const DefaultWorkerQueue = 64

// ErrWorkerClosed is returned by Do after Close.
var ErrWorkerClosed = errors.New("db worker closed")

// TxFn runs inside a write transaction. Returning an error rolls it back.
type TxFn func(ctx context.Context, tx *sql.Tx) error

type job struct {
	ctx context.Context //nolint:containedctx // Each job carries its caller's context to the worker.
	fn  TxFn
	ch  chan error
}

// Worker runs write transactions one at a time on a dedicated goroutine.
type Worker struct {
	db     *sql.DB
	jobs   chan job
	done   chan struct{}
	closed chan struct{}
}

// NewWorker starts a worker for conn.
func NewWorker(conn *sql.DB) *Worker {
	w := &Worker{
		db:     conn,
		jobs:   make(chan job, DefaultWorkerQueue),
		done:   make(chan struct{}),
		closed: make(chan struct{}),
	}

	go w.loop()

	return w
}

// Close stops accepting jobs, waits for queued ones and stops the worker.
// It must not run concurrently with Do.
func (w *Worker) Close() {
	select {
	case <-w.closed:
		return
	default:
	}

	close(w.closed)
	close(w.jobs)
	<-w.done
}

// Do runs fn in a transaction and waits for its result or for ctx to end.
// When ctx ends first the transaction still completes; its result is dropped.
func (w *Worker) Do(ctx context.Context, fn TxFn) error {
	select {
	case <-w.closed:
		return ErrWorkerClosed
	default:
	}

	ch := make(chan error, 1)

	select {
	case w.jobs <- job{ctx: ctx, fn: fn, ch: ch}:
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case err := <-ch:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (w *Worker) loop() {
	defer close(w.done)

	for j := range w.jobs {
		j.ch <- w.run(j)
	}
}

func (w *Worker) run(j job) error {
	tx, err := w.db.BeginTx(j.ctx, nil)
	if err != nil {
		return err
	}

	if err = j.fn(j.ctx, tx); err != nil {
		_ = tx.Rollback()

		return err
	}

	return tx.Commit()
}
