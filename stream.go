package tds

import (
	"context"
	"sync"
	"sync/atomic"
)

// Stream delivers items one at a time from a background producer.
//
// Iterate with Next and Value, then check Err. Cancelling the context passed
// when the stream was created, or calling Close, ends the stream early
// without an error. A stream that is neither drained nor closed keeps its
// producer goroutine alive.
//
// Next and Value belong to the consuming goroutine. Close may be called from
// any goroutine.
//
//	s := conn.Stream(ctx, "SELECT id FROM t")
//	defer s.Close()
//	for s.Next() {
//		row := s.Value()
//		...
//	}
//	if err := s.Err(); err != nil {
//		...
//	}
type Stream[T any] struct {
	parent context.Context
	ctx    context.Context
	cancel context.CancelFunc
	items  chan T
	done   atomic.Bool

	mu  sync.Mutex
	err error

	// cur is only touched by the consumer
	cur T
}

// newStream starts produce in a goroutine. emit blocks until the consumer
// takes the item and reports false once the stream has been cancelled.
func newStream[T any](parent context.Context, produce func(ctx context.Context, emit func(T) bool) error) *Stream[T] {
	ctx, cancel := context.WithCancel(parent)
	s := &Stream[T]{
		parent: parent,
		ctx:    ctx,
		cancel: cancel,
		items:  make(chan T),
	}
	emit := func(v T) bool {
		select {
		case s.items <- v:
			return true
		case <-ctx.Done():
			return false
		}
	}
	go func() {
		defer close(s.items)
		if err := produce(ctx, emit); err != nil {
			s.mu.Lock()
			if ctx.Err() == nil {
				s.err = err
			}
			s.mu.Unlock()
		}
	}()
	return s
}

// Next advances to the next item. It returns false when the stream is
// exhausted, failed or cancelled.
func (s *Stream[T]) Next() bool {
	if s.done.Load() {
		return false
	}
	if s.ctx.Err() != nil {
		s.done.Store(true)
		return false
	}
	v, ok := <-s.items
	if !ok {
		s.done.Store(true)
		return false
	}
	s.cur = v
	return true
}

// Value returns the item most recently produced by Next
func (s *Stream[T]) Value() T {
	return s.cur
}

// Err returns the error that ended the stream, if any. Cancellation is not
// an error.
func (s *Stream[T]) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Close cancels the stream and waits for its producer to exit
func (s *Stream[T]) Close() error {
	s.cancel()
	s.done.Store(true)
	for range s.items {
	}
	return nil
}

// Collect drains the stream into a slice and closes it
func (s *Stream[T]) Collect() ([]T, error) {
	defer s.Close()
	var out []T
	for s.Next() {
		out = append(out, s.Value())
	}
	return out, s.Err()
}

// Stream runs query and delivers its rows as they are decoded. The context
// is checked before each row; cancelling it stops the stream after the row
// in flight.
func (c *Conn) Stream(ctx context.Context, query string) *Stream[Row] {
	return newStream(ctx, func(ctx context.Context, emit func(Row) bool) error {
		if ctx.Err() != nil {
			return nil
		}
		buf, affected, err := c.run(ctx, query)
		if err != nil {
			return err
		}
		defer c.lib.ReleaseRows(buf)
		c.logger().Debug("stream", "rows", buf.Len(), "affected", affected)

		for _, r := range buf.Rows {
			if ctx.Err() != nil {
				return nil
			}
			if !emit(decodeRow(r)) {
				return nil
			}
		}
		return nil
	})
}

// Map returns a stream of fn applied to each item of src. The first error
// from fn, or the error that ended src, ends the stream with that error.
// Closing the returned stream closes src.
// The mapped stream shares the parent context of src; closing src does not
// cancel it.
func Map[S, T any](src *Stream[S], fn func(S) (T, error)) *Stream[T] {
	return newStream(src.parent, func(ctx context.Context, emit func(T) bool) error {
		stop := context.AfterFunc(ctx, src.cancel)
		defer stop()
		defer src.Close()
		for src.Next() {
			if ctx.Err() != nil {
				return nil
			}
			v, err := fn(src.Value())
			if err != nil {
				return err
			}
			if !emit(v) {
				return nil
			}
		}
		return src.Err()
	})
}

// StreamMap runs query and streams fn applied to each row
func StreamMap[T any](ctx context.Context, c *Conn, query string, fn func(Row) (T, error)) *Stream[T] {
	return Map(c.Stream(ctx, query), fn)
}

// StreamAs runs query and streams each row decoded into a T
func StreamAs[T any](ctx context.Context, c *Conn, query string) *Stream[T] {
	return StreamMap(ctx, c, query, DecodeRow[T])
}
