package tds

import (
	"context"
	"log/slog"
	"sync"

	"golang.org/x/sync/semaphore"
)

// Conn is a single session with a server. It is safe for concurrent use;
// native calls on the session are serialized.
//
// The zero Conn is not connected and every operation on it fails with
// ErrNotConnected.
type Conn struct {
	lib Library
	cfg Config
	log *slog.Logger

	// sem is held for the duration of each native call sequence
	sem *semaphore.Weighted

	mu     sync.Mutex
	handle Handle
	closed bool
}

func notConnected() error {
	return &Error{Kind: ErrNotConnected}
}

func (c *Conn) logger() *slog.Logger {
	if c.log != nil {
		return c.log
	}
	return logger()
}

// currentHandle returns the live handle, or 0 when unconnected or closed
func (c *Conn) currentHandle() Handle {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return 0
	}
	return c.handle
}

// IsValid reports whether the connection is open
func (c *Conn) IsValid() bool {
	return c.currentHandle() != 0
}

// Config returns the configuration the connection was opened with
func (c *Conn) Config() Config {
	return c.cfg
}

// run executes query and fetches its rows while holding the session. The
// caller owns the returned buffer and must release it.
func (c *Conn) run(ctx context.Context, query string) (*RowBuffer, int, error) {
	if c.currentHandle() == 0 {
		return nil, 0, notConnected()
	}
	if err := c.sem.Acquire(ctx, 1); err != nil {
		return nil, 0, err
	}
	defer c.sem.Release(1)

	// Close may have won the race for the session.
	h := c.currentHandle()
	if h == 0 {
		return nil, 0, notConnected()
	}

	if c.lib.ExecuteQuery(h, query) != 0 {
		return nil, 0, queryFailed(reason(c.lib, ""))
	}
	buf, ok := c.lib.FetchRows(h)
	if !ok {
		return nil, 0, queryFailed(reason(c.lib, "Query failed"))
	}
	return buf, c.lib.AffectedRowCount(h), nil
}

// Execute runs query and returns all of its rows. The context is consulted
// before the query starts; once sent, the query runs to completion.
func (c *Conn) Execute(ctx context.Context, query string) (*ResultSet, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	buf, affected, err := c.run(ctx, query)
	if err != nil {
		c.logger().Debug("execute failed", "error", err)
		return nil, err
	}
	defer c.lib.ReleaseRows(buf)

	rs := toResultSet(buf, affected)
	c.logger().Debug("execute", "rows", rs.Len(), "affected", affected)
	return rs, nil
}

// Close closes the session. It waits for an in-flight query to finish its
// native calls. Calling Close more than once is a no-op.
func (c *Conn) Close() error {
	c.mu.Lock()
	h := c.handle
	c.handle = 0
	c.closed = true
	c.mu.Unlock()

	if h == 0 {
		return nil
	}
	_ = c.sem.Acquire(context.Background(), 1)
	c.lib.Close(h)
	c.sem.Release(1)
	c.logger().Debug("closed")
	return nil
}

// Disconnect closes the session.
//
// Deprecated: use Close.
func (c *Conn) Disconnect() error {
	return c.Close()
}
