package tds

import (
	"context"
	"log/slog"

	"golang.org/x/sync/semaphore"
)

// Connector opens connections for a fixed configuration
type Connector struct {
	cfg    Config
	lib    Library
	logger *slog.Logger
}

// Option configures a Connector
type Option func(*Connector)

// WithLibrary replaces the native library. The default is DBLib().
func WithLibrary(lib Library) Option {
	return func(c *Connector) {
		c.lib = lib
	}
}

// WithLogger sets the logger used by connections from this connector.
// The package logger is used when none is set.
func WithLogger(l *slog.Logger) Option {
	return func(c *Connector) {
		c.logger = l
	}
}

// NewConnector returns a Connector for cfg
func NewConnector(cfg Config, opts ...Option) *Connector {
	c := &Connector{cfg: cfg}
	for _, opt := range opts {
		opt(c)
	}
	if c.lib == nil {
		c.lib = DBLib()
	}
	return c
}

// Connect initializes the library and opens a session. Failures are reported
// as ErrConnectionFailed carrying the library's message when it has one.
func (c *Connector) Connect(ctx context.Context) (*Conn, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	log := c.logger
	if log == nil {
		log = logger()
	}
	log = log.With("server", c.cfg.ServerAddress(), "database", c.cfg.Database)

	if c.lib.Init() != 0 {
		err := connectionFailed(reason(c.lib, "DB init failed"))
		log.Debug("library init failed", "error", err)
		return nil, err
	}

	h := c.lib.Connect(c.cfg.ServerAddress(), c.cfg.Username, c.cfg.Password, c.cfg.Database, c.cfg.TimeoutSeconds())
	if h == 0 {
		err := connectionFailed(reason(c.lib, "Connection failed"))
		log.Debug("connect failed", "error", err)
		return nil, err
	}
	log.Debug("connected")

	return &Conn{
		lib:    c.lib,
		handle: h,
		cfg:    c.cfg,
		sem:    semaphore.NewWeighted(1),
		log:    log,
	}, nil
}

// Connect opens a connection for cfg
func Connect(ctx context.Context, cfg Config, opts ...Option) (*Conn, error) {
	return NewConnector(cfg, opts...).Connect(ctx)
}
