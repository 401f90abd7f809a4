package tds

import (
	"strconv"
	"time"
)

const (
	DefaultPort    = 1433
	DefaultTimeout = 5 * time.Second
)

// Config describes how to reach a server. It is copied into a connection at
// connect time; later changes do not affect open connections.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	Database string
	Timeout  time.Duration // login timeout
}

// ConfigOption configures a Config
type ConfigOption func(*Config)

// WithPort sets the server port
func WithPort(port int) ConfigOption {
	return func(c *Config) {
		c.Port = port
	}
}

// WithTimeout sets the login timeout
func WithTimeout(d time.Duration) ConfigOption {
	return func(c *Config) {
		c.Timeout = d
	}
}

// NewConfig returns a Config with the default port and timeout, then
// applies opts.
func NewConfig(host, username, password, database string, opts ...ConfigOption) Config {
	cfg := Config{
		Host:     host,
		Port:     DefaultPort,
		Username: username,
		Password: password,
		Database: database,
		Timeout:  DefaultTimeout,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// ServerAddress returns the "host:port" string handed to the native library
func (c Config) ServerAddress() string {
	port := c.Port
	if port == 0 {
		port = DefaultPort
	}
	return c.Host + ":" + strconv.Itoa(port)
}

// TimeoutSeconds returns the timeout rounded up to whole seconds. A zero or
// negative timeout yields 0, which leaves the library default in place.
func (c Config) TimeoutSeconds() int {
	if c.Timeout <= 0 {
		return 0
	}
	secs := int(c.Timeout / time.Second)
	if c.Timeout%time.Second != 0 {
		secs++
	}
	return secs
}

// String returns a description of the target without the password
func (c Config) String() string {
	s := c.Username + "@" + c.ServerAddress()
	if c.Database != "" {
		s += "/" + c.Database
	}
	return s
}
