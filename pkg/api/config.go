package api

import "time"

// Config holds HTTP server configuration
type Config struct {
	// Host is the address to bind the server to
	Host string `json:"host" yaml:"host"`

	// Port is the first port to try binding
	Port int `json:"port" yaml:"port"`

	// LastPort is the upper bound of the bind retry range (inclusive).
	// Equal to Port means a single port is tried.
	LastPort int `json:"last_port" yaml:"last_port"`

	// ReadTimeout is the maximum duration for reading the entire request
	ReadTimeout time.Duration `json:"read_timeout" yaml:"read_timeout"`

	// WriteTimeout is the maximum duration before timing out writes
	WriteTimeout time.Duration `json:"write_timeout" yaml:"write_timeout"`

	// IdleTimeout is the maximum amount of time to wait for the next request
	IdleTimeout time.Duration `json:"idle_timeout" yaml:"idle_timeout"`

	// LogLevel sets the log level for the server (debug, info, warn, error)
	LogLevel string `json:"log_level" yaml:"log_level"`
}

// DefaultConfig returns the default server configuration: a single port on
// the loopback interface.
func DefaultConfig() *Config {
	return &Config{
		Host:         "127.0.0.1",
		Port:         3003,
		LastPort:     3003,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
		LogLevel:     "info",
	}
}
