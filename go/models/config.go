package models

import (
	"io"
)

// Config is built once by the command line layer and passed through the
// whole pipeline, so runs are deterministic against in-memory buffers.
type Config struct {
	Filter Filter

	// Base overrides the image's start address when ForceBase is set;
	// otherwise the lowest selected segment address is used.
	Base      uint64
	ForceBase bool

	AllowOverlaps bool
	RequireOutput bool

	Color   bool
	Verbose bool
	Output  io.Writer
}

// Out returns the diagnostic writer, which the CLI points at stderr.
func (c *Config) Out() io.Writer {
	if c.Output == nil {
		return io.Discard
	}
	return c.Output
}
