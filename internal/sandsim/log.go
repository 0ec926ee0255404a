package sandsim

import (
	"os"

	"github.com/rs/zerolog"
)

// newLogger returns the package's default structured logger: console-
// friendly output at info level, overridable by callers through
// SetLogger. The engine itself never configures global logging state
// beyond this default, leaving sink/level choices to the embedding
// command (cmd/sandsimctl, cmd/sandsimview).
func newLogger() zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(zerolog.InfoLevel).
		With().Timestamp().Str("component", "sandsim").Logger()
}

// SetLogger overrides the grid's logger, e.g. to route log lines through
// a host application's own zerolog logger.
func (g *Grid) SetLogger(l zerolog.Logger) {
	g.log = l
}
