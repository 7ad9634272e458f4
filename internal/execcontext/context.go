// Package execcontext carries the context and output streams of one CLI
// invocation.
package execcontext

import (
	"context"
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// RunContext bundles a command's context with its stdout and stderr. It
// writes to stdout, so it can be handed to anything taking an io.Writer.
type RunContext struct {
	Context context.Context
	StdOut  io.Writer
	StdErr  io.Writer
}

func (rc RunContext) Write(p []byte) (n int, err error) {
	return rc.StdOut.Write(p)
}

// Printf writes to stdout.
func (rc RunContext) Printf(format string, v ...any) {
	fmt.Fprintf(rc.StdOut, format, v...)
}

// Logger returns the logger attached to the context, or the global one.
func (rc RunContext) Logger() *zerolog.Logger {
	if rc.Context != nil {
		if l := zerolog.Ctx(rc.Context); l.GetLevel() != zerolog.Disabled {
			return l
		}
	}
	return &log.Logger
}
