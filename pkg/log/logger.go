package log

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/diode"
	"github.com/rs/zerolog/log"
)

// Format selects the output encoding of the process logger.
type Format string

const (
	FormatConsole Format = "console"
	FormatJSON    Format = "json"
)

// NewContextWithLogger installs the process logger and returns a context carrying it.
// The returned func flushes the ring buffer and must be called before exit.
func NewContextWithLogger(ctx context.Context, debug bool) (context.Context, func()) {
	return NewContextWithFormat(ctx, debug, FormatConsole, os.Stdout)
}

func NewContextWithFormat(ctx context.Context, debug bool, format Format, out io.Writer) (context.Context, func()) {
	zerolog.CallerMarshalFunc = func(pc uintptr, file string, line int) string {
		return ""
	}

	if debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	// Non-blocking ring buffer, 1000 entries, polled every 5ms
	wr := diode.NewWriter(out, 1000, 5*time.Millisecond, func(missed int) {
		fmt.Fprintf(os.Stderr, "Logger Dropped %d messages\n", missed)
	})

	var output io.Writer = wr
	if format != FormatJSON {
		output = zerolog.ConsoleWriter{
			Out:        wr,
			TimeFormat: time.DateTime,
			PartsOrder: []string{
				zerolog.LevelFieldName,
				zerolog.TimestampFieldName,
				zerolog.CallerFieldName,
				zerolog.MessageFieldName,
			},
		}
	}

	logger := zerolog.New(output).
		With().
		Timestamp().
		CallerWithSkipFrameCount(2).
		Logger()

	log.Logger = logger

	return log.With().Logger().WithContext(ctx), func() {
		wr.Close()
	}
}

// FromCtx returns the logger stored in ctx, or the global one.
func FromCtx(ctx context.Context) *zerolog.Logger {
	return log.Ctx(ctx)
}

// WithFields returns a child context whose logger carries the given string fields.
func WithFields(ctx context.Context, kv map[string]string) context.Context {
	lc := FromCtx(ctx).With()
	for k, v := range kv {
		lc = lc.Str(k, v)
	}
	l := lc.Logger()
	return l.WithContext(ctx)
}
