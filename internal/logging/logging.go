// Package logging provides structured logging setup for realty-site.
package logging

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/fluent/fluent-logger-golang/fluent"
	"github.com/lmittmann/tint"
)

// Options controls the default logger.
type Options struct {
	DevMode bool
	Level   slog.Level
	Writer  io.Writer // defaults to os.Stdout
	Fluent  *FluentOptions
}

// FluentOptions enables shipping records to Fluent Bit alongside stdout.
type FluentOptions struct {
	Host      string
	Port      int
	TagPrefix string
	Level     slog.Level
}

// Setup initializes the default slog logger.
// Dev mode uses colored text via tint; prod uses JSON. The returned
// function flushes and closes the Fluent connection, if any.
func Setup(opts Options) (func() error, error) {
	w := opts.Writer
	if w == nil {
		w = os.Stdout
	}
	level := opts.Level
	if opts.DevMode && level > slog.LevelDebug {
		level = slog.LevelDebug
	}
	handler := NewConsoleHandler(w, opts.DevMode, level)

	closeFn := func() error { return nil }
	if opts.Fluent != nil {
		if opts.Fluent.TagPrefix == "" {
			return nil, fmt.Errorf("fluent tag prefix is required")
		}
		client, err := fluent.New(fluent.Config{
			FluentHost: opts.Fluent.Host,
			FluentPort: opts.Fluent.Port,
			TagPrefix:  opts.Fluent.TagPrefix,
			Async:      true,
		})
		if err != nil {
			return nil, fmt.Errorf("creating fluent client: %w", err)
		}
		handler = Fanout(handler, NewFluentHandler(client, opts.Fluent.Level))
		closeFn = client.Close
	}

	slog.SetDefault(slog.New(handler))
	return closeFn, nil
}

// NewConsoleHandler returns the stdout handler for the given mode.
func NewConsoleHandler(w io.Writer, devMode bool, level slog.Level) slog.Handler {
	if devMode {
		return tint.NewHandler(w, &tint.Options{
			Level:      level,
			TimeFormat: time.DateTime,
		})
	}
	return slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
}

// fanoutHandler sends every record to each handler that accepts its level.
type fanoutHandler []slog.Handler

// Fanout combines handlers into one.
func Fanout(handlers ...slog.Handler) slog.Handler {
	return fanoutHandler(handlers)
}

func (f fanoutHandler) Enabled(ctx context.Context, l slog.Level) bool {
	for _, h := range f {
		if h.Enabled(ctx, l) {
			return true
		}
	}
	return false
}

func (f fanoutHandler) Handle(ctx context.Context, r slog.Record) error {
	var errs []error
	for _, h := range f {
		if h.Enabled(ctx, r.Level) {
			if err := h.Handle(ctx, r.Clone()); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}

func (f fanoutHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	out := make(fanoutHandler, len(f))
	for i, h := range f {
		out[i] = h.WithAttrs(attrs)
	}
	return out
}

func (f fanoutHandler) WithGroup(name string) slog.Handler {
	out := make(fanoutHandler, len(f))
	for i, h := range f {
		out[i] = h.WithGroup(name)
	}
	return out
}
