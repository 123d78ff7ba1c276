package spajsonpo

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"os/exec"
	"strings"
)

//go:generate mockgen -source=$GOFILE -package mock_spajsonpo -destination=test/mock/$GOFILE

// DefaultConverterPath is looked up in PATH when no converter is configured.
const DefaultConverterPath = "spa-json-dump"

// Converter turns one SPA-JSON input file into JSON text.
type Converter interface {
	Convert(ctx context.Context, path string) ([]byte, error)
}

// ConverterFunc adapts a function to the Converter interface.
type ConverterFunc func(ctx context.Context, path string) ([]byte, error)

func (f ConverterFunc) Convert(ctx context.Context, path string) ([]byte, error) {
	return f(ctx, path)
}

// ExecConverter runs an external dump utility as "<Path> <file>" and returns
// its standard output.
type ExecConverter struct {
	Path   string
	Logger *slog.Logger
}

func (c *ExecConverter) Convert(ctx context.Context, path string) ([]byte, error) {
	bin := c.Path
	if bin == "" {
		bin = DefaultConverterPath
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, bin, path)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		cerr := &ConversionError{
			File:      path,
			Converter: bin,
			ExitCode:  -1,
			Stderr:    strings.TrimSpace(stderr.String()),
			Err:       err,
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			cerr.ExitCode = exitErr.ExitCode()
		}
		return nil, cerr
	}

	if msg := strings.TrimSpace(stderr.String()); msg != "" {
		loggerOrDiscard(c.Logger).Warn("converter wrote to stderr", "file", path, "stderr", msg)
	}
	return stdout.Bytes(), nil
}

func loggerOrDiscard(l *slog.Logger) *slog.Logger {
	if l == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return l
}
