// Package spajsonpo extracts translatable strings from SPA-JSON configuration
// files, via an external spa-json-dump converter, into gettext templates.
package spajsonpo

import (
	"context"
	"errors"
	"log/slog"
	"path/filepath"
)

// Extractor runs the converter over input files and collects the strings
// whose key paths match Patterns.
type Extractor struct {
	Converter Converter
	Patterns  []*KeyPattern
	Logger    *slog.Logger
}

// NewExtractor returns an Extractor. A nil converter runs spa-json-dump from
// PATH.
func NewExtractor(conv Converter, patterns []*KeyPattern, logger *slog.Logger) *Extractor {
	if conv == nil {
		conv = &ExecConverter{Path: DefaultConverterPath, Logger: logger}
	}
	return &Extractor{Converter: conv, Patterns: patterns, Logger: logger}
}

// ExtractFile converts and walks a single file. Occurrences carry the base
// name of path.
func (e *Extractor) ExtractFile(ctx context.Context, path string) (*Catalog, error) {
	out, err := e.Converter.Convert(ctx, path)
	if err != nil {
		return nil, err
	}
	root, err := ParseTree(out)
	if err != nil {
		var perr *ParseError
		if errors.As(err, &perr) && perr.File == "" {
			perr.File = path
		}
		return nil, err
	}

	c := Walk(root, "", e.Patterns, filepath.Base(path))
	loggerOrDiscard(e.Logger).Debug("extracted strings",
		"file", path,
		"root", root.Kind.String(),
		"entries", c.Len(),
		"occurrences", c.Count(),
	)
	return c, nil
}

// Extract processes paths in order and folds their catalogs into one. The
// first failing file aborts the run and no catalog is returned.
func (e *Extractor) Extract(ctx context.Context, paths []string) (*Catalog, error) {
	if len(paths) == 0 {
		return nil, ErrNoInput
	}
	acc := NewCatalog()
	for _, path := range paths {
		c, err := e.ExtractFile(ctx, path)
		if err != nil {
			return nil, err
		}
		acc.Merge(c)
	}
	loggerOrDiscard(e.Logger).Debug("extraction finished",
		"files", len(paths),
		"entries", acc.Len(),
		"occurrences", acc.Count(),
	)
	return acc, nil
}
