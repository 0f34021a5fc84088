// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package ast wraps the tree-sitter Python parser behind the narrow surface
// the annotation checker consumes: parse a buffer, get back an immutable
// tree plus the resolved grammar kinds.
//
// Design notes:
//   - A fresh tree-sitter parser is created per Parse call, so a single
//     PythonParser is safe to share across worker goroutines.
//   - Node kinds are resolved by name from the loaded grammar at construction
//     time (see KindSet); no numeric grammar constants are hard-coded.
package ast

import (
	"context"
	"fmt"
	"log/slog"
	"time"
	"unicode/utf8"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"
)

const (
	// DefaultMaxFileSize is the largest source file Parse accepts (10MB).
	DefaultMaxFileSize = 10 * 1024 * 1024

	// WarnFileSize is the threshold above which Parse logs a warning (1MB).
	WarnFileSize = 1 * 1024 * 1024
)

// PythonParserOption configures a PythonParser instance.
type PythonParserOption func(*PythonParser)

// WithMaxFileSize sets the maximum file size the parser will accept.
func WithMaxFileSize(bytes int64) PythonParserOption {
	return func(p *PythonParser) {
		if bytes > 0 {
			p.maxFileSize = bytes
		}
	}
}

// PythonParser parses Python source into tree-sitter trees.
//
// Description:
//
//	PythonParser is the checker's syntax tree provider. Each Parse call
//	creates its own tree-sitter parser instance internally, so one
//	PythonParser instance serves the whole worker pool.
//
// Thread Safety:
//
//	Safe for concurrent use. Multiple goroutines may call Parse
//	simultaneously on the same PythonParser instance.
type PythonParser struct {
	maxFileSize int64
	lang        *sitter.Language
	kinds       *KindSet
}

// NewPythonParser creates a PythonParser and resolves the grammar kinds.
//
// Outputs:
//   - *PythonParser: Configured parser, never nil on success.
//   - error: ErrKindNotFound if the linked tree-sitter-python grammar does
//     not define a node kind the checker requires.
//
// Example:
//
//	parser, err := ast.NewPythonParser()
//	if err != nil {
//	    return err
//	}
//	file, err := parser.Parse(ctx, source, "app/models.py")
func NewPythonParser(opts ...PythonParserOption) (*PythonParser, error) {
	p := &PythonParser{
		maxFileSize: DefaultMaxFileSize,
		lang:        python.GetLanguage(),
	}

	for _, opt := range opts {
		opt(p)
	}

	kinds, err := ResolveKinds(p.lang)
	if err != nil {
		return nil, fmt.Errorf("resolve python grammar kinds: %w", err)
	}
	p.kinds = kinds

	return p, nil
}

// Kinds returns the grammar kinds resolved at construction time.
func (p *PythonParser) Kinds() *KindSet {
	return p.kinds
}

// Extensions returns the file extensions this parser handles.
func (p *PythonParser) Extensions() []string {
	return []string{".py"}
}

// File is the result of parsing one source file.
//
// The File owns the underlying tree-sitter tree and must be released with
// Close once the caller is done walking it.
type File struct {
	// Path is the path the content was read from (for diagnostics).
	Path string

	// Source is the raw bytes the tree positions refer to.
	Source []byte

	tree  *sitter.Tree
	kinds *KindSet
}

// Root returns the root node of the parsed tree.
func (f *File) Root() *sitter.Node {
	return f.tree.RootNode()
}

// Kinds returns the grammar kinds used to parse this file.
func (f *File) Kinds() *KindSet {
	return f.kinds
}

// HasSyntaxErrors reports whether the tree contains ERROR nodes.
//
// Tree-sitter is error tolerant: a file with syntax errors still yields a
// tree, and the checker still reports findings for the well-formed parts.
func (f *File) HasSyntaxErrors() bool {
	root := f.tree.RootNode()
	return root != nil && root.HasError()
}

// Close releases the underlying tree-sitter tree.
func (f *File) Close() {
	if f.tree != nil {
		f.tree.Close()
		f.tree = nil
	}
}

// Parse parses Python source into a File.
//
// Description:
//
//	Validates size and encoding, then parses with a per-call tree-sitter
//	parser instance. The parse is error tolerant; syntactically invalid code
//	still produces a tree (see File.HasSyntaxErrors).
//
// Inputs:
//   - ctx: Context for cancellation. Checked before and after parsing;
//     tree-sitter parsing itself cannot be interrupted mid-parse.
//   - content: Raw Python source bytes.
//   - filePath: Path for diagnostics. Not read from disk here.
//
// Outputs:
//   - *File: Parsed file, never nil on success. Caller must Close it.
//   - error: ErrFileTooLarge, ErrInvalidContent, ErrParseFailed, or a
//     context error.
//
// Thread Safety: Safe for concurrent use.
func (p *PythonParser) Parse(ctx context.Context, content []byte, filePath string) (*File, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parse canceled before start: %w", err)
	}

	start := time.Now()
	ctx, span := startParseSpan(ctx, filePath, len(content))
	defer span.End()

	if int64(len(content)) > p.maxFileSize {
		err := fmt.Errorf("%w: size %d exceeds limit %d", ErrFileTooLarge, len(content), p.maxFileSize)
		recordParse(ctx, span, start, err)
		return nil, err
	}

	if len(content) > WarnFileSize {
		slog.Warn("parsing large file",
			slog.String("file", filePath),
			slog.Int("size_bytes", len(content)))
	}

	if !utf8.Valid(content) {
		err := fmt.Errorf("%w: content is not valid UTF-8", ErrInvalidContent)
		recordParse(ctx, span, start, err)
		return nil, err
	}

	// New parser instance per call for thread safety.
	parser := sitter.NewParser()
	parser.SetLanguage(p.lang)

	tree, err := parser.ParseCtx(ctx, nil, content)
	if err != nil {
		err = fmt.Errorf("%w: %v", ErrParseFailed, err)
		recordParse(ctx, span, start, err)
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		tree.Close()
		return nil, fmt.Errorf("parse canceled after tree-sitter: %w", err)
	}

	if tree.RootNode() == nil {
		tree.Close()
		err := fmt.Errorf("%w: tree-sitter returned nil root node", ErrParseFailed)
		recordParse(ctx, span, start, err)
		return nil, err
	}

	recordParse(ctx, span, start, nil)

	return &File{
		Path:   filePath,
		Source: content,
		tree:   tree,
		kinds:  p.kinds,
	}, nil
}
