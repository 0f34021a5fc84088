// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package analyze

import (
	"context"
	"unicode/utf8"

	sitter "github.com/smacker/go-tree-sitter"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/AleutianAI/hintcheck/services/checker/ast"
)

var tracer = otel.Tracer("hintcheck.analyze")

// selfParameter is never expected to carry an annotation: it is the implicit
// instance parameter by convention.
const selfParameter = "self"

// mainFunction is excluded from return-type findings: a top-level entry
// point's return type is conventionally unannotated.
const mainFunction = "main"

// invalidNamePlaceholder replaces names whose bytes are not valid UTF-8, so
// a single mangled identifier never aborts the run.
const invalidNamePlaceholder = "<invalid utf-8>"

// Options controls which findings the detector emits.
type Options struct {
	// IgnoreReturn suppresses missing-return findings; parameter findings
	// are unaffected.
	IgnoreReturn bool
}

// Detector locates missing type annotations in parsed Python trees.
//
// Description:
//
//	Detect performs one pre-order pass over the whole tree. Every
//	function_definition node is an independent candidate, so nested
//	functions, methods and decorated definitions are each reported in their
//	own right. Output order is document pre-order, with a function's
//	parameter findings always preceding its return finding.
//
// Thread Safety: Immutable after creation; safe for concurrent use.
type Detector struct {
	kinds *ast.KindSet
}

// NewDetector creates a Detector matching against the given grammar kinds.
func NewDetector(kinds *ast.KindSet) *Detector {
	return &Detector{kinds: kinds}
}

// DetectFile runs detection over a parsed file.
//
// Convenience wrapper around Detect using the file's own source and root.
func (d *Detector) DetectFile(ctx context.Context, file *ast.File, opts Options) ([]Finding, error) {
	return d.Detect(ctx, file.Source, file.Root(), opts)
}

// Detect walks the tree rooted at root and returns all findings.
//
// Inputs:
//   - ctx: Context for span correlation. Not used for cancellation; a single
//     file's walk is short.
//   - source: The raw bytes the tree's positions refer to.
//   - root: Root node of the parsed tree. Must not be nil.
//   - opts: Detection options.
//
// Outputs:
//   - []Finding: Findings in document pre-order. Empty (non-nil) when the
//     tree contains no annotation gaps.
//   - error: A *StructuralError wrapping ErrMalformedFunction if a function
//     node lacks an identifier child. The tree is never mutated.
//
// Guarantees:
//   - Single pass, linear in node count.
//   - Deterministic: identical bytes yield identical, order-stable findings.
//   - With IgnoreReturn set, the result is exactly the parameter findings of
//     the unrestricted run.
func (d *Detector) Detect(ctx context.Context, source []byte, root *sitter.Node, opts Options) ([]Finding, error) {
	_, span := tracer.Start(ctx, "analyze.Detect")
	defer span.End()

	findings := make([]Finding, 0)
	if err := d.walk(source, root, opts, &findings); err != nil {
		span.RecordError(err)
		return nil, err
	}

	span.SetAttributes(attribute.Int("findings", len(findings)))
	return findings, nil
}

// walk visits node and its children in pre-order.
func (d *Detector) walk(source []byte, node *sitter.Node, opts Options, findings *[]Finding) error {
	if node.Symbol() == d.kinds.FunctionDefinition {
		if err := d.checkFunction(source, node, opts, findings); err != nil {
			return err
		}
	}

	for i := 0; i < int(node.ChildCount()); i++ {
		if err := d.walk(source, node.Child(i), opts, findings); err != nil {
			return err
		}
	}
	return nil
}

// checkFunction emits the findings for one function_definition node.
//
// Parameter findings come first: they are discovered while scanning the
// function's children, before the missing-return decision is made.
func (d *Detector) checkFunction(source []byte, fn *sitter.Node, opts Options, findings *[]Finding) error {
	hasReturnType := false

	for i := 0; i < int(fn.ChildCount()); i++ {
		child := fn.Child(i)
		switch child.Symbol() {
		case d.kinds.Type:
			// A type node among the immediate children is the return
			// annotation; parameter annotations sit deeper, inside
			// typed_parameter nodes.
			hasReturnType = true
		case d.kinds.Parameters:
			d.checkParameters(source, child, findings)
		}
	}

	if hasReturnType || opts.IgnoreReturn {
		return nil
	}

	name, err := d.functionName(source, fn)
	if err != nil {
		return err
	}
	if name == mainFunction {
		return nil
	}

	start := fn.StartPoint()
	*findings = append(*findings, Finding{
		Kind: FindingMissingReturn,
		Name: name,
		Line: int(start.Row),
		Col:  int(start.Column),
	})
	return nil
}

// checkParameters scans a parameters node for unannotated parameters.
//
// Plain identifiers and default_parameter nodes carry no annotation;
// typed_parameter and typed_default_parameter are distinct kinds and are
// skipped implicitly.
func (d *Detector) checkParameters(source []byte, params *sitter.Node, findings *[]Finding) {
	for i := 0; i < int(params.ChildCount()); i++ {
		param := params.Child(i)

		sym := param.Symbol()
		if sym != d.kinds.Identifier && sym != d.kinds.DefaultParameter {
			continue
		}

		name := d.parameterName(source, param)
		if name == selfParameter {
			continue
		}

		start := param.StartPoint()
		*findings = append(*findings, Finding{
			Kind: FindingMissingParameter,
			Name: name,
			Line: int(start.Row),
			Col:  int(start.Column),
		})
	}
}

// parameterName returns the display name of an unannotated parameter node.
//
// For a plain identifier that is the node's own text; for a
// default_parameter it is the text of its name child.
func (d *Detector) parameterName(source []byte, param *sitter.Node) string {
	node := param
	if param.Symbol() == d.kinds.DefaultParameter {
		for i := 0; i < int(param.ChildCount()); i++ {
			if child := param.Child(i); child.Symbol() == d.kinds.Identifier {
				node = child
				break
			}
		}
	}
	return d.nodeText(source, node)
}

// functionName extracts the display name of a function_definition node.
//
// The name is the first immediate child whose kind is identifier. This is a
// structural rule rather than a positional one, so async and decorated
// grammar shapes that shift child positions resolve correctly.
func (d *Detector) functionName(source []byte, fn *sitter.Node) (string, error) {
	for i := 0; i < int(fn.ChildCount()); i++ {
		if child := fn.Child(i); child.Symbol() == d.kinds.Identifier {
			return d.nodeText(source, child), nil
		}
	}

	start := fn.StartPoint()
	return "", &StructuralError{
		Line: int(start.Row),
		Col:  int(start.Column),
		Err:  ErrMalformedFunction,
	}
}

// nodeText extracts a node's source text, substituting a placeholder when
// the bytes are not valid UTF-8.
func (d *Detector) nodeText(source []byte, node *sitter.Node) string {
	text := source[node.StartByte():node.EndByte()]
	if !utf8.Valid(text) {
		return invalidNamePlaceholder
	}
	return string(text)
}
