// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package ast

import (
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
)

// Grammar node kind names the checker matches against.
//
// These are the symbolic names defined by tree-sitter-python. Matching is
// done on numeric symbols resolved from the loaded grammar at startup, never
// on hard-coded symbol IDs: IDs shift between grammar versions, names do not.
const (
	KindFunctionDefinition    = "function_definition"
	KindParameters            = "parameters"
	KindIdentifier            = "identifier"
	KindDefaultParameter      = "default_parameter"
	KindTypedParameter        = "typed_parameter"
	KindTypedDefaultParameter = "typed_default_parameter"
	KindType                  = "type"
)

// KindSet holds the resolved grammar symbols for every node kind the
// annotation checker needs.
//
// Description:
//
//	A KindSet is produced once per process by ResolveKinds and shared by all
//	parsers and detectors. Comparing node symbols against these values is a
//	single integer comparison, while resolution by name keeps the checker
//	robust across grammar upgrades.
//
// Thread Safety: Immutable after creation; safe for concurrent use.
type KindSet struct {
	FunctionDefinition    sitter.Symbol
	Parameters            sitter.Symbol
	Identifier            sitter.Symbol
	DefaultParameter      sitter.Symbol
	TypedParameter        sitter.Symbol
	TypedDefaultParameter sitter.Symbol
	Type                  sitter.Symbol
}

// ResolveKinds resolves the required node kinds against a loaded grammar.
//
// Inputs:
//   - lang: The tree-sitter language to resolve against. Must not be nil.
//
// Outputs:
//   - *KindSet: Resolved symbols, never nil on success.
//   - error: ErrKindNotFound (wrapped with the kind name) if the grammar does
//     not define one of the required kinds. This is fatal: a missing kind
//     means the grammar version is incompatible with the checker.
func ResolveKinds(lang *sitter.Language) (*KindSet, error) {
	ks := &KindSet{}

	for _, entry := range []struct {
		name string
		dst  *sitter.Symbol
	}{
		{KindFunctionDefinition, &ks.FunctionDefinition},
		{KindParameters, &ks.Parameters},
		{KindIdentifier, &ks.Identifier},
		{KindDefaultParameter, &ks.DefaultParameter},
		{KindTypedParameter, &ks.TypedParameter},
		{KindTypedDefaultParameter, &ks.TypedDefaultParameter},
		{KindType, &ks.Type},
	} {
		sym, err := resolveSymbol(lang, entry.name)
		if err != nil {
			return nil, err
		}
		*entry.dst = sym
	}

	return ks, nil
}

// resolveSymbol finds the named (non-anonymous) symbol with the given name.
func resolveSymbol(lang *sitter.Language, name string) (sitter.Symbol, error) {
	count := lang.SymbolCount()
	for i := uint32(0); i < count; i++ {
		sym := sitter.Symbol(i)
		if lang.SymbolType(sym) != sitter.SymbolTypeRegular {
			continue
		}
		if lang.SymbolName(sym) == name {
			return sym, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrKindNotFound, name)
}
