// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package ast

import "errors"

// Sentinel errors for the ast package.
var (
	// ErrFileTooLarge indicates the source exceeds the configured size limit.
	ErrFileTooLarge = errors.New("file too large")

	// ErrInvalidContent indicates the source is not valid UTF-8.
	ErrInvalidContent = errors.New("invalid content")

	// ErrParseFailed indicates tree-sitter could not produce a tree.
	ErrParseFailed = errors.New("parse failed")

	// ErrKindNotFound indicates the loaded grammar does not expose a node
	// kind this checker depends on. This means the grammar version is
	// incompatible and the process should not continue.
	ErrKindNotFound = errors.New("node kind not found in grammar")
)
