// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"errors"
	"fmt"
	"os"
)

// version is set via -ldflags at release build time.
var version = "dev"

func main() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errFilesFailed) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}
