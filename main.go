// Copyright (c) 2026 ToeiRei
// Cliffcrown - a greetd greeter
// This source code is licensed under the MIT license found in the LICENSE file.

// Command-line entrypoint for CliffCrown.
//
// Usage:
//
//	cliffcrown [flags] [-- command ...]
//
// greetd runs this binary as its greeter; see --help for options.
package main

import (
	"os"

	"github.com/toeirei/cliffcrown/internal/logging"
	"github.com/toeirei/cliffcrown/ui/cli"
)

// main is the entrypoint for the greeter.
func main() {
	if err := cli.Execute(); err != nil {
		logging.Errorf("greeter exited: %v", err)
		os.Exit(1)
	}
}
