// Copyright (c) 2026 ToeiRei
// Cliffcrown - a greetd greeter
// This source code is licensed under the MIT license found in the LICENSE file.
//
// Package cli implements the command-line interface for the greeter using
// Cobra. It resolves flags and configuration, then hands off to the
// full-screen UI or, for dumb terminals, the plain one. CLI code stays thin
// and delegates the actual greeting to the ui and internal packages.
package cli
