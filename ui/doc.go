// Copyright (c) 2026 ToeiRei
// Cliffcrown - a greetd greeter
// This source code is licensed under the MIT license found in the LICENSE file.

// Package ui contains the user-facing surfaces of the greeter: the Cobra
// command line in ui/cli and the line-oriented fallback greeter in ui/plain.
// The full-screen UI lives in internal/tui.
package ui
