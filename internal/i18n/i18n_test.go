// Copyright (c) 2026 ToeiRei
// Cliffcrown - a greetd greeter
// This source code is licensed under the MIT license found in the LICENSE file.

package i18n

import (
	"testing"
)

func TestT_BasicAndFormatting(t *testing.T) {
	Init("en")
	if GetLang() != "en" {
		t.Fatalf("expected lang 'en', got %q", GetLang())
	}

	if got := T("greeter.username"); got != "Username:" {
		t.Fatalf("expected 'Username:', got %q", got)
	}

	// fmt-style formatting via trailing args
	got := T("greeter.auth_failed", "bad password")
	if got != "Login failed: bad password" {
		t.Fatalf("unexpected formatted translation: %q", got)
	}

	// switch language to German
	SetLang("de")
	if GetLang() != "de" {
		t.Fatalf("expected lang 'de', got %q", GetLang())
	}
	if got := T("greeter.username"); got != "Benutzername:" {
		t.Fatalf("expected German username prompt, got %q", got)
	}
}

func TestT_UnknownIDFallsBack(t *testing.T) {
	Init("en")
	if got := T("greeter.no_such_key"); got != "greeter.no_such_key" {
		t.Fatalf("expected ID fallback, got %q", got)
	}
}
