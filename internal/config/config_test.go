// Copyright (c) 2026 ToeiRei
// Cliffcrown - a greetd greeter
// This source code is licensed under the MIT license found in the LICENSE file.

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
)

// testCmd builds a command carrying the greeter's flag surface, optionally
// pre-set as if the user passed the given flags.
func testCmd(t *testing.T, flags map[string]string) *cobra.Command {
	t.Helper()
	cmd := &cobra.Command{Use: "cliffcrown", Run: func(*cobra.Command, []string) {}}
	cmd.Flags().StringP("user", "u", "", "")
	cmd.Flags().StringP("bg", "b", "", "")
	cmd.Flags().String("lang", "", "")
	for name, value := range flags {
		if err := cmd.Flags().Set(name, value); err != nil {
			t.Fatalf("set flag %s: %v", name, err)
		}
	}
	return cmd
}

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cliffcrown.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write temp config: %v", err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(testCmd(t, nil), filepath.Join(t.TempDir(), "missing.toml"), nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.RestrictedUser != "" || cfg.Background != "" {
		t.Fatalf("expected empty user/background, got %+v", cfg)
	}
	if len(cfg.Command) != 1 || cfg.Command[0] != "bash" {
		t.Fatalf("expected default command [bash], got %v", cfg.Command)
	}
	if cfg.Lang != "en" {
		t.Fatalf("expected default lang en, got %q", cfg.Lang)
	}
}

func TestLoadFromFile(t *testing.T) {
	path := writeTempConfig(t, `
restricted_user = "kiosk"
background = "/usr/share/wallpapers/cliff.png"
command = ["sway"]
lang = "de"
`)
	cfg, err := Load(testCmd(t, nil), path, nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.RestrictedUser != "kiosk" {
		t.Fatalf("restricted_user: got %q", cfg.RestrictedUser)
	}
	if cfg.Background != "/usr/share/wallpapers/cliff.png" {
		t.Fatalf("background: got %q", cfg.Background)
	}
	if len(cfg.Command) != 1 || cfg.Command[0] != "sway" {
		t.Fatalf("command: got %v", cfg.Command)
	}
	if cfg.Lang != "de" {
		t.Fatalf("lang: got %q", cfg.Lang)
	}
}

func TestFlagsBeatFile(t *testing.T) {
	path := writeTempConfig(t, `
restricted_user = "kiosk"
background = "/from/file.png"
`)
	cfg, err := Load(testCmd(t, map[string]string{"user": "stacy", "bg": "/from/flag.png"}), path, nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.RestrictedUser != "stacy" {
		t.Fatalf("expected flag to win, got %q", cfg.RestrictedUser)
	}
	if cfg.Background != "/from/flag.png" {
		t.Fatalf("expected flag to win, got %q", cfg.Background)
	}
}

func TestEnvBeatsFile(t *testing.T) {
	path := writeTempConfig(t, `background = "/from/file.png"`)
	t.Setenv("CLIFFCROWN_BACKGROUND", "/from/env.png")

	cfg, err := Load(testCmd(t, nil), path, nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Background != "/from/env.png" {
		t.Fatalf("expected env to win, got %q", cfg.Background)
	}
}

func TestFlagBeatsEnvAndFile(t *testing.T) {
	path := writeTempConfig(t, `background = "/from/file.png"`)
	t.Setenv("CLIFFCROWN_BACKGROUND", "/from/env.png")

	cfg, err := Load(testCmd(t, map[string]string{"bg": "/from/flag.png"}), path, nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Background != "/from/flag.png" {
		t.Fatalf("expected flag to beat env and file, got %q", cfg.Background)
	}
}

func TestEnvAloneSetsKey(t *testing.T) {
	t.Setenv("CLIFFCROWN_RESTRICTED_USER", "kiosk")

	cfg, err := Load(testCmd(t, nil), filepath.Join(t.TempDir(), "missing.toml"), nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.RestrictedUser != "kiosk" {
		t.Fatalf("expected env var to set restricted_user, got %q", cfg.RestrictedUser)
	}
}

func TestTrailingCommandBeatsEverything(t *testing.T) {
	path := writeTempConfig(t, `command = ["sway"]`)
	cfg, err := Load(testCmd(t, nil), path, []string{"river", "-c", "/dev/null"})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := []string{"river", "-c", "/dev/null"}
	if len(cfg.Command) != len(want) {
		t.Fatalf("command: got %v, want %v", cfg.Command, want)
	}
	for i := range want {
		if cfg.Command[i] != want[i] {
			t.Fatalf("command[%d]: got %q, want %q", i, cfg.Command[i], want[i])
		}
	}
}

func TestMalformedFileFallsBackToDefaults(t *testing.T) {
	path := writeTempConfig(t, `this is not toml = = =`)
	cfg, err := Load(testCmd(t, nil), path, nil)
	if err != nil {
		t.Fatalf("Load should tolerate a broken file, got %v", err)
	}
	if len(cfg.Command) != 1 || cfg.Command[0] != "bash" {
		t.Fatalf("expected defaults after broken file, got %v", cfg.Command)
	}
}

func TestDumpRendersToml(t *testing.T) {
	cfg := Config{RestrictedUser: "kiosk", Command: []string{"sway"}, Lang: "en"}
	out, err := cfg.Dump()
	if err != nil {
		t.Fatalf("Dump: %v", err)
	}
	for _, want := range []string{`restricted_user = "kiosk"`, `command = ["sway"]`, `lang = "en"`} {
		if !strings.Contains(out, want) {
			t.Fatalf("dump missing %q:\n%s", want, out)
		}
	}
}
