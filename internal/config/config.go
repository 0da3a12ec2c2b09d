// Copyright (c) 2026 ToeiRei
// Cliffcrown - a greetd greeter
// This source code is licensed under the MIT license found in the LICENSE file.

// package config resolves the greeter configuration from, in order of
// precedence: command-line flags, CLIFFCROWN_* environment variables, the
// TOML config file, and built-in defaults. A broken or missing config file
// is never fatal: the greeter is the only way into the seat, so it starts
// with defaults and logs the problem instead.
package config

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/toeirei/cliffcrown/internal/logging"
)

// DefaultPath is where the config file lives unless -c overrides it.
const DefaultPath = "/etc/greetd/cliffcrown.toml"

// DefaultCommand is launched when neither the config file nor the command
// line names one.
var DefaultCommand = []string{"bash"}

// Config is the resolved greeter configuration.
type Config struct {
	// RestrictedUser, when set, skips the username prompt and only ever
	// attempts to log in as this user.
	RestrictedUser string `mapstructure:"restricted_user" toml:"restricted_user,omitempty"`
	// Background is the path of the image drawn behind the login prompt.
	Background string `mapstructure:"background" toml:"background,omitempty"`
	// Command is the argv greetd runs once authorization succeeds.
	Command []string `mapstructure:"command" toml:"command"`
	// Lang selects the UI language.
	Lang string `mapstructure:"lang" toml:"lang"`
}

// Load resolves the configuration. path is the config file to read;
// command, when non-empty, is the argv given after "--" on the command line
// and wins over everything else.
func Load(cmd *cobra.Command, path string, command []string) (Config, error) {
	v := viper.New()

	v.SetDefault("command", DefaultCommand)
	v.SetDefault("lang", "en")

	v.SetConfigFile(path)
	v.SetConfigType("toml")
	if err := v.ReadInConfig(); err != nil {
		// Keep going with defaults; a greeter that refuses to start over a
		// typo in its config locks the seat.
		logging.Warnf("config file %s unusable: %v", path, err)
	}

	v.SetEnvPrefix("CLIFFCROWN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := bindFlags(v, cmd); err != nil {
		return Config{}, err
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}

	if len(command) > 0 {
		c.Command = command
	}
	if len(c.Command) == 0 {
		c.Command = DefaultCommand
	}
	return c, nil
}

// bindFlags maps the CLI surface onto config keys. Flags the user did not
// set fall through to env/file/default via viper's precedence rules.
func bindFlags(v *viper.Viper, cmd *cobra.Command) error {
	if cmd == nil {
		return nil
	}
	bindings := map[string]string{
		"restricted_user": "user",
		"background":      "bg",
		"lang":            "lang",
	}
	for key, flag := range bindings {
		f := cmd.Flags().Lookup(flag)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("config: bind --%s: %w", flag, err)
		}
	}
	return nil
}

// Dump renders the effective configuration as TOML, the same dialect the
// config file uses.
func (c Config) Dump() (string, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return "", fmt.Errorf("config: encode: %w", err)
	}
	return buf.String(), nil
}
