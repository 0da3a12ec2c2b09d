// Copyright (c) 2026 ToeiRei
// Cliffcrown - a greetd greeter
// This source code is licensed under the MIT license found in the LICENSE file.

// main.go sets up the command-line interface for the greeter using the
// Cobra library. It defines the root command, its flags, and the config
// subcommand, and decides whether to start the full-screen or the plain UI.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/toeirei/cliffcrown/buildvars"
	"github.com/toeirei/cliffcrown/internal/config"
	"github.com/toeirei/cliffcrown/internal/i18n"
	"github.com/toeirei/cliffcrown/internal/logging"
	"github.com/toeirei/cliffcrown/internal/tui"
	"github.com/toeirei/cliffcrown/ui/plain"
)

var version = "dev" // set by the linker

// Execute runs the greeter CLI.
func Execute() error {
	return newRootCmd().Execute()
}

// newRootCmd creates and configures the root cobra command. All flag state
// lives on the command, so fresh instances are fully isolated.
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cliffcrown [flags] [-- command ...]",
		Short: "CliffCrown is a greeter for greetd.",
		Long: `CliffCrown authenticates a user against greetd and asks it to start a
session. Without flags it reads /etc/greetd/cliffcrown.toml, prompts for a
username and whatever greetd's auth stack asks for, and launches the
configured command once authorization succeeds.

Everything after "--" is used as the command to launch.`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			logFile, _ := cmd.Flags().GetString("log-file")
			debugMode, _ := cmd.Flags().GetBool("debug")
			if err := logging.Setup(logFile, debugMode); err != nil {
				// A greeter without a log file still has to greet.
				fmt.Fprintln(os.Stderr, err)
			}

			cfg, err := loadConfig(cmd, args)
			if err != nil {
				return err
			}
			i18n.Init(cfg.Lang)
			logging.Debugf("resolved config: user=%q bg=%q command=%v", cfg.RestrictedUser, cfg.Background, cfg.Command)

			plainMode, _ := cmd.Flags().GetBool("plain")
			if plainMode || !term.IsTerminal(int(os.Stdout.Fd())) {
				return plain.Run(cfg)
			}
			return tui.Run(cfg)
		},
	}

	cmd.Version = buildvars.VersionOrDefault(version)

	cmd.PersistentFlags().StringP("user", "u", "", "skip the user prompt and attempt login as this user")
	cmd.PersistentFlags().StringP("bg", "b", "", "path of the image to show behind the login prompt")
	cmd.PersistentFlags().StringP("config", "c", config.DefaultPath, "config file path")
	cmd.PersistentFlags().String("lang", "", `UI language ("en", "de")`)
	cmd.PersistentFlags().Bool("plain", false, "use the line-oriented UI instead of the full-screen one")
	cmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	cmd.PersistentFlags().String("log-file", "", "append logs to this file")

	cmd.AddCommand(newConfigCmd())

	return cmd
}

// loadConfig resolves the configuration for a command invocation, honoring
// the argv given after "--".
func loadConfig(cmd *cobra.Command, args []string) (config.Config, error) {
	command := args
	if at := cmd.ArgsLenAtDash(); at >= 0 {
		command = args[at:]
	}
	cfgFile, err := cmd.Flags().GetString("config")
	if err != nil {
		return config.Config{}, err
	}
	return config.Load(cmd, cfgFile, command)
}

// newConfigCmd prints the effective configuration after flags, environment
// and the config file have been merged. Handy when debugging a seat setup.
func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as TOML",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, args)
			if err != nil {
				return err
			}
			out, err := cfg.Dump()
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}
}
