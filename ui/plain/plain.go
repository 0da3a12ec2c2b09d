// Copyright (c) 2026 ToeiRei
// Cliffcrown - a greetd greeter
// This source code is licensed under the MIT license found in the LICENSE file.

// package plain is the line-oriented fallback greeter, for serial consoles
// and other terminals where the full-screen UI is unwelcome. It mirrors the
// conversation flow of the TUI with plain prompts, reading secrets without
// echo via x/term.
package plain

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/toeirei/cliffcrown/internal/config"
	"github.com/toeirei/cliffcrown/internal/greetd"
	"github.com/toeirei/cliffcrown/internal/i18n"
	"github.com/toeirei/cliffcrown/internal/logging"
)

// conversation is the slice of greetd.Conversation this UI needs.
type conversation interface {
	Start(username string) (greetd.Event, error)
	Answer(answer *string) (greetd.Event, error)
	Cancel() error
	Launch(cmd, env []string) error
}

// prompter bundles the terminal IO so tests can script it.
type prompter struct {
	in         *bufio.Reader
	out        io.Writer
	readSecret func(prompt string) (string, error)
}

func (p *prompter) readLine(prompt string) (string, error) {
	fmt.Fprintf(p.out, "%s ", prompt)
	line, err := p.in.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// termSecret reads a password from the controlling terminal without echo.
func termSecret(out io.Writer) func(prompt string) (string, error) {
	return func(prompt string) (string, error) {
		fmt.Fprintf(out, "%s ", prompt)
		defer fmt.Fprintln(out)
		b, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err != nil {
			return "", err
		}
		return string(b), nil
	}
}

// Run connects to greetd and drives the conversation until a session
// starts. Authentication failures loop back to the username prompt.
func Run(cfg config.Config) error {
	client, err := greetd.Dial()
	if err != nil {
		return err
	}
	defer client.Close()

	p := &prompter{
		in:         bufio.NewReader(os.Stdin),
		out:        os.Stdout,
		readSecret: termSecret(os.Stdout),
	}
	return run(cfg, greetd.NewConversation(client), p)
}

func run(cfg config.Config, conv conversation, p *prompter) error {
	for {
		username := cfg.RestrictedUser
		if username == "" {
			var err error
			for username == "" {
				username, err = p.readLine(i18n.T("greeter.username"))
				if err != nil {
					return err
				}
				username = strings.TrimSpace(username)
			}
		}

		ev, err := conv.Start(username)
		if err != nil {
			return err
		}

		retry := false
		for !retry {
			switch ev.Kind {
			case greetd.EventPrompt:
				var answer *string
				switch ev.Prompt.Kind {
				case greetd.PromptVisible:
					line, err := p.readLine(ev.Prompt.Message)
					if err != nil {
						return err
					}
					answer = &line
				case greetd.PromptSecret:
					line, err := p.readSecret(ev.Prompt.Message)
					if err != nil {
						return err
					}
					answer = &line
				case greetd.PromptInfo:
					fmt.Fprintln(p.out, ev.Prompt.Message)
				case greetd.PromptError:
					fmt.Fprintln(p.out, ev.Prompt.Message)
					// Error notes wait for acknowledgement so they are not
					// scrolled away by the next prompt.
					if _, err := p.readLine(i18n.T("greeter.press_enter_continue")); err != nil {
						return err
					}
				}
				if ev, err = conv.Answer(answer); err != nil {
					return err
				}

			case greetd.EventFailure:
				if ev.Failure.Auth {
					logging.Infof("authentication failed for %s: %s", username, ev.Failure.Description)
				} else {
					logging.Errorf("greetd rejected the attempt for %s: %s", username, ev.Failure.Description)
				}
				fmt.Fprintln(p.out, i18n.T("greeter.auth_failed", ev.Failure.Description))
				fmt.Fprintln(p.out, i18n.T("plain.retry"))
				if err := conv.Cancel(); err != nil {
					return err
				}
				retry = true

			case greetd.EventSuccess:
				return conv.Launch(cfg.Command, nil)
			}
		}
	}
}
