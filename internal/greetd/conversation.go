// Copyright (c) 2026 ToeiRei
// Cliffcrown - a greetd greeter
// This source code is licensed under the MIT license found in the LICENSE file.

package greetd

import (
	"errors"
	"fmt"
)

// EventKind classifies what greetd wants next.
type EventKind int

const (
	// EventPrompt means greetd sent an auth message; answer it with Answer.
	EventPrompt EventKind = iota
	// EventSuccess means authentication finished; follow up with Launch.
	EventSuccess
	// EventFailure means greetd rejected the attempt. The session is dead;
	// Cancel it before starting over.
	EventFailure
)

// Event is the greeter-facing interpretation of one greetd response.
type Event struct {
	Kind    EventKind
	Prompt  AuthPrompt // set when Kind == EventPrompt
	Failure Failure    // set when Kind == EventFailure
}

// Failure describes an "error" response from greetd.
type Failure struct {
	// Auth is true for auth_error (bad credentials and friends) and false
	// for greetd's generic error kind.
	Auth        bool
	Description string
}

func (f Failure) String() string {
	kind := errorKindGeneric
	if f.Auth {
		kind = errorKindAuth
	}
	return fmt.Sprintf("%s: %s", kind, f.Description)
}

// ErrUnexpectedMessage is returned when greetd sends a response the protocol
// does not allow at that point, or one this client does not know.
var ErrUnexpectedMessage = errors.New("greetd: unexpected message from daemon")

// ErrSessionNotStarted is returned by Launch when authentication has not
// succeeded yet.
var ErrSessionNotStarted = errors.New("greetd: no authenticated session to start")

// Conversation drives the session-level state machine over a Client:
// Start begins an attempt, Answer feeds prompt responses, Cancel aborts,
// and Launch starts the session after EventSuccess.
type Conversation struct {
	client        *Client
	authenticated bool
}

// NewConversation wraps client in a fresh conversation.
func NewConversation(client *Client) *Conversation {
	return &Conversation{client: client}
}

// Start begins an authentication attempt for username.
func (s *Conversation) Start(username string) (Event, error) {
	s.authenticated = false
	resp, err := s.client.CreateSession(username)
	if err != nil {
		return Event{}, err
	}
	return s.interpret(resp)
}

// Answer replies to the most recent prompt. Pass nil to acknowledge info and
// error notes.
func (s *Conversation) Answer(answer *string) (Event, error) {
	resp, err := s.client.PostAuthResponse(answer)
	if err != nil {
		return Event{}, err
	}
	return s.interpret(resp)
}

// Cancel aborts the current attempt so a new Start can follow.
func (s *Conversation) Cancel() error {
	s.authenticated = false
	resp, err := s.client.CancelSession()
	if err != nil {
		return err
	}
	if resp.Type != respSuccess {
		return fmt.Errorf("%w: cancel answered with %q", ErrUnexpectedMessage, resp.Type)
	}
	return nil
}

// Launch asks greetd to start the session with cmd and waits for the
// confirmation. Valid only after an EventSuccess.
func (s *Conversation) Launch(cmd, env []string) error {
	if !s.authenticated {
		return ErrSessionNotStarted
	}
	resp, err := s.client.StartSession(cmd, env)
	if err != nil {
		return err
	}
	switch resp.Type {
	case respSuccess:
		return nil
	case respError:
		return fmt.Errorf("greetd: start session: %s", resp.Description)
	default:
		return fmt.Errorf("%w: start_session answered with %q", ErrUnexpectedMessage, resp.Type)
	}
}

// interpret turns a raw response into an Event.
func (s *Conversation) interpret(resp response) (Event, error) {
	switch resp.Type {
	case respSuccess:
		s.authenticated = true
		return Event{Kind: EventSuccess}, nil

	case respError:
		return Event{
			Kind: EventFailure,
			Failure: Failure{
				Auth:        resp.ErrorType == errorKindAuth,
				Description: resp.Description,
			},
		}, nil

	case respAuthMessage:
		var kind AuthPromptKind
		switch resp.AuthMessageType {
		case authMsgVisible:
			kind = PromptVisible
		case authMsgSecret:
			kind = PromptSecret
		case authMsgInfo:
			kind = PromptInfo
		case authMsgError:
			kind = PromptError
		default:
			return Event{}, fmt.Errorf("%w: auth message kind %q", ErrUnexpectedMessage, resp.AuthMessageType)
		}
		return Event{
			Kind:   EventPrompt,
			Prompt: AuthPrompt{Kind: kind, Message: resp.AuthMessage},
		}, nil

	default:
		return Event{}, fmt.Errorf("%w: response type %q", ErrUnexpectedMessage, resp.Type)
	}
}
