// Copyright (c) 2026 ToeiRei
// Cliffcrown - a greetd greeter
// This source code is licensed under the MIT license found in the LICENSE file.

package greetd

import (
	"errors"
	"fmt"
	"net"
	"os"
)

// SocketEnv is the environment variable greetd uses to hand its greeter the
// path of the IPC socket.
const SocketEnv = "GREETD_SOCK"

// ErrNoSocket is returned by Dial when GREETD_SOCK is unset. The usual cause
// is running the greeter outside of greetd.
var ErrNoSocket = errors.New("greetd: GREETD_SOCK not set; is greetd running?")

// Client performs raw request/response exchanges with greetd. Every request
// is answered with exactly one response; Client does not interpret it beyond
// decoding. Use Conversation for the session-level state machine.
type Client struct {
	conn net.Conn
}

// Dial connects to the socket named by GREETD_SOCK.
func Dial() (*Client, error) {
	path := os.Getenv(SocketEnv)
	if path == "" {
		return nil, ErrNoSocket
	}

	conn, err := net.Dial("unix", path)
	if err != nil {
		return nil, fmt.Errorf("greetd: connect to %s: %w", path, err)
	}
	return &Client{conn: conn}, nil
}

// NewClient wraps an existing connection. Used by tests to speak the
// protocol over an in-process pipe.
func NewClient(conn net.Conn) *Client {
	return &Client{conn: conn}
}

// Close closes the underlying connection.
func (c *Client) Close() error {
	return c.conn.Close()
}

// roundTrip writes one request and reads the matching response.
func (c *Client) roundTrip(req any) (response, error) {
	if err := writeMessage(c.conn, req); err != nil {
		return response{}, fmt.Errorf("greetd: write request: %w", err)
	}
	var resp response
	if err := readMessage(c.conn, &resp); err != nil {
		return response{}, fmt.Errorf("greetd: read response: %w", err)
	}
	return resp, nil
}

// CreateSession begins an authentication attempt for username.
func (c *Client) CreateSession(username string) (response, error) {
	return c.roundTrip(createSessionRequest{Type: reqCreateSession, Username: username})
}

// PostAuthResponse answers the pending auth message. A nil answer
// acknowledges info and error messages.
func (c *Client) PostAuthResponse(answer *string) (response, error) {
	return c.roundTrip(postAuthResponseRequest{Type: reqPostAuthResponse, Response: answer})
}

// StartSession asks greetd to run cmd once the session it authenticated is
// started. env entries are KEY=VALUE strings.
func (c *Client) StartSession(cmd, env []string) (response, error) {
	if env == nil {
		env = []string{}
	}
	return c.roundTrip(startSessionRequest{Type: reqStartSession, Cmd: cmd, Env: env})
}

// CancelSession aborts the current authentication attempt. The connection
// stays usable for a fresh CreateSession.
func (c *Client) CancelSession() (response, error) {
	return c.roundTrip(cancelSessionRequest{Type: reqCancelSession})
}
