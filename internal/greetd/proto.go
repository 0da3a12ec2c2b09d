// Copyright (c) 2026 ToeiRei
// Cliffcrown - a greetd greeter
// This source code is licensed under the MIT license found in the LICENSE file.

// package greetd implements the client side of the greetd IPC protocol:
// length-prefixed JSON messages exchanged over the Unix socket that greetd
// advertises in the GREETD_SOCK environment variable.
package greetd

// Request type discriminators as they appear on the wire.
const (
	reqCreateSession    = "create_session"
	reqPostAuthResponse = "post_auth_message_response"
	reqStartSession     = "start_session"
	reqCancelSession    = "cancel_session"
)

// Response type discriminators as they appear on the wire.
const (
	respSuccess     = "success"
	respError       = "error"
	respAuthMessage = "auth_message"
)

// Error kinds carried by an "error" response.
const (
	errorKindGeneric = "error"
	errorKindAuth    = "auth_error"
)

// Auth message kinds carried by an "auth_message" response.
const (
	authMsgVisible = "visible"
	authMsgSecret  = "secret"
	authMsgInfo    = "info"
	authMsgError   = "error"
)

// greetd requires every field of a request to be present, including a null
// response, so none of these use omitempty.
type createSessionRequest struct {
	Type     string `json:"type"`
	Username string `json:"username"`
}

type postAuthResponseRequest struct {
	Type     string  `json:"type"`
	Response *string `json:"response"`
}

type startSessionRequest struct {
	Type string   `json:"type"`
	Cmd  []string `json:"cmd"`
	Env  []string `json:"env"`
}

type cancelSessionRequest struct {
	Type string `json:"type"`
}

// response is the union of every field greetd may send back. The Type
// discriminator decides which of the remaining fields are meaningful.
type response struct {
	Type            string `json:"type"`
	ErrorType       string `json:"error_type,omitempty"`
	Description     string `json:"description,omitempty"`
	AuthMessageType string `json:"auth_message_type,omitempty"`
	AuthMessage     string `json:"auth_message,omitempty"`
}

// AuthPromptKind classifies an authentication message from greetd.
type AuthPromptKind int

const (
	// PromptVisible asks for input that may be echoed (e.g. a username).
	PromptVisible AuthPromptKind = iota
	// PromptSecret asks for input that must not be echoed (e.g. a password).
	PromptSecret
	// PromptInfo is an informational note; it expects a null answer.
	PromptInfo
	// PromptError is an error note; it expects a null answer once the user
	// has acknowledged it.
	PromptError
)

// AuthPrompt is one step of the authentication conversation.
type AuthPrompt struct {
	Kind    AuthPromptKind
	Message string
}

// Secret reports whether the prompt asks for input that must stay hidden.
func (p AuthPrompt) Secret() bool { return p.Kind == PromptSecret }

// WantsInput reports whether the prompt expects a textual answer at all.
func (p AuthPrompt) WantsInput() bool {
	return p.Kind == PromptVisible || p.Kind == PromptSecret
}
