// Copyright (c) 2026 ToeiRei
// Cliffcrown - a greetd greeter
// This source code is licensed under the MIT license found in the LICENSE file.

package greetd

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"errors"
	"testing"
)

// decodeWire strips the length prefix and returns the raw JSON document.
func decodeWire(t *testing.T, b []byte) map[string]any {
	t.Helper()
	if len(b) < 4 {
		t.Fatalf("message shorter than its prefix: %d bytes", len(b))
	}
	n := binary.NativeEndian.Uint32(b[:4])
	if int(n) != len(b)-4 {
		t.Fatalf("length prefix %d does not match payload length %d", n, len(b)-4)
	}
	var doc map[string]any
	if err := json.Unmarshal(b[4:], &doc); err != nil {
		t.Fatalf("payload is not valid JSON: %v", err)
	}
	return doc
}

func TestWriteMessageWireForm(t *testing.T) {
	answer := "hunter2"
	tests := []struct {
		name string
		req  any
		want map[string]any
	}{
		{
			name: "create_session",
			req:  createSessionRequest{Type: reqCreateSession, Username: "stacy"},
			want: map[string]any{"type": "create_session", "username": "stacy"},
		},
		{
			name: "post_auth_message_response with answer",
			req:  postAuthResponseRequest{Type: reqPostAuthResponse, Response: &answer},
			want: map[string]any{"type": "post_auth_message_response", "response": "hunter2"},
		},
		{
			name: "post_auth_message_response null",
			req:  postAuthResponseRequest{Type: reqPostAuthResponse},
			want: map[string]any{"type": "post_auth_message_response", "response": nil},
		},
		{
			name: "start_session",
			req:  startSessionRequest{Type: reqStartSession, Cmd: []string{"sway"}, Env: []string{}},
			want: map[string]any{"type": "start_session", "cmd": []any{"sway"}, "env": []any{}},
		},
		{
			name: "cancel_session",
			req:  cancelSessionRequest{Type: reqCancelSession},
			want: map[string]any{"type": "cancel_session"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := writeMessage(&buf, tt.req); err != nil {
				t.Fatalf("writeMessage: %v", err)
			}
			got := decodeWire(t, buf.Bytes())
			if len(got) != len(tt.want) {
				t.Fatalf("field count mismatch: got %v, want %v", got, tt.want)
			}
			for k, want := range tt.want {
				gotVal, ok := got[k]
				if !ok {
					t.Fatalf("missing field %q in %v", k, got)
				}
				switch w := want.(type) {
				case []any:
					g, ok := gotVal.([]any)
					if !ok || len(g) != len(w) {
						t.Fatalf("field %q: got %v, want %v", k, gotVal, want)
					}
					for i := range w {
						if g[i] != w[i] {
							t.Fatalf("field %q[%d]: got %v, want %v", k, i, g[i], w[i])
						}
					}
				default:
					if gotVal != want {
						t.Fatalf("field %q: got %v, want %v", k, gotVal, want)
					}
				}
			}
		})
	}
}

func TestReadMessageRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	in := response{Type: respAuthMessage, AuthMessageType: authMsgSecret, AuthMessage: "Password:"}
	if err := writeMessage(&buf, in); err != nil {
		t.Fatalf("writeMessage: %v", err)
	}

	var out response
	if err := readMessage(&buf, &out); err != nil {
		t.Fatalf("readMessage: %v", err)
	}
	if out != in {
		t.Fatalf("round trip mismatch: got %+v, want %+v", out, in)
	}
}

func TestReadMessageTruncated(t *testing.T) {
	var buf bytes.Buffer
	if err := writeMessage(&buf, cancelSessionRequest{Type: reqCancelSession}); err != nil {
		t.Fatalf("writeMessage: %v", err)
	}

	whole := buf.Bytes()
	for _, cut := range []int{1, 3, len(whole) - 2} {
		var out response
		err := readMessage(bytes.NewReader(whole[:cut]), &out)
		if !errors.Is(err, ErrShortFrame) {
			t.Fatalf("cut at %d: expected ErrShortFrame, got %v", cut, err)
		}
	}
}

func TestReadMessageOversized(t *testing.T) {
	var prefix [4]byte
	binary.NativeEndian.PutUint32(prefix[:], maxPayload+1)

	var out response
	err := readMessage(bytes.NewReader(prefix[:]), &out)
	if !errors.Is(err, ErrPayloadTooLarge) {
		t.Fatalf("expected ErrPayloadTooLarge, got %v", err)
	}
}
