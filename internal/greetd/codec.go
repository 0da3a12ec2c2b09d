// Copyright (c) 2026 ToeiRei
// Cliffcrown - a greetd greeter
// This source code is licensed under the MIT license found in the LICENSE file.

package greetd

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// maxPayload caps the size of a single IPC message. greetd messages are a
// few hundred bytes at most; anything larger means we lost framing.
const maxPayload = 1 << 20

var (
	// ErrShortFrame is returned when the peer closes the connection in the
	// middle of a message.
	ErrShortFrame = errors.New("greetd: truncated message")
	// ErrPayloadTooLarge is returned when a length prefix exceeds maxPayload.
	ErrPayloadTooLarge = errors.New("greetd: message exceeds size limit")
)

// writeMessage marshals v and writes it with the protocol's 4-byte
// native-endian length prefix.
func writeMessage(w io.Writer, v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("greetd: encode message: %w", err)
	}
	if len(payload) > maxPayload {
		return ErrPayloadTooLarge
	}

	var prefix [4]byte
	binary.NativeEndian.PutUint32(prefix[:], uint32(len(payload)))
	if _, err := w.Write(prefix[:]); err != nil {
		return err
	}
	_, err = w.Write(payload)
	return err
}

// readMessage reads one length-prefixed message and unmarshals it into v.
func readMessage(r io.Reader, v any) error {
	var prefix [4]byte
	if _, err := io.ReadFull(r, prefix[:]); err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) {
			return ErrShortFrame
		}
		return err
	}

	n := binary.NativeEndian.Uint32(prefix[:])
	if n > maxPayload {
		return ErrPayloadTooLarge
	}

	payload := make([]byte, n)
	if _, err := io.ReadFull(r, payload); err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
			return ErrShortFrame
		}
		return err
	}

	if err := json.Unmarshal(payload, v); err != nil {
		return fmt.Errorf("greetd: decode message: %w", err)
	}
	return nil
}
