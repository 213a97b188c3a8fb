/*
 * Copyright (c) 2014, Yawning Angel <yawning at torproject dot org>
 * All rights reserved.
 *
 * Redistribution and use in source and binary forms, with or without
 * modification, are permitted provided that the following conditions are met:
 *
 *  * Redistributions of source code must retain the above copyright notice,
 *    this list of conditions and the following disclaimer.
 *
 *  * Redistributions in binary form must reproduce the above copyright notice,
 *    this list of conditions and the following disclaimer in the documentation
 *    and/or other materials provided with the distribution.
 *
 * THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS "AS IS"
 * AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT LIMITED TO, THE
 * IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR A PARTICULAR PURPOSE
 * ARE DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT HOLDER OR CONTRIBUTORS BE
 * LIABLE FOR ANY DIRECT, INDIRECT, INCIDENTAL, SPECIAL, EXEMPLARY, OR
 * CONSEQUENTIAL DAMAGES (INCLUDING, BUT NOT LIMITED TO, PROCUREMENT OF
 * SUBSTITUTE GOODS OR SERVICES; LOSS OF USE, DATA, OR PROFITS; OR BUSINESS
 * INTERRUPTION) HOWEVER CAUSED AND ON ANY THEORY OF LIABILITY, WHETHER IN
 * CONTRACT, STRICT LIABILITY, OR TORT (INCLUDING NEGLIGENCE OR OTHERWISE)
 * ARISING IN ANY WAY OUT OF THE USE OF THIS SOFTWARE, EVEN IF ADVISED OF THE
 * POSSIBILITY OF SUCH DAMAGE.
 */

package base

import (
	"bytes"
	"errors"
)

// ErrNotRegistered is returned by Create when no module is registered
// under the requested name.
var ErrNotRegistered = errors.New("base: protocol not registered")

// ErrNoSend is returned by Send when the active module supplies no Send
// operation.
var ErrNoSend = errors.New("base: module does not implement Send")

// ErrNoRecv is returned by Recv when the active module supplies no Recv
// operation.
var ErrNoRecv = errors.New("base: module does not implement Recv")

// Create looks up name in the registry and constructs a fresh session from
// params. The dispatcher holds no per-session state of its own; all mutable
// state lives in the returned Session.
func Create(name string, params *Params) (*Module, Session, error) {
	m := Lookup(name)
	if m == nil {
		return nil, nil, ErrNotRegistered
	}
	if m.New == nil {
		return m, nil, nil
	}

	s, err := m.New(params)
	if err != nil {
		return m, nil, err
	}
	return m, s, nil
}

// Handshake appends m's initial handshake message for s to out. A module
// with no Handshake operation leaves out unchanged and returns nil: it is
// fine with us, the protocol just doesn't have a handshake. Callers must
// invoke this at most once per session, immediately after Create and
// before any Send.
func Handshake(m *Module, s Session, out *bytes.Buffer) error {
	if m.Handshake == nil {
		return nil
	}
	return m.Handshake(s, out)
}

// Send transforms user bytes from src into wire bytes appended to dst.
func Send(m *Module, s Session, src, dst *bytes.Buffer) error {
	if m.Send == nil {
		return ErrNoSend
	}
	return m.Send(s, src, dst)
}

// Recv transforms wire bytes from src into user bytes appended to dst. A
// nil error with a positive int return means "need at least that many more
// bytes before calling again"; it is a flow-control signal, not an error.
func Recv(m *Module, s Session, src, dst *bytes.Buffer) (int, error) {
	if m.Recv == nil {
		return 0, ErrNoRecv
	}
	return m.Recv(s, src, dst)
}

// Destroy releases m's session resources and zeroes its key material. Safe
// to call on modules with no Destroy operation.
func Destroy(m *Module, s Session) {
	if m.Destroy != nil {
		m.Destroy(s)
	}
}

/* vim :set ts=4 sw=4 sts=4 noet : */
