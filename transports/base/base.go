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

// Package base defines the pluggable-protocol contract every obfuscation
// module satisfies, the process-wide registry modules register themselves
// into, and the dispatcher that routes framework calls to the active
// module without ever inspecting its state.
package base

import "bytes"

// Session is the opaque, module-private per-connection state a Module's
// New constructs. The dispatcher and registry never look inside it; only
// the module that created it knows its concrete type.
type Session interface{}

// Module is a protocol descriptor: an immutable, process-wide vtable a
// protocol implementation fills in and registers once at init time. Any
// field except New may be nil; a nil Send or Recv is a hard error at use
// time (see the package-level Send/Recv), a nil Handshake is a no-op, and a nil
// Destroy is tolerated.
type Module struct {
	// Name is the short, unique identifier CLI mode selection uses.
	Name string

	// New constructs a fresh Session from params. Returns a nil Session and
	// an error on failure (allocation, entropy exhaustion, ...).
	New func(params *Params) (Session, error)

	// Handshake appends the module's initial handshake message, if it has
	// one, to out. Must be called at most once per session, immediately
	// after New and before any Send.
	Handshake func(s Session, out *bytes.Buffer) error

	// Send transforms user bytes (consumed from src) into wire bytes
	// (appended to dst).
	Send func(s Session, src, dst *bytes.Buffer) error

	// Recv transforms wire bytes (consumed from src) into user bytes
	// (appended to dst). The returned int is only meaningful when err is
	// nil and is non-zero: it means "call me again only once at least that
	// many more bytes are available." It is a flow-control signal, not an
	// error.
	Recv func(s Session, src, dst *bytes.Buffer) (int, error)

	// Destroy releases a session's resources and zeroes its key material.
	// Tolerated to be nil.
	Destroy func(s Session)
}

/* vim :set ts=4 sw=4 sts=4 noet : */
