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

import "fmt"

// Mode is the listen mode a Params record was built for.
type Mode int

const (
	// ModeSimpleClient connects to a single, fixed destination and is the
	// initiator of the obfuscated handshake.
	ModeSimpleClient Mode = iota
	// ModeSocksClient accepts SOCKS connections and learns its destination
	// per-connection; it is also the handshake initiator.
	ModeSocksClient
	// ModeSimpleServer accepts obfuscated connections and relays them to a
	// single, fixed destination; it is the handshake responder.
	ModeSimpleServer
)

func (m Mode) String() string {
	switch m {
	case ModeSimpleClient:
		return "client"
	case ModeSocksClient:
		return "socks"
	case ModeSimpleServer:
		return "server"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// IsInitiator returns true iff sessions built under this mode initiate the
// handshake, i.e. every mode except ModeSimpleServer.
func (m Mode) IsInitiator() bool {
	return m != ModeSimpleServer
}

// Params is the parameter record built once per listener from the CLI, and
// shared by reference across every session it spawns.
type Params struct {
	// Protocol is the short name of the registered module this record
	// configures, e.g. "obfs2".
	Protocol string

	// Mode selects simple-client, socks-client, or simple-server behavior.
	Mode Mode

	// ListenAddr is the "host:port" this process should listen on.
	ListenAddr string

	// TargetAddr is the "host:port" this process should relay to. Required
	// except in ModeSocksClient, where it is forbidden: the SOCKS request
	// supplies the target per-connection instead.
	TargetAddr string

	// SharedSecret is an opaque, caller-chosen-length secret shared out of
	// band with the peer. Nil/empty means no shared secret is configured.
	SharedSecret []byte
}

// IsInitiator reports whether sessions built from this record initiate the
// handshake.
func (p *Params) IsInitiator() bool {
	return p.Mode.IsInitiator()
}

// Free zeroes the shared-secret bytes the record owns. Safe to call more
// than once.
func (p *Params) Free() {
	for i := range p.SharedSecret {
		p.SharedSecret[i] = 0
	}
	p.SharedSecret = nil
}

/* vim :set ts=4 sw=4 sts=4 noet : */
