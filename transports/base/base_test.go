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
	"testing"
)

func TestModeString(t *testing.T) {
	cases := []struct {
		m    Mode
		want string
	}{
		{ModeSimpleClient, "client"},
		{ModeSocksClient, "socks"},
		{ModeSimpleServer, "server"},
	}
	for _, c := range cases {
		if got := c.m.String(); got != c.want {
			t.Fatalf("Mode(%d).String(): got %q, want %q", int(c.m), got, c.want)
		}
	}
}

func TestModeIsInitiator(t *testing.T) {
	if !ModeSimpleClient.IsInitiator() {
		t.Fatal("ModeSimpleClient.IsInitiator() = false, want true")
	}
	if !ModeSocksClient.IsInitiator() {
		t.Fatal("ModeSocksClient.IsInitiator() = false, want true")
	}
	if ModeSimpleServer.IsInitiator() {
		t.Fatal("ModeSimpleServer.IsInitiator() = true, want false")
	}
}

func TestParamsFree(t *testing.T) {
	p := &Params{SharedSecret: []byte("topsecret")}
	p.Free()
	if p.SharedSecret != nil {
		t.Fatal("Free() left SharedSecret non-nil")
	}

	// Safe to call twice.
	p.Free()
}

func TestRegisterDuplicatePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("Register() of a duplicate name did not panic")
		}
	}()
	Register(&Module{Name: "base-test-dup"})
	Register(&Module{Name: "base-test-dup"})
}

func TestRegisterEmptyNamePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("Register() with an empty name did not panic")
		}
	}()
	Register(&Module{Name: ""})
}

func TestCreateUnregisteredProtocol(t *testing.T) {
	_, _, err := Create("base-test-no-such-protocol", &Params{})
	if err != ErrNotRegistered {
		t.Fatalf("Create() of an unregistered protocol: got err=%v, want ErrNotRegistered", err)
	}
}

func TestDispatchMissingSendRecv(t *testing.T) {
	m := &Module{Name: "base-test-nosendrecv"}
	Register(m)

	if err := Send(m, nil, new(bytes.Buffer), new(bytes.Buffer)); err != ErrNoSend {
		t.Fatalf("Send() on a module with no Send: got err=%v, want ErrNoSend", err)
	}
	if _, err := Recv(m, nil, new(bytes.Buffer), new(bytes.Buffer)); err != ErrNoRecv {
		t.Fatalf("Recv() on a module with no Recv: got err=%v, want ErrNoRecv", err)
	}
	if err := Handshake(m, nil, new(bytes.Buffer)); err != nil {
		t.Fatalf("Handshake() on a module with no Handshake: got err=%v, want nil", err)
	}

	// Destroy must tolerate a nil Destroy field without panicking.
	Destroy(m, nil)
}

func TestNamesSorted(t *testing.T) {
	names := Names()
	for i := 1; i < len(names); i++ {
		if names[i-1] > names[i] {
			t.Fatalf("Names() not sorted: %v", names)
		}
	}
}

/* vim :set ts=4 sw=4 sts=4 noet : */
