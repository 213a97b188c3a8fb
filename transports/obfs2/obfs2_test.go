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

package obfs2

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/yawning/obfs2/transports/base"
)

// newPair builds an initiator/responder session pair sharing secret.
func newPair(t *testing.T, secret []byte) (*Session, *Session) {
	t.Helper()

	initParams := &base.Params{Protocol: transportName, Mode: base.ModeSimpleClient, SharedSecret: secret}
	respParams := &base.Params{Protocol: transportName, Mode: base.ModeSimpleServer, SharedSecret: secret}

	initSess, err := newSession(initParams)
	if err != nil {
		t.Fatal("newSession(initiator) failed:", err)
	}
	respSess, err := newSession(respParams)
	if err != nil {
		t.Fatal("newSession(responder) failed:", err)
	}

	return initSess.(*Session), respSess.(*Session)
}

// handshakeAndDrain exchanges handshake messages between a and b until both
// reach phaseOpen, feeding each side's recv with the other's accumulated
// wire output.
func handshakeAndDrain(t *testing.T, a, b *Session) {
	t.Helper()

	var aOut, bOut bytes.Buffer
	if err := sendInitialMessage(a, &aOut); err != nil {
		t.Fatal("a handshake failed:", err)
	}
	if err := sendInitialMessage(b, &bOut); err != nil {
		t.Fatal("b handshake failed:", err)
	}

	var discard bytes.Buffer
	if _, err := recv(a, &bOut, &discard); err != nil {
		t.Fatal("a recv(handshake) failed:", err)
	}
	if _, err := recv(b, &aOut, &discard); err != nil {
		t.Fatal("b recv(handshake) failed:", err)
	}

	if a.phase != phaseOpen {
		t.Fatal("a did not reach phaseOpen")
	}
	if b.phase != phaseOpen {
		t.Fatal("b did not reach phaseOpen")
	}
}

// TestRoundTripNoSecret covers scenario S1: two peers with no shared secret
// complete the handshake and the initiator's "hello" reaches the responder
// intact.
func TestRoundTripNoSecret(t *testing.T) {
	a, b := newPair(t, nil)
	handshakeAndDrain(t, a, b)

	plaintext := []byte("hello")
	src := bytes.NewBuffer(append([]byte(nil), plaintext...))
	var wire, out bytes.Buffer

	if err := send(a, src, &wire); err != nil {
		t.Fatal("send failed:", err)
	}
	if _, err := recv(b, &wire, &out); err != nil {
		t.Fatal("recv failed:", err)
	}
	if !bytes.Equal(out.Bytes(), plaintext) {
		t.Fatalf("round trip mismatch: got %q, want %q", out.Bytes(), plaintext)
	}
}

// TestRoundTripSharedSecret covers scenario S2: a shared secret ("himitsu")
// known to both sides still allows a clean round trip.
func TestRoundTripSharedSecret(t *testing.T) {
	secret := []byte("himitsu")
	a, b := newPair(t, secret)
	handshakeAndDrain(t, a, b)

	plaintext := []byte("konnichiwa")
	src := bytes.NewBuffer(append([]byte(nil), plaintext...))
	var wire, out bytes.Buffer

	if err := send(a, src, &wire); err != nil {
		t.Fatal("send failed:", err)
	}
	if _, err := recv(b, &wire, &out); err != nil {
		t.Fatal("recv failed:", err)
	}
	if !bytes.Equal(out.Bytes(), plaintext) {
		t.Fatalf("round trip mismatch: got %q, want %q", out.Bytes(), plaintext)
	}
}

// TestWrongSharedSecretFails covers scenario S3: mismatched shared secrets
// between the two peers must cause the responder's handshake recv to fail
// with a bad-magic error, since the decrypted header won't be meaningful.
func TestWrongSharedSecretFails(t *testing.T) {
	a, err := newSession(&base.Params{Protocol: transportName, Mode: base.ModeSimpleClient, SharedSecret: []byte("correct horse")})
	if err != nil {
		t.Fatal("newSession(a) failed:", err)
	}
	b, err := newSession(&base.Params{Protocol: transportName, Mode: base.ModeSimpleServer, SharedSecret: []byte("battery staple")})
	if err != nil {
		t.Fatal("newSession(b) failed:", err)
	}
	aSess, bSess := a.(*Session), b.(*Session)

	var aOut bytes.Buffer
	if err := sendInitialMessage(aSess, &aOut); err != nil {
		t.Fatal("a handshake failed:", err)
	}

	var discard bytes.Buffer
	_, err = recv(bSess, &aOut, &discard)
	if err != ErrBadMagic {
		t.Fatalf("recv with mismatched secret: got err=%v, want ErrBadMagic", err)
	}
}

// TestTruncatedHandshakeNeedsMore covers scenario S4: handing recv a
// truncated handshake header must report the full seed-plus-header length
// it needs buffered, and must not mutate src or advance the session's phase.
func TestTruncatedHandshakeNeedsMore(t *testing.T) {
	a, b := newPair(t, nil)

	var aOut bytes.Buffer
	if err := sendInitialMessage(a, &aOut); err != nil {
		t.Fatal("handshake failed:", err)
	}

	full := aOut.Bytes()
	needed := seedLength + handshakeHeaderLength
	truncated := bytes.NewBuffer(append([]byte(nil), full[:needed-1]...))

	var discard bytes.Buffer
	n, err := recv(b, truncated, &discard)
	if err != nil {
		t.Fatal("recv on truncated header returned an error:", err)
	}
	if n != needed {
		t.Fatalf("recv need-more count: got %d, want %d", n, needed)
	}
	if truncated.Len() != needed-1 {
		t.Fatal("recv consumed bytes from src despite returning need-more")
	}
	if b.phase != phaseWaitForKey {
		t.Fatal("recv advanced phase despite an incomplete header")
	}
}

// TestOversizedPaddingRejected covers scenario S5: a PADLEN field above
// OBFUSCATE_MAX_PADDING is a protocol violation recv must reject outright.
// The handshake header is hand-built (rather than via sendInitialMessage,
// which always emits a legal PADLEN) using a's own padding key, so the
// ciphertext b receives decrypts to a well-formed MAGIC with a bad PADLEN.
func TestOversizedPaddingRejected(t *testing.T) {
	a, b := newPair(t, nil)

	hdr := make([]byte, handshakeHeaderLength)
	binary.BigEndian.PutUint32(hdr[0:4], magicValue)
	binary.BigEndian.PutUint32(hdr[4:8], maxPadding+1)
	a.sendPaddingCrypto.crypt(hdr)

	var wire bytes.Buffer
	wire.Write(a.initiatorSeed[:])
	wire.Write(hdr)

	var discard bytes.Buffer
	_, err := recv(b, &wire, &discard)
	if err != ErrPadTooLong {
		t.Fatalf("recv with oversized PADLEN: got err=%v, want ErrPadTooLong", err)
	}
}

// TestPendingDataOrdering covers scenario S6: data offered to send before
// the session key exists is queued rather than written to the wire; once
// send_crypto exists, the queued data flushes ahead of newly offered data,
// preserving order end to end.
func TestPendingDataOrdering(t *testing.T) {
	a, b := newPair(t, nil)

	var wire bytes.Buffer
	if err := send(a, bytes.NewBufferString("A"), &wire); err != nil {
		t.Fatal("pre-handshake send failed:", err)
	}
	if wire.Len() != 0 {
		t.Fatal("pre-handshake send wrote to the wire instead of queuing")
	}

	handshakeAndDrain(t, a, b)

	if err := send(a, bytes.NewBufferString("B"), &wire); err != nil {
		t.Fatal("post-handshake send failed:", err)
	}

	var out bytes.Buffer
	if _, err := recv(b, &wire, &out); err != nil {
		t.Fatal("recv failed:", err)
	}
	if out.String() != "AB" {
		t.Fatalf("pending data ordering: got %q, want %q", out.String(), "AB")
	}
}

// TestDestroyZeroesState covers property 8: Destroy must zero all seeds and
// drop every cipher and pending-data reference.
func TestDestroyZeroesState(t *testing.T) {
	a, b := newPair(t, []byte("secret"))
	handshakeAndDrain(t, a, b)

	if err := send(a, bytes.NewBufferString("leftover"), new(bytes.Buffer)); err != nil {
		t.Fatal("send failed:", err)
	}

	destroy(a)

	var zeroSeed [seedLength]byte
	if a.initiatorSeed != zeroSeed {
		t.Fatal("destroy left initiatorSeed non-zero")
	}
	if a.haveInitiatorSeed || a.haveResponderSeed || a.haveSecretSeed {
		t.Fatal("destroy left a have*Seed flag set")
	}
	if a.sendCrypto != nil || a.recvCrypto != nil || a.sendPaddingCrypto != nil || a.recvPaddingCrypto != nil {
		t.Fatal("destroy left a cipher reference behind")
	}
	if a.pendingDataToSend != nil {
		t.Fatal("destroy left pendingDataToSend behind")
	}
}

// TestModuleRegistered exercises the dispatcher end to end through the
// process-wide registry, in place of calling the package-private functions
// directly.
func TestModuleRegistered(t *testing.T) {
	if !base.IsSupported(transportName) {
		t.Fatal("obfs2 did not register itself")
	}

	clientParams := &base.Params{Protocol: transportName, Mode: base.ModeSimpleClient}
	serverParams := &base.Params{Protocol: transportName, Mode: base.ModeSimpleServer}

	cm, cs, err := base.Create(transportName, clientParams)
	if err != nil {
		t.Fatal("base.Create(client) failed:", err)
	}
	sm, ss, err := base.Create(transportName, serverParams)
	if err != nil {
		t.Fatal("base.Create(server) failed:", err)
	}

	var cOut, sOut bytes.Buffer
	if err := base.Handshake(cm, cs, &cOut); err != nil {
		t.Fatal("client handshake failed:", err)
	}
	if err := base.Handshake(sm, ss, &sOut); err != nil {
		t.Fatal("server handshake failed:", err)
	}

	var discard bytes.Buffer
	if _, err := base.Recv(cm, cs, &sOut, &discard); err != nil {
		t.Fatal("client recv(handshake) failed:", err)
	}
	if _, err := base.Recv(sm, ss, &cOut, &discard); err != nil {
		t.Fatal("server recv(handshake) failed:", err)
	}

	plaintext := []byte("wire up through base")
	var wire, out bytes.Buffer
	if err := base.Send(cm, cs, bytes.NewBuffer(append([]byte(nil), plaintext...)), &wire); err != nil {
		t.Fatal("base.Send failed:", err)
	}
	if _, err := base.Recv(sm, ss, &wire, &out); err != nil {
		t.Fatal("base.Recv failed:", err)
	}
	if !bytes.Equal(out.Bytes(), plaintext) {
		t.Fatalf("dispatcher round trip mismatch: got %q, want %q", out.Bytes(), plaintext)
	}

	base.Destroy(cm, cs)
	base.Destroy(sm, ss)
}

/* vim :set ts=4 sw=4 sts=4 noet : */
