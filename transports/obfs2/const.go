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

// Package obfs2 implements the obfs2 protocol: a two-party, keyed,
// IV-stream-cipher-based tunnel with padding-based anti-fingerprinting.
//
// obfs2 is a lightweight obfuscator, not a secure channel: it provides none
// of forward secrecy, authentication, or replay protection.
package obfs2

const (
	// transportName is the short name this module registers under.
	transportName = "obfs2"

	// seedLength is OBFUSCATE_SEED_LENGTH: the per-side seed length.
	seedLength = 16

	// sharedSecretLength is SHARED_SECRET_LENGTH: the truncated
	// shared-secret digest length.
	sharedSecretLength = 16

	// sha256Length is SHA256_LENGTH.
	sha256Length = 32

	// magicValue is OBFUSCATE_MAGIC_VALUE, sent big-endian on the wire.
	magicValue = uint32(0x2BF5CA7E)

	// maxPadding is OBFUSCATE_MAX_PADDING: PADLEN values above this are a
	// protocol violation.
	maxPadding = 8192

	// hashIterations is OBFUSCATE_HASH_ITERATIONS: the secret-strengthening
	// round count. See deriveCore's doc comment for the source bug this
	// corrects.
	hashIterations = 100000

	// handshakeHeaderLength is the length of the encrypted MAGIC|PADLEN
	// header that follows the cleartext seed.
	handshakeHeaderLength = 8

	// keyLength/ivLength are the AES-128-CTR key and IV sizes the KDF
	// output is split into.
	keyLength = 16
	ivLength  = 16
)

// Key-type strings, fed to the digest verbatim as part of domain
// separation. These are wire-visible: both peers must agree on the exact
// byte sequence.
const (
	initiatorPadType = "Initiator obfuscation padding"
	responderPadType = "Responder obfuscation padding"
	initiatorSendType = "Initiator obfuscated data"
	responderSendType = "Responder obfuscated data"
)

/* vim :set ts=4 sw=4 sts=4 noet : */
