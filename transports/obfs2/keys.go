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

import "crypto/sha256"

// deriveCore runs the shared digest construction both derivePaddingKey and
// deriveKey are built on: keytype || seeds... || keytype, optionally
// strengthened against the shared secret by iterated hashing.
//
// The original obfsproxy C implementation has a bug here: it allocates a
// fresh digest context inside the strengthening loop but never feeds it the
// previous round's output before reading, so every iteration reads back the
// same value and the loop is a no-op in practice. The intent -- iterated
// hashing as a secret-strengthening KDF -- is what both peers must actually
// implement for the strengthening to mean anything, so this corrects the
// bug: buf is fed back into SHA-256 on every round.
func deriveCore(keytype string, seeds [][]byte, haveSecretSeed bool) [sha256Length]byte {
	h := sha256.New()
	h.Write([]byte(keytype))
	for _, seed := range seeds {
		if seed != nil {
			h.Write(seed)
		}
	}
	h.Write([]byte(keytype))

	var buf [sha256Length]byte
	copy(buf[:], h.Sum(nil))

	if haveSecretSeed {
		for i := 0; i < hashIterations; i++ {
			next := sha256.Sum256(buf[:])
			buf = next
		}
	}

	return buf
}

// keyFromDigest splits a 32-byte KDF output into an AES-128 key/IV pair and
// builds the corresponding streamCipher, zeroing the scratch digest.
func keyFromDigest(buf *[sha256Length]byte) (*streamCipher, error) {
	c, err := newStreamCipher(buf[0:keyLength], buf[keyLength:keyLength+ivLength])
	for i := range buf {
		buf[i] = 0
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

// derivePaddingKey implements §4.4's derive_padding_key: a single seed
// (which may be absent) plus the session's secret seed (if any).
func derivePaddingKey(s *Session, seed []byte, haveSeed bool, keytype string) (*streamCipher, error) {
	var seeds [][]byte
	if haveSeed {
		seeds = append(seeds, seed)
	}
	if s.haveSecretSeed {
		seeds = append(seeds, s.secretSeed[:])
	}

	buf := deriveCore(keytype, seeds, s.haveSecretSeed)
	return keyFromDigest(&buf)
}

// deriveKey implements §4.4's derive_key: all three seeds currently known
// to the session (initiator, responder, secret, in that order), skipping
// any not yet known.
func deriveKey(s *Session, keytype string) (*streamCipher, error) {
	var seeds [][]byte
	if s.haveInitiatorSeed {
		seeds = append(seeds, s.initiatorSeed[:])
	}
	if s.haveResponderSeed {
		seeds = append(seeds, s.responderSeed[:])
	}
	if s.haveSecretSeed {
		seeds = append(seeds, s.secretSeed[:])
	}

	buf := deriveCore(keytype, seeds, s.haveSecretSeed)
	return keyFromDigest(&buf)
}

/* vim :set ts=4 sw=4 sts=4 noet : */
