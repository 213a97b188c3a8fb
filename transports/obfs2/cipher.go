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
	"crypto/aes"
	"crypto/cipher"
)

// streamCipher is the crypt_t of spec §6: an AES-128-CTR keystream that
// XORKeyStream advances in place by exactly len(buf) bytes per call. It is
// never reused across the padding/session key boundary described in §3;
// each derivation produces its own instance.
type streamCipher struct {
	stream cipher.Stream
}

// newStreamCipher builds a streamCipher from a 16-byte key and 16-byte IV,
// the split of a single 32-byte KDF output (buf[0:16] | buf[16:32]).
func newStreamCipher(key, iv []byte) (*streamCipher, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}

	return &streamCipher{stream: cipher.NewCTR(block, iv)}, nil
}

// crypt encrypts or decrypts buf in place; AES-CTR is its own inverse.
func (c *streamCipher) crypt(buf []byte) {
	c.stream.XORKeyStream(buf, buf)
}

/* vim :set ts=4 sw=4 sts=4 noet : */
