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
	"errors"

	"github.com/yawning/obfs2/transports/base"
)

// ErrBadMagic is a protocol violation: the decrypted handshake header did
// not carry OBFUSCATE_MAGIC_VALUE.
var ErrBadMagic = errors.New("obfs2: bad magic value in handshake")

// ErrPadTooLong is a protocol violation: the peer declared more padding
// than OBFUSCATE_MAX_PADDING.
var ErrPadTooLong = errors.New("obfs2: PADLEN exceeds OBFUSCATE_MAX_PADDING")

// recv implements §4.5's receive state machine. A single call may traverse
// WAIT_FOR_KEY, WAIT_FOR_PADDING, and OPEN in one invocation; it returns
// (N, nil) to mean "call me again once more bytes are available": in
// WAIT_FOR_KEY N is the full seed-plus-header length (24), however much of
// it is already buffered, and in WAIT_FOR_PADDING it is the padding still
// to skip. It returns (0, err) for a fatal protocol violation the caller
// must treat by closing the connection.
func recv(sess base.Session, src, dst *bytes.Buffer) (int, error) {
	s := sess.(*Session)

	if s.phase == phaseWaitForKey {
		needed := seedLength + handshakeHeaderLength
		if src.Len() < needed {
			return needed, nil
		}

		header := make([]byte, needed)
		if _, err := src.Read(header); err != nil {
			return 0, err
		}

		var sendKeyType, recvKeyType, recvPadKeyType string
		var peerSeed *[seedLength]byte
		if s.weAreInitiator {
			sendKeyType = initiatorSendType
			recvKeyType = responderSendType
			recvPadKeyType = responderPadType
			peerSeed = &s.responderSeed
		} else {
			sendKeyType = responderSendType
			recvKeyType = initiatorSendType
			recvPadKeyType = initiatorPadType
			peerSeed = &s.initiatorSeed
		}

		copy(peerSeed[:], header[:seedLength])
		if s.weAreInitiator {
			s.haveResponderSeed = true
		} else {
			s.haveInitiatorSeed = true
		}

		var err error
		s.sendCrypto, err = deriveKey(s, sendKeyType)
		if err != nil {
			return 0, err
		}
		s.recvCrypto, err = deriveKey(s, recvKeyType)
		if err != nil {
			return 0, err
		}
		s.recvPaddingCrypto, err = derivePaddingKey(s, peerSeed[:], true, recvPadKeyType)
		if err != nil {
			return 0, err
		}

		encHeader := header[seedLength:]
		s.recvPaddingCrypto.crypt(encHeader)

		magic := binary.BigEndian.Uint32(encHeader[0:4])
		padLen := binary.BigEndian.Uint32(encHeader[4:8])
		if magic != magicValue {
			return 0, ErrBadMagic
		}
		if padLen > maxPadding {
			return 0, ErrPadTooLong
		}

		s.paddingLeftToRead = int(padLen)
		s.phase = phaseWaitForPadding
	}

	for s.paddingLeftToRead > 0 {
		avail := src.Len()
		if avail == 0 {
			return s.paddingLeftToRead, nil
		}

		n := s.paddingLeftToRead
		if n > avail {
			n = avail
		}
		src.Next(n)
		s.paddingLeftToRead -= n
	}

	s.phase = phaseOpen

	remaining := src.Next(src.Len())
	s.recvCrypto.crypt(remaining)
	dst.Write(remaining)

	return 0, nil
}

/* vim :set ts=4 sw=4 sts=4 noet : */
