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

	"github.com/yawning/obfs2/common/csrand"
	"github.com/yawning/obfs2/transports/base"
)

// sendInitialMessage implements §4.3: it appends
//   SEED || E_padkey( MAGIC || PADLEN || PAD )
// to out. SEED is transmitted in the clear; the MAGIC|PADLEN|PAD region is
// encrypted as a single continuous stream-cipher pass using
// sendPaddingCrypto.
func sendInitialMessage(sess base.Session, out *bytes.Buffer) error {
	s := sess.(*Session)

	var ownSeed []byte
	if s.weAreInitiator {
		ownSeed = s.initiatorSeed[:]
	} else {
		ownSeed = s.responderSeed[:]
	}

	var padLenBytes [4]byte
	if err := csrand.Bytes(padLenBytes[:]); err != nil {
		return err
	}
	padLen := binary.BigEndian.Uint32(padLenBytes[:]) % maxPadding

	msg := make([]byte, handshakeHeaderLength+int(padLen))
	binary.BigEndian.PutUint32(msg[0:4], magicValue)
	binary.BigEndian.PutUint32(msg[4:8], padLen)
	if padLen > 0 {
		if err := csrand.Bytes(msg[handshakeHeaderLength:]); err != nil {
			return err
		}
	}

	s.sendPaddingCrypto.crypt(msg)

	out.Write(ownSeed)
	out.Write(msg)

	return nil
}

/* vim :set ts=4 sw=4 sts=4 noet : */
