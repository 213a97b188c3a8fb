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

	"github.com/yawning/obfs2/transports/base"
)

// send implements §4.6. While send_crypto does not exist yet (we are still
// in WAIT_FOR_KEY -- our handshake went out, but the peer's hasn't arrived,
// so recv hasn't derived our session keys) any offered bytes are queued in
// pendingDataToSend rather than dropped. Once send_crypto exists, the
// pending queue is flushed first, contiguously, ahead of src, so the
// stream cipher is never reset and ordering (property 5 in spec §8) holds.
func send(sess base.Session, src, dst *bytes.Buffer) error {
	s := sess.(*Session)

	if s.sendCrypto == nil {
		if src.Len() > 0 {
			if s.pendingDataToSend == nil {
				s.pendingDataToSend = new(bytes.Buffer)
			}
			s.pendingDataToSend.Write(src.Next(src.Len()))
		}
		return nil
	}

	if s.pendingDataToSend != nil {
		pending := s.pendingDataToSend.Next(s.pendingDataToSend.Len())
		s.sendCrypto.crypt(pending)
		dst.Write(pending)
		s.pendingDataToSend = nil
	}

	payload := src.Next(src.Len())
	s.sendCrypto.crypt(payload)
	dst.Write(payload)

	return nil
}

/* vim :set ts=4 sw=4 sts=4 noet : */
