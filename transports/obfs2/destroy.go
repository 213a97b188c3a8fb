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

import "github.com/yawning/obfs2/transports/base"

// destroy implements §4.7: every cipher state is already gone once we drop
// our only references to it, but the seeds and the pending-data queue are
// zeroed explicitly, satisfying the "destroy zeroes all key material and
// seeds" invariant of §3/§8 property 8 regardless of what the garbage
// collector does with the underlying memory.
func destroy(sess base.Session) {
	s := sess.(*Session)

	zero(s.initiatorSeed[:])
	zero(s.responderSeed[:])
	zero(s.secretSeed[:])

	s.haveInitiatorSeed = false
	s.haveResponderSeed = false
	s.haveSecretSeed = false

	if s.pendingDataToSend != nil {
		zero(s.pendingDataToSend.Bytes())
		s.pendingDataToSend = nil
	}

	s.sendPaddingCrypto = nil
	s.recvPaddingCrypto = nil
	s.sendCrypto = nil
	s.recvCrypto = nil

	s.phase = phaseWaitForKey
}

func zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

/* vim :set ts=4 sw=4 sts=4 noet : */
