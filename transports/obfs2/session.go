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
	"crypto/sha256"

	"github.com/yawning/obfs2/common/csrand"
	"github.com/yawning/obfs2/transports/base"
)

type phase int

const (
	phaseWaitForKey phase = iota
	phaseWaitForPadding
	phaseOpen
)

// Session is obfs2's concrete, module-private per-connection state. The
// framework only ever holds this behind the opaque base.Session interface.
//
// A zero-valued seed is not ambiguous with "no seed yet" here: the
// have*Seed flags are the authority, exactly as spec §3 allows as an
// alternative to depending on an all-zero sentinel (which could in
// principle collide with a genuine seed with probability 2^-128).
type Session struct {
	phase          phase
	weAreInitiator bool

	initiatorSeed    [seedLength]byte
	haveInitiatorSeed bool
	responderSeed    [seedLength]byte
	haveResponderSeed bool

	secretSeed    [sharedSecretLength]byte
	haveSecretSeed bool

	sendPaddingCrypto *streamCipher
	recvPaddingCrypto *streamCipher
	sendCrypto        *streamCipher
	recvCrypto        *streamCipher

	paddingLeftToRead int

	pendingDataToSend *bytes.Buffer
}

// newSession implements §4.2's obfs2 session creation procedure.
func newSession(params *base.Params) (base.Session, error) {
	s := &Session{
		phase:          phaseWaitForKey,
		weAreInitiator: params.IsInitiator(),
	}

	var ownSeed []byte
	var sendPadType string
	if s.weAreInitiator {
		ownSeed = s.initiatorSeed[:]
		sendPadType = initiatorPadType
	} else {
		ownSeed = s.responderSeed[:]
		sendPadType = responderPadType
	}

	if err := csrand.Bytes(ownSeed); err != nil {
		return nil, err
	}
	if s.weAreInitiator {
		s.haveInitiatorSeed = true
	} else {
		s.haveResponderSeed = true
	}

	if len(params.SharedSecret) > 0 {
		digest := sha256.Sum256(params.SharedSecret)
		copy(s.secretSeed[:], digest[:sharedSecretLength])
		for i := range digest {
			digest[i] = 0
		}
		s.haveSecretSeed = true
	}

	var err error
	s.sendPaddingCrypto, err = derivePaddingKey(s, ownSeed, true, sendPadType)
	if err != nil {
		return nil, err
	}

	return s, nil
}

/* vim :set ts=4 sw=4 sts=4 noet : */
