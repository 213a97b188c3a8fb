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

package main

import (
	"io"
	"net"
	"sync"

	"git.torproject.org/pluggable-transports/goptlib.git"

	"github.com/yawning/obfs2/common/log"
	"github.com/yawning/obfs2/transports/base"
)

// copyLoop shuttles bytes between a and b in both directions until one side
// closes, exactly as obfs4proxy's copyLoop does.
func copyLoop(a, b net.Conn) {
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		defer b.Close()
		defer a.Close()
		if _, err := io.Copy(b, a); err != nil {
			log.Log.Debugf("copyLoop: %s", err)
		}
	}()
	go func() {
		defer wg.Done()
		defer a.Close()
		defer b.Close()
		if _, err := io.Copy(a, b); err != nil {
			log.Log.Debugf("copyLoop: %s", err)
		}
	}()

	wg.Wait()
}

// serverHandler services one incoming obfuscated connection in server mode:
// it completes the responder side of the handshake, then relays plaintext
// to params.TargetAddr.
func serverHandler(conn net.Conn, m *base.Module, params *base.Params) {
	defer conn.Close()

	sess, err := m.New(params)
	if err != nil {
		log.Log.Errorf("server: session creation failed: %s", err)
		return
	}

	oc := newObfsConn(conn, m, sess)
	if err := oc.handshake(); err != nil {
		log.Log.Warningf("server: %s: handshake failed: %s", conn.RemoteAddr(), err)
		base.Destroy(m, sess)
		return
	}

	upstream, err := net.Dial("tcp", params.TargetAddr)
	if err != nil {
		log.Log.Errorf("server: dial %s failed: %s", params.TargetAddr, err)
		oc.Close()
		return
	}

	log.Log.Infof("server: %s: established, relaying to %s", conn.RemoteAddr(), params.TargetAddr)
	copyLoop(upstream, oc)
}

func serverAcceptLoop(ln net.Listener, m *base.Module, params *base.Params) {
	defer ln.Close()
	for {
		conn, err := ln.Accept()
		if err != nil {
			if ne, ok := err.(net.Error); ok && !ne.Temporary() {
				log.Log.Errorf("server: accept loop exiting: %s", err)
				return
			}
			continue
		}
		go serverHandler(conn, m, params)
	}
}

// clientHandler services one incoming plaintext connection in simple-client
// mode: it dials params.TargetAddr, runs the initiator handshake over that
// dialed connection, then relays.
func clientHandler(conn net.Conn, m *base.Module, params *base.Params) {
	defer conn.Close()

	remote, err := net.Dial("tcp", params.TargetAddr)
	if err != nil {
		log.Log.Errorf("client: dial %s failed: %s", params.TargetAddr, err)
		return
	}

	sess, err := m.New(params)
	if err != nil {
		log.Log.Errorf("client: session creation failed: %s", err)
		remote.Close()
		return
	}

	oc := newObfsConn(remote, m, sess)
	if err := oc.handshake(); err != nil {
		log.Log.Warningf("client: handshake with %s failed: %s", params.TargetAddr, err)
		oc.Close()
		return
	}

	copyLoop(conn, oc)
}

func clientAcceptLoop(ln net.Listener, m *base.Module, params *base.Params) {
	defer ln.Close()
	for {
		conn, err := ln.Accept()
		if err != nil {
			if ne, ok := err.(net.Error); ok && !ne.Temporary() {
				log.Log.Errorf("client: accept loop exiting: %s", err)
				return
			}
			continue
		}
		go clientHandler(conn, m, params)
	}
}

// socksHandler services one goptlib SOCKS connection: the dial target comes
// from the SOCKS request rather than params.TargetAddr, since SOCKS parsing
// (an external collaborator, per the out-of-scope note on negotiation) is
// goptlib's job, not ours.
func socksHandler(conn *pt.SocksConn, m *base.Module, params *base.Params) {
	defer conn.Close()

	remote, err := net.Dial("tcp", conn.Req.Target)
	if err != nil {
		log.Log.Errorf("socks: dial %s failed: %s", conn.Req.Target, err)
		conn.Reject()
		return
	}

	sess, err := m.New(params)
	if err != nil {
		log.Log.Errorf("socks: session creation failed: %s", err)
		remote.Close()
		conn.Reject()
		return
	}

	oc := newObfsConn(remote, m, sess)
	if err := oc.handshake(); err != nil {
		log.Log.Warningf("socks: handshake with %s failed: %s", conn.Req.Target, err)
		oc.Close()
		conn.Reject()
		return
	}

	if err := conn.Grant(remote.RemoteAddr().(*net.TCPAddr)); err != nil {
		oc.Close()
		return
	}

	copyLoop(conn, oc)
}

func socksAcceptLoop(ln *pt.SocksListener, m *base.Module, params *base.Params) {
	defer ln.Close()
	for {
		conn, err := ln.AcceptSocks()
		if err != nil {
			if ne, ok := err.(net.Error); ok && !ne.Temporary() {
				log.Log.Errorf("socks: accept loop exiting: %s", err)
				return
			}
			continue
		}
		go socksHandler(conn, m, params)
	}
}

/* vim :set ts=4 sw=4 sts=4 noet : */
