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
	"bytes"
	"net"
	"sync"
	"time"

	"github.com/yawning/obfs2/transports/base"
)

// obfsConn adapts a registered protocol module's Session to the net.Conn
// interface, the way Obfs4Conn adapted obfs4's framing layer: the module
// never touches the network directly, and this is the only place that
// bridges base.Send/base.Recv onto an underlying net.Conn.
type obfsConn struct {
	conn net.Conn

	module  *base.Module
	session base.Session

	// mu serializes every call into session: the relay reads and writes
	// from two goroutines at once.
	mu sync.Mutex

	recvWire  bytes.Buffer
	recvPlain bytes.Buffer
}

func newObfsConn(conn net.Conn, module *base.Module, session base.Session) *obfsConn {
	return &obfsConn{conn: conn, module: module, session: session}
}

// handshake sends the module's initial message, if any, and must be called
// exactly once before any Read/Write.
func (c *obfsConn) handshake() error {
	var out bytes.Buffer
	if err := base.Handshake(c.module, c.session, &out); err != nil {
		return err
	}
	if out.Len() > 0 {
		if _, err := c.conn.Write(out.Bytes()); err != nil {
			return err
		}
	}
	return nil
}

func (c *obfsConn) Read(b []byte) (int, error) {
	var buf [4096]byte
	for c.recvPlain.Len() == 0 {
		n, err := c.conn.Read(buf[:])
		if n > 0 {
			c.recvWire.Write(buf[:n])
			for c.recvWire.Len() > 0 {
				c.mu.Lock()
				need, rerr := base.Recv(c.module, c.session, &c.recvWire, &c.recvPlain)
				c.mu.Unlock()
				if rerr != nil {
					return 0, rerr
				}
				if need > 0 {
					break
				}
			}
		}
		if err != nil {
			if c.recvPlain.Len() > 0 {
				break
			}
			return 0, err
		}
	}
	return c.recvPlain.Read(b)
}

func (c *obfsConn) Write(b []byte) (int, error) {
	src := bytes.NewBuffer(append([]byte(nil), b...))
	var wire bytes.Buffer
	c.mu.Lock()
	err := base.Send(c.module, c.session, src, &wire)
	c.mu.Unlock()
	if err != nil {
		return 0, err
	}
	if wire.Len() > 0 {
		if _, err := c.conn.Write(wire.Bytes()); err != nil {
			return 0, err
		}
	}
	return len(b), nil
}

func (c *obfsConn) Close() error {
	c.mu.Lock()
	base.Destroy(c.module, c.session)
	c.mu.Unlock()
	return c.conn.Close()
}

func (c *obfsConn) LocalAddr() net.Addr                { return c.conn.LocalAddr() }
func (c *obfsConn) RemoteAddr() net.Addr               { return c.conn.RemoteAddr() }
func (c *obfsConn) SetDeadline(t time.Time) error      { return c.conn.SetDeadline(t) }
func (c *obfsConn) SetReadDeadline(t time.Time) error  { return c.conn.SetReadDeadline(t) }
func (c *obfsConn) SetWriteDeadline(t time.Time) error { return c.conn.SetWriteDeadline(t) }

/* vim :set ts=4 sw=4 sts=4 noet : */
