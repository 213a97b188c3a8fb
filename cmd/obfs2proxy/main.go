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

// obfs2proxy is a standalone obfuscating relay: it listens for either
// plaintext (client/server modes) or SOCKS (socks mode) connections and
// relays them through a registered obfuscation module.
//
// Usage:
//
//	obfs2proxy obfs2 [--dest=HOST:PORT] [--shared-secret=STR] (client|socks|server) LISTEN_HOST[:LISTEN_PORT]
package main

import (
	"fmt"
	"net"
	"os"
	"strings"

	"git.torproject.org/pluggable-transports/goptlib.git"

	_ "github.com/yawning/obfs2/transports/obfs2"

	"github.com/yawning/obfs2/common/log"
	"github.com/yawning/obfs2/transports/base"
)

// defaultPorts mirrors the original obfs2_init()'s per-mode default port
// table; it only applies when LISTEN_PORT is omitted from the positional
// address argument.
var defaultPorts = map[base.Mode]string{
	base.ModeSimpleClient: "48988",
	base.ModeSocksClient:  "23548",
	base.ModeSimpleServer: "11253",
}

func usage() {
	fmt.Fprintln(os.Stderr, "obfs2proxy syntax:")
	fmt.Fprintln(os.Stderr, "\tobfs2proxy <protocol> [protocol_args] <mode> <listen_addr>")
	fmt.Fprintln(os.Stderr, "\t'mode' ~ client|socks|server")
	fmt.Fprintln(os.Stderr, "\t'listen_addr' ~ host[:port]")
	fmt.Fprintln(os.Stderr, "\t'protocol_args':")
	fmt.Fprintln(os.Stderr, "\t\t--dest=host:port  (required for client/server, forbidden for socks)")
	fmt.Fprintln(os.Stderr, "\t\t--shared-secret=<secret>")
	fmt.Fprintln(os.Stderr, "example:")
	fmt.Fprintln(os.Stderr, "\tobfs2proxy obfs2 --dest=127.0.0.1:666 --shared-secret=himitsu server 127.0.0.1:1026")
}

// resolveListenAddr appends defPort to addr if addr carries no port of its
// own, mirroring resolve_address_port's defport behavior in the original.
func resolveListenAddr(addr, defPort string) string {
	if _, _, err := net.SplitHostPort(addr); err == nil {
		return addr
	}
	return net.JoinHostPort(addr, defPort)
}

// parseArgs implements the CLI surface literally: protocol name, then
// "--flag=value" options (each at most once), then mode, then listen addr.
func parseArgs(argv []string) (protocol string, params *base.Params, err error) {
	if len(argv) < 3 {
		return "", nil, fmt.Errorf("wrong number of arguments")
	}

	protocol = argv[0]
	argv = argv[1:]

	var dest, secret string
	var gotDest, gotSecret bool
	for len(argv) > 0 && strings.HasPrefix(argv[0], "--") {
		switch {
		case strings.HasPrefix(argv[0], "--dest="):
			if gotDest {
				return "", nil, fmt.Errorf("--dest specified more than once")
			}
			dest = strings.TrimPrefix(argv[0], "--dest=")
			gotDest = true
		case strings.HasPrefix(argv[0], "--shared-secret="):
			if gotSecret {
				return "", nil, fmt.Errorf("--shared-secret specified more than once")
			}
			secret = strings.TrimPrefix(argv[0], "--shared-secret=")
			gotSecret = true
		default:
			return "", nil, fmt.Errorf("unknown argument: %s", argv[0])
		}
		argv = argv[1:]
	}

	if len(argv) != 2 {
		return "", nil, fmt.Errorf("expected mode and listen address")
	}

	var mode base.Mode
	switch argv[0] {
	case "client":
		mode = base.ModeSimpleClient
	case "socks":
		mode = base.ModeSocksClient
	case "server":
		mode = base.ModeSimpleServer
	default:
		return "", nil, fmt.Errorf("unsupported mode: %s", argv[0])
	}

	if gotDest && mode == base.ModeSocksClient {
		return "", nil, fmt.Errorf("--dest is forbidden in socks mode")
	}
	if !gotDest && mode != base.ModeSocksClient {
		return "", nil, fmt.Errorf("client/server mode requires --dest")
	}

	listenAddr := resolveListenAddr(argv[1], defaultPorts[mode])

	params = &base.Params{
		Protocol:   protocol,
		Mode:       mode,
		ListenAddr: listenAddr,
		TargetAddr: dest,
	}
	if gotSecret {
		params.SharedSecret = []byte(secret)
	}

	return protocol, params, nil
}

func run(protocol string, params *base.Params) error {
	m := base.Lookup(protocol)
	if m == nil {
		return fmt.Errorf("protocol not registered: %s", protocol)
	}

	switch params.Mode {
	case base.ModeSimpleClient:
		ln, err := net.Listen("tcp", params.ListenAddr)
		if err != nil {
			return err
		}
		log.Log.Infof("client: listening on %s, relaying to %s", params.ListenAddr, params.TargetAddr)
		clientAcceptLoop(ln, m, params)
	case base.ModeSimpleServer:
		ln, err := net.Listen("tcp", params.ListenAddr)
		if err != nil {
			return err
		}
		log.Log.Infof("server: listening on %s, relaying to %s", params.ListenAddr, params.TargetAddr)
		serverAcceptLoop(ln, m, params)
	case base.ModeSocksClient:
		ln, err := pt.ListenSocks("tcp", params.ListenAddr)
		if err != nil {
			return err
		}
		log.Log.Infof("socks: listening on %s", params.ListenAddr)
		socksAcceptLoop(ln, m, params)
	}

	return nil
}

func main() {
	if err := log.Init("INFO"); err != nil {
		fmt.Fprintln(os.Stderr, "failed to initialize logging:", err)
		os.Exit(1)
	}

	protocol, params, err := parseArgs(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		usage()
		os.Exit(1)
	}

	if err := run(protocol, params); err != nil {
		log.Log.Errorf("fatal: %s", err)
		os.Exit(1)
	}
}

/* vim :set ts=4 sw=4 sts=4 noet : */
