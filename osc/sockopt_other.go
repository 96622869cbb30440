//go:build !unix

package osc

import "syscall"

// The net package already enables broadcast on datagram sockets here.
func controlBroadcast(_, _ string, _ syscall.RawConn) error { return nil }

func controlReuseAddr(_, _ string, _ syscall.RawConn) error { return nil }
