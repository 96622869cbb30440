//go:build unix

package osc

import (
	"syscall"

	"golang.org/x/sys/unix"
)

// controlBroadcast allows sending to broadcast addresses.
func controlBroadcast(_, _ string, c syscall.RawConn) error {
	return setsockoptInt(c, unix.SO_BROADCAST)
}

// controlReuseAddr allows several listeners on the same address.
func controlReuseAddr(_, _ string, c syscall.RawConn) error {
	return setsockoptInt(c, unix.SO_REUSEADDR)
}

func setsockoptInt(c syscall.RawConn, opt int) error {
	var err error
	if cerr := c.Control(func(fd uintptr) {
		err = unix.SetsockoptInt(int(fd), unix.SOL_SOCKET, opt, 1)
	}); cerr != nil {
		return cerr
	}
	return err
}
