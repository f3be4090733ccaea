//go:build !linux

package ipc

import "net"

// checkPeer relies on the socket file permissions where SO_PEERCRED is not
// available.
func checkPeer(*net.UnixConn) error {
	return nil
}
