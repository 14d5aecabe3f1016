// Package netutil provides small networking helpers for node identity.
package netutil

import "net"

// SelfIP returns the primary IPv4 address of this machine, determined by the
// local address an outbound UDP socket would use. The target address does not
// need to be reachable; no packets are sent. Falls back to 127.0.0.1 when no
// route exists.
func SelfIP() string {
	conn, err := net.Dial("udp", "10.254.254.254:1")
	if err != nil {
		return "127.0.0.1"
	}
	defer func() { _ = conn.Close() }()

	addr, ok := conn.LocalAddr().(*net.UDPAddr)
	if !ok {
		return "127.0.0.1"
	}
	return addr.IP.String()
}
