package transport

import (
	"net"
	"net/netip"
	"syscall"
)

// sharedSSRFControl builds a net.Dialer.Control hook. Go calls Control
// after DNS resolution and socket creation but before connect, passing
// the resolved address — exactly the "socket-open callback fires after
// resolution" hook the spec requires, which is how DNS-rebinding attacks
// are caught: the check runs against the address the kernel is actually
// about to connect to, not the hostname.
func sharedSSRFControl(allowPrivate bool) func(network, address string, c syscall.RawConn) error {
	if allowPrivate {
		return nil
	}
	return func(network, address string, c syscall.RawConn) error {
		host, _, err := net.SplitHostPort(address)
		if err != nil {
			return err
		}
		addr, err := netip.ParseAddr(host)
		if err != nil {
			return err
		}
		if isBlockedAddr(addr) {
			return errBlockedAddr{addr: addr}
		}
		return nil
	}
}

type errBlockedAddr struct {
	addr netip.Addr
}

func (e errBlockedAddr) Error() string {
	return "byteq: connection to " + e.addr.String() + " blocked by SSRF filter"
}

// isBlockedAddr reports whether addr falls in any of the ranges the spec
// names: IPv4 loopback/private/link-local/unspecified, IPv6
// loopback/link-local/ULA, and IPv4-mapped IPv6 addresses whose embedded
// IPv4 address falls in any of those ranges.
func isBlockedAddr(addr netip.Addr) bool {
	if addr.Is4In6() {
		addr = addr.Unmap()
	}
	if addr.IsLoopback() || addr.IsLinkLocalUnicast() || addr.IsUnspecified() {
		return true
	}
	if addr.Is4() {
		return addr.IsPrivate()
	}
	// IPv6: loopback/link-local already covered above; ULA is fc00::/7.
	if addr.Is6() {
		if addr.IsPrivate() { // Go's IsPrivate covers fc00::/7 for v6 too
			return true
		}
	}
	return false
}

