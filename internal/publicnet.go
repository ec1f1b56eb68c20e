/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package internal

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"net/netip"
	"syscall"
	"time"
)

// cgnat is the carrier-grade NAT range; netip does not count it as private.
var cgnat = netip.MustParsePrefix("100.64.0.0/10")

// IsPublicAddr reports whether addr is routable on the public internet, so
// it is not loopback, private, link-local (cloud metadata lives there),
// multicast or unspecified.
func IsPublicAddr(addr netip.Addr) bool {
	addr = addr.Unmap()
	if !addr.IsValid() || addr.IsLoopback() || addr.IsPrivate() ||
		addr.IsLinkLocalUnicast() || addr.IsLinkLocalMulticast() ||
		addr.IsInterfaceLocalMulticast() || addr.IsMulticast() ||
		addr.IsUnspecified() || cgnat.Contains(addr) {

		return false
	}
	return true
}

// CheckPublicHost resolves host and fails unless every address it maps to
// is public.
func CheckPublicHost(ctx context.Context, host string) error {
	if addr, err := netip.ParseAddr(host); err == nil {
		if !IsPublicAddr(addr) {
			return fmt.Errorf("address %v is not public", addr)
		}
		return nil
	}

	addrs, err := net.DefaultResolver.LookupNetIP(ctx, "ip", host)
	if err != nil {
		return fmt.Errorf("failed to resolve %v: %w", host, err)
	}
	for _, addr := range addrs {
		if !IsPublicAddr(addr) {
			return fmt.Errorf("host %v resolves to non-public address %v",
				host, addr)
		}
	}
	return nil
}

// NewPublicTransport returns a transport that refuses to connect to
// anything but public addresses. The check runs on the resolved address at
// dial time so a name that re-resolves between lookup and connect is still
// caught.
func NewPublicTransport() *http.Transport {
	dialer := &net.Dialer{
		Timeout:   10 * time.Second,
		KeepAlive: 30 * time.Second,
		Control: func(network, address string, _ syscall.RawConn) error {
			addrPort, err := netip.ParseAddrPort(address)
			if err != nil {
				return fmt.Errorf("unexpected dial address %v: %w", address, err)
			}
			if !IsPublicAddr(addrPort.Addr()) {
				return fmt.Errorf("refusing to connect to non-public address %v",
					addrPort.Addr())
			}
			return nil
		},
	}

	tr := http.DefaultTransport.(*http.Transport).Clone()
	tr.Proxy = nil
	tr.DialContext = dialer.DialContext

	return tr
}
