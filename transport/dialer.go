package transport

import (
	"context"
	"net"
)

// localAddrDialer returns a DialContext that binds outbound connections
// to sourceIP, implementing the source_ip / backup_source_ip options
// (spec §6.1).
func localAddrDialer(sourceIP string) func(ctx context.Context, network, addr string) (net.Conn, error) {
	localAddr := &net.TCPAddr{IP: net.ParseIP(sourceIP)}
	dialer := &net.Dialer{LocalAddr: localAddr}
	return dialer.DialContext
}
