package probe

import (
	"context"
	"fmt"
	"time"

	probing "github.com/prometheus-community/pro-bing"

	"pingwatch/internal/models"
)

// ICMPPinger sends ICMP echo requests via pro-bing.
type ICMPPinger struct {
	privileged bool
}

// NewICMPPinger creates a pinger. Privileged mode uses raw ICMP sockets and
// requires root or CAP_NET_RAW; unprivileged mode uses UDP datagram sockets
// (sysctl net.ipv4.ping_group_range on Linux).
func NewICMPPinger(privileged bool) *ICMPPinger {
	return &ICMPPinger{privileged: privileged}
}

// Ping issues one echo request and waits up to timeout for the reply.
func (p *ICMPPinger) Ping(ctx context.Context, addr string, timeout time.Duration) (models.PingReply, error) {
	pinger, err := probing.NewPinger(addr)
	if err != nil {
		return models.PingReply{}, fmt.Errorf("pinger setup for %s failed: %w", addr, err)
	}

	pinger.Count = 1
	pinger.Timeout = timeout
	pinger.SetPrivileged(p.privileged)

	var reply models.PingReply

	pinger.OnRecv = func(pkt *probing.Packet) {
		reply = models.PingReply{Latency: pkt.Rtt, TTL: pkt.TTL}
	}

	if err := pinger.RunWithContext(ctx); err != nil {
		return models.PingReply{}, fmt.Errorf("ping %s failed: %w", addr, err)
	}

	if pinger.Statistics().PacketsRecv == 0 {
		return models.PingReply{}, fmt.Errorf("ping %s: no reply within %s", addr, timeout)
	}

	return reply, nil
}
