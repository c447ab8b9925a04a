package probe

import (
	"context"
	"errors"
	"time"

	probing "github.com/prometheus-community/pro-bing"

	"github.com/hamed0406/pingreport/internal/domain"
)

var errNoReply = errors.New("no echo reply before timeout")

// ICMP probes via ICMP echo requests. Each attempt is its own one-packet
// pinger run so a slow or dead host costs at most Timeout per attempt.
type ICMP struct {
	Timeout    time.Duration
	Privileged bool // raw sockets; needs root or CAP_NET_RAW

	// echo is replaced in tests.
	echo func(ctx context.Context, address string) (time.Duration, error)
}

func NewICMP(timeout time.Duration, privileged bool) *ICMP {
	if timeout <= 0 {
		timeout = 4 * time.Second
	}
	p := &ICMP{Timeout: timeout, Privileged: privileged}
	p.echo = p.echoOnce
	return p
}

func (p *ICMP) Probe(ctx context.Context, address string, attempts int) []domain.Attempt {
	out := make([]domain.Attempt, 0, attempts)
	for i := 0; i < attempts; i++ {
		rtt, err := p.echo(ctx, address)
		if err != nil {
			out = append(out, domain.Attempt{OK: false})
			continue
		}
		out = append(out, domain.Attempt{OK: true, Latency: rtt})
	}
	return out
}

// echoOnce sends a single echo request and waits for the reply.
func (p *ICMP) echoOnce(ctx context.Context, address string) (time.Duration, error) {
	pinger, err := probing.NewPinger(address)
	if err != nil {
		return 0, err
	}
	pinger.Count = 1
	pinger.Timeout = p.Timeout
	pinger.SetPrivileged(p.Privileged)

	if err := pinger.RunWithContext(ctx); err != nil {
		return 0, err
	}
	stats := pinger.Statistics()
	if stats.PacketsRecv == 0 {
		return 0, errNoReply
	}
	return stats.AvgRtt, nil
}
