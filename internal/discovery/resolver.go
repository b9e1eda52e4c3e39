package discovery

import (
	"context"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/miekg/dns"
)

const defaultDNSTimeout = 2 * time.Second

// DNSResolver performs PTR lookups against a single nameserver
type DNSResolver struct {
	server string
	client *dns.Client
}

// NewDNSResolver returns a resolver querying server ("host" or "host:port")
func NewDNSResolver(server string, timeout time.Duration) *DNSResolver {
	if _, _, err := net.SplitHostPort(server); err != nil {
		server = net.JoinHostPort(server, "53")
	}

	if timeout <= 0 {
		timeout = defaultDNSTimeout
	}

	return &DNSResolver{
		server: server,
		client: &dns.Client{Net: "udp", Timeout: timeout},
	}
}

// LookupAddr returns the PTR names for addr
func (r *DNSResolver) LookupAddr(ctx context.Context, addr string) ([]string, error) {
	arpa, err := dns.ReverseAddr(addr)

	if err != nil {
		return nil, err
	}

	msg := new(dns.Msg)
	msg.SetQuestion(arpa, dns.TypePTR)
	msg.RecursionDesired = true

	resp, _, err := r.client.ExchangeContext(ctx, msg, r.server)

	if err != nil {
		return nil, err
	}

	if resp.Rcode != dns.RcodeSuccess {
		return nil, fmt.Errorf("ptr lookup for %s failed: %s", addr, dns.RcodeToString[resp.Rcode])
	}

	names := []string{}

	for _, rr := range resp.Answer {
		if ptr, ok := rr.(*dns.PTR); ok {
			names = append(names, ptr.Ptr)
		}
	}

	return names, nil
}

// resolveHostname returns the first name found for ip without its trailing
// dot, or ip itself when the lookup fails or finds nothing
func resolveHostname(ctx context.Context, resolver Resolver, ip string) string {
	if resolver == nil {
		return ip
	}

	names, err := resolver.LookupAddr(ctx, ip)

	if err != nil {
		return ip
	}

	for _, name := range names {
		if name = strings.TrimSuffix(name, "."); name != "" {
			return name
		}
	}

	return ip
}
