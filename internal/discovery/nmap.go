package discovery

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/Ullaakut/nmap/v3"
	"github.com/robgonnella/backupcheck/internal/exception"
	"github.com/robgonnella/backupcheck/internal/logger"
	"github.com/robgonnella/backupcheck/internal/server"
)

const minParallelism = 100

// NmapCapability is an implementation of the Capability interface backed by
// the nmap binary
type NmapCapability struct {
	binaryPath string
	geteuid    func() int
	log        logger.Logger
}

// NmapOption configures an NmapCapability
type NmapOption func(c *NmapCapability)

// WithNmapBinary sets an explicit path to the nmap binary
func WithNmapBinary(path string) NmapOption {
	return func(c *NmapCapability) {
		c.binaryPath = path
	}
}

// WithEUID overrides how the effective user id is read
func WithEUID(geteuid func() int) NmapOption {
	return func(c *NmapCapability) {
		c.geteuid = geteuid
	}
}

// NewNmapCapability returns a new instance of NmapCapability
func NewNmapCapability(opts ...NmapOption) *NmapCapability {
	c := &NmapCapability{
		geteuid: os.Geteuid,
		log:     logger.New().Component("nmap"),
	}

	for _, o := range opts {
		o(c)
	}

	return c
}

// CheckPrivilege OS detection needs raw sockets so nmap must run as root
func (c *NmapCapability) CheckPrivilege() error {
	if euid := c.geteuid(); euid != 0 {
		return exception.NewPrivilegeError(
			fmt.Sprintf("nmap OS detection requires root, running as uid %d", euid),
			nmap.ErrRequiresRoot,
		)
	}

	return nil
}

// LivenessSweep runs a ping scan (-n -sn) over cidr and returns the
// addresses of hosts that are up
func (c *NmapCapability) LivenessSweep(ctx context.Context, cidr string) ([]string, error) {
	c.log.Debug().Str("cidr", cidr).Msg("running liveness sweep")

	result, err := c.run(
		ctx,
		nmap.WithTargets(cidr),
		nmap.WithPingScan(),
		nmap.WithDisabledDNSResolution(),
		nmap.WithMinParallelism(minParallelism),
	)

	if err != nil {
		return nil, err
	}

	return ParseLiveHosts(result), nil
}

// ProbeOSAndPorts runs a fast port scan with OS detection
// (-n -T4 -F --max-retries 1 -O) against a single ip
func (c *NmapCapability) ProbeOSAndPorts(ctx context.Context, ip string) (*Fingerprint, error) {
	result, err := c.run(
		ctx,
		nmap.WithTargets(ip),
		nmap.WithDisabledDNSResolution(),
		nmap.WithTimingTemplate(nmap.TimingAggressive),
		nmap.WithFastMode(),
		nmap.WithMinParallelism(minParallelism),
		nmap.WithMaxRetries(1),
		nmap.WithOSDetection(),
	)

	if err != nil {
		return nil, err
	}

	return ParseFingerprint(result, ip)
}

func (c *NmapCapability) run(ctx context.Context, options ...nmap.Option) (*nmap.Run, error) {
	if c.binaryPath != "" {
		options = append(options, nmap.WithBinaryPath(c.binaryPath))
	}

	scanner, err := nmap.NewScanner(ctx, options...)

	if err != nil {
		return nil, mapNmapError(err)
	}

	result, warnings, err := scanner.Run()

	if warnings != nil && len(*warnings) > 0 {
		fields := map[string]interface{}{}

		for i, warning := range *warnings {
			fields[strconv.Itoa(i)] = warning
		}

		c.log.Debug().
			Fields(fields).
			Msg("encountered nmap warnings")
	}

	if err != nil {
		return nil, mapNmapError(err)
	}

	if result == nil {
		return nil, errors.New("nmap returned no result")
	}

	return result, nil
}

// ParseLiveHosts returns the address of every host nmap reported up
func ParseLiveHosts(result *nmap.Run) []string {
	live := []string{}

	if result == nil {
		return live
	}

	for _, host := range result.Hosts {
		if host.Status.State != "up" {
			continue
		}

		if ip := hostIP(host); ip != "" {
			live = append(live, ip)
		}
	}

	return live
}

// ParseFingerprint extracts the OS guess and open ports for ip. A missing or
// down host results in exception.ErrHostUnreachable.
func ParseFingerprint(result *nmap.Run, ip string) (*Fingerprint, error) {
	if result == nil {
		return nil, exception.ErrHostUnreachable
	}

	for _, host := range result.Hosts {
		if hostIP(host) != ip {
			continue
		}

		if host.Status.State != "up" {
			return nil, exception.ErrHostUnreachable
		}

		fp := &Fingerprint{Ports: []server.Port{}}

		if len(host.OS.Matches) > 0 {
			fp.OS = host.OS.Matches[0].Name
		}

		for _, port := range host.Ports {
			if port.Status() != nmap.Open {
				continue
			}

			fp.Ports = append(fp.Ports, server.Port{
				ID:       port.ID,
				Protocol: port.Protocol,
				Service:  port.Service.Name,
			})
		}

		return fp, nil
	}

	return nil, exception.ErrHostUnreachable
}

func hostIP(host nmap.Host) string {
	for _, addr := range host.Addresses {
		if addr.AddrType == "ipv4" || addr.AddrType == "ipv6" {
			return addr.Addr
		}
	}

	if len(host.Addresses) > 0 && host.Addresses[0].AddrType != "mac" {
		return host.Addresses[0].Addr
	}

	return ""
}

func mapNmapError(err error) error {
	switch {
	case errors.Is(err, nmap.ErrRequiresRoot):
		return exception.NewPrivilegeError("nmap requires root privileges", err)
	case errors.Is(err, nmap.ErrNmapNotInstalled):
		return fmt.Errorf("%w: %v", exception.ErrCapabilityUnavailable, err)
	default:
		return err
	}
}
