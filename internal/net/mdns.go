package net

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net"
	"os"
	"strconv"
	"time"

	"github.com/hashicorp/mdns"
)

var ErrNoHost = errors.New("no canvas host found on the local network")

// Advertise announces a sharing host on the local network. Close the
// returned server to withdraw the announcement.
func Advertise(serviceType string, port int) (io.Closer, error) {
	host, err := os.Hostname()
	if err != nil {
		return nil, fmt.Errorf("could not get hostname: %w", err)
	}

	service, err := mdns.NewMDNSService(host, serviceType, "", "", port, nil, []string{"LocalPaint"})
	if err != nil {
		return nil, fmt.Errorf("failed to create mDNS service: %w", err)
	}
	server, err := mdns.NewServer(&mdns.Config{Zone: service})
	if err != nil {
		return nil, fmt.Errorf("failed to start mDNS server: %w", err)
	}
	log.Printf("[MDNS] Advertising %s as %s on port %d", serviceType, host, port)
	return shutdownCloser{server}, nil
}

type shutdownCloser struct{ s *mdns.Server }

func (c shutdownCloser) Close() error { return c.s.Shutdown() }

// Browse returns host:port of the first host answering for serviceType
// within timeout.
func Browse(ctx context.Context, serviceType string, timeout time.Duration) (string, error) {
	entries := make(chan *mdns.ServiceEntry, 8)
	params := mdns.DefaultParams(serviceType)
	params.Entries = entries
	params.Timeout = timeout
	params.DisableIPv6 = true

	done := make(chan error, 1)
	go func() { done <- mdns.Query(params) }()

	for {
		select {
		case e := <-entries:
			if addr, ok := entryAddr(e); ok {
				return addr, nil
			}
		case err := <-done:
			if err != nil {
				return "", fmt.Errorf("mdns query: %w", err)
			}
			for {
				select {
				case e := <-entries:
					if addr, ok := entryAddr(e); ok {
						return addr, nil
					}
				default:
					return "", ErrNoHost
				}
			}
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
}

func entryAddr(e *mdns.ServiceEntry) (string, bool) {
	if e == nil || e.AddrV4 == nil || e.Port == 0 {
		return "", false
	}
	log.Printf("[MDNS] Found %s at %s:%d", e.Name, e.AddrV4, e.Port)
	return net.JoinHostPort(e.AddrV4.String(), strconv.Itoa(e.Port)), true
}
