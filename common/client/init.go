// Package client builds the shared outbound HTTP clients.
package client

import (
	"crypto/tls"
	"net"
	"net/http"
	"syscall"
	"time"

	"github.com/Laisky/errors/v2"

	"github.com/Laisky/mcp-chat/common/config"
	"github.com/Laisky/mcp-chat/common/network"
)

// HTTPClient is the default outbound client used for provider calls. Its
// timeout follows RELAY_TIMEOUT.
var HTTPClient *http.Client

// ToolHTTPClient performs discovery probes and tool invocations. It carries
// no client-level timeout; callers bound each request with a context.
var ToolHTTPClient *http.Client

// Init builds the shared HTTP clients with timeout and dial settings derived
// from configuration.
func Init() {
	// HTTP/2 is disabled to avoid stream errors against misbehaving upstreams.
	createTransport := func(blockInternal bool) *http.Transport {
		dialer := &net.Dialer{
			Timeout:   30 * time.Second,
			KeepAlive: 30 * time.Second,
		}

		if blockInternal {
			dialer.Control = func(networkName, address string, c syscall.RawConn) error {
				host, _, err := net.SplitHostPort(address)
				if err != nil {
					return errors.Wrapf(err, "failed to split host port: %s", address)
				}
				ip := net.ParseIP(host)
				if ip == nil {
					return errors.Errorf("failed to parse IP address: %s", host)
				}
				if network.IsForbiddenIP(ip) {
					return errors.Errorf("internal IP %s is blocked", ip)
				}
				return nil
			}
		}

		return &http.Transport{
			DialContext:  dialer.DialContext,
			TLSNextProto: make(map[string]func(authority string, c *tls.Conn) http.RoundTripper), // Disable HTTP/2
		}
	}

	if config.RelayTimeout == 0 {
		HTTPClient = &http.Client{
			Transport: createTransport(false),
		}
	} else {
		HTTPClient = &http.Client{
			Timeout:   time.Duration(config.RelayTimeout) * time.Second,
			Transport: createTransport(false),
		}
	}

	ToolHTTPClient = &http.Client{
		Transport: createTransport(config.BlockInternalToolEndpoints),
	}
}
