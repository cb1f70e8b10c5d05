// Package network provides URL and address validation helpers for
// user-supplied tool endpoints.
package network

import (
	"net"
	"net/url"
	"strings"

	"github.com/Laisky/errors/v2"

	"github.com/Laisky/mcp-chat/common/config"
)

// ValidateToolEndpointURL parses rawURL and verifies it is a plausible base
// endpoint for a tool connection: http(s) scheme, a host, no embedded user
// info. Private and loopback hosts are rejected only when
// BLOCK_INTERNAL_TOOL_ENDPOINTS is set, since tool servers commonly run on
// localhost during development.
func ValidateToolEndpointURL(rawURL string) (*url.URL, error) {
	trimmed := strings.TrimSpace(rawURL)
	if trimmed == "" {
		return nil, errors.New("url is empty")
	}

	parsed, err := url.Parse(trimmed)
	if err != nil {
		return nil, errors.Wrap(err, "parse url")
	}

	scheme := strings.ToLower(parsed.Scheme)
	if scheme != "http" && scheme != "https" {
		return nil, errors.Errorf("unsupported url scheme: %s", parsed.Scheme)
	}
	if parsed.User != nil {
		return nil, errors.New("url must not include user info")
	}

	host := parsed.Hostname()
	if host == "" {
		return nil, errors.New("url host is empty")
	}

	if config.BlockInternalToolEndpoints {
		if isLocalHostname(host) {
			return nil, errors.Errorf("url host is not allowed: %s", host)
		}
		if ip := net.ParseIP(host); ip != nil && IsForbiddenIP(ip) {
			return nil, errors.Errorf("url host resolves to a private or local address: %s", host)
		}
	}

	return parsed, nil
}

// IsForbiddenIP reports whether ip is loopback, private, link-local,
// multicast, or otherwise non-public.
func IsForbiddenIP(ip net.IP) bool {
	if ip == nil {
		return true
	}

	if ip.IsLoopback() || ip.IsPrivate() || ip.IsUnspecified() || ip.IsLinkLocalUnicast() ||
		ip.IsLinkLocalMulticast() || ip.IsMulticast() || ip.IsInterfaceLocalMulticast() {
		return true
	}

	return isCarrierGradeNAT(ip)
}

// isLocalHostname reports whether the host is a localhost-style name.
func isLocalHostname(host string) bool {
	lower := strings.ToLower(strings.TrimSuffix(host, "."))
	if lower == "localhost" {
		return true
	}
	return strings.HasSuffix(lower, ".localhost")
}

// isCarrierGradeNAT reports whether ip falls within 100.64.0.0/10.
func isCarrierGradeNAT(ip net.IP) bool {
	ipv4 := ip.To4()
	if ipv4 == nil {
		return false
	}

	return ipv4[0] == 100 && (ipv4[1]&0xC0) == 0x40
}
