package security

import (
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strings"

	applog "diario/internal/log"
)

// Detector flags suspicious requests and resolves the client address.
// Flagged requests are logged and counted, never blocked.
type Detector struct {
	trustedProxies []*net.IPNet
	onSuspicious   func(reason string)
}

// NewDetector trusts loopback proxies plus every entry of trusted, each an
// IP address or CIDR. onSuspicious may be nil.
func NewDetector(trusted []string, onSuspicious func(reason string)) (*Detector, error) {
	d := &Detector{onSuspicious: onSuspicious}
	for _, cidr := range []string{"127.0.0.0/8", "::1/128"} {
		if err := d.AddTrustedProxy(cidr); err != nil {
			return nil, err
		}
	}
	for _, entry := range trusted {
		if err := d.AddTrustedProxy(entry); err != nil {
			return nil, err
		}
	}
	return d, nil
}

// AddTrustedProxy accepts an IP address or a CIDR.
func (d *Detector) AddTrustedProxy(entry string) error {
	entry = strings.TrimSpace(entry)
	if !strings.Contains(entry, "/") {
		ip := net.ParseIP(entry)
		if ip == nil {
			return fmt.Errorf("invalid trusted proxy %q", entry)
		}
		bits := 128
		if ip.To4() != nil {
			ip = ip.To4()
			bits = 32
		}
		d.trustedProxies = append(d.trustedProxies, &net.IPNet{IP: ip, Mask: net.CIDRMask(bits, bits)})
		return nil
	}
	_, network, err := net.ParseCIDR(entry)
	if err != nil {
		return fmt.Errorf("invalid CIDR %s: %w", entry, err)
	}
	d.trustedProxies = append(d.trustedProxies, network)
	return nil
}

var suspiciousPatterns = []string{
	"../", "..\\", ".env", "wp-admin", "phpmyadmin",
	"admin.php", "config.php", ".git", ".ssh",
	"eval(", "javascript:", "<script", "union select",
	"etc/passwd", "cmd.exe",
}

var suspiciousAgents = []string{
	"sqlmap", "nmap", "nikto", "gobuster", "dirb", "masscan",
}

// Inspect returns the first reason the request looks hostile, or "".
func (d *Detector) Inspect(r *http.Request) string {
	path := strings.ToLower(r.URL.Path)
	query := r.URL.RawQuery
	if unescaped, err := url.QueryUnescape(query); err == nil {
		query = unescaped
	}
	query = strings.ToLower(query)
	for _, pattern := range suspiciousPatterns {
		if strings.Contains(path, pattern) {
			return "path_pattern"
		}
		if strings.Contains(query, pattern) {
			return "query_pattern"
		}
	}

	userAgent := strings.ToLower(r.Header.Get("User-Agent"))
	for _, agent := range suspiciousAgents {
		if strings.Contains(userAgent, agent) {
			return "scanner_agent"
		}
	}

	switch r.Method {
	case "TRACE", "TRACK", "DEBUG", "CONNECT":
		return "unusual_method"
	}

	if len(r.URL.String()) > 2048 {
		return "long_url"
	}

	if strings.Count(r.Header.Get("X-Forwarded-For"), ",") > 5 {
		return "forwarded_chain"
	}

	return ""
}

// Middleware logs and counts suspicious requests, then serves them normally.
func (d *Detector) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if reason := d.Inspect(r); reason != "" {
			if d.onSuspicious != nil {
				d.onSuspicious(reason)
			}
			applog.FromContext(r.Context()).WithComponent(applog.ComponentSecurity).WarnContext(r.Context(),
				"Suspicious request",
				applog.FieldReason, reason,
				applog.FieldMethod, r.Method,
				applog.FieldPath, r.URL.Path,
				applog.FieldClientIP, d.ExtractClientIP(r))
		}
		next.ServeHTTP(w, r)
	})
}

// ExtractClientIP returns the peer address, or the forwarded client address
// when the peer is a trusted proxy.
func (d *Detector) ExtractClientIP(r *http.Request) string {
	directIP, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		directIP = r.RemoteAddr
	}

	parsedDirectIP := net.ParseIP(directIP)
	if parsedDirectIP == nil || !d.isTrustedProxy(parsedDirectIP) {
		return directIP
	}

	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first := strings.TrimSpace(strings.Split(xff, ",")[0])
		if net.ParseIP(first) != nil {
			return first
		}
	}
	if xri := strings.TrimSpace(r.Header.Get("X-Real-IP")); xri != "" {
		if net.ParseIP(xri) != nil {
			return xri
		}
	}
	return directIP
}

func (d *Detector) isTrustedProxy(ip net.IP) bool {
	for _, network := range d.trustedProxies {
		if network.Contains(ip) {
			return true
		}
	}
	return false
}
