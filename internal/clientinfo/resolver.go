// Package clientinfo resolves the caller's IP from proxy headers.
package clientinfo

import (
	"net"
	"net/http"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Info is the /api/client-info response body.
type Info struct {
	IP     string `json:"ip"`
	Source string `json:"source"`
}

const (
	SourceForwardedFor = "x-forwarded-for"
	SourceRealIP       = "x-real-ip"
	SourceRemoteAddr   = "remote-addr"

	// cacheTTL is the fixed expiry for resolved entries. Short enough that
	// a client moving behind a different proxy hop is picked up quickly.
	cacheTTL = 60 * time.Second
)

// Resolver resolves and caches client IPs. The cache is process-local and
// keyed by the connection's remote address.
type Resolver struct {
	cache *gocache.Cache
}

func NewResolver() *Resolver {
	return &Resolver{
		cache: gocache.New(cacheTTL, 2*cacheTTL),
	}
}

// Resolve returns the client info for r, serving from the 60s cache when
// the same remote address asked recently.
func (rv *Resolver) Resolve(r *http.Request) Info {
	key := r.RemoteAddr

	if v, ok := rv.cache.Get(key); ok {
		return v.(Info)
	}

	info := resolve(r)
	rv.cache.Set(key, info, gocache.DefaultExpiration)
	return info
}

// resolve applies the header precedence: X-Forwarded-For (first hop),
// then X-Real-IP, then the socket's remote address.
func resolve(r *http.Request) Info {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return Info{IP: ip, Source: SourceForwardedFor}
		}
	}

	if rip := strings.TrimSpace(r.Header.Get("X-Real-IP")); rip != "" {
		return Info{IP: rip, Source: SourceRealIP}
	}

	ip := r.RemoteAddr
	if host, _, err := net.SplitHostPort(ip); err == nil {
		ip = host
	}
	return Info{IP: ip, Source: SourceRemoteAddr}
}
