package redisserver

import (
	"net"
	"sync"
	"time"

	"github.com/bluele/gcache"
	"golang.org/x/time/rate"
)

const (
	// limiterCacheSize bounds the number of client IPs tracked at once.
	limiterCacheSize = 1024

	// limiterIdleExpiry drops the bucket of an IP that stopped sending.
	limiterIdleExpiry = 10 * time.Minute
)

// ipRateLimiter keeps one token bucket per client IP in an LRU cache.
type ipRateLimiter struct {
	mu    sync.Mutex
	cache gcache.Cache
	r     rate.Limit
	b     int
}

// newIPRateLimiter returns nil when perSecond is not positive, which
// disables limiting. A burst below 1 defaults to perSecond.
func newIPRateLimiter(perSecond, burst int) *ipRateLimiter {
	if perSecond <= 0 {
		return nil
	}
	if burst < 1 {
		burst = perSecond
	}
	return &ipRateLimiter{
		cache: gcache.New(limiterCacheSize).LRU().Build(),
		r:     rate.Limit(perSecond),
		b:     burst,
	}
}

func (l *ipRateLimiter) limiter(ip string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	if v, err := l.cache.Get(ip); err == nil {
		return v.(*rate.Limiter)
	}
	lim := rate.NewLimiter(l.r, l.b)
	_ = l.cache.SetWithExpire(ip, lim, limiterIdleExpiry)
	return lim
}

// allow reports whether a request from addr may proceed.
// A nil limiter allows everything.
func (l *ipRateLimiter) allow(addr net.Addr) bool {
	if l == nil {
		return true
	}
	return l.limiter(hostOf(addr)).Allow()
}

func hostOf(addr net.Addr) string {
	if addr == nil {
		return ""
	}
	if tcp, ok := addr.(*net.TCPAddr); ok {
		return tcp.IP.String()
	}
	host, _, err := net.SplitHostPort(addr.String())
	if err != nil {
		return addr.String()
	}
	return host
}
