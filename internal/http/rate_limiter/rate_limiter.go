package rate_limiter

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// 5 requests/sec with a burst of 10 per client IP.
const (
	requestsPerSecond = 5
	burst             = 10
)

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

var (
	visitors = make(map[string]*clientLimiter)
	mu       sync.Mutex
)

func GetVisitor(ip string) *rate.Limiter {
	mu.Lock()
	defer mu.Unlock()

	v, exists := visitors[ip]
	if !exists {
		limiter := rate.NewLimiter(requestsPerSecond, burst)
		visitors[ip] = &clientLimiter{limiter, time.Now()}
		return limiter
	}

	v.lastSeen = time.Now()
	return v.limiter
}

func StartVisitorCleanupLoop() {
	for {
		time.Sleep(time.Minute)
		mu.Lock()
		for ip, v := range visitors {
			if time.Since(v.lastSeen) > 5*time.Minute {
				delete(visitors, ip)
			}
		}
		mu.Unlock()
	}
}

func CleanupAllVisitors() {
	mu.Lock()
	defer mu.Unlock()
	visitors = make(map[string]*clientLimiter)
}
