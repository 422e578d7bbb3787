package middleware

import (
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/sanisamoj/Borai-sub000/internal/api/handler/v1/response"
)

// LimitValues reports the current requests-per-second and burst.
type LimitValues interface {
	Values() (float64, int)
}

type visitor struct {
	limiter  *rate.Limiter
	rps      float64
	burst    int
	lastSeen time.Time
}

// RateLimiter keeps one token bucket per caller. Callers are keyed by user
// id when authenticated and by client IP otherwise.
type RateLimiter struct {
	conf        LimitValues
	mu          sync.Mutex
	visitors    map[string]*visitor
	idleTTL     time.Duration
	lastCleanup time.Time
}

func NewRateLimiter(conf LimitValues) *RateLimiter {
	return &RateLimiter{
		conf:     conf,
		visitors: make(map[string]*visitor),
		idleTTL:  10 * time.Minute,
	}
}

func (l *RateLimiter) Limit() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		key := ctx.ClientIP()
		if id, ok := UserID(ctx); ok {
			key = id.String()
		}

		if !l.allow(key, time.Now()) {
			response.RenderErr(ctx, response.ErrTooManyRequests())
			return
		}
		ctx.Next()
	}
}

func (l *RateLimiter) allow(key string, now time.Time) bool {
	rps, burst := l.conf.Values()

	l.mu.Lock()
	defer l.mu.Unlock()

	if now.Sub(l.lastCleanup) > time.Minute {
		for k, v := range l.visitors {
			if now.Sub(v.lastSeen) > l.idleTTL {
				delete(l.visitors, k)
			}
		}
		l.lastCleanup = now
	}

	v, ok := l.visitors[key]
	if !ok || v.rps != rps || v.burst != burst {
		v = &visitor{
			limiter: rate.NewLimiter(rate.Limit(rps), burst),
			rps:     rps,
			burst:   burst,
		}
		l.visitors[key] = v
	}
	v.lastSeen = now

	return v.limiter.AllowN(now, 1)
}
