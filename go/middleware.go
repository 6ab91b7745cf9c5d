package adoptionserver

import (
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	accountsdomain "github.com/Apurer/go-gin-adoption-server/internal/domains/accounts/domain"
	accountsports "github.com/Apurer/go-gin-adoption-server/internal/domains/accounts/ports"
	"github.com/Apurer/go-gin-adoption-server/internal/platform/metrics"
	apierrors "github.com/Apurer/go-gin-adoption-server/internal/shared/errors"
)

const (
	// DefaultCookieName carries the session token for browsers.
	DefaultCookieName = "session_token"

	contextIdentityKey = "identity"
	contextTokenKey    = "sessionToken"
)

// Authenticate attaches the caller's identity when the request carries a valid
// session token in the cookie or a bearer header. It never rejects a request;
// RequireIdentity does.
func Authenticate(accounts accountsports.Service, cookieName string) gin.HandlerFunc {
	if cookieName == "" {
		cookieName = DefaultCookieName
	}
	return func(c *gin.Context) {
		if accounts == nil {
			c.Next()
			return
		}
		token := bearerToken(c.GetHeader("Authorization"))
		if token == "" {
			token, _ = c.Cookie(cookieName)
		}
		if token = strings.TrimSpace(token); token == "" {
			c.Next()
			return
		}
		identity, err := accounts.Authenticate(c.Request.Context(), token)
		if err == nil {
			c.Set(contextIdentityKey, identity)
			c.Set(contextTokenKey, token)
		}
		c.Next()
	}
}

// RequireIdentity rejects requests without an authenticated session.
func RequireIdentity() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := CurrentIdentity(c); !ok {
			respondProblem(c, apierrors.ErrUnauthorized.WithDetail("login required"))
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireRoles rejects authenticated callers whose role is not listed.
func RequireRoles(roles ...accountsdomain.Role) gin.HandlerFunc {
	allowed := make(map[accountsdomain.Role]struct{}, len(roles))
	for _, role := range roles {
		allowed[role] = struct{}{}
	}
	return func(c *gin.Context) {
		identity, ok := CurrentIdentity(c)
		if !ok {
			respondProblem(c, apierrors.ErrUnauthorized.WithDetail("login required"))
			c.Abort()
			return
		}
		if _, ok := allowed[identity.Role]; !ok {
			respondProblem(c, apierrors.ErrForbidden.WithDetail("insufficient role"))
			c.Abort()
			return
		}
		c.Next()
	}
}

// CurrentIdentity returns the identity attached by Authenticate.
func CurrentIdentity(c *gin.Context) (accountsdomain.Identity, bool) {
	value, ok := c.Get(contextIdentityKey)
	if !ok {
		return accountsdomain.Identity{}, false
	}
	identity, ok := value.(accountsdomain.Identity)
	return identity, ok
}

func currentToken(c *gin.Context) string {
	return c.GetString(contextTokenKey)
}

// Metrics records request count and latency per route template.
func Metrics(registry *metrics.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		if registry == nil {
			c.Next()
			return
		}
		start := time.Now()
		c.Next()
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		registry.ObserveHTTPRequest(c.Request.Method, path, c.Writer.Status(), time.Since(start))
	}
}

const limiterIdleTTL = 10 * time.Minute

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// LoginRateLimiter throttles login attempts per client IP with a token bucket.
type LoginRateLimiter struct {
	mu       sync.Mutex
	clients  map[string]*clientLimiter
	limit    rate.Limit
	burst    int
	registry *metrics.Registry
	now      func() time.Time
}

// NewLoginRateLimiter allows perSecond attempts with the given burst. A
// non-positive rate disables limiting.
func NewLoginRateLimiter(perSecond float64, burst int, registry *metrics.Registry) *LoginRateLimiter {
	if burst <= 0 {
		burst = 1
	}
	return &LoginRateLimiter{
		clients:  make(map[string]*clientLimiter),
		limit:    rate.Limit(perSecond),
		burst:    burst,
		registry: registry,
		now:      time.Now,
	}
}

// Allow reports whether the client may attempt another login now.
func (l *LoginRateLimiter) Allow(clientIP string) bool {
	if l == nil || l.limit <= 0 {
		return true
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	entry, ok := l.clients[clientIP]
	if !ok {
		l.evictIdle(now)
		entry = &clientLimiter{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.clients[clientIP] = entry
	}
	entry.lastSeen = now
	return entry.limiter.AllowN(now, 1)
}

func (l *LoginRateLimiter) evictIdle(now time.Time) {
	for ip, entry := range l.clients {
		if now.Sub(entry.lastSeen) > limiterIdleTTL {
			delete(l.clients, ip)
		}
	}
}

// Middleware answers 429 once a client exhausts its budget.
func (l *LoginRateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if l.Allow(c.ClientIP()) {
			c.Next()
			return
		}
		if l.registry != nil {
			path := c.FullPath()
			if path == "" {
				path = c.Request.URL.Path
			}
			l.registry.RecordRateLimited(path)
		}
		c.Header("Retry-After", "1")
		respondProblem(c, apierrors.ErrTooManyRequests.WithDetail("too many login attempts, try again later"))
		c.Abort()
	}
}
