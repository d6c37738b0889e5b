package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"elysee/internal/apierror"
	"elysee/internal/metrics"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// Cle picks the bucket a request is counted in.
type Cle func(c *gin.Context) string

// ParIP counts requests per client IP.
func ParIP(c *gin.Context) string { return "ip:" + c.ClientIP() }

// ParUtilisateur counts requests per authenticated user, falling back to the
// IP before JWTAuth has run.
func ParUtilisateur(c *gin.Context) string {
	if claims := GetClaims(c); claims != nil && claims.UserID != "" {
		return "user:" + claims.UserID
	}
	return ParIP(c)
}

type fenetre struct {
	count     int
	windowEnd time.Time
	mu        sync.Mutex
}

// Limiteur caps requests per key over a fixed window. Each instance owns
// its buckets; expired ones are dropped by the package purge loop.
type Limiteur struct {
	nom     string
	limit   int
	window  time.Duration
	cle     Cle
	message string
	now     func() time.Time

	mu      sync.Mutex
	entries map[string]*fenetre
}

var (
	limiteurs   []*Limiteur
	limiteursMu sync.Mutex
)

// NewLimiteur registers a limiter. A limit <= 0 disables it.
func NewLimiteur(nom string, limit int, window time.Duration, cle Cle, message string) *Limiteur {
	l := &Limiteur{
		nom:     nom,
		limit:   limit,
		window:  window,
		cle:     cle,
		message: message,
		now:     time.Now,
		entries: make(map[string]*fenetre),
	}
	limiteursMu.Lock()
	limiteurs = append(limiteurs, l)
	limiteursMu.Unlock()
	return l
}

// Middleware returns the gin handler enforcing the limit.
func (l *Limiteur) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if l.limit <= 0 {
			c.Next()
			return
		}
		key := l.cle(c)

		l.mu.Lock()
		entry, ok := l.entries[key]
		if !ok {
			entry = &fenetre{}
			l.entries[key] = entry
		}
		l.mu.Unlock()

		entry.mu.Lock()
		now := l.now()
		if now.After(entry.windowEnd) {
			entry.count = 0
			entry.windowEnd = now.Add(l.window)
		}
		entry.count++
		depasse := entry.count > l.limit
		reste := entry.windowEnd.Sub(now)
		entry.mu.Unlock()

		if depasse {
			metrics.RequetesLimitees.WithLabelValues(l.nom).Inc()
			c.Header("Retry-After", strconv.Itoa(int(reste.Seconds())+1))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, apierror.New(l.message))
			return
		}
		c.Next()
	}
}

// Purger drops the buckets whose window ended before now and returns how
// many were removed.
func (l *Limiteur) Purger(now time.Time) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	n := 0
	for key, entry := range l.entries {
		entry.mu.Lock()
		if now.After(entry.windowEnd) {
			delete(l.entries, key)
			n++
		}
		entry.mu.Unlock()
	}
	return n
}

// Taille is the number of live buckets.
func (l *Limiteur) Taille() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

// LoginRateLimiter guards login and refresh, per IP.
func LoginRateLimiter(limit int) gin.HandlerFunc {
	return NewLimiteur("login", limit, time.Minute, ParIP,
		"trop de tentatives de connexion, réessayez dans une minute").Middleware()
}

// RateLimiter caps requests per IP over a fixed window.
func RateLimiter(limit int, window time.Duration) gin.HandlerFunc {
	return NewLimiteur("api", limit, window, ParIP,
		"trop de requêtes, réessayez dans un instant").Middleware()
}

// ImportRateLimiter caps workbook imports per user and per hour. It must run
// after JWTAuth.
func ImportRateLimiter(limit int) gin.HandlerFunc {
	return NewLimiteur("import", limit, time.Hour, ParUtilisateur,
		"trop d'imports, réessayez plus tard").Middleware()
}

// ── Purge goroutine ───────────────────────────────────────────────────────────

const purgeInterval = 5 * time.Minute

func init() {
	go purgeExpiredEntries()
}

func purgeExpiredEntries() {
	ticker := time.NewTicker(purgeInterval)
	defer ticker.Stop()

	for now := range ticker.C {
		limiteursMu.Lock()
		actifs := append([]*Limiteur(nil), limiteurs...)
		limiteursMu.Unlock()

		for _, l := range actifs {
			if n := l.Purger(now); n > 0 {
				log.Debug().Str("limiteur", l.nom).Int("purges", n).Int("restants", l.Taille()).Msg("rate limiter purgé")
			}
		}
	}
}
