package middleware

import (
	"net/http"
	"sync"
	"time"

	"purobeach/internal/apierror"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// ventana is a per-IP fixed-window counter. Both limiters (login and general
// API) share the implementation and differ only in limit, window and message.
type ventana struct {
	count  int
	cierre time.Time
}

type limitador struct {
	mu       sync.Mutex
	ventanas map[string]*ventana
	limite   int
	duracion time.Duration
	mensaje  string
}

func nuevoLimitador(limite int, duracion time.Duration, mensaje string) *limitador {
	l := &limitador{
		ventanas: make(map[string]*ventana),
		limite:   limite,
		duracion: duracion,
		mensaje:  mensaje,
	}
	go l.purgar()
	return l
}

// permitir counts one request for the IP and reports whether it is still
// inside the limit. Returns the window close time for the Retry-After header.
func (l *limitador) permitir(ip string) (bool, time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	v, ok := l.ventanas[ip]
	if !ok || now.After(v.cierre) {
		v = &ventana{cierre: now.Add(l.duracion)}
		l.ventanas[ip] = v
	}
	v.count++
	return v.count <= l.limite, v.cierre
}

func (l *limitador) middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ok, cierre := l.permitir(c.ClientIP())
		if !ok {
			c.Header("Retry-After", cierre.Format(time.RFC1123))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, apierror.New(l.mensaje))
			return
		}
		c.Next()
	}
}

// purgar drops expired windows so IPs that never come back don't accumulate.
func (l *limitador) purgar() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		now := time.Now()
		l.mu.Lock()
		purgadas := 0
		for ip, v := range l.ventanas {
			if now.After(v.cierre) {
				delete(l.ventanas, ip)
				purgadas++
			}
		}
		l.mu.Unlock()
		if purgadas > 0 {
			log.Debug().Int("ventanas_purgadas", purgadas).Msg("rate limiter purged")
		}
	}
}

// loginLimiter guards brute-force attempts on /v1/auth/login across the whole
// process: 20 attempts per minute per IP.
var loginLimiter = nuevoLimitador(20, time.Minute,
	"Demasiados intentos de login. Intente en 1 minuto.")

// LoginRateLimiter limits login attempts per IP.
func LoginRateLimiter() gin.HandlerFunc {
	return loginLimiter.middleware()
}

// RateLimiter returns the general-purpose per-IP limiter applied to the whole
// API surface.
func RateLimiter(limit int, window time.Duration) gin.HandlerFunc {
	return nuevoLimitador(limit, window,
		"Demasiadas solicitudes. Intente nuevamente en un momento.").middleware()
}
