package middleware

import (
	"net"
	"net/http"
	"strconv"
	"time"

	"servicio-usuarios/internal/pkg/cache"
	"servicio-usuarios/internal/pkg/logger"
)

// RateLimiter limita as requisições por IP em janelas fixas, usando contadores no cache.
// Se o cache falhar a requisição segue (fail-open) e o erro é registrado.
func RateLimiter(client cache.Client, limit int, duration time.Duration, log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip, _, err := net.SplitHostPort(r.RemoteAddr)
			if err != nil {
				ip = r.RemoteAddr
			}
			window := time.Now().UTC().Truncate(duration).Unix()
			key := "rate-limit:" + ip + ":" + strconv.FormatInt(window, 10)

			count, err := client.Incr(r.Context(), key, duration)
			if err != nil {
				log.Error("Falha ao incrementar contador de rate limit.", err)
				next.ServeHTTP(w, r)
				return
			}

			remaining := int64(limit) - count
			if remaining < 0 {
				remaining = 0
			}
			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(limit))
			w.Header().Set("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))

			if count > int64(limit) {
				w.Header().Set("Retry-After", strconv.Itoa(int(duration.Seconds())))
				writeJSON(w, http.StatusTooManyRequests, "Límite de solicitudes excedido. Intente más tarde.")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
