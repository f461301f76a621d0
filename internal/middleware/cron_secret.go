package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"
)

// CronSecret protege los endpoints invocados por el scheduler con un
// secreto compartido en el header X-Cron-Secret. Sin secreto
// configurado, el endpoint queda cerrado (nunca abierto por defecto).
func CronSecret(secret string) func(http.Handler) http.Handler {
	secret = strings.TrimSpace(secret)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if secret == "" {
				http.Error(w, "cron disabled", http.StatusServiceUnavailable)
				return
			}

			got := strings.TrimSpace(r.Header.Get("X-Cron-Secret"))
			if subtle.ConstantTimeCompare([]byte(got), []byte(secret)) != 1 {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
