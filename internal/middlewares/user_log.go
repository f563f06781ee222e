package middlewares

import (
	"net/http"

	"github.com/saulo-duarte/quizgen-lambda/internal/config"
)

// UserLog records which user key hit which route. The key is opaque and is
// only used for correlation.
func UserLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if user := r.Header.Get(config.UserHeader); user != "" {
			config.WithContext(r.Context()).
				WithField("user", user).
				WithField("path", r.URL.Path).
				Debug("Request")
		}
		next.ServeHTTP(w, r)
	})
}
