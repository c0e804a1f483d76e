package httpmw

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
)

type LastAccessedToucher interface {
	TouchLastAccessed(ctx context.Context, roomName, username string) error
}

// LastAccessedMiddleware moves the caller's read marker whenever a request names
// both a room and a username in the query. Best-effort: failures never interrupt
// the request.
func LastAccessedMiddleware(memberSvc LastAccessedToucher) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if username := r.URL.Query().Get("username"); username != "" {
				if roomName := chi.URLParam(r, "roomName"); roomName != "" {
					_ = memberSvc.TouchLastAccessed(r.Context(), roomName, username)
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}
