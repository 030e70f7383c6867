package audit

import (
	"net/http"

	id "cleanslate/pkg/domain"
	"cleanslate/pkg/requestcontext"
)

// Middleware records mutating requests made by authenticated users. Events go
// through the inbox channel so a slow store never stalls a request; when the
// channel is full the event is dropped.
func Middleware(inbox chan<- Event) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r)

			if r.Method == http.MethodGet || r.Method == http.MethodHead {
				return
			}
			userID := requestcontext.UserID(r.Context())
			if userID == (id.UserID{}) {
				return
			}
			event := Event{
				Timestamp: requestcontext.Now(r.Context()),
				UserID:    userID,
				Action:    r.Method,
				Path:      r.URL.Path,
			}
			select {
			case inbox <- event:
			default:
			}
		})
	}
}
