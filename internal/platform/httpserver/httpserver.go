package httpserver

import (
	"net/http"
	"time"
)

// Timeouts sized for this service's slowest legitimate requests: multipart
// docket uploads on the way in, petition zip archives and proxied UJS
// searches on the way out.
const (
	readHeaderTimeout = 5 * time.Second
	readTimeout       = 2 * time.Minute
	writeTimeout      = 2 * time.Minute
	idleTimeout       = 90 * time.Second
)

// New builds the API server.
func New(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: readHeaderTimeout,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
	}
}
