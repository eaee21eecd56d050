// FilePath: api/middleware/api.middleware.requestlog.go
package middleware

import (
	"bytes"
	"io"
	"net/http"
	"strings"

	nuts "github.com/vaudience/go-nuts"
)

// maxLoggedBodyBytes caps how much of a request body lands in the log.
const maxLoggedBodyBytes = 2048

// LogRequestBody logs incoming webhook bodies at debug level. The body is
// re-buffered so downstream handlers can still read it.
func LogRequestBody(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		loggable := r.Method == http.MethodPost || r.Method == http.MethodPut
		if loggable && r.Body != nil && !strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/") {
			body, err := io.ReadAll(io.LimitReader(r.Body, maxLoggedBodyBytes))
			if err == nil {
				nuts.L.Debugf("[Request] %s %s body: %s", r.Method, r.URL.Path, body)
				r.Body = io.NopCloser(io.MultiReader(bytes.NewReader(body), r.Body))
			}
		}
		next.ServeHTTP(w, r)
	})
}
