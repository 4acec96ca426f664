package feed

import (
	"net/http"
	"sync/atomic"
)

// countingHandler counts requests before delegating, so cache tests can
// assert how often the upstream was actually contacted.
func countingHandler(n *atomic.Int32, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n.Add(1)
		next.ServeHTTP(w, r)
	})
}
