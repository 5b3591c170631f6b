package rest

import "net/http"

type pingHandler struct{}

func newPingHandler() *pingHandler {
	return &pingHandler{}
}

// PingHandler answers liveness checks on the ops server.
func (that *pingHandler) PingHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("pong"))
}
