package controller

import "net/http"

// Healthz reports process liveness.
type Healthz struct{}

func (Healthz) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
