package handler

import "net/http"

// Status reports liveness and the running version.
type Status struct {
	version string
}

func NewStatus(version string) *Status {
	return &Status{version: version}
}

type statusResponse struct {
	Healthy bool   `json:"healthy"`
	Version string `json:"version"`
}

func (h *Status) Status(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, statusResponse{Healthy: true, Version: h.version})
}

// NotFound answers unknown routes with a JSON body.
func NotFound(w http.ResponseWriter, _ *http.Request) {
	writeMessage(w, http.StatusNotFound, "route not found")
}

func MethodNotAllowed(w http.ResponseWriter, _ *http.Request) {
	writeMessage(w, http.StatusMethodNotAllowed, "method not allowed")
}
