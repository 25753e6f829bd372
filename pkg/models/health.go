package models

// HealthHealthy is the status value reported by a reachable backend.
const HealthHealthy = "healthy"

// HealthStatus is the response of the backend health endpoint.
type HealthStatus struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// Healthy reports whether the backend declared itself healthy.
func (h HealthStatus) Healthy() bool {
	return h.Status == HealthHealthy
}
