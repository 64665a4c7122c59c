package responses

// Health reports liveness plus enough build info to identify the
// running deployment.
type Health struct {
	Status      string `json:"status"`
	Version     string `json:"version"`
	Environment string `json:"environment"`
}
