package version

// GetVersionRequest has no fields, the version is global to the bridge
type GetVersionRequest struct{}

// GetVersionResponse describes the API version along with the packet
// schema and key hash the bridge was built with
type GetVersionResponse struct {
	Version int    `json:"version"`
	Module  string `json:"module"`
	KeyHash string `json:"keyHash"`
}
