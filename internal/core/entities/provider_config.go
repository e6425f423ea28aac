package entities

// ProviderKind discriminates the infrastructure provisioner variant.
type ProviderKind string

const (
	ProviderLXD     ProviderKind = "lxd"
	ProviderHetzner ProviderKind = "hetzner"
)

// ProviderConfig is a tagged variant: either a local-VM provider identified
// by profile name, or a remote-cloud provider identified by API token,
// server type, location, and image.
type ProviderConfig struct {
	Kind ProviderKind `json:"kind"`

	// lxd
	ProfileName *ProfileName `json:"profile_name,omitempty"`

	// hetzner
	APIToken   string `json:"api_token,omitempty"`
	ServerType string `json:"server_type,omitempty"`
	Location   string `json:"location,omitempty"`
	Image      string `json:"image,omitempty"`
}

// NewLXDProviderConfig constructs a local-VM provider configuration.
func NewLXDProviderConfig(profile ProfileName) ProviderConfig {
	return ProviderConfig{Kind: ProviderLXD, ProfileName: &profile}
}

// NewHetznerProviderConfig constructs a remote-cloud provider configuration.
func NewHetznerProviderConfig(apiToken, serverType, location, image string) (ProviderConfig, error) {
	if apiToken == "" {
		return ProviderConfig{}, newValidationError("api_token", apiToken, "must not be empty")
	}
	if serverType == "" {
		return ProviderConfig{}, newValidationError("server_type", serverType, "must not be empty")
	}
	return ProviderConfig{
		Kind:       ProviderHetzner,
		APIToken:   apiToken,
		ServerType: serverType,
		Location:   location,
		Image:      image,
	}, nil
}
