package usecases

import (
	"encoding/json"

	"github.com/torrust/tracker-deployer/internal/core/entities"
)

// CreateTemplate emits a starter environment config file a user can edit
// and feed to `create-environment --env-file`.
type CreateTemplate struct{}

// NewCreateTemplate constructs a CreateTemplate use case.
func NewCreateTemplate() *CreateTemplate {
	return &CreateTemplate{}
}

// templateDoc mirrors the on-disk --env-file shape (§6.3): environment,
// ssh_credentials, provider, tracker sections.
type templateDoc struct {
	Environment struct {
		Name string `json:"name"`
	} `json:"environment"`
	SshCredentials templateSshCredentials `json:"ssh_credentials"`
	Provider       json.RawMessage        `json:"provider"`
	Tracker        entities.TrackerConfig `json:"tracker"`
}

type templateSshCredentials struct {
	PrivateKeyPath string `json:"private_key_path"`
	PublicKeyPath  string `json:"public_key_path"`
	Username       string `json:"username"`
}

// Execute returns the JSON body of a starter config file for the given
// provider kind ("lxd" or "hetzner", defaulting to "lxd").
func (uc *CreateTemplate) Execute(providerKind string) ([]byte, error) {
	if providerKind == "" {
		providerKind = "lxd"
	}

	var provider json.RawMessage
	switch providerKind {
	case "hetzner":
		provider = json.RawMessage(`{
    "kind": "hetzner",
    "api_token": "REPLACE_ME",
    "server_type": "cx22",
    "location": "nbg1",
    "image": "ubuntu-24.04"
  }`)
	default:
		provider = json.RawMessage(`{
    "kind": "lxd",
    "profile_name": "tracker"
  }`)
	}

	doc := templateDoc{
		SshCredentials: templateSshCredentials{
			PrivateKeyPath: "~/.ssh/id_ed25519",
			PublicKeyPath:  "~/.ssh/id_ed25519.pub",
			Username:       "torrust",
		},
		Provider: provider,
		Tracker: entities.TrackerConfig{
			Core: entities.TrackerCoreConfig{
				Database:   entities.DatabaseSQLite3,
				Private:    false,
				AdminToken: "REPLACE_ME",
			},
			UDPTrackers:    []entities.ListenerConfig{{BindAddress: "0.0.0.0:6969"}},
			HTTPTrackers:   []entities.ListenerConfig{{BindAddress: "0.0.0.0:7070"}},
			HTTPApi:        entities.HTTPApiConfig{BindAddress: "127.0.0.1:1212", AdminToken: "REPLACE_ME"},
			HealthCheckApi: entities.HealthCheckConfig{BindAddress: "127.0.0.1:1313"},
		},
	}
	doc.Environment.Name = "my-tracker"

	return json.MarshalIndent(doc, "", "  ")
}

// Schema returns a hand-rolled JSON Schema for the --env-file format,
// reflecting the section names a user must supply rather than generating
// one from struct tags at runtime — the shape is small and fixed enough
// that a literal is clearer than a reflection-based builder.
func (uc *CreateTemplate) Schema() []byte {
	schema := map[string]any{
		"$schema": "http://json-schema.org/draft-07/schema#",
		"title":   "tracker-deployer environment config",
		"type":    "object",
		"required": []string{"environment", "ssh_credentials", "provider", "tracker"},
		"properties": map[string]any{
			"environment": map[string]any{
				"type":     "object",
				"required": []string{"name"},
				"properties": map[string]any{
					"name": map[string]any{"type": "string", "pattern": "^[a-z]([a-z0-9-]*[a-z0-9])?$"},
				},
			},
			"ssh_credentials": map[string]any{
				"type":     "object",
				"required": []string{"private_key_path", "public_key_path", "username"},
			},
			"provider": map[string]any{
				"type":     "object",
				"required": []string{"kind"},
				"properties": map[string]any{
					"kind": map[string]any{"enum": []string{"lxd", "hetzner"}},
				},
			},
			"tracker": map[string]any{
				"type":     "object",
				"required": []string{"core", "udp_trackers", "http_trackers", "http_api", "health_check_api"},
			},
		},
	}
	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return nil
	}
	return data
}
