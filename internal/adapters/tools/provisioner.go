package tools

import (
	"context"
	"encoding/json"

	"github.com/torrust/tracker-deployer/internal/core/entities"
	"github.com/torrust/tracker-deployer/internal/core/usecases"
)

const provisionerBin = "tofu"

// Provisioner wraps the OpenTofu CLI, running every command with workDir as
// its working directory.
type Provisioner struct{}

var _ usecases.ProvisionerClient = (*Provisioner)(nil)

// NewProvisioner returns a ready-to-use Provisioner.
func NewProvisioner() *Provisioner {
	return &Provisioner{}
}

func (p *Provisioner) Init(ctx context.Context, workDir string) error {
	return run(ctx, workDir, provisionerBin, "init", "-input=false")
}

func (p *Provisioner) Apply(ctx context.Context, workDir string) error {
	return run(ctx, workDir, provisionerBin, "apply", "-auto-approve", "-input=false")
}

func (p *Provisioner) Destroy(ctx context.Context, workDir string) error {
	return run(ctx, workDir, provisionerBin, "destroy", "-auto-approve", "-input=false")
}

// tofuOutputValue is one entry of `tofu output -json`.
type tofuOutputValue struct {
	Value string `json:"value"`
}

func (p *Provisioner) Output(ctx context.Context, workDir string) (usecases.InstanceInfo, error) {
	stdout, _, err := capture(ctx, workDir, provisionerBin, "output", "-json")
	if err != nil {
		return usecases.InstanceInfo{}, err
	}

	var raw map[string]tofuOutputValue
	if err := json.Unmarshal(stdout, &raw); err != nil {
		return usecases.InstanceInfo{}, &entities.OutputParseError{Tool: provisionerBin, Raw: string(stdout), Err: err}
	}

	info := usecases.InstanceInfo{
		Name:      raw["name"].Value,
		IPAddress: raw["ip_address"].Value,
		Status:    raw["status"].Value,
		Image:     raw["image"].Value,
	}
	return info, nil
}
