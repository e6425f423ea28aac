package tools

import (
	"context"
	"encoding/json"

	"github.com/torrust/tracker-deployer/internal/core/entities"
	"github.com/torrust/tracker-deployer/internal/core/usecases"
)

const vmManagerBin = "lxc"

// lxcInstance is one entry of `lxc list --format=json`.
type lxcInstance struct {
	Name  string `json:"name"`
	State struct {
		Network map[string]struct {
			Addresses []struct {
				Family  string `json:"family"`
				Address string `json:"address"`
			} `json:"addresses"`
		} `json:"network"`
	} `json:"state"`
}

// VMManager wraps the LXC CLI used by the lxd provider variant.
type VMManager struct{}

var _ usecases.VMManagerClient = (*VMManager)(nil)

// NewVMManager returns a ready-to-use VMManager.
func NewVMManager() *VMManager {
	return &VMManager{}
}

func (v *VMManager) List(ctx context.Context) ([]usecases.VMInfo, error) {
	stdout, _, err := capture(ctx, "", vmManagerBin, "list", "--format=json")
	if err != nil {
		return nil, err
	}

	var raw []lxcInstance
	if err := json.Unmarshal(stdout, &raw); err != nil {
		return nil, &entities.OutputParseError{Tool: vmManagerBin, Raw: string(stdout), Err: err}
	}

	infos := make([]usecases.VMInfo, 0, len(raw))
	for _, inst := range raw {
		info := usecases.VMInfo{Name: inst.Name}
		for _, net := range inst.State.Network {
			if net.Addresses == nil {
				continue
			}
			for _, addr := range net.Addresses {
				if addr.Family == "inet" {
					ip := addr.Address
					info.IPAddress = &ip
				}
			}
		}
		infos = append(infos, info)
	}
	return infos, nil
}

func (v *VMManager) Delete(ctx context.Context, name string, force bool) error {
	args := []string{"delete", name}
	if force {
		args = append(args, "--force")
	}
	return run(ctx, "", vmManagerBin, args...)
}

func (v *VMManager) DeleteProfile(ctx context.Context, name string) error {
	return run(ctx, "", vmManagerBin, "profile", "delete", name)
}
