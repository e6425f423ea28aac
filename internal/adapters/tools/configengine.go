package tools

import (
	"context"
	"path/filepath"

	"github.com/torrust/tracker-deployer/internal/core/usecases"
)

const configEngineBin = "ansible-playbook"

// ConfigEngine wraps the ansible-playbook CLI, one invocation per playbook
// against the rendered inventory.
type ConfigEngine struct{}

var _ usecases.ConfigEngineClient = (*ConfigEngine)(nil)

// NewConfigEngine returns a ready-to-use ConfigEngine.
func NewConfigEngine() *ConfigEngine {
	return &ConfigEngine{}
}

// RunPlaybook runs playbook against inventory.ini inside inventoryDir.
func (c *ConfigEngine) RunPlaybook(ctx context.Context, inventoryDir string, playbook string) error {
	inventory := filepath.Join(inventoryDir, "inventory.ini")
	playbookPath := filepath.Join(inventoryDir, "playbooks", playbook)
	return run(ctx, inventoryDir, configEngineBin, "-i", inventory, playbookPath)
}
