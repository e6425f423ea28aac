// Package cli assembles the command handlers' adapters and Cobra wiring.
package cli

import (
	"github.com/torrust/tracker-deployer/internal/adapters/filesystem"
	"github.com/torrust/tracker-deployer/internal/adapters/render"
	"github.com/torrust/tracker-deployer/internal/adapters/tools"
	"github.com/torrust/tracker-deployer/internal/core/entities"
	"github.com/torrust/tracker-deployer/internal/core/usecases"
)

// Deps bundles every adapter a command handler needs, all rooted at one
// working directory. Built once per invocation by newDeps in root.go.
type Deps struct {
	WorkingDir string

	Repo   *filesystem.EnvironmentRepository
	Layout *filesystem.Layout

	ProvisionerRenderer  *render.ProvisionerRenderer
	ConfigEngineRenderer *render.ConfigEngineRenderer
	ContainerRenderer    *render.ContainerRuntimeRenderer

	Provisioner     *tools.Provisioner
	VMManager       *tools.VMManager
	SSH             *tools.SSHClient
	ConfigEngine    *tools.ConfigEngine
	ContainerRuntime *tools.ContainerRuntime

	Clock    entities.Clock
	Progress usecases.ProgressListener
	Logger   usecases.Logger
}

// NewDeps wires every adapter against workingDir using the real external
// tools (tofu, lxc, ansible-playbook, docker compose over SSH).
func NewDeps(workingDir string, progress usecases.ProgressListener, log usecases.Logger) *Deps {
	templateEngine := render.NewTemplateEngine()
	ssh := tools.NewSSHClient()

	return &Deps{
		WorkingDir: workingDir,

		Repo:   filesystem.NewEnvironmentRepository(workingDir, log),
		Layout: filesystem.NewLayout(workingDir),

		ProvisionerRenderer:  render.NewProvisionerRenderer(templateEngine),
		ConfigEngineRenderer: render.NewConfigEngineRenderer(templateEngine),
		ContainerRenderer:    render.NewContainerRuntimeRenderer(templateEngine),

		Provisioner:      tools.NewProvisioner(),
		VMManager:        tools.NewVMManager(),
		SSH:              ssh,
		ConfigEngine:     tools.NewConfigEngine(),
		ContainerRuntime: tools.NewContainerRuntime(ssh),

		Clock:    entities.SystemClock{},
		Progress: progress,
		Logger:   log,
	}
}
