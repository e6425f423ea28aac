package usecases

import (
	"context"

	"github.com/torrust/tracker-deployer/internal/core/entities"
)

// Provision advances an environment from Created to Provisioned: it
// renders the infra-provisioner's files, runs init/apply, parses the
// resulting instance IP, and waits for SSH connectivity before
// committing success.
type Provision struct {
	repo       EnvironmentRepository
	layout     Layout
	renderer   ProvisionerRenderer
	provisioner ProvisionerClient
	ssh        SSHClient
	clock      entities.Clock
	progress   ProgressListener
}

// NewProvision constructs a Provision use case.
func NewProvision(repo EnvironmentRepository, layout Layout, renderer ProvisionerRenderer, provisioner ProvisionerClient, ssh SSHClient, clock entities.Clock, progress ProgressListener) *Provision {
	return &Provision{
		repo:        repo,
		layout:      layout,
		renderer:    renderer,
		provisioner: provisioner,
		ssh:         ssh,
		clock:       clock,
		progress:    withProgress(progress),
	}
}

// Execute runs the provision transition for the named environment.
func (uc *Provision) Execute(ctx context.Context, name entities.EnvironmentName) (entities.Environment, error) {
	env, found, err := uc.repo.Load(ctx, name)
	if err != nil {
		return entities.Environment{}, err
	}
	if !found {
		return entities.Environment{}, &entities.EnvironmentNotFoundError{Name: name.String()}
	}
	if err := env.RequireState(entities.StateCreated); err != nil {
		return entities.Environment{}, err
	}

	now := uc.clock.Now()
	env = env.WithState(entities.NewState(entities.StateProvisioning, now))
	if err := uc.repo.Save(ctx, env); err != nil {
		return entities.Environment{}, err
	}

	uc.progress.OnStepStart("provision")
	info, err := uc.runProvisioner(ctx, env)
	if err != nil {
		failed := env.WithState(entities.NewFailureState(entities.StateProvisionFailed, uc.clock.Now(), entities.NewFailure("ExternalToolFailure", "provisioner apply", err)))
		_ = uc.repo.Save(ctx, failed)
		uc.progress.OnStepFinish("provision", err)
		return entities.Environment{}, err
	}

	env = env.WithInstanceIP(info.IPAddress)
	env = env.WithState(entities.NewState(entities.StateProvisioned, uc.clock.Now()))
	if err := uc.repo.Save(ctx, env); err != nil {
		return entities.Environment{}, err
	}
	uc.progress.OnStepFinish("provision", nil)
	return env, nil
}

func (uc *Provision) runProvisioner(ctx context.Context, env entities.Environment) (InstanceInfo, error) {
	paths := uc.layout.BuildPaths(env.Name)

	if err := uc.renderer.Render(ctx, paths.Tofu, env); err != nil {
		return InstanceInfo{}, err
	}

	if err := uc.provisioner.Init(ctx, paths.Tofu); err != nil {
		return InstanceInfo{}, err
	}
	if err := uc.provisioner.Apply(ctx, paths.Tofu); err != nil {
		return InstanceInfo{}, err
	}

	info, err := uc.provisioner.Output(ctx, paths.Tofu)
	if err != nil {
		return InstanceInfo{}, err
	}

	host, err := entities.NewAnsibleHost(info.IPAddress)
	if err != nil {
		return InstanceInfo{}, err
	}
	addr := entities.NewSshSocketAddr(host, mustAnsiblePort(22))
	if err := uc.ssh.WaitForConnectivity(ctx, addr, env.SshCredentials); err != nil {
		return InstanceInfo{}, err
	}

	return info, nil
}

func mustAnsiblePort(p uint16) entities.AnsiblePort {
	port, err := entities.NewAnsiblePort(p)
	if err != nil {
		panic(err)
	}
	return port
}
