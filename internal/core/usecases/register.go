package usecases

import (
	"context"

	"github.com/torrust/tracker-deployer/internal/core/entities"
)

// RegisterRequest adopts an externally-provisioned instance, skipping the
// infra-provisioner step entirely. Used by container-based end-to-end
// tests where infrastructure is set up outside the orchestrator.
type RegisterRequest struct {
	Name           entities.EnvironmentName
	SshCredentials entities.SshCredentials
	Provider       entities.ProviderConfig
	Tracker        entities.TrackerConfig
	InstanceIP     string
	SshPort        entities.AnsiblePort
}

// Register is the use case that adopts an instance as Provisioned without
// running the infra provisioner. It accepts either no prior record or one
// already in Created, matching §4.8's "(no record) or Created" source.
type Register struct {
	repo     EnvironmentRepository
	ssh      SSHClient
	clock    entities.Clock
	progress ProgressListener
}

// NewRegister constructs a Register use case.
func NewRegister(repo EnvironmentRepository, ssh SSHClient, clock entities.Clock, progress ProgressListener) *Register {
	return &Register{repo: repo, ssh: ssh, clock: clock, progress: withProgress(progress)}
}

// Execute creates (or reuses a Created) environment and transitions it
// directly to Provisioned with the supplied instance IP, after confirming
// SSH connectivity.
func (uc *Register) Execute(ctx context.Context, req RegisterRequest) (entities.Environment, error) {
	uc.progress.OnStepStart("register")

	env, found, err := uc.repo.Load(ctx, req.Name)
	if err != nil {
		uc.progress.OnStepFinish("register", err)
		return entities.Environment{}, err
	}
	if found {
		if err := env.RequireState(entities.StateCreated); err != nil {
			uc.progress.OnStepFinish("register", err)
			return entities.Environment{}, err
		}
	} else {
		env = entities.NewEnvironment(req.Name, req.SshCredentials, req.Provider, req.Tracker, uc.clock.Now())
	}

	host, err := entities.NewAnsibleHost(req.InstanceIP)
	if err != nil {
		uc.progress.OnStepFinish("register", err)
		return entities.Environment{}, err
	}
	addr := entities.NewSshSocketAddr(host, req.SshPort)
	if err := uc.ssh.WaitForConnectivity(ctx, addr, req.SshCredentials); err != nil {
		uc.progress.OnStepFinish("register", err)
		return entities.Environment{}, err
	}

	env = env.WithInstanceIP(req.InstanceIP)
	env = env.WithState(entities.NewState(entities.StateProvisioned, uc.clock.Now()))
	if err := uc.repo.Save(ctx, env); err != nil {
		uc.progress.OnStepFinish("register", err)
		return entities.Environment{}, err
	}

	uc.progress.OnStepFinish("register", nil)
	return env, nil
}
