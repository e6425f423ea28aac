package usecases

import (
	"context"

	"github.com/torrust/tracker-deployer/internal/core/entities"
)

// Run advances an environment from Released to Running: it brings the
// compose stack up on the instance over SSH.
type Run struct {
	repo      EnvironmentRepository
	container ContainerRuntimeClient
	clock     entities.Clock
	progress  ProgressListener
}

// NewRun constructs a Run use case.
func NewRun(repo EnvironmentRepository, container ContainerRuntimeClient, clock entities.Clock, progress ProgressListener) *Run {
	return &Run{repo: repo, container: container, clock: clock, progress: withProgress(progress)}
}

// Execute runs the run transition for the named environment.
func (uc *Run) Execute(ctx context.Context, name entities.EnvironmentName) (entities.Environment, error) {
	env, found, err := uc.repo.Load(ctx, name)
	if err != nil {
		return entities.Environment{}, err
	}
	if !found {
		return entities.Environment{}, &entities.EnvironmentNotFoundError{Name: name.String()}
	}
	if err := env.RequireState(entities.StateReleased); err != nil {
		return entities.Environment{}, err
	}

	if env.InstanceIP == nil {
		return entities.Environment{}, &entities.ValidationError{Field: "instance_ip", Message: "must be set before run"}
	}
	host, err := entities.NewAnsibleHost(*env.InstanceIP)
	if err != nil {
		return entities.Environment{}, err
	}
	port, err := entities.NewAnsiblePort(22)
	if err != nil {
		return entities.Environment{}, err
	}
	addr := entities.NewSshSocketAddr(host, port)

	uc.progress.OnStepStart("run")
	if err := uc.container.ComposeUp(ctx, addr, env.SshCredentials, remoteComposeDir); err != nil {
		failed := env.WithState(entities.NewFailureState(entities.StateRunFailed, uc.clock.Now(), entities.NewFailure("ExternalToolFailure", "compose up", err)))
		_ = uc.repo.Save(ctx, failed)
		uc.progress.OnStepFinish("run", err)
		return entities.Environment{}, err
	}

	env = env.WithState(entities.NewState(entities.StateRunning, uc.clock.Now()))
	if err := uc.repo.Save(ctx, env); err != nil {
		return entities.Environment{}, err
	}
	uc.progress.OnStepFinish("run", nil)
	return env, nil
}
