package usecases

import (
	"context"

	"github.com/torrust/tracker-deployer/internal/core/entities"
)

// CreateEnvironmentRequest holds the parsed, already-validated config for
// a new environment.
type CreateEnvironmentRequest struct {
	Name           entities.EnvironmentName
	SshCredentials entities.SshCredentials
	Provider       entities.ProviderConfig
	Tracker        entities.TrackerConfig
}

// CreateEnvironment is the use case for persisting a brand new environment
// record in the Created state.
type CreateEnvironment struct {
	repo     EnvironmentRepository
	clock    entities.Clock
	progress ProgressListener
}

// NewCreateEnvironment constructs a CreateEnvironment use case.
func NewCreateEnvironment(repo EnvironmentRepository, clock entities.Clock, progress ProgressListener) *CreateEnvironment {
	return &CreateEnvironment{repo: repo, clock: clock, progress: withProgress(progress)}
}

// Execute validates no record with this name already exists, then
// persists a new Created environment.
func (uc *CreateEnvironment) Execute(ctx context.Context, req CreateEnvironmentRequest) (entities.Environment, error) {
	uc.progress.OnStepStart("create")

	exists, err := uc.repo.Exists(ctx, req.Name)
	if err != nil {
		uc.progress.OnStepFinish("create", err)
		return entities.Environment{}, err
	}
	if exists {
		err := &entities.EnvironmentAlreadyExistsError{Name: req.Name.String()}
		uc.progress.OnStepFinish("create", err)
		return entities.Environment{}, err
	}

	env := entities.NewEnvironment(req.Name, req.SshCredentials, req.Provider, req.Tracker, uc.clock.Now())

	if err := uc.repo.Save(ctx, env); err != nil {
		uc.progress.OnStepFinish("create", err)
		return entities.Environment{}, err
	}

	uc.progress.OnStepFinish("create", nil)
	return env, nil
}
