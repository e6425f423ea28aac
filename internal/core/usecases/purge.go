package usecases

import (
	"context"

	"github.com/torrust/tracker-deployer/internal/core/entities"
)

// Purge removes an environment's persisted record and build tree. It is
// normally restricted to the Destroyed state; Force bypasses that guard
// (the interactive confirmation prompt this implies is a presentation-layer
// concern, out of scope here).
type Purge struct {
	repo     EnvironmentRepository
	layout   Layout
	progress ProgressListener
}

// NewPurge constructs a Purge use case.
func NewPurge(repo EnvironmentRepository, layout Layout, progress ProgressListener) *Purge {
	return &Purge{repo: repo, layout: layout, progress: withProgress(progress)}
}

// Execute deletes data/<name>/ and build/<name>/ for the named environment.
func (uc *Purge) Execute(ctx context.Context, name entities.EnvironmentName, force bool) error {
	env, found, err := uc.repo.Load(ctx, name)
	if err != nil {
		return err
	}
	if !found {
		return &entities.EnvironmentNotFoundError{Name: name.String()}
	}
	if !force && !env.State.Kind.IsDestroyed() {
		return &entities.InvalidStateTransitionError{Expected: entities.StateDestroyed, Got: env.State.Kind}
	}

	uc.progress.OnStepStart("purge")
	if err := uc.layout.Purge(name); err != nil {
		uc.progress.OnStepFinish("purge", err)
		return err
	}
	if err := uc.repo.Delete(ctx, name); err != nil {
		uc.progress.OnStepFinish("purge", err)
		return err
	}
	uc.progress.OnStepFinish("purge", nil)
	return nil
}
