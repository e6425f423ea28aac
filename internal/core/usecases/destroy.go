package usecases

import (
	"context"

	"github.com/torrust/tracker-deployer/internal/core/entities"
)

// Destroy advances any non-Destroyed environment to Destroyed. It is the
// operator escape hatch: allowed from transient and terminal-failure
// states as well as successful ones. Tearing down infrastructure and
// cleaning up the local-VM provider's profile are both best-effort — a
// failure here is logged, not returned, because Destroyed has no matching
// failure state to fall back to.
type Destroy struct {
	repo       EnvironmentRepository
	layout     Layout
	provisioner ProvisionerClient
	vmManager  VMManagerClient
	clock      entities.Clock
	progress   ProgressListener
}

// NewDestroy constructs a Destroy use case.
func NewDestroy(repo EnvironmentRepository, layout Layout, provisioner ProvisionerClient, vmManager VMManagerClient, clock entities.Clock, progress ProgressListener) *Destroy {
	return &Destroy{repo: repo, layout: layout, provisioner: provisioner, vmManager: vmManager, clock: clock, progress: withProgress(progress)}
}

// Execute runs the destroy transition for the named environment. Destroy
// applied to an already-Destroyed environment is a no-op that returns
// success, per the idempotence law.
func (uc *Destroy) Execute(ctx context.Context, name entities.EnvironmentName) (entities.Environment, error) {
	env, found, err := uc.repo.Load(ctx, name)
	if err != nil {
		return entities.Environment{}, err
	}
	if !found {
		return entities.Environment{}, &entities.EnvironmentNotFoundError{Name: name.String()}
	}
	if env.State.Kind.IsDestroyed() {
		return env, nil
	}

	uc.progress.OnStepStart("destroy")

	if env.State.Kind != entities.StateCreated {
		paths := uc.layout.BuildPaths(env.Name)
		if err := uc.provisioner.Destroy(ctx, paths.Tofu); err != nil {
			uc.progress.OnLog("warn", "provisioner destroy failed (best-effort): "+err.Error())
		}

		if profile, ok := lxdProfileName(env.Provider); ok {
			if err := uc.vmManager.Delete(ctx, env.Name.String(), true); err != nil {
				uc.progress.OnLog("warn", "vm delete failed (best-effort): "+err.Error())
			}
			if err := uc.vmManager.DeleteProfile(ctx, profile); err != nil {
				uc.progress.OnLog("warn", "profile delete failed (best-effort): "+err.Error())
			}
		}
	}

	env = env.WithState(entities.NewState(entities.StateDestroyed, uc.clock.Now()))
	if err := uc.repo.Save(ctx, env); err != nil {
		return entities.Environment{}, err
	}
	uc.progress.OnStepFinish("destroy", nil)
	return env, nil
}

// lxdProfileName extracts the local-VM provider's profile name, if the
// environment uses that provider variant.
func lxdProfileName(p entities.ProviderConfig) (string, bool) {
	if p.Kind != entities.ProviderLXD || p.ProfileName == nil {
		return "", false
	}
	return p.ProfileName.String(), true
}
