package usecases

import (
	"context"
	"path/filepath"

	"github.com/torrust/tracker-deployer/internal/core/entities"
)

// Render renders every domain renderer's artifacts for an environment into
// an arbitrary output directory without invoking any external tool and
// without changing the environment's persisted state. It exists for
// inspecting what `provision`/`configure`/`release` would produce.
type Render struct {
	repo               EnvironmentRepository
	provisionerRender  ProvisionerRenderer
	configEngineRender ConfigEngineRenderer
	containerRender    ContainerRuntimeRenderer
	progress           ProgressListener
}

// NewRender constructs a Render use case.
func NewRender(repo EnvironmentRepository, provisionerRender ProvisionerRenderer, configEngineRender ConfigEngineRenderer, containerRender ContainerRuntimeRenderer, progress ProgressListener) *Render {
	return &Render{
		repo:               repo,
		provisionerRender:  provisionerRender,
		configEngineRender: configEngineRender,
		containerRender:    containerRender,
		progress:           withProgress(progress),
	}
}

// Execute renders tofu/, ansible/, and compose/ sub-directories of outputDir
// for the named environment, overriding its instance IP with instanceIP
// (the environment need not have been provisioned yet).
func (uc *Render) Execute(ctx context.Context, name entities.EnvironmentName, instanceIP string, outputDir string) error {
	env, found, err := uc.repo.Load(ctx, name)
	if err != nil {
		return err
	}
	if !found {
		return &entities.EnvironmentNotFoundError{Name: name.String()}
	}
	env = env.WithInstanceIP(instanceIP)

	uc.progress.OnStepStart("render")

	if err := uc.provisionerRender.Render(ctx, filepath.Join(outputDir, "tofu"), env); err != nil {
		uc.progress.OnStepFinish("render", err)
		return err
	}

	host, err := entities.NewAnsibleHost(instanceIP)
	if err != nil {
		uc.progress.OnStepFinish("render", err)
		return err
	}
	port, err := entities.NewAnsiblePort(22)
	if err != nil {
		uc.progress.OnStepFinish("render", err)
		return err
	}
	if err := uc.configEngineRender.Render(ctx, filepath.Join(outputDir, "ansible"), host, port, env); err != nil {
		uc.progress.OnStepFinish("render", err)
		return err
	}

	topology := TrackerTopology(env.Tracker)
	if err := uc.containerRender.Render(ctx, filepath.Join(outputDir, "compose"), topology, env.Tracker); err != nil {
		uc.progress.OnStepFinish("render", err)
		return err
	}

	uc.progress.OnStepFinish("render", nil)
	return nil
}
