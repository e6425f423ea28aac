package usecases

import (
	"context"
	"os"
	"strings"

	"github.com/torrust/tracker-deployer/internal/core/entities"
)

// configurePlaybook is one ansible-playbook invocation run in order
// against the rendered inventory.
type configurePlaybook struct {
	name       string
	skipEnvVar string
}

// playbooks run by Configure, in order. TORRUST_TD_SKIP_FIREWALL_IN_CONTAINER
// and TORRUST_TD_SKIP_DOCKER_INSTALL_IN_CONTAINER let container-based
// end-to-end tests skip steps that don't apply inside a container.
var configurePlaybooks = []configurePlaybook{
	{name: "prerequisites.yml"},
	{name: "firewall.yml", skipEnvVar: "TORRUST_TD_SKIP_FIREWALL_IN_CONTAINER"},
	{name: "docker.yml", skipEnvVar: "TORRUST_TD_SKIP_DOCKER_INSTALL_IN_CONTAINER"},
}

// Configure advances an environment from Provisioned to Configured: it
// renders the config-engine inventory and runs its playbooks over SSH.
type Configure struct {
	repo     EnvironmentRepository
	layout   Layout
	renderer ConfigEngineRenderer
	engine   ConfigEngineClient
	clock    entities.Clock
	progress ProgressListener
}

// NewConfigure constructs a Configure use case.
func NewConfigure(repo EnvironmentRepository, layout Layout, renderer ConfigEngineRenderer, engine ConfigEngineClient, clock entities.Clock, progress ProgressListener) *Configure {
	return &Configure{repo: repo, layout: layout, renderer: renderer, engine: engine, clock: clock, progress: withProgress(progress)}
}

// Execute runs the configure transition for the named environment.
func (uc *Configure) Execute(ctx context.Context, name entities.EnvironmentName) (entities.Environment, error) {
	env, found, err := uc.repo.Load(ctx, name)
	if err != nil {
		return entities.Environment{}, err
	}
	if !found {
		return entities.Environment{}, &entities.EnvironmentNotFoundError{Name: name.String()}
	}
	if err := env.RequireState(entities.StateProvisioned); err != nil {
		return entities.Environment{}, err
	}

	env = env.WithState(entities.NewState(entities.StateConfiguring, uc.clock.Now()))
	if err := uc.repo.Save(ctx, env); err != nil {
		return entities.Environment{}, err
	}

	uc.progress.OnStepStart("configure")
	if err := uc.runPlaybooks(ctx, env); err != nil {
		failed := env.WithState(entities.NewFailureState(entities.StateConfigureFailed, uc.clock.Now(), entities.NewFailure("ExternalToolFailure", "config-engine run-playbook", err)))
		_ = uc.repo.Save(ctx, failed)
		uc.progress.OnStepFinish("configure", err)
		return entities.Environment{}, err
	}

	env = env.WithState(entities.NewState(entities.StateConfigured, uc.clock.Now()))
	if err := uc.repo.Save(ctx, env); err != nil {
		return entities.Environment{}, err
	}
	uc.progress.OnStepFinish("configure", nil)
	return env, nil
}

func (uc *Configure) runPlaybooks(ctx context.Context, env entities.Environment) error {
	if env.InstanceIP == nil {
		return &entities.ValidationError{Field: "instance_ip", Message: "must be set before configure"}
	}

	host, err := entities.NewAnsibleHost(*env.InstanceIP)
	if err != nil {
		return err
	}
	port, err := entities.NewAnsiblePort(22)
	if err != nil {
		return err
	}

	paths := uc.layout.BuildPaths(env.Name)
	if err := uc.renderer.Render(ctx, paths.Ansible, host, port, env); err != nil {
		return err
	}

	for _, pb := range configurePlaybooks {
		if pb.skipEnvVar != "" && isTruthy(os.Getenv(pb.skipEnvVar)) {
			uc.progress.OnLog("info", "skipping "+pb.name+" ("+pb.skipEnvVar+" set)")
			continue
		}
		uc.progress.OnLog("info", "running playbook "+pb.name)
		if err := uc.engine.RunPlaybook(ctx, paths.Ansible, pb.name); err != nil {
			return err
		}
	}
	return nil
}

// isTruthy reports whether an environment variable value should be
// treated as "yes": 1, true, yes, on, case-insensitively.
func isTruthy(v string) bool {
	switch strings.ToLower(v) {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}
