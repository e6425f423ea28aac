package usecases

import (
	"context"

	"github.com/torrust/tracker-deployer/internal/core/entities"
)

const remoteComposeDir = "/home/torrust/compose"

// Release advances an environment from Configured to Released: it renders
// the container-runtime compose file from the tracker's topology and
// uploads it to the instance over SSH.
type Release struct {
	repo     EnvironmentRepository
	layout   Layout
	renderer ContainerRuntimeRenderer
	ssh      SSHClient
	clock    entities.Clock
	progress ProgressListener
}

// NewRelease constructs a Release use case.
func NewRelease(repo EnvironmentRepository, layout Layout, renderer ContainerRuntimeRenderer, ssh SSHClient, clock entities.Clock, progress ProgressListener) *Release {
	return &Release{repo: repo, layout: layout, renderer: renderer, ssh: ssh, clock: clock, progress: withProgress(progress)}
}

// Execute runs the release transition for the named environment.
func (uc *Release) Execute(ctx context.Context, name entities.EnvironmentName) (entities.Environment, error) {
	env, found, err := uc.repo.Load(ctx, name)
	if err != nil {
		return entities.Environment{}, err
	}
	if !found {
		return entities.Environment{}, &entities.EnvironmentNotFoundError{Name: name.String()}
	}
	if err := env.RequireState(entities.StateConfigured); err != nil {
		return entities.Environment{}, err
	}

	env = env.WithState(entities.NewState(entities.StateReleasing, uc.clock.Now()))
	if err := uc.repo.Save(ctx, env); err != nil {
		return entities.Environment{}, err
	}

	uc.progress.OnStepStart("release")
	if err := uc.renderAndUpload(ctx, env); err != nil {
		failed := env.WithState(entities.NewFailureState(entities.StateReleaseFailed, uc.clock.Now(), entities.NewFailure("ExternalToolFailure", "release upload", err)))
		_ = uc.repo.Save(ctx, failed)
		uc.progress.OnStepFinish("release", err)
		return entities.Environment{}, err
	}

	env = env.WithState(entities.NewState(entities.StateReleased, uc.clock.Now()))
	if err := uc.repo.Save(ctx, env); err != nil {
		return entities.Environment{}, err
	}
	uc.progress.OnStepFinish("release", nil)
	return env, nil
}

func (uc *Release) renderAndUpload(ctx context.Context, env entities.Environment) error {
	if env.InstanceIP == nil {
		return &entities.ValidationError{Field: "instance_ip", Message: "must be set before release"}
	}

	topology := TrackerTopology(env.Tracker)
	paths := uc.layout.BuildPaths(env.Name)
	if err := uc.renderer.Render(ctx, paths.Compose, topology, env.Tracker); err != nil {
		return err
	}

	host, err := entities.NewAnsibleHost(*env.InstanceIP)
	if err != nil {
		return err
	}
	port, err := entities.NewAnsiblePort(22)
	if err != nil {
		return err
	}
	addr := entities.NewSshSocketAddr(host, port)

	uc.progress.OnLog("info", "uploading compose artifacts")
	return uc.ssh.UploadDir(ctx, addr, env.SshCredentials, paths.Compose, remoteComposeDir)
}

// TrackerTopology derives the compose topology from the tracker's enabled
// listeners and add-ons: the UDP/HTTP tracker service plus database,
// metrics, and visualization services it needs, each declaring the
// networks it attaches to.
func TrackerTopology(tracker entities.TrackerConfig) entities.Topology {
	services := []entities.Service{
		{Name: "tracker", Networks: []entities.Network{entities.NetworkDatabase, entities.NetworkProxy}},
	}
	if tracker.Core.Database == entities.DatabaseMySQL {
		services = append(services, entities.Service{Name: "mysql", Networks: []entities.Network{entities.NetworkDatabase}})
	}
	if tracker.Prometheus != nil {
		services = append(services, entities.Service{Name: "prometheus", Networks: []entities.Network{entities.NetworkMetrics, entities.NetworkProxy}})
	}
	if tracker.Grafana != nil {
		services = append(services, entities.Service{Name: "grafana", Networks: []entities.Network{entities.NetworkMetrics, entities.NetworkVisualization, entities.NetworkProxy}})
	}
	return entities.NewTopology(services...)
}
