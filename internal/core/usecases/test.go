package usecases

import (
	"context"
	"fmt"
	"net"

	"github.com/torrust/tracker-deployer/internal/core/entities"
)

// Test probes the running instance's health-check endpoints. It never
// changes state; a failed probe is reported in the returned report, not
// as an error, so the CLI can decide the exit code from Healthy.
type Test struct {
	repo     EnvironmentRepository
	ssh      SSHClient
	clock    entities.Clock
	progress ProgressListener
}

// NewTest constructs a Test use case.
func NewTest(repo EnvironmentRepository, ssh SSHClient, clock entities.Clock, progress ProgressListener) *Test {
	return &Test{repo: repo, ssh: ssh, clock: clock, progress: withProgress(progress)}
}

// Execute runs the health-check probes for the named environment.
func (uc *Test) Execute(ctx context.Context, name entities.EnvironmentName) (HealthCheckReport, error) {
	env, found, err := uc.repo.Load(ctx, name)
	if err != nil {
		return HealthCheckReport{}, err
	}
	if !found {
		return HealthCheckReport{}, &entities.EnvironmentNotFoundError{Name: name.String()}
	}
	if err := env.RequireState(entities.StateRunning); err != nil {
		return HealthCheckReport{}, err
	}
	if env.InstanceIP == nil {
		return HealthCheckReport{}, &entities.ValidationError{Field: "instance_ip", Message: "must be set before test"}
	}

	host, err := entities.NewAnsibleHost(*env.InstanceIP)
	if err != nil {
		return HealthCheckReport{}, err
	}
	port, err := entities.NewAnsiblePort(22)
	if err != nil {
		return HealthCheckReport{}, err
	}
	addr := entities.NewSshSocketAddr(host, port)

	uc.progress.OnStepStart("test")
	report := HealthCheckReport{CheckedAt: uc.clock.Now(), Healthy: true}

	checks := map[string]string{
		"health-check-api": fmt.Sprintf("curl -sf http://localhost:%s", bindPort(env.Tracker.HealthCheckApi.BindAddress)),
		"http-api":         fmt.Sprintf("curl -sf http://localhost:%s/api/health_check", bindPort(env.Tracker.HTTPApi.BindAddress)),
	}
	for label, cmd := range checks {
		ok, err := uc.ssh.Check(ctx, addr, env.SshCredentials, cmd)
		if err != nil {
			report.Healthy = false
			report.Details = append(report.Details, fmt.Sprintf("%s: probe error: %v", label, err))
			continue
		}
		if !ok {
			report.Healthy = false
			report.Details = append(report.Details, fmt.Sprintf("%s: unhealthy", label))
			continue
		}
		report.Details = append(report.Details, fmt.Sprintf("%s: healthy", label))
	}

	uc.progress.OnStepFinish("test", nil)
	return report, nil
}

// bindPort extracts the port from a "host:port" bind address, falling back
// to the raw string if it isn't in host:port form.
func bindPort(bindAddress string) string {
	_, port, err := net.SplitHostPort(bindAddress)
	if err != nil {
		return bindAddress
	}
	return port
}
