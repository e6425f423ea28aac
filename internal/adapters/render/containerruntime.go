package render

import (
	"context"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"sort"

	"github.com/torrust/tracker-deployer/internal/core/entities"
	"github.com/torrust/tracker-deployer/internal/core/usecases"
)

// composeService is one service entry bound to docker-compose.yml.tmpl.
type composeService struct {
	Name        string
	Image       string
	Networks    []string
	Environment map[string]string
	Ports       []string
}

// composeNetwork is one network entry bound to docker-compose.yml.tmpl.
type composeNetwork struct {
	Name   string
	Driver string
}

// composeContext is the context bound to docker-compose.yml.tmpl.
type composeContext struct {
	Services []composeService
	Networks []composeNetwork
}

// ContainerRuntimeRenderer renders the container-runtime's
// build/<env>/compose/ compose file from a topology and tracker config.
type ContainerRuntimeRenderer struct {
	engine usecases.TemplateEngine
}

var _ usecases.ContainerRuntimeRenderer = (*ContainerRuntimeRenderer)(nil)

// NewContainerRuntimeRenderer returns a ContainerRuntimeRenderer using
// engine to render the compose file.
func NewContainerRuntimeRenderer(engine usecases.TemplateEngine) *ContainerRuntimeRenderer {
	return &ContainerRuntimeRenderer{engine: engine}
}

// Render writes docker-compose.yml into dir.
func (r *ContainerRuntimeRenderer) Render(ctx context.Context, dir string, topology entities.Topology, tracker entities.TrackerConfig) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return &entities.FileSystemError{Op: "mkdir", Path: dir, Err: err}
	}

	body, err := templatesFS.ReadFile("templates/compose/docker-compose.yml.tmpl")
	if err != nil {
		return &entities.FileSystemError{Op: "read embedded", Path: "templates/compose/docker-compose.yml.tmpl", Err: err}
	}

	rendered, err := r.engine.Render("docker-compose.yml.tmpl", string(body), buildComposeContext(topology, tracker))
	if err != nil {
		return err
	}
	return writeFile(filepath.Join(dir, "docker-compose.yml"), []byte(rendered))
}

// buildComposeContext translates the topology's services and derived
// networks, plus the tracker's workload settings, into the compose
// template's flat context.
func buildComposeContext(topology entities.Topology, tracker entities.TrackerConfig) composeContext {
	networks := make([]composeNetwork, 0, len(topology.RequiredNetworks()))
	for _, n := range topology.RequiredNetworks() {
		networks = append(networks, composeNetwork{Name: n.Name(), Driver: n.Driver()})
	}

	services := make([]composeService, 0, len(topology.Services))
	for _, svc := range topology.Services {
		services = append(services, buildComposeService(svc, tracker))
	}

	return composeContext{Services: services, Networks: networks}
}

func buildComposeService(svc entities.Service, tracker entities.TrackerConfig) composeService {
	networkNames := make([]string, 0, len(svc.Networks))
	for _, n := range svc.Networks {
		networkNames = append(networkNames, n.Name())
	}
	sort.Strings(networkNames)

	cs := composeService{Name: svc.Name, Networks: networkNames, Environment: map[string]string{}}

	switch svc.Name {
	case "tracker":
		cs.Image = "torrust/tracker:latest"
		cs.Environment["TRACKER_CORE_DATABASE_DRIVER"] = string(tracker.Core.Database)
		cs.Environment["TRACKER_CORE_PRIVATE"] = fmt.Sprintf("%t", tracker.Core.Private)
		cs.Environment["TRACKER_ADMIN_TOKEN"] = tracker.Core.AdminToken
		for _, l := range tracker.UDPTrackers {
			cs.Ports = append(cs.Ports, portMapping(l.BindAddress, "udp"))
		}
		for _, l := range tracker.HTTPTrackers {
			cs.Ports = append(cs.Ports, portMapping(l.BindAddress, "tcp"))
		}
		cs.Ports = append(cs.Ports, portMapping(tracker.HTTPApi.BindAddress, "tcp"))
		cs.Ports = append(cs.Ports, portMapping(tracker.HealthCheckApi.BindAddress, "tcp"))
	case "mysql":
		cs.Image = "mysql:8.0"
		cs.Environment["MYSQL_DATABASE"] = "torrust_tracker"
		cs.Environment["MYSQL_ROOT_PASSWORD"] = tracker.Core.AdminToken
	case "prometheus":
		cs.Image = "prom/prometheus:latest"
		if tracker.Prometheus != nil {
			cs.Ports = append(cs.Ports, portMapping(tracker.Prometheus.BindAddress, "tcp"))
		}
	case "grafana":
		cs.Image = "grafana/grafana:latest"
		if tracker.Grafana != nil {
			cs.Environment["GF_SECURITY_ADMIN_PASSWORD"] = tracker.Grafana.AdminPassword
		}
	}

	return cs
}

// portMapping extracts the port from a "host:port" bind address and
// formats a compose host:container/proto mapping, publishing on every
// interface regardless of the configured bind host.
func portMapping(bindAddress, proto string) string {
	_, port, err := net.SplitHostPort(bindAddress)
	if err != nil {
		port = bindAddress
	}
	return fmt.Sprintf("%s:%s/%s", port, port, proto)
}
