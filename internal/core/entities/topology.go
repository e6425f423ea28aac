package entities

import "sort"

// Network identifies one of the fixed docker-compose networks a service
// may attach to.
type Network string

const (
	NetworkDatabase      Network = "database"
	NetworkMetrics       Network = "metrics"
	NetworkVisualization Network = "visualization"
	NetworkProxy         Network = "proxy"
)

// Name is the compose-file network name.
func (n Network) Name() string {
	return string(n) + "_network"
}

// Driver is always "bridge" for every network this orchestrator declares.
func (n Network) Driver() string {
	return "bridge"
}

// Service is one enabled component of the compose topology, declaring the
// networks it participates in.
type Service struct {
	Name     string
	Networks []Network
}

// Topology is the set of enabled services and the networks they attach to;
// the source of truth for the compose file's networks section. Services
// reference networks by value, never by pointer — the aggregate owns its
// services.
type Topology struct {
	Services []Service
}

// NewTopology constructs a Topology from its enabled services.
func NewTopology(services ...Service) Topology {
	return Topology{Services: services}
}

// RequiredNetworks derives the deterministic, orphan-free union of every
// network referenced by any service, sorted by network name.
func (t Topology) RequiredNetworks() []Network {
	seen := make(map[Network]struct{})
	for _, svc := range t.Services {
		for _, n := range svc.Networks {
			seen[n] = struct{}{}
		}
	}

	out := make([]Network, 0, len(seen))
	for n := range seen {
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Name() < out[j].Name()
	})
	return out
}
