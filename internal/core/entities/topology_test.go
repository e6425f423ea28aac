package entities

import "testing"

func TestTopologyRequiredNetworksUnionAndOrder(t *testing.T) {
	topo := NewTopology(
		Service{Name: "tracker", Networks: []Network{NetworkDatabase, NetworkProxy}},
		Service{Name: "db", Networks: []Network{NetworkDatabase}},
		Service{Name: "grafana", Networks: []Network{NetworkMetrics, NetworkVisualization}},
	)

	got := topo.RequiredNetworks()
	want := []Network{NetworkDatabase, NetworkMetrics, NetworkProxy, NetworkVisualization}

	if len(got) != len(want) {
		t.Fatalf("got %d networks, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("position %d: got %s, want %s", i, got[i], want[i])
		}
	}
}

func TestTopologyRequiredNetworksNoOrphans(t *testing.T) {
	topo := NewTopology(Service{Name: "tracker", Networks: []Network{NetworkDatabase}})
	got := topo.RequiredNetworks()
	if len(got) != 1 || got[0] != NetworkDatabase {
		t.Errorf("expected only database network, got %v", got)
	}
}

func TestNetworkNameSuffix(t *testing.T) {
	if NetworkDatabase.Name() != "database_network" {
		t.Errorf("unexpected name: %s", NetworkDatabase.Name())
	}
	if NetworkDatabase.Driver() != "bridge" {
		t.Errorf("unexpected driver: %s", NetworkDatabase.Driver())
	}
}
