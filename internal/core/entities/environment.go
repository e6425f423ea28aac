package entities

import "time"

// Environment is the single persisted record for a deployment target: its
// immutable identity and configuration, its current lifecycle state, and
// the instance IP once provisioning succeeds.
type Environment struct {
	Name           EnvironmentName `json:"name"`
	CreatedAt      time.Time       `json:"created_at"`
	SshCredentials SshCredentials  `json:"ssh_credentials"`
	Provider       ProviderConfig  `json:"provider"`
	Tracker        TrackerConfig   `json:"tracker"`
	InstanceIP     *string         `json:"instance_ip"`
	State          State           `json:"state"`
}

// NewEnvironment constructs a freshly Created environment. ssh_credentials
// and provider are immutable from this point on.
func NewEnvironment(name EnvironmentName, creds SshCredentials, provider ProviderConfig, tracker TrackerConfig, now time.Time) Environment {
	return Environment{
		Name:           name,
		CreatedAt:      now,
		SshCredentials: creds,
		Provider:       provider,
		Tracker:        tracker,
		InstanceIP:     nil,
		State:          NewState(StateCreated, now),
	}
}

// RequireState returns an InvalidStateTransitionError unless the
// environment's current state kind matches expected. Every command handler
// calls this before doing any external work.
func (e Environment) RequireState(expected StateKind) error {
	if e.State.Kind != expected {
		return &InvalidStateTransitionError{Expected: expected, Got: e.State.Kind}
	}
	return nil
}

// RequireStateIn is like RequireState but accepts any of several source
// states.
func (e Environment) RequireStateIn(expected ...StateKind) error {
	for _, k := range expected {
		if e.State.Kind == k {
			return nil
		}
	}
	return &InvalidStateTransitionError{Expected: expected[0], Got: e.State.Kind}
}

// WithState returns a copy of the environment with its state replaced.
// Transitions are pure: handlers call this and persist the result rather
// than mutating a shared instance.
func (e Environment) WithState(s State) Environment {
	e.State = s
	return e
}

// WithInstanceIP returns a copy of the environment with its instance IP set.
func (e Environment) WithInstanceIP(ip string) Environment {
	e.InstanceIP = &ip
	return e
}
