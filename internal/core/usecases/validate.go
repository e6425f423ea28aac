package usecases

import "github.com/torrust/tracker-deployer/internal/core/entities"

// Validate checks a parsed environment config for the cross-field rules
// the JSON value-object deserialization alone can't express, without
// persisting anything.
type Validate struct{}

// NewValidate constructs a Validate use case.
func NewValidate() *Validate {
	return &Validate{}
}

// Execute reports the first rule violation found in req, if any. By the
// time req exists, every field backed by a value object has already
// passed its own constructor during JSON decoding.
func (uc *Validate) Execute(req CreateEnvironmentRequest) error {
	switch req.Provider.Kind {
	case entities.ProviderLXD:
		if req.Provider.ProfileName == nil {
			return &entities.ValidationError{Field: "provider.profile_name", Message: "required when provider.kind is \"lxd\""}
		}
	case entities.ProviderHetzner:
		if req.Provider.APIToken == "" {
			return &entities.ValidationError{Field: "provider.api_token", Message: "required when provider.kind is \"hetzner\""}
		}
		if req.Provider.ServerType == "" {
			return &entities.ValidationError{Field: "provider.server_type", Message: "required when provider.kind is \"hetzner\""}
		}
	default:
		return &entities.ValidationError{Field: "provider.kind", AttemptedValue: string(req.Provider.Kind), Message: "must be \"lxd\" or \"hetzner\""}
	}

	if len(req.Tracker.UDPTrackers) == 0 && len(req.Tracker.HTTPTrackers) == 0 {
		return &entities.ValidationError{Field: "tracker", Message: "at least one of udp_trackers or http_trackers must be non-empty"}
	}

	return nil
}
