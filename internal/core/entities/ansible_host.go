package entities

import "net"

// AnsibleHost is a validated IPv4 or IPv6 literal used as an Ansible
// inventory host.
type AnsibleHost struct {
	value string
}

// NewAnsibleHost validates and constructs an AnsibleHost.
func NewAnsibleHost(s string) (AnsibleHost, error) {
	const field = "ansible_host"
	if net.ParseIP(s) == nil {
		return AnsibleHost{}, newValidationError(field, s, "must be a valid IPv4 or IPv6 literal", "10.0.0.5", "2001:db8::1")
	}
	return AnsibleHost{value: s}, nil
}

func (h AnsibleHost) String() string { return h.value }

func (h AnsibleHost) MarshalJSON() ([]byte, error) {
	return marshalJSONString(h.value)
}

func (h *AnsibleHost) UnmarshalJSON(data []byte) error {
	s, err := unmarshalJSONString(data)
	if err != nil {
		return err
	}
	parsed, err := NewAnsibleHost(s)
	if err != nil {
		return err
	}
	*h = parsed
	return nil
}
