package entities

import (
	"encoding/json"
	"fmt"
)

// AnsiblePort is a validated non-zero 16-bit port number.
type AnsiblePort struct {
	value uint16
}

// NewAnsiblePort validates and constructs an AnsiblePort.
func NewAnsiblePort(port uint16) (AnsiblePort, error) {
	if port == 0 {
		return AnsiblePort{}, newValidationError("ansible_port", "0", "must be greater than 0", "22", "2222")
	}
	return AnsiblePort{value: port}, nil
}

func (p AnsiblePort) Uint16() uint16 { return p.value }

func (p AnsiblePort) String() string { return fmt.Sprintf("%d", p.value) }

func (p AnsiblePort) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.value)
}

func (p *AnsiblePort) UnmarshalJSON(data []byte) error {
	var v uint16
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	parsed, err := NewAnsiblePort(v)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}
