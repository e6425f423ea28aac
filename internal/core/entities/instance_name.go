package entities

func validateHostLikeName(field, s string, examples ...string) error {
	if s == "" {
		return newValidationError(field, s, "must not be empty", examples...)
	}
	if len(s) > 63 {
		return newValidationError(field, s, "must be 63 characters or fewer", examples...)
	}
	first := s[0]
	if !isASCIILetter(first) {
		return newValidationError(field, s, "must start with an ASCII letter", examples...)
	}
	if s[len(s)-1] == '-' {
		return newValidationError(field, s, "must not end with a dash", examples...)
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !isASCIILetter(c) && !isASCIIDigit(c) && c != '-' {
			return newValidationError(field, s, "must contain only ASCII letters, digits, and dashes", examples...)
		}
	}
	return nil
}

func isASCIILetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isASCIIDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// InstanceName validates the name of a provisioned compute instance.
type InstanceName struct {
	value string
}

var instanceNameExamples = []string{"tracker-prod", "lxd-test-env"}

// NewInstanceName validates and constructs an InstanceName.
func NewInstanceName(s string) (InstanceName, error) {
	if err := validateHostLikeName("instance_name", s, instanceNameExamples...); err != nil {
		return InstanceName{}, err
	}
	return InstanceName{value: s}, nil
}

func (n InstanceName) String() string { return n.value }

func (n InstanceName) MarshalJSON() ([]byte, error) {
	return marshalJSONString(n.value)
}

func (n *InstanceName) UnmarshalJSON(data []byte) error {
	s, err := unmarshalJSONString(data)
	if err != nil {
		return err
	}
	parsed, err := NewInstanceName(s)
	if err != nil {
		return err
	}
	*n = parsed
	return nil
}
