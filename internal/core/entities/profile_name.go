package entities

// ProfileName validates a local-VM provider profile name. It follows the
// same rules as InstanceName.
type ProfileName struct {
	value string
}

var profileNameExamples = []string{"lxd-test-env", "default"}

// NewProfileName validates and constructs a ProfileName.
func NewProfileName(s string) (ProfileName, error) {
	if err := validateHostLikeName("profile_name", s, profileNameExamples...); err != nil {
		return ProfileName{}, err
	}
	return ProfileName{value: s}, nil
}

func (n ProfileName) String() string { return n.value }

func (n ProfileName) MarshalJSON() ([]byte, error) {
	return marshalJSONString(n.value)
}

func (n *ProfileName) UnmarshalJSON(data []byte) error {
	s, err := unmarshalJSONString(data)
	if err != nil {
		return err
	}
	parsed, err := NewProfileName(s)
	if err != nil {
		return err
	}
	*n = parsed
	return nil
}
