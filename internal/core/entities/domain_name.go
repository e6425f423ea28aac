package entities

import "strings"

// DomainName validates a permissive (not strict RFC 1035) domain literal:
// non-empty, no whitespace, at least one dot, no leading/trailing dot,
// no consecutive dots.
type DomainName struct {
	value string
}

var domainNameExamples = []string{"example.com", "a.b.c"}

// NewDomainName validates and constructs a DomainName.
func NewDomainName(s string) (DomainName, error) {
	const field = "domain_name"
	if s == "" {
		return DomainName{}, newValidationError(field, s, "must not be empty", domainNameExamples...)
	}
	if strings.ContainsAny(s, " \t\n\r") {
		return DomainName{}, newValidationError(field, s, "must not contain whitespace", domainNameExamples...)
	}
	if !strings.Contains(s, ".") {
		return DomainName{}, newValidationError(field, s, "must contain at least one dot", domainNameExamples...)
	}
	if strings.HasPrefix(s, ".") || strings.HasSuffix(s, ".") {
		return DomainName{}, newValidationError(field, s, "must not have a leading or trailing dot", domainNameExamples...)
	}
	if strings.Contains(s, "..") {
		return DomainName{}, newValidationError(field, s, "must not contain consecutive dots", domainNameExamples...)
	}
	return DomainName{value: s}, nil
}

func (n DomainName) String() string { return n.value }

func (n DomainName) MarshalJSON() ([]byte, error) {
	return marshalJSONString(n.value)
}

func (n *DomainName) UnmarshalJSON(data []byte) error {
	s, err := unmarshalJSONString(data)
	if err != nil {
		return err
	}
	parsed, err := NewDomainName(s)
	if err != nil {
		return err
	}
	*n = parsed
	return nil
}
