package entities

import "testing"

func TestNewDomainName(t *testing.T) {
	valid := []string{"example.com", "a.b.c"}
	for _, s := range valid {
		if _, err := NewDomainName(s); err != nil {
			t.Errorf("NewDomainName(%q) returned error: %v", s, err)
		}
	}

	invalid := []string{"", "localhost", " example.com", "example..com"}
	for _, s := range invalid {
		if _, err := NewDomainName(s); err == nil {
			t.Errorf("NewDomainName(%q) expected error, got nil", s)
		}
	}
}
