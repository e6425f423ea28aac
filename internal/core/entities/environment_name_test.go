package entities

import "testing"

func TestNewEnvironmentName(t *testing.T) {
	valid := []string{"a", "e2e-config", "tracker-prod"}
	for _, s := range valid {
		if _, err := NewEnvironmentName(s); err != nil {
			t.Errorf("NewEnvironmentName(%q) returned error: %v", s, err)
		}
	}

	invalid := []string{"", "1x", "-a", "a-", "A", "a--b"}
	for _, s := range invalid {
		if _, err := NewEnvironmentName(s); err == nil {
			t.Errorf("NewEnvironmentName(%q) expected error, got nil", s)
		}
	}
}

func TestNewEnvironmentNameLength(t *testing.T) {
	tooLong := make([]byte, 64)
	for i := range tooLong {
		tooLong[i] = 'a'
	}
	if _, err := NewEnvironmentName(string(tooLong)); err == nil {
		t.Error("expected error for 64-character name")
	}

	ok := make([]byte, 63)
	for i := range ok {
		ok[i] = 'a'
	}
	if _, err := NewEnvironmentName(string(ok)); err != nil {
		t.Errorf("expected no error for 63-character name, got %v", err)
	}
}

func TestEnvironmentNameJSONRoundTrip(t *testing.T) {
	name, err := NewEnvironmentName("tracker-prod")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := name.MarshalJSON()
	if err != nil {
		t.Fatalf("marshal error: %v", err)
	}
	if string(data) != `"tracker-prod"` {
		t.Errorf("unexpected JSON: %s", data)
	}

	var roundTripped EnvironmentName
	if err := roundTripped.UnmarshalJSON(data); err != nil {
		t.Fatalf("unmarshal error: %v", err)
	}
	if roundTripped.String() != name.String() {
		t.Errorf("round trip mismatch: got %s, want %s", roundTripped, name)
	}
}
