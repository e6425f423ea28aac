package entities

import (
	"strings"
	"testing"
)

func TestNewInstanceName(t *testing.T) {
	if _, err := NewInstanceName(strings.Repeat("a", 63)); err != nil {
		t.Errorf("expected 63-char name to be accepted, got %v", err)
	}
	if _, err := NewInstanceName(strings.Repeat("a", 64)); err == nil {
		t.Error("expected 64-char name to be rejected")
	}
	if _, err := NewInstanceName("1bad"); err == nil {
		t.Error("expected leading digit to be rejected")
	}
	if _, err := NewInstanceName("-bad"); err == nil {
		t.Error("expected leading dash to be rejected")
	}
	if _, err := NewInstanceName("bad-"); err == nil {
		t.Error("expected trailing dash to be rejected")
	}
	if _, err := NewInstanceName("café"); err == nil {
		t.Error("expected non-ASCII to be rejected")
	}
	if _, err := NewInstanceName("tracker-prod"); err != nil {
		t.Errorf("expected valid name to be accepted, got %v", err)
	}
}
