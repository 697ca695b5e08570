package logger

import (
	"fmt"
	"testing"
	"time"
)

func TestNewDefault(t *testing.T) {
	l := NewDefault("test-svc")
	if l == nil {
		t.Fatal("expected non-nil logger")
	}
	if l.service != "test-svc" {
		t.Errorf("expected service 'test-svc', got %q", l.service)
	}
}

func TestNewInvalidLevel(t *testing.T) {
	cfg := &Config{
		Level:  "invalid-level",
		Format: "json",
		Output: "stdout",
	}
	l := New(cfg, "test")
	if l == nil {
		t.Fatal("expected logger to be created even with invalid level")
	}
}

func TestWithComponent(t *testing.T) {
	l := NewDefault("svc").WithComponent("assembler")
	if l == nil {
		t.Fatal("expected non-nil logger")
	}
	if l.service != "svc" {
		t.Errorf("expected service to carry over, got %q", l.service)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"valid", Config{Level: "info", Format: "json"}, false},
		{"bad level", Config{Level: "verbose", Format: "json"}, true},
		{"bad format", Config{Level: "info", Format: "xml"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestFields(t *testing.T) {
	m := Fields("op", "assemble", "messages", 12)
	if m["op"] != "assemble" {
		t.Errorf("expected op=assemble, got %v", m["op"])
	}
	if m["messages"] != 12 {
		t.Errorf("expected messages=12, got %v", m["messages"])
	}
}

func TestFieldsOddArgs(t *testing.T) {
	m := Fields("only-key")
	if len(m) != 0 {
		t.Errorf("expected empty map for dangling key, got %v", m)
	}
}

func TestErrorFields(t *testing.T) {
	m := ErrorFields("fetch", fmt.Errorf("boom"))
	if m[FieldOperation] != "fetch" {
		t.Errorf("expected operation field, got %v", m)
	}
	if m[FieldError] != "boom" {
		t.Errorf("expected error field, got %v", m)
	}
}

func TestDurationFields(t *testing.T) {
	m := DurationFields("generate", 1500*time.Millisecond)
	if m[FieldDuration] != int64(1500) {
		t.Errorf("expected 1500ms, got %v", m[FieldDuration])
	}
}
