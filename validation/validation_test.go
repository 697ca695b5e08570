package validation

import (
	"strings"
	"testing"

	"github.com/kumalab/kuma/errors"
)

type sampleConfig struct {
	Token     string  `mapstructure:"token" validate:"required"`
	Count     int     `mapstructure:"count" validate:"min=1,max=100"`
	Threshold float64 `mapstructure:"threshold" validate:"gt=0,lte=1"`
}

func TestValidate_Success(t *testing.T) {
	cfg := sampleConfig{Token: "abc", Count: 10, Threshold: 0.1}
	if err := Validate(cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_MissingRequired(t *testing.T) {
	cfg := sampleConfig{Count: 10, Threshold: 0.1}
	err := Validate(cfg)
	if err == nil {
		t.Fatal("expected error for missing token")
	}
	if !errors.HasCode(err, errors.ErrCodeInvalidInput) {
		t.Errorf("expected INVALID_INPUT code, got %v", err)
	}
	if !strings.Contains(err.Error(), "token") {
		t.Errorf("expected field name in message, got %q", err.Error())
	}
}

func TestValidate_RangeViolations(t *testing.T) {
	tests := []struct {
		name string
		cfg  sampleConfig
		want string
	}{
		{"count too high", sampleConfig{Token: "x", Count: 101, Threshold: 0.1}, "count"},
		{"threshold zero", sampleConfig{Token: "x", Count: 1, Threshold: 0}, "threshold"},
		{"threshold above one", sampleConfig{Token: "x", Count: 1, Threshold: 1.5}, "threshold"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.cfg)
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("expected %q in error, got %q", tt.want, err.Error())
			}
		})
	}
}
