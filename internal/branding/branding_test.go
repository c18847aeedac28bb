package branding

import "testing"

func TestEmbeddedValues(t *testing.T) {
	if got := CLIName(); got != "flashctl" {
		t.Errorf("CLIName() = %q, want %q", got, "flashctl")
	}
	if got := EnvPrefix(); got != "FLASHCTL" {
		t.Errorf("EnvPrefix() = %q, want %q", got, "FLASHCTL")
	}
	if got := HomeDir(); got != ".flashctl" {
		t.Errorf("HomeDir() = %q, want %q", got, ".flashctl")
	}
}

func TestEnvVar(t *testing.T) {
	tests := []struct {
		suffix string
		want   string
	}{
		{"baud", "FLASHCTL_BAUD"},
		{"comm_port", "FLASHCTL_COMM_PORT"},
		{"PLATFORM", "FLASHCTL_PLATFORM"},
	}
	for _, tt := range tests {
		t.Run(tt.suffix, func(t *testing.T) {
			if got := EnvVar(tt.suffix); got != tt.want {
				t.Errorf("EnvVar(%q) = %q, want %q", tt.suffix, got, tt.want)
			}
		})
	}
}
