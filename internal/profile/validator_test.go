package profile

import (
	"path/filepath"
	"testing"
)

func testPath(name string) string {
	return filepath.Join("testdata", name)
}

func TestValidate_BuiltinProfile(t *testing.T) {
	result, err := Validate(BuiltinSource())
	if err != nil {
		t.Fatalf("Validate(builtin) error: %v", err)
	}
	if !result.Valid {
		t.Fatalf("embedded profile is invalid: %s", result.Summary())
	}
}

func TestValidateFile_Valid(t *testing.T) {
	result, err := ValidateFile(testPath("valid-minimal.yaml"))
	if err != nil {
		t.Fatalf("ValidateFile error: %v", err)
	}
	if !result.Valid {
		t.Errorf("expected valid, got: %s", result.Summary())
	}
}

func TestValidateFile_Invalid(t *testing.T) {
	tests := []struct {
		file    string
		desc    string
		keyword string
	}{
		{"invalid-missing-platform.yaml", "missing platform", "required"},
		{"invalid-bad-kind.yaml", "unknown operation kind", "enum"},
		{"invalid-external-no-tool.yaml", "external operation without tool", "required"},
		{"invalid-duplicate-operation.yaml", "operation listed twice", "unique"},
	}

	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			result, err := ValidateFile(testPath(tt.file))
			if err != nil {
				t.Fatalf("ValidateFile(%s) unexpected error: %v", tt.file, err)
			}
			if result.Valid {
				t.Fatalf("expected invalid for %s (%s), but got valid", tt.file, tt.desc)
			}
			found := false
			for _, issue := range result.Issues {
				if issue.Keyword == tt.keyword {
					found = true
				}
				if issue.Message == "" {
					t.Errorf("issue at %q has empty message", issue.Path)
				}
			}
			if !found {
				t.Errorf("no %q issue for %s; got %+v", tt.keyword, tt.desc, result.Issues)
			}
		})
	}
}

func TestValidateFile_InvalidYAML(t *testing.T) {
	_, err := ValidateFile(testPath("invalid-not-yaml.yaml"))
	if err == nil {
		t.Fatal("expected error for invalid YAML, got nil")
	}
}

func TestValidateFile_NotFound(t *testing.T) {
	_, err := ValidateFile(testPath("nonexistent.yaml"))
	if err == nil {
		t.Fatal("expected error for nonexistent file, got nil")
	}
}

func TestValidationResult_Summary(t *testing.T) {
	r := &ValidationResult{Issues: []ValidationIssue{
		{Path: "/platform", Message: "missing"},
		{Message: "top-level"},
	}}
	if got, want := r.Summary(), "/platform: missing; top-level"; got != want {
		t.Errorf("Summary() = %q, want %q", got, want)
	}
}
