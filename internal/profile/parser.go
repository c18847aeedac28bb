package profile

import (
	_ "embed"
	"fmt"
	"os"
	"sync"

	"go.yaml.in/yaml/v3"
)

//go:embed profiles/mars_ax3.yaml
var builtinProfile []byte

var (
	builtinOnce sync.Once
	builtin     *Profile
	builtinErr  error
)

// Builtin returns the profile compiled into the binary. It is parsed and
// validated once; the result is shared and must not be modified.
func Builtin() (*Profile, error) {
	builtinOnce.Do(func() {
		builtin, builtinErr = load(builtinProfile, "embedded profile")
	})
	return builtin, builtinErr
}

// BuiltinSource returns the raw YAML of the embedded profile.
func BuiltinSource() []byte {
	return builtinProfile
}

// ParseFile reads and parses a profile without schema validation.
func ParseFile(path string) (*Profile, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data, path)
}

// Parse unmarshals profile YAML. name is used in error messages only.
func Parse(data []byte, name string) (*Profile, error) {
	var p Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parsing profile %s: %w", name, err)
	}
	return &p, nil
}

// load validates data against the schema and parses it.
func load(data []byte, name string) (*Profile, error) {
	result, err := Validate(data)
	if err != nil {
		return nil, fmt.Errorf("validating %s: %w", name, err)
	}
	if !result.Valid {
		return nil, fmt.Errorf("%s is invalid: %s", name, result.Summary())
	}
	return Parse(data, name)
}

// readFile reads the contents of a file at the given path.
func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", path, err)
	}
	return data, nil
}
