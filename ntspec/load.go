package ntspec

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// ErrUnknownFormat is returned by LoadFile for an unsupported file extension.
var ErrUnknownFormat = errors.New("ntspec: unknown file format")

// LoadFile reads a description from path. The format follows the extension:
// .yaml/.yml or .toml.
func LoadFile(path string) (*Spec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("ntspec: load %s: %w", path, err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ParseYAML(data)
	case ".toml":
		return ParseTOML(data)
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, path)
}

// ParseYAML decodes a YAML description. Unknown keys are rejected.
func ParseYAML(data []byte) (*Spec, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	var s Spec
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("ntspec: parse yaml: %w", err)
	}
	return &s, nil
}

// ParseTOML decodes a TOML description. Unknown keys are rejected.
func ParseTOML(data []byte) (*Spec, error) {
	var s Spec
	meta, err := toml.Decode(string(data), &s)
	if err != nil {
		return nil, fmt.Errorf("ntspec: parse toml: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("ntspec: parse toml: unknown key %q", undecoded[0].String())
	}
	return &s, nil
}
