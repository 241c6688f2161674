package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadResult is an effective config plus the file it came from.
type LoadResult struct {
	Config *Config
	File   string // empty when no file was found and defaults were used
}

// DefaultConfigPath returns $XDG_CONFIG_HOME/splash/config.yaml, falling back
// to ~/.config/splash/config.yaml.
func DefaultConfigPath() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "splash", "config.yaml"), nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "splash", "config.yaml"), nil
}

// Load reads the configuration from the standard location. A missing file is
// not an error.
func Load() (*LoadResult, error) {
	path, err := DefaultConfigPath()
	if err != nil {
		return nil, err
	}
	exists, err := pathExists(path)
	if err != nil {
		return nil, err
	}
	if !exists {
		return &LoadResult{Config: DefaultConfig()}, nil
	}
	return LoadFromPath(path)
}

// LoadFromPath reads and validates the configuration at path. Unlike Load, the
// file must exist.
func LoadFromPath(path string) (*LoadResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to read: %w", path, err)
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%s: failed to parse yaml: %w", path, err)
	}

	var raw RawConfig
	if err := decodeStrictYAML(data, &raw); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	cfg := DefaultConfig()
	raw.apply(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, attachSource(err, path, keyLines(&doc))
	}
	return &LoadResult{Config: cfg, File: path}, nil
}

func decodeStrictYAML(data []byte, out any) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(out); err != nil {
		if err == io.EOF {
			return nil
		}
		return err
	}
	return nil
}

// keyLines maps each top-level key to the line it appears on.
func keyLines(doc *yaml.Node) map[string]int {
	out := make(map[string]int)
	node := doc
	if node.Kind == yaml.DocumentNode && len(node.Content) > 0 {
		node = node.Content[0]
	}
	if node.Kind != yaml.MappingNode {
		return out
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i]
		out[key.Value] = key.Line
	}
	return out
}

func attachSource(err error, file string, lines map[string]int) error {
	var verr *ValidationError
	if !errors.As(err, &verr) {
		return fmt.Errorf("%s: %w", file, err)
	}
	verr.File = file
	verr.Line = lines[verr.Path]
	return verr
}

func pathExists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}
