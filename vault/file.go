// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package vault

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// File is the on-disk form of an answers file. Plaintext answers are hashed
// at load time; deployments should prefer the digests section.
type File struct {
	Answers map[string]string   `yaml:"answers,omitempty"`
	Digests map[string][]string `yaml:"digests,omitempty"`
}

// LoadFile reads a YAML answers file from path.
func LoadFile(path string, policy BlankPolicy) (*Vault, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read answers file: %w", err)
	}
	return Parse(raw, policy)
}

// Parse builds a vault from YAML. A question may appear in both sections;
// its accepted set is the union.
func Parse(raw []byte, policy BlankPolicy) (*Vault, error) {
	var f File
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse answers file: %w", err)
	}
	if len(f.Answers) == 0 && len(f.Digests) == 0 {
		return nil, ErrNoQuestions
	}

	v := &Vault{accepted: make(map[string]map[string]struct{})}
	if len(f.Digests) > 0 {
		var err error
		if v, err = FromDigests(f.Digests); err != nil {
			return nil, err
		}
	}
	for key, ref := range f.Answers {
		if err := v.addReference(key, ref, policy); err != nil {
			return nil, err
		}
	}
	return v, nil
}

// MarshalDigests renders the vault as a digests-only YAML file, suitable for
// replacing a plaintext answers file.
func (v *Vault) MarshalDigests() ([]byte, error) {
	if v == nil {
		return nil, errors.New("nil vault")
	}
	out, err := yaml.Marshal(File{Digests: v.Digests()})
	if err != nil {
		return nil, fmt.Errorf("marshal digests: %w", err)
	}
	return out, nil
}
