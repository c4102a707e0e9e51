// Copyright (c) 2026 The Axle developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package backend

import (
	"encoding/hex"
	"os"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config lists additional programs to register, usually loaded from a
// deployment's backend file.
type Config struct {
	Backends []ProgramConfig `yaml:"backends"`
}

// ProgramConfig describes one program. Exactly one of Program (hex inline
// code) or Path (file holding raw code) must be set.
type ProgramConfig struct {
	Name    string `yaml:"name"`
	Program string `yaml:"program,omitempty"`
	Path    string `yaml:"path,omitempty"`
}

// LoadConfig reads a backend config file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read backend config")
	}
	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, errors.Wrap(err, "parse backend config")
	}
	return &config, nil
}

// AddConfigured registers every program the config lists.
func (b *Builder) AddConfigured(config *Config) error {
	for _, pc := range config.Backends {
		program, err := pc.load()
		if err != nil {
			return errors.Wrapf(err, "backend %q", pc.Name)
		}
		b.Add(New(program))
	}
	return nil
}

func (pc *ProgramConfig) load() ([]byte, error) {
	switch {
	case pc.Program != "" && pc.Path != "":
		return nil, errors.New("program and path are mutually exclusive")
	case pc.Program != "":
		program, err := hex.DecodeString(strings.TrimPrefix(pc.Program, "0x"))
		if err != nil {
			return nil, errors.Wrap(err, "decode program hex")
		}
		return program, nil
	case pc.Path != "":
		return os.ReadFile(pc.Path)
	default:
		return nil, errors.New("no program given")
	}
}
