// Copyright (c) 2026 The Axle developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis

import (
	"encoding/hex"
	"os"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/axlechain/axle/axle"
)

// Config is the custom genesis file.
type Config struct {
	Timestamp uint64          `yaml:"timestamp"`
	Premints  []PremintConfig `yaml:"premints,omitempty"`
}

// PremintConfig credits an account with native tokens at genesis.
type PremintConfig struct {
	Script ScriptConfig `yaml:"script"`
	Amount string       `yaml:"amount"`
}

// ScriptConfig is the yaml form of a script.
type ScriptConfig struct {
	CodeHash string `yaml:"codeHash"`
	HashType string `yaml:"hashType"`
	Args     string `yaml:"args,omitempty"`
}

// LoadConfig reads a genesis config file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read genesis config")
	}
	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, errors.Wrap(err, "parse genesis config")
	}
	return &config, nil
}

func (sc *ScriptConfig) toScript() (*axle.Script, error) {
	codeHash, err := axle.ParseBytes32(sc.CodeHash)
	if err != nil {
		return nil, errors.Wrap(err, "parse code hash")
	}
	var hashType axle.ScriptHashType
	switch sc.HashType {
	case "data", "":
		hashType = axle.HashTypeData
	case "type":
		hashType = axle.HashTypeType
	default:
		return nil, errors.Errorf("unknown hash type %q", sc.HashType)
	}
	var args []byte
	if sc.Args != "" {
		args, err = hex.DecodeString(strings.TrimPrefix(sc.Args, "0x"))
		if err != nil {
			return nil, errors.Wrap(err, "parse args hex")
		}
	}
	return &axle.Script{CodeHash: codeHash, HashType: hashType, Args: args}, nil
}
