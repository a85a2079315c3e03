// Package config loads compiler settings from a YAML file.
package config

import (
	"bytes"
	"io"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// DefaultFile is the configuration file looked up in the working directory
// when none is given explicitly.
const DefaultFile = "nexus.yaml"

// Config holds the settings of every compiler stage.
type Config struct {
	Parser      Parser      `yaml:"parser"`
	Sema        Sema        `yaml:"sema"`
	Optimize    Optimize    `yaml:"optimize"`
	Diagnostics Diagnostics `yaml:"diagnostics"`
}

// Parser settings.
type Parser struct {
	// Recover enables panic-mode recovery after a malformed statement.
	Recover bool `yaml:"recover"`
}

// Sema settings.
type Sema struct {
	// WarnConstAssign reports assignments to constants as warnings.
	WarnConstAssign bool `yaml:"warnConstAssign"`
}

// Optimize selects the optimizer stages.
type Optimize struct {
	Fold     bool `yaml:"fold"`
	Simplify bool `yaml:"simplify"`
	DCE      bool `yaml:"dce"`
	Verify   bool `yaml:"verify"`

	DumpBefore string `yaml:"dumpBefore,omitempty"`
	DumpAfter  string `yaml:"dumpAfter,omitempty"`
	DumpFunc   string `yaml:"dumpFunc,omitempty"`
}

// Diagnostics settings.
type Diagnostics struct {
	Color bool `yaml:"color"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Parser:   Parser{Recover: true},
		Optimize: Optimize{Fold: true, Simplify: true, DCE: true},
	}
}

// Load reads the configuration at path on top of Default. An empty path
// means DefaultFile, which may be absent; an explicitly named file must
// exist.
func Load(path string) (Config, error) {
	cfg := Default()
	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, errors.Wrapf(err, "reading config")
	}

	cfg, err = Parse(data)
	if err != nil {
		return cfg, errors.Wrapf(err, "loading %s", path)
	}
	return cfg, nil
}

// Parse decodes YAML on top of Default and validates the result. Unknown
// keys are rejected.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && err != io.EOF {
		return cfg, errors.Wrap(err, "decoding YAML")
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks option combinations.
func (c Config) Validate() error {
	o := c.Optimize
	if o.DumpFunc != "" && o.DumpBefore == "" && o.DumpAfter == "" {
		return errors.New("optimize.dumpFunc requires optimize.dumpBefore or optimize.dumpAfter")
	}
	for _, pass := range []string{o.DumpBefore, o.DumpAfter} {
		if pass != "" && !knownPass(pass) {
			return errors.Errorf("unknown pass %q (want fold, simplify, dce or *)", pass)
		}
	}
	return nil
}

func knownPass(name string) bool {
	switch name {
	case "*", "fold", "simplify", "dce":
		return true
	}
	return false
}
