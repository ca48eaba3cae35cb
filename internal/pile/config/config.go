// Package config loads pilec.toml, the optional configuration file
// overriding grammar path, codegen backend, and default output name.
package config

import (
	"os"

	"github.com/BurntSushi/toml"
)

// Config holds pilec's tunables. Zero value is Default().
type Config struct {
	GrammarPath string `toml:"grammar_path"`
	Codegen     string `toml:"codegen"`
	Output      string `toml:"output"`
	Trace       bool   `toml:"trace"`
}

// Default returns the built-in configuration used when no pilec.toml is
// present.
func Default() Config {
	return Config{
		Codegen: "vm",
		Output:  "bytecode.bin",
	}
}

// Load reads and decodes path, filling in defaults for any field the
// file doesn't set. A missing file is not an error; Default() is
// returned unchanged.
func Load(path string) (Config, error) {
	cfg := Default()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, err
	}
	if cfg.Codegen == "" {
		cfg.Codegen = "vm"
	}
	if cfg.Output == "" {
		cfg.Output = "bytecode.bin"
	}
	return cfg, nil
}
