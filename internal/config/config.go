// Package config loads the compiler's optional non-functional run
// settings (output directory, whether to emit the TCAM table). It is a thin
// adapter around TOML, not part of the core pipeline (core/§1's
// "out of scope" I/O adapters), so it cannot influence the
// determinism of the compiled tables themselves (spec.md §8 property 7).
package config

import (
	"github.com/BurntSushi/toml"
)

// Run holds the settings an operator can override via --config.
type Run struct {
	OutputDir string `toml:"output_dir"`
	EmitTCAM  bool   `toml:"emit_tcam"`
}

// Default mirrors the original tool's hardcoded "output/" directory and
// always-on TCAM table, so behavior is unchanged when no --config flag
// is given.
func Default() Run {
	return Run{OutputDir: "output", EmitTCAM: true}
}

// Load decodes a TOML run-config file, starting from Default() so any
// field the file omits keeps its default value.
func Load(path string) (Run, error) {
	run := Default()
	_, err := toml.DecodeFile(path, &run)
	if err != nil {
		return Run{}, err
	}
	return run, nil
}
