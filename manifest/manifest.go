// Package manifest handles rlox.toml runner configuration.
package manifest

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// DefaultStackSize mirrors the VM's default operand stack capacity.
const DefaultStackSize = 256

// Manifest represents an rlox.toml runner configuration.
type Manifest struct {
	VM          VMConfig          `toml:"vm"`
	Disassembly DisassemblyConfig `toml:"disassembly"`

	// Dir is the directory containing the rlox.toml file (set at load time).
	Dir string `toml:"-"`
}

// VMConfig configures the interpreter.
type VMConfig struct {
	StackSize int  `toml:"stack-size"`
	Trace     bool `toml:"trace"`
}

// DisassemblyConfig configures the pre-run chunk listing.
type DisassemblyConfig struct {
	Enabled bool   `toml:"enabled"`
	Name    string `toml:"name"`
}

// Default returns the configuration used when no rlox.toml is present.
func Default() *Manifest {
	return &Manifest{
		VM:          VMConfig{StackSize: DefaultStackSize},
		Disassembly: DisassemblyConfig{Name: "main"},
	}
}

// Load parses an rlox.toml file from the given directory.
func Load(dir string) (*Manifest, error) {
	path := filepath.Join(dir, "rlox.toml")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}

	var m Manifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse error in %s: %w", path, err)
	}

	m.Dir, err = filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("cannot resolve path %s: %w", dir, err)
	}

	// Defaults
	if m.VM.StackSize == 0 {
		m.VM.StackSize = DefaultStackSize
	}
	if m.Disassembly.Name == "" {
		m.Disassembly.Name = "main"
	}

	if m.VM.StackSize < 0 {
		return nil, fmt.Errorf("invalid stack-size %d in %s", m.VM.StackSize, path)
	}

	return &m, nil
}

// FindAndLoad walks up from startDir to find an rlox.toml file, then
// loads and returns the manifest. Returns nil if no manifest is found.
func FindAndLoad(startDir string) (*Manifest, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return nil, err
	}

	for {
		path := filepath.Join(dir, "rlox.toml")
		if _, err := os.Stat(path); err == nil {
			return Load(dir)
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached root
			return nil, nil
		}
		dir = parent
	}
}
