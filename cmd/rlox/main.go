// rlox CLI - assembles the demo arithmetic program, optionally
// disassembles it, and interprets it.
//
// Build: go build ./cmd/rlox
// Usage:
//
//	rlox                # run with rlox.toml settings (if present)
//	rlox -trace         # print stack and instruction before each step
//	rlox -disassemble   # print the chunk listing before running
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"

	"github.com/TranslationLookasideBuffer/rlox/manifest"
	"github.com/TranslationLookasideBuffer/rlox/vm"
)

func main() {
	trace := flag.Bool("trace", false, "Trace stack and instructions during execution")
	disassemble := flag.Bool("disassemble", false, "Print the chunk listing before running")
	configDir := flag.String("config", ".", "Directory to search upward for rlox.toml")
	verbosity := flag.Int("verbose", 0, "Log verbosity")
	flag.Parse()

	commonlog.Configure(*verbosity, nil)
	commonlog.NewInfoMessage(0, "rlox starting")

	m, err := manifest.FindAndLoad(*configDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading rlox.toml: %v\n", err)
		os.Exit(1)
	}
	if m == nil {
		m = manifest.Default()
	}
	if *trace {
		m.VM.Trace = true
	}
	if *disassemble {
		m.Disassembly.Enabled = true
	}

	chunk, err := assemble()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error assembling chunk: %v\n", err)
		os.Exit(1)
	}

	if m.Disassembly.Enabled {
		if err := vm.Disassemble(os.Stdout, chunk, m.Disassembly.Name); err != nil {
			fmt.Fprintf(os.Stderr, "Error disassembling chunk: %v\n", err)
			os.Exit(1)
		}
	}

	interp := vm.NewInterpreter(chunk)
	interp.SetStackSize(m.VM.StackSize)
	if m.VM.Trace {
		interp.SetTrace(os.Stdout)
	}

	result := interp.Interpret()
	if result.Status != vm.InterpretOK {
		fmt.Fprintf(os.Stderr, "%s: %v\n", result.Status, result.Err)
		os.Exit(70)
	}
	fmt.Println(result.Value)
}

// assemble builds the demo program: -((1.2 + 3.4) / 5.6).
func assemble() (*vm.Chunk, error) {
	chunk := vm.NewChunk()
	writes := []struct {
		inst vm.Instruction
		line int
	}{
		{vm.Constant{Value: 1.2}, 100},
		{vm.Constant{Value: 3.4}, 100},
		{vm.Add{}, 100},
		{vm.Constant{Value: 5.6}, 100},
		{vm.Divide{}, 100},
		{vm.Negate{}, 100},
		{vm.Return{}, 101},
	}
	for _, w := range writes {
		if err := chunk.Write(w.inst, w.line); err != nil {
			return nil, err
		}
	}
	return chunk, nil
}
