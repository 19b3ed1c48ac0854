package vm

import "fmt"

// ---------------------------------------------------------------------------
// Opcode definitions
// ---------------------------------------------------------------------------

// Opcode represents a single bytecode instruction tag.
type Opcode byte

// Control
const (
	OpReturn Opcode = 0x01 // pop top of stack, finish the run with it
)

// Constants
const (
	OpConstant Opcode = 0x02 // push pool value (8-bit pool index)
)

// Arithmetic
const (
	OpNegate   Opcode = 0x03 // pop a, push -a
	OpAdd      Opcode = 0x04 // pop b then a, push a+b
	OpSubtract Opcode = 0x05 // pop b then a, push a-b
	OpMultiply Opcode = 0x06 // pop b then a, push a*b
	OpDivide   Opcode = 0x07 // pop b then a, push a/b
)

// ---------------------------------------------------------------------------
// Opcode metadata
// ---------------------------------------------------------------------------

// OpcodeInfo holds metadata about an opcode.
type OpcodeInfo struct {
	Name         string // human-readable name
	OperandBytes int    // number of operand bytes
	StackEffect  int    // net effect on stack depth
}

// opcodeTable maps opcodes to their metadata.
var opcodeTable = map[Opcode]OpcodeInfo{
	OpReturn:   {"RETURN", 0, -1},
	OpConstant: {"CONSTANT", 1, 1},
	OpNegate:   {"NEGATE", 0, 0},
	OpAdd:      {"ADD", 0, -1},
	OpSubtract: {"SUBTRACT", 0, -1},
	OpMultiply: {"MULTIPLY", 0, -1},
	OpDivide:   {"DIVIDE", 0, -1},
}

// Valid reports whether op is a defined opcode.
func (op Opcode) Valid() bool {
	_, ok := opcodeTable[op]
	return ok
}

// Info returns the metadata for an opcode.
func (op Opcode) Info() OpcodeInfo {
	if info, ok := opcodeTable[op]; ok {
		return info
	}
	return OpcodeInfo{Name: fmt.Sprintf("UNKNOWN_%02X", byte(op)), OperandBytes: 0, StackEffect: 0}
}

// Name returns the human-readable name for an opcode.
func (op Opcode) Name() string {
	return op.Info().Name
}

// OperandBytes returns the number of operand bytes for an opcode.
func (op Opcode) OperandBytes() int {
	return op.Info().OperandBytes
}

// String implements the Stringer interface.
func (op Opcode) String() string {
	return op.Name()
}
