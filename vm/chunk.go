package vm

import (
	"errors"
	"fmt"
)

// ---------------------------------------------------------------------------
// Fault classes
// ---------------------------------------------------------------------------

var (
	ErrUnknownOpcode  = errors.New("unknown opcode")
	ErrTruncated      = errors.New("truncated instruction")
	ErrConstantIndex  = errors.New("constant index out of range")
	ErrPoolFull       = errors.New("constant pool full")
	ErrStackOverflow  = errors.New("stack overflow")
	ErrStackUnderflow = errors.New("stack underflow")
	ErrNoReturn       = errors.New("instruction stream ended without RETURN")
)

// MaxConstants is the hard limit on constant pool size. Pool indices
// travel as a single operand byte, so they must fit in 0..255.
const MaxConstants = 256

// ---------------------------------------------------------------------------
// Chunk: encoded instructions plus constant pool and line table
// ---------------------------------------------------------------------------

// Chunk is a self-contained unit of encoded instructions together with
// the constant pool its CONSTANT instructions index and a run-length
// line table for diagnostics. A chunk grows only by appending whole
// instructions through Write; there are no in-place edits.
type Chunk struct {
	code  []byte
	lines lineTable
	pool  []Value
}

// NewChunk creates an empty chunk.
func NewChunk() *Chunk {
	return &Chunk{
		code: make([]byte, 0, 32),
		pool: make([]Value, 0, 8),
	}
}

// Len returns the length of the instruction stream in bytes.
func (c *Chunk) Len() int {
	return len(c.code)
}

// Code returns the raw instruction bytes. The slice aliases the chunk's
// storage; callers must not modify it.
func (c *Chunk) Code() []byte {
	return c.code
}

// ---------------------------------------------------------------------------
// Constant pool access
// ---------------------------------------------------------------------------

// AddConstant appends v to the constant pool and returns its index.
// Indices are stable once assigned. Fails with ErrPoolFull once the pool
// holds MaxConstants values.
func (c *Chunk) AddConstant(v Value) (int, error) {
	if len(c.pool) >= MaxConstants {
		return 0, fmt.Errorf("vm: add constant: %w", ErrPoolFull)
	}
	c.pool = append(c.pool, v)
	return len(c.pool) - 1, nil
}

// Constant returns the pool value at index.
func (c *Chunk) Constant(index int) (Value, error) {
	if index < 0 || index >= len(c.pool) {
		return 0, fmt.Errorf("vm: constant %d of %d: %w", index, len(c.pool), ErrConstantIndex)
	}
	return c.pool[index], nil
}

// ConstantCount returns the number of pooled constants.
func (c *Chunk) ConstantCount() int {
	return len(c.pool)
}

// ---------------------------------------------------------------------------
// Instruction append and decode
// ---------------------------------------------------------------------------

// Write appends inst's encoding to the instruction stream and attributes
// every byte written to line in the line table, coalescing with the
// previous run when the line matches.
func (c *Chunk) Write(inst Instruction, line int) error {
	start := len(c.code)
	if err := inst.encode(c); err != nil {
		return err
	}
	c.lines.add(line, len(c.code)-start)
	return nil
}

// Marshal decodes the instruction whose opcode byte sits at offset and
// returns it together with the number of bytes it occupies (1 for
// zero-operand instructions, 2 for CONSTANT). The decode needs no state
// beyond the chunk itself and never reads past the instruction stream.
func (c *Chunk) Marshal(offset int) (Instruction, int, error) {
	if offset < 0 || offset >= len(c.code) {
		return nil, 0, fmt.Errorf("vm: marshal at offset %d of %d: %w", offset, len(c.code), ErrTruncated)
	}
	op := Opcode(c.code[offset])
	switch op {
	case OpReturn:
		return Return{}, 1, nil
	case OpConstant:
		if offset+1 >= len(c.code) {
			return nil, 0, fmt.Errorf("vm: marshal CONSTANT at offset %d: missing operand: %w", offset, ErrTruncated)
		}
		index := int(c.code[offset+1])
		v, err := c.Constant(index)
		if err != nil {
			return nil, 0, err
		}
		return Constant{Value: v, Index: index}, 2, nil
	case OpNegate:
		return Negate{}, 1, nil
	case OpAdd:
		return Add{}, 1, nil
	case OpSubtract:
		return Subtract{}, 1, nil
	case OpMultiply:
		return Multiply{}, 1, nil
	case OpDivide:
		return Divide{}, 1, nil
	default:
		return nil, 0, fmt.Errorf("vm: opcode 0x%02X at offset %d: %w", byte(op), offset, ErrUnknownOpcode)
	}
}

// GetLine resolves the source line for the instruction byte at offset,
// or 0 when the offset is out of range.
func (c *Chunk) GetLine(offset int) int {
	return c.lines.lookup(offset)
}
