package vm

import "fmt"

// ---------------------------------------------------------------------------
// Instruction variants
// ---------------------------------------------------------------------------

// Instruction is one decoded bytecode operation. The variant set is
// closed: Chunk.Marshal is the only producer of decoded instructions and
// dispatches on the opcode tag, so an invalid tag can never reach an
// Instruction value.
type Instruction interface {
	// Opcode returns the instruction's tag byte.
	Opcode() Opcode

	// Disassemble returns the human-readable text for the instruction.
	Disassemble() string

	// encode appends the instruction's byte encoding to the chunk.
	encode(c *Chunk) error
}

// Return pops the top of stack and completes the run, yielding the
// popped value as the run's result.
type Return struct{}

func (Return) Opcode() Opcode      { return OpReturn }
func (Return) Disassemble() string { return OpReturn.Name() }

func (Return) encode(c *Chunk) error {
	c.code = append(c.code, byte(OpReturn))
	return nil
}

// Constant pushes a literal from the constant pool. At encode time Value
// carries the literal to intern; after decoding, Value holds the
// resolved pool entry and Index the operand byte that named it.
type Constant struct {
	Value Value
	Index int
}

func (Constant) Opcode() Opcode { return OpConstant }

func (k Constant) Disassemble() string {
	return fmt.Sprintf("%s: %v", OpConstant.Name(), k.Value)
}

func (k Constant) encode(c *Chunk) error {
	index, err := c.AddConstant(k.Value)
	if err != nil {
		return err
	}
	c.code = append(c.code, byte(OpConstant), byte(index))
	return nil
}

// Negate pops one value and pushes its arithmetic negation.
type Negate struct{}

func (Negate) Opcode() Opcode      { return OpNegate }
func (Negate) Disassemble() string { return OpNegate.Name() }

func (Negate) encode(c *Chunk) error {
	c.code = append(c.code, byte(OpNegate))
	return nil
}

// Add pops the right then the left operand and pushes left+right.
type Add struct{}

func (Add) Opcode() Opcode      { return OpAdd }
func (Add) Disassemble() string { return OpAdd.Name() }

func (Add) encode(c *Chunk) error {
	c.code = append(c.code, byte(OpAdd))
	return nil
}

// Subtract pops the right then the left operand and pushes left-right.
type Subtract struct{}

func (Subtract) Opcode() Opcode      { return OpSubtract }
func (Subtract) Disassemble() string { return OpSubtract.Name() }

func (Subtract) encode(c *Chunk) error {
	c.code = append(c.code, byte(OpSubtract))
	return nil
}

// Multiply pops the right then the left operand and pushes left*right.
type Multiply struct{}

func (Multiply) Opcode() Opcode      { return OpMultiply }
func (Multiply) Disassemble() string { return OpMultiply.Name() }

func (Multiply) encode(c *Chunk) error {
	c.code = append(c.code, byte(OpMultiply))
	return nil
}

// Divide pops the right then the left operand and pushes left/right.
// There is no zero check: division follows IEEE-754, so a zero divisor
// yields an infinity or NaN.
type Divide struct{}

func (Divide) Opcode() Opcode      { return OpDivide }
func (Divide) Disassemble() string { return OpDivide.Name() }

func (Divide) encode(c *Chunk) error {
	c.code = append(c.code, byte(OpDivide))
	return nil
}
