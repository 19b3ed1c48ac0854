package vm

import (
	"fmt"
	"io"
)

// ---------------------------------------------------------------------------
// Interpretation results
// ---------------------------------------------------------------------------

// InterpretStatus classifies the terminal state of a run.
type InterpretStatus int

const (
	// InterpretOK: the run reached RETURN and produced a value.
	InterpretOK InterpretStatus = iota

	// InterpretCompileError is reserved for a future compilation
	// front-end. The interpreter never produces it; it exists so the
	// status channel does not change shape when a front-end arrives.
	InterpretCompileError

	// InterpretRuntimeError: a decode fault, a stack fault, or an
	// instruction stream that ended without RETURN.
	InterpretRuntimeError
)

// String implements the Stringer interface.
func (s InterpretStatus) String() string {
	switch s {
	case InterpretOK:
		return "OK"
	case InterpretCompileError:
		return "COMPILE_ERROR"
	case InterpretRuntimeError:
		return "RUNTIME_ERROR"
	default:
		return fmt.Sprintf("STATUS_%d", int(s))
	}
}

// InterpretResult is the terminal outcome of one run: exactly one final
// value on success, or one fault classification.
type InterpretResult struct {
	Status InterpretStatus
	Value  Value // the returned value when Status is InterpretOK
	Err    error // the fault when Status is not InterpretOK
}

// ---------------------------------------------------------------------------
// Interpreter: bytecode execution engine
// ---------------------------------------------------------------------------

// Interpreter walks a chunk's instruction stream from offset 0, decoding
// one instruction at a time and applying its effect to the operand
// stack. It is single-threaded and owns its chunk and stack exclusively
// for the duration of a run.
type Interpreter struct {
	chunk *Chunk
	ip    int // instruction pointer (offset into the chunk's code)
	stack *Stack

	trace  bool
	traceW io.Writer
}

// NewInterpreter creates an interpreter for chunk with a default-size
// operand stack.
func NewInterpreter(chunk *Chunk) *Interpreter {
	return &Interpreter{
		chunk: chunk,
		stack: NewStack(DefaultStackSize),
	}
}

// SetStackSize replaces the operand stack with a fresh one of the given
// capacity. Only meaningful before Interpret.
func (i *Interpreter) SetStackSize(capacity int) {
	i.stack = NewStack(capacity)
}

// SetTrace enables per-step tracing to w: the stack contents before each
// decode, then the disassembled instruction with its offset and line.
// Tracing is a diagnostic side channel and never affects results.
// Passing nil disables tracing.
func (i *Interpreter) SetTrace(w io.Writer) {
	i.trace = w != nil
	i.traceW = w
}

// Interpret runs the chunk from offset 0 until RETURN completes the run,
// a fault terminates it, or the instruction stream is exhausted (itself
// a fault: the program never returned).
func (i *Interpreter) Interpret() InterpretResult {
	i.ip = 0
	i.stack.Reset()

	for i.ip < i.chunk.Len() {
		if i.trace {
			i.traceStack()
		}

		offset := i.ip
		inst, size, err := i.chunk.Marshal(offset)
		if err != nil {
			return i.fault(err)
		}
		if i.trace {
			fmt.Fprintf(i.traceW, "%04d %04d %s\n", offset, i.chunk.GetLine(offset), inst.Disassemble())
		}
		i.ip += size

		switch inst := inst.(type) {
		case Return:
			v, err := i.stack.Pop()
			if err != nil {
				return i.faultAt(offset, err)
			}
			return InterpretResult{Status: InterpretOK, Value: v}

		case Constant:
			if err := i.stack.Push(inst.Value); err != nil {
				return i.faultAt(offset, err)
			}

		case Negate:
			v, err := i.stack.Pop()
			if err != nil {
				return i.faultAt(offset, err)
			}
			if err := i.stack.Push(-v); err != nil {
				return i.faultAt(offset, err)
			}

		case Add:
			if err := i.binary(func(a, b Value) Value { return a + b }); err != nil {
				return i.faultAt(offset, err)
			}

		case Subtract:
			if err := i.binary(func(a, b Value) Value { return a - b }); err != nil {
				return i.faultAt(offset, err)
			}

		case Multiply:
			if err := i.binary(func(a, b Value) Value { return a * b }); err != nil {
				return i.faultAt(offset, err)
			}

		case Divide:
			// IEEE-754 division: zero divisors yield Inf/NaN, not faults.
			if err := i.binary(func(a, b Value) Value { return a / b }); err != nil {
				return i.faultAt(offset, err)
			}
		}
	}

	return i.fault(fmt.Errorf("vm: interpret: %w", ErrNoReturn))
}

// binary applies a two-operand arithmetic step: the right operand is
// popped first, preserving the left-to-right order established at
// encode time.
func (i *Interpreter) binary(apply func(a, b Value) Value) error {
	b, err := i.stack.Pop()
	if err != nil {
		return err
	}
	a, err := i.stack.Pop()
	if err != nil {
		return err
	}
	return i.stack.Push(apply(a, b))
}

func (i *Interpreter) fault(err error) InterpretResult {
	return InterpretResult{Status: InterpretRuntimeError, Err: err}
}

func (i *Interpreter) faultAt(offset int, err error) InterpretResult {
	return i.fault(fmt.Errorf("vm: at offset %d (line %d): %w", offset, i.chunk.GetLine(offset), err))
}

func (i *Interpreter) traceStack() {
	fmt.Fprint(i.traceW, "          ")
	for _, v := range i.stack.Values() {
		fmt.Fprintf(i.traceW, "[ %v ]", v)
	}
	fmt.Fprintln(i.traceW)
}
