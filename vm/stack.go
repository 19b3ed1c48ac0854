package vm

import "fmt"

// ---------------------------------------------------------------------------
// Operand stack
// ---------------------------------------------------------------------------

// DefaultStackSize is the operand stack capacity used when the caller
// does not choose one.
const DefaultStackSize = 256

// Stack is a fixed-capacity LIFO of values used as the execution
// workspace for one interpretation run. Every push and pop is bounds
// checked: overflow and underflow surface as errors, never as silent
// clamping or out-of-range access.
type Stack struct {
	slots []Value
	sp    int // next free slot
}

// NewStack creates a stack with the given capacity. Non-positive
// capacities fall back to DefaultStackSize.
func NewStack(capacity int) *Stack {
	if capacity <= 0 {
		capacity = DefaultStackSize
	}
	return &Stack{slots: make([]Value, capacity)}
}

// Push places v on top of the stack.
func (s *Stack) Push(v Value) error {
	if s.sp >= len(s.slots) {
		return fmt.Errorf("vm: push at depth %d: %w", s.sp, ErrStackOverflow)
	}
	s.slots[s.sp] = v
	s.sp++
	return nil
}

// Pop removes and returns the top of the stack.
func (s *Stack) Pop() (Value, error) {
	if s.sp == 0 {
		return 0, fmt.Errorf("vm: pop: %w", ErrStackUnderflow)
	}
	s.sp--
	return s.slots[s.sp], nil
}

// Depth returns the number of live values.
func (s *Stack) Depth() int {
	return s.sp
}

// Cap returns the stack's capacity.
func (s *Stack) Cap() int {
	return len(s.slots)
}

// Values returns the live values, bottom first. The slice aliases the
// stack's storage and is only valid until the next push or pop.
func (s *Stack) Values() []Value {
	return s.slots[:s.sp]
}

// Reset empties the stack.
func (s *Stack) Reset() {
	s.sp = 0
}
