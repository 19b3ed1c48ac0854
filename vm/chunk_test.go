package vm

import (
	"errors"
	"math"
	"testing"
)

// write pairs an instruction with the source line it is encoded at.
type write struct {
	inst Instruction
	line int
}

// mustWrite appends writes to a fresh chunk, failing the test on error.
func mustWrite(t *testing.T, writes ...write) *Chunk {
	t.Helper()
	c := NewChunk()
	for _, w := range writes {
		if err := c.Write(w.inst, w.line); err != nil {
			t.Fatalf("Write(%s) failed: %v", w.inst.Disassemble(), err)
		}
	}
	return c
}

// ---------------------------------------------------------------------------
// Round-trip tests
// ---------------------------------------------------------------------------

func TestMarshalRoundTrip(t *testing.T) {
	tests := []struct {
		inst Instruction
		size int
	}{
		{Return{}, 1},
		{Constant{Value: 1.2}, 2},
		{Negate{}, 1},
		{Add{}, 1},
		{Subtract{}, 1},
		{Multiply{}, 1},
		{Divide{}, 1},
	}

	for _, tt := range tests {
		c := mustWrite(t, write{tt.inst, 7})
		if got := c.Len(); got != tt.size {
			t.Errorf("%s: Len() = %d, want %d", tt.inst.Disassemble(), got, tt.size)
		}

		decoded, size, err := c.Marshal(0)
		if err != nil {
			t.Errorf("%s: Marshal failed: %v", tt.inst.Disassemble(), err)
			continue
		}
		if size != tt.size {
			t.Errorf("%s: consumed = %d, want %d", tt.inst.Disassemble(), size, tt.size)
		}
		if decoded.Opcode() != tt.inst.Opcode() {
			t.Errorf("%s: Opcode = %s, want %s", tt.inst.Disassemble(), decoded.Opcode(), tt.inst.Opcode())
		}
	}
}

func TestMarshalConstantValue(t *testing.T) {
	c := mustWrite(t,
		write{Constant{Value: 1.2}, 1},
		write{Constant{Value: 3.4}, 1},
	)

	decoded, size, err := c.Marshal(2)
	if err != nil {
		t.Fatalf("Marshal(2) failed: %v", err)
	}
	if size != 2 {
		t.Errorf("consumed = %d, want 2", size)
	}
	k, ok := decoded.(Constant)
	if !ok {
		t.Fatalf("Marshal(2) = %T, want Constant", decoded)
	}
	if k.Index != 1 {
		t.Errorf("Index = %d, want 1", k.Index)
	}
	if math.Abs(k.Value-3.4) > 1e-15 {
		t.Errorf("Value = %v, want 3.4", k.Value)
	}
}

// ---------------------------------------------------------------------------
// Constant pool tests
// ---------------------------------------------------------------------------

func TestConstantPoolGrowth(t *testing.T) {
	c := NewChunk()
	for i := 0; i < 3; i++ {
		if err := c.Write(Constant{Value: Value(i)}, 1); err != nil {
			t.Fatalf("Write %d failed: %v", i, err)
		}
	}
	if got := c.ConstantCount(); got != 3 {
		t.Errorf("ConstantCount() = %d, want 3", got)
	}
	for i := 0; i < 3; i++ {
		v, err := c.Constant(i)
		if err != nil {
			t.Errorf("Constant(%d) failed: %v", i, err)
		}
		if v != Value(i) {
			t.Errorf("Constant(%d) = %v, want %v", i, v, Value(i))
		}
	}
}

func TestConstantPoolFull(t *testing.T) {
	c := NewChunk()
	for i := 0; i < MaxConstants; i++ {
		if err := c.Write(Constant{Value: Value(i)}, 1); err != nil {
			t.Fatalf("Write %d failed: %v", i, err)
		}
	}
	err := c.Write(Constant{Value: 999}, 1)
	if !errors.Is(err, ErrPoolFull) {
		t.Errorf("Write past pool limit: err = %v, want ErrPoolFull", err)
	}
	// The failed write must not grow the instruction stream.
	if got := c.Len(); got != MaxConstants*2 {
		t.Errorf("Len() = %d, want %d", got, MaxConstants*2)
	}
}

func TestConstantIndexFault(t *testing.T) {
	if _, err := NewChunk().Constant(0); !errors.Is(err, ErrConstantIndex) {
		t.Errorf("Constant(0) on empty pool: err = %v, want ErrConstantIndex", err)
	}

	// A CONSTANT whose operand indexes outside the pool must fail decode.
	c := NewChunk()
	c.code = append(c.code, byte(OpConstant), 5)
	c.lines.add(1, 2)
	if _, _, err := c.Marshal(0); !errors.Is(err, ErrConstantIndex) {
		t.Errorf("Marshal of out-of-pool CONSTANT: err = %v, want ErrConstantIndex", err)
	}
}

// ---------------------------------------------------------------------------
// Decode fault tests
// ---------------------------------------------------------------------------

func TestMarshalFaults(t *testing.T) {
	c := mustWrite(t, write{Return{}, 1})

	if _, _, err := c.Marshal(-1); !errors.Is(err, ErrTruncated) {
		t.Errorf("Marshal(-1): err = %v, want ErrTruncated", err)
	}
	if _, _, err := c.Marshal(1); !errors.Is(err, ErrTruncated) {
		t.Errorf("Marshal past end: err = %v, want ErrTruncated", err)
	}

	// CONSTANT tag as the final byte: the operand is missing.
	trunc := NewChunk()
	trunc.code = append(trunc.code, byte(OpConstant))
	trunc.lines.add(1, 1)
	if _, _, err := trunc.Marshal(0); !errors.Is(err, ErrTruncated) {
		t.Errorf("Marshal of truncated CONSTANT: err = %v, want ErrTruncated", err)
	}

	unknown := NewChunk()
	unknown.code = append(unknown.code, 0xFF)
	unknown.lines.add(1, 1)
	if _, _, err := unknown.Marshal(0); !errors.Is(err, ErrUnknownOpcode) {
		t.Errorf("Marshal of unknown opcode: err = %v, want ErrUnknownOpcode", err)
	}
}

// ---------------------------------------------------------------------------
// Line attribution tests
// ---------------------------------------------------------------------------

func TestGetLinePerByte(t *testing.T) {
	c := mustWrite(t,
		write{Constant{Value: 1.2}, 100}, // bytes 0-1
		write{Constant{Value: 3.4}, 100}, // bytes 2-3
		write{Add{}, 100},                // byte 4
		write{Return{}, 101},             // byte 5
	)

	wantLines := []int{100, 100, 100, 100, 100, 101}
	for offset, want := range wantLines {
		if got := c.GetLine(offset); got != want {
			t.Errorf("GetLine(%d) = %d, want %d", offset, got, want)
		}
	}
	if got := c.GetLine(c.Len()); got != 0 {
		t.Errorf("GetLine past end = %d, want 0", got)
	}

	// Contiguous same-line writes coalesce into a single run.
	if got := c.lines.runCount(); got != 2 {
		t.Errorf("line run count = %d, want 2", got)
	}
	if got, want := c.lines.total(), c.Len(); got != want {
		t.Errorf("line runs cover %d bytes, code is %d", got, want)
	}
}

func TestGetLineArbitraryLines(t *testing.T) {
	lines := []int{3, 1, 1, 2, 1}
	c := NewChunk()
	for i, line := range lines {
		if err := c.Write(Constant{Value: Value(i)}, line); err != nil {
			t.Fatalf("Write %d failed: %v", i, err)
		}
	}

	for i, line := range lines {
		for b := 0; b < 2; b++ {
			offset := i*2 + b
			if got := c.GetLine(offset); got != line {
				t.Errorf("GetLine(%d) = %d, want %d", offset, got, line)
			}
		}
	}

	// Four line transitions: 3->1, 1->2, 2->1, plus the initial run.
	if got := c.lines.runCount(); got != 4 {
		t.Errorf("line run count = %d, want 4", got)
	}
}
