package vm

import (
	"fmt"
	"io"
)

// ---------------------------------------------------------------------------
// Disassembly
// ---------------------------------------------------------------------------

// Disassemble prints a human-readable listing of the chunk to w: a
// header naming the chunk, then one line per instruction in the form
// "offset line text" with both numeric fields zero-padded to four
// digits. It walks the stream exactly the way the interpreter does but
// never executes, so it is safe on any chunk. An unrecognized opcode
// aborts the listing with a decode error.
func Disassemble(w io.Writer, c *Chunk, name string) error {
	fmt.Fprintf(w, "=== %s chunk ===\n", name)
	for offset := 0; offset < c.Len(); {
		inst, size, err := c.Marshal(offset)
		if err != nil {
			return fmt.Errorf("vm: disassemble %s: %w", name, err)
		}
		fmt.Fprintf(w, "%04d %04d %s\n", offset, c.GetLine(offset), inst.Disassemble())
		offset += size
	}
	return nil
}
