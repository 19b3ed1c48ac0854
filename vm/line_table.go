package vm

// ---------------------------------------------------------------------------
// Line table: run-length mapping from byte offsets to source lines
// ---------------------------------------------------------------------------

// lineRun attributes a run of contiguous instruction bytes to one source
// line. Length counts bytes, not instructions.
type lineRun struct {
	Line   int `cbor:"1,keyasint"`
	Length int `cbor:"2,keyasint"`
}

// lineTable maps instruction byte offsets to source line numbers.
// Consecutive bytes sharing a line share a single run, so straight-line
// code costs one entry per line rather than one per byte.
type lineTable struct {
	runs []lineRun
}

// add attributes the next length bytes to line, extending the last run
// when the line number matches.
func (t *lineTable) add(line, length int) {
	if n := len(t.runs); n > 0 && t.runs[n-1].Line == line {
		t.runs[n-1].Length += length
		return
	}
	t.runs = append(t.runs, lineRun{Line: line, Length: length})
}

// lookup resolves a byte offset to its source line. Offsets past the
// recorded bytes resolve to the sentinel line 0.
func (t *lineTable) lookup(offset int) int {
	if offset < 0 {
		return 0
	}
	for _, run := range t.runs {
		if offset < run.Length {
			return run.Line
		}
		offset -= run.Length
	}
	return 0
}

// total returns the number of bytes covered by all runs. A chunk keeps
// this equal to the length of its instruction stream.
func (t *lineTable) total() int {
	n := 0
	for _, run := range t.runs {
		n += run.Length
	}
	return n
}

// runCount returns the number of runs in the table.
func (t *lineTable) runCount() int {
	return len(t.runs)
}
