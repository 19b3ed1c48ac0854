package vm

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

// ---------------------------------------------------------------------------
// Chunk snapshots: CBOR serialization of a chunk within one process run
// ---------------------------------------------------------------------------

// cborEncMode uses canonical options so equal chunks encode to equal
// bytes, which the content store relies on for hashing.
var cborEncMode cbor.EncMode

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("vm: failed to create CBOR enc mode: %v", err))
	}
	cborEncMode = em
}

// chunkSnapshot is the CBOR wire form of a Chunk.
type chunkSnapshot struct {
	Code  []byte    `cbor:"1,keyasint"`
	Lines []lineRun `cbor:"2,keyasint,omitempty"`
	Pool  []Value   `cbor:"3,keyasint,omitempty"`
}

// MarshalChunk serializes a chunk to CBOR bytes.
func MarshalChunk(c *Chunk) ([]byte, error) {
	snap := chunkSnapshot{
		Code:  c.code,
		Lines: c.lines.runs,
		Pool:  c.pool,
	}
	return cborEncMode.Marshal(&snap)
}

// UnmarshalChunk deserializes a chunk from CBOR bytes, revalidating the
// invariants Write maintains: line runs cover the instruction stream
// exactly and the pool fits its one-byte index range.
func UnmarshalChunk(data []byte) (*Chunk, error) {
	var snap chunkSnapshot
	if err := cbor.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("vm: unmarshal chunk: %w", err)
	}

	if len(snap.Pool) > MaxConstants {
		return nil, fmt.Errorf("vm: unmarshal chunk: pool holds %d values: %w", len(snap.Pool), ErrPoolFull)
	}
	c := &Chunk{
		code:  snap.Code,
		lines: lineTable{runs: snap.Lines},
		pool:  snap.Pool,
	}
	for _, run := range snap.Lines {
		if run.Length <= 0 {
			return nil, fmt.Errorf("vm: unmarshal chunk: line run of length %d", run.Length)
		}
	}
	if got, want := c.lines.total(), c.Len(); got != want {
		return nil, fmt.Errorf("vm: unmarshal chunk: line runs cover %d bytes, code is %d", got, want)
	}
	return c, nil
}
