// Package vm implements the rlox virtual machine.
//
// This package contains:
//   - Chunk: encoded instructions plus constant pool and line table
//   - A closed arithmetic instruction set with encode/decode
//   - Fixed-capacity operand stack
//   - Bytecode interpreter and disassembler
//   - CBOR chunk snapshots and a content-addressed chunk store
package vm
