// Copyright (c) 2026 The Axle developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package vm

import "fmt"

// OpCode is a single byte instruction of the sandbox machine.
type OpCode byte

const (
	STOP OpCode = 0x00
	ADD  OpCode = 0x01
	SUB  OpCode = 0x03

	LT     OpCode = 0x10
	GT     OpCode = 0x11
	EQ     OpCode = 0x14
	ISZERO OpCode = 0x15
	AND    OpCode = 0x16

	POP      OpCode = 0x50
	JUMP     OpCode = 0x56
	JUMPI    OpCode = 0x57
	JUMPDEST OpCode = 0x5b

	// PUSH1..PUSH32 carry 1..32 bytes of immediate data.
	PUSH1  OpCode = 0x60
	PUSH2  OpCode = 0x61
	PUSH4  OpCode = 0x63
	PUSH32 OpCode = 0x7f

	DUP1 OpCode = 0x80
	DUP2 OpCode = 0x81
	DUP3 OpCode = 0x82
	DUP4 OpCode = 0x83

	SWAP1 OpCode = 0x90
	SWAP2 OpCode = 0x91
	SWAP3 OpCode = 0x92
	SWAP4 OpCode = 0x93

	// Syscall opcodes delegate to the bound capability set.
	ARG        OpCode = 0xf0
	ARGLEN     OpCode = 0xf1
	SENDER     OpCode = 0xf2
	RECEIVER   OpCode = 0xf3
	LOADCELL   OpCode = 0xf4
	STORECELL  OpCode = 0xf5
	SCRIPTHASH OpCode = 0xf6
	CODEHASH   OpCode = 0xf7
	CODESIZE   OpCode = 0xf8
	LOG        OpCode = 0xf9
	RETURN     OpCode = 0xfa
	NUMBER     OpCode = 0xfb
	TIMESTAMP  OpCode = 0xfc
	EXIT       OpCode = 0xfd
	PRODUCER   OpCode = 0xfe
)

var opNames = map[OpCode]string{
	STOP:       "STOP",
	ADD:        "ADD",
	SUB:        "SUB",
	LT:         "LT",
	GT:         "GT",
	EQ:         "EQ",
	ISZERO:     "ISZERO",
	AND:        "AND",
	POP:        "POP",
	JUMP:       "JUMP",
	JUMPI:      "JUMPI",
	JUMPDEST:   "JUMPDEST",
	DUP1:       "DUP1",
	DUP2:       "DUP2",
	DUP3:       "DUP3",
	DUP4:       "DUP4",
	SWAP1:      "SWAP1",
	SWAP2:      "SWAP2",
	SWAP3:      "SWAP3",
	SWAP4:      "SWAP4",
	ARG:        "ARG",
	ARGLEN:     "ARGLEN",
	SENDER:     "SENDER",
	RECEIVER:   "RECEIVER",
	LOADCELL:   "LOADCELL",
	STORECELL:  "STORECELL",
	SCRIPTHASH: "SCRIPTHASH",
	CODEHASH:   "CODEHASH",
	CODESIZE:   "CODESIZE",
	LOG:        "LOG",
	RETURN:     "RETURN",
	NUMBER:     "NUMBER",
	TIMESTAMP:  "TIMESTAMP",
	EXIT:       "EXIT",
	PRODUCER:   "PRODUCER",
}

// IsPush reports whether the opcode is one of PUSH1..PUSH32.
func (op OpCode) IsPush() bool {
	return op >= PUSH1 && op <= PUSH32
}

// PushSize returns the immediate data size of a push opcode.
func (op OpCode) PushSize() int {
	return int(op-PUSH1) + 1
}

// String implements stringer.
func (op OpCode) String() string {
	if name, ok := opNames[op]; ok {
		return name
	}
	if op.IsPush() {
		return fmt.Sprintf("PUSH%d", op.PushSize())
	}
	return fmt.Sprintf("opcode 0x%x not defined", byte(op))
}
