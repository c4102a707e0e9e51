// Copyright (c) 2026 The Axle developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package vm

import (
	"encoding/binary"

	"github.com/pkg/errors"
)

// Assembler builds machine programs from mnemonics with label resolution.
// It exists for the builtin backend programs and for tests; production
// backends arrive as already-assembled opaque bytes.
type Assembler struct {
	code    []byte
	labels  map[string]uint64
	patches []patch
}

type patch struct {
	pos   int
	label string
}

// NewAssembler creates an empty assembler.
func NewAssembler() *Assembler {
	return &Assembler{labels: make(map[string]uint64)}
}

// Op appends plain opcodes.
func (a *Assembler) Op(ops ...OpCode) *Assembler {
	for _, op := range ops {
		a.code = append(a.code, byte(op))
	}
	return a
}

// Push appends the smallest PUSHn fitting v.
func (a *Assembler) Push(v uint64) *Assembler {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], v)
	b := buf[:]
	for len(b) > 1 && b[0] == 0 {
		b = b[1:]
	}
	a.code = append(a.code, byte(PUSH1)+byte(len(b)-1))
	a.code = append(a.code, b...)
	return a
}

// PushBytes appends a PUSHn carrying the given immediate (1..32 bytes).
func (a *Assembler) PushBytes(b []byte) *Assembler {
	if len(b) == 0 || len(b) > 32 {
		panic("asm: push immediate must be 1..32 bytes")
	}
	a.code = append(a.code, byte(PUSH1)+byte(len(b)-1))
	a.code = append(a.code, b...)
	return a
}

// Label emits a JUMPDEST and binds the name to its position.
func (a *Assembler) Label(name string) *Assembler {
	a.labels[name] = uint64(len(a.code))
	a.code = append(a.code, byte(JUMPDEST))
	return a
}

// Jump emits an unconditional jump to a label.
func (a *Assembler) Jump(label string) *Assembler {
	a.pushLabel(label)
	a.code = append(a.code, byte(JUMP))
	return a
}

// JumpI emits a conditional jump to a label; it consumes the condition
// already on the stack.
func (a *Assembler) JumpI(label string) *Assembler {
	a.pushLabel(label)
	a.code = append(a.code, byte(JUMPI))
	return a
}

func (a *Assembler) pushLabel(label string) {
	a.code = append(a.code, byte(PUSH2))
	a.patches = append(a.patches, patch{pos: len(a.code), label: label})
	a.code = append(a.code, 0, 0)
}

// Assemble resolves labels and returns the program bytes.
func (a *Assembler) Assemble() ([]byte, error) {
	for _, p := range a.patches {
		dest, ok := a.labels[p.label]
		if !ok {
			return nil, errors.Errorf("asm: undefined label %q", p.label)
		}
		if dest > 0xffff {
			return nil, errors.Errorf("asm: label %q out of PUSH2 range", p.label)
		}
		binary.BigEndian.PutUint16(a.code[p.pos:], uint16(dest))
	}
	return a.code, nil
}

// MustAssemble is Assemble that panics on error, for static program
// definitions.
func (a *Assembler) MustAssemble() []byte {
	code, err := a.Assemble()
	if err != nil {
		panic(err)
	}
	return code
}
