// Copyright (c) 2026 The Axle developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package backend maintains the set of executable programs known to the
// engine, addressed by the hash of their code. An account is executable
// only when its script names a registered code hash.
package backend

import (
	"github.com/axlechain/axle/axle"
)

// Backend is an immutable executable program together with its code hash.
type Backend struct {
	codeHash axle.Bytes32
	program  []byte
}

// New creates a backend from program code.
func New(program []byte) *Backend {
	cpy := append([]byte(nil), program...)
	return &Backend{
		codeHash: axle.Blake2b(cpy),
		program:  cpy,
	}
}

// CodeHash returns the hash addressing the program.
func (b *Backend) CodeHash() axle.Bytes32 {
	return b.codeHash
}

// Program returns a copy of the program code.
func (b *Backend) Program() []byte {
	return append([]byte(nil), b.program...)
}

// Size returns the program code size in bytes.
func (b *Backend) Size() int {
	return len(b.program)
}
