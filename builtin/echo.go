// Copyright (c) 2026 The Axle developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package builtin

import "github.com/axlechain/axle/vm"

// echoProgram stores arg 0 into the cell keyed by arg 1 and returns arg 0.
// It exists to exercise the full read/write/return path and as a smoke
// backend for deployments.
func echoProgram() []byte {
	a := vm.NewAssembler()

	a.Push(0).Op(vm.ARG)          // [v]
	a.Op(vm.DUP1)                 // [v, v]
	a.Push(1).Op(vm.ARG)          // [v, v, k]
	a.Op(vm.STORECELL)            // [v]
	a.Push(1).Op(vm.RETURN)       // data = v
	a.Op(vm.STOP)

	return a.MustAssemble()
}
