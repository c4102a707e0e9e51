// Copyright (c) 2026 The Axle developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package builtin

import "github.com/axlechain/axle/vm"

// Exit codes of the sudt program.
const (
	SudtExitOK           = 0
	SudtExitFailure      = 1
	sudtLogTransferWords = 3
)

// sudtProgram is the simple fungible token. The executing account is the
// token account; balance cells are keyed by holder id.
//
// One argument selects query mode: return the balance of the holder named
// by arg 0. Exactly two arguments select transfer mode: move arg 1 units
// from the sender to the holder named by arg 0, emitting a
// (sender, to, amount) transfer log. Any other argument length,
// insufficient balance and balance overflow exit with SudtExitFailure and
// no effect is kept.
func sudtProgram() []byte {
	a := vm.NewAssembler()

	// mode dispatch on the byte length of args (32 per word)
	a.Op(vm.ARGLEN).Push(32).Op(vm.EQ).JumpI("query")
	a.Op(vm.ARGLEN).Push(64).Op(vm.EQ).Op(vm.ISZERO).JumpI("fail")

	// transfer: [amount, to, sender]
	a.Push(1).Op(vm.ARG)
	a.Push(0).Op(vm.ARG)
	a.Op(vm.SENDER)

	// sender must cover the amount
	a.Op(vm.DUP1, vm.LOADCELL) // [amount, to, sender, bal]
	a.Op(vm.DUP4, vm.GT)       // amount > bal
	a.JumpI("fail")

	// debit sender
	a.Op(vm.DUP1, vm.LOADCELL)        // [amount, to, sender, bal]
	a.Op(vm.DUP4, vm.SWAP1, vm.SUB)   // [amount, to, sender, bal-amount]
	a.Op(vm.SENDER, vm.STORECELL)     // [amount, to, sender]

	// credit recipient, rejecting wrap-around
	a.Op(vm.DUP2, vm.LOADCELL)      // [amount, to, sender, bal]
	a.Op(vm.DUP4, vm.ADD)           // [amount, to, sender, sum]
	a.Op(vm.DUP3, vm.LOADCELL)      // [amount, to, sender, sum, bal]
	a.Op(vm.DUP2, vm.LT)            // sum < bal
	a.JumpI("fail")
	a.Op(vm.DUP3, vm.STORECELL) // [amount, to, sender]

	// transfer log: sender || to || amount
	a.Push(sudtLogTransferWords).Op(vm.LOG)
	a.Op(vm.STOP)

	// query: return the balance of arg 0
	a.Label("query")
	a.Push(0).Op(vm.ARG, vm.LOADCELL)
	a.Push(1).Op(vm.RETURN)
	a.Op(vm.STOP)

	a.Label("fail")
	a.Push(SudtExitFailure).Op(vm.EXIT)

	return a.MustAssemble()
}
