// Copyright (c) 2026 The Axle developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tx

import (
	"github.com/holiman/uint256"

	"github.com/axlechain/axle/axle"
)

// DepositionRequest credits an account with an amount of a fungible token.
// It is derived by the caller from host chain deposit cells and consumed
// exactly once by a state transition; only its effect persists.
type DepositionRequest struct {
	// Script identifies, and on first sight creates, the receiving account.
	Script *axle.Script
	// TokenScript identifies the asset type.
	TokenScript *axle.Script
	Amount      *uint256.Int
}

// WithdrawalRequest debits an account's token balance towards the host
// chain. Withdrawals of a block apply before its deposits.
type WithdrawalRequest struct {
	// LockHash is the host chain cell to receive the withdrawal.
	LockHash        axle.Bytes32
	TokenScriptHash axle.Bytes32
	Amount          *uint256.Int
	// AccountScriptHash resolves the debited account.
	AccountScriptHash axle.Bytes32
}
