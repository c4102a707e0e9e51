// Copyright (c) 2026 The Axle developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package runtime

import (
	"github.com/axlechain/axle/axle"
	"github.com/axlechain/axle/tx"
)

// State is the mutable account state a transition runs against. It is the
// journaled cell store plus the account registry derived from it.
type State interface {
	GetValue(rawKey axle.Bytes32) (axle.Bytes32, error)
	UpdateValue(rawKey, value axle.Bytes32)

	GetNonce(accountID uint32) (uint32, error)
	GetScriptHash(accountID uint32) (axle.Bytes32, error)
	GetScript(hash axle.Bytes32) (*axle.Script, error)
	GetCode(hash axle.Bytes32) ([]byte, error)

	ApplyDepositionRequests(reqs []*tx.DepositionRequest) error
	ApplyWithdrawalRequests(reqs []*tx.WithdrawalRequest) error

	NewCheckpoint() int
	RevertTo(revision int)
}
