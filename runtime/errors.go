// Copyright (c) 2026 The Axle developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package runtime

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/axlechain/axle/axle"
)

var (
	// ErrNonceOverflow is fatal: the sender's nonce space is exhausted and
	// no transition containing the transaction can ever be valid.
	ErrNonceOverflow = errors.New("account nonce overflow")

	// ErrForbiddenWrite aborts a run that attempts to write a reserved
	// field key of its namespace.
	ErrForbiddenWrite = errors.New("write to reserved field key")

	// ErrUnknownAccountID aborts a run querying an account that does not
	// exist.
	ErrUnknownAccountID = errors.New("unknown account id")
)

// ChallengeContext pins a disputed transaction for the host chain: the
// containing block and the index of the transaction within it.
type ChallengeContext struct {
	BlockHash   axle.Bytes32 `json:"blockHash"`
	BlockNumber uint64       `json:"blockNumber"`
	TxIndex     uint32       `json:"txIndex"`
}

func (c *ChallengeContext) String() string {
	return fmt.Sprintf("challenge block #%d %v tx %d", c.BlockNumber, c.BlockHash.AbbrevString(), c.TxIndex)
}

// NonceError rejects a transaction whose nonce does not match the sender's
// account nonce.
type NonceError struct {
	AccountID uint32
	Expected  uint32
	Actual    uint32
}

func (e *NonceError) Error() string {
	return fmt.Sprintf("bad nonce for account %d: expected %d, got %d", e.AccountID, e.Expected, e.Actual)
}

// BackendError rejects a transaction whose receiver has no executable
// backend.
type BackendError struct {
	AccountID uint32
	CodeHash  axle.Bytes32
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("no backend for account %d (code hash %v)", e.AccountID, e.CodeHash.AbbrevString())
}

// ExitCodeError carries a completed run that exited non-zero. The run
// result is kept for inspection; its writes are never applied.
type ExitCodeError struct {
	ExitCode  uint8
	RunResult *RunResult
}

func (e *ExitCodeError) Error() string {
	return fmt.Sprintf("program exited with code %d", e.ExitCode)
}

// VMError wraps a sandbox trap or an aborted syscall.
type VMError struct {
	Cause error
}

func (e *VMError) Error() string {
	return "vm aborted: " + e.Cause.Error()
}

// Unwrap returns the cause.
func (e *VMError) Unwrap() error { return e.Cause }

// TransactionError is a per-transaction failure attributed to its position
// in the block, ready to open a dispute on the host chain.
type TransactionError struct {
	Cause   error
	Context ChallengeContext
}

func (e *TransactionError) Error() string {
	return fmt.Sprintf("%v (%v)", e.Cause, &e.Context)
}

// Unwrap returns the cause.
func (e *TransactionError) Unwrap() error { return e.Cause }
