// Copyright (c) 2026 The Axle developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package runtime drives the deterministic state transition: withdrawals,
// then deposits, then transactions, each transaction executed in a
// sandboxed machine whose effects are journaled into a run result before
// being applied to state.
package runtime

import (
	"math"

	"github.com/pkg/errors"

	"github.com/axlechain/axle/axle"
	"github.com/axlechain/axle/backend"
	"github.com/axlechain/axle/log"
	"github.com/axlechain/axle/metrics"
	"github.com/axlechain/axle/tx"
	"github.com/axlechain/axle/vm"
)

var logger = log.WithContext("pkg", "runtime")

var (
	metricTxProcessed = metrics.LazyLoadCounterVec("tx_processed_count", []string{"status"})
	metricRunCycles   = metrics.LazyLoadHistogram("run_cycles", []int64{
		64, 256, 1024, 4096, 16384, 65536,
	})
)

// BlockContext is the block environment a transition runs under. Hash is
// zero while producing a block whose hash is not settled yet; challenge
// contexts are only meaningful when applying a received block.
type BlockContext struct {
	Hash       axle.Bytes32
	Number     uint64
	Timestamp  uint64
	ProducerID uint32
}

// Runtime executes transitions against a state. It is not safe for
// concurrent use; a Runtime is made per block or per call.
type Runtime struct {
	state    State
	registry *backend.Registry
	vmCfg    vm.Config
}

// New creates a runtime over the state with the given backend registry.
func New(state State, registry *backend.Registry, vmCfg vm.Config) *Runtime {
	return &Runtime{
		state:    state,
		registry: registry,
		vmCfg:    vmCfg,
	}
}

// State returns the state the runtime mutates.
func (rt *Runtime) State() State { return rt.state }

// ApplyStateTransition applies a block's effects in canonical order:
// withdrawals, deposits, then transactions. It returns one run result per
// transaction.
//
// A failing withdrawal or deposit fails the whole transition. A failing
// transaction reverts the writes of every transaction in the block, leaves
// the withdrawals and deposits applied, and surfaces a TransactionError
// carrying the challenge context, except for nonce overflow which is fatal
// as no valid transition containing the transaction exists.
func (rt *Runtime) ApplyStateTransition(
	blockCtx *BlockContext,
	withdrawals []*tx.WithdrawalRequest,
	deposits []*tx.DepositionRequest,
	txs tx.Transactions,
) ([]*RunResult, error) {
	if err := rt.state.ApplyWithdrawalRequests(withdrawals); err != nil {
		return nil, errors.Wrap(err, "apply withdrawals")
	}
	if err := rt.state.ApplyDepositionRequests(deposits); err != nil {
		return nil, errors.Wrap(err, "apply deposits")
	}

	results := make([]*RunResult, 0, len(txs))
	checkpoint := rt.state.NewCheckpoint()
	for i, transaction := range txs {
		result, err := rt.applyTransaction(blockCtx, transaction)
		if err != nil {
			rt.state.RevertTo(checkpoint)
			if errors.Is(err, ErrNonceOverflow) {
				return nil, err
			}
			metricTxProcessed().AddWithLabel(1, map[string]string{"status": "rejected"})
			logger.Debug("transaction rejected", "tx", transaction.Hash(), "err", err)
			return nil, &TransactionError{
				Cause: err,
				Context: ChallengeContext{
					BlockHash:   blockCtx.Hash,
					BlockNumber: blockCtx.Number,
					TxIndex:     uint32(i),
				},
			}
		}
		metricTxProcessed().AddWithLabel(1, map[string]string{"status": "applied"})
		results = append(results, result)
	}
	return results, nil
}

// applyTransaction checks the nonce, executes the transaction and applies
// its run result.
func (rt *Runtime) applyTransaction(blockCtx *BlockContext, transaction *tx.Transaction) (*RunResult, error) {
	expected, err := rt.state.GetNonce(transaction.FromID())
	if err != nil {
		return nil, err
	}
	if transaction.Nonce() != expected {
		return nil, &NonceError{
			AccountID: transaction.FromID(),
			Expected:  expected,
			Actual:    transaction.Nonce(),
		}
	}
	if expected == math.MaxUint32 {
		return nil, ErrNonceOverflow
	}

	result, err := rt.Execute(blockCtx, transaction)
	if err != nil {
		return nil, err
	}
	rt.applyRunResult(result)
	return result, nil
}

// applyRunResult commits the journaled writes to state in key order.
func (rt *Runtime) applyRunResult(result *RunResult) {
	for _, key := range result.WriteKeys() {
		rt.state.UpdateValue(key, result.WriteValues[key])
	}
}

// Execute runs the transaction against the receiver's backend without
// applying the result. The sender's nonce read and bump are folded into the
// run result so the result alone replays the transaction; state stays
// untouched. It is the execution half shared by the transition and by
// read-only calls.
func (rt *Runtime) Execute(blockCtx *BlockContext, transaction *tx.Transaction) (*RunResult, error) {
	be, err := rt.loadBackend(transaction.ToID())
	if err != nil {
		return nil, err
	}
	nonce, err := rt.state.GetNonce(transaction.FromID())
	if err != nil {
		return nil, err
	}

	result := NewRunResult()
	machine := vm.New(be.Program(), newBridge(rt.state, rt.registry, blockCtx, transaction, result), rt.vmCfg)

	exitCode, err := machine.Run()
	result.Cycles = machine.CyclesUsed()
	metricRunCycles().Observe(int64(result.Cycles))
	if err != nil {
		return nil, &VMError{Cause: err}
	}

	nonceKey := axle.AccountCellKey(transaction.FromID(), axle.NonceFieldKey)
	if _, ok := result.ReadValues[nonceKey]; !ok {
		result.ReadValues[nonceKey] = axle.Bytes32FromUint32(nonce)
	}
	result.WriteValues[nonceKey] = axle.Bytes32FromUint32(nonce + 1)

	result.ExitCode = exitCode
	if exitCode != 0 {
		return nil, &ExitCodeError{ExitCode: exitCode, RunResult: result}
	}
	return result, nil
}

// loadBackend resolves the executable program of an account. Only scripts
// addressing their backend by code hash are executable.
func (rt *Runtime) loadBackend(accountID uint32) (*backend.Backend, error) {
	scriptHash, err := rt.state.GetScriptHash(accountID)
	if err != nil {
		return nil, err
	}
	if scriptHash.IsZero() {
		return nil, ErrUnknownAccountID
	}
	script, err := rt.state.GetScript(scriptHash)
	if err != nil {
		return nil, err
	}
	if script == nil {
		return nil, errors.Errorf("missing script body for hash %v", scriptHash.AbbrevString())
	}
	if script.HashType != axle.HashTypeData {
		return nil, &BackendError{AccountID: accountID, CodeHash: script.CodeHash}
	}
	if be, ok := rt.registry.Get(script.CodeHash); ok {
		return be, nil
	}
	code, err := rt.state.GetCode(script.CodeHash)
	if err != nil {
		return nil, err
	}
	if len(code) == 0 {
		return nil, &BackendError{AccountID: accountID, CodeHash: script.CodeHash}
	}
	return backend.New(code), nil
}
