// Copyright (c) 2026 The Axle developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package node ties chain, state and runtime together: it settles received
// blocks, produces new ones and serves read-only calls.
package node

import (
	"fmt"
	"sync"
	"time"

	"github.com/axlechain/axle/axle"
	"github.com/axlechain/axle/backend"
	"github.com/axlechain/axle/block"
	"github.com/axlechain/axle/chain"
	"github.com/axlechain/axle/log"
	"github.com/axlechain/axle/logdb"
	"github.com/axlechain/axle/metrics"
	"github.com/axlechain/axle/runtime"
	"github.com/axlechain/axle/state"
	"github.com/axlechain/axle/tx"
	"github.com/axlechain/axle/vm"
)

var logger = log.WithContext("pkg", "node")

var (
	metricBlockProcessed = metrics.LazyLoadCounterVec("block_processed_count", []string{"status"})
	metricBlockApplyMs   = metrics.LazyLoadHistogram("block_apply_duration_ms", metrics.BucketFast)
)

// StateRootMismatchError rejects a block whose claimed post-state root does
// not match the locally computed one. It is the block-level dispute signal.
type StateRootMismatchError struct {
	BlockHash axle.Bytes32
	Claimed   axle.Bytes32
	Computed  axle.Bytes32
}

func (e *StateRootMismatchError) Error() string {
	return fmt.Sprintf("state root mismatch: claimed %v, computed %v", e.Claimed.AbbrevString(), e.Computed.AbbrevString())
}

// Node settles blocks against the local state.
type Node struct {
	chain    *chain.Chain
	stater   *state.Stater
	registry *backend.Registry
	logDB    *logdb.LogDB // optional mirror
	vmCfg    vm.Config

	lock sync.Mutex
}

// New creates a node. logDB may be nil to run without the query mirror.
func New(c *chain.Chain, stater *state.Stater, registry *backend.Registry, logDB *logdb.LogDB) *Node {
	return &Node{
		chain:    c,
		stater:   stater,
		registry: registry,
		logDB:    logDB,
	}
}

// Chain returns the underlying chain.
func (n *Node) Chain() *chain.Chain { return n.chain }

// LogDB returns the query mirror, or nil.
func (n *Node) LogDB() *logdb.LogDB { return n.logDB }

// ProcessBlock settles a received block: it applies the block's effects,
// verifies the claimed state root, and commits state and block atomically
// with respect to other Process/Produce calls. Nothing is committed when
// any step fails.
func (n *Node) ProcessBlock(
	blk *block.Block,
	withdrawals []*tx.WithdrawalRequest,
	deposits []*tx.DepositionRequest,
) ([]*runtime.RunResult, error) {
	n.lock.Lock()
	defer n.lock.Unlock()
	startTime := time.Now()

	header := blk.Header()
	best := n.chain.BestBlock().Header()
	if header.ParentHash() != best.Hash() || header.Number() != best.Number()+1 {
		return nil, chain.ErrInvalidParent
	}

	st := n.stater.NewState()
	rt := runtime.New(st, n.registry, n.vmCfg)
	blockCtx := &runtime.BlockContext{
		Hash:       header.Hash(),
		Number:     header.Number(),
		Timestamp:  header.Timestamp(),
		ProducerID: header.ProducerID(),
	}

	results, err := rt.ApplyStateTransition(blockCtx, withdrawals, deposits, blk.Transactions())
	if err != nil {
		metricBlockProcessed().AddWithLabel(1, map[string]string{"status": "rejected"})
		return nil, err
	}

	stage, err := st.Stage()
	if err != nil {
		return nil, err
	}
	if root := stage.Root(); root != header.StateRoot() {
		metricBlockProcessed().AddWithLabel(1, map[string]string{"status": "mismatch"})
		return nil, &StateRootMismatchError{
			BlockHash: header.Hash(),
			Claimed:   header.StateRoot(),
			Computed:  root,
		}
	}
	if _, err := stage.Commit(); err != nil {
		return nil, err
	}
	if err := n.chain.AddBlock(blk); err != nil {
		return nil, err
	}
	n.mirror(blk, results)

	metricBlockProcessed().AddWithLabel(1, map[string]string{"status": "settled"})
	metricBlockApplyMs().Observe(time.Since(startTime).Milliseconds())
	logger.Info("block settled", "block", header)
	return results, nil
}

// ProduceBlock applies the given effects on top of the best block and
// settles the resulting block locally.
//
// The caller is expected to hand in transactions that apply cleanly; a
// failing transaction fails production with the transition's error.
func (n *Node) ProduceBlock(
	producerID uint32,
	timestamp uint64,
	withdrawals []*tx.WithdrawalRequest,
	deposits []*tx.DepositionRequest,
	txs tx.Transactions,
) (*block.Block, []*runtime.RunResult, error) {
	n.lock.Lock()
	defer n.lock.Unlock()

	best := n.chain.BestBlock().Header()

	st := n.stater.NewState()
	rt := runtime.New(st, n.registry, n.vmCfg)
	blockCtx := &runtime.BlockContext{
		Number:     best.Number() + 1,
		Timestamp:  timestamp,
		ProducerID: producerID,
	}

	results, err := rt.ApplyStateTransition(blockCtx, withdrawals, deposits, txs)
	if err != nil {
		return nil, nil, err
	}

	stage, err := st.Stage()
	if err != nil {
		return nil, nil, err
	}
	root, err := stage.Commit()
	if err != nil {
		return nil, nil, err
	}

	builder := new(block.Builder).
		ParentHash(best.Hash()).
		Number(best.Number() + 1).
		Timestamp(timestamp).
		ProducerID(producerID).
		StateRoot(root)
	for _, transaction := range txs {
		builder.Transaction(transaction)
	}
	blk := builder.Build()

	if err := n.chain.AddBlock(blk); err != nil {
		return nil, nil, err
	}
	n.mirror(blk, results)

	logger.Info("block produced", "block", blk.Header())
	return blk, results, nil
}

// DryRun executes a transaction against the current best state without
// checking its nonce and without keeping any effect.
func (n *Node) DryRun(transaction *tx.Transaction) (*runtime.RunResult, error) {
	best := n.chain.BestBlock().Header()

	st := n.stater.NewState()
	rt := runtime.New(st, n.registry, n.vmCfg)
	blockCtx := &runtime.BlockContext{
		Number:     best.Number() + 1,
		Timestamp:  best.Timestamp(),
		ProducerID: best.ProducerID(),
	}
	return rt.Execute(blockCtx, transaction)
}

// mirror writes the settled block into the query mirror. The mirror is
// derived data; failures are logged, not propagated.
func (n *Node) mirror(blk *block.Block, results []*runtime.RunResult) {
	if n.logDB == nil {
		return
	}
	w, err := n.logDB.NewWriter()
	if err != nil {
		logger.Warn("mirror writer failed", "err", err)
		return
	}
	if err := w.Write(blk, results); err != nil {
		w.Rollback()
		logger.Warn("mirror write failed", "err", err)
		return
	}
	if err := w.Commit(); err != nil {
		logger.Warn("mirror commit failed", "err", err)
	}
}
