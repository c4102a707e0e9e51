// Copyright (c) 2026 The Axle developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package runtime

import (
	"github.com/axlechain/axle/axle"
	"github.com/axlechain/axle/backend"
	"github.com/axlechain/axle/tx"
)

// bridge binds one sandboxed run to state and block context, journaling
// every read and write into the run result. It also confines the run: raw
// keys are derived here from the executing account's id, so a program can
// never address another account's cells for writing.
type bridge struct {
	state    State
	registry *backend.Registry
	blockCtx *BlockContext
	tx       *tx.Transaction
	result   *RunResult
}

func newBridge(state State, registry *backend.Registry, blockCtx *BlockContext, transaction *tx.Transaction, result *RunResult) *bridge {
	return &bridge{
		state:    state,
		registry: registry,
		blockCtx: blockCtx,
		tx:       transaction,
		result:   result,
	}
}

func (b *bridge) ArgsLen() uint64 {
	return uint64(len(b.tx.Args()))
}

func (b *bridge) ArgWord(i uint64) (word axle.Bytes32) {
	args := b.tx.Args()
	start := i * 32
	if start >= uint64(len(args)) {
		return
	}
	copy(word[:], args[start:])
	return
}

func (b *bridge) SenderID() uint32   { return b.tx.FromID() }
func (b *bridge) ReceiverID() uint32 { return b.tx.ToID() }

func (b *bridge) BlockNumber() uint64    { return b.blockCtx.Number }
func (b *bridge) BlockTimestamp() uint64 { return b.blockCtx.Timestamp }
func (b *bridge) BlockProducerID() uint32 {
	return b.blockCtx.ProducerID
}

// rawLoad reads a raw cell through the run journal: pending writes win over
// earlier reads, and a first read from state is recorded so the result
// captures the complete pre-state the run depended on.
func (b *bridge) rawLoad(rawKey axle.Bytes32) (axle.Bytes32, error) {
	if v, ok := b.result.WriteValues[rawKey]; ok {
		return v, nil
	}
	if v, ok := b.result.ReadValues[rawKey]; ok {
		return v, nil
	}
	v, err := b.state.GetValue(rawKey)
	if err != nil {
		return axle.Bytes32{}, err
	}
	b.result.ReadValues[rawKey] = v
	return v, nil
}

func (b *bridge) LoadCell(fieldKey axle.Bytes32) (axle.Bytes32, error) {
	return b.rawLoad(axle.AccountCellKey(b.tx.ToID(), fieldKey))
}

func (b *bridge) StoreCell(fieldKey, value axle.Bytes32) error {
	if axle.IsReservedFieldKey(fieldKey) {
		return ErrForbiddenWrite
	}
	rawKey := axle.AccountCellKey(b.tx.ToID(), fieldKey)
	// record the overwritten pre-value so the result alone suffices to
	// check the run
	if _, ok := b.result.WriteValues[rawKey]; !ok {
		if _, ok := b.result.ReadValues[rawKey]; !ok {
			pre, err := b.state.GetValue(rawKey)
			if err != nil {
				return err
			}
			b.result.ReadValues[rawKey] = pre
		}
	}
	b.result.WriteValues[rawKey] = value
	return nil
}

func (b *bridge) AccountScriptHash(id uint32) (axle.Bytes32, error) {
	hash, err := b.rawLoad(axle.AccountCellKey(id, axle.ScriptHashFieldKey))
	if err != nil {
		return axle.Bytes32{}, err
	}
	if hash.IsZero() {
		return axle.Bytes32{}, ErrUnknownAccountID
	}
	return hash, nil
}

func (b *bridge) AccountCodeHash(id uint32) (axle.Bytes32, error) {
	scriptHash, err := b.AccountScriptHash(id)
	if err != nil {
		return axle.Bytes32{}, err
	}
	script, err := b.state.GetScript(scriptHash)
	if err != nil {
		return axle.Bytes32{}, err
	}
	if script == nil {
		return axle.Bytes32{}, ErrUnknownAccountID
	}
	return script.CodeHash, nil
}

func (b *bridge) CodeSize(dataHash axle.Bytes32) (uint64, error) {
	if be, ok := b.registry.Get(dataHash); ok {
		return uint64(be.Size()), nil
	}
	code, err := b.state.GetCode(dataHash)
	if err != nil {
		return 0, err
	}
	return uint64(len(code)), nil
}

func (b *bridge) EmitLog(data []byte) error {
	b.result.Logs = append(b.result.Logs, &LogEntry{
		AccountID: b.tx.ToID(),
		Data:      append([]byte(nil), data...),
	})
	return nil
}

func (b *bridge) SetReturnData(data []byte) error {
	b.result.ReturnData = append([]byte(nil), data...)
	return nil
}
