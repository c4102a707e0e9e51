// Copyright (c) 2026 The Axle developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package block

import (
	"github.com/axlechain/axle/axle"
	"github.com/axlechain/axle/tx"
)

// Builder to make it easy to build a block object.
type Builder struct {
	header headerContent
	txs    tx.Transactions
}

// ParentHash set parent hash.
func (b *Builder) ParentHash(hash axle.Bytes32) *Builder {
	b.header.ParentHash = hash
	return b
}

// Number set block number.
func (b *Builder) Number(number uint64) *Builder {
	b.header.Number = number
	return b
}

// Timestamp set timestamp.
func (b *Builder) Timestamp(ts uint64) *Builder {
	b.header.Timestamp = ts
	return b
}

// ProducerID set the block producer account id.
func (b *Builder) ProducerID(id uint32) *Builder {
	b.header.ProducerID = id
	return b
}

// StateRoot set the claimed post-state root.
func (b *Builder) StateRoot(hash axle.Bytes32) *Builder {
	b.header.StateRoot = hash
	return b
}

// Transaction add a transaction.
func (b *Builder) Transaction(tx *tx.Transaction) *Builder {
	b.txs = append(b.txs, tx)
	return b
}

// Build build a block object.
func (b *Builder) Build() *Block {
	header := b.header
	header.TxsRoot = b.txs.RootHash()

	return &Block{
		&Header{content: header},
		b.txs.Copy(),
	}
}
