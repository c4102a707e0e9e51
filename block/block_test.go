// Copyright (c) 2026 The Axle developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package block_test

import (
	"testing"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/stretchr/testify/assert"

	"github.com/axlechain/axle/axle"
	"github.com/axlechain/axle/block"
	"github.com/axlechain/axle/tx"
)

func TestBuilder(t *testing.T) {
	parent := axle.Blake2b([]byte("parent"))
	root := axle.Blake2b([]byte("root"))
	transaction := tx.New(1, 2, 0, nil)

	blk := new(block.Builder).
		ParentHash(parent).
		Number(7).
		Timestamp(1000).
		ProducerID(3).
		StateRoot(root).
		Transaction(transaction).
		Build()

	header := blk.Header()
	assert.Equal(t, parent, header.ParentHash())
	assert.Equal(t, uint64(7), header.Number())
	assert.Equal(t, uint64(1000), header.Timestamp())
	assert.Equal(t, uint32(3), header.ProducerID())
	assert.Equal(t, root, header.StateRoot())
	assert.Equal(t, blk.Transactions().RootHash(), header.TxsRoot())
	assert.Len(t, blk.Transactions(), 1)
}

func TestHeaderHash(t *testing.T) {
	b1 := new(block.Builder).Number(1).Build()
	b2 := new(block.Builder).Number(2).Build()

	assert.Equal(t, b1.Header().Hash(), b1.Header().Hash())
	assert.NotEqual(t, b1.Header().Hash(), b2.Header().Hash())
}

func TestBlockRLP(t *testing.T) {
	blk := new(block.Builder).
		Number(7).
		Timestamp(1000).
		Transaction(tx.New(1, 2, 0, []byte{9})).
		Build()

	data, err := rlp.EncodeToBytes(blk)
	assert.Nil(t, err)

	var decoded block.Block
	assert.Nil(t, rlp.DecodeBytes(data, &decoded))
	assert.Equal(t, blk.Header().Hash(), decoded.Header().Hash())
	assert.Len(t, decoded.Transactions(), 1)
	assert.Equal(t, blk.Transactions()[0].Hash(), decoded.Transactions()[0].Hash())
}
