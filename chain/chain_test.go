// Copyright (c) 2026 The Axle developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package chain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/axlechain/axle/axle"
	"github.com/axlechain/axle/block"
	"github.com/axlechain/axle/chain"
	"github.com/axlechain/axle/lvldb"
	"github.com/axlechain/axle/tx"
)

func newGenesis() *block.Block {
	return new(block.Builder).Timestamp(1000).Build()
}

func extend(parent *block.Block) *block.Block {
	return new(block.Builder).
		ParentHash(parent.Header().Hash()).
		Number(parent.Header().Number() + 1).
		Timestamp(parent.Header().Timestamp() + 10).
		Transaction(tx.New(1, 2, 0, nil)).
		Build()
}

func TestChain(t *testing.T) {
	db, err := lvldb.NewMem()
	assert.Nil(t, err)
	defer db.Close()

	genesisBlock := newGenesis()
	c, err := chain.New(db, genesisBlock)
	assert.Nil(t, err)
	assert.Equal(t, genesisBlock.Header().Hash(), c.BestBlock().Header().Hash())

	b1 := extend(genesisBlock)
	assert.Nil(t, c.AddBlock(b1))
	assert.Equal(t, b1.Header().Hash(), c.BestBlock().Header().Hash())

	// queries
	got, err := c.GetBlock(b1.Header().Hash())
	assert.Nil(t, err)
	assert.Equal(t, b1.Header().Hash(), got.Header().Hash())
	assert.Len(t, got.Transactions(), 1)

	got, err = c.GetBlockByNumber(1)
	assert.Nil(t, err)
	assert.Equal(t, b1.Header().Hash(), got.Header().Hash())

	hash, err := c.GetBlockHash(0)
	assert.Nil(t, err)
	assert.Equal(t, genesisBlock.Header().Hash(), hash)

	_, err = c.GetBlock(axle.Blake2b([]byte("nope")))
	assert.True(t, c.IsNotFound(err))
	_, err = c.GetBlockByNumber(9)
	assert.True(t, c.IsNotFound(err))

	// a block not extending best is rejected
	assert.ErrorIs(t, c.AddBlock(extend(genesisBlock)), chain.ErrInvalidParent)
}

func TestChainReopen(t *testing.T) {
	db, err := lvldb.NewMem()
	assert.Nil(t, err)
	defer db.Close()

	genesisBlock := newGenesis()
	c, err := chain.New(db, genesisBlock)
	assert.Nil(t, err)
	b1 := extend(genesisBlock)
	assert.Nil(t, c.AddBlock(b1))

	reopened, err := chain.New(db, genesisBlock)
	assert.Nil(t, err)
	assert.Equal(t, b1.Header().Hash(), reopened.BestBlock().Header().Hash())

	// a different genesis does not open the store
	_, err = chain.New(db, new(block.Builder).Timestamp(2000).Build())
	assert.Error(t, err)
}
