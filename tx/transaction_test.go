// Copyright (c) 2026 The Axle developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tx_test

import (
	"testing"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/stretchr/testify/assert"

	"github.com/axlechain/axle/tx"
)

func TestTransaction(t *testing.T) {
	transaction := tx.New(1, 2, 3, []byte{4, 5})

	assert.Equal(t, uint32(1), transaction.FromID())
	assert.Equal(t, uint32(2), transaction.ToID())
	assert.Equal(t, uint32(3), transaction.Nonce())
	assert.Equal(t, []byte{4, 5}, transaction.Args())

	// hash is stable and content-sensitive
	assert.Equal(t, transaction.Hash(), transaction.Hash())
	assert.NotEqual(t, transaction.Hash(), tx.New(1, 2, 4, []byte{4, 5}).Hash())
}

func TestTransactionRLP(t *testing.T) {
	transaction := tx.New(1, 2, 3, []byte{4, 5})

	data, err := rlp.EncodeToBytes(transaction)
	assert.Nil(t, err)

	var decoded tx.Transaction
	assert.Nil(t, rlp.DecodeBytes(data, &decoded))
	assert.Equal(t, transaction.Hash(), decoded.Hash())
	assert.Equal(t, transaction.Args(), decoded.Args())
}

func TestTransactionsRootHash(t *testing.T) {
	assert.True(t, tx.Transactions{}.RootHash().IsZero())

	txs := tx.Transactions{
		tx.New(1, 2, 0, nil),
		tx.New(1, 2, 1, nil),
	}
	assert.Equal(t, txs.RootHash(), txs.RootHash())

	reordered := tx.Transactions{txs[1], txs[0]}
	assert.NotEqual(t, txs.RootHash(), reordered.RootHash())
}
