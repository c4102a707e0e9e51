// Copyright (c) 2026 The Axle developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tx

import (
	"io"

	"github.com/axlechain/axle/axle"
)

// Transactions a slice of transactions.
type Transactions []*Transaction

// Copy makes a shallow copy.
func (txs Transactions) Copy() Transactions {
	return append(Transactions(nil), txs...)
}

// RootHash computes the commitment over the ordered tx hashes.
func (txs Transactions) RootHash() axle.Bytes32 {
	if len(txs) == 0 {
		return axle.Bytes32{}
	}
	return axle.Blake2bFn(func(w io.Writer) {
		for _, t := range txs {
			h := t.Hash()
			w.Write(h[:])
		}
	})
}
