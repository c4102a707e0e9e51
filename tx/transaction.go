// Copyright (c) 2026 The Axle developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tx

import (
	"fmt"
	"io"
	"sync/atomic"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/axlechain/axle/axle"
)

// Transaction is an immutable rollup transaction.
//
// The args bytes are opaque to the engine; only the backend program of the
// receiving account gives them meaning.
type Transaction struct {
	body body

	cache struct {
		hash atomic.Value
	}
}

// body describes details of a tx.
type body struct {
	FromID uint32
	ToID   uint32
	Nonce  uint32
	Args   []byte
}

// New creates a transaction.
func New(fromID, toID, nonce uint32, args []byte) *Transaction {
	return &Transaction{
		body: body{
			FromID: fromID,
			ToID:   toID,
			Nonce:  nonce,
			Args:   append([]byte(nil), args...),
		},
	}
}

// FromID returns the sender account id.
func (t *Transaction) FromID() uint32 { return t.body.FromID }

// ToID returns the receiver account id.
func (t *Transaction) ToID() uint32 { return t.body.ToID }

// Nonce returns the embedded sender nonce.
func (t *Transaction) Nonce() uint32 { return t.body.Nonce }

// Args returns a copy of the opaque argument bytes.
func (t *Transaction) Args() []byte {
	return append([]byte(nil), t.body.Args...)
}

// Hash returns the content hash of the tx. It identifies the tx in challenge
// contexts and logs.
func (t *Transaction) Hash() (hash axle.Bytes32) {
	if cached := t.cache.hash.Load(); cached != nil {
		return cached.(axle.Bytes32)
	}
	defer func() { t.cache.hash.Store(hash) }()

	hash = axle.Blake2bFn(func(w io.Writer) {
		rlp.Encode(w, &t.body)
	})
	return
}

// EncodeRLP implements rlp.Encoder.
func (t *Transaction) EncodeRLP(w io.Writer) error {
	return rlp.Encode(w, &t.body)
}

// DecodeRLP implements rlp.Decoder.
func (t *Transaction) DecodeRLP(s *rlp.Stream) error {
	var b body
	if err := s.Decode(&b); err != nil {
		return err
	}
	*t = Transaction{body: b}
	return nil
}

// String implements stringer.
func (t *Transaction) String() string {
	return fmt.Sprintf("tx(%v) %d -> %d nonce %d", t.Hash(), t.body.FromID, t.body.ToID, t.body.Nonce)
}
