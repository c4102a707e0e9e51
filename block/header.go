// Copyright (c) 2026 The Axle developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package block

import (
	"fmt"
	"io"
	"sync/atomic"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/axlechain/axle/axle"
)

// Header contains block metadata.
type Header struct {
	content headerContent

	cache struct {
		hash atomic.Value
	}
}

// headerContent content of header.
type headerContent struct {
	ParentHash axle.Bytes32
	Number     uint64
	Timestamp  uint64
	ProducerID uint32

	TxsRoot   axle.Bytes32
	StateRoot axle.Bytes32
}

// ParentHash returns hash of parent block.
func (h *Header) ParentHash() axle.Bytes32 {
	return h.content.ParentHash
}

// Number returns the block number.
func (h *Header) Number() uint64 {
	return h.content.Number
}

// Timestamp returns the block timestamp.
func (h *Header) Timestamp() uint64 {
	return h.content.Timestamp
}

// ProducerID returns the account id of the block producer.
func (h *Header) ProducerID() uint32 {
	return h.content.ProducerID
}

// TxsRoot returns the commitment over the block's transactions.
func (h *Header) TxsRoot() axle.Bytes32 {
	return h.content.TxsRoot
}

// StateRoot returns the state root claimed after applying this block.
func (h *Header) StateRoot() axle.Bytes32 {
	return h.content.StateRoot
}

// Hash computes the content hash of the header, which identifies the block.
func (h *Header) Hash() (hash axle.Bytes32) {
	if cached := h.cache.hash.Load(); cached != nil {
		return cached.(axle.Bytes32)
	}
	defer func() { h.cache.hash.Store(hash) }()

	hash = axle.Blake2bFn(func(w io.Writer) {
		rlp.Encode(w, &h.content)
	})
	return
}

// EncodeRLP implements rlp.Encoder.
func (h *Header) EncodeRLP(w io.Writer) error {
	return rlp.Encode(w, &h.content)
}

// DecodeRLP implements rlp.Decoder.
func (h *Header) DecodeRLP(s *rlp.Stream) error {
	var content headerContent
	if err := s.Decode(&content); err != nil {
		return err
	}
	*h = Header{content: content}
	return nil
}

// String implements stringer.
func (h *Header) String() string {
	return fmt.Sprintf("block #%d (%v) producer %d", h.content.Number, h.Hash(), h.content.ProducerID)
}
