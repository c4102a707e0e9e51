// Copyright (c) 2026 The Axle developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package api

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/axlechain/axle/axle"
	"github.com/axlechain/axle/block"
	"github.com/axlechain/axle/node"
)

type blocks struct {
	node *node.Node
}

func newBlocks(n *node.Node) *blocks {
	return &blocks{node: n}
}

func (b *blocks) mount(router *mux.Router) {
	router.Path("/{revision}").Methods(http.MethodGet).Handler(wrap(b.handleGetBlock))
}

type jsonHeader struct {
	Hash       axle.Bytes32 `json:"hash"`
	ParentHash axle.Bytes32 `json:"parentHash"`
	Number     uint64       `json:"number"`
	Timestamp  uint64       `json:"timestamp"`
	ProducerID uint32       `json:"producerId"`
	TxsRoot    axle.Bytes32 `json:"txsRoot"`
	StateRoot  axle.Bytes32 `json:"stateRoot"`
}

type jsonBlock struct {
	jsonHeader
	Transactions []axle.Bytes32 `json:"transactions"`
}

// handleGetBlock serves a block by number, by hash, or the best block for
// the revision "best".
func (b *blocks) handleGetBlock(w http.ResponseWriter, req *http.Request) error {
	blk, err := b.parseRevision(mux.Vars(req)["revision"])
	if err != nil {
		return err
	}

	header := blk.Header()
	out := jsonBlock{
		jsonHeader: jsonHeader{
			Hash:       header.Hash(),
			ParentHash: header.ParentHash(),
			Number:     header.Number(),
			Timestamp:  header.Timestamp(),
			ProducerID: header.ProducerID(),
			TxsRoot:    header.TxsRoot(),
			StateRoot:  header.StateRoot(),
		},
	}
	for _, transaction := range blk.Transactions() {
		out.Transactions = append(out.Transactions, transaction.Hash())
	}
	return writeJSON(w, &out)
}

func (b *blocks) parseRevision(revision string) (*block.Block, error) {
	c := b.node.Chain()
	if revision == "best" {
		return c.BestBlock(), nil
	}
	if len(revision) == 64 || (len(revision) == 66 && revision[:2] == "0x") {
		hash, err := axle.ParseBytes32(revision)
		if err != nil {
			return nil, badRequest(errors.WithMessage(err, "revision"))
		}
		blk, err := c.GetBlock(hash)
		if c.IsNotFound(err) {
			return nil, notFound(errors.New("no such block"))
		}
		return blk, err
	}
	number, err := strconv.ParseUint(revision, 10, 64)
	if err != nil {
		return nil, badRequest(errors.WithMessage(err, "revision"))
	}
	blk, err := c.GetBlockByNumber(number)
	if c.IsNotFound(err) {
		return nil, notFound(errors.New("no such block"))
	}
	return blk, err
}
