// Copyright (c) 2026 The Axle developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/axlechain/axle/axle"
	"github.com/axlechain/axle/node"
	"github.com/axlechain/axle/state"
)

type status struct {
	node   *node.Node
	stater *state.Stater
}

func newStatus(n *node.Node, stater *state.Stater) *status {
	return &status{node: n, stater: stater}
}

func (s *status) mount(router *mux.Router) {
	router.Path("").Methods(http.MethodGet).Handler(wrap(s.handleGetStatus))
}

type jsonStatus struct {
	BestBlock    uint64       `json:"bestBlock"`
	BestHash     axle.Bytes32 `json:"bestHash"`
	GenesisHash  axle.Bytes32 `json:"genesisHash"`
	AccountCount uint32       `json:"accountCount"`
}

func (s *status) handleGetStatus(w http.ResponseWriter, _ *http.Request) error {
	c := s.node.Chain()
	best := c.BestBlock().Header()
	genesisBlock, err := c.GetBlockByNumber(0)
	if err != nil {
		return err
	}
	count, err := s.stater.NewState().GetAccountCount()
	if err != nil {
		return err
	}
	return writeJSON(w, &jsonStatus{
		BestBlock:    best.Number(),
		BestHash:     best.Hash(),
		GenesisHash:  genesisBlock.Header().Hash(),
		AccountCount: count,
	})
}
