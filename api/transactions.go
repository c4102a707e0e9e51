// Copyright (c) 2026 The Axle developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package api

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/axlechain/axle/axle"
	"github.com/axlechain/axle/logdb"
	"github.com/axlechain/axle/node"
	"github.com/axlechain/axle/runtime"
	"github.com/axlechain/axle/tx"
)

type transactions struct {
	node *node.Node
}

func newTransactions(n *node.Node) *transactions {
	return &transactions{node: n}
}

func (t *transactions) mount(router *mux.Router) {
	router.Path("/call").Methods(http.MethodPost).Handler(wrap(t.handleCall))
	router.Path("").Methods(http.MethodGet).Handler(wrap(t.handleList))
	router.Path("/{hash}").Methods(http.MethodGet).Handler(wrap(t.handleGetTransaction))
}

func (t *transactions) handleGetTransaction(w http.ResponseWriter, req *http.Request) error {
	db := t.node.LogDB()
	if db == nil {
		return notFound(errors.New("transaction index disabled"))
	}
	hash, err := axle.ParseBytes32(mux.Vars(req)["hash"])
	if err != nil {
		return badRequest(errors.WithMessage(err, "hash"))
	}
	rec, err := db.QueryTransaction(hash)
	if err != nil {
		return err
	}
	if rec == nil {
		return notFound(errors.New("no such transaction"))
	}
	return writeJSON(w, rec)
}

func (t *transactions) handleList(w http.ResponseWriter, req *http.Request) error {
	db := t.node.LogDB()
	if db == nil {
		return notFound(errors.New("transaction index disabled"))
	}
	accountID, err := parseUint32(req.URL.Query().Get("account"))
	if err != nil {
		return badRequest(errors.WithMessage(err, "account"))
	}
	var limit uint64
	if v := req.URL.Query().Get("limit"); v != "" {
		l, err := parseUint32(v)
		if err != nil {
			return badRequest(errors.WithMessage(err, "limit"))
		}
		limit = uint64(l)
	}
	records, err := db.QueryTransactionsByAccount(&logdb.TxFilter{AccountID: accountID, Limit: limit})
	if err != nil {
		return err
	}
	return writeJSON(w, records)
}

type callRequest struct {
	FromID uint32   `json:"fromId"`
	ToID   uint32   `json:"toId"`
	Args   hexBytes `json:"args"`
}

type jsonLogEntry struct {
	AccountID uint32   `json:"accountId"`
	Data      hexBytes `json:"data"`
}

type callResult struct {
	ExitCode   uint8          `json:"exitCode"`
	Cycles     uint64         `json:"cycles"`
	ReturnData hexBytes       `json:"returnData,omitempty"`
	Logs       []jsonLogEntry `json:"logs,omitempty"`
}

// handleCall dry-runs a transaction against the best state. Nonce is not
// checked and no effect is kept. A run that exits non-zero is still a
// successful call; its exit code is part of the result.
func (t *transactions) handleCall(w http.ResponseWriter, req *http.Request) error {
	var call callRequest
	if err := json.NewDecoder(req.Body).Decode(&call); err != nil {
		return badRequest(errors.WithMessage(err, "body"))
	}

	result, err := t.node.DryRun(tx.New(call.FromID, call.ToID, 0, call.Args))
	if err != nil {
		var exitErr *runtime.ExitCodeError
		if errors.As(err, &exitErr) {
			result = exitErr.RunResult
			result.ExitCode = exitErr.ExitCode
		} else {
			return badRequest(err)
		}
	}

	out := callResult{
		ExitCode:   result.ExitCode,
		Cycles:     result.Cycles,
		ReturnData: result.ReturnData,
	}
	for _, entry := range result.Logs {
		out.Logs = append(out.Logs, jsonLogEntry{AccountID: entry.AccountID, Data: entry.Data})
	}
	return writeJSON(w, &out)
}
