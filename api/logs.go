// Copyright (c) 2026 The Axle developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package api

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/axlechain/axle/logdb"
	"github.com/axlechain/axle/node"
)

type logs struct {
	node *node.Node
}

func newLogs(n *node.Node) *logs {
	return &logs{node: n}
}

func (l *logs) mount(router *mux.Router) {
	router.Path("").Methods(http.MethodGet).Handler(wrap(l.handleQuery))
}

func (l *logs) handleQuery(w http.ResponseWriter, req *http.Request) error {
	db := l.node.LogDB()
	if db == nil {
		return notFound(errors.New("log index disabled"))
	}

	var filter logdb.LogFilter
	query := req.URL.Query()
	if v := query.Get("from"); v != "" {
		from, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return badRequest(errors.WithMessage(err, "from"))
		}
		filter.FromBlock = from
	}
	if v := query.Get("to"); v != "" {
		to, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return badRequest(errors.WithMessage(err, "to"))
		}
		filter.ToBlock = to
	}
	if v := query.Get("account"); v != "" {
		account, err := parseUint32(v)
		if err != nil {
			return badRequest(errors.WithMessage(err, "account"))
		}
		filter.AccountID = &account
	}
	if v := query.Get("limit"); v != "" {
		limit, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return badRequest(errors.WithMessage(err, "limit"))
		}
		filter.Limit = limit
	}

	records, err := db.QueryLogs(&filter)
	if err != nil {
		return err
	}
	out := make([]map[string]any, 0, len(records))
	for _, rec := range records {
		out = append(out, map[string]any{
			"blockNumber": rec.BlockNumber,
			"txIndex":     rec.TxIndex,
			"logIndex":    rec.LogIndex,
			"accountId":   rec.AccountID,
			"data":        hexBytes(rec.Data),
		})
	}
	return writeJSON(w, out)
}
