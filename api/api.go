// Copyright (c) 2026 The Axle developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package api exposes the node over HTTP.
package api

import (
	"net/http"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/axlechain/axle/node"
	"github.com/axlechain/axle/state"
)

// New returns the http handler of the API.
func New(n *node.Node, stater *state.Stater) http.HandlerFunc {
	router := mux.NewRouter()

	newAccounts(n, stater).mount(router.PathPrefix("/accounts").Subrouter())
	newBlocks(n).mount(router.PathPrefix("/blocks").Subrouter())
	newTransactions(n).mount(router.PathPrefix("/transactions").Subrouter())
	newLogs(n).mount(router.PathPrefix("/logs").Subrouter())
	newStatus(n, stater).mount(router.PathPrefix("/status").Subrouter())

	router.Use(instrument)

	handler := handlers.CompressHandler(router)
	handler = handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedHeaders([]string{"content-type"}),
	)(handler)
	return handler.ServeHTTP
}
