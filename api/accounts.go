// Copyright (c) 2026 The Axle developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/axlechain/axle/axle"
	"github.com/axlechain/axle/genesis"
	"github.com/axlechain/axle/node"
	"github.com/axlechain/axle/state"
)

type accounts struct {
	node   *node.Node
	stater *state.Stater
}

func newAccounts(n *node.Node, stater *state.Stater) *accounts {
	return &accounts{node: n, stater: stater}
}

func (a *accounts) mount(router *mux.Router) {
	router.Path("/count").Methods(http.MethodGet).Handler(wrap(a.handleGetCount))
	router.Path("/by-script-hash/{hash}").Methods(http.MethodGet).Handler(wrap(a.handleGetByScriptHash))
	router.Path("/{id}").Methods(http.MethodGet).Handler(wrap(a.handleGetAccount))
	router.Path("/{id}/balance").Methods(http.MethodGet).Handler(wrap(a.handleGetBalance))
	router.Path("/{id}/storage/{key}").Methods(http.MethodGet).Handler(wrap(a.handleGetStorage))
}

type jsonScript struct {
	CodeHash axle.Bytes32 `json:"codeHash"`
	HashType string       `json:"hashType"`
	Args     hexBytes     `json:"args,omitempty"`
}

type jsonAccount struct {
	ID         uint32       `json:"id"`
	Nonce      uint32       `json:"nonce"`
	ScriptHash axle.Bytes32 `json:"scriptHash"`
	Script     *jsonScript  `json:"script,omitempty"`
}

func (a *accounts) handleGetCount(w http.ResponseWriter, _ *http.Request) error {
	count, err := a.stater.NewState().GetAccountCount()
	if err != nil {
		return err
	}
	return writeJSON(w, map[string]uint32{"count": count})
}

func (a *accounts) handleGetAccount(w http.ResponseWriter, req *http.Request) error {
	id, err := parseUint32(mux.Vars(req)["id"])
	if err != nil {
		return badRequest(errors.WithMessage(err, "id"))
	}
	st := a.stater.NewState()

	scriptHash, err := st.GetScriptHash(id)
	if err != nil {
		return err
	}
	if scriptHash.IsZero() {
		return notFound(errors.New("no such account"))
	}
	nonce, err := st.GetNonce(id)
	if err != nil {
		return err
	}
	account := jsonAccount{ID: id, Nonce: nonce, ScriptHash: scriptHash}

	if script, err := st.GetScript(scriptHash); err != nil {
		return err
	} else if script != nil {
		account.Script = &jsonScript{
			CodeHash: script.CodeHash,
			HashType: script.HashType.String(),
			Args:     script.Args,
		}
	}
	return writeJSON(w, &account)
}

func (a *accounts) handleGetBalance(w http.ResponseWriter, req *http.Request) error {
	id, err := parseUint32(mux.Vars(req)["id"])
	if err != nil {
		return badRequest(errors.WithMessage(err, "id"))
	}
	tokenID := genesis.NativeTokenID
	if v := req.URL.Query().Get("token"); v != "" {
		if tokenID, err = parseUint32(v); err != nil {
			return badRequest(errors.WithMessage(err, "token"))
		}
	}
	balance, err := a.stater.NewState().GetBalance(tokenID, id)
	if err != nil {
		return err
	}
	return writeJSON(w, map[string]string{"balance": balance.Dec()})
}

// handleGetStorage reads the account cell at the given field key. Absent
// cells read as the zero value.
func (a *accounts) handleGetStorage(w http.ResponseWriter, req *http.Request) error {
	id, err := parseUint32(mux.Vars(req)["id"])
	if err != nil {
		return badRequest(errors.WithMessage(err, "id"))
	}
	key, err := axle.ParseBytes32(mux.Vars(req)["key"])
	if err != nil {
		return badRequest(errors.WithMessage(err, "key"))
	}
	value, err := a.stater.NewState().GetValue(axle.AccountCellKey(id, key))
	if err != nil {
		return err
	}
	return writeJSON(w, map[string]axle.Bytes32{"value": value})
}

func (a *accounts) handleGetByScriptHash(w http.ResponseWriter, req *http.Request) error {
	hash, err := axle.ParseBytes32(mux.Vars(req)["hash"])
	if err != nil {
		return badRequest(errors.WithMessage(err, "hash"))
	}
	id, exist, err := a.stater.NewState().GetAccountIDByScriptHash(hash)
	if err != nil {
		return err
	}
	if !exist {
		return notFound(errors.New("no account for script hash"))
	}
	return writeJSON(w, map[string]uint32{"id": id})
}
