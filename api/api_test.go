// Copyright (c) 2026 The Axle developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package api_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"

	"github.com/axlechain/axle/api"
	"github.com/axlechain/axle/axle"
	"github.com/axlechain/axle/block"
	"github.com/axlechain/axle/builtin"
	"github.com/axlechain/axle/chain"
	"github.com/axlechain/axle/genesis"
	"github.com/axlechain/axle/logdb"
	"github.com/axlechain/axle/lvldb"
	"github.com/axlechain/axle/node"
	"github.com/axlechain/axle/state"
	"github.com/axlechain/axle/tx"
)

type env struct {
	server *httptest.Server

	genesisBlock *block.Block
	settledBlock *block.Block
	transfer     *tx.Transaction
	aliceScript  *axle.Script
}

// newEnv serves the API over a chain with one settled block: alice (id 2) and
// bob (id 3) funded by deposit, plus a 30 token transfer from alice to bob.
func newEnv(t *testing.T) *env {
	t.Helper()

	db, err := lvldb.NewMem()
	assert.Nil(t, err)
	t.Cleanup(func() { db.Close() })

	stater := state.NewStater(db)
	genesisBlock, err := genesis.NewDevnet().Build(stater)
	assert.Nil(t, err)
	c, err := chain.New(db, genesisBlock)
	assert.Nil(t, err)

	logDB, err := logdb.NewMem()
	assert.Nil(t, err)
	t.Cleanup(func() { logDB.Close() })

	n := node.New(c, stater, builtin.Registry().Build(), logDB)

	aliceScript := &axle.Script{CodeHash: axle.Blake2b([]byte("alice")), HashType: axle.HashTypeType}
	bobScript := &axle.Script{CodeHash: axle.Blake2b([]byte("bob")), HashType: axle.HashTypeType}
	deposits := []*tx.DepositionRequest{
		{Script: aliceScript, TokenScript: genesis.NativeTokenScript(), Amount: uint256.NewInt(100)},
		{Script: bobScript, TokenScript: genesis.NativeTokenScript(), Amount: uint256.NewInt(1)},
	}

	toWord := axle.Bytes32FromUint32(3)
	amountWord := axle.Bytes32(uint256.NewInt(30).Bytes32())
	transfer := tx.New(2, genesis.NativeTokenID, 0, append(toWord[:], amountWord[:]...))

	blk, _, err := n.ProduceBlock(genesis.MetaAccountID, 2000, nil, deposits, tx.Transactions{transfer})
	assert.Nil(t, err)

	server := httptest.NewServer(api.New(n, stater))
	t.Cleanup(server.Close)

	return &env{
		server:       server,
		genesisBlock: genesisBlock,
		settledBlock: blk,
		transfer:     transfer,
		aliceScript:  aliceScript,
	}
}

func (e *env) get(t *testing.T, path string, out any) int {
	t.Helper()
	res, err := http.Get(e.server.URL + path)
	assert.Nil(t, err)
	defer res.Body.Close()
	if out != nil && res.StatusCode == http.StatusOK {
		assert.Nil(t, json.NewDecoder(res.Body).Decode(out))
	} else {
		io.Copy(io.Discard, res.Body)
	}
	return res.StatusCode
}

func (e *env) post(t *testing.T, path string, body, out any) int {
	t.Helper()
	data, err := json.Marshal(body)
	assert.Nil(t, err)
	res, err := http.Post(e.server.URL+path, "application/json", bytes.NewReader(data))
	assert.Nil(t, err)
	defer res.Body.Close()
	if out != nil && res.StatusCode == http.StatusOK {
		assert.Nil(t, json.NewDecoder(res.Body).Decode(out))
	} else {
		io.Copy(io.Discard, res.Body)
	}
	return res.StatusCode
}

func TestAccounts(t *testing.T) {
	e := newEnv(t)

	var count map[string]uint32
	assert.Equal(t, http.StatusOK, e.get(t, "/accounts/count", &count))
	assert.Equal(t, uint32(4), count["count"])

	var account struct {
		ID         uint32 `json:"id"`
		Nonce      uint32 `json:"nonce"`
		ScriptHash string `json:"scriptHash"`
	}
	assert.Equal(t, http.StatusOK, e.get(t, "/accounts/2", &account))
	assert.Equal(t, uint32(2), account.ID)
	assert.Equal(t, uint32(1), account.Nonce)
	assert.Equal(t, e.aliceScript.Hash().String(), account.ScriptHash)

	assert.Equal(t, http.StatusNotFound, e.get(t, "/accounts/99", nil))
	assert.Equal(t, http.StatusBadRequest, e.get(t, "/accounts/xyz", nil))

	var byHash map[string]uint32
	assert.Equal(t, http.StatusOK, e.get(t, "/accounts/by-script-hash/"+e.aliceScript.Hash().String(), &byHash))
	assert.Equal(t, uint32(2), byHash["id"])

	var balance map[string]string
	assert.Equal(t, http.StatusOK, e.get(t, "/accounts/2/balance", &balance))
	assert.Equal(t, "70", balance["balance"])
	assert.Equal(t, http.StatusOK, e.get(t, "/accounts/3/balance?token=1", &balance))
	assert.Equal(t, "31", balance["balance"])

	// raw cell read: alice's balance cell lives in the token account's storage
	var cell map[string]string
	key := axle.Bytes32FromUint32(2)
	assert.Equal(t, http.StatusOK, e.get(t, "/accounts/1/storage/"+key.String(), &cell))
	want := axle.Bytes32(uint256.NewInt(70).Bytes32())
	assert.Equal(t, want.String(), cell["value"])
}

func TestBlocks(t *testing.T) {
	e := newEnv(t)

	var blk struct {
		Hash         string   `json:"hash"`
		Number       uint64   `json:"number"`
		Transactions []string `json:"transactions"`
	}
	assert.Equal(t, http.StatusOK, e.get(t, "/blocks/best", &blk))
	assert.Equal(t, e.settledBlock.Header().Hash().String(), blk.Hash)
	assert.Equal(t, uint64(1), blk.Number)
	assert.Len(t, blk.Transactions, 1)

	assert.Equal(t, http.StatusOK, e.get(t, "/blocks/0", &blk))
	assert.Equal(t, e.genesisBlock.Header().Hash().String(), blk.Hash)

	assert.Equal(t, http.StatusOK, e.get(t, "/blocks/"+e.settledBlock.Header().Hash().String(), &blk))
	assert.Equal(t, uint64(1), blk.Number)

	assert.Equal(t, http.StatusNotFound, e.get(t, "/blocks/99", nil))
	assert.Equal(t, http.StatusBadRequest, e.get(t, "/blocks/zzz", nil))
}

func TestStatus(t *testing.T) {
	e := newEnv(t)

	var status struct {
		BestBlock    uint64 `json:"bestBlock"`
		BestHash     string `json:"bestHash"`
		GenesisHash  string `json:"genesisHash"`
		AccountCount uint32 `json:"accountCount"`
	}
	assert.Equal(t, http.StatusOK, e.get(t, "/status", &status))
	assert.Equal(t, uint64(1), status.BestBlock)
	assert.Equal(t, e.settledBlock.Header().Hash().String(), status.BestHash)
	assert.Equal(t, e.genesisBlock.Header().Hash().String(), status.GenesisHash)
	assert.Equal(t, uint32(4), status.AccountCount)
}

func TestCall(t *testing.T) {
	e := newEnv(t)

	type callResult struct {
		ExitCode   uint8  `json:"exitCode"`
		Cycles     uint64 `json:"cycles"`
		ReturnData string `json:"returnData"`
	}
	query := map[string]any{
		"fromId": 2,
		"toId":   genesis.NativeTokenID,
		"args":   axle.Bytes32FromUint32(2).String(),
	}
	var result callResult
	assert.Equal(t, http.StatusOK, e.post(t, "/transactions/call", query, &result))
	assert.Equal(t, uint8(0), result.ExitCode)
	balance := axle.Bytes32(uint256.NewInt(70).Bytes32())
	assert.Equal(t, balance.String(), result.ReturnData)
	assert.NotZero(t, result.Cycles)

	// an over-balance transfer fails inside the program, not at the API
	toWord := axle.Bytes32FromUint32(3)
	amountWord := axle.Bytes32(uint256.NewInt(1000).Bytes32())
	overdraft := map[string]any{
		"fromId": 2,
		"toId":   genesis.NativeTokenID,
		"args":   fmt.Sprintf("%v%x", toWord, amountWord[:]),
	}
	assert.Equal(t, http.StatusOK, e.post(t, "/transactions/call", overdraft, &result))
	assert.Equal(t, uint8(builtin.SudtExitFailure), result.ExitCode)

	// calling a non-executable account is a client error
	bad := map[string]any{"fromId": 2, "toId": genesis.MetaAccountID}
	assert.Equal(t, http.StatusBadRequest, e.post(t, "/transactions/call", bad, nil))
}

func TestTransactions(t *testing.T) {
	e := newEnv(t)

	var rec struct {
		BlockNumber uint64 `json:"blockNumber"`
		FromID      uint32 `json:"fromId"`
		ToID        uint32 `json:"toId"`
	}
	assert.Equal(t, http.StatusOK, e.get(t, "/transactions/"+e.transfer.Hash().String(), &rec))
	assert.Equal(t, uint64(1), rec.BlockNumber)
	assert.Equal(t, uint32(2), rec.FromID)
	assert.Equal(t, genesis.NativeTokenID, rec.ToID)

	unknown := axle.Blake2b([]byte("unknown"))
	assert.Equal(t, http.StatusNotFound, e.get(t, "/transactions/"+unknown.String(), nil))

	var records []json.RawMessage
	assert.Equal(t, http.StatusOK, e.get(t, "/transactions?account=2", &records))
	assert.Len(t, records, 1)
	var empty []json.RawMessage
	assert.Equal(t, http.StatusOK, e.get(t, "/transactions?account=9", &empty))
	assert.Len(t, empty, 0)
}

func TestLogs(t *testing.T) {
	e := newEnv(t)

	var records []struct {
		BlockNumber uint64 `json:"blockNumber"`
		AccountID   uint32 `json:"accountId"`
		Data        string `json:"data"`
	}
	assert.Equal(t, http.StatusOK, e.get(t, "/logs", &records))
	assert.Len(t, records, 1)
	assert.Equal(t, uint64(1), records[0].BlockNumber)
	assert.Equal(t, genesis.NativeTokenID, records[0].AccountID)

	assert.Equal(t, http.StatusOK, e.get(t, "/logs?account=99", &records))
	assert.Len(t, records, 0)
}
