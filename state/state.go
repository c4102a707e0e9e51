// Copyright (c) 2026 The Axle developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"fmt"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/axlechain/axle/axle"
	"github.com/axlechain/axle/kv"
	"github.com/axlechain/axle/stackedmap"
)

// kv bucket prefixes
var (
	cellPrefix   = []byte("c/")
	scriptPrefix = []byte("s/")
	codePrefix   = []byte("d/")
)

// Error is the error caused by state access failure.
type Error struct {
	cause error
}

func (e *Error) Error() string {
	return fmt.Sprintf("state: %v", e.cause)
}

// Unwrap returns the cause.
func (e *Error) Unwrap() error { return e.cause }

// journal key kinds
const (
	jkCell byte = iota
	jkScript
	jkCode
)

type journalKey struct {
	kind byte
	hash axle.Bytes32
}

// State manages the account-indexed rollup state with a
// save-restore/checkpoint-revert journal on top of the backing store.
//
// Absence of a storage cell is defined to mean the zero value, never an
// error. A State assumes exclusive access to the store it is given for its
// lifetime.
type State struct {
	db kv.GetPutter
	sm *stackedmap.StackedMap[journalKey, any]
}

// New create state object.
func New(db kv.GetPutter) *State {
	state := State{db: db}
	state.sm = stackedmap.New(state.srcGetter)
	// the base checkpoint
	state.sm.Push()
	return &state
}

// srcGetter implements stackedmap.MapGetter, reading through to the backing
// store.
func (s *State) srcGetter(key journalKey) (any, bool, error) {
	switch key.kind {
	case jkCell:
		data, err := s.db.Get(append(cellPrefix, key.hash[:]...))
		if err != nil {
			if s.db.IsNotFound(err) {
				return axle.Bytes32{}, true, nil
			}
			return nil, false, err
		}
		return axle.BytesToBytes32(data), true, nil
	case jkScript:
		data, err := s.db.Get(append(scriptPrefix, key.hash[:]...))
		if err != nil {
			if s.db.IsNotFound(err) {
				return (*axle.Script)(nil), true, nil
			}
			return nil, false, err
		}
		var script axle.Script
		if err := rlp.DecodeBytes(data, &script); err != nil {
			return nil, false, err
		}
		return &script, true, nil
	case jkCode:
		code, err := s.loadCode(key.hash)
		if err != nil {
			return nil, false, err
		}
		return code, true, nil
	}
	panic(fmt.Errorf("unexpected journal key kind %v", key.kind))
}

// GetValue returns the value of the cell at the given raw key.
func (s *State) GetValue(rawKey axle.Bytes32) (axle.Bytes32, error) {
	v, _, err := s.sm.Get(journalKey{jkCell, rawKey})
	if err != nil {
		return axle.Bytes32{}, &Error{err}
	}
	return v.(axle.Bytes32), nil
}

// UpdateValue sets the value of the cell at the given raw key. Setting the
// zero value erases the cell.
func (s *State) UpdateValue(rawKey, value axle.Bytes32) {
	s.sm.Put(journalKey{jkCell, rawKey}, value)
}

// GetNonce returns the nonce of the account.
func (s *State) GetNonce(accountID uint32) (uint32, error) {
	v, err := s.GetValue(axle.AccountCellKey(accountID, axle.NonceFieldKey))
	if err != nil {
		return 0, err
	}
	return v.Uint32(), nil
}

// SetNonce sets the nonce of the account.
func (s *State) SetNonce(accountID, nonce uint32) {
	s.UpdateValue(axle.AccountCellKey(accountID, axle.NonceFieldKey), axle.Bytes32FromUint32(nonce))
}

// GetScriptHash returns the script hash cell of the account. A zero hash
// means the account does not exist.
func (s *State) GetScriptHash(accountID uint32) (axle.Bytes32, error) {
	return s.GetValue(axle.AccountCellKey(accountID, axle.ScriptHashFieldKey))
}

// GetScript returns the script stored under the given hash, or nil when
// unknown.
func (s *State) GetScript(hash axle.Bytes32) (*axle.Script, error) {
	v, _, err := s.sm.Get(journalKey{jkScript, hash})
	if err != nil {
		return nil, &Error{err}
	}
	return v.(*axle.Script), nil
}

// GetAccountIDByScriptHash resolves the account registered for a script
// hash.
func (s *State) GetAccountIDByScriptHash(hash axle.Bytes32) (uint32, bool, error) {
	v, err := s.GetValue(axle.ScriptHashToIDKey(hash))
	if err != nil {
		return 0, false, err
	}
	if v.IsZero() {
		return 0, false, nil
	}
	// the cell stores id+1 so a zero cell keeps meaning "absent"
	return v.Uint32() - 1, true, nil
}

// GetAccountCount returns the number of created accounts. Account ids are
// dense, so this is also the next id to assign.
func (s *State) GetAccountCount() (uint32, error) {
	v, err := s.GetValue(axle.AccountCountKey)
	if err != nil {
		return 0, err
	}
	return v.Uint32(), nil
}

// CreateAccount creates a new account from the script and returns the
// assigned id. Ids are assigned monotonically and never reused.
func (s *State) CreateAccount(script *axle.Script) (uint32, error) {
	hash := script.Hash()
	if _, exist, err := s.GetAccountIDByScriptHash(hash); err != nil {
		return 0, err
	} else if exist {
		return 0, &Error{ErrAccountExists}
	}

	id, err := s.GetAccountCount()
	if err != nil {
		return 0, err
	}
	s.UpdateValue(axle.AccountCellKey(id, axle.ScriptHashFieldKey), hash)
	s.UpdateValue(axle.ScriptHashToIDKey(hash), axle.Bytes32FromUint32(id+1))
	s.UpdateValue(axle.AccountCountKey, axle.Bytes32FromUint32(id+1))
	s.sm.Put(journalKey{jkScript, hash}, script)
	return id, nil
}

// GetOrCreateAccount resolves the account registered for the script,
// creating it first when absent.
func (s *State) GetOrCreateAccount(script *axle.Script) (uint32, error) {
	id, exist, err := s.GetAccountIDByScriptHash(script.Hash())
	if err != nil {
		return 0, err
	}
	if exist {
		return id, nil
	}
	return s.CreateAccount(script)
}

// NewCheckpoint makes a checkpoint of current state.
// It returns revision of the checkpoint.
func (s *State) NewCheckpoint() int {
	return s.sm.Push()
}

// RevertTo revert to checkpoint specified by revision.
func (s *State) RevertTo(revision int) {
	s.sm.PopTo(revision)
}
