// Copyright (c) 2026 The Axle developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"github.com/golang/snappy"
	lru "github.com/hashicorp/golang-lru"

	"github.com/axlechain/axle/axle"
)

var codeCache, _ = lru.NewARC(512)

// loadCode reads program code from the backing store, decompressing and
// caching it.
func (s *State) loadCode(hash axle.Bytes32) ([]byte, error) {
	if cached, ok := codeCache.Get(hash); ok {
		return cached.([]byte), nil
	}
	data, err := s.db.Get(append(codePrefix, hash[:]...))
	if err != nil {
		if s.db.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	code, err := snappy.Decode(nil, data)
	if err != nil {
		return nil, err
	}
	codeCache.Add(hash, code)
	return code, nil
}

// GetCode returns the program code stored under the given hash, or nil when
// unknown.
func (s *State) GetCode(hash axle.Bytes32) ([]byte, error) {
	v, _, err := s.sm.Get(journalKey{jkCode, hash})
	if err != nil {
		return nil, &Error{err}
	}
	return v.([]byte), nil
}

// AddCode stores program code addressed by its hash and returns the hash.
func (s *State) AddCode(code []byte) axle.Bytes32 {
	hash := axle.Blake2b(code)
	s.sm.Put(journalKey{jkCode, hash}, code)
	return hash
}
