// Copyright (c) 2026 The Axle developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"bytes"
	"sort"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/golang/snappy"

	"github.com/axlechain/axle/axle"
	"github.com/axlechain/axle/kv"
)

// Stage abstracts the changes on top of the backing store, to be committed.
type Stage struct {
	db      kv.GetPutter
	root    axle.Bytes32
	cells   map[axle.Bytes32]axle.Bytes32
	scripts map[axle.Bytes32]*axle.Script
	codes   map[axle.Bytes32][]byte
}

// Stage makes a stage object to compute the post-state root and commit the
// journaled changes.
func (s *State) Stage() (*Stage, error) {
	cells := make(map[axle.Bytes32]axle.Bytes32)
	scripts := make(map[axle.Bytes32]*axle.Script)
	codes := make(map[axle.Bytes32][]byte)

	// put order, so the latest value of a key wins
	s.sm.Journal(func(key journalKey, value any) bool {
		switch key.kind {
		case jkCell:
			cells[key.hash] = value.(axle.Bytes32)
		case jkScript:
			scripts[key.hash] = value.(*axle.Script)
		case jkCode:
			codes[key.hash] = value.([]byte)
		}
		return true
	})

	root, err := computeRoot(s.db, cells)
	if err != nil {
		return nil, &Error{err}
	}
	return &Stage{
		db:      s.db,
		root:    root,
		cells:   cells,
		scripts: scripts,
		codes:   codes,
	}, nil
}

// Root returns the post-state root computed over all staged changes without
// committing them.
func (s *State) Root() (axle.Bytes32, error) {
	stage, err := s.Stage()
	if err != nil {
		return axle.Bytes32{}, err
	}
	return stage.Root(), nil
}

// Root returns the state root over persisted cells merged with staged
// changes.
func (stg *Stage) Root() axle.Bytes32 {
	return stg.root
}

// Commit commits the staged changes and returns the state root.
func (stg *Stage) Commit() (axle.Bytes32, error) {
	batch := stg.db.NewBatch()
	for hash, value := range stg.cells {
		key := append(cellPrefix, hash[:]...)
		if value.IsZero() {
			if err := batch.Delete(key); err != nil {
				return axle.Bytes32{}, &Error{err}
			}
			continue
		}
		if err := batch.Put(key, value.Bytes()); err != nil {
			return axle.Bytes32{}, &Error{err}
		}
	}
	for hash, script := range stg.scripts {
		data, err := rlp.EncodeToBytes(script)
		if err != nil {
			return axle.Bytes32{}, &Error{err}
		}
		if err := batch.Put(append(scriptPrefix, hash[:]...), data); err != nil {
			return axle.Bytes32{}, &Error{err}
		}
	}
	for hash, code := range stg.codes {
		if err := batch.Put(append(codePrefix, hash[:]...), snappy.Encode(nil, code)); err != nil {
			return axle.Bytes32{}, &Error{err}
		}
	}
	if err := batch.Write(); err != nil {
		return axle.Bytes32{}, &Error{err}
	}
	return stg.root, nil
}

// computeRoot folds a hash over all non-zero cells in key order, merging
// persisted cells with staged changes. The fold over the sorted key space
// makes the root independent of journal order.
func computeRoot(db kv.Getter, dirty map[axle.Bytes32]axle.Bytes32) (axle.Bytes32, error) {
	dirtyKeys := make([]axle.Bytes32, 0, len(dirty))
	for key := range dirty {
		dirtyKeys = append(dirtyKeys, key)
	}
	sort.Slice(dirtyKeys, func(i, j int) bool {
		return bytes.Compare(dirtyKeys[i][:], dirtyKeys[j][:]) < 0
	})

	hasher := axle.NewBlake2b()
	count := 0
	feed := func(key, value axle.Bytes32) {
		hasher.Write(key[:])
		hasher.Write(value[:])
		count++
	}

	upper := append(append([]byte(nil), cellPrefix...), bytes.Repeat([]byte{0xff}, 33)...)
	iter := db.NewIterator(kv.Range{From: cellPrefix, To: upper})
	defer iter.Release()

	next := 0
	for iter.Next() {
		key := axle.BytesToBytes32(bytes.TrimPrefix(iter.Key(), cellPrefix))
		// staged keys below the cursor are inserts
		for next < len(dirtyKeys) && bytes.Compare(dirtyKeys[next][:], key[:]) < 0 {
			if v := dirty[dirtyKeys[next]]; !v.IsZero() {
				feed(dirtyKeys[next], v)
			}
			next++
		}
		if next < len(dirtyKeys) && dirtyKeys[next] == key {
			if v := dirty[key]; !v.IsZero() {
				feed(key, v)
			}
			next++
			continue
		}
		feed(key, axle.BytesToBytes32(iter.Value()))
	}
	if err := iter.Error(); err != nil {
		return axle.Bytes32{}, err
	}
	for ; next < len(dirtyKeys); next++ {
		if v := dirty[dirtyKeys[next]]; !v.IsZero() {
			feed(dirtyKeys[next], v)
		}
	}

	if count == 0 {
		return axle.Bytes32{}, nil
	}
	var root axle.Bytes32
	hasher.Sum(root[:0])
	return root, nil
}
