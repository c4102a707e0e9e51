// Copyright (c) 2026 The Axle developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package lvldb

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/axlechain/axle/kv"
)

func TestGetPut(t *testing.T) {
	db, err := NewMem()
	assert.Nil(t, err)
	defer db.Close()

	_, err = db.Get([]byte("missing"))
	assert.True(t, db.IsNotFound(err))

	assert.Nil(t, db.Put([]byte("k"), []byte("v")))
	v, err := db.Get([]byte("k"))
	assert.Nil(t, err)
	assert.Equal(t, []byte("v"), v)

	has, err := db.Has([]byte("k"))
	assert.Nil(t, err)
	assert.True(t, has)

	assert.Nil(t, db.Delete([]byte("k")))
	_, err = db.Get([]byte("k"))
	assert.True(t, db.IsNotFound(err))
}

func TestBatch(t *testing.T) {
	db, err := NewMem()
	assert.Nil(t, err)
	defer db.Close()

	assert.Nil(t, db.Put([]byte("gone"), []byte("x")))

	batch := db.NewBatch()
	assert.Nil(t, batch.Put([]byte("a"), []byte("1")))
	assert.Nil(t, batch.Put([]byte("b"), []byte("2")))
	assert.Nil(t, batch.Delete([]byte("gone")))
	assert.Equal(t, 3, batch.Len())

	// nothing lands before Write
	_, err = db.Get([]byte("a"))
	assert.True(t, db.IsNotFound(err))

	assert.Nil(t, batch.Write())
	v, err := db.Get([]byte("a"))
	assert.Nil(t, err)
	assert.Equal(t, []byte("1"), v)
	_, err = db.Get([]byte("gone"))
	assert.True(t, db.IsNotFound(err))
}

func TestIterator(t *testing.T) {
	db, err := NewMem()
	assert.Nil(t, err)
	defer db.Close()

	for _, k := range []string{"p/a", "p/b", "p/c", "q/a"} {
		assert.Nil(t, db.Put([]byte(k), []byte(k)))
	}

	it := db.NewIterator(kv.Range{From: []byte("p/"), To: []byte("p/~")})
	defer it.Release()

	var keys []string
	for it.Next() {
		keys = append(keys, string(it.Key()))
	}
	assert.Nil(t, it.Error())
	assert.Equal(t, []string{"p/a", "p/b", "p/c"}, keys)
}
