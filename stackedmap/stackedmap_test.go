// Copyright (c) 2026 The Axle developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package stackedmap_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/axlechain/axle/stackedmap"
)

func TestStackedMap(t *testing.T) {
	src := make(map[string]string)
	src["base"] = "from-src"

	sm := stackedmap.New(func(key string) (string, bool, error) {
		v, ok := src[key]
		return v, ok, nil
	})

	sm.Push()
	v, ok, err := sm.Get("base")
	assert.Nil(t, err)
	assert.True(t, ok)
	assert.Equal(t, "from-src", v)

	sm.Put("a", "1")
	v, ok, _ = sm.Get("a")
	assert.True(t, ok)
	assert.Equal(t, "1", v)

	rev := sm.Push()
	sm.Put("a", "2")
	v, _, _ = sm.Get("a")
	assert.Equal(t, "2", v)

	sm.PopTo(rev)
	v, _, _ = sm.Get("a")
	assert.Equal(t, "1", v)

	sm.Pop()
	_, ok, _ = sm.Get("a")
	assert.False(t, ok)
}

func TestStackedMapPutSameKeyTwice(t *testing.T) {
	sm := stackedmap.New(func(string) (string, bool, error) {
		return "", false, nil
	})
	sm.Push()
	sm.Put("k", "1")
	sm.Put("k", "2")
	v, ok, _ := sm.Get("k")
	assert.True(t, ok)
	assert.Equal(t, "2", v)

	sm.Pop()
	_, ok, _ = sm.Get("k")
	assert.False(t, ok)

	// revision map must be clean after the pop
	sm.Push()
	sm.Put("k", "3")
	v, _, _ = sm.Get("k")
	assert.Equal(t, "3", v)
}

func TestStackedMapJournal(t *testing.T) {
	sm := stackedmap.New(func(string) (string, bool, error) {
		return "", false, nil
	})
	sm.Push()
	sm.Put("a", "1")
	sm.Push()
	sm.Put("b", "2")
	sm.Put("a", "3")

	var keys, values []string
	sm.Journal(func(k, v string) bool {
		keys = append(keys, k)
		values = append(values, v)
		return true
	})
	assert.Equal(t, []string{"a", "b", "a"}, keys)
	assert.Equal(t, []string{"1", "2", "3"}, values)

	// early stop
	n := 0
	sm.Journal(func(string, string) bool {
		n++
		return false
	})
	assert.Equal(t, 1, n)
}

func TestStackedMapDepth(t *testing.T) {
	sm := stackedmap.New(func(string) (string, bool, error) {
		return "", false, nil
	})
	assert.Equal(t, 0, sm.Depth())
	assert.Equal(t, 0, sm.Push())
	assert.Equal(t, 1, sm.Push())
	assert.Equal(t, 2, sm.Depth())
	sm.PopTo(0)
	assert.Equal(t, 0, sm.Depth())
}
