// Copyright (c) 2026 The Axle developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package backend

import (
	"bytes"
	"sort"

	"github.com/axlechain/axle/axle"
)

// Registry is an immutable code hash to backend lookup table.
type Registry struct {
	backends map[axle.Bytes32]*Backend
}

// Get returns the backend registered for the code hash.
func (r *Registry) Get(codeHash axle.Bytes32) (*Backend, bool) {
	b, ok := r.backends[codeHash]
	return b, ok
}

// CodeHashes returns all registered code hashes in ascending order.
func (r *Registry) CodeHashes() []axle.Bytes32 {
	hashes := make([]axle.Bytes32, 0, len(r.backends))
	for hash := range r.backends {
		hashes = append(hashes, hash)
	}
	sort.Slice(hashes, func(i, j int) bool {
		return bytes.Compare(hashes[i][:], hashes[j][:]) < 0
	})
	return hashes
}

// Builder to build a registry.
type Builder struct {
	backends []*Backend
}

// Add registers a program. Re-adding the same program is a no-op at build
// time.
func (b *Builder) Add(backend *Backend) *Builder {
	b.backends = append(b.backends, backend)
	return b
}

// Build builds the immutable registry.
func (b *Builder) Build() *Registry {
	backends := make(map[axle.Bytes32]*Backend, len(b.backends))
	for _, backend := range b.backends {
		backends[backend.CodeHash()] = backend
	}
	return &Registry{backends}
}
