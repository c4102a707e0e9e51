// Copyright (c) 2026 The Axle developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import "github.com/axlechain/axle/kv"

// Stater is the factory of state objects over a shared backing store.
type Stater struct {
	db kv.GetPutter
}

// NewStater create a Stater object.
func NewStater(db kv.GetPutter) *Stater {
	return &Stater{db}
}

// NewState create a state object overlaying the current persisted state.
func (s *Stater) NewState() *State {
	return New(s.db)
}
