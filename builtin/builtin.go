// Copyright (c) 2026 The Axle developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package builtin assembles the programs shipped with the engine and
// registers them for execution.
package builtin

import (
	"github.com/axlechain/axle/axle"
	"github.com/axlechain/axle/backend"
)

// Builtin programs. Their code hashes are deployment constants: genesis
// scripts reference them and the registry serves them without any on-state
// code lookup.
var (
	Sudt = backend.New(sudtProgram())
	Echo = backend.New(echoProgram())
)

// Registry returns a registry preloaded with the builtin programs.
func Registry() *backend.Builder {
	return new(backend.Builder).
		Add(Sudt).
		Add(Echo)
}

// CodeHashes returns the builtin code hashes, for genesis assembly.
func CodeHashes() []axle.Bytes32 {
	return []axle.Bytes32{Sudt.CodeHash(), Echo.CodeHash()}
}
