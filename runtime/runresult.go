// Copyright (c) 2026 The Axle developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package runtime

import (
	"bytes"
	"sort"

	"github.com/axlechain/axle/axle"
)

// LogEntry is a log record emitted during a run, attributed to the
// executing account.
type LogEntry struct {
	AccountID uint32 `json:"accountId"`
	Data      []byte `json:"data"`
}

// RunResult is the complete effect journal of one sandboxed run: every raw
// state key the run read with the value it observed, and every raw key it
// wrote with the final value. Replaying the writes against any state whose
// cells match ReadValues reproduces the run, which is what makes a result
// checkable inside a dispute.
type RunResult struct {
	ReadValues  map[axle.Bytes32]axle.Bytes32
	WriteValues map[axle.Bytes32]axle.Bytes32

	ReturnData []byte
	Logs       []*LogEntry
	ExitCode   uint8
	Cycles     uint64
}

// NewRunResult creates an empty run result.
func NewRunResult() *RunResult {
	return &RunResult{
		ReadValues:  make(map[axle.Bytes32]axle.Bytes32),
		WriteValues: make(map[axle.Bytes32]axle.Bytes32),
	}
}

// WriteKeys returns the written raw keys in ascending order, so applying a
// result is independent of map iteration order.
func (r *RunResult) WriteKeys() []axle.Bytes32 {
	keys := make([]axle.Bytes32, 0, len(r.WriteValues))
	for key := range r.WriteValues {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		return bytes.Compare(keys[i][:], keys[j][:]) < 0
	})
	return keys
}
