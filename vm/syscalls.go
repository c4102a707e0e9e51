// Copyright (c) 2026 The Axle developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package vm

import "github.com/axlechain/axle/axle"

// Syscalls is the capability set bound to one sandboxed run. It is the only
// channel through which a program observes or mutates the outside world; the
// machine itself holds no other reference to state.
//
// Errors returned by a capability abort the run and surface unchanged to the
// machine's caller.
type Syscalls interface {
	// ArgsLen returns the byte length of the transaction args.
	ArgsLen() uint64
	// ArgWord returns the i-th 32-byte word of the transaction args,
	// zero-padded past the end.
	ArgWord(i uint64) axle.Bytes32

	// SenderID and ReceiverID identify the transaction endpoints. The
	// receiver is the executing account.
	SenderID() uint32
	ReceiverID() uint32

	// Block context.
	BlockNumber() uint64
	BlockTimestamp() uint64
	BlockProducerID() uint32

	// LoadCell reads a cell of the executing account's namespace.
	LoadCell(fieldKey axle.Bytes32) (axle.Bytes32, error)
	// StoreCell writes a cell of the executing account's namespace.
	StoreCell(fieldKey, value axle.Bytes32) error

	// AccountScriptHash returns the script hash of any account by id.
	AccountScriptHash(id uint32) (axle.Bytes32, error)
	// AccountCodeHash returns the code hash of the script of any account.
	AccountCodeHash(id uint32) (axle.Bytes32, error)
	// CodeSize returns the byte size of the code blob with the given
	// content hash.
	CodeSize(dataHash axle.Bytes32) (uint64, error)

	// EmitLog records a log entry attributed to the executing account.
	EmitLog(data []byte) error
	// SetReturnData sets the run's return data. Last call wins.
	SetReturnData(data []byte) error
}
