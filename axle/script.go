// Copyright (c) 2026 The Axle developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package axle

import (
	"fmt"

	"github.com/ethereum/go-ethereum/rlp"
)

// ScriptHashType describes how a script's code hash is to be resolved.
type ScriptHashType byte

const (
	// HashTypeData means the code hash is the content hash of the executable
	// itself. Only data scripts are eligible for backend resolution.
	HashTypeData ScriptHashType = 0
	// HashTypeType means the code hash requires an indirection through a type
	// definition. Accounts with type scripts hold state but cannot be the
	// target of a transaction.
	HashTypeType ScriptHashType = 1
)

// String implements stringer.
func (t ScriptHashType) String() string {
	switch t {
	case HashTypeData:
		return "data"
	case HashTypeType:
		return "type"
	default:
		return fmt.Sprintf("unknown(%d)", byte(t))
	}
}

// Script defines the ownership and the executable identity of an account.
type Script struct {
	CodeHash Bytes32
	HashType ScriptHashType
	Args     []byte
}

// Hash returns the content hash of the script.
func (s *Script) Hash() Bytes32 {
	data, err := rlp.EncodeToBytes(s)
	if err != nil {
		// Script contains no encoder-unfriendly field.
		panic(err)
	}
	return Blake2b(data)
}
