// Copyright (c) 2026 The Axle developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package axle_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/axlechain/axle/axle"
)

func TestReservedFieldKeys(t *testing.T) {
	assert.True(t, axle.IsReservedFieldKey(axle.NonceFieldKey))
	assert.True(t, axle.IsReservedFieldKey(axle.ScriptHashFieldKey))
	assert.NotEqual(t, axle.NonceFieldKey, axle.ScriptHashFieldKey)

	// token balance field keys are never reserved for any representable id
	assert.False(t, axle.IsReservedFieldKey(axle.TokenFieldKey(0)))
	assert.False(t, axle.IsReservedFieldKey(axle.TokenFieldKey(0xffffffff)))
}

func TestAccountCellKeyIsolation(t *testing.T) {
	fieldKey := axle.Bytes32FromUint32(42)

	// same field key, different accounts
	assert.NotEqual(t,
		axle.AccountCellKey(1, fieldKey),
		axle.AccountCellKey(2, fieldKey))
	// same account, different field keys
	assert.NotEqual(t,
		axle.AccountCellKey(1, fieldKey),
		axle.AccountCellKey(1, axle.Bytes32FromUint32(43)))
	// deterministic
	assert.Equal(t,
		axle.AccountCellKey(1, fieldKey),
		axle.AccountCellKey(1, fieldKey))
}

func TestTokenFieldKey(t *testing.T) {
	// the token field key is the cell encoding of the holder id
	assert.Equal(t, axle.Bytes32FromUint32(9), axle.TokenFieldKey(9))
}

func TestScriptHash(t *testing.T) {
	s1 := &axle.Script{CodeHash: axle.Blake2b([]byte("code")), HashType: axle.HashTypeData}
	s2 := &axle.Script{CodeHash: axle.Blake2b([]byte("code")), HashType: axle.HashTypeData, Args: []byte{1}}

	assert.Equal(t, s1.Hash(), s1.Hash())
	assert.NotEqual(t, s1.Hash(), s2.Hash())

	s3 := *s1
	s3.HashType = axle.HashTypeType
	assert.NotEqual(t, s1.Hash(), s3.Hash())
}

func TestBlake2b(t *testing.T) {
	// split input hashes like joined input
	assert.Equal(t, axle.Blake2b([]byte("ab"), []byte("c")), axle.Blake2b([]byte("abc")))
	assert.NotEqual(t, axle.Blake2b([]byte("a")), axle.Blake2b([]byte("b")))
	assert.False(t, axle.Blake2b(nil).IsZero())
}
