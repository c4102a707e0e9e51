// Copyright (c) 2026 The Axle developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package axle

import "encoding/binary"

// Field keys address cells inside one account's storage namespace. Keys whose
// first byte is the reserved marker are maintained by the system and may be
// read, but never written, by a sandboxed program.
const reservedFieldMarker = 0xff

// Reserved field keys.
var (
	// NonceFieldKey locates the account's nonce cell.
	NonceFieldKey = reservedFieldKey(0x01)
	// ScriptHashFieldKey locates the account's script hash cell.
	ScriptHashFieldKey = reservedFieldKey(0x02)
)

func reservedFieldKey(tag byte) (k Bytes32) {
	k[0] = reservedFieldMarker
	k[1] = tag
	return
}

// IsReservedFieldKey reports whether the field key belongs to the
// system-maintained portion of the account namespace.
func IsReservedFieldKey(fieldKey Bytes32) bool {
	return fieldKey[0] == reservedFieldMarker
}

// AccountCellKey derives the raw storage key of the cell addressed by
// (accountID, fieldKey). Raw keys of different accounts never collide since
// the account id is part of the preimage.
func AccountCellKey(accountID uint32, fieldKey Bytes32) Bytes32 {
	var id [4]byte
	binary.BigEndian.PutUint32(id[:], accountID)
	return Blake2b(id[:], fieldKey[:])
}

// TokenFieldKey derives the field key of a holder's balance cell inside a
// token account's namespace. It equals the big-endian cell encoding of the
// holder's id so token programs can derive it without hashing.
func TokenFieldKey(holderID uint32) Bytes32 {
	return Bytes32FromUint32(holderID)
}

// ScriptHashToIDKey derives the raw key of the global cell mapping a script
// hash back to the account id registered for it. The cell stores id+1 so a
// zero cell keeps meaning "absent".
func ScriptHashToIDKey(scriptHash Bytes32) Bytes32 {
	return Blake2b([]byte("acct-by-script"), scriptHash[:])
}

// AccountCountKey is the raw key of the global account counter cell.
var AccountCountKey = Blake2b([]byte("acct-count"))
