// Copyright (c) 2026 The Axle developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package axle

import (
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Bytes32 array of 32 bytes.
type Bytes32 [32]byte

var (
	_ json.Marshaler   = Bytes32{}
	_ json.Unmarshaler = (*Bytes32)(nil)
)

// String implements stringer.
func (b Bytes32) String() string {
	return "0x" + hex.EncodeToString(b[:])
}

// AbbrevString returns abbrev string presentation.
func (b Bytes32) AbbrevString() string {
	return fmt.Sprintf("0x%x…%x", b[:4], b[28:])
}

// Bytes returns byte slice form of Bytes32.
func (b Bytes32) Bytes() []byte {
	return b[:]
}

// IsZero returns if Bytes32 has all zero bytes.
func (b Bytes32) IsZero() bool {
	return b == Bytes32{}
}

// Uint32 interprets the trailing 4 bytes as a big-endian uint32.
func (b Bytes32) Uint32() uint32 {
	return binary.BigEndian.Uint32(b[28:])
}

// MarshalJSON implements json.Marshaler.
func (b Bytes32) MarshalJSON() ([]byte, error) {
	return json.Marshal(b.String())
}

// UnmarshalJSON implements json.Unmarshaler.
func (b *Bytes32) UnmarshalJSON(data []byte) error {
	var hexStr string
	if err := json.Unmarshal(data, &hexStr); err != nil {
		return err
	}
	parsed, err := ParseBytes32(hexStr)
	if err != nil {
		return err
	}
	*b = parsed
	return nil
}

// ParseBytes32 convert string presented into Bytes32 type.
func ParseBytes32(s string) (Bytes32, error) {
	if len(s) == 32*2 {
	} else if len(s) == 32*2+2 {
		if !strings.HasPrefix(s, "0x") && !strings.HasPrefix(s, "0X") {
			return Bytes32{}, errors.New("bytes32: strings want 0x prefix")
		}
		s = s[2:]
	} else {
		return Bytes32{}, errors.New("bytes32: strings want 64 hex chars")
	}

	var b Bytes32
	if _, err := hex.Decode(b[:], []byte(s)); err != nil {
		return Bytes32{}, err
	}
	return b, nil
}

// MustParseBytes32 convert string presented into Bytes32 type, panic on error.
func MustParseBytes32(s string) Bytes32 {
	b, err := ParseBytes32(s)
	if err != nil {
		panic(err)
	}
	return b
}

// BytesToBytes32 converts bytes slice into Bytes32.
// If b is larger than Bytes32 legal size, b will be cropped (from the left).
// If b is smaller, b will be aligned to the right of the Bytes32.
func BytesToBytes32(b []byte) Bytes32 {
	return Bytes32(bytesToHashBytes(b, 32))
}

// Bytes32FromUint32 encodes a uint32 into the trailing 4 bytes of a Bytes32,
// big-endian. It is the canonical cell encoding of small counters such as
// nonces and account ids.
func Bytes32FromUint32(v uint32) (b Bytes32) {
	binary.BigEndian.PutUint32(b[28:], v)
	return
}

func bytesToHashBytes(b []byte, n int) []byte {
	r := make([]byte, n)
	if len(b) > n {
		b = b[len(b)-n:]
	}
	copy(r[n-len(b):], b)
	return r
}
