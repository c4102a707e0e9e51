// Copyright (c) 2026 The Axle developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import "github.com/pkg/errors"

var (
	// ErrAccountExists returned when creating an account whose script hash
	// is already registered.
	ErrAccountExists = errors.New("account already exists")

	// ErrAmountOverflow returned when a balance credit would exceed the
	// 256-bit range.
	ErrAmountOverflow = errors.New("amount overflow")

	// ErrInsufficientBalance returned when a debit exceeds the balance.
	ErrInsufficientBalance = errors.New("insufficient balance")

	// ErrUnknownAccount returned when a withdrawal names a script hash with
	// no registered account.
	ErrUnknownAccount = errors.New("unknown account script hash")

	// ErrUnknownToken returned when a withdrawal names a token script hash
	// with no registered account.
	ErrUnknownToken = errors.New("unknown token script hash")
)
