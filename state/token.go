// Copyright (c) 2026 The Axle developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"github.com/holiman/uint256"

	"github.com/axlechain/axle/axle"
	"github.com/axlechain/axle/tx"
)

// balanceKey is the cell holding holder's balance of the token issued by
// the token account.
func balanceKey(tokenID, holderID uint32) axle.Bytes32 {
	return axle.AccountCellKey(tokenID, axle.TokenFieldKey(holderID))
}

// GetBalance returns holder's balance of the given token.
func (s *State) GetBalance(tokenID, holderID uint32) (*uint256.Int, error) {
	v, err := s.GetValue(balanceKey(tokenID, holderID))
	if err != nil {
		return nil, err
	}
	return new(uint256.Int).SetBytes32(v[:]), nil
}

func (s *State) setBalance(tokenID, holderID uint32, balance *uint256.Int) {
	s.UpdateValue(balanceKey(tokenID, holderID), axle.Bytes32(balance.Bytes32()))
}

// AddBalance credits amount to holder's balance of the given token.
func (s *State) AddBalance(tokenID, holderID uint32, amount *uint256.Int) error {
	balance, err := s.GetBalance(tokenID, holderID)
	if err != nil {
		return err
	}
	sum, overflow := new(uint256.Int).AddOverflow(balance, amount)
	if overflow {
		return &Error{ErrAmountOverflow}
	}
	s.setBalance(tokenID, holderID, sum)
	return nil
}

// SubBalance debits amount from holder's balance of the given token.
func (s *State) SubBalance(tokenID, holderID uint32, amount *uint256.Int) error {
	balance, err := s.GetBalance(tokenID, holderID)
	if err != nil {
		return err
	}
	if balance.Lt(amount) {
		return &Error{ErrInsufficientBalance}
	}
	s.setBalance(tokenID, holderID, new(uint256.Int).Sub(balance, amount))
	return nil
}

// ApplyDepositionRequests credits the deposited amounts, creating receiving
// and token accounts on first sight.
func (s *State) ApplyDepositionRequests(reqs []*tx.DepositionRequest) error {
	for _, req := range reqs {
		holderID, err := s.GetOrCreateAccount(req.Script)
		if err != nil {
			return err
		}
		tokenID, err := s.GetOrCreateAccount(req.TokenScript)
		if err != nil {
			return err
		}
		if err := s.AddBalance(tokenID, holderID, req.Amount); err != nil {
			return err
		}
	}
	return nil
}

// ApplyWithdrawalRequests debits the withdrawn amounts. Unknown accounts
// and insufficient balances fail the whole transition.
func (s *State) ApplyWithdrawalRequests(reqs []*tx.WithdrawalRequest) error {
	for _, req := range reqs {
		holderID, exist, err := s.GetAccountIDByScriptHash(req.AccountScriptHash)
		if err != nil {
			return err
		}
		if !exist {
			return &Error{ErrUnknownAccount}
		}
		tokenID, exist, err := s.GetAccountIDByScriptHash(req.TokenScriptHash)
		if err != nil {
			return err
		}
		if !exist {
			return &Error{ErrUnknownToken}
		}
		if err := s.SubBalance(tokenID, holderID, req.Amount); err != nil {
			return err
		}
	}
	return nil
}
