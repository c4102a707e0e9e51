// Copyright (c) 2026 The Axle developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package genesis builds the block zero state: the meta account, the
// native token account and any configured premints.
package genesis

import (
	"github.com/holiman/uint256"
	"github.com/pkg/errors"

	"github.com/axlechain/axle/axle"
	"github.com/axlechain/axle/block"
	"github.com/axlechain/axle/builtin"
	"github.com/axlechain/axle/lvldb"
	"github.com/axlechain/axle/state"
)

// Well-known account ids settled by genesis.
const (
	// MetaAccountID is the non-executable account carrying chain metadata.
	MetaAccountID uint32 = 0
	// NativeTokenID is the sudt account of the chain's native token.
	NativeTokenID uint32 = 1
)

// Genesis describes block zero.
type Genesis struct {
	timestamp uint64
	premints  []premint
}

type premint struct {
	script *axle.Script
	amount *uint256.Int
}

// NewDevnet creates the genesis of a development chain.
func NewDevnet() *Genesis {
	return &Genesis{timestamp: 1704067200} // 2024-01-01 00:00:00 UTC
}

// NewCustom creates a genesis from a config.
func NewCustom(config *Config) (*Genesis, error) {
	g := &Genesis{timestamp: config.Timestamp}
	for _, p := range config.Premints {
		script, err := p.Script.toScript()
		if err != nil {
			return nil, err
		}
		amount, err := uint256.FromDecimal(p.Amount)
		if err != nil {
			return nil, errors.Wrap(err, "parse premint amount")
		}
		g.premints = append(g.premints, premint{script: script, amount: amount})
	}
	return g, nil
}

// MetaScript is the script of the meta account. Its hash type is not
// data-addressed, so the account can never execute.
func MetaScript() *axle.Script {
	return &axle.Script{
		CodeHash: axle.Blake2b([]byte("axle-meta")),
		HashType: axle.HashTypeType,
	}
}

// NativeTokenScript is the sudt script of the native token.
func NativeTokenScript() *axle.Script {
	return &axle.Script{
		CodeHash: builtin.Sudt.CodeHash(),
		HashType: axle.HashTypeData,
		Args:     []byte("AXLE"),
	}
}

// Block computes block zero without touching any store. It is fully
// deterministic in the genesis parameters.
func (g *Genesis) Block() (*block.Block, error) {
	mem, err := lvldb.NewMem()
	if err != nil {
		return nil, err
	}
	defer mem.Close()

	root, err := g.seed(state.New(mem))
	if err != nil {
		return nil, err
	}
	return g.buildBlock(root), nil
}

// Build returns block zero, seeding the store first when it is empty.
// Reopening a seeded data directory yields the identical block.
func (g *Genesis) Build(stater *state.Stater) (*block.Block, error) {
	blk, err := g.Block()
	if err != nil {
		return nil, err
	}

	st := stater.NewState()
	count, err := st.GetAccountCount()
	if err != nil {
		return nil, err
	}
	if count == 0 {
		root, err := g.seed(st)
		if err != nil {
			return nil, err
		}
		if root != blk.Header().StateRoot() {
			return nil, errors.New("genesis: state root mismatch on seed")
		}
	}
	return blk, nil
}

// seed creates the genesis accounts and premints, commits, and returns the
// state root.
func (g *Genesis) seed(st *state.State) (axle.Bytes32, error) {
	metaID, err := st.CreateAccount(MetaScript())
	if err != nil {
		return axle.Bytes32{}, err
	}
	tokenID, err := st.CreateAccount(NativeTokenScript())
	if err != nil {
		return axle.Bytes32{}, err
	}
	if metaID != MetaAccountID || tokenID != NativeTokenID {
		return axle.Bytes32{}, errors.New("genesis: unexpected well-known account ids")
	}
	// persist builtin programs so code lookups work without the registry
	st.AddCode(builtin.Sudt.Program())
	st.AddCode(builtin.Echo.Program())

	for _, p := range g.premints {
		holderID, err := st.GetOrCreateAccount(p.script)
		if err != nil {
			return axle.Bytes32{}, err
		}
		if err := st.AddBalance(tokenID, holderID, p.amount); err != nil {
			return axle.Bytes32{}, err
		}
	}

	stage, err := st.Stage()
	if err != nil {
		return axle.Bytes32{}, err
	}
	return stage.Commit()
}

func (g *Genesis) buildBlock(root axle.Bytes32) *block.Block {
	return new(block.Builder).
		Timestamp(g.timestamp).
		ProducerID(MetaAccountID).
		StateRoot(root).
		Build()
}
