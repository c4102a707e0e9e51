// Copyright (c) 2026 The Axle developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"

	"github.com/axlechain/axle/axle"
	"github.com/axlechain/axle/builtin"
	"github.com/axlechain/axle/genesis"
	"github.com/axlechain/axle/lvldb"
	"github.com/axlechain/axle/state"
)

func TestDevnetBlock(t *testing.T) {
	gene := genesis.NewDevnet()

	b1, err := gene.Block()
	assert.Nil(t, err)
	b2, err := gene.Block()
	assert.Nil(t, err)

	// block zero is a pure function of the genesis parameters
	assert.Equal(t, b1.Header().Hash(), b2.Header().Hash())
	assert.Equal(t, uint64(0), b1.Header().Number())
	assert.True(t, b1.Header().ParentHash().IsZero())
	assert.False(t, b1.Header().StateRoot().IsZero())
}

func TestBuildSeedsStore(t *testing.T) {
	db, err := lvldb.NewMem()
	assert.Nil(t, err)
	defer db.Close()

	gene := genesis.NewDevnet()
	stater := state.NewStater(db)

	blk, err := gene.Build(stater)
	assert.Nil(t, err)

	st := stater.NewState()
	count, err := st.GetAccountCount()
	assert.Nil(t, err)
	assert.Equal(t, uint32(2), count)

	metaHash, err := st.GetScriptHash(genesis.MetaAccountID)
	assert.Nil(t, err)
	assert.Equal(t, genesis.MetaScript().Hash(), metaHash)

	tokenHash, err := st.GetScriptHash(genesis.NativeTokenID)
	assert.Nil(t, err)
	assert.Equal(t, genesis.NativeTokenScript().Hash(), tokenHash)

	tokenScript, err := st.GetScript(tokenHash)
	assert.Nil(t, err)
	assert.Equal(t, []byte("AXLE"), tokenScript.Args)

	// builtin programs are retrievable from the code store
	code, err := st.GetCode(builtin.Sudt.CodeHash())
	assert.Nil(t, err)
	assert.Equal(t, builtin.Sudt.Program(), code)

	// a reopen yields the identical block and does not reseed
	again, err := gene.Build(stater)
	assert.Nil(t, err)
	assert.Equal(t, blk.Header().Hash(), again.Header().Hash())
}

func TestCustomGenesis(t *testing.T) {
	holder := &axle.Script{
		CodeHash: axle.Blake2b([]byte("holder")),
		HashType: axle.HashTypeType,
		Args:     []byte{0xab, 0xcd},
	}
	config := &genesis.Config{
		Timestamp: 4000,
		Premints: []genesis.PremintConfig{
			{
				Script: genesis.ScriptConfig{
					CodeHash: holder.CodeHash.String(),
					HashType: "type",
					Args:     "0xabcd",
				},
				Amount: "1000000",
			},
		},
	}

	gene, err := genesis.NewCustom(config)
	assert.Nil(t, err)

	db, err := lvldb.NewMem()
	assert.Nil(t, err)
	defer db.Close()
	stater := state.NewStater(db)

	_, err = gene.Build(stater)
	assert.Nil(t, err)

	st := stater.NewState()
	holderID, ok, err := st.GetAccountIDByScriptHash(holder.Hash())
	assert.Nil(t, err)
	assert.True(t, ok)
	assert.Equal(t, uint32(2), holderID)

	balance, err := st.GetBalance(genesis.NativeTokenID, holderID)
	assert.Nil(t, err)
	assert.Equal(t, uint256.NewInt(1000000), balance)
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "genesis.yaml")
	content := `
timestamp: 4000
premints:
  - script:
      codeHash: ` + axle.Blake2b([]byte("holder")).String() + `
      hashType: type
      args: "0xabcd"
    amount: "1000000"
`
	assert.Nil(t, os.WriteFile(path, []byte(content), 0o600))

	config, err := genesis.LoadConfig(path)
	assert.Nil(t, err)
	assert.Equal(t, uint64(4000), config.Timestamp)
	assert.Len(t, config.Premints, 1)
	assert.Equal(t, "1000000", config.Premints[0].Amount)

	_, err = genesis.NewCustom(config)
	assert.Nil(t, err)

	// bad amounts and hash types are rejected
	config.Premints[0].Amount = "not-a-number"
	_, err = genesis.NewCustom(config)
	assert.Error(t, err)

	config.Premints[0].Amount = "1"
	config.Premints[0].Script.HashType = "bogus"
	_, err = genesis.NewCustom(config)
	assert.Error(t, err)
}
