// Copyright (c) 2026 The Axle developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package chain persists the linear block chain of the engine.
package chain

import (
	"encoding/binary"
	"sync"

	"github.com/ethereum/go-ethereum/rlp"
	lru "github.com/hashicorp/golang-lru"
	"github.com/pkg/errors"

	"github.com/axlechain/axle/axle"
	"github.com/axlechain/axle/block"
	"github.com/axlechain/axle/kv"
)

var (
	blockPrefix  = []byte("b/")
	numberPrefix = []byte("n/")
	bestKey      = []byte("best")
)

var (
	// ErrNotFound returned when the requested block is unknown.
	ErrNotFound = errors.New("chain: not found")
	// ErrInvalidParent returned when an added block does not extend the
	// best block.
	ErrInvalidParent = errors.New("chain: block does not extend best block")
)

// Chain describes the linear chain of settled blocks. There are no forks:
// blocks extend the best block or are rejected.
type Chain struct {
	db kv.GetPutter

	lock sync.RWMutex
	best *block.Block

	blockCache *lru.Cache
}

// New create an instance of Chain. The genesis block is added on first
// open and checked on later opens.
func New(db kv.GetPutter, genesisBlock *block.Block) (*Chain, error) {
	blockCache, _ := lru.New(256)
	c := &Chain{db: db, blockCache: blockCache}

	data, err := db.Get(bestKey)
	if err != nil {
		if !db.IsNotFound(err) {
			return nil, err
		}
		// empty store, settle genesis
		if err := c.saveBlock(genesisBlock); err != nil {
			return nil, err
		}
		if err := db.Put(bestKey, genesisBlock.Header().Hash().Bytes()); err != nil {
			return nil, err
		}
		c.best = genesisBlock
		return c, nil
	}

	storedGenesis, err := c.GetBlockByNumber(0)
	if err != nil {
		return nil, err
	}
	if storedGenesis.Header().Hash() != genesisBlock.Header().Hash() {
		return nil, errors.New("chain: store was initialized with a different genesis")
	}
	best, err := c.GetBlock(axle.BytesToBytes32(data))
	if err != nil {
		return nil, err
	}
	c.best = best
	return c, nil
}

// BestBlock returns the newest settled block.
func (c *Chain) BestBlock() *block.Block {
	c.lock.RLock()
	defer c.lock.RUnlock()
	return c.best
}

// GetBlock returns the block with the given hash.
func (c *Chain) GetBlock(hash axle.Bytes32) (*block.Block, error) {
	if cached, ok := c.blockCache.Get(hash); ok {
		return cached.(*block.Block), nil
	}
	data, err := c.db.Get(append(blockPrefix, hash[:]...))
	if err != nil {
		if c.db.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	var blk block.Block
	if err := rlp.DecodeBytes(data, &blk); err != nil {
		return nil, err
	}
	c.blockCache.Add(hash, &blk)
	return &blk, nil
}

// GetBlockHash returns the hash of the block settled at the given number.
func (c *Chain) GetBlockHash(number uint64) (axle.Bytes32, error) {
	data, err := c.db.Get(numberKey(number))
	if err != nil {
		if c.db.IsNotFound(err) {
			return axle.Bytes32{}, ErrNotFound
		}
		return axle.Bytes32{}, err
	}
	return axle.BytesToBytes32(data), nil
}

// GetBlockByNumber returns the block settled at the given number.
func (c *Chain) GetBlockByNumber(number uint64) (*block.Block, error) {
	hash, err := c.GetBlockHash(number)
	if err != nil {
		return nil, err
	}
	return c.GetBlock(hash)
}

// AddBlock settles a block extending the best block and makes it the new
// best block.
func (c *Chain) AddBlock(blk *block.Block) error {
	c.lock.Lock()
	defer c.lock.Unlock()

	header := blk.Header()
	bestHeader := c.best.Header()
	if header.ParentHash() != bestHeader.Hash() || header.Number() != bestHeader.Number()+1 {
		return ErrInvalidParent
	}
	if err := c.saveBlock(blk); err != nil {
		return err
	}
	if err := c.db.Put(bestKey, header.Hash().Bytes()); err != nil {
		return err
	}
	c.best = blk
	return nil
}

// IsNotFound reports whether the error means a missing block.
func (c *Chain) IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func (c *Chain) saveBlock(blk *block.Block) error {
	data, err := rlp.EncodeToBytes(blk)
	if err != nil {
		return err
	}
	hash := blk.Header().Hash()
	batch := c.db.NewBatch()
	if err := batch.Put(append(blockPrefix, hash[:]...), data); err != nil {
		return err
	}
	if err := batch.Put(numberKey(blk.Header().Number()), hash.Bytes()); err != nil {
		return err
	}
	if err := batch.Write(); err != nil {
		return err
	}
	c.blockCache.Add(hash, blk)
	return nil
}

func numberKey(number uint64) []byte {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], number)
	return append(numberPrefix, b[:]...)
}
