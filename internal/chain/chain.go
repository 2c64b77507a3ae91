package chain

import (
	"context"
	"fmt"
	"math"
)

// Chain is an append-only sequence of hash-linked blocks. It is owned by a
// single writer; there is no internal locking.
type Chain struct {
	miner  Miner
	blocks []Block
}

// New creates a chain holding exactly one genesis block: index 0, no
// transactions, the sentinel previous hash. The genesis block is mined when
// the miner's difficulty is non-zero.
func New(ctx context.Context, miner Miner) (*Chain, error) {
	genesis, err := miner.Build(ctx, 0, nil, GenesisPrevHash)
	if err != nil {
		return nil, fmt.Errorf("failed to build genesis block: %w", err)
	}
	return &Chain{miner: miner, blocks: []Block{genesis}}, nil
}

// FromBlocks reconstructs a chain from a persisted snapshot. The blocks are
// taken as-is; call Validate to check their integrity.
func FromBlocks(miner Miner, blocks []Block) (*Chain, error) {
	if len(blocks) == 0 {
		return nil, fmt.Errorf("snapshot contains no blocks")
	}
	owned := make([]Block, len(blocks))
	copy(owned, blocks)
	return &Chain{miner: miner, blocks: owned}, nil
}

// Append builds a block over the given transactions and pushes it onto the
// chain. The transaction content is not validated. The new block links to
// the current head; its index is the head's index plus one.
func (c *Chain) Append(ctx context.Context, txs []Transaction) (Block, error) {
	head := c.blocks[len(c.blocks)-1]
	if head.Index == math.MaxUint64 {
		return Block{}, fmt.Errorf("block index overflow at %d", head.Index)
	}

	block, err := c.miner.Build(ctx, head.Index+1, txs, head.Hash)
	if err != nil {
		return Block{}, fmt.Errorf("failed to build block %d: %w", head.Index+1, err)
	}

	c.blocks = append(c.blocks, block)
	return block, nil
}

// Validate walks the chain from block 1 and checks, for every block, that
// its stored hash matches the digest recomputed from its own stored fields
// and that its previous hash equals the prior block's stored hash. It does
// not re-check the proof-of-work predicate; a block mined at a lower
// difficulty than the current configuration still validates.
func (c *Chain) Validate() bool {
	for i := 1; i < len(c.blocks); i++ {
		current := c.blocks[i]
		if current.Hash != HashBlock(current) {
			return false
		}
		if current.PrevHash != c.blocks[i-1].Hash {
			return false
		}
	}
	return true
}

// Head returns the most recently appended block.
func (c *Chain) Head() Block {
	return c.blocks[len(c.blocks)-1]
}

// Len returns the number of blocks, genesis included.
func (c *Chain) Len() int {
	return len(c.blocks)
}

// Blocks returns a copy of the block sequence in index order.
func (c *Chain) Blocks() []Block {
	out := make([]Block, len(c.blocks))
	copy(out, c.blocks)
	return out
}

// TransactionCount returns the total number of transactions across all
// blocks.
func (c *Chain) TransactionCount() uint64 {
	var n uint64
	for _, b := range c.blocks {
		n += uint64(len(b.Transactions))
	}
	return n
}
