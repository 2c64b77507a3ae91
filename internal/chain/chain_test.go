package chain_test

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minichain-network/minichain/internal/chain"
)

func newTestChain(t *testing.T, difficulty uint) *chain.Chain {
	t.Helper()
	c, err := chain.New(context.Background(), chain.Miner{Difficulty: difficulty})
	require.NoError(t, err)
	return c
}

func TestNewCreatesGenesis(t *testing.T) {
	c := newTestChain(t, 0)

	require.Equal(t, 1, c.Len())
	genesis := c.Head()
	assert.Equal(t, uint64(0), genesis.Index)
	assert.Empty(t, genesis.Transactions)
	assert.Equal(t, chain.GenesisPrevHash, genesis.PrevHash)
	assert.Equal(t, chain.HashBlock(genesis), genesis.Hash)
}

func TestAppendLinksBlocks(t *testing.T) {
	c := newTestChain(t, 0)

	b1, err := c.Append(context.Background(), []chain.Transaction{{Sender: "alice", Receiver: "bob", Amount: 10}})
	require.NoError(t, err)
	b2, err := c.Append(context.Background(), []chain.Transaction{{Sender: "bob", Receiver: "carol", Amount: 5}})
	require.NoError(t, err)

	require.Equal(t, 3, c.Len())
	blocks := c.Blocks()
	assert.Equal(t, uint64(1), b1.Index)
	assert.Equal(t, uint64(2), b2.Index)
	assert.Equal(t, blocks[0].Hash, blocks[1].PrevHash)
	assert.Equal(t, blocks[1].Hash, blocks[2].PrevHash)
	assert.True(t, c.Validate())
	assert.Equal(t, uint64(2), c.TransactionCount())
}

func TestValidateHonestChain(t *testing.T) {
	c := newTestChain(t, 1)
	for i := 0; i < 3; i++ {
		_, err := c.Append(context.Background(), []chain.Transaction{{Sender: "alice", Receiver: "bob", Amount: uint64(i)}})
		require.NoError(t, err)
	}
	assert.True(t, c.Validate())
}

func TestValidateDetectsTampering(t *testing.T) {
	build := func(t *testing.T) []chain.Block {
		c := newTestChain(t, 0)
		_, err := c.Append(context.Background(), []chain.Transaction{{Sender: "alice", Receiver: "bob", Amount: 10}})
		require.NoError(t, err)
		_, err = c.Append(context.Background(), []chain.Transaction{{Sender: "bob", Receiver: "carol", Amount: 5}})
		require.NoError(t, err)
		return c.Blocks()
	}

	cases := map[string]func(blocks []chain.Block){
		"amount":        func(b []chain.Block) { b[1].Transactions[0].Amount = 9999 },
		"sender":        func(b []chain.Block) { b[1].Transactions[0].Sender = "mallory" },
		"receiver":      func(b []chain.Block) { b[1].Transactions[0].Receiver = "mallory" },
		"index":         func(b []chain.Block) { b[1].Index = 7 },
		"timestamp":     func(b []chain.Block) { b[1].Timestamp++ },
		"nonce":         func(b []chain.Block) { b[1].Nonce++ },
		"hash":          func(b []chain.Block) { b[2].Hash = "0000000000000000000000000000000000000000000000000000000000000000" },
		"previous_hash": func(b []chain.Block) { b[2].PrevHash = b[0].Hash },
	}

	for name, tamper := range cases {
		t.Run(name, func(t *testing.T) {
			blocks := build(t)
			// Deep-copy the transaction slice so tampering one case
			// does not leak into the next.
			for i := range blocks {
				txs := make([]chain.Transaction, len(blocks[i].Transactions))
				copy(txs, blocks[i].Transactions)
				blocks[i].Transactions = txs
			}
			tamper(blocks)

			c, err := chain.FromBlocks(chain.Miner{}, blocks)
			require.NoError(t, err)
			assert.False(t, c.Validate())
		})
	}
}

func TestValidateDoesNotRecheckProofOfWork(t *testing.T) {
	// A chain built without mining validates even under a miner configured
	// with a non-zero difficulty: Validate checks integrity and linkage
	// only, never the difficulty predicate.
	plain := newTestChain(t, 0)
	_, err := plain.Append(context.Background(), []chain.Transaction{{Sender: "alice", Receiver: "bob", Amount: 10}})
	require.NoError(t, err)

	reloaded, err := chain.FromBlocks(chain.Miner{Difficulty: 4}, plain.Blocks())
	require.NoError(t, err)
	assert.True(t, reloaded.Validate())
}

func TestFromBlocksRejectsEmptySnapshot(t *testing.T) {
	_, err := chain.FromBlocks(chain.Miner{}, nil)
	require.Error(t, err)
}

func TestAppendIndexOverflow(t *testing.T) {
	head := chain.Block{Index: math.MaxUint64, PrevHash: chain.GenesisPrevHash}
	head.Hash = chain.HashBlock(head)

	c, err := chain.FromBlocks(chain.Miner{}, []chain.Block{head})
	require.NoError(t, err)

	_, err = c.Append(context.Background(), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "overflow")
}

func TestBlocksReturnsCopy(t *testing.T) {
	c := newTestChain(t, 0)
	blocks := c.Blocks()
	blocks[0].Hash = "tampered"
	assert.True(t, c.Validate())
	assert.NotEqual(t, "tampered", c.Head().Hash)
}
