package chain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minichain-network/minichain/internal/chain"
)

func TestComputeHashDeterministic(t *testing.T) {
	txs := []chain.Transaction{
		{Sender: "alice", Receiver: "bob", Amount: 10},
		{Sender: "bob", Receiver: "carol", Amount: 5},
	}

	first := chain.ComputeHash(7, 1700000000000, txs, "abc123", 42)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, chain.ComputeHash(7, 1700000000000, txs, "abc123", 42))
	}

	require.Len(t, first, 64)
	assert.Regexp(t, "^[0-9a-f]{64}$", first)
}

func TestComputeHashFieldSensitivity(t *testing.T) {
	txs := []chain.Transaction{{Sender: "alice", Receiver: "bob", Amount: 10}}
	base := chain.ComputeHash(1, 1700000000000, txs, "prev", 0)

	assert.NotEqual(t, base, chain.ComputeHash(2, 1700000000000, txs, "prev", 0), "index must be hashed")
	assert.NotEqual(t, base, chain.ComputeHash(1, 1700000000001, txs, "prev", 0), "timestamp must be hashed")
	assert.NotEqual(t, base, chain.ComputeHash(1, 1700000000000, txs, "other", 0), "previous hash must be hashed")
	assert.NotEqual(t, base, chain.ComputeHash(1, 1700000000000, txs, "prev", 1), "nonce must be hashed")

	mutated := []chain.Transaction{{Sender: "alice", Receiver: "bob", Amount: 11}}
	assert.NotEqual(t, base, chain.ComputeHash(1, 1700000000000, mutated, "prev", 0), "transaction amount must be hashed")

	swapped := []chain.Transaction{{Sender: "bob", Receiver: "alice", Amount: 10}}
	assert.NotEqual(t, base, chain.ComputeHash(1, 1700000000000, swapped, "prev", 0), "transaction parties must be hashed")
}

func TestComputeHashTransactionOrder(t *testing.T) {
	a := chain.Transaction{Sender: "alice", Receiver: "bob", Amount: 10}
	b := chain.Transaction{Sender: "bob", Receiver: "carol", Amount: 5}

	ab := chain.ComputeHash(1, 1700000000000, []chain.Transaction{a, b}, "prev", 0)
	ba := chain.ComputeHash(1, 1700000000000, []chain.Transaction{b, a}, "prev", 0)
	assert.NotEqual(t, ab, ba, "transaction sequence order is part of the canonical input")
}

func TestHashBlockMatchesComputeHash(t *testing.T) {
	b := chain.Block{
		Index:        3,
		Timestamp:    1700000000000,
		Transactions: []chain.Transaction{{Sender: "alice", Receiver: "bob", Amount: 1}},
		PrevHash:     "deadbeef",
		Nonce:        9,
	}
	assert.Equal(t, chain.ComputeHash(b.Index, b.Timestamp, b.Transactions, b.PrevHash, b.Nonce), chain.HashBlock(b))
}
