package chain

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"
)

// MaxDifficulty is the number of hex characters in a SHA-256 digest and
// therefore the largest difficulty that can ever be satisfied.
const MaxDifficulty = 64

// cancelCheckInterval is how many nonce attempts happen between context
// checks during a mining search.
const cancelCheckInterval = 1024

// ErrNonceExhausted is returned when a mining search runs out of nonce
// space or exceeds its configured attempt bound.
var ErrNonceExhausted = fmt.Errorf("mining: nonce space exhausted")

// Miner builds blocks. With Difficulty 0 a block is hashed exactly once;
// otherwise Build searches the nonce space until the digest carries the
// required number of leading zero characters.
type Miner struct {
	// Difficulty is the required count of leading '0' hex characters.
	Difficulty uint
	// MaxAttempts bounds the nonce search. 0 means unbounded, which is
	// the default and makes Build block the caller until a nonce is
	// found or ctx is cancelled.
	MaxAttempts uint64
	// Progress, when set, is called periodically with the number of
	// attempts made so far.
	Progress func(attempts uint64)
}

// Build constructs a block over the given payload. The wall clock is read
// once, before the first attempt; every nonce is tried against the same
// timestamp. Nonces are tried from 0 ascending, so the returned block
// carries the smallest satisfying nonce.
func (m Miner) Build(ctx context.Context, index uint64, txs []Transaction, prevHash string) (Block, error) {
	if txs == nil {
		// Keep the serialized form an empty list rather than null.
		txs = []Transaction{}
	}
	b := Block{
		Index:        index,
		Timestamp:    time.Now().UnixMilli(),
		Transactions: txs,
		PrevHash:     prevHash,
	}

	if m.Difficulty == 0 {
		b.Hash = HashBlock(b)
		return b, nil
	}

	prefix := strings.Repeat("0", int(m.Difficulty))
	for nonce := uint64(0); ; nonce++ {
		b.Nonce = nonce
		b.Hash = HashBlock(b)
		if strings.HasPrefix(b.Hash, prefix) {
			return b, nil
		}

		attempts := nonce + 1
		if m.MaxAttempts > 0 && attempts >= m.MaxAttempts {
			return Block{}, ErrNonceExhausted
		}
		if nonce == math.MaxUint64 {
			return Block{}, ErrNonceExhausted
		}
		if attempts%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return Block{}, err
			}
			if m.Progress != nil {
				m.Progress(attempts)
			}
		}
	}
}
