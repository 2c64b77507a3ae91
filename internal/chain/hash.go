package chain

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
)

// ComputeHash returns the canonical SHA-256 digest of a block's fields as a
// lowercase hexadecimal string.
//
// The serialization order is fixed: index, timestamp, nonce, each
// transaction's sender/receiver/amount in sequence order, then the previous
// hash. Integers are fed as their decimal string representation. Changing
// this order or encoding invalidates every previously persisted chain.
func ComputeHash(index uint64, timestamp int64, txs []Transaction, prevHash string, nonce uint64) string {
	h := sha256.New()
	h.Write([]byte(strconv.FormatUint(index, 10)))
	h.Write([]byte(strconv.FormatInt(timestamp, 10)))
	h.Write([]byte(strconv.FormatUint(nonce, 10)))
	for _, tx := range txs {
		h.Write([]byte(tx.Sender))
		h.Write([]byte(tx.Receiver))
		h.Write([]byte(strconv.FormatUint(tx.Amount, 10)))
	}
	h.Write([]byte(prevHash))
	return hex.EncodeToString(h.Sum(nil))
}

// HashBlock recomputes the digest of a block from its stored fields.
func HashBlock(b Block) string {
	return ComputeHash(b.Index, b.Timestamp, b.Transactions, b.PrevHash, b.Nonce)
}
