package chain

// GenesisPrevHash is the sentinel previous hash carried by block 0.
const GenesisPrevHash = "0"

// Transaction is the payload unit of a block. Identifiers and amounts are
// not validated against any ledger state; amounts may exceed a sender's
// holdings.
type Transaction struct {
	Sender   string `json:"sender"`
	Receiver string `json:"receiver"`
	Amount   uint64 `json:"amount"`
}

// Block is a single entry in the chain. Blocks are never mutated after they
// have been appended.
type Block struct {
	Index     uint64 `json:"index"`
	Timestamp int64  `json:"timestamp"` // milliseconds since epoch
	// Transactions is empty for the genesis block.
	Transactions []Transaction `json:"transactions"`
	PrevHash     string        `json:"previous_hash"`
	// Nonce is 0 when mining is disabled. It is always part of the
	// canonical digest input so that validation never depends on the
	// difficulty the block was built with.
	Nonce uint64 `json:"nonce"`
	Hash  string `json:"hash"`
}
