package snapshot

import (
	"context"

	"github.com/minichain-network/minichain/internal/chain"
)

// Store persists and restores complete chain snapshots. Save replaces the
// previous snapshot wholesale; there is no partial-write recovery.
type Store interface {
	// Save writes the full block sequence. The in-memory chain is never
	// touched; a failed save leaves the caller's state intact.
	Save(ctx context.Context, blocks []chain.Block) error
	// Load returns the persisted block sequence in index order, or a nil
	// slice when no snapshot exists.
	Load(ctx context.Context) ([]chain.Block, error)
	Close() error
}
