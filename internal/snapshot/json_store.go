package snapshot

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/minichain-network/minichain/internal/chain"
)

// document is the on-disk snapshot layout.
type document struct {
	Blocks []chain.Block `json:"blocks"`
}

// JSONStore persists the chain as a single JSON document on the local
// filesystem.
type JSONStore struct {
	path string
}

func NewJSONStore(path string) (*JSONStore, error) {
	if path == "" {
		return nil, errors.New("missing snapshot file path")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, errors.WithMessage(err, "failed to create snapshot directory")
		}
	}
	return &JSONStore{path: path}, nil
}

func (s *JSONStore) Save(_ context.Context, blocks []chain.Block) error {
	data, err := json.MarshalIndent(document{Blocks: blocks}, "", "  ")
	if err != nil {
		return errors.WithMessage(err, "failed to encode snapshot")
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return errors.WithMessage(err, "failed to write snapshot file")
	}
	return nil
}

func (s *JSONStore) Load(_ context.Context) ([]chain.Block, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil // no prior state
		}
		return nil, errors.WithMessage(err, "failed to read snapshot file")
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errors.WithMessage(err, "failed to decode snapshot file")
	}
	return doc.Blocks, nil
}

func (s *JSONStore) Close() error {
	// No resources to close for file snapshots
	return nil
}
