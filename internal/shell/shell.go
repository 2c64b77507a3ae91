package shell

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/manifoldco/promptui"
	"github.com/pkg/errors"
	"github.com/pterm/pterm"

	"github.com/minichain-network/minichain/internal/chain"
	"github.com/minichain-network/minichain/internal/metrics"
	"github.com/minichain-network/minichain/internal/snapshot"
)

const usage = `Commands:
  add <sender> <receiver> <amount>  append a block with one transaction
  view                              list all blocks
  validate                          check chain integrity
  help                              show this help
  exit                              leave the shell`

// Shell is the interactive command loop. It is the chain's only writer: the
// chain value is owned here and handed to no one else.
type Shell struct {
	chain    *chain.Chain
	store    snapshot.Store
	prompter Prompter
	metrics  *metrics.Metrics
}

func New(c *chain.Chain, store snapshot.Store, prompter Prompter, m *metrics.Metrics) *Shell {
	return &Shell{
		chain:    c,
		store:    store,
		prompter: prompter,
		metrics:  m,
	}
}

// Run reads and dispatches commands until exit, EOF, interrupt, or context
// cancellation. Input errors never mutate the chain; snapshot save errors
// are reported and the in-memory chain is kept.
func (s *Shell) Run(ctx context.Context) error {
	pterm.Println(usage)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		line, err := s.prompter.Prompt()
		switch {
		case err == nil:
		case errors.Is(err, promptui.ErrInterrupt), errors.Is(err, promptui.ErrEOF), errors.Is(err, io.EOF):
			pterm.Info.Println("Goodbye!")
			return nil
		default:
			return errors.WithMessage(err, "failed to read command")
		}

		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "add":
			s.handleAdd(ctx, fields[1:])
		case "view":
			s.handleView()
		case "validate":
			s.handleValidate()
		case "help":
			pterm.Println(usage)
		case "exit":
			pterm.Info.Println("Goodbye!")
			return nil
		default:
			pterm.Error.Printfln("Unknown command %q", fields[0])
			pterm.Println(usage)
		}
	}
}

func (s *Shell) handleAdd(ctx context.Context, args []string) {
	if len(args) != 3 {
		pterm.Error.Println("Usage: add <sender> <receiver> <amount>")
		return
	}

	amount, err := strconv.ParseUint(args[2], 10, 64)
	if err != nil {
		pterm.Error.Printfln("Invalid amount %q: must be a non-negative integer", args[2])
		return
	}

	tx := chain.Transaction{Sender: args[0], Receiver: args[1], Amount: amount}
	block, err := s.chain.Append(ctx, []chain.Transaction{tx})
	if err != nil {
		pterm.Error.Printfln("Failed to append block: %v", err)
		return
	}

	s.metrics.ObserveAppend(block.Index, len(block.Transactions), block.Nonce)

	// Persist after every successful append. A failed save is surfaced
	// but never rolls back the in-memory chain.
	if err := s.store.Save(ctx, s.chain.Blocks()); err != nil {
		slog.Error("Failed to save snapshot", "error", err)
		pterm.Warning.Printfln("Block %d appended but snapshot save failed: %v", block.Index, err)
		return
	}

	pterm.Success.Printfln("Block %d appended (hash %s)", block.Index, block.Hash)
}

func (s *Shell) handleView() {
	for _, block := range s.chain.Blocks() {
		box := pterm.DefaultBox.WithTitle(fmt.Sprintf("Block #%d", block.Index))
		box.Println(formatBlock(block))
	}
}

func (s *Shell) handleValidate() {
	if s.chain.Validate() {
		pterm.Success.Printfln("Chain is valid (%d blocks)", s.chain.Len())
	} else {
		pterm.Error.Println("Chain is INVALID: a block was tampered with or a link is broken")
	}
}

func formatBlock(block chain.Block) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Timestamp:     %s\n", time.UnixMilli(block.Timestamp).UTC().Format(time.RFC3339))
	if len(block.Transactions) == 0 {
		sb.WriteString("Transactions:  (none)\n")
	} else {
		sb.WriteString("Transactions:\n")
		for _, tx := range block.Transactions {
			fmt.Fprintf(&sb, "  %s -> %s: %d\n", tx.Sender, tx.Receiver, tx.Amount)
		}
	}
	fmt.Fprintf(&sb, "Nonce:         %d\n", block.Nonce)
	fmt.Fprintf(&sb, "Previous Hash: %s\n", block.PrevHash)
	fmt.Fprintf(&sb, "Hash:          %s", block.Hash)
	return sb.String()
}
