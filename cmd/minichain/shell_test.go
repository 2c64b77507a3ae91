package minichain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	minichain "github.com/minichain-network/minichain/cmd/minichain"
)

func TestShellCmd(t *testing.T) {
	// A difficulty beyond the digest length is rejected before the shell
	// starts.
	_, err := executeCommand(minichain.RootCmd, "shell", "json", "--logLevel", "info", "--difficulty", "65")
	assert.Error(t, err)
	assert.ErrorContains(t, err, "exceeds the digest length")

	// Show help
	output, err := executeCommand(minichain.RootCmd, "shell")
	assert.NoError(t, err)
	assert.Contains(t, output, "Start the interactive ledger shell")
}
