package main

import (
	"github.com/minichain-network/minichain/cmd/minichain"
)

func main() {
	minichain.Execute()
}
