package shell

import (
	"github.com/manifoldco/promptui"
)

// Prompter reads one line of user input per call. An io.EOF or interrupt
// from the underlying terminal ends the shell loop.
type Prompter interface {
	Prompt() (string, error)
}

// TerminalPrompter is the interactive promptui-backed Prompter.
type TerminalPrompter struct {
	prompt promptui.Prompt
}

func NewTerminalPrompter() *TerminalPrompter {
	return &TerminalPrompter{
		prompt: promptui.Prompt{Label: "minichain"},
	}
}

func (p *TerminalPrompter) Prompt() (string, error) {
	return p.prompt.Run()
}
