package testutil

import (
	"io"
)

// ScriptedPrompter feeds a fixed sequence of commands to the shell and then
// reports EOF, standing in for the interactive terminal prompt in tests.
type ScriptedPrompter struct {
	lines []string
	next  int
}

func NewScriptedPrompter(lines ...string) *ScriptedPrompter {
	return &ScriptedPrompter{lines: lines}
}

func (p *ScriptedPrompter) Prompt() (string, error) {
	if p.next >= len(p.lines) {
		return "", io.EOF
	}
	line := p.lines[p.next]
	p.next++
	return line, nil
}
