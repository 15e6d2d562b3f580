package testutil

import (
	"bytes"
	"strings"

	"github.com/dalemusser/placementhub/internal/app/system/prompt"
)

// Script returns a Prompter that answers with the given lines in order and
// the buffer its output goes to.
func Script(lines ...string) (*prompt.Prompter, *bytes.Buffer) {
	var out bytes.Buffer
	return prompt.New(strings.NewReader(strings.Join(lines, "\n")+"\n"), &out), &out
}
