package repl_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"flowc/repl"
)

func TestStartLowersEachLine(t *testing.T) {
	var prompt, out bytes.Buffer
	in := strings.NewReader("Ledger.credit(lambda(account: Int64, amount: Int64): account + amount);\n")

	repl.Start(&prompt, &out, in)

	assert.Contains(t, out.String(), "lambda(")
	assert.Contains(t, out.String(), "Add")
}

func TestStartReportsParseErrorsWithoutExiting(t *testing.T) {
	var prompt, out bytes.Buffer
	in := strings.NewReader("Ledger.credit(\nLedger.credit(amount);\n")

	repl.Start(&prompt, &out, in)

	assert.Contains(t, out.String(), "parse error")
	// One prompt per line read plus the final prompt before EOF: the loop
	// kept going after the parse error.
	assert.Equal(t, strings.Repeat(repl.PROMPT, 3), prompt.String())
}
