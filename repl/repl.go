// SPDX-License-Identifier: Apache-2.0
package repl

import (
	"bufio"
	"fmt"
	"io"

	"flowc/internal/ir"
	"flowc/internal/parser"
)

const PROMPT = ">> "

// Start runs an interactive read-lower-print loop: each line is treated as
// one complete statement of the composition DSL, parsed into a graph, and
// lowered. A line that parses but fails to lower prints its error
// and keeps the session open rather than exiting.
func Start(in io.Writer, out io.Writer, reader io.Reader) {
	scanner := bufio.NewScanner(reader)
	evaluator := ir.NewIntrinsicEvaluator()

	for {
		fmt.Fprint(in, PROMPT)
		if !scanner.Scan() {
			return
		}

		line := scanner.Text()
		if line == "" {
			continue
		}

		graph, err := parser.ParseString("<repl>", line)
		if err != nil {
			fmt.Fprintf(out, "parse error: %s\n", err)
			continue
		}

		builder := ir.NewBuilder(evaluator)
		if err := builder.Build(graph); err != nil {
			fmt.Fprintf(out, "lowering error: %s\n", err)
			continue
		}

		for _, v := range graph.Vertices {
			fmt.Fprint(out, ir.Print(v))
		}
	}
}
