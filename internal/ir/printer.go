package ir

import (
	"fmt"
	"sort"
	"strings"

	"flowc/internal/exprtree"
)

// Print renders every lowered lambda of v as three-address text, one
// instruction per line, lambdas separated by a blank line and ordered by
// each lambda's position so the output is stable across runs.
func Print(v *LVertex) string {
	lambdas := make([]*exprtree.Lambda, 0, len(v.Instructions))
	for l := range v.Instructions {
		lambdas = append(lambdas, l)
	}
	sort.Slice(lambdas, func(i, j int) bool {
		pi, pj := lambdas[i].Pos(), lambdas[j].Pos()
		if pi.File != pj.File {
			return pi.File < pj.File
		}
		if pi.Line != pj.Line {
			return pi.Line < pj.Line
		}
		return pi.Column < pj.Column
	})

	var b strings.Builder
	for idx, l := range lambdas {
		if idx > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "lambda(%s):\n", paramList(l.Params))
		for _, inst := range v.Instructions[l] {
			b.WriteString("  ")
			b.WriteString(inst.String())
			b.WriteString("\n")
		}
	}
	return b.String()
}

func paramList(params []*exprtree.Parameter) string {
	names := make([]string, len(params))
	for i, p := range params {
		names[i] = p.Name
	}
	return strings.Join(names, ", ")
}
