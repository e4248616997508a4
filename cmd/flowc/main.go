// SPDX-License-Identifier: Apache-2.0
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"

	"flowc/internal/config"
	"flowc/internal/ir"
	"flowc/internal/parser"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: flowc <file.flow> [config.yaml]")
		os.Exit(1)
	}

	path := os.Args[1]

	cfg := config.Default()
	if len(os.Args) > 2 {
		loaded, err := config.Load(os.Args[2])
		if err != nil {
			color.Red("Failed to load config: %s", err)
			os.Exit(1)
		}
		cfg = loaded
	}

	graph, err := parser.ParseFile(path)
	if err != nil {
		color.Red("❌ %s", err)
		os.Exit(1)
	}

	if cfg.LogLevel == "debug" {
		fmt.Printf("parsed %d vertices from %s\n", len(graph.Vertices), path)
	}

	evaluator := ir.NewIntrinsicEvaluator()
	builder := ir.NewBuilder(evaluator)
	if err := builder.Build(graph); err != nil {
		color.Red("❌ lowering failed: %s", err)
		os.Exit(1)
	}

	for _, v := range graph.Vertices {
		fmt.Print(ir.Print(v))
	}

	color.Green("✅ Successfully lowered %s", path)
}
