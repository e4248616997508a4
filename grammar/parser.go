package grammar

import (
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/fatih/color"
)

var flowParser = participle.MustBuild[Program](
	participle.Lexer(FlowLexer),
	participle.Elide("Whitespace", "Comment"),
	participle.UseLookahead(4),
)

// ParseString parses source text (attributed to filename for error
// reporting) into a Program.
func ParseString(filename, source string) (*Program, error) {
	program, err := flowParser.ParseString(filename, source)
	if err != nil {
		return nil, err
	}
	return program, nil
}

// ParseFile reads and parses the composition DSL file at path.
func ParseFile(path string) (*Program, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	program, err := ParseString(path, string(source))
	if err != nil {
		reportParseError(string(source), err)
		return nil, err
	}
	return program, nil
}

// reportParseError prints a friendly caret-style parse error message.
func reportParseError(src string, err error) {
	pe, ok := err.(participle.Error)
	if !ok {
		color.Red("Unexpected error: %s", err)
		return
	}

	pos := pe.Position()
	lines := strings.Split(src, "\n")
	if pos.Line <= 0 || pos.Line > len(lines) {
		color.Red("Syntax error at unknown location: %s", err)
		return
	}

	line := lines[pos.Line-1]
	caret := strings.Repeat(" ", pos.Column-1) + "^"

	color.Red("❌ Syntax error in %s at line %d, column %d:", pos.Filename, pos.Line, pos.Column)
	fmt.Println(line)
	color.HiRed(caret)
	fmt.Printf("→ %s\n", pe.Message())
}
