package grammar

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// FlowLexer tokenizes the demonstration composition DSL: service calls
// whose arguments are a mix of ordinary expressions and quoted lambdas
// (`lambda(x: T): expr`), the textual surface this module's grammar/
// parser give the lowering pass something concrete to run against.
var FlowLexer = lexer.MustStateful(lexer.Rules{
	"Root": {
		{"Comment", `//[^\n]*`, nil},
		{"String", `"(\\"|[^"])*"`, nil},
		{"Ident", `[a-zA-Z_][a-zA-Z0-9_]*`, nil},
		{"Float", `[0-9]+\.[0-9]+`, nil},
		{"Int", `[0-9]+`, nil},
		{"Operator", `(\|\||&&|==|!=|<=|>=|[-+*/%<>=!~?:.,;(){}\[\]])`, nil},
		{"Whitespace", `[ \t\r\n]+`, nil},
	},
})
