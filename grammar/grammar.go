// Package grammar is a participle-based lexer and grammar for a small
// textual DSL used to demonstrate the lowering pass end to end. It is not,
// and does not attempt to be, a production composition-service frontend —
// it exists only so cmd/flowc, the REPL and the LSP server have real
// source text to parse and lower.
package grammar

import "github.com/alecthomas/participle/v2/lexer"

// Program is a sequence of top-level service-call statements.
type Program struct {
	Calls []*ServiceCallStmt `@@*`
}

// ServiceCallStmt names the service and method a vertex originates from,
// mirroring exprtree.ServiceCall.
type ServiceCallStmt struct {
	Pos     lexer.Position
	Service string  `@Ident "."`
	Method  string  `@Ident "("`
	Args    []*Arg  `[ @@ { "," @@ } ] ")" ";"`
}

// Arg is either a quoted lambda or an ordinary value expression.
type Arg struct {
	Pos    lexer.Position
	Lambda *LambdaExpr `  @@`
	Expr   *Expr       `| @@`
}

// LambdaExpr is the DSL's only way to spell a Quote-wrapped Lambda; the
// parser always wraps its result in an exprtree.Quote, never leaving a
// bare Lambda as a call argument.
type LambdaExpr struct {
	Pos    lexer.Position
	Params []*Param `"lambda" "(" [ @@ { "," @@ } ] ")" ":"`
	Body   *Expr    `@@`
}

// Param is one lambda parameter, `name: Type`.
type Param struct {
	Pos  lexer.Position
	Name string `@Ident ":"`
	Type string `@Ident`
}

// Expr is the top of the precedence chain: the ternary conditional.
type Expr struct {
	Pos         lexer.Position
	Cond        *OrExpr `@@`
	Then        *Expr   `[ "?" @@`
	Else        *Expr   `  ":" @@ ]`
}

type OrExpr struct {
	Pos   lexer.Position
	Left  *AndExpr   `@@`
	Rest  []*AndExpr `{ "||" @@ }`
}

type AndExpr struct {
	Pos  lexer.Position
	Left *EqualityExpr   `@@`
	Rest []*EqualityExpr `{ "&&" @@ }`
}

type EqualityExpr struct {
	Pos  lexer.Position
	Left *RelationalExpr `@@`
	Ops  []*EqualityOp   `{ @@ }`
}

type EqualityOp struct {
	Op    string          `@("==" | "!=")`
	Right *RelationalExpr `@@`
}

type RelationalExpr struct {
	Pos  lexer.Position
	Left *AdditiveExpr `@@`
	Ops  []*RelationalOp `{ @@ }`
}

type RelationalOp struct {
	Op    string        `@("<=" | ">=" | "<" | ">")`
	Right *AdditiveExpr `@@`
}

type AdditiveExpr struct {
	Pos  lexer.Position
	Left *MultiplicativeExpr   `@@`
	Ops  []*AdditiveOp         `{ @@ }`
}

type AdditiveOp struct {
	Op    string              `@("+" | "-")`
	Right *MultiplicativeExpr `@@`
}

type MultiplicativeExpr struct {
	Pos  lexer.Position
	Left *UnaryExpr          `@@`
	Ops  []*MultiplicativeOp `{ @@ }`
}

type MultiplicativeOp struct {
	Op    string     `@("*" | "/" | "%")`
	Right *UnaryExpr `@@`
}

// UnaryExpr covers negation, logical not, and bitwise complement.
type UnaryExpr struct {
	Pos      lexer.Position
	Operator *string      `[ @("-" | "!" | "~") ]`
	Value    *PostfixExpr `@@`
}

// PostfixExpr is a primary expression followed by zero or more member
// access, method call, or index suffixes.
type PostfixExpr struct {
	Pos     lexer.Position
	Primary *PrimaryExpr `@@`
	Suffix  []*Suffix    `{ @@ }`
}

// Suffix is one `.name`, `.name(args)`, or `[expr]` postfix operator.
type Suffix struct {
	Pos    lexer.Position
	Member *MemberSuffix `  @@`
	Index  *IndexSuffix  `| @@`
}

// MemberSuffix is `.name` (a MemberAccess) optionally followed by a call
// argument list (making it a MethodCall instead).
type MemberSuffix struct {
	Pos  lexer.Position
	Name string `"." @Ident`
	Call *Args  `[ @@ ]`
}

// IndexSuffix is `[expr]`, lowering to an exprtree.Index with an empty Name.
type IndexSuffix struct {
	Pos   lexer.Position
	Value *Expr `"[" @@ "]"`
}

// Args is a parenthesized, comma-separated argument list for a method or
// constructor call.
type Args struct {
	Pos  lexer.Position
	List []*Expr `"(" [ @@ { "," @@ } ] ")"`
}

// PrimaryExpr is a literal, a parenthesized expression, a constructor
// expression, or a bare identifier (a parameter reference or the start of
// a closed member-access chain).
type PrimaryExpr struct {
	Pos    lexer.Position
	New    *NewExpr `  @@`
	Float  *float64 `| @Float`
	Int    *int64   `| @Int`
	String *string  `| @String`
	Bool   *string  `| @("true" | "false")`
	Ident  *string  `| @Ident`
	Parens *Expr    `| "(" @@ ")"`
}

// NewExpr is `new Type(args)`, optionally followed by an object
// initializer `{ name = expr, ... }` (exprtree.New / MemberInit).
type NewExpr struct {
	Pos      lexer.Position
	Type     string           `"new" @Ident`
	Args     *Args            `@@`
	Bindings []*MemberBinding `[ "{" @@ { "," @@ } "}" ]`
}

// MemberBinding is one `name = expr` pair inside a NewExpr's initializer
// list.
type MemberBinding struct {
	Pos   lexer.Position
	Name  string `@Ident "="`
	Value *Expr  `@@`
}
