package lsp

import (
	"github.com/alecthomas/participle/v2/lexer"

	"flowc/grammar"
)

// SemanticToken is one LSP semantic token entry. Line and StartChar are
// 0-based; TokenType indexes SemanticTokenTypes and TokenModifiers is a
// bitmask over SemanticTokenModifiers.
type SemanticToken struct {
	Line           uint32
	StartChar      uint32
	Length         uint32
	TokenType      int
	TokenModifiers int
}

func collectSemanticTokens(program *grammar.Program) []SemanticToken {
	var tokens []SemanticToken
	if program == nil {
		return tokens
	}
	for _, call := range program.Calls {
		tokens = append(tokens, walkServiceCall(call)...)
	}
	return tokens
}

func walkServiceCall(call *grammar.ServiceCallStmt) []SemanticToken {
	var tokens []SemanticToken
	tokens = append(tokens, makeToken(call.Pos, call.Service, "namespace", 0))

	methodPos := call.Pos
	methodPos.Column += len(call.Service) + 1
	tokens = append(tokens, makeToken(methodPos, call.Method, "function", 0))

	for _, arg := range call.Args {
		if arg.Lambda != nil {
			tokens = append(tokens, walkLambda(arg.Lambda)...)
		} else if arg.Expr != nil {
			tokens = append(tokens, walkExpr(arg.Expr)...)
		}
	}
	return tokens
}

func walkLambda(l *grammar.LambdaExpr) []SemanticToken {
	var tokens []SemanticToken
	for _, p := range l.Params {
		tokens = append(tokens, makeToken(p.Pos, p.Name, "parameter", 1))
	}
	tokens = append(tokens, walkExpr(l.Body)...)
	return tokens
}

func walkExpr(e *grammar.Expr) []SemanticToken {
	if e == nil {
		return nil
	}
	var tokens []SemanticToken
	tokens = append(tokens, walkAnd(e.Cond.Left)...)
	for _, r := range e.Cond.Rest {
		tokens = append(tokens, walkAnd(r)...)
	}
	if e.Then != nil {
		tokens = append(tokens, walkExpr(e.Then)...)
	}
	if e.Else != nil {
		tokens = append(tokens, walkExpr(e.Else)...)
	}
	return tokens
}

func walkAnd(a *grammar.AndExpr) []SemanticToken {
	var tokens []SemanticToken
	tokens = append(tokens, walkEquality(a.Left)...)
	for _, r := range a.Rest {
		tokens = append(tokens, walkEquality(r)...)
	}
	return tokens
}

func walkEquality(e *grammar.EqualityExpr) []SemanticToken {
	var tokens []SemanticToken
	tokens = append(tokens, walkRelational(e.Left)...)
	for _, op := range e.Ops {
		tokens = append(tokens, walkRelational(op.Right)...)
	}
	return tokens
}

func walkRelational(r *grammar.RelationalExpr) []SemanticToken {
	var tokens []SemanticToken
	tokens = append(tokens, walkAdditive(r.Left)...)
	for _, op := range r.Ops {
		tokens = append(tokens, walkAdditive(op.Right)...)
	}
	return tokens
}

func walkAdditive(a *grammar.AdditiveExpr) []SemanticToken {
	var tokens []SemanticToken
	tokens = append(tokens, walkMultiplicative(a.Left)...)
	for _, op := range a.Ops {
		tokens = append(tokens, walkMultiplicative(op.Right)...)
	}
	return tokens
}

func walkMultiplicative(m *grammar.MultiplicativeExpr) []SemanticToken {
	var tokens []SemanticToken
	tokens = append(tokens, walkUnary(m.Left)...)
	for _, op := range m.Ops {
		tokens = append(tokens, walkUnary(op.Right)...)
	}
	return tokens
}

func walkUnary(u *grammar.UnaryExpr) []SemanticToken {
	return walkPostfix(u.Value)
}

func walkPostfix(p *grammar.PostfixExpr) []SemanticToken {
	var tokens []SemanticToken
	tokens = append(tokens, walkPrimary(p.Primary)...)
	for _, s := range p.Suffix {
		switch {
		case s.Member != nil:
			tokens = append(tokens, makeToken(s.Member.Pos, s.Member.Name, "property", 0))
			if s.Member.Call != nil {
				for _, a := range s.Member.Call.List {
					tokens = append(tokens, walkExpr(a)...)
				}
			}
		case s.Index != nil:
			tokens = append(tokens, walkExpr(s.Index.Value)...)
		}
	}
	return tokens
}

func walkPrimary(p *grammar.PrimaryExpr) []SemanticToken {
	var tokens []SemanticToken
	switch {
	case p.New != nil:
		tokens = append(tokens, makeToken(p.New.Pos, p.New.Type, "type", 0))
		if p.New.Args != nil {
			for _, a := range p.New.Args.List {
				tokens = append(tokens, walkExpr(a)...)
			}
		}
		for _, b := range p.New.Bindings {
			tokens = append(tokens, makeToken(b.Pos, b.Name, "property", 0))
			tokens = append(tokens, walkExpr(b.Value)...)
		}
	case p.Ident != nil:
		tokens = append(tokens, makeToken(p.Pos, *p.Ident, "variable", 0))
	case p.Parens != nil:
		tokens = append(tokens, walkExpr(p.Parens)...)
	}
	return tokens
}

func makeToken(pos lexer.Position, value, tokenType string, decl int) SemanticToken {
	return SemanticToken{
		Line:           uint32(pos.Line - 1),
		StartChar:      uint32(pos.Column - 1),
		Length:         uint32(len(value)),
		TokenType:      indexOf(tokenType, SemanticTokenTypes),
		TokenModifiers: decl << indexOf("declaration", SemanticTokenModifiers),
	}
}

func indexOf(target string, list []string) int {
	for i, v := range list {
		if v == target {
			return i
		}
	}
	return -1
}
