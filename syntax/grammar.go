// Copyright 2024 The Shadowfree Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package syntax

// This file declares the concrete grammar. The g-prefixed types are
// populated by participle and converted into the public tree by parse.go.

import (
	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

var jsLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Comment", Pattern: `//[^\n]*|/\*(?s:.*?)\*/`},
	{Name: "Whitespace", Pattern: `\s+`},
	{Name: "String", Pattern: `"(?:\\.|[^"\\\n])*"|'(?:\\.|[^'\\\n])*'`},
	{Name: "Number", Pattern: `(?:\d+\.?\d*|\.\d+)(?:[eE][-+]?\d+)?`},
	// Keyword never matches input; keywordMapper retypes Ident tokens.
	{Name: "Keyword", Pattern: `[^\s\S]`},
	{Name: "Ident", Pattern: `[a-zA-Z_$][a-zA-Z0-9_$]*`},
	{Name: "Punct", Pattern: `>>>=|===|!==|\.\.\.|>>>|\*\*=|<<=|>>=|&&=|\|\|=|\?\?=|=>|==|!=|<=|>=|&&|\|\||\?\?|\+\+|--|\+=|-=|\*=|/=|%=|&=|\|=|\^=|\*\*|<<|>>|[-+*/%=<>!~&|^?:;,.(){}\[\]]`},
})

var keywordType = jsLexer.Symbols()["Keyword"]

// keywords is the set of reserved words that may not be used as
// identifiers. Contextual words such as "of" and "static" are omitted.
var keywords = map[string]bool{
	"break": true, "case": true, "catch": true, "class": true,
	"const": true, "continue": true, "debugger": true, "default": true,
	"delete": true, "do": true, "else": true, "export": true,
	"extends": true, "false": true, "finally": true, "for": true,
	"function": true, "if": true, "import": true, "in": true,
	"instanceof": true, "let": true, "new": true, "null": true,
	"return": true, "super": true, "switch": true, "this": true,
	"throw": true, "true": true, "try": true, "typeof": true,
	"var": true, "void": true, "while": true, "with": true,
	"yield": true,
}

func keywordMapper(t lexer.Token) (lexer.Token, error) {
	if keywords[t.Value] {
		t.Type = keywordType
	}
	return t, nil
}

var parser = participle.MustBuild[gProgram](
	participle.Lexer(jsLexer),
	participle.Elide("Comment", "Whitespace"),
	participle.Map(keywordMapper, "Ident"),
	participle.UseLookahead(64),
)

type gProgram struct {
	Pos    lexer.Position
	EndPos lexer.Position

	Stmts []*gStmt `parser:"@@*"`
}

type gIdent struct {
	Pos  lexer.Position
	Name string `parser:"@Ident"`
}

type gStmt struct {
	Pos    lexer.Position
	EndPos lexer.Position

	Var    *gVarDecl  `parser:"  @@ \";\"?"`
	Func   *gFunction `parser:"| @@"`
	Class  *gClass    `parser:"| @@"`
	Try    *gTry      `parser:"| @@"`
	If     *gIf       `parser:"| @@"`
	For    *gFor      `parser:"| @@"`
	While  *gWhile    `parser:"| @@"`
	Do     *gDo       `parser:"| @@ \";\"?"`
	Return *gReturn   `parser:"| @@"`
	Branch string     `parser:"| @(\"break\" | \"continue\") \";\"?"`
	Throw  *gThrow    `parser:"| @@"`
	Block  *gBlock    `parser:"| @@"`
	Empty  bool       `parser:"| @\";\""`
	Expr   *gExpr     `parser:"| @@ \";\"?"`
}

type gVarDecl struct {
	Pos    lexer.Position
	EndPos lexer.Position

	Kind string         `parser:"@(\"var\" | \"let\" | \"const\")"`
	List []*gDeclarator `parser:"@@ ( \",\" @@ )*"`
}

type gDeclarator struct {
	Pos    lexer.Position
	EndPos lexer.Position

	Name *gIdent  `parser:"@@"`
	Init *gAssign `parser:"( \"=\" @@ )?"`
}

type gFunction struct {
	Pos    lexer.Position
	EndPos lexer.Position

	Name *gIdent    `parser:"\"function\" @@?"`
	Tail *gFuncTail `parser:"@@"`
}

type gFuncTail struct {
	Pos    lexer.Position
	EndPos lexer.Position

	Params []*gParam `parser:"\"(\" ( @@ ( \",\" @@ )* )? \")\""`
	Body   *gBlock   `parser:"@@"`
}

type gParam struct {
	Pos    lexer.Position
	EndPos lexer.Position

	Rest    bool     `parser:"@\"...\"?"`
	Name    *gIdent  `parser:"@@"`
	Default *gAssign `parser:"( \"=\" @@ )?"`
}

type gClass struct {
	Pos    lexer.Position
	EndPos lexer.Position

	Name    *gIdent    `parser:"\"class\" @@?"`
	Extends *gCall     `parser:"( \"extends\" @@ )?"`
	Methods []*gMethod `parser:"\"{\" ( @@ | \";\" )* \"}\""`
}

type gMethod struct {
	Pos    lexer.Position
	EndPos lexer.Position

	Static bool       `parser:"@\"static\"?"`
	Key    string     `parser:"@(Ident | Keyword | String | Number)"`
	Tail   *gFuncTail `parser:"@@"`
}

type gTry struct {
	Pos    lexer.Position
	EndPos lexer.Position

	Body    *gBlock `parser:"\"try\" @@"`
	Catch   *gCatch `parser:"@@?"`
	Finally *gBlock `parser:"( \"finally\" @@ )?"`
}

type gCatch struct {
	Pos    lexer.Position
	EndPos lexer.Position

	Param *gIdent `parser:"\"catch\" ( \"(\" @@ \")\" )?"`
	Body  *gBlock `parser:"@@"`
}

type gIf struct {
	Pos    lexer.Position
	EndPos lexer.Position

	Cond *gExpr `parser:"\"if\" \"(\" @@ \")\""`
	Then *gStmt `parser:"@@"`
	Else *gStmt `parser:"( \"else\" @@ )?"`
}

type gFor struct {
	Pos    lexer.Position
	EndPos lexer.Position

	In      *gForIn      `parser:"\"for\" \"(\" ( @@"`
	Classic *gForClassic `parser:"          | @@ ) \")\""`
	Body    *gStmt       `parser:"@@"`
}

type gForIn struct {
	Kind   string `parser:"@(\"var\" | \"let\" | \"const\")?"`
	Target *gCall `parser:"@@"`
	Op     string `parser:"@(\"in\" | \"of\")"`
	X      *gExpr `parser:"@@"`
}

type gForClassic struct {
	Var  *gVarDecl `parser:"( @@"`
	Init *gExpr    `parser:"| @@ )? \";\""`
	Cond *gExpr    `parser:"@@? \";\""`
	Post *gExpr    `parser:"@@?"`
}

type gWhile struct {
	Pos    lexer.Position
	EndPos lexer.Position

	Cond *gExpr `parser:"\"while\" \"(\" @@ \")\""`
	Body *gStmt `parser:"@@"`
}

type gDo struct {
	Pos    lexer.Position
	EndPos lexer.Position

	Body *gStmt `parser:"\"do\" @@"`
	Cond *gExpr `parser:"\"while\" \"(\" @@ \")\""`
}

type gReturn struct {
	Pos    lexer.Position
	EndPos lexer.Position

	Result *gExpr `parser:"\"return\" @@? \";\"?"`
}

type gThrow struct {
	Pos    lexer.Position
	EndPos lexer.Position

	X *gExpr `parser:"\"throw\" @@ \";\"?"`
}

type gBlock struct {
	Pos    lexer.Position
	EndPos lexer.Position

	Stmts []*gStmt `parser:"\"{\" @@* \"}\""`
}

type gExpr struct {
	Pos    lexer.Position
	EndPos lexer.Position

	List []*gAssign `parser:"@@ ( \",\" @@ )*"`
}

type gAssign struct {
	Pos    lexer.Position
	EndPos lexer.Position

	Arrow *gArrow  `parser:"  @@"`
	Cond  *gCond   `parser:"| @@ ("`
	Op    string   `parser:"    @(\"=\" | \"+=\" | \"-=\" | \"*=\" | \"/=\" | \"%=\" | \"**=\" | \"<<=\" | \">>=\" | \">>>=\" | \"&=\" | \"|=\" | \"^=\" | \"&&=\" | \"||=\" | \"??=\")"`
	RHS   *gAssign `parser:"    @@ )?"`
}

type gArrow struct {
	Pos    lexer.Position
	EndPos lexer.Position

	Single *gIdent   `parser:"( @@"`
	Params []*gParam `parser:"| \"(\" ( @@ ( \",\" @@ )* )? \")\" ) \"=>\""`
	Body   *gBlock   `parser:"( @@"`
	Result *gAssign  `parser:"| @@ )"`
}

type gCond struct {
	Pos    lexer.Position
	EndPos lexer.Position

	X     *gBinary `parser:"@@"`
	True  *gAssign `parser:"( \"?\" @@"`
	False *gAssign `parser:"  \":\" @@ )?"`
}

type gBinary struct {
	Pos    lexer.Position
	EndPos lexer.Position

	X    *gUnary      `parser:"@@"`
	Tail []*gBinaryOp `parser:"@@*"`
}

type gBinaryOp struct {
	Op string  `parser:"@(\"||\" | \"&&\" | \"??\" | \"===\" | \"!==\" | \"==\" | \"!=\" | \"<=\" | \">=\" | \"<<\" | \">>>\" | \">>\" | \"<\" | \">\" | \"+\" | \"-\" | \"**\" | \"*\" | \"/\" | \"%\" | \"&\" | \"|\" | \"^\" | \"instanceof\" | \"in\")"`
	Y  *gUnary `parser:"@@"`
}

type gUnary struct {
	Pos    lexer.Position
	EndPos lexer.Position

	Op      string    `parser:"  @(\"!\" | \"~\" | \"+\" | \"-\" | \"++\" | \"--\" | \"typeof\" | \"void\" | \"delete\")"`
	X       *gUnary   `parser:"  @@"`
	Postfix *gPostfix `parser:"| @@"`
}

type gPostfix struct {
	Pos    lexer.Position
	EndPos lexer.Position

	X  *gCall `parser:"@@"`
	Op string `parser:"@(\"++\" | \"--\")?"`
}

type gCall struct {
	Pos    lexer.Position
	EndPos lexer.Position

	New    bool       `parser:"@\"new\"?"`
	X      *gPrimary  `parser:"@@"`
	Suffix []*gSuffix `parser:"@@*"`
}

type gSuffix struct {
	Pos    lexer.Position
	EndPos lexer.Position

	Dot   string  `parser:"  \".\" @(Ident | Keyword)"`
	Index *gExpr  `parser:"| \"[\" @@ \"]\""`
	Args  *gArgs  `parser:"| @@"`
}

type gArgs struct {
	List []*gArg `parser:"\"(\" ( @@ ( \",\" @@ )* )? \")\""`
}

type gArg struct {
	Pos    lexer.Position
	EndPos lexer.Position

	Spread bool     `parser:"@\"...\"?"`
	X      *gAssign `parser:"@@"`
}

type gPrimary struct {
	Pos    lexer.Position
	EndPos lexer.Position

	Func   *gFunction `parser:"  @@"`
	Class  *gClass    `parser:"| @@"`
	Number string     `parser:"| @Number"`
	String string     `parser:"| @String"`
	Word   string     `parser:"| @(\"this\" | \"null\" | \"true\" | \"false\" | \"super\")"`
	Ident  *gIdent    `parser:"| @@"`
	Paren  *gExpr     `parser:"| \"(\" @@ \")\""`
	Array  *gArray    `parser:"| @@"`
	Object *gObject   `parser:"| @@"`
}

type gArray struct {
	List []*gArg `parser:"\"[\" ( @@ ( \",\" @@ )* \",\"? )? \"]\""`
}

type gObject struct {
	Props []*gProp `parser:"\"{\" ( @@ ( \",\" @@ )* \",\"? )? \"}\""`
}

type gProp struct {
	Pos    lexer.Position
	EndPos lexer.Position

	Key    string     `parser:"@(Ident | Keyword | String | Number)"`
	Value  *gAssign   `parser:"( \":\" @@"`
	Method *gFuncTail `parser:"| @@ )?"`
}
