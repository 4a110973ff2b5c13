package parser

import (
	"testing"

	"github.com/weak-lang/weak/internal/ast"
	"github.com/weak-lang/weak/internal/lexer"
	"github.com/weak-lang/weak/internal/token"
)

func parse(t *testing.T, source string) *ast.Node {
	t.Helper()
	tokens, err := lexer.New(source).Tokenize()
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	program, err := New(tokens, source, "<test>").Parse()
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return program
}

func TestParseLambdaDecl(t *testing.T) {
	program := parse(t, `fun add(a, b) { a+b; }`)
	if len(program.Children) != 1 {
		t.Fatalf("got %d top-level statements, want 1", len(program.Children))
	}
	lambda := program.Children[0]
	if lambda.Kind != ast.Lambda || lambda.Text != "add" {
		t.Fatalf("got %v, want a Lambda named add", lambda)
	}
	if len(lambda.Children) != 2 || lambda.Children[0].Text != "a" || lambda.Children[1].Text != "b" {
		t.Errorf("params = %v, want [a b]", lambda.Children)
	}
}

func TestParseLambdaTrailingCommaRejected(t *testing.T) {
	tokens, err := lexer.New(`fun f(a,) { }`).Tokenize()
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	if _, err := New(tokens, "", "<test>").Parse(); err == nil {
		t.Error("expected a parse error for a trailing comma in the parameter list")
	}
}

// TestPrecedenceLadder confirms comparison binds looser than bitwise/
// logical, which binds looser than shift, then additive, then
// multiplicative, then unary.
func TestPrecedenceLadder(t *testing.T) {
	program := parse(t, `fun main(){ 1+2*3 == 4<<1 & 5; }`)
	stmt := program.Children[0].A.Children[0]
	if stmt.Kind != ast.Binary || stmt.Op != token.EQ {
		t.Fatalf("top operator = %v, want ==", stmt)
	}
	lhs := stmt.A
	if lhs.Kind != ast.Binary || lhs.Op != token.PLUS {
		t.Fatalf("lhs = %v, want a + at the top of the additive level", lhs)
	}
	if lhs.B.Kind != ast.Binary || lhs.B.Op != token.STAR {
		t.Fatalf("rhs of + = %v, want 2*3 bound tighter", lhs.B)
	}
	rhs := stmt.B
	if rhs.Kind != ast.Binary || rhs.Op != token.AMP {
		t.Fatalf("rhs = %v, want & at the bitwise/logical level, binding looser than <<", rhs)
	}
	if rhs.A.Kind != ast.Binary || rhs.A.Op != token.SHL {
		t.Fatalf("lhs of & = %v, want 4<<1 bound tighter", rhs.A)
	}
}

func TestAssignmentIsRightAssociative(t *testing.T) {
	program := parse(t, `fun main(){ a=b=1; }`)
	stmt := program.Children[0].A.Children[0]
	if stmt.Kind != ast.Binary || stmt.Op != token.ASSIGN {
		t.Fatalf("got %v, want a top-level assignment", stmt)
	}
	if stmt.A.Text != "a" {
		t.Errorf("outer lhs = %v, want a", stmt.A)
	}
	inner := stmt.B
	if inner.Kind != ast.Binary || inner.Op != token.ASSIGN || inner.A.Text != "b" {
		t.Errorf("rhs = %v, want a nested b=1 assignment", inner)
	}
}

func TestParseArrayLiteralAndIndex(t *testing.T) {
	program := parse(t, `fun main(){ a=[1,2,3]; a[0]; }`)
	body := program.Children[0].A.Children
	arrayLit := body[0].B
	if arrayLit.Kind != ast.Array || len(arrayLit.Children) != 3 {
		t.Fatalf("got %v, want a 3-element array literal", arrayLit)
	}
	index := body[1]
	if index.Kind != ast.ArrayIndex || index.Text != "a" {
		t.Fatalf("got %v, want ArrayIndex(a)", index)
	}
}

func TestParseFieldAccess(t *testing.T) {
	program := parse(t, `fun main(){ p.x; }`)
	stmt := program.Children[0].A.Children[0]
	if stmt.Kind != ast.FieldAccess || stmt.Text != "p" || stmt.Field() != "x" {
		t.Fatalf("got %v, want FieldAccess(p, x)", stmt)
	}
}

func TestParseTypeDecl(t *testing.T) {
	program := parse(t, `define-type Point(x, y)`)
	decl := program.Children[0]
	if decl.Kind != ast.TypeDefinition || decl.Text != "Point" {
		t.Fatalf("got %v, want TypeDefinition(Point)", decl)
	}
	if len(decl.Fields) != 2 || decl.Fields[0] != "x" || decl.Fields[1] != "y" {
		t.Errorf("fields = %v, want [x y]", decl.Fields)
	}
}

func TestParseNewTypeInstance(t *testing.T) {
	program := parse(t, `fun main(){ p=new Point(1,2); }`)
	stmt := program.Children[0].A.Children[0]
	instance := stmt.B
	if instance.Kind != ast.TypeInstance || instance.Text != "Point" || len(instance.Children) != 2 {
		t.Fatalf("got %v, want TypeInstance(Point, [1 2])", instance)
	}
}

func TestParseForLoopWithEmptyClauses(t *testing.T) {
	program := parse(t, `fun main(){ for(;;){} }`)
	forNode := program.Children[0].A.Children[0]
	if forNode.Kind != ast.For || forNode.A != nil || forNode.B != nil || forNode.C != nil {
		t.Fatalf("got %v, want a For with all three clauses empty", forNode)
	}
}

func TestExpressionStatementRequiresSemicolon(t *testing.T) {
	tokens, err := lexer.New(`fun main(){ 1+1 }`).Tokenize()
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	if _, err := New(tokens, "", "<test>").Parse(); err == nil {
		t.Error("expected a parse error for a missing semicolon after an expression statement")
	}
}

func TestBlockValuedStatementsDoNotRequireSemicolon(t *testing.T) {
	program := parse(t, `fun main(){ if(1){} while(0){} }`)
	body := program.Children[0].A.Children
	if len(body) != 2 || body[0].Kind != ast.If || body[1].Kind != ast.While {
		t.Fatalf("got %v, want [If While]", body)
	}
}
