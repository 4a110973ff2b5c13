// Package ast defines the abstract syntax tree produced by the parser.
//
// spec.md §9 flags the original implementation's use of runtime
// polymorphism with dynamic downcasts ("a faithful reimplementation
// should use a tagged sum type: one kind enum, one payload per variant").
// Node follows that redesign directly: a single struct carries a Kind tag
// and every field any variant might need, and callers switch on Kind
// instead of type-asserting through an interface hierarchy. This mirrors
// how the teacher (internal/ast) already replaced DWScript's own
// class-per-node Pascal AST with a Kind + shared fields.
package ast

import "github.com/weak-lang/weak/internal/token"

// Kind tags which AST variant a Node represents.
type Kind int

const (
	Integer Kind = iota
	Float
	String
	Symbol
	Array
	ArrayIndex
	Unary
	Binary
	Block
	If
	While
	For
	Lambda
	Call
	TypeDefinition
	TypeInstance
	FieldAccess
	TypeObject
)

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "UNKNOWN"
}

var kindNames = [...]string{
	Integer: "Integer", Float: "Float", String: "String", Symbol: "Symbol",
	Array: "Array", ArrayIndex: "ArrayIndex", Unary: "Unary", Binary: "Binary",
	Block: "Block", If: "If", While: "While", For: "For", Lambda: "Lambda",
	Call: "Call", TypeDefinition: "TypeDefinition", TypeInstance: "TypeInstance",
	FieldAccess: "FieldAccess", TypeObject: "TypeObject",
}

// Node is a tagged-variant AST node. Nodes are shared via ordinary Go
// pointers: Go's garbage collector already provides the "shared ownership"
// spec.md §3 calls for (the optimizer may redirect one parent's child
// pointer while another parent keeps the old subtree; both stay valid
// until nothing references them), so no explicit reference count is
// needed the way the C++ original uses boost::local_shared_ptr.
//
// Only the fields relevant to Kind are populated; see the per-kind
// constructors below for which fields go with which Kind.
type Node struct {
	Kind Kind
	Pos  token.Position

	// Integer
	IntValue int32
	// Float
	FloatValue float64
	// String, Symbol, ArrayIndex.Name, FieldAccess.Instance, Call.Name,
	// Lambda.Name, TypeDefinition.Name, TypeInstance.TypeName,
	// TypeObject.TypeName
	Text string

	// Array.Elements, Call.Arguments, TypeInstance.Arguments,
	// Lambda.Parameters, Block.Statements
	Children []*Node

	// ArrayIndex.Index, Unary.Operand, Binary.LHS/RHS, If.Cond/Then/Else,
	// While.Cond/Body, For.Init/Cond/Step/Body, Lambda.Body
	A, B, C, D *Node

	// Unary.Op, Binary.Op
	Op token.Kind

	// TypeDefinition.Fields, FieldAccess.Field (as its single element)
	Fields []string

	// TypeObject.FieldNames (ordered, parallel to Children as values)
	FieldNames []string
}

// NewInteger builds an Integer leaf.
func NewInteger(pos token.Position, v int32) *Node { return &Node{Kind: Integer, Pos: pos, IntValue: v} }

// NewFloat builds a Float leaf.
func NewFloat(pos token.Position, v float64) *Node { return &Node{Kind: Float, Pos: pos, FloatValue: v} }

// NewString builds a String leaf.
func NewString(pos token.Position, v string) *Node { return &Node{Kind: String, Pos: pos, Text: v} }

// NewSymbol builds a Symbol leaf naming a binding.
func NewSymbol(pos token.Position, name string) *Node { return &Node{Kind: Symbol, Pos: pos, Text: name} }

// NewArray builds an ordered Array literal.
func NewArray(pos token.Position, elements []*Node) *Node {
	return &Node{Kind: Array, Pos: pos, Children: elements}
}

// NewArrayIndex designates element Index of array Name.
func NewArrayIndex(pos token.Position, name string, index *Node) *Node {
	return &Node{Kind: ArrayIndex, Pos: pos, Text: name, A: index}
}

// NewUnary builds a prefix unary expression (`++ -- - !`).
func NewUnary(pos token.Position, op token.Kind, operand *Node) *Node {
	return &Node{Kind: Unary, Pos: pos, Op: op, A: operand}
}

// NewBinary builds a two-operand expression for any operator in the
// arithmetic/comparison/shift/bitwise/logical/assignment families.
func NewBinary(pos token.Position, op token.Kind, lhs, rhs *Node) *Node {
	return &Node{Kind: Binary, Pos: pos, Op: op, A: lhs, B: rhs}
}

// NewBlock builds an ordered statement sequence with its own scope.
func NewBlock(pos token.Position, statements []*Node) *Node {
	return &Node{Kind: Block, Pos: pos, Children: statements}
}

// NewIf builds a conditional; elseBlock may be nil.
func NewIf(pos token.Position, cond, thenBlock, elseBlock *Node) *Node {
	return &Node{Kind: If, Pos: pos, A: cond, B: thenBlock, C: elseBlock}
}

// NewWhile builds a pre-tested loop.
func NewWhile(pos token.Position, cond, body *Node) *Node {
	return &Node{Kind: While, Pos: pos, A: cond, B: body}
}

// NewFor builds a C-style loop; init, cond, and step may each be nil.
func NewFor(pos token.Position, init, cond, step, body *Node) *Node {
	return &Node{Kind: For, Pos: pos, A: init, B: cond, C: step, D: body}
}

// NewLambda declares a named, first-order top-level function.
func NewLambda(pos token.Position, name string, params []*Node, body *Node) *Node {
	return &Node{Kind: Lambda, Pos: pos, Text: name, Children: params, A: body}
}

// NewCall invokes a built-in or user-defined lambda by name.
func NewCall(pos token.Position, name string, args []*Node) *Node {
	return &Node{Kind: Call, Pos: pos, Text: name, Children: args}
}

// NewTypeDefinition declares a record type and its field names.
func NewTypeDefinition(pos token.Position, name string, fields []string) *Node {
	return &Node{Kind: TypeDefinition, Pos: pos, Text: name, Fields: fields}
}

// NewTypeInstance constructs an instance of a declared record type.
func NewTypeInstance(pos token.Position, typeName string, args []*Node) *Node {
	return &Node{Kind: TypeInstance, Pos: pos, Text: typeName, Children: args}
}

// NewFieldAccess reads a field of a record-typed binding.
func NewFieldAccess(pos token.Position, instance, field string) *Node {
	return &Node{Kind: FieldAccess, Pos: pos, Text: instance, Fields: []string{field}}
}

// Field returns the single field name carried by a FieldAccess node.
func (n *Node) Field() string {
	if len(n.Fields) == 0 {
		return ""
	}
	return n.Fields[0]
}

// NewTypeObject builds a runtime record instance pairing field names with
// evaluated values (parallel slices, in declaration order).
func NewTypeObject(pos token.Position, typeName string, fieldNames []string, values []*Node) *Node {
	return &Node{Kind: TypeObject, Pos: pos, Text: typeName, FieldNames: fieldNames, Children: values}
}

// IsNumeric reports whether n is an Integer or Float leaf.
func (n *Node) IsNumeric() bool {
	return n != nil && (n.Kind == Integer || n.Kind == Float)
}

// IsTruthy implements the language's zero-is-false rule for condition
// evaluation (spec.md §3: "zero ⇒ exit").
func (n *Node) IsTruthy() bool {
	switch n.Kind {
	case Integer:
		return n.IntValue != 0
	case Float:
		return n.FloatValue != 0
	default:
		return false
	}
}

// Clone returns a shallow copy of n with a fresh Node header, for when a
// node must be replaced in a parent's child slot without mutating the
// original.
func (n *Node) Clone() *Node {
	cp := *n
	return &cp
}
