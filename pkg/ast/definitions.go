package ast

import "quetite/interpreter-go/pkg/lexer"

// Constructors used by the parser. Every node records the span it was
// parsed from so runtime errors can point back into the source.

func NewNullLiteral(span lexer.Span) *NullLiteral {
	return &NullLiteral{nodeImpl: nodeImpl{Type: NodeNullLiteral, Loc: span}}
}

func NewBoolLiteral(span lexer.Span, value bool) *BoolLiteral {
	return &BoolLiteral{nodeImpl: nodeImpl{Type: NodeBoolLiteral, Loc: span}, Value: value}
}

func NewNumLiteral(span lexer.Span, value float64) *NumLiteral {
	return &NumLiteral{nodeImpl: nodeImpl{Type: NodeNumLiteral, Loc: span}, Value: value}
}

func NewStrLiteral(span lexer.Span, value string) *StrLiteral {
	return &StrLiteral{nodeImpl: nodeImpl{Type: NodeStrLiteral, Loc: span}, Value: value}
}

func NewListLiteral(span lexer.Span, elements []Expression) *ListLiteral {
	return &ListLiteral{nodeImpl: nodeImpl{Type: NodeListLiteral, Loc: span}, Elements: elements}
}

func NewDictLiteral(span lexer.Span, entries []DictEntry) *DictLiteral {
	return &DictLiteral{nodeImpl: nodeImpl{Type: NodeDictLiteral, Loc: span}, Entries: entries}
}

func NewIdentifier(span lexer.Span, name string) *Identifier {
	return &Identifier{nodeImpl: nodeImpl{Type: NodeIdentifier, Loc: span}, Name: name}
}

func NewSelfExpression(span lexer.Span) *SelfExpression {
	return &SelfExpression{nodeImpl: nodeImpl{Type: NodeSelfExpression, Loc: span}}
}

func NewUnaryExpression(span lexer.Span, op string, right Expression) *UnaryExpression {
	return &UnaryExpression{nodeImpl: nodeImpl{Type: NodeUnaryExpression, Loc: span}, Op: op, Right: right}
}

func NewBinaryExpression(span lexer.Span, op string, left, right Expression) *BinaryExpression {
	return &BinaryExpression{nodeImpl: nodeImpl{Type: NodeBinaryExpression, Loc: span}, Op: op, Left: left, Right: right}
}

func NewLogicalExpression(span lexer.Span, op string, left, right Expression) *LogicalExpression {
	return &LogicalExpression{nodeImpl: nodeImpl{Type: NodeLogicalExpr, Loc: span}, Op: op, Left: left, Right: right}
}

func NewTernaryExpression(span lexer.Span, cond, then, els Expression) *TernaryExpression {
	return &TernaryExpression{nodeImpl: nodeImpl{Type: NodeTernaryExpr, Loc: span}, Cond: cond, Then: then, Else: els}
}

func NewRangeExpression(span lexer.Span, start, end Expression, inclusive bool, step Expression) *RangeExpression {
	return &RangeExpression{nodeImpl: nodeImpl{Type: NodeRangeExpression, Loc: span}, Start: start, End: end, Inclusive: inclusive, Step: step}
}

func NewIndexExpression(span lexer.Span, object, index Expression) *IndexExpression {
	return &IndexExpression{nodeImpl: nodeImpl{Type: NodeIndexExpression, Loc: span}, Object: object, Index: index}
}

func NewCallExpression(span lexer.Span, callee Expression, args []Expression) *CallExpression {
	return &CallExpression{nodeImpl: nodeImpl{Type: NodeCallExpression, Loc: span}, Callee: callee, Args: args}
}

func NewGetExpression(span lexer.Span, object Expression, name string) *GetExpression {
	return &GetExpression{nodeImpl: nodeImpl{Type: NodeGetExpression, Loc: span}, Object: object, Name: name}
}

func NewAssignExpression(span lexer.Span, target Expression, op AssignOp, value Expression) *AssignExpression {
	return &AssignExpression{nodeImpl: nodeImpl{Type: NodeAssignExpression, Loc: span}, Target: target, Op: op, Value: value}
}

func NewVarDecl(span lexer.Span, name string, init Expression) *VarDecl {
	return &VarDecl{nodeImpl: nodeImpl{Type: NodeVarDecl, Loc: span}, Name: name, Init: init}
}

func NewFnDecl(span lexer.Span, name string, params []string, body Statement) *FnDecl {
	return &FnDecl{nodeImpl: nodeImpl{Type: NodeFnDecl, Loc: span}, Name: name, Params: params, Body: body}
}

func NewObjDecl(span lexer.Span, name string, methods []*FnDecl) *ObjDecl {
	return &ObjDecl{nodeImpl: nodeImpl{Type: NodeObjDecl, Loc: span}, Name: name, Methods: methods}
}

func NewBlockStatement(span lexer.Span, body []Statement) *BlockStatement {
	return &BlockStatement{nodeImpl: nodeImpl{Type: NodeBlockStatement, Loc: span}, Body: body}
}

func NewIfStatement(span lexer.Span, cond Expression, then, els Statement) *IfStatement {
	return &IfStatement{nodeImpl: nodeImpl{Type: NodeIfStatement, Loc: span}, Cond: cond, Then: then, Else: els}
}

func NewWhileStatement(span lexer.Span, header *VarDecl, cond Expression, step Expression, body Statement) *WhileStatement {
	return &WhileStatement{nodeImpl: nodeImpl{Type: NodeWhileStatement, Loc: span}, Header: header, Cond: cond, Step: step, Body: body}
}

func NewForStatement(span lexer.Span, valueName, indexName string, iterable Expression, body Statement) *ForStatement {
	return &ForStatement{nodeImpl: nodeImpl{Type: NodeForStatement, Loc: span}, ValueName: valueName, IndexName: indexName, Iterable: iterable, Body: body}
}

func NewMatchStatement(span lexer.Span, discriminant Expression, arms []MatchArm, els Statement) *MatchStatement {
	return &MatchStatement{nodeImpl: nodeImpl{Type: NodeMatchStatement, Loc: span}, Discriminant: discriminant, Arms: arms, Else: els}
}

func NewReturnStatement(span lexer.Span, value Expression) *ReturnStatement {
	return &ReturnStatement{nodeImpl: nodeImpl{Type: NodeReturnStmt, Loc: span}, Value: value}
}

func NewBreakStatement(span lexer.Span) *BreakStatement {
	return &BreakStatement{nodeImpl: nodeImpl{Type: NodeBreakStatement, Loc: span}}
}

func NewContinueStatement(span lexer.Span) *ContinueStatement {
	return &ContinueStatement{nodeImpl: nodeImpl{Type: NodeContinueStmt, Loc: span}}
}

func NewThrowStatement(span lexer.Span, value Expression) *ThrowStatement {
	return &ThrowStatement{nodeImpl: nodeImpl{Type: NodeThrowStatement, Loc: span}, Value: value}
}

func NewTryStatement(span lexer.Span, body Statement, errName, valName string, catch, ensure Statement) *TryStatement {
	return &TryStatement{nodeImpl: nodeImpl{Type: NodeTryStatement, Loc: span}, Body: body, ErrName: errName, ValName: valName, Catch: catch, Ensure: ensure}
}

func NewUseStatement(span lexer.Span, path Expression) *UseStatement {
	return &UseStatement{nodeImpl: nodeImpl{Type: NodeUseStatement, Loc: span}, Path: path}
}

func NewExpressionStatement(span lexer.Span, expr Expression) *ExpressionStatement {
	return &ExpressionStatement{nodeImpl: nodeImpl{Type: NodeExprStatement, Loc: span}, Expr: expr}
}

// Short constructors for tests and programmatic AST building. Spans are
// zero; the evaluator never requires one.

func Null() *NullLiteral               { return NewNullLiteral(lexer.Span{}) }
func Bool(v bool) *BoolLiteral         { return NewBoolLiteral(lexer.Span{}, v) }
func Num(v float64) *NumLiteral        { return NewNumLiteral(lexer.Span{}, v) }
func Str(v string) *StrLiteral         { return NewStrLiteral(lexer.Span{}, v) }
func ID(name string) *Identifier      { return NewIdentifier(lexer.Span{}, name) }
func Self() *SelfExpression            { return NewSelfExpression(lexer.Span{}) }

func List(elements ...Expression) *ListLiteral {
	return NewListLiteral(lexer.Span{}, elements)
}

func Dict(entries ...DictEntry) *DictLiteral {
	return NewDictLiteral(lexer.Span{}, entries)
}

func Entry(key, value Expression) DictEntry {
	return DictEntry{Key: key, Value: value}
}

func Un(op string, right Expression) *UnaryExpression {
	return NewUnaryExpression(lexer.Span{}, op, right)
}

func Bin(op string, left, right Expression) *BinaryExpression {
	return NewBinaryExpression(lexer.Span{}, op, left, right)
}

func Logic(op string, left, right Expression) *LogicalExpression {
	return NewLogicalExpression(lexer.Span{}, op, left, right)
}

func Tern(cond, then, els Expression) *TernaryExpression {
	return NewTernaryExpression(lexer.Span{}, cond, then, els)
}

func Rng(start, end Expression, inclusive bool) *RangeExpression {
	return NewRangeExpression(lexer.Span{}, start, end, inclusive, nil)
}

func Index(object, index Expression) *IndexExpression {
	return NewIndexExpression(lexer.Span{}, object, index)
}

func Call(callee Expression, args ...Expression) *CallExpression {
	return NewCallExpression(lexer.Span{}, callee, args)
}

func Get(object Expression, name string) *GetExpression {
	return NewGetExpression(lexer.Span{}, object, name)
}

func Assign(target Expression, value Expression) *AssignExpression {
	return NewAssignExpression(lexer.Span{}, target, AssignSet, value)
}

func AssignWith(target Expression, op AssignOp, value Expression) *AssignExpression {
	return NewAssignExpression(lexer.Span{}, target, op, value)
}

func Var(name string, init Expression) *VarDecl {
	return NewVarDecl(lexer.Span{}, name, init)
}

func Fn(name string, params []string, body ...Statement) *FnDecl {
	return NewFnDecl(lexer.Span{}, name, params, Blk(body...))
}

func Obj(name string, methods ...*FnDecl) *ObjDecl {
	return NewObjDecl(lexer.Span{}, name, methods)
}

func Blk(body ...Statement) *BlockStatement {
	return NewBlockStatement(lexer.Span{}, body)
}

func If(cond Expression, then, els Statement) *IfStatement {
	return NewIfStatement(lexer.Span{}, cond, then, els)
}

func While(cond Expression, body Statement) *WhileStatement {
	return NewWhileStatement(lexer.Span{}, nil, cond, nil, body)
}

func For(valueName, indexName string, iterable Expression, body Statement) *ForStatement {
	return NewForStatement(lexer.Span{}, valueName, indexName, iterable, body)
}

func Match(discriminant Expression, arms []MatchArm, els Statement) *MatchStatement {
	return NewMatchStatement(lexer.Span{}, discriminant, arms, els)
}

func Arm(pattern Expression, body Statement) MatchArm {
	return MatchArm{Pattern: pattern, Body: body}
}

func Ret(value Expression) *ReturnStatement {
	return NewReturnStatement(lexer.Span{}, value)
}

func Brk() *BreakStatement       { return NewBreakStatement(lexer.Span{}) }
func Cont() *ContinueStatement   { return NewContinueStatement(lexer.Span{}) }

func Throw(value Expression) *ThrowStatement {
	return NewThrowStatement(lexer.Span{}, value)
}

func Try(body Statement, errName, valName string, catch, ensure Statement) *TryStatement {
	return NewTryStatement(lexer.Span{}, body, errName, valName, catch, ensure)
}

func Use(path Expression) *UseStatement {
	return NewUseStatement(lexer.Span{}, path)
}

func ExprStmt(expr Expression) *ExpressionStatement {
	return NewExpressionStatement(lexer.Span{}, expr)
}
