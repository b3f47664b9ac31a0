package ast

import (
	"fmt"
	"strings"
)

// Dump renders a structural view of the program, one node per line, used
// by the CLI's --dump-ast flag.
func Dump(program *Program) string {
	var b strings.Builder
	for _, stmt := range program.Body {
		dumpNode(&b, stmt, 0)
	}
	return b.String()
}

func dumpNode(b *strings.Builder, node Node, depth int) {
	indent := strings.Repeat("  ", depth)
	switch n := node.(type) {
	case *NullLiteral:
		fmt.Fprintf(b, "%sNull\n", indent)
	case *BoolLiteral:
		fmt.Fprintf(b, "%sBool %v\n", indent, n.Value)
	case *NumLiteral:
		fmt.Fprintf(b, "%sNum %v\n", indent, n.Value)
	case *StrLiteral:
		fmt.Fprintf(b, "%sStr %q\n", indent, n.Value)
	case *ListLiteral:
		fmt.Fprintf(b, "%sList\n", indent)
		for _, el := range n.Elements {
			dumpNode(b, el, depth+1)
		}
	case *DictLiteral:
		fmt.Fprintf(b, "%sDict\n", indent)
		for _, entry := range n.Entries {
			dumpNode(b, entry.Key, depth+1)
			dumpNode(b, entry.Value, depth+2)
		}
	case *Identifier:
		fmt.Fprintf(b, "%sIdent %s\n", indent, n.Name)
	case *SelfExpression:
		fmt.Fprintf(b, "%sSelf\n", indent)
	case *UnaryExpression:
		fmt.Fprintf(b, "%sUnary %s\n", indent, n.Op)
		dumpNode(b, n.Right, depth+1)
	case *BinaryExpression:
		fmt.Fprintf(b, "%sBinary %s\n", indent, n.Op)
		dumpNode(b, n.Left, depth+1)
		dumpNode(b, n.Right, depth+1)
	case *LogicalExpression:
		fmt.Fprintf(b, "%sLogical %s\n", indent, n.Op)
		dumpNode(b, n.Left, depth+1)
		dumpNode(b, n.Right, depth+1)
	case *TernaryExpression:
		fmt.Fprintf(b, "%sTernary\n", indent)
		dumpNode(b, n.Cond, depth+1)
		dumpNode(b, n.Then, depth+1)
		dumpNode(b, n.Else, depth+1)
	case *RangeExpression:
		op := ".."
		if n.Inclusive {
			op = "..="
		}
		fmt.Fprintf(b, "%sRange %s\n", indent, op)
		dumpNode(b, n.Start, depth+1)
		dumpNode(b, n.End, depth+1)
		if n.Step != nil {
			dumpNode(b, n.Step, depth+1)
		}
	case *IndexExpression:
		fmt.Fprintf(b, "%sIndex\n", indent)
		dumpNode(b, n.Object, depth+1)
		dumpNode(b, n.Index, depth+1)
	case *CallExpression:
		fmt.Fprintf(b, "%sCall\n", indent)
		dumpNode(b, n.Callee, depth+1)
		for _, arg := range n.Args {
			dumpNode(b, arg, depth+1)
		}
	case *GetExpression:
		fmt.Fprintf(b, "%sGet %s\n", indent, n.Name)
		dumpNode(b, n.Object, depth+1)
	case *AssignExpression:
		fmt.Fprintf(b, "%sAssign %s\n", indent, n.Op)
		dumpNode(b, n.Target, depth+1)
		if n.Value != nil {
			dumpNode(b, n.Value, depth+1)
		}
	case *VarDecl:
		fmt.Fprintf(b, "%sVar %s\n", indent, n.Name)
		if n.Init != nil {
			dumpNode(b, n.Init, depth+1)
		}
	case *FnDecl:
		fmt.Fprintf(b, "%sFn %s(%s)\n", indent, n.Name, strings.Join(n.Params, ", "))
		dumpNode(b, n.Body, depth+1)
	case *ObjDecl:
		fmt.Fprintf(b, "%sObj %s\n", indent, n.Name)
		for _, method := range n.Methods {
			dumpNode(b, method, depth+1)
		}
	case *BlockStatement:
		fmt.Fprintf(b, "%sBlock\n", indent)
		for _, stmt := range n.Body {
			dumpNode(b, stmt, depth+1)
		}
	case *IfStatement:
		fmt.Fprintf(b, "%sIf\n", indent)
		dumpNode(b, n.Cond, depth+1)
		dumpNode(b, n.Then, depth+1)
		if n.Else != nil {
			dumpNode(b, n.Else, depth+1)
		}
	case *WhileStatement:
		fmt.Fprintf(b, "%sWhile\n", indent)
		if n.Header != nil {
			dumpNode(b, n.Header, depth+1)
		}
		dumpNode(b, n.Cond, depth+1)
		if n.Step != nil {
			dumpNode(b, n.Step, depth+1)
		}
		dumpNode(b, n.Body, depth+1)
	case *ForStatement:
		if n.IndexName != "" {
			fmt.Fprintf(b, "%sFor %s, %s\n", indent, n.ValueName, n.IndexName)
		} else {
			fmt.Fprintf(b, "%sFor %s\n", indent, n.ValueName)
		}
		dumpNode(b, n.Iterable, depth+1)
		dumpNode(b, n.Body, depth+1)
	case *MatchStatement:
		fmt.Fprintf(b, "%sMatch\n", indent)
		dumpNode(b, n.Discriminant, depth+1)
		for _, arm := range n.Arms {
			dumpNode(b, arm.Pattern, depth+1)
			dumpNode(b, arm.Body, depth+2)
		}
		if n.Else != nil {
			dumpNode(b, n.Else, depth+1)
		}
	case *ReturnStatement:
		fmt.Fprintf(b, "%sReturn\n", indent)
		if n.Value != nil {
			dumpNode(b, n.Value, depth+1)
		}
	case *BreakStatement:
		fmt.Fprintf(b, "%sBreak\n", indent)
	case *ContinueStatement:
		fmt.Fprintf(b, "%sContinue\n", indent)
	case *ThrowStatement:
		fmt.Fprintf(b, "%sThrow\n", indent)
		dumpNode(b, n.Value, depth+1)
	case *TryStatement:
		fmt.Fprintf(b, "%sTry\n", indent)
		dumpNode(b, n.Body, depth+1)
		if n.ErrName != "" || n.ValName != "" {
			fmt.Fprintf(b, "%s  Catch %s %s\n", indent, n.ErrName, n.ValName)
		} else {
			fmt.Fprintf(b, "%s  Catch\n", indent)
		}
		dumpNode(b, n.Catch, depth+2)
		if n.Ensure != nil {
			fmt.Fprintf(b, "%s  Ensure\n", indent)
			dumpNode(b, n.Ensure, depth+2)
		}
	case *UseStatement:
		fmt.Fprintf(b, "%sUse\n", indent)
		dumpNode(b, n.Path, depth+1)
	case *ExpressionStatement:
		fmt.Fprintf(b, "%sExprStmt\n", indent)
		dumpNode(b, n.Expr, depth+1)
	default:
		fmt.Fprintf(b, "%s%s\n", indent, node.NodeType())
	}
}
