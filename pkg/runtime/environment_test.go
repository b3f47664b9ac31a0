package runtime

import (
	"errors"
	"testing"

	"quetite/interpreter-go/pkg/lexer"
)

func TestDefineAndGet(t *testing.T) {
	env := NewEnvironment(nil)
	env.Define("x", NumValue{Val: 1})
	v, err := env.Get("x", lexer.Span{})
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if Format(v) != "1" {
		t.Fatalf("unexpected value %v", Format(v))
	}
}

func TestLookupWalksOutward(t *testing.T) {
	global := NewEnvironment(nil)
	global.Define("x", NewStr("outer"))
	inner := global.Extend().Extend()
	v, err := inner.Get("x", lexer.Span{})
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if Format(v) != "outer" {
		t.Fatalf("unexpected value %v", Format(v))
	}
}

func TestAssignWritesNearestFrame(t *testing.T) {
	global := NewEnvironment(nil)
	global.Define("x", NumValue{Val: 1})
	inner := global.Extend()
	if err := inner.Assign("x", NumValue{Val: 2}, lexer.Span{}); err != nil {
		t.Fatalf("assign failed: %v", err)
	}
	v, _ := global.Get("x", lexer.Span{})
	if Format(v) != "2" {
		t.Fatalf("assignment did not reach declaring frame, got %v", Format(v))
	}
}

func TestShadowingStaysInner(t *testing.T) {
	global := NewEnvironment(nil)
	global.Define("x", NumValue{Val: 1})
	inner := global.Extend()
	inner.Define("x", NumValue{Val: 99})
	if err := inner.Assign("x", NumValue{Val: 100}, lexer.Span{}); err != nil {
		t.Fatalf("assign failed: %v", err)
	}
	outer, _ := global.Get("x", lexer.Span{})
	if Format(outer) != "1" {
		t.Fatalf("outer binding mutated through shadow, got %v", Format(outer))
	}
}

func TestUndefinedNameErr(t *testing.T) {
	env := NewEnvironment(nil)
	_, err := env.Get("missing", lexer.Span{})
	var rtErr *Error
	if !errors.As(err, &rtErr) || rtErr.Kind != ErrName {
		t.Fatalf("expected NameErr, got %v", err)
	}
	if err := env.Assign("missing", NullValue{}, lexer.Span{}); err == nil {
		t.Fatalf("assignment to undeclared name must fail")
	}
}
