package runtime

import (
	"math"
	"testing"
)

func TestTruthinessTable(t *testing.T) {
	falsy := []Value{NullValue{}, BoolValue{Val: false}, NumValue{Val: 0}}
	for _, v := range falsy {
		if Truthy(v) {
			t.Fatalf("expected %v to be falsy", Format(v))
		}
	}
	truthy := []Value{
		BoolValue{Val: true},
		NumValue{Val: 1},
		NumValue{Val: -0.5},
		NewStr(""),
		NewStr("x"),
		NewList(nil),
		NewDict(),
	}
	for _, v := range truthy {
		if !Truthy(v) {
			t.Fatalf("expected %v to be truthy", Format(v))
		}
	}
}

func TestEqualityAcrossKindsIsFalse(t *testing.T) {
	if Equals(NumValue{Val: 0}, BoolValue{Val: false}) {
		t.Fatalf("0 == false should be false")
	}
	if Equals(NewStr("1"), NumValue{Val: 1}) {
		t.Fatalf("\"1\" == 1 should be false")
	}
	if Equals(NullValue{}, NumValue{Val: 0}) {
		t.Fatalf("null == 0 should be false")
	}
}

func TestStringEqualityByValue(t *testing.T) {
	if !Equals(NewStr("abc"), NewStr("abc")) {
		t.Fatalf("equal strings must compare equal")
	}
}

func TestListEqualityByIdentity(t *testing.T) {
	a := NewList([]Value{NumValue{Val: 1}})
	b := NewList([]Value{NumValue{Val: 1}})
	if Equals(a, b) {
		t.Fatalf("distinct lists must not compare equal")
	}
	if !Equals(a, a) {
		t.Fatalf("a list must equal itself")
	}
}

func TestNaNUnequalToItself(t *testing.T) {
	nan := NumValue{Val: math.NaN()}
	if Equals(nan, nan) {
		t.Fatalf("NaN must not equal NaN")
	}
}

func TestFormatNumElidesIntegralFraction(t *testing.T) {
	cases := map[float64]string{
		7:    "7",
		10:   "10",
		-3:   "-3",
		0.5:  "0.5",
		1.25: "1.25",
	}
	for in, want := range cases {
		if got := FormatNum(in); got != want {
			t.Fatalf("FormatNum(%v) = %q, want %q", in, got, want)
		}
	}
	if got := FormatNum(math.Inf(1)); got != "inf" {
		t.Fatalf("FormatNum(inf) = %q", got)
	}
	if got := FormatNum(math.NaN()); got != "NaN" {
		t.Fatalf("FormatNum(NaN) = %q", got)
	}
}

func TestFormatContainers(t *testing.T) {
	list := NewList([]Value{NumValue{Val: 1}, NewStr("a")})
	if got := Format(list); got != `[1, "a"]` {
		t.Fatalf("list format = %q", got)
	}
	dict := NewDict()
	key, _ := KeyFor(NewStr("k"))
	dict.Set(key, NewStr("k"), NumValue{Val: 2})
	if got := Format(dict); got != `{"k": 2}` {
		t.Fatalf("dict format = %q", got)
	}
}

func TestDictInsertionOrderAndDelete(t *testing.T) {
	d := NewDict()
	for _, s := range []string{"a", "b", "c"} {
		k, _ := KeyFor(NewStr(s))
		d.Set(k, NewStr(s), NumValue{Val: 1})
	}
	kb, _ := KeyFor(NewStr("b"))
	if !d.Delete(kb) {
		t.Fatalf("delete of existing key failed")
	}
	keys := d.Keys()
	if len(keys) != 2 || Format(keys[0]) != "a" || Format(keys[1]) != "c" {
		t.Fatalf("unexpected key order after delete: %v", keys)
	}
}

func TestKeyForRejectsHeapKinds(t *testing.T) {
	if _, ok := KeyFor(NewList(nil)); ok {
		t.Fatalf("lists must not be hashable")
	}
	if _, ok := KeyFor(NewDict()); ok {
		t.Fatalf("dicts must not be hashable")
	}
}

func TestNumKeysCollapseEqualValues(t *testing.T) {
	d := NewDict()
	k1, _ := KeyFor(NumValue{Val: 2})
	k2, _ := KeyFor(NumValue{Val: 2.0})
	d.Set(k1, NumValue{Val: 2}, NewStr("first"))
	d.Set(k2, NumValue{Val: 2.0}, NewStr("second"))
	if d.Len() != 1 {
		t.Fatalf("2 and 2.0 should share a key slot")
	}
	if v, _ := d.Get(k1); Format(v) != "second" {
		t.Fatalf("second write should win, got %v", Format(v))
	}
}

func TestTypeNameForInstance(t *testing.T) {
	obj := &ObjectValue{Name: "Point"}
	inst := NewInstance(obj)
	if TypeName(inst) != "Point" {
		t.Fatalf("instance type name = %q", TypeName(inst))
	}
	if TypeName(NumValue{Val: 1}) != "Num" {
		t.Fatalf("num type name = %q", TypeName(NumValue{Val: 1}))
	}
}
