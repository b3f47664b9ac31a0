package interpreter

import (
	"strings"
	"testing"

	"quetite/interpreter-go/pkg/runtime"
)

func TestInstanceFieldsViaInit(t *testing.T) {
	src := `obj Point do
init(x, y) do
self.x = x
self.y = y
end
end
var p = Point(3, 4)
println(p.x)
println(p.y)
`
	expectOut(t, src, "3\n4\n")
}

func TestInstanceIsolation(t *testing.T) {
	src := `obj Box do
init(v) do
self.v = v
end
end
var a = Box(1)
var b = Box(2)
a.v = 99
println(a.v)
println(b.v)
`
	expectOut(t, src, "99\n2\n")
}

func TestBoundMethodReceiver(t *testing.T) {
	src := `obj Counter do
init(n) do
self.n = n
end
bump(self) do
self.n = self.n + 1
return self.n
end
end
var c = Counter(10)
println(c.bump())
println(c.bump())
`
	expectOut(t, src, "11\n12\n")
}

func TestStaticMethodViaObjectName(t *testing.T) {
	src := `obj MathX do
square(n) do
return n * n
end
end
println(MathX.square(6))
`
	expectOut(t, src, "36\n")
}

func TestBoundMethodWithoutInstanceFails(t *testing.T) {
	src := `obj C do
m(self) do
return 1
end
end
C.m()
`
	err := runtimeErr(t, src)
	if err.Kind != "NameErr" {
		t.Fatalf("kind = %s, want NameErr", err.Kind)
	}
}

func TestMissingMemberIsNameErr(t *testing.T) {
	src := `obj C do
end
var c = C()
c.missing
`
	err := runtimeErr(t, src)
	if err.Kind != "NameErr" {
		t.Fatalf("kind = %s, want NameErr", err.Kind)
	}
}

func TestAssigningObjectPropertyIsTypeErr(t *testing.T) {
	src := `obj C do
end
C.x = 1
`
	err := runtimeErr(t, src)
	if err.Kind != "TypeErr" {
		t.Fatalf("kind = %s, want TypeErr", err.Kind)
	}
}

func TestFieldShadowsMethod(t *testing.T) {
	src := `obj C do
init() do
self.v = 1
end
v(self) do
return 2
end
end
var c = C()
println(c.v)
`
	expectOut(t, src, "1\n")
}

func TestConstructorArity(t *testing.T) {
	src := `obj P do
init(x) do
self.x = x
end
end
P(1, 2)
`
	err := runtimeErr(t, src)
	if err.Kind != "ArityErr" {
		t.Fatalf("kind = %s, want ArityErr", err.Kind)
	}
	if !strings.Contains(err.Msg, "expected 1") || !strings.Contains(err.Msg, "got 2") {
		t.Fatalf("unexpected arity message %q", err.Msg)
	}
}

func TestMethodClosesOverDeclarationScope(t *testing.T) {
	src := `var base = 100
obj Adder do
add(self, n) do
return base + n
end
end
println(Adder().add(5))
`
	expectOut(t, src, "105\n")
}

func TestInstanceTypeName(t *testing.T) {
	src := `obj Widget do
end
println(Widget().type())
`
	expectOut(t, src, "Widget\n")
}

func TestBoundMethodIsFirstClass(t *testing.T) {
	src := `obj C do
init(n) do
self.n = n
end
get(self) do
return self.n
end
end
var c = C(7)
var m = c.get
println(m())
`
	expectOut(t, src, "7\n")
}

func TestInstanceFormatting(t *testing.T) {
	obj := &runtime.ObjectValue{Name: "Widget"}
	inst := runtime.NewInstance(obj)
	if got := runtime.Format(inst); got != "<Widget instance>" {
		t.Fatalf("instance format = %q", got)
	}
}
